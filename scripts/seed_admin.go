// 手动创建管理员账号脚本
//
// 首次部署后执行一次，为后台管理创建初始管理员。
//
// 用法: go run scripts/seed_admin.go <email> <password>

package main

import (
	"log"
	"os"

	"brainbox_backend/internal/config"
	"brainbox_backend/internal/model"
	"brainbox_backend/pkg/database"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

func main() {
	if len(os.Args) != 3 {
		log.Fatal("用法: go run scripts/seed_admin.go <email> <password>")
	}
	email, password := os.Args[1], os.Args[2]

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("密码加密失败: %v", err)
	}

	admin := &model.User{
		Name:     "Administrator",
		Email:    email,
		Password: string(hashed),
		Role:     model.Admin,
	}
	if err := db.Create(admin).Error; err != nil {
		log.Fatalf("创建管理员失败: %v", err)
	}

	log.Printf("管理员创建成功: %s (id=%d)", email, admin.ID)
}
