package database

import (
	"fmt"
	"log"

	"brainbox_backend/internal/config"
	"brainbox_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.MoodEntry{},
		&model.ChatMessage{},
		&model.AssessmentProgress{},
		&model.AssessmentReport{},
		&model.Affirmation{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 默认的每日鼓励短句
	var count int64
	db.Model(&model.Affirmation{}).Count(&count)
	if count == 0 {
		defaultAffirmations := []string{
			"每一次深呼吸，都是给自己的一份温柔。",
			"情绪没有对错，允许自己慢慢来。",
			"You are stronger than you think.",
			"今天照顾好自己，就已经很了不起了。",
			"求助不是软弱，是勇敢的第一步。",
			"Small steps every day still move you forward.",
			"睡个好觉，是对大脑最好的犒赏。",
		}
		for _, content := range defaultAffirmations {
			db.Create(&model.Affirmation{Content: content, IsEnabled: true})
		}
	}

	return db, nil
}
