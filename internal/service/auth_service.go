package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"brainbox_backend/internal/config"
	"brainbox_backend/internal/model"
	"brainbox_backend/internal/repository"
	"brainbox_backend/internal/util"
	"brainbox_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	otpKeyPrefix = "otp:reset:"
	otpTTL       = 10 * time.Minute
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Redis    *redis.Client
	Email    *EmailService
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, rdb *redis.Client, email *EmailService, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Redis:    rdb,
		Email:    email,
		Cfg:      cfg,
	}
}

func (s *AuthService) Register(user *model.User) error {
	_, err := s.UserRepo.FindByEmail(user.Email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)
	return s.UserRepo.Create(user)
}

func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", util.ErrInvalidCredentials
	}

	_ = s.UserRepo.UpdateLastLogin(user.ID)
	return util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

// RequestPasswordReset 生成 6 位验证码写入 Redis 并发邮件。
// 邮箱不存在也返回成功，避免探测注册邮箱
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}

	if err := s.Redis.Set(ctx, otpKeyPrefix+email, code, otpTTL).Err(); err != nil {
		return err
	}

	go func() {
		if err := s.Email.SendOTP(user.Email, user.Name, code); err != nil {
			logger.Log.Error("failed to send OTP email", zap.String("email", email), zap.Error(err))
		}
	}()

	return nil
}

// ResetPassword 校验验证码并更新密码，验证码一次性使用
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	stored, err := s.Redis.Get(ctx, otpKeyPrefix+email).Result()
	if err != nil || stored != code {
		return util.ErrInvalidOTP
	}

	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return util.ErrUserNotFound
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.UserRepo.UpdatePassword(user.ID, string(hashed)); err != nil {
		return err
	}

	s.Redis.Del(ctx, otpKeyPrefix+email)
	return nil
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, _ := s.UserRepo.FindByID(claims.UserID)
	return user
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
