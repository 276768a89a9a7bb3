package service

import (
	"errors"

	"coursehub_backend/internal/config"
	"coursehub_backend/internal/model"
	"coursehub_backend/internal/repository"
	"coursehub_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

// Register 注册新用户，邮箱唯一，role 缺省为 student
func (s *AuthService) Register(user *model.User) error {
	_, err := s.UserRepo.FindByEmail(user.Email)
	if err == nil {
		return util.ErrEmailInUse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if user.Role == "" {
		user.Role = model.Student
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)
	return s.UserRepo.Create(user)
}

// Login 校验凭据，返回用户与 JWT。凭据错误统一返回同一个错误，不区分账号不存在
func (s *AuthService) Login(email, password string) (*model.User, string, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return nil, "", util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
