package service

import (
	"coursehub_backend/internal/model"
	"coursehub_backend/internal/repository"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) ListUsers() ([]model.User, error) {
	return s.UserRepo.FindAll()
}
