package service

import (
	"time"

	"github.com/shopkart-next/internal/models"
	"github.com/shopkart-next/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// UserService 用户注册与档案服务
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService 创建用户服务
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// RegisterInput 用户注册入参
type RegisterInput struct {
	Username        string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	DOB             *time.Time
	Email           string
	Phone           string
	Address         string
	Category        string
}

// Register 注册新用户，密码以 bcrypt 哈希落库
func (s *UserService) Register(input RegisterInput) (*models.UserRegistration, error) {
	username, err := ValidateStringParam("username", input.Username)
	if err != nil {
		return nil, err
	}
	if username == "" || input.Password == "" {
		return nil, ErrInvalidParam
	}
	if input.Password != input.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	exists, err := s.userRepo.Exists(username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.UserRegistration{
		Username:     username,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		DOB:          input.DOB,
		PasswordHash: string(hash),
		Email:        input.Email,
		Phone:        input.Phone,
		Address:      input.Address,
		Category:     input.Category,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetProfile 查询用户档案
func (s *UserService) GetProfile(username string) (*models.UserRegistration, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
