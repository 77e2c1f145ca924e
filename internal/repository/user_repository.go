package repository

import (
	"errors"

	"github.com/shopkart-next/internal/models"

	"gorm.io/gorm"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	GetByUsername(username string) (*models.UserRegistration, error)
	Exists(username string) (bool, error)
	Create(user *models.UserRegistration) error
}

// GormUserRepository GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// GetByUsername 按用户名查找，未找到返回 nil
func (r *GormUserRepository) GetByUsername(username string) (*models.UserRegistration, error) {
	var user models.UserRegistration
	err := r.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Exists 用户名是否已注册
func (r *GormUserRepository) Exists(username string) (bool, error) {
	var count int64
	err := r.db.Model(&models.UserRegistration{}).Where("username = ?", username).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 新建用户
func (r *GormUserRepository) Create(user *models.UserRegistration) error {
	return r.db.Create(user).Error
}
