package repository

import (
	"github.com/shopkart-next/internal/models"

	"gorm.io/gorm"
)

// ValidProductRepository 商品白名单数据访问接口
type ValidProductRepository interface {
	ExistsTypeBrand(productType, brand string) (bool, error)
	Create(detail *models.ValidProductDetail) error
}

// GormValidProductRepository GORM 实现
type GormValidProductRepository struct {
	db *gorm.DB
}

// NewValidProductRepository 创建白名单仓库
func NewValidProductRepository(db *gorm.DB) *GormValidProductRepository {
	return &GormValidProductRepository{db: db}
}

// ExistsTypeBrand 是否存在匹配的 (type, brand) 组合
func (r *GormValidProductRepository) ExistsTypeBrand(productType, brand string) (bool, error) {
	var count int64
	err := r.db.Model(&models.ValidProductDetail{}).
		Where("type = ? AND brand = ?", productType, brand).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 新增白名单条目
func (r *GormValidProductRepository) Create(detail *models.ValidProductDetail) error {
	return r.db.Create(detail).Error
}
