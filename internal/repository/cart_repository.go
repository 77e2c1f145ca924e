package repository

import (
	"errors"

	"github.com/shopkart-next/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	Get(username, productUUID string) (*models.CartItem, error)
	ListByUser(username string) ([]models.CartItem, error)
	AddQuantity(username, productUUID string, quantity int) error
	RemoveQuantity(username, productUUID string, quantity int) (int64, error)
	Delete(username, productUUID string) error
	ClearByUser(username string) (int64, error)
	TotalQuantity(username string) (int64, error)
	MostCarted() (*MostCartedProduct, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// Transaction 执行事务
func (r *GormCartRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// Get 获取购物车项，未找到返回 nil
func (r *GormCartRepository) Get(username, productUUID string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("username = ? AND product_uuid = ?", username, productUUID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByUser 获取用户购物车项
func (r *GormCartRepository) ListByUser(username string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.Preload("Product").Where("username = ?", username).Order("updated_at desc").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// AddQuantity 累加数量，无现有行时创建
// 累加走单条 UPDATE，避免并发下读改写丢失更新
func (r *GormCartRepository) AddQuantity(username, productUUID string, quantity int) error {
	result := r.db.Model(&models.CartItem{}).
		Where("username = ? AND product_uuid = ?", username, productUUID).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}
	item := models.CartItem{
		Username:    username,
		ProductUUID: productUUID,
		Quantity:    quantity,
	}
	return r.db.Create(&item).Error
}

// RemoveQuantity 条件递减：仅当现有数量足够时生效，减到零即删行
// WHERE quantity >= ? 保证并发减购不会把数量减成负数
func (r *GormCartRepository) RemoveQuantity(username, productUUID string, quantity int) (int64, error) {
	result := r.db.Model(&models.CartItem{}).
		Where("username = ? AND product_uuid = ? AND quantity >= ?", username, productUUID, quantity).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, nil
	}
	err := r.db.Where("username = ? AND product_uuid = ? AND quantity = 0", username, productUUID).
		Delete(&models.CartItem{}).Error
	return result.RowsAffected, err
}

// Delete 删除购物车项
func (r *GormCartRepository) Delete(username, productUUID string) error {
	return r.db.Where("username = ? AND product_uuid = ?", username, productUUID).Delete(&models.CartItem{}).Error
}

// ClearByUser 清空购物车，返回删除行数
func (r *GormCartRepository) ClearByUser(username string) (int64, error) {
	result := r.db.Where("username = ?", username).Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

// TotalQuantity 用户购物车商品总数
func (r *GormCartRepository) TotalQuantity(username string) (int64, error) {
	var total int64
	err := r.db.Model(&models.CartItem{}).
		Where("username = ?", username).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// MostCarted 全站购物车聚合，数量最高的商品；无数据返回 nil
func (r *GormCartRepository) MostCarted() (*MostCartedProduct, error) {
	var row MostCartedProduct
	err := r.db.Model(&models.CartItem{}).
		Select("product_uuid, SUM(quantity) AS total_quantity").
		Group("product_uuid").
		Order("total_quantity DESC").
		Limit(1).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ProductUUID == "" {
		return nil, nil
	}
	return &row, nil
}
