package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/shopkart-next/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	ListFuzzy(filter ProductFilter) ([]models.Product, error)
	ListExact(filter ProductFilter) ([]models.Product, error)
	ListExactFold(filter ProductFilter) ([]models.Product, error)
	Search(query string) ([]models.Product, error)
	IncrementSearchCount(uuids []string) error
	ListByCreatedDesc() ([]models.Product, error)
	ListDiscountedAbove(threshold float64) ([]models.Product, error)
	ListByDiscountDesc() ([]models.Product, error)
	ListBySearchCountDesc() ([]models.Product, error)
	ListByPriceRange(minPrice, maxPrice float64) ([]models.Product, error)
	ListCreatedAfter(t time.Time) ([]models.Product, error)
	ListCreatedBefore(t time.Time) ([]models.Product, error)
	ListCreatedBetween(start, end time.Time) ([]models.Product, error)
	ListAll() ([]models.Product, error)
	GetByUUID(uuid string) (*models.Product, error)
	ExistsUUID(uuid string) (bool, error)
	Create(product *models.Product) error
	Save(product *models.Product) error
	Delete(uuid string) error
	DeleteByUUIDs(uuids []string) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// ListFuzzy 按品牌/类型/型号模糊过滤（大小写不敏感的子串匹配）
func (r *GormProductRepository) ListFuzzy(filter ProductFilter) ([]models.Product, error) {
	query := r.db.Model(&models.Product{})
	if v := strings.TrimSpace(filter.Type); v != "" {
		query = query.Where("LOWER(type) LIKE ?", "%"+strings.ToLower(v)+"%")
	}
	if v := strings.TrimSpace(filter.Brand); v != "" {
		query = query.Where("LOWER(brand) LIKE ?", "%"+strings.ToLower(v)+"%")
	}
	if v := strings.TrimSpace(filter.Model); v != "" {
		query = query.Where("LOWER(model) LIKE ?", "%"+strings.ToLower(v)+"%")
	}

	var products []models.Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListExact 精确过滤（区分大小写）
func (r *GormProductRepository) ListExact(filter ProductFilter) ([]models.Product, error) {
	query := r.db.Model(&models.Product{})
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Brand != "" {
		query = query.Where("brand = ?", filter.Brand)
	}
	if filter.Model != "" {
		query = query.Where("model = ?", filter.Model)
	}

	var products []models.Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListExactFold 精确过滤（不区分大小写）
func (r *GormProductRepository) ListExactFold(filter ProductFilter) ([]models.Product, error) {
	query := r.db.Model(&models.Product{})
	if filter.Type != "" {
		query = query.Where("LOWER(type) = ?", strings.ToLower(filter.Type))
	}
	if filter.Brand != "" {
		query = query.Where("LOWER(brand) = ?", strings.ToLower(filter.Brand))
	}
	if filter.Model != "" {
		query = query.Where("LOWER(model) = ?", strings.ToLower(filter.Model))
	}

	var products []models.Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Search 子串搜索 type/brand/model（不区分大小写）
func (r *GormProductRepository) Search(query string) ([]models.Product, error) {
	like := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	var products []models.Product
	err := r.db.
		Where("LOWER(type) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(model) LIKE ?", like, like, like).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// IncrementSearchCount 批量累加搜索计数
func (r *GormProductRepository) IncrementSearchCount(uuids []string) error {
	if len(uuids) == 0 {
		return nil
	}
	return r.db.Model(&models.Product{}).
		Where("uuid IN ?", uuids).
		UpdateColumn("search_count", gorm.Expr("search_count + ?", 1)).Error
}

// ListByCreatedDesc 按上架时间倒序
func (r *GormProductRepository) ListByCreatedDesc() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListDiscountedAbove 折扣高于阈值的商品（按上架时间倒序）
func (r *GormProductRepository) ListDiscountedAbove(threshold float64) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("discounts > ?", threshold).Order("created_at DESC").Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// ListByDiscountDesc 按折扣倒序
func (r *GormProductRepository) ListByDiscountDesc() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("discounts DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListBySearchCountDesc 按搜索热度倒序
func (r *GormProductRepository) ListBySearchCountDesc() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("search_count DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListByPriceRange 按价格区间过滤（闭区间）
func (r *GormProductRepository) ListByPriceRange(minPrice, maxPrice float64) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("price BETWEEN ? AND ?", minPrice, maxPrice).Order("price ASC").Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// ListCreatedAfter 指定时间之后上架的商品
func (r *GormProductRepository) ListCreatedAfter(t time.Time) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("created_at >= ?", t).Order("created_at DESC").Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// ListCreatedBefore 指定时间之前上架的商品
func (r *GormProductRepository) ListCreatedBefore(t time.Time) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("created_at < ?", t).Order("created_at DESC").Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// ListCreatedBetween 指定时间区间内上架的商品（闭区间）
func (r *GormProductRepository) ListCreatedBetween(start, end time.Time) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("created_at BETWEEN ? AND ?", start, end).Order("created_at DESC").Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// ListAll 全量商品
func (r *GormProductRepository) ListAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetByUUID 按主键查找，未找到返回 nil
func (r *GormProductRepository) GetByUUID(uuid string) (*models.Product, error) {
	var product models.Product
	err := r.db.Where("uuid = ?", uuid).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ExistsUUID 主键是否已存在
func (r *GormProductRepository) ExistsUUID(uuid string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Where("uuid = ?", uuid).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 新建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Save 保存商品全部字段
func (r *GormProductRepository) Save(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete 按主键硬删除
func (r *GormProductRepository) Delete(uuid string) error {
	return r.db.Where("uuid = ?", uuid).Delete(&models.Product{}).Error
}

// DeleteByUUIDs 批量硬删除，返回删除行数
func (r *GormProductRepository) DeleteByUUIDs(uuids []string) (int64, error) {
	if len(uuids) == 0 {
		return 0, nil
	}
	result := r.db.Where("uuid IN ?", uuids).Delete(&models.Product{})
	return result.RowsAffected, result.Error
}
