package service

import (
	"time"

	"github.com/shopkart-next/internal/constants"
	"github.com/shopkart-next/internal/models"
	"github.com/shopkart-next/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductAdminService 商品写入与批量运营服务
type ProductAdminService struct {
	productRepo         repository.ProductRepository
	validProductRepo    repository.ValidProductRepository
	clearanceWindowDays int
	nowFn               func() time.Time
}

// NewProductAdminService 创建商品运营服务
func NewProductAdminService(
	productRepo repository.ProductRepository,
	validProductRepo repository.ValidProductRepository,
	clearanceWindowDays int,
) *ProductAdminService {
	if clearanceWindowDays <= 0 {
		clearanceWindowDays = constants.DefaultClearanceWindowDays
	}
	return &ProductAdminService{
		productRepo:         productRepo,
		validProductRepo:    validProductRepo,
		clearanceWindowDays: clearanceWindowDays,
		nowFn:               time.Now,
	}
}

// CreateProductInput 新建商品入参
type CreateProductInput struct {
	UUID             string
	Type             string
	Brand            string
	Model            string
	Price            float64
	Discounts        float64
	Specs            map[string]interface{}
	DeliveryTimeDays int
}

// UpdateProductInput 商品部分更新入参，nil 字段表示不修改
type UpdateProductInput struct {
	Type             *string
	Brand            *string
	Model            *string
	Price            *float64
	Discounts        *float64
	Specs            map[string]interface{}
	DeliveryTimeDays *int
}

// PriceChange 单个商品的调价前后对照
type PriceChange struct {
	UUID     string       `json:"uuid"`
	Model    string       `json:"model"`
	OldPrice models.Money `json:"old_price"`
	NewPrice models.Money `json:"new_price"`
}

// BulkPriceResult 批量调价结果
type BulkPriceResult struct {
	UpdatedCount int
	Changes      []PriceChange
}

// ClearOldStockResult 过期库存清理结果
type ClearOldStockResult struct {
	DeletedCount int64
	Deleted      []models.Product
}

// CreateProduct 新建商品：类型/品牌需在许可清单内，主键冲突报错
func (s *ProductAdminService) CreateProduct(input CreateProductInput) (*models.Product, error) {
	productType, err := ValidateStringParam("type", input.Type)
	if err != nil {
		return nil, err
	}
	brand, err := ValidateStringParam("brand", input.Brand)
	if err != nil {
		return nil, err
	}
	model, err := ValidateStringParam("model", input.Model)
	if err != nil {
		return nil, err
	}
	if productType == "" || brand == "" || model == "" {
		return nil, ErrInvalidParam
	}
	if input.Price < 0 {
		return nil, ErrInvalidPrice
	}

	allowed, err := s.validProductRepo.ExistsTypeBrand(productType, brand)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrInvalidTypeBrand
	}

	id := input.UUID
	if id == "" {
		id = uuid.NewString()
	} else {
		exists, err := s.productRepo.ExistsUUID(id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrProductUUIDConflict
		}
	}

	deliveryDays := input.DeliveryTimeDays
	if deliveryDays <= 0 {
		deliveryDays = constants.DefaultDeliveryTimeDays
	}
	specs := input.Specs
	if specs == nil {
		specs = map[string]interface{}{}
	}

	product := &models.Product{
		UUID:             id,
		Type:             productType,
		Brand:            brand,
		Model:            model,
		Price:            models.NewMoneyFromFloat(input.Price),
		Discounts:        input.Discounts,
		Specs:            specs,
		SearchCount:      0,
		DeliveryTimeDays: deliveryDays,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct 部分更新商品：先合并再校验最终的类型/品牌组合
func (s *ProductAdminService) UpdateProduct(id string, input UpdateProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByUUID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if input.Type != nil {
		v, err := ValidateStringParam("type", *input.Type)
		if err != nil {
			return nil, err
		}
		product.Type = v
	}
	if input.Brand != nil {
		v, err := ValidateStringParam("brand", *input.Brand)
		if err != nil {
			return nil, err
		}
		product.Brand = v
	}
	if input.Model != nil {
		v, err := ValidateStringParam("model", *input.Model)
		if err != nil {
			return nil, err
		}
		product.Model = v
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, ErrInvalidPrice
		}
		product.Price = models.NewMoneyFromFloat(*input.Price)
	}
	if input.Discounts != nil {
		product.Discounts = *input.Discounts
	}
	if input.Specs != nil {
		product.Specs = input.Specs
	}
	if input.DeliveryTimeDays != nil {
		if *input.DeliveryTimeDays <= 0 {
			return nil, ErrInvalidParam
		}
		product.DeliveryTimeDays = *input.DeliveryTimeDays
	}

	allowed, err := s.validProductRepo.ExistsTypeBrand(product.Type, product.Brand)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrInvalidTypeBrand
	}

	if err := s.productRepo.Save(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct 删除商品并回显被删行
func (s *ProductAdminService) DeleteProduct(id string) (*models.Product, error) {
	product, err := s.productRepo.GetByUUID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if err := s.productRepo.Delete(id); err != nil {
		return nil, err
	}
	return product, nil
}

// ClearanceSale 清仓打折：活动窗口内对截止日前上架的商品统一降价
func (s *ProductAdminService) ClearanceSale(startDate, cutoffDate time.Time, percentage float64) (*BulkPriceResult, error) {
	if percentage < 0 || percentage > 100 {
		return nil, ErrInvalidPercentage
	}
	now := s.nowFn()
	windowEnd := startDate.AddDate(0, 0, s.clearanceWindowDays)
	if now.Before(startDate) || now.After(windowEnd) {
		return nil, ErrClearanceNotActive
	}

	factor := decimal.NewFromFloat(1 - percentage/100)
	return s.adjustPrices(func(repo repository.ProductRepository) ([]models.Product, error) {
		return repo.ListCreatedBefore(cutoffDate)
	}, factor)
}

// IncreasePriceByDateRange 按上架时间区间统一涨价
func (s *ProductAdminService) IncreasePriceByDateRange(start, end time.Time, percentage float64) (*BulkPriceResult, error) {
	if percentage < 0 {
		return nil, ErrInvalidPercentage
	}
	factor := decimal.NewFromFloat(1 + percentage/100)
	return s.adjustPrices(func(repo repository.ProductRepository) ([]models.Product, error) {
		return repo.ListCreatedBetween(start, end)
	}, factor)
}

// adjustPrices 在单个事务内完成选品与调价，记录每件商品的前后价格
func (s *ProductAdminService) adjustPrices(
	list func(repo repository.ProductRepository) ([]models.Product, error),
	factor decimal.Decimal,
) (*BulkPriceResult, error) {
	result := &BulkPriceResult{}
	err := s.productRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.productRepo.WithTx(tx)
		products, err := list(repo)
		if err != nil {
			return err
		}
		for i := range products {
			p := &products[i]
			oldPrice := p.Price
			p.Price = models.NewMoneyFromDecimal(oldPrice.Decimal.Mul(factor))
			if err := repo.Save(p); err != nil {
				return err
			}
			result.Changes = append(result.Changes, PriceChange{
				UUID:     p.UUID,
				Model:    p.Model,
				OldPrice: oldPrice,
				NewPrice: p.Price,
			})
		}
		result.UpdatedCount = len(products)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ClearOldStock 删除截止日前上架的商品并回显删除明细
func (s *ProductAdminService) ClearOldStock(cutoff time.Time) (*ClearOldStockResult, error) {
	result := &ClearOldStockResult{}
	err := s.productRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.productRepo.WithTx(tx)
		products, err := repo.ListCreatedBefore(cutoff)
		if err != nil {
			return err
		}
		uuids := make([]string, 0, len(products))
		for i := range products {
			uuids = append(uuids, products[i].UUID)
		}
		deleted, err := repo.DeleteByUUIDs(uuids)
		if err != nil {
			return err
		}
		result.DeletedCount = deleted
		result.Deleted = products
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
