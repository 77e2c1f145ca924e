package service

import (
	"reflect"
	"time"

	"github.com/shopkart-next/internal/constants"
	"github.com/shopkart-next/internal/models"
	"github.com/shopkart-next/internal/repository"

	"gorm.io/gorm"
)

// CatalogService 商品目录查询服务
type CatalogService struct {
	productRepo       repository.ProductRepository
	discountThreshold float64
	nowFn             func() time.Time
}

// NewCatalogService 创建目录查询服务
func NewCatalogService(productRepo repository.ProductRepository, discountThreshold float64) *CatalogService {
	if discountThreshold <= 0 {
		discountThreshold = constants.DefaultDiscountThreshold
	}
	return &CatalogService{
		productRepo:       productRepo,
		discountThreshold: discountThreshold,
		nowFn:             time.Now,
	}
}

// UUIDAudit 商品主键审计结果
type UUIDAudit struct {
	UUIDs      []string
	Duplicates []string
}

// ListProducts 模糊过滤商品（品牌/类型/型号均可选）
func (s *CatalogService) ListProducts(filter repository.ProductFilter) ([]models.Product, error) {
	cleaned, err := cleanFilter(filter)
	if err != nil {
		return nil, err
	}
	return s.productRepo.ListFuzzy(cleaned)
}

// FilterProducts 精确过滤商品（区分大小写）
func (s *CatalogService) FilterProducts(filter repository.ProductFilter) ([]models.Product, error) {
	cleaned, err := cleanFilter(filter)
	if err != nil {
		return nil, err
	}
	return s.productRepo.ListExact(cleaned)
}

// CountProducts 统计匹配商品数，至少需要一个过滤条件
func (s *CatalogService) CountProducts(filter repository.ProductFilter) (int, []models.Product, error) {
	cleaned, err := cleanFilter(filter)
	if err != nil {
		return 0, nil, err
	}
	if cleaned.Empty() {
		return 0, nil, ErrNoFilterProvided
	}
	products, err := s.productRepo.ListExactFold(cleaned)
	if err != nil {
		return 0, nil, err
	}
	return len(products), products, nil
}

// SearchProducts 搜索商品并在同一事务内累加命中商品的搜索计数
func (s *CatalogService) SearchProducts(query string) ([]models.Product, error) {
	cleaned, err := ValidateStringParam("query", query)
	if err != nil {
		return nil, err
	}

	var products []models.Product
	err = s.productRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.productRepo.WithTx(tx)
		matched, err := repo.Search(cleaned)
		if err != nil {
			return err
		}
		uuids := make([]string, 0, len(matched))
		for i := range matched {
			uuids = append(uuids, matched[i].UUID)
		}
		if err := repo.IncrementSearchCount(uuids); err != nil {
			return err
		}
		// 返回累加后的计数，避免再读一次
		for i := range matched {
			matched[i].SearchCount++
		}
		products = matched
		return nil
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

// LatestProducts 按上架时间倒序返回商品
func (s *CatalogService) LatestProducts() ([]models.Product, error) {
	return s.productRepo.ListByCreatedDesc()
}

// LatestDiscountedProducts 折扣高于阈值的商品，按上架时间倒序
func (s *CatalogService) LatestDiscountedProducts() ([]models.Product, error) {
	return s.productRepo.ListDiscountedAbove(s.discountThreshold)
}

// DiscountedProducts 按折扣倒序返回商品
func (s *CatalogService) DiscountedProducts() ([]models.Product, error) {
	return s.productRepo.ListByDiscountDesc()
}

// MostSearchedProducts 按搜索热度倒序返回商品
func (s *CatalogService) MostSearchedProducts() ([]models.Product, error) {
	return s.productRepo.ListBySearchCountDesc()
}

// ProductsByPriceRange 按价格闭区间返回商品
func (s *CatalogService) ProductsByPriceRange(minPrice, maxPrice float64) ([]models.Product, error) {
	if minPrice < 0 || maxPrice < minPrice {
		return nil, ErrInvalidParam
	}
	return s.productRepo.ListByPriceRange(minPrice, maxPrice)
}

// ProductsBySpecs 按规格子集匹配返回商品
func (s *CatalogService) ProductsBySpecs(specs map[string]interface{}) ([]models.Product, error) {
	if len(specs) == 0 {
		return nil, ErrInvalidSpecsPayload
	}
	all, err := s.productRepo.ListAll()
	if err != nil {
		return nil, err
	}
	var matched []models.Product
	for _, p := range all {
		if specsMatch(p.Specs, specs) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// RecentProducts 最近 24 小时上架的商品
func (s *CatalogService) RecentProducts() ([]models.Product, error) {
	return s.productRepo.ListCreatedAfter(s.nowFn().Add(-24 * time.Hour))
}

// ProductUUIDs 返回全部商品主键并审计重复值
func (s *CatalogService) ProductUUIDs() (*UUIDAudit, error) {
	products, err := s.productRepo.ListAll()
	if err != nil {
		return nil, err
	}
	audit := &UUIDAudit{UUIDs: make([]string, 0, len(products))}
	seen := make(map[string]int, len(products))
	for _, p := range products {
		audit.UUIDs = append(audit.UUIDs, p.UUID)
		seen[p.UUID]++
		if seen[p.UUID] == 2 {
			audit.Duplicates = append(audit.Duplicates, p.UUID)
		}
	}
	return audit, nil
}

// GetProduct 按主键查找商品
func (s *CatalogService) GetProduct(uuid string) (*models.Product, error) {
	product, err := s.productRepo.GetByUUID(uuid)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// DeliveryEstimate 查询商品的交付天数
func (s *CatalogService) DeliveryEstimate(uuid string) (*models.Product, error) {
	return s.GetProduct(uuid)
}

func cleanFilter(filter repository.ProductFilter) (repository.ProductFilter, error) {
	var cleaned repository.ProductFilter
	var err error
	if cleaned.Type, err = ValidateStringParam("type", filter.Type); err != nil {
		return cleaned, err
	}
	if cleaned.Brand, err = ValidateStringParam("brand", filter.Brand); err != nil {
		return cleaned, err
	}
	if cleaned.Model, err = ValidateStringParam("model", filter.Model); err != nil {
		return cleaned, err
	}
	return cleaned, nil
}

// specsMatch 判断 want 是否为 have 的子集（值需完全相等）
func specsMatch(have models.JSON, want map[string]interface{}) bool {
	if len(have) == 0 {
		return false
	}
	for key, expected := range want {
		actual, ok := have[key]
		if !ok || !reflect.DeepEqual(actual, expected) {
			return false
		}
	}
	return true
}
