package service

import (
	"time"

	"github.com/shopkart-next/internal/models"
	"github.com/shopkart-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartService 购物车与结算服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	nowFn       func() time.Time
}

// NewCartService 创建购物车服务
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		nowFn:       time.Now,
	}
}

// AddToCartResult 加购结果
type AddToCartResult struct {
	Product    *models.Product
	Quantity   int
	TotalItems int64
	AddedAt    time.Time
}

// RemoveQuantityResult 减购结果
type RemoveQuantityResult struct {
	Product           *models.Product
	RemovedQuantity   int
	RemainingQuantity int
}

// PurchaseItem 单笔结算明细
type PurchaseItem struct {
	Product   *models.Product
	Quantity  int
	UnitPrice models.Money
	TotalCost models.Money
}

// PurchaseAllResult 整车结算结果
type PurchaseAllResult struct {
	Items         []PurchaseItem
	TotalCost     models.Money
	TotalQuantity int
}

// MostPurchasedResult 最热加购商品统计
type MostPurchasedResult struct {
	Product       *models.Product
	TotalQuantity int64
}

// AddToCart 加购：同一商品累加数量，返回加购后明细
func (s *CartService) AddToCart(username, productUUID string, quantity int) (*AddToCartResult, error) {
	username, productUUID, err := s.cleanCartKeys(username, productUUID)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if err := s.requireUser(username); err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByUUID(productUUID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if err := s.cartRepo.AddQuantity(username, productUUID, quantity); err != nil {
		return nil, err
	}
	item, err := s.cartRepo.Get(username, productUUID)
	if err != nil {
		return nil, err
	}
	total, err := s.cartRepo.TotalQuantity(username)
	if err != nil {
		return nil, err
	}
	lineQuantity := quantity
	if item != nil {
		lineQuantity = item.Quantity
	}
	return &AddToCartResult{
		Product:    product,
		Quantity:   lineQuantity,
		TotalItems: total,
		AddedAt:    s.nowFn(),
	}, nil
}

// RemoveQuantity 减购：数量减到零时整行删除
func (s *CartService) RemoveQuantity(username, productUUID string, quantity int) (*RemoveQuantityResult, error) {
	username, productUUID, err := s.cleanCartKeys(username, productUUID)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	item, err := s.cartRepo.Get(username, productUUID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	if quantity > item.Quantity {
		return nil, ErrQuantityExceedsCart
	}

	affected, err := s.cartRepo.RemoveQuantity(username, productUUID, quantity)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// 预检后行被并发请求缩减
		return nil, ErrQuantityExceedsCart
	}
	after, err := s.cartRepo.Get(username, productUUID)
	if err != nil {
		return nil, err
	}
	remaining := 0
	if after != nil {
		remaining = after.Quantity
	}

	product, err := s.productRepo.GetByUUID(productUUID)
	if err != nil {
		return nil, err
	}
	return &RemoveQuantityResult{
		Product:           product,
		RemovedQuantity:   quantity,
		RemainingQuantity: remaining,
	}, nil
}

// PurchaseSingle 结算单件商品：按折后价计费并移出购物车
func (s *CartService) PurchaseSingle(username, productUUID string) (*PurchaseItem, error) {
	username, productUUID, err := s.cleanCartKeys(username, productUUID)
	if err != nil {
		return nil, err
	}
	if err := s.requireUser(username); err != nil {
		return nil, err
	}
	item, err := s.cartRepo.Get(username, productUUID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	product, err := s.productRepo.GetByUUID(productUUID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	unit := discountedPrice(product)
	cost := unit.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
	if err := s.cartRepo.Delete(username, productUUID); err != nil {
		return nil, err
	}
	return &PurchaseItem{
		Product:   product,
		Quantity:  item.Quantity,
		UnitPrice: unit,
		TotalCost: models.NewMoneyFromDecimal(cost),
	}, nil
}

// PurchaseAll 整车结算：先校验全部商品仍在售，再按原价计费并清空购物车
func (s *CartService) PurchaseAll(username string) (*PurchaseAllResult, error) {
	username, err := s.cleanUsername(username)
	if err != nil {
		return nil, err
	}
	if err := s.requireUser(username); err != nil {
		return nil, err
	}
	items, err := s.cartRepo.ListByUser(username)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	result := &PurchaseAllResult{}
	total := decimal.Zero
	for i := range items {
		product := items[i].Product
		if product == nil {
			product, err = s.productRepo.GetByUUID(items[i].ProductUUID)
			if err != nil {
				return nil, err
			}
		}
		if product == nil {
			return nil, ErrProductNotFound
		}
		cost := product.Price.Decimal.Mul(decimal.NewFromInt(int64(items[i].Quantity)))
		total = total.Add(cost)
		result.Items = append(result.Items, PurchaseItem{
			Product:   product,
			Quantity:  items[i].Quantity,
			UnitPrice: product.Price,
			TotalCost: models.NewMoneyFromDecimal(cost),
		})
		result.TotalQuantity += items[i].Quantity
	}
	result.TotalCost = models.NewMoneyFromDecimal(total)

	err = s.cartRepo.Transaction(func(tx *gorm.DB) error {
		_, err := s.cartRepo.WithTx(tx).ClearByUser(username)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteSingle 整行移出购物车
func (s *CartService) DeleteSingle(username, productUUID string) (*models.CartItem, error) {
	username, productUUID, err := s.cleanCartKeys(username, productUUID)
	if err != nil {
		return nil, err
	}
	item, err := s.cartRepo.Get(username, productUUID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	if err := s.cartRepo.Delete(username, productUUID); err != nil {
		return nil, err
	}
	return item, nil
}

// ClearCart 清空用户购物车，返回清除行数
func (s *CartService) ClearCart(username string) (int64, error) {
	username, err := s.cleanUsername(username)
	if err != nil {
		return 0, err
	}
	if err := s.requireUser(username); err != nil {
		return 0, err
	}
	return s.cartRepo.ClearByUser(username)
}

// MostPurchased 汇总在途购物车中加购量最高的商品
func (s *CartService) MostPurchased() (*MostPurchasedResult, error) {
	top, err := s.cartRepo.MostCarted()
	if err != nil {
		return nil, err
	}
	if top == nil {
		return nil, ErrCartEmpty
	}
	product, err := s.productRepo.GetByUUID(top.ProductUUID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return &MostPurchasedResult{Product: product, TotalQuantity: top.TotalQuantity}, nil
}

func (s *CartService) cleanUsername(username string) (string, error) {
	cleaned, err := ValidateStringParam("username", username)
	if err != nil {
		return "", err
	}
	if cleaned == "" {
		return "", ErrInvalidParam
	}
	return cleaned, nil
}

func (s *CartService) cleanCartKeys(username, productUUID string) (string, string, error) {
	username, err := s.cleanUsername(username)
	if err != nil {
		return "", "", err
	}
	if productUUID == "" {
		return "", "", ErrInvalidParam
	}
	return username, productUUID, nil
}

func (s *CartService) requireUser(username string) error {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return nil
}

// discountedPrice 折后单价 = 原价 × (1 - 折扣/100)
func discountedPrice(product *models.Product) models.Money {
	factor := decimal.NewFromFloat(1 - product.Discounts/100)
	return models.NewMoneyFromDecimal(product.Price.Decimal.Mul(factor))
}
