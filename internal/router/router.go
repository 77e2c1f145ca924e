package router

import (
	"fmt"
	"strings"

	"github.com/shopkart-next/internal/cache"
	"github.com/shopkart-next/internal/config"
	"github.com/shopkart-next/internal/constants"
	carthandlers "github.com/shopkart-next/internal/http/handlers/cart"
	cataloghandlers "github.com/shopkart-next/internal/http/handlers/catalog"
	"github.com/shopkart-next/internal/logger"
	"github.com/shopkart-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（目录/购物车分组）
	catalogHandler := cataloghandlers.New(c)
	cartHandler := carthandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	// 批量写接口限流，防止清仓/调价/清库存被误刷
	bulkRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:bulk", redisPrefix),
		WindowSeconds: cfg.Security.BulkRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.BulkRateLimit.MaxAttempts,
	}
	bulkLimit := RateLimitMiddleware(redisClient, bulkRule, KeyByIP)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 建表
	r.POST("/create-tables", catalogHandler.CreateTables)

	// 商品目录查询
	r.GET("/products", catalogHandler.ListProducts)
	r.GET("/products/filter", catalogHandler.FilterProducts)
	r.GET("/products/search", catalogHandler.SearchProducts)
	r.GET("/products/count", catalogHandler.CountProducts)
	r.GET("/products/latest", catalogHandler.LatestProducts)
	r.GET("/products/latest-discounted", catalogHandler.LatestDiscountedProducts)
	r.GET("/products/discounted", catalogHandler.DiscountedProducts)
	r.GET("/products/most_searched", catalogHandler.MostSearchedProducts)
	r.GET("/products/price-range", catalogHandler.ProductsByPriceRange)
	r.POST("/products/specs", catalogHandler.ProductsBySpecs)
	r.GET("/products/recent/24hrs", catalogHandler.RecentProducts)
	r.GET("/products/uuids", catalogHandler.ProductUUIDs)
	r.GET("/products/delivery/:uuid", catalogHandler.DeliveryEstimate)
	r.GET("/products/:uuid", catalogHandler.GetProduct)

	// 商品目录写入
	r.POST("/products", catalogHandler.CreateProduct)
	r.PUT("/products/:uuid", catalogHandler.UpdateProduct)
	r.DELETE("/products/:uuid", catalogHandler.DeleteProduct)
	r.PATCH("/products/clearance_sale", bulkLimit, catalogHandler.ClearanceSale)
	r.PATCH("/products/bulk/increase-price/by-date-range", bulkLimit, catalogHandler.IncreasePriceByDateRange)
	r.DELETE("/products/clear_old_stock", bulkLimit, catalogHandler.ClearOldStock)

	// 购物车与结算
	r.POST("/add_to_cart", cartHandler.AddToCart)
	r.DELETE("/remove_quantity_from_cart", cartHandler.RemoveQuantity)
	r.POST("/purchase-single-cart-product", cartHandler.PurchaseSingle)
	r.POST("/purchase-all-cart-products", cartHandler.PurchaseAll)
	r.DELETE("/cart/delete-single-product", cartHandler.DeleteSingle)
	r.DELETE("/cart/clear", cartHandler.ClearCart)
	r.GET("/most-purchased-product", cartHandler.MostPurchased)

	// 用户
	r.POST("/users/register", cartHandler.Register)
	r.GET("/users/:username", cartHandler.GetProfile)

	return r
}
