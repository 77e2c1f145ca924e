package main

import (
	"time"

	"github.com/shopkart-next/internal/config"
	"github.com/shopkart-next/internal/logger"
	"github.com/shopkart-next/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加商品类型/品牌白名单
	allowedPairs := []models.ValidProductDetail{
		{Product: "Lenovo Laptop", Type: "Laptop", Brand: "Lenovo"},
		{Product: "Dell Laptop", Type: "Laptop", Brand: "Dell"},
		{Product: "HP Laptop", Type: "Laptop", Brand: "HP"},
		{Product: "Samsung Phone", Type: "Phone", Brand: "Samsung"},
		{Product: "Apple Phone", Type: "Phone", Brand: "Apple"},
		{Product: "Samsung Tablet", Type: "Tablet", Brand: "Samsung"},
		{Product: "Sony Headphones", Type: "Headphones", Brand: "Sony"},
	}

	for _, pair := range allowedPairs {
		var existing models.ValidProductDetail
		if err := models.DB.Where("product = ?", pair.Product).First(&existing).Error; err != nil {
			// 不存在则创建
			if err := models.DB.Create(&pair).Error; err != nil {
				stdLog.Printf("Failed to create allowed pair %s: %v", pair.Product, err)
			} else {
				stdLog.Printf("Created allowed pair: %s", pair.Product)
			}
		} else {
			stdLog.Printf("Allowed pair already exists: %s", pair.Product)
		}
	}

	// 添加演示商品
	products := []models.Product{
		{
			UUID:  uuid.NewString(),
			Type:  "Laptop",
			Brand: "Lenovo",
			Model: "ThinkPad X1 Carbon",
			Price: models.NewMoneyFromDecimal(decimal.NewFromInt(1499)),
			Specs: models.JSON(map[string]interface{}{
				"ram":     "16GB",
				"storage": "512GB SSD",
				"screen":  "14 inch",
			}),
			Discounts:        10,
			DeliveryTimeDays: 5,
		},
		{
			UUID:  uuid.NewString(),
			Type:  "Phone",
			Brand: "Samsung",
			Model: "Galaxy S24",
			Price: models.NewMoneyFromDecimal(decimal.NewFromInt(899)),
			Specs: models.JSON(map[string]interface{}{
				"ram":     "12GB",
				"storage": "256GB",
				"screen":  "6.2 inch",
			}),
			DeliveryTimeDays: 3,
		},
		{
			UUID:  uuid.NewString(),
			Type:  "Headphones",
			Brand: "Sony",
			Model: "WH-1000XM5",
			Price: models.NewMoneyFromDecimal(decimal.NewFromInt(349)),
			Specs: models.JSON(map[string]interface{}{
				"wireless":   true,
				"anc":        true,
				"battery_hr": 30,
			}),
			Discounts:        15,
			DeliveryTimeDays: 7,
		},
	}

	for _, p := range products {
		var existing models.Product
		if err := models.DB.Where("type = ? AND brand = ? AND model = ?", p.Type, p.Brand, p.Model).First(&existing).Error; err != nil {
			if err := models.DB.Create(&p).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", p.Model, err)
			} else {
				stdLog.Printf("Created product: %s (%s)", p.Model, p.UUID)
			}
		} else {
			stdLog.Printf("Product already exists: %s", p.Model)
		}
	}

	// 添加演示用户
	var existingUser models.UserRegistration
	if err := models.DB.Where("username = ?", "demo").First(&existingUser).Error; err != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte("demo123456"), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Fatalf("Failed to hash password: %v", err)
		}
		dob := time.Date(1995, 6, 15, 0, 0, 0, 0, time.UTC)
		user := models.UserRegistration{
			Username:     "demo",
			FirstName:    "Demo",
			LastName:     "User",
			DOB:          &dob,
			PasswordHash: string(hash),
			Email:        "demo@example.com",
			Phone:        "13800000000",
			Address:      "1 Demo Street",
			Category:     "regular",
		}
		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Printf("Failed to create user demo: %v", err)
		} else {
			stdLog.Printf("Created user: demo (password: demo123456)")
		}
	} else {
		stdLog.Printf("User already exists: demo")
	}

	stdLog.Println("Seed completed")
}
