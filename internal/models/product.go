package models

import (
	"time"
)

// Product 商品表
type Product struct {
	UUID             string    `gorm:"type:varchar(36);primarykey" json:"uuid"`           // 商品唯一标识
	Type             string    `gorm:"type:varchar(100);not null;index" json:"type"`      // 商品类型
	Brand            string    `gorm:"type:varchar(100);not null;index" json:"brand"`     // 品牌
	Model            string    `gorm:"type:varchar(100);not null" json:"model"`           // 型号
	Price            Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 价格
	Discounts        float64   `gorm:"not null;default:0" json:"discounts"`               // 折扣百分比（0-100）
	Specs            JSON      `gorm:"type:json" json:"specs"`                            // 规格参数
	SearchCount      int       `gorm:"not null;default:0" json:"search_count"`            // 被搜索次数
	DeliveryTimeDays int       `gorm:"not null;default:7" json:"delivery_time_days"`      // 预计送达天数
	CreatedAt        time.Time `gorm:"index" json:"created_at"`                           // 上架时间
	UpdatedAt        time.Time `json:"updated_at"`                                        // 更新时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
