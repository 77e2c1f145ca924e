package models

import "time"

// ValidProductDetail 商品类型/品牌白名单表
type ValidProductDetail struct {
	ID          uint      `gorm:"primarykey" json:"id"`                            // 主键
	Product     string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"product"` // 商品名称
	Type        string    `gorm:"type:varchar(100);not null;index" json:"type"`    // 商品类型
	Brand       string    `gorm:"type:varchar(100);not null;index" json:"brand"`   // 品牌
	SearchCount int       `gorm:"not null;default:0" json:"search_count"`          // 历史遗留字段，业务不再写入
	CreatedAt   time.Time `json:"created_at"`                                      // 创建时间
}

// TableName 指定表名
func (ValidProductDetail) TableName() string {
	return "valid_product_details"
}
