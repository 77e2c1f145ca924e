package models

import (
	"time"
)

// CartItem 购物车项
type CartItem struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                                        // 主键
	Username    string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_cart_user_product" json:"username"` // 用户名
	ProductUUID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_user_product" json:"product_uuid"` // 商品唯一标识
	Quantity    int       `gorm:"not null" json:"quantity"`                                                    // 数量
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                                                     // 创建时间
	UpdatedAt   time.Time `gorm:"index" json:"updated_at"`                                                     // 更新时间

	Product *Product `gorm:"foreignKey:ProductUUID;references:UUID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
