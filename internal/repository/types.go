package repository

// ProductFilter 查询商品的过滤条件（字段为空表示不参与过滤）
type ProductFilter struct {
	Type  string
	Brand string
	Model string
}

// Empty 是否未提供任何过滤条件
func (f ProductFilter) Empty() bool {
	return f.Type == "" && f.Brand == "" && f.Model == ""
}

// MostCartedProduct 购物车聚合结果
type MostCartedProduct struct {
	ProductUUID   string `gorm:"column:product_uuid"`
	TotalQuantity int64  `gorm:"column:total_quantity"`
}
