package cart

import "github.com/shopkart-next/internal/provider"

// Handler 购物车/用户接口处理器入口
type Handler struct {
	*provider.Container
}

// New 创建购物车处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
