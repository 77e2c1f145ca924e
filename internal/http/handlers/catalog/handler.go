package catalog

import "github.com/shopkart-next/internal/provider"

// Handler 商品目录接口处理器入口
type Handler struct {
	*provider.Container
}

// New 创建目录处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
