package storefront

import "github.com/cartflow/internal/provider"

// Handler 店面侧接口处理器入口
// 说明：该处理器是视图层对核心状态模块的薄适配，不承载业务规则。
type Handler struct {
	*provider.Container
}

// New 创建店面处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
