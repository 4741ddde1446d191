package backoffice

import "github.com/salesdesk-next/internal/provider"

// Handler 后台销售运营接口处理器入口
// 说明：该处理器仅用于内部后台 API。
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
