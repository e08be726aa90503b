package admin

import "github.com/catalogkit/internal/provider"

// Handler 后台配置接口处理器入口
// 说明：仅服务管理端 API，依赖通过容器注入。
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
