package auth

// Context 鉴权上下文（核心只读消费）
// IsAuthenticated 决定能否提交订单；CurrentUserEmail 仅用于预填联系表单。
type Context interface {
	IsAuthenticated() bool
	CurrentUserEmail() string
}

// Static 固定鉴权上下文（配置驱动，适合开发与测试）
type Static struct {
	Authenticated bool
	Email         string
}

// IsAuthenticated 是否已登录
func (s Static) IsAuthenticated() bool {
	return s.Authenticated
}

// CurrentUserEmail 当前用户邮箱
func (s Static) CurrentUserEmail() string {
	return s.Email
}
