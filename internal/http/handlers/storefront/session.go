package storefront

import (
	"github.com/cartflow/internal/auth"
	"github.com/cartflow/internal/http/response"

	"github.com/gin-gonic/gin"
)

// SessionTokenRequest 登录令牌注入请求
type SessionTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// SetSessionToken 注入外部登录流程下发的令牌
// 仅 token 鉴权模式下可用；static 模式的登录态来自配置。
func (h *Handler) SetSessionToken(c *gin.Context) {
	tokenCtx, ok := h.AuthContext.(*auth.TokenContext)
	if !ok {
		response.Error(c, response.CodeBadRequest, "error.auth_mode_static")
		return
	}
	var req SessionTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, response.CodeBadRequest, "error.bad_request")
		return
	}
	if err := tokenCtx.SetToken(req.Token); err != nil {
		response.Unauthorized(c, "error.token_invalid")
		return
	}
	response.Success(c, gin.H{
		"authenticated": tokenCtx.IsAuthenticated(),
		"email":         tokenCtx.CurrentUserEmail(),
	})
}

// ClearSessionToken 清除令牌（登出）
func (h *Handler) ClearSessionToken(c *gin.Context) {
	if tokenCtx, ok := h.AuthContext.(*auth.TokenContext); ok {
		tokenCtx.ClearToken()
	}
	response.Success(c, gin.H{"authenticated": false})
}

// GetSession 查询当前登录态
func (h *Handler) GetSession(c *gin.Context) {
	response.Success(c, gin.H{
		"authenticated": h.AuthContext.IsAuthenticated(),
		"email":         h.AuthContext.CurrentUserEmail(),
	})
}
