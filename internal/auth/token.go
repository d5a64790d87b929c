package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrSecretMissing 未配置 JWT 密钥
	ErrSecretMissing = errors.New("jwt secret missing")
	// ErrTokenInvalid 令牌无效或签名不匹配
	ErrTokenInvalid = errors.New("token invalid")
)

// UserClaims 用户令牌声明
type UserClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenContext JWT 令牌鉴权上下文
// 外部登录流程下发令牌后通过 SetToken 注入；核心只读取登录态与邮箱。
type TokenContext struct {
	mu     sync.Mutex
	secret string
	claims *UserClaims
}

// NewTokenContext 创建令牌鉴权上下文
func NewTokenContext(secret string) *TokenContext {
	return &TokenContext{secret: secret}
}

// SetToken 解析并保存令牌（仅接受 HS256）
func (c *TokenContext) SetToken(tokenString string) error {
	if c.secret == "" {
		return ErrSecretMissing
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &UserClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(c.secret), nil
	})
	if err != nil || !token.Valid {
		return ErrTokenInvalid
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.claims = claims
	return nil
}

// ClearToken 清除令牌（登出）
func (c *TokenContext) ClearToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.claims = nil
}

// IsAuthenticated 是否持有未过期的合法令牌
func (c *TokenContext) IsAuthenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.claims == nil {
		return false
	}
	if c.claims.ExpiresAt != nil && c.claims.ExpiresAt.Before(time.Now()) {
		return false
	}
	return true
}

// CurrentUserEmail 当前用户邮箱（未登录时为空串）
func (c *TokenContext) CurrentUserEmail() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.claims == nil {
		return ""
	}
	return c.claims.Email
}
