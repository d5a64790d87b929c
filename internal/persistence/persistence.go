package persistence

import (
	"errors"

	"github.com/cartflow/internal/models"
)

var (
	// ErrNotFound 存储中不存在快照
	ErrNotFound = errors.New("cart snapshot not found")
	// ErrMalformed 快照内容无法解析
	ErrMalformed = errors.New("cart snapshot malformed")
)

// Store 购物车持久化接口
// 仅负责行列表的存取；调用方（购物车）决定对错误的容忍策略。
type Store interface {
	Load() ([]models.CartLine, error)
	Save(lines []models.CartLine) error
}
