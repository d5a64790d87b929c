package persistence

import (
	"sync"

	"github.com/cartflow/internal/models"
)

// MemoryStore 内存实现（测试与禁用存储场景）
type MemoryStore struct {
	mu       sync.Mutex
	snapshot []models.CartLine
	saved    bool

	// FailSave 置为非 nil 时 Save 返回该错误（测试写失败路径）
	FailSave error
	// FailLoad 置为非 nil 时 Load 返回该错误
	FailLoad error
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load 读取快照
func (s *MemoryStore) Load() ([]models.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailLoad != nil {
		return nil, s.FailLoad
	}
	if !s.saved {
		return nil, ErrNotFound
	}
	lines := make([]models.CartLine, len(s.snapshot))
	copy(lines, s.snapshot)
	return lines, nil
}

// Save 写入快照
func (s *MemoryStore) Save(lines []models.CartLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSave != nil {
		return s.FailSave
	}
	s.snapshot = make([]models.CartLine, len(lines))
	copy(s.snapshot, lines)
	s.saved = true
	return nil
}
