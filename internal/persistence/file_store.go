package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cartflow/internal/models"
)

// FileStore 本地 JSON 文件实现
// 单文件即单键：整个快照以 { "items": [...] } 形态整体读写。
type FileStore struct {
	path string
}

// NewFileStore 创建文件存储
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load 读取快照文件
func (s *FileStore) Load() ([]models.CartLine, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read cart file failed: %w", err)
	}
	var snapshot models.CartSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return snapshot.Items, nil
}

// Save 写入快照文件
// 先写临时文件再改名，避免写一半的文件在下次启动时被当作损坏快照。
func (s *FileStore) Save(lines []models.CartLine) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create cart dir failed: %w", err)
	}
	data, err := json.Marshal(models.CartSnapshot{Items: lines})
	if err != nil {
		return fmt.Errorf("marshal cart snapshot failed: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write cart file failed: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace cart file failed: %w", err)
	}
	return nil
}
