package persistence

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cartflow/internal/models"

	"gorm.io/gorm"
)

// DatabaseStore 数据库实现（键 -> JSON 快照）
type DatabaseStore struct {
	db  *gorm.DB
	key string
}

// NewDatabaseStore 创建数据库存储
func NewDatabaseStore(db *gorm.DB, key string) *DatabaseStore {
	return &DatabaseStore{db: db, key: key}
}

// Load 读取快照记录
func (s *DatabaseStore) Load() ([]models.CartLine, error) {
	var record models.CartRecord
	if err := s.db.Where("key = ?", s.key).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	raw, err := json.Marshal(record.ValueJSON)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	var snapshot models.CartSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return snapshot.Items, nil
}

// Save 更新或创建快照记录
func (s *DatabaseStore) Save(lines []models.CartLine) error {
	raw, err := json.Marshal(models.CartSnapshot{Items: lines})
	if err != nil {
		return fmt.Errorf("marshal cart snapshot failed: %w", err)
	}
	var value models.JSON
	if err := json.Unmarshal(raw, &value); err != nil {
		return fmt.Errorf("encode cart snapshot failed: %w", err)
	}

	var record models.CartRecord
	err = s.db.Where("key = ?", s.key).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = models.CartRecord{Key: s.key, ValueJSON: value}
		return s.db.Create(&record).Error
	}
	if err != nil {
		return err
	}
	record.ValueJSON = value
	return s.db.Save(&record).Error
}
