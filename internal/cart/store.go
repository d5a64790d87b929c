package cart

import (
	"sync"

	"github.com/cartflow/internal/logger"
	"github.com/cartflow/internal/models"
	"github.com/cartflow/internal/persistence"

	"go.uber.org/zap"
)

// Store 购物车状态的唯一可变持有者
// 所有行变更都经过它，身份合并规则不会在别处被绕过。
// 每次变更后同步触发一次尽力而为的持久化写入；写失败只记日志，
// 内存状态在本次会话内仍然有效。
type Store struct {
	mu      sync.Mutex
	lines   []models.CartLine
	index   map[string]int // 身份键 -> lines 下标
	isOpen  bool
	storage persistence.Store
	log     *zap.SugaredLogger
}

// LineInput 添加购物车行的输入（数量由合并规则决定，不由调用方指定）
type LineInput struct {
	ProductID  uint
	Attributes map[string]string
	Title      string
	UnitPrice  models.Money
	Image      string
}

// NewStore 创建购物车并从持久化存储回灌
// 存储缺失或内容损坏时静默回退为空购物车，不向上抛错。
func NewStore(storage persistence.Store, log *zap.SugaredLogger) *Store {
	if log == nil {
		log = logger.S()
	}
	s := &Store{
		index:   make(map[string]int),
		storage: storage,
		log:     log,
	}
	if storage == nil {
		return s
	}
	lines, err := storage.Load()
	if err != nil {
		if err != persistence.ErrNotFound {
			log.Warnw("cart_restore_failed", "error", err)
		}
		return s
	}
	for _, line := range lines {
		if line.Quantity < 1 {
			// 数量为 0 的行不应出现在快照中，出现则视为损坏数据丢弃
			continue
		}
		key := line.IdentityKey()
		if _, exists := s.index[key]; exists {
			continue
		}
		s.index[key] = len(s.lines)
		s.lines = append(s.lines, line)
	}
	return s
}

// AddItem 添加商品
// 身份（商品ID+属性集合）已存在时数量 +1，否则以数量 1 追加到末尾。
func (s *Store) AddItem(input LineInput) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := models.BuildIdentityKey(input.ProductID, input.Attributes)
	if pos, ok := s.index[key]; ok {
		s.lines[pos].Quantity++
		s.saveLocked()
		return
	}
	s.index[key] = len(s.lines)
	s.lines = append(s.lines, models.CartLine{
		ProductID:  input.ProductID,
		Attributes: cloneAttributes(input.Attributes),
		Title:      input.Title,
		UnitPrice:  input.UnitPrice,
		Image:      input.Image,
		Quantity:   1,
	})
	s.saveLocked()
}

// RemoveItem 删除购物车行
// attributes 为 nil 时删除该商品ID的第一条匹配行；非 nil 时只删除属性完全一致的行。
func (s *Store) RemoveItem(productID uint, attributes map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.findLocked(productID, attributes)
	if !ok {
		return
	}
	s.removeAtLocked(pos)
	s.saveLocked()
}

// UpdateQuantity 设置购物车行数量
// quantity <= 0 时按同样的匹配规则删除该行；不设数量上限。
func (s *Store) UpdateQuantity(productID uint, quantity int, attributes map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.findLocked(productID, attributes)
	if !ok {
		return
	}
	if quantity <= 0 {
		s.removeAtLocked(pos)
	} else {
		s.lines[pos].Quantity = quantity
	}
	s.saveLocked()
}

// Clear 清空购物车
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.index = make(map[string]int)
	s.saveLocked()
}

// Lines 返回行列表副本（保持插入顺序）
func (s *Store) Lines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]models.CartLine, len(s.lines))
	copy(lines, s.lines)
	return lines
}

// TotalItems 所有行数量之和
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice 所有行小计之和
func (s *Store) TotalPrice() models.Money {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := models.ZeroMoney()
	for _, line := range s.lines {
		total = total.AddMoney(line.LineTotal())
	}
	return total
}

// IsEmpty 购物车是否为空
func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines) == 0
}

// Open 打开购物车面板（仅 UI 可见性，不持久化）
func (s *Store) Open() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOpen = true
}

// Close 关闭购物车面板
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOpen = false
}

// Toggle 切换购物车面板可见性
func (s *Store) Toggle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOpen = !s.isOpen
}

// IsOpen 购物车面板是否可见
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isOpen
}

// findLocked 按匹配规则定位行；attributes 为 nil 时按商品ID取第一条
func (s *Store) findLocked(productID uint, attributes map[string]string) (int, bool) {
	if attributes == nil {
		for i, line := range s.lines {
			if line.ProductID == productID {
				return i, true
			}
		}
		return 0, false
	}
	pos, ok := s.index[models.BuildIdentityKey(productID, attributes)]
	return pos, ok
}

// removeAtLocked 删除指定下标的行并重建索引
func (s *Store) removeAtLocked(pos int) {
	s.lines = append(s.lines[:pos], s.lines[pos+1:]...)
	s.index = make(map[string]int, len(s.lines))
	for i, line := range s.lines {
		s.index[line.IdentityKey()] = i
	}
}

// saveLocked 尽力而为地写入持久化存储
func (s *Store) saveLocked() {
	if s.storage == nil {
		return
	}
	lines := make([]models.CartLine, len(s.lines))
	copy(lines, s.lines)
	if err := s.storage.Save(lines); err != nil {
		s.log.Warnw("cart_save_failed", "error", err, "lines", len(lines))
	}
}

func cloneAttributes(attributes map[string]string) map[string]string {
	if len(attributes) == 0 {
		return nil
	}
	cloned := make(map[string]string, len(attributes))
	for k, v := range attributes {
		cloned[k] = v
	}
	return cloned
}
