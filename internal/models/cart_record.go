package models

// CartRecord 购物车持久化记录表（键值对存储）
type CartRecord struct {
	Key       string `gorm:"primarykey" json:"key"`  // 存储键
	ValueJSON JSON   `gorm:"type:json" json:"value"` // 快照内容
}

// TableName 指定表名
func (CartRecord) TableName() string {
	return "cart_records"
}
