package models

import (
	"sort"
	"strconv"
	"strings"
)

// CartLine 购物车行（一个商品+变体组合，带独立数量）
type CartLine struct {
	ProductID  uint              `json:"product_id"`           // 商品ID
	Attributes map[string]string `json:"attributes,omitempty"` // 变体属性（无变体时为空）
	Title      string            `json:"title"`                // 展示标题
	UnitPrice  Money             `json:"unit_price"`           // 单价
	Image      string            `json:"image"`                // 展示图片引用（核心不解析）
	Quantity   int               `json:"quantity"`             // 数量，行存在期间恒 >= 1
}

// IdentityKey 返回行身份的规范化键
// 身份 = 商品ID + 属性集合（与键顺序无关），属性按键排序后拼接。
func (l CartLine) IdentityKey() string {
	return BuildIdentityKey(l.ProductID, l.Attributes)
}

// BuildIdentityKey 构造规范化身份键
// 属性键值各自加引号转义后再拼接，属性值中的分隔符不会伪造出相同的键。
func BuildIdentityKey(productID uint, attributes map[string]string) string {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(uint64(productID), 10))
	if len(attributes) == 0 {
		return b.String()
	}
	keys := make([]string, 0, len(attributes))
	for k := range attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString("|")
		b.WriteString(strconv.Quote(k))
		b.WriteString("=")
		b.WriteString(strconv.Quote(attributes[k]))
	}
	return b.String()
}

// LineTotal 行小计（单价 × 数量）
func (l CartLine) LineTotal() Money {
	return l.UnitPrice.MulInt(l.Quantity)
}

// CartSnapshot 购物车持久化形态（仅行列表，不含 UI 状态）
type CartSnapshot struct {
	Items []CartLine `json:"items"`
}
