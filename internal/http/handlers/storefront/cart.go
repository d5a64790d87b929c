package storefront

import (
	"strconv"

	"github.com/cartflow/internal/cart"
	"github.com/cartflow/internal/http/response"
	"github.com/cartflow/internal/models"

	"github.com/gin-gonic/gin"
)

// AddItemRequest 添加购物车行请求
type AddItemRequest struct {
	ProductID  uint              `json:"product_id" binding:"required"`
	Attributes map[string]string `json:"attributes"`
	Title      string            `json:"title"`
	UnitPrice  models.Money      `json:"unit_price"`
	Image      string            `json:"image"`
}

// UpdateQuantityRequest 修改数量请求
// Attributes 缺省（JSON 中省略）时按商品ID匹配第一条行。
type UpdateQuantityRequest struct {
	ProductID  uint              `json:"product_id" binding:"required"`
	Quantity   int               `json:"quantity"`
	Attributes map[string]string `json:"attributes"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	response.Success(c, gin.H{
		"items":       h.CartStore.Lines(),
		"total_items": h.CartStore.TotalItems(),
		"total_price": h.CartStore.TotalPrice(),
		"is_open":     h.CartStore.IsOpen(),
	})
}

// AddCartItem 添加商品（同身份行数量 +1）
func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, response.CodeBadRequest, "error.cart_item_invalid")
		return
	}
	if req.UnitPrice.IsNegative() {
		response.Error(c, response.CodeBadRequest, "error.cart_item_invalid")
		return
	}
	h.CartStore.AddItem(cart.LineInput{
		ProductID:  req.ProductID,
		Attributes: req.Attributes,
		Title:      req.Title,
		UnitPrice:  req.UnitPrice,
		Image:      req.Image,
	})
	response.Success(c, gin.H{
		"total_items": h.CartStore.TotalItems(),
		"total_price": h.CartStore.TotalPrice(),
	})
}

// UpdateCartItemQuantity 修改购物车行数量（<= 0 即删除）
func (h *Handler) UpdateCartItemQuantity(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, response.CodeBadRequest, "error.cart_item_invalid")
		return
	}
	h.CartStore.UpdateQuantity(req.ProductID, req.Quantity, req.Attributes)
	response.Success(c, gin.H{
		"total_items": h.CartStore.TotalItems(),
		"total_price": h.CartStore.TotalPrice(),
	})
}

// DeleteCartItem 删除购物车行
// 变体属性通过查询参数传递（attr[size]=M），省略时按商品ID匹配第一条。
func (h *Handler) DeleteCartItem(c *gin.Context) {
	rawID := c.Param("product_id")
	productID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || productID == 0 {
		response.Error(c, response.CodeBadRequest, "error.cart_item_invalid")
		return
	}
	var attributes map[string]string
	if attrs := c.QueryMap("attr"); len(attrs) > 0 {
		attributes = attrs
	}
	h.CartStore.RemoveItem(uint(productID), attributes)
	response.Success(c, gin.H{"deleted": true})
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	h.CartStore.Clear()
	response.Success(c, gin.H{"cleared": true})
}

// OpenCart 打开购物车面板
func (h *Handler) OpenCart(c *gin.Context) {
	h.CartStore.Open()
	response.Success(c, gin.H{"is_open": true})
}

// CloseCart 关闭购物车面板
func (h *Handler) CloseCart(c *gin.Context) {
	h.CartStore.Close()
	response.Success(c, gin.H{"is_open": false})
}

// ToggleCart 切换购物车面板可见性
func (h *Handler) ToggleCart(c *gin.Context) {
	h.CartStore.Toggle()
	response.Success(c, gin.H{"is_open": h.CartStore.IsOpen()})
}
