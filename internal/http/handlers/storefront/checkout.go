package storefront

import (
	"errors"

	"github.com/cartflow/internal/checkout"
	"github.com/cartflow/internal/http/response"

	"github.com/gin-gonic/gin"
)

// PaymentMethodRequest 支付方式选择请求
type PaymentMethodRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// GetCheckout 获取结账状态（步骤、表单、价格明细）
func (h *Handler) GetCheckout(c *gin.Context) {
	p := h.Checkout()
	response.Success(c, checkoutView(p))
}

// UpdateCheckoutForm 更新结账表单
func (h *Handler) UpdateCheckoutForm(c *gin.Context) {
	var form checkout.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, response.CodeBadRequest, "error.bad_request")
		return
	}
	p := h.Checkout()
	p.UpdateForm(form)
	response.Success(c, checkoutView(p))
}

// SetPaymentMethod 选择支付方式
func (h *Handler) SetPaymentMethod(c *gin.Context) {
	var req PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, response.CodeBadRequest, "error.bad_request")
		return
	}
	p := h.Checkout()
	if err := p.SetPaymentMethod(req.PaymentMethod); err != nil {
		response.Error(c, response.CodeBadRequest, "error.payment_method_invalid")
		return
	}
	response.Success(c, checkoutView(p))
}

// SubmitCheckout 提交订单
// 未登录不是错误态：返回 401 交由前端重定向到外部登录流程。
func (h *Handler) SubmitCheckout(c *gin.Context) {
	p := h.Checkout()
	state, err := p.Submit(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrNotAuthenticated):
			response.Unauthorized(c, "error.login_required")
		case errors.Is(err, checkout.ErrCartEmpty):
			response.ErrorWithData(c, response.CodeBadRequest, "error.cart_empty", gin.H{"state": state})
		case errors.Is(err, checkout.ErrCheckoutIncomplete):
			response.ErrorWithData(c, response.CodeBadRequest, "error.checkout_incomplete", gin.H{"state": state})
		default:
			// 提交失败：购物车保持不变，用户回到支付步骤可重试
			response.ErrorWithData(c, response.CodeInternal, "error.order_submit_failed", gin.H{
				"state":  state,
				"reason": p.Failure(),
			})
		}
		return
	}
	response.Success(c, checkoutView(p))
}

// ResetCheckout 开始新的结账访问
func (h *Handler) ResetCheckout(c *gin.Context) {
	p := h.Container.ResetCheckout()
	response.Success(c, checkoutView(p))
}

func checkoutView(p *checkout.Progression) gin.H {
	view := gin.H{
		"state":          p.State(),
		"form":           p.Form(),
		"payment_method": p.PaymentMethod(),
		"breakdown":      p.Breakdown(),
	}
	if reason := p.Failure(); reason != "" {
		view["failure"] = reason
	}
	if orderID := p.OrderID(); orderID != 0 {
		view["order_id"] = orderID
	}
	return view
}
