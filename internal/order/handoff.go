package order

import (
	"context"
	"errors"

	"github.com/cartflow/internal/cart"
	"github.com/cartflow/internal/logger"

	"go.uber.org/zap"
)

// ErrCartEmpty 没有可提交的购物车行
var ErrCartEmpty = errors.New("no cart lines to submit")

// Handoff 购物车到订单服务的桥接
// 成功时清空购物车，失败时购物车保持不变并把原因抛给调用方。
type Handoff struct {
	cartStore *cart.Store
	submitter Submitter
	log       *zap.SugaredLogger
}

// NewHandoff 创建订单桥接
func NewHandoff(cartStore *cart.Store, submitter Submitter, log *zap.SugaredLogger) *Handoff {
	if log == nil {
		log = logger.S()
	}
	return &Handoff{
		cartStore: cartStore,
		submitter: submitter,
		log:       log,
	}
}

// Submit 把当前购物车内容提交为订单
func (h *Handoff) Submit(ctx context.Context, paymentMethod string) (*SubmitResult, error) {
	lines := h.cartStore.Lines()
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}

	items := make([]SubmitItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, SubmitItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	result, err := h.submitter.Submit(ctx, SubmitRequest{
		Items:         items,
		PaymentMethod: paymentMethod,
	})
	if err != nil {
		h.log.Warnw("order_handoff_failed", "error", err, "items", len(items))
		return nil, err
	}

	h.cartStore.Clear()
	h.log.Infow("order_handoff_success", "order_id", result.OrderID, "items", len(items))
	return result, nil
}
