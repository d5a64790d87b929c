package checkout

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/cartflow/internal/auth"
	"github.com/cartflow/internal/cart"
	"github.com/cartflow/internal/constants"
	"github.com/cartflow/internal/logger"
	"github.com/cartflow/internal/order"

	"go.uber.org/zap"
)

var (
	// ErrNotAuthenticated 未登录时的提交拦截（由调用方重定向到登录流程）
	ErrNotAuthenticated = errors.New("checkout requires an authenticated session")
	// ErrCartEmpty 购物车为空，结账处于空态
	ErrCartEmpty = errors.New("cart is empty")
	// ErrCheckoutIncomplete 尚未到达支付步骤
	ErrCheckoutIncomplete = errors.New("checkout form incomplete")
	// ErrPaymentMethodInvalid 不在允许列表中的支付方式
	ErrPaymentMethodInvalid = errors.New("payment method invalid")
)

// 结账状态（步骤 + 终态/过渡态）
const (
	StateEmpty      = constants.CheckoutStateEmpty
	StateContact    = constants.CheckoutStepContact
	StateShipping   = constants.CheckoutStepShipping
	StatePayment    = constants.CheckoutStepPayment
	StateSubmitting = constants.CheckoutStateSubmitting
	StateSuccess    = constants.CheckoutStateSuccess
	StateFailed     = constants.CheckoutStateFailed
)

// Progression 结账推进器
// 在购物车与表单之上派生向导步骤和价格明细，并把关提交资格。
// 步骤是单向棘轮：只随字段组填写完整而前进，清空字段不回退，
// 记录的是"曾到达的最远进度"而非"当前有效性"。
type Progression struct {
	mu             sync.Mutex
	cartStore      *cart.Store
	authCtx        auth.Context
	handoff        *order.Handoff
	rule           PricingRule
	form           Form
	reached        string
	paymentMethod  string
	allowedMethods []string
	submitting     bool
	succeeded      bool
	orderID        uint
	failure        string
	log            *zap.SugaredLogger
}

// NewProgression 创建结账推进器（每次结账访问新建一个）
// 联系邮箱用鉴权上下文中的邮箱预填。
func NewProgression(cartStore *cart.Store, authCtx auth.Context, handoff *order.Handoff, rule PricingRule, allowedMethods []string, log *zap.SugaredLogger) *Progression {
	if log == nil {
		log = logger.S()
	}
	p := &Progression{
		cartStore:      cartStore,
		authCtx:        authCtx,
		handoff:        handoff,
		rule:           rule,
		reached:        StateContact,
		paymentMethod:  constants.DefaultPaymentMethod,
		allowedMethods: allowedMethods,
		log:            log,
	}
	if authCtx != nil {
		p.form.Email = authCtx.CurrentUserEmail()
	}
	p.advanceLocked()
	return p
}

// UpdateForm 整体替换表单内容并推进棘轮
func (p *Progression) UpdateForm(form Form) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.form = form
	p.failure = ""
	p.advanceLocked()
}

// Form 当前表单内容
func (p *Progression) Form() Form {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.form
}

// SetPaymentMethod 选择支付方式标签
func (p *Progression) SetPaymentMethod(label string) error {
	label = strings.TrimSpace(label)
	if !p.methodAllowed(label) {
		return ErrPaymentMethodInvalid
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paymentMethod = label
	p.failure = ""
	return nil
}

// PaymentMethod 当前支付方式标签
func (p *Progression) PaymentMethod() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paymentMethod
}

// Breakdown 按当前购物车内容计算价格明细
func (p *Progression) Breakdown() Breakdown {
	return p.rule.Compute(p.cartStore.Lines())
}

// State 当前结账状态
// 终态/过渡态优先，否则购物车为空呈现空态，再否则为棘轮到达的步骤。
func (p *Progression) State() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stateLocked()
}

// Failure 最近一次提交失败的原因（无失败时为空串）
func (p *Progression) Failure() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.failure
}

// OrderID 提交成功后的订单号
func (p *Progression) OrderID() uint {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.orderID
}

// Submit 用户提交动作
// 提交中再次调用是被丢弃的空操作（幂等守卫，不排队）。
// 返回提交后的结账状态；失败时购物车保持不变，用户回到支付步骤可重试。
func (p *Progression) Submit(ctx context.Context) (string, error) {
	p.mu.Lock()
	if p.submitting {
		p.mu.Unlock()
		return StateSubmitting, nil
	}
	if p.succeeded {
		p.mu.Unlock()
		return StateSuccess, nil
	}
	if p.cartStore.IsEmpty() {
		p.mu.Unlock()
		return StateEmpty, ErrCartEmpty
	}
	if p.authCtx == nil || !p.authCtx.IsAuthenticated() {
		state := p.stateLocked()
		p.mu.Unlock()
		return state, ErrNotAuthenticated
	}
	if p.reached != StatePayment {
		state := p.stateLocked()
		p.mu.Unlock()
		return state, ErrCheckoutIncomplete
	}
	method := p.paymentMethod
	p.submitting = true
	p.failure = ""
	p.mu.Unlock()

	result, err := p.handoff.Submit(ctx, method)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.submitting = false
	if err != nil {
		p.failure = err.Error()
		p.log.Warnw("checkout_submit_failed", "error", err)
		return StateFailed, err
	}
	p.succeeded = true
	p.orderID = result.OrderID
	p.log.Infow("checkout_submit_success", "order_id", result.OrderID)
	return StateSuccess, nil
}

func (p *Progression) stateLocked() string {
	switch {
	case p.succeeded:
		return StateSuccess
	case p.submitting:
		return StateSubmitting
	case p.cartStore.IsEmpty():
		// 提交失败后清空购物车：空态优先于失败态
		return StateEmpty
	case p.failure != "":
		return StateFailed
	default:
		return p.reached
	}
}

// advanceLocked 推进步骤棘轮（只前进，不后退）
func (p *Progression) advanceLocked() {
	if p.reached == StateContact && p.form.ContactComplete() {
		p.reached = StateShipping
	}
	if p.reached == StateShipping && p.form.ShippingComplete() {
		p.reached = StatePayment
	}
}

func (p *Progression) methodAllowed(label string) bool {
	if label == "" {
		return false
	}
	if len(p.allowedMethods) == 0 {
		return true
	}
	for _, allowed := range p.allowedMethods {
		if strings.EqualFold(allowed, label) {
			return true
		}
	}
	return false
}
