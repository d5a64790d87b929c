package checkout

import (
	"fmt"

	"github.com/cartflow/internal/models"

	"github.com/shopspring/decimal"
)

// PricingRule 价格明细规则
type PricingRule struct {
	ShippingFee           models.Money    // 固定运费
	FreeShippingThreshold models.Money    // 免运费门槛（小计达到即免）
	TaxRate               decimal.Decimal // 税率
}

// NewPricingRule 从配置字符串构造价格规则
func NewPricingRule(shippingFee, freeShippingThreshold, taxRate string) (PricingRule, error) {
	fee, err := models.NewMoneyFromString(shippingFee)
	if err != nil {
		return PricingRule{}, fmt.Errorf("parse shipping_fee failed: %w", err)
	}
	threshold, err := models.NewMoneyFromString(freeShippingThreshold)
	if err != nil {
		return PricingRule{}, fmt.Errorf("parse free_shipping_threshold failed: %w", err)
	}
	rate, err := decimal.NewFromString(taxRate)
	if err != nil {
		return PricingRule{}, fmt.Errorf("parse tax_rate failed: %w", err)
	}
	return PricingRule{
		ShippingFee:           fee,
		FreeShippingThreshold: threshold,
		TaxRate:               rate,
	}, nil
}

// Breakdown 价格明细（每次读取重新计算，从不缓存）
type Breakdown struct {
	Subtotal models.Money `json:"subtotal"`
	Shipping models.Money `json:"shipping"`
	Tax      models.Money `json:"tax"`
	Total    models.Money `json:"total"`
}

// Compute 按当前行列表计算价格明细
func (r PricingRule) Compute(lines []models.CartLine) Breakdown {
	subtotal := models.ZeroMoney()
	for _, line := range lines {
		subtotal = subtotal.AddMoney(line.LineTotal())
	}

	shipping := r.ShippingFee
	if subtotal.Cmp(r.FreeShippingThreshold.Decimal) >= 0 {
		shipping = models.ZeroMoney()
	}

	tax := subtotal.MulRate(r.TaxRate)
	total := subtotal.AddMoney(shipping).AddMoney(tax)
	return Breakdown{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    total,
	}
}
