package checkout

import (
	"testing"

	"github.com/cartflow/internal/models"

	"github.com/shopspring/decimal"
)

func testRule(t *testing.T) PricingRule {
	t.Helper()
	rule, err := NewPricingRule("5.00", "50.00", "0.10")
	if err != nil {
		t.Fatalf("build pricing rule failed: %v", err)
	}
	return rule
}

func line(raw string, quantity int) models.CartLine {
	return models.CartLine{
		ProductID: 1,
		UnitPrice: models.NewMoneyFromDecimal(decimal.RequireFromString(raw)),
		Quantity:  quantity,
	}
}

func TestComputeChargesShippingBelowThreshold(t *testing.T) {
	rule := testRule(t)

	b := rule.Compute([]models.CartLine{line("49.99", 1)})
	if got := b.Shipping.String(); got != "5.00" {
		t.Fatalf("expected shipping 5.00, got %s", got)
	}
	if got := b.Total.String(); got != "59.99" {
		t.Fatalf("expected total 59.99, got %s", got)
	}
}

func TestComputeFreeShippingAtThreshold(t *testing.T) {
	rule := testRule(t)

	b := rule.Compute([]models.CartLine{line("50.00", 1)})
	if got := b.Shipping.String(); got != "0.00" {
		t.Fatalf("expected free shipping at threshold, got %s", got)
	}
	if got := b.Tax.String(); got != "5.00" {
		t.Fatalf("expected tax 5.00, got %s", got)
	}
	if got := b.Total.String(); got != "55.00" {
		t.Fatalf("expected total 55.00, got %s", got)
	}
}

func TestComputeSubtotalSumsLineTotals(t *testing.T) {
	rule := testRule(t)

	b := rule.Compute([]models.CartLine{
		line("10.00", 2),
		line("5.50", 3),
	})
	if got := b.Subtotal.String(); got != "36.50" {
		t.Fatalf("expected subtotal 36.50, got %s", got)
	}
}

func TestComputeEmptyCart(t *testing.T) {
	rule := testRule(t)

	b := rule.Compute(nil)
	if got := b.Subtotal.String(); got != "0.00" {
		t.Fatalf("expected zero subtotal, got %s", got)
	}
	if got := b.Shipping.String(); got != "5.00" {
		t.Fatalf("expected base shipping on empty cart, got %s", got)
	}
}

func TestNewPricingRuleRejectsBadInput(t *testing.T) {
	if _, err := NewPricingRule("abc", "50.00", "0.10"); err == nil {
		t.Fatalf("expected error for invalid shipping fee")
	}
	if _, err := NewPricingRule("5.00", "50.00", "ten percent"); err == nil {
		t.Fatalf("expected error for invalid tax rate")
	}
}
