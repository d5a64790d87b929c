package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestBuildIdentityKeyOrderIndependent(t *testing.T) {
	a := BuildIdentityKey(5, map[string]string{"size": "M", "color": "red"})
	b := BuildIdentityKey(5, map[string]string{"color": "red", "size": "M"})
	if a != b {
		t.Fatalf("identity keys should match regardless of attribute order: %s vs %s", a, b)
	}
}

func TestBuildIdentityKeyDistinguishesAttributes(t *testing.T) {
	a := BuildIdentityKey(5, map[string]string{"size": "M"})
	b := BuildIdentityKey(5, map[string]string{"size": "L"})
	if a == b {
		t.Fatalf("different attribute values should produce different keys: %s", a)
	}
	c := BuildIdentityKey(5, nil)
	d := BuildIdentityKey(5, map[string]string{})
	if c != d {
		t.Fatalf("nil and empty attributes should produce the same key: %s vs %s", c, d)
	}
}

func TestBuildIdentityKeyDelimiterBearingValues(t *testing.T) {
	// 属性值里出现分隔符不得伪造出等价身份
	a := BuildIdentityKey(5, map[string]string{"a": "1", "b": "2"})
	b := BuildIdentityKey(5, map[string]string{"a": "1|b=2"})
	if a == b {
		t.Fatalf("distinct attribute sets must not collapse to one key: %s", a)
	}
	c := BuildIdentityKey(5, map[string]string{"a=b": "c"})
	d := BuildIdentityKey(5, map[string]string{"a": "b=c"})
	if c == d {
		t.Fatalf("delimiter in key vs value must not collapse to one key: %s", c)
	}
}

func TestCartLineLineTotal(t *testing.T) {
	line := CartLine{
		ProductID: 1,
		UnitPrice: NewMoneyFromDecimal(decimal.RequireFromString("10.50")),
		Quantity:  3,
	}
	if got := line.LineTotal().String(); got != "31.50" {
		t.Fatalf("unexpected line total: %s", got)
	}
}

func TestCartSnapshotJSONRoundTrip(t *testing.T) {
	price, err := NewMoneyFromString("19.99")
	if err != nil {
		t.Fatalf("parse price failed: %v", err)
	}
	snapshot := CartSnapshot{Items: []CartLine{
		{ProductID: 5, Attributes: map[string]string{"size": "M"}, Title: "T-Shirt", UnitPrice: price, Quantity: 2},
		{ProductID: 7, Title: "Mug", UnitPrice: price, Quantity: 1},
	}}
	data, err := json.Marshal(snapshot)
	if err != nil {
		t.Fatalf("marshal snapshot failed: %v", err)
	}
	var restored CartSnapshot
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal snapshot failed: %v", err)
	}
	if len(restored.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(restored.Items))
	}
	if restored.Items[0].IdentityKey() != snapshot.Items[0].IdentityKey() {
		t.Fatalf("identity lost in round trip")
	}
	if restored.Items[0].UnitPrice.String() != "19.99" {
		t.Fatalf("unexpected unit price: %s", restored.Items[0].UnitPrice.String())
	}
}
