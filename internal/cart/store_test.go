package cart

import (
	"errors"
	"testing"

	"github.com/cartflow/internal/models"
	"github.com/cartflow/internal/persistence"

	"github.com/shopspring/decimal"
)

func price(raw string) models.Money {
	return models.NewMoneyFromDecimal(decimal.RequireFromString(raw))
}

func TestAddItemMergesSameIdentity(t *testing.T) {
	store := NewStore(nil, nil)
	for i := 0; i < 3; i++ {
		store.AddItem(LineInput{ProductID: 5, UnitPrice: price("10.00")})
	}

	lines := store.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", lines[0].Quantity)
	}
}

func TestAddItemKeepsVariantsSeparate(t *testing.T) {
	store := NewStore(nil, nil)
	store.AddItem(LineInput{ProductID: 5, Attributes: map[string]string{"size": "M"}, UnitPrice: price("10.00")})
	store.AddItem(LineInput{ProductID: 5, Attributes: map[string]string{"size": "L"}, UnitPrice: price("10.00")})

	lines := store.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Quantity != 1 || lines[1].Quantity != 1 {
		t.Fatalf("expected quantity 1 on both lines: %+v", lines)
	}
}

func TestAddItemKeepsDelimiterBearingAttributesSeparate(t *testing.T) {
	store := NewStore(nil, nil)
	store.AddItem(LineInput{ProductID: 5, Attributes: map[string]string{"a": "1", "b": "2"}})
	store.AddItem(LineInput{ProductID: 5, Attributes: map[string]string{"a": "1|b=2"}})

	lines := store.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %+v", len(lines), lines)
	}
	if lines[0].Quantity != 1 || lines[1].Quantity != 1 {
		t.Fatalf("distinct attribute sets must not merge: %+v", lines)
	}
}

func TestAddItemMergeIgnoresAttributeOrder(t *testing.T) {
	store := NewStore(nil, nil)
	store.AddItem(LineInput{ProductID: 5, Attributes: map[string]string{"size": "M", "color": "red"}})
	store.AddItem(LineInput{ProductID: 5, Attributes: map[string]string{"color": "red", "size": "M"}})

	lines := store.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected merge into 1 line, got %d", len(lines))
	}
	if lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", lines[0].Quantity)
	}
}

func TestRemoveItemExactAttributeMatch(t *testing.T) {
	store := NewStore(nil, nil)
	store.AddItem(LineInput{ProductID: 5, Attributes: map[string]string{"size": "M"}})
	store.AddItem(LineInput{ProductID: 5, Attributes: map[string]string{"size": "M"}})
	store.AddItem(LineInput{ProductID: 5, Attributes: map[string]string{"size": "L"}})

	store.RemoveItem(5, map[string]string{"size": "L"})

	lines := store.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line left, got %d", len(lines))
	}
	if lines[0].Attributes["size"] != "M" || lines[0].Quantity != 2 {
		t.Fatalf("surviving line should be size M qty 2: %+v", lines[0])
	}
}

func TestRemoveItemWithoutAttributesTakesFirstMatch(t *testing.T) {
	store := NewStore(nil, nil)
	store.AddItem(LineInput{ProductID: 5, Attributes: map[string]string{"size": "M"}})
	store.AddItem(LineInput{ProductID: 5, Attributes: map[string]string{"size": "L"}})

	store.RemoveItem(5, nil)

	lines := store.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line left, got %d", len(lines))
	}
	if lines[0].Attributes["size"] != "L" {
		t.Fatalf("expected first match (size M) removed, got %+v", lines[0])
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	store := NewStore(nil, nil)
	store.AddItem(LineInput{ProductID: 5})
	store.UpdateQuantity(5, 0, nil)

	if !store.IsEmpty() {
		t.Fatalf("expected empty cart after quantity 0")
	}

	store.AddItem(LineInput{ProductID: 6})
	store.UpdateQuantity(6, -3, nil)
	if !store.IsEmpty() {
		t.Fatalf("expected empty cart after negative quantity")
	}
}

func TestUpdateQuantitySetsValue(t *testing.T) {
	store := NewStore(nil, nil)
	store.AddItem(LineInput{ProductID: 5, Attributes: map[string]string{"size": "M"}})
	store.UpdateQuantity(5, 7, map[string]string{"size": "M"})

	lines := store.Lines()
	if len(lines) != 1 || lines[0].Quantity != 7 {
		t.Fatalf("expected quantity 7, got %+v", lines)
	}
}

func TestDerivedTotals(t *testing.T) {
	store := NewStore(nil, nil)
	store.AddItem(LineInput{ProductID: 1, UnitPrice: price("10.00")})
	store.UpdateQuantity(1, 2, nil)
	store.AddItem(LineInput{ProductID: 2, UnitPrice: price("5.00")})

	if got := store.TotalItems(); got != 3 {
		t.Fatalf("expected 3 total items, got %d", got)
	}
	if got := store.TotalPrice().String(); got != "25.00" {
		t.Fatalf("expected total price 25.00, got %s", got)
	}
}

func TestVisibilityFlagDoesNotTouchLines(t *testing.T) {
	store := NewStore(nil, nil)
	store.AddItem(LineInput{ProductID: 1})

	if store.IsOpen() {
		t.Fatalf("cart should start closed")
	}
	store.Open()
	if !store.IsOpen() {
		t.Fatalf("cart should be open")
	}
	store.Toggle()
	if store.IsOpen() {
		t.Fatalf("cart should be closed after toggle")
	}
	if store.TotalItems() != 1 {
		t.Fatalf("visibility changes must not touch lines")
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	storage := persistence.NewMemoryStore()

	store := NewStore(storage, nil)
	store.AddItem(LineInput{ProductID: 5, Attributes: map[string]string{"size": "M"}, Title: "T-Shirt", UnitPrice: price("19.99")})
	store.AddItem(LineInput{ProductID: 5, Attributes: map[string]string{"size": "M"}})
	store.AddItem(LineInput{ProductID: 7, Title: "Mug", UnitPrice: price("8.00")})

	restored := NewStore(storage, nil)
	original := store.Lines()
	lines := restored.Lines()
	if len(lines) != len(original) {
		t.Fatalf("expected %d lines after rehydrate, got %d", len(original), len(lines))
	}
	for i := range lines {
		if lines[i].IdentityKey() != original[i].IdentityKey() {
			t.Fatalf("line %d identity mismatch", i)
		}
		if lines[i].Quantity != original[i].Quantity {
			t.Fatalf("line %d quantity mismatch: %d vs %d", i, lines[i].Quantity, original[i].Quantity)
		}
	}
}

func TestRehydrateFailureFallsBackToEmpty(t *testing.T) {
	storage := persistence.NewMemoryStore()
	storage.FailLoad = errors.New("storage corrupted")

	store := NewStore(storage, nil)
	if !store.IsEmpty() {
		t.Fatalf("expected empty cart on load failure")
	}
}

func TestRehydrateDropsZeroQuantityLines(t *testing.T) {
	storage := persistence.NewMemoryStore()
	if err := storage.Save([]models.CartLine{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 0},
	}); err != nil {
		t.Fatalf("seed storage failed: %v", err)
	}

	store := NewStore(storage, nil)
	lines := store.Lines()
	if len(lines) != 1 || lines[0].ProductID != 1 {
		t.Fatalf("expected only the valid line to survive, got %+v", lines)
	}
}

func TestSaveFailureDoesNotRollBackMutation(t *testing.T) {
	storage := persistence.NewMemoryStore()
	storage.FailSave = errors.New("quota exceeded")

	store := NewStore(storage, nil)
	store.AddItem(LineInput{ProductID: 5})

	if store.TotalItems() != 1 {
		t.Fatalf("in-memory state must survive a save failure")
	}
}
