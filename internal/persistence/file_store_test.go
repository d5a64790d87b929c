package persistence

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cartflow/internal/models"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	store := NewFileStore(path)

	lines := []models.CartLine{
		{ProductID: 5, Attributes: map[string]string{"size": "M"}, Title: "T-Shirt", Quantity: 2},
		{ProductID: 7, Title: "Mug", Quantity: 1},
	}
	if err := store.Save(lines); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(loaded))
	}
	if loaded[0].IdentityKey() != lines[0].IdentityKey() {
		t.Fatalf("identity mismatch after round trip: %s", loaded[0].IdentityKey())
	}
	if loaded[0].Quantity != 2 || loaded[1].Quantity != 1 {
		t.Fatalf("quantity mismatch after round trip: %+v", loaded)
	}
}

func TestFileStoreLoadMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "missing.json"))

	if _, err := store.Load(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileStoreLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write fixture failed: %v", err)
	}

	store := NewFileStore(path)
	if _, err := store.Load(); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestFileStoreSaveCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "cart.json")
	store := NewFileStore(path)

	if err := store.Save(nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to exist: %v", err)
	}
}
