package order

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClientSubmitSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/orders" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("unexpected content type: %s", got)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Errorf("expected request id header")
		}

		var req SubmitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request failed: %v", err)
		}
		if len(req.Items) != 1 || req.Items[0].ProductID != 5 || req.Items[0].Quantity != 2 {
			t.Errorf("unexpected items: %+v", req.Items)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"order":{"id":42}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	result, err := client.Submit(context.Background(), SubmitRequest{
		Items:         []SubmitItem{{ProductID: 5, Quantity: 2}},
		PaymentMethod: "card",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.OrderID != 42 {
		t.Fatalf("expected order id 42, got %d", result.OrderID)
	}
}

func TestClientSubmitRejectedWithMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"product out of stock"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Submit(context.Background(), SubmitRequest{Items: []SubmitItem{{ProductID: 1, Quantity: 1}}})
	if !errors.Is(err, ErrSubmitRejected) {
		t.Fatalf("expected ErrSubmitRejected, got %v", err)
	}
	if !strings.Contains(err.Error(), "product out of stock") {
		t.Fatalf("expected server message in error, got %v", err)
	}
}

func TestClientSubmitMissingOrderID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Submit(context.Background(), SubmitRequest{Items: []SubmitItem{{ProductID: 1, Quantity: 1}}})
	if !errors.Is(err, ErrResponseInvalid) {
		t.Fatalf("expected ErrResponseInvalid, got %v", err)
	}
}

func TestClientSubmitBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway</html>"))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Submit(context.Background(), SubmitRequest{Items: []SubmitItem{{ProductID: 1, Quantity: 1}}})
	if !errors.Is(err, ErrResponseInvalid) {
		t.Fatalf("expected ErrResponseInvalid, got %v", err)
	}
}

func TestClientSubmitNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Submit(context.Background(), SubmitRequest{Items: []SubmitItem{{ProductID: 1, Quantity: 1}}})
	if !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("expected ErrRequestFailed, got %v", err)
	}
}
