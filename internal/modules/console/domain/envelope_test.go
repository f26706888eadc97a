package domain

import (
	"errors"
	"testing"
)

func TestEnvelopeErr(t *testing.T) {
	t.Parallel()

	ok := &Envelope{ResponseCode: 1}
	if !ok.Succeeded() || ok.Err() != nil {
		t.Fatal("expected success envelope")
	}

	failed := &Envelope{ResponseCode: 0, ResponseMessage: "Category name already exists"}
	err := failed.Err()
	var business BusinessError
	if !errors.As(err, &business) {
		t.Fatalf("expected BusinessError, got %T", err)
	}
	if business.Message != "Category name already exists" || UserMessage(err) != business.Message {
		t.Fatalf("unexpected message %q", business.Message)
	}
	if msg := (&Envelope{ResponseCode: 7}).Err().Error(); msg != "request rejected (responseCode 7)" {
		t.Fatalf("unexpected fallback message %q", msg)
	}
}

func TestEnvelopeRecords(t *testing.T) {
	t.Parallel()

	bare := &Envelope{ResponseCode: 1, Response: []any{map[string]any{"id": "1"}, map[string]any{"id": "2"}}}
	if got := len(bare.Records()); got != 2 {
		t.Fatalf("expected 2 records from array, got %d", got)
	}

	wrapped := &Envelope{ResponseCode: 1, Response: map[string]any{
		"products":   []any{map[string]any{"id": "p1"}},
		"allItems":   []any{map[string]any{"id": "p1"}, map[string]any{"id": "p2"}},
		"pagination": map[string]any{"currentPage": float64(2), "limit": float64(1), "totalItems": float64(2)},
	}}
	if got := wrapped.Records("products"); len(got) != 1 || got[0]["id"] != "p1" {
		t.Fatalf("unexpected records %v", got)
	}
	all, ok := wrapped.AllRecords()
	if !ok || len(all) != 2 {
		t.Fatalf("expected shadow collection, got %v %v", all, ok)
	}
	page := wrapped.Page()
	if page.Page != 2 || page.Limit != 1 || page.TotalItems != 2 {
		t.Fatalf("unexpected page %+v", page)
	}

	single := &Envelope{ResponseCode: 1, Response: map[string]any{"category": map[string]any{"id": "c1"}}}
	if rec := single.Record("category"); rec["id"] != "c1" {
		t.Fatalf("unexpected record %v", rec)
	}
}
