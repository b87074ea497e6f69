package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAPIErrorDecoding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Insufficient stock for: [Soap]","error":"stock check failed"}`))
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.GetProduct(context.Background(), "whatever")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d, want 400", apiErr.StatusCode)
	}
	if apiErr.Message != "Insufficient stock for: [Soap]" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if apiErr.Detail != "stock check failed" {
		t.Errorf("Detail = %q", apiErr.Detail)
	}
}

func TestIdempotencyKeyHeaderSent(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Idempotency-Key")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"x","items":[],"returnedItems":[]}`))
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.CreateSale(context.Background(), CreateSaleRequest{}, "retry-key-1")
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}
	if gotKey != "retry-key-1" {
		t.Errorf("Idempotency-Key = %q, want retry-key-1", gotKey)
	}
}

func TestBaseURLTrailingSlash(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := New(server.URL + "/")
	if _, err := c.ListProducts(context.Background(), "", ""); err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if gotPath != "/api/products" {
		t.Errorf("path = %q, want /api/products", gotPath)
	}
}
