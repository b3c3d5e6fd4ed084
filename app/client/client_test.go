package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSession_TokenLifecycle(t *testing.T) {
	session := NewSession()

	if session.Authenticated() {
		t.Error("Fresh session must not be authenticated")
	}

	session.SetToken("abc123")
	if !session.Authenticated() {
		t.Error("Expected authenticated session after SetToken")
	}
	if session.Token() != "abc123" {
		t.Errorf("Expected token 'abc123', got '%s'", session.Token())
	}

	session.Clear()
	if session.Authenticated() {
		t.Error("Expected unauthenticated session after Clear")
	}
}

func TestClient_ParseLink(t *testing.T) {
	var gotAuth string
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("url")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "source_type": "other_url", "title": "Joe's Pizza"}`))
	}))
	defer server.Close()

	session := NewSession()
	session.SetToken("jwt-token")
	c := NewClient(server.URL, server.Client(), session)

	parsed, err := c.ParseLink(context.Background(), "https://example.com/venue?ref=share")
	if err != nil {
		t.Fatalf("ParseLink failed: %v", err)
	}

	if !parsed.Success {
		t.Error("Expected success true")
	}
	if parsed.Title == nil || *parsed.Title != "Joe's Pizza" {
		t.Errorf("Expected title 'Joe's Pizza', got %v", parsed.Title)
	}
	if gotAuth != "Bearer jwt-token" {
		t.Errorf("Expected bearer token header, got '%s'", gotAuth)
	}
	if gotQuery != "https://example.com/venue?ref=share" {
		t.Errorf("Expected URL passed through intact, got '%s'", gotQuery)
	}
}

func TestClient_ParseLinkSoftFailureIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": false, "source_type": "other_url", "error": "could not extract details from URL"}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, server.Client(), nil)

	parsed, err := c.ParseLink(context.Background(), "https://example.com/broken")
	if err != nil {
		t.Fatalf("Soft failures must not surface as transport errors: %v", err)
	}
	if parsed.Success {
		t.Error("Expected success false")
	}
	if parsed.Error == nil {
		t.Error("Expected error message in parse result")
	}
}

func TestClient_ParseLinkServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient(server.URL, server.Client(), nil)

	_, err := c.ParseLink(context.Background(), "https://example.com/venue")
	if err == nil {
		t.Fatal("Expected error for 500 response")
	}

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("Expected TransportError, got %T", err)
	}
	if transportErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", transportErr.StatusCode)
	}
}

func TestClient_ParseLinkNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	c := NewClient(server.URL, nil, nil)

	_, err := c.ParseLink(context.Background(), "https://example.com/venue")
	if err == nil {
		t.Fatal("Expected error for unreachable server")
	}

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("Expected TransportError, got %T", err)
	}
	if transportErr.Unwrap() == nil {
		t.Error("Expected wrapped network error")
	}
}

func TestClient_ParseLinkNoSessionOmitsAuthHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success": true, "source_type": "other_url"}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, server.Client(), NewSession())

	if _, err := c.ParseLink(context.Background(), "https://example.com/venue"); err != nil {
		t.Fatalf("ParseLink failed: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Expected no auth header without a token, got '%s'", gotAuth)
	}
}
