// ABOUTME: Tests for the structured API error type
// ABOUTME: Retry eligibility and server message extraction

package client

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAPIError_Retryable(t *testing.T) {
	cases := []struct {
		name string
		err  APIError
		want bool
	}{
		{"network", APIError{Kind: KindNetwork}, true},
		{"timeout", APIError{Kind: KindTimeout}, false},
		{"500", APIError{Kind: KindHTTP, Status: 500}, true},
		{"503", APIError{Kind: KindHTTP, Status: 503}, true},
		{"400", APIError{Kind: KindHTTP, Status: 400}, false},
		{"401", APIError{Kind: KindHTTP, Status: 401}, false},
		{"404", APIError{Kind: KindHTTP, Status: 404}, false},
	}
	for _, tc := range cases {
		if got := tc.err.Retryable(); got != tc.want {
			t.Errorf("%s: Retryable() = %t, want %t", tc.name, got, tc.want)
		}
	}
}

func TestAPIError_ErrorText(t *testing.T) {
	err := &APIError{
		Kind:   KindHTTP,
		Method: http.MethodPost,
		Path:   "/api/auth/login",
		Status: 401,
		Body:   `{"error":"Invalid credentials"}`,
	}
	text := err.Error()
	for _, want := range []string{"POST", "/api/auth/login", "401", "Invalid credentials"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected error text to contain %q, got %q", want, text)
		}
	}
}

func TestAPIError_ServerMessage(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`{"error":"Invalid credentials"}`, "Invalid credentials"},
		{`{"message":"Login successful"}`, "Login successful"},
		{`plain text`, "plain text"},
		{``, "Service Unavailable"},
	}
	for _, tc := range cases {
		err := &APIError{Kind: KindHTTP, Status: 503, Body: tc.body}
		if got := err.ServerMessage(); got != tc.want {
			t.Errorf("ServerMessage(%q) = %q, want %q", tc.body, got, tc.want)
		}
	}
}

func TestIsStatus(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &APIError{Kind: KindHTTP, Status: 404})
	if !IsStatus(err, 404) {
		t.Error("expected IsStatus to see through wrapping")
	}
	if IsStatus(err, 500) {
		t.Error("expected IsStatus to match exact status only")
	}
	if IsStatus(fmt.Errorf("plain"), 404) {
		t.Error("expected IsStatus false for plain errors")
	}
	if IsStatus(&APIError{Kind: KindTimeout}, 0) {
		t.Error("expected IsStatus false for non-http kinds")
	}
}
