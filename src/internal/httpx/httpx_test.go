package httpx

import (
	"net/http"
	"testing"
)

func TestSetUA(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "https://example.com", nil)
	if hv := req.Header.Get("User-Agent"); hv != "" {
		t.Fatalf("precondition: UA not empty: %q", hv)
	}
	SetUA(req)
	if hv := req.Header.Get("User-Agent"); hv != UserAgent {
		t.Fatalf("SetUA: want %q, got %q", UserAgent, hv)
	}
	// idempotent
	SetUA(req)
	if hv := req.Header.Get("User-Agent"); hv != UserAgent {
		t.Fatalf("SetUA idempotent: want %q, got %q", UserAgent, hv)
	}
	SetUA(nil)
}

func TestSetJSON(t *testing.T) {
	req, _ := http.NewRequest(http.MethodPost, "https://example.com", nil)
	SetJSON(req)
	if req.Header.Get("Content-Type") != "application/json" || req.Header.Get("Accept") != "application/json" {
		t.Fatalf("SetJSON headers: %v", req.Header)
	}
}
