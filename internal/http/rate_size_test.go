package handlers_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLoginRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.LoginRateMax = 3
	app, _ := newTestApp(t, cfg)

	for i := 0; i < 4; i++ {
		resp, _ := do(t, app, "POST", "/login", map[string]string{"username": "nobody", "password": "x"}, "")
		if i < 3 && resp.StatusCode == http.StatusTooManyRequests {
			t.Fatalf("hit rate limit too early at %d", i)
		}
		if i < 3 && resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401 before the limit, got %d", resp.StatusCode)
		}
		if i == 3 && resp.StatusCode != http.StatusTooManyRequests {
			t.Fatalf("expected 429 after limit, got %d", resp.StatusCode)
		}
	}

	// other routes are not throttled
	resp, _ := do(t, app, "GET", "/categories", nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for catalog read, got %d", resp.StatusCode)
	}
}

func TestBodySizeLimit(t *testing.T) {
	cfg := testConfig()
	cfg.BodyLimit = 1 << 10
	app, _ := newTestApp(t, cfg)

	oversize := bytes.Repeat([]byte("A"), (1<<10)+10)
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(oversize))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	// fasthttp may fail the connection instead of answering
	if err != nil {
		if strings.Contains(err.Error(), "body size exceeds") || strings.Contains(err.Error(), "too large") {
			return
		}
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 413 for oversize, got %d body=%s", resp.StatusCode, string(body))
	}
}
