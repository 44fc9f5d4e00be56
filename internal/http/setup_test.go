package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"easyshop/internal/config"
	"easyshop/internal/http/handlers"
	applog "easyshop/internal/log"
	"easyshop/internal/repos"
)

const (
	adminUser = "admin"
	adminPass = "Passw0rd!"
)

func testConfig() config.Config {
	return config.Config{
		Port:      "8080",
		BodyLimit: 1 << 20,
		DB:        config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"},
		JWT:       config.JWTConfig{Secret: "test-secret-test-secret", TTL: time.Hour},

		LoginRateMax: 100,
	}
}

func openTestDB(t *testing.T, cfg config.Config) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(cfg.DB)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := repos.SeedAdmin(context.Background(), db, adminUser, adminPass); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return db
}

func newTestApp(t *testing.T, cfg config.Config) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db := openTestDB(t, cfg)
	return handlers.NewApp(handlers.NewDeps(db, cfg), cfg), db
}

// do sends body as JSON (strings are sent raw) with an optional bearer token.
func do(t *testing.T, app *fiber.App, method, path string, body any, token string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	out, _ := io.ReadAll(resp.Body)
	return resp, out
}

func login(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	resp, body := do(t, app, "POST", "/login", map[string]string{"username": username, "password": password}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d body=%s", username, resp.StatusCode, body)
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &out); err != nil || out.Token == "" {
		t.Fatalf("login %s: no token in %s", username, body)
	}
	return out.Token
}

// userToken registers a ROLE_USER account and logs it in.
func userToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, body := do(t, app, "POST", "/register", map[string]string{
		"username": "shopper", "password": "Sh0pper!pw", "confirmPassword": "Sh0pper!pw",
	}, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: status %d body=%s", resp.StatusCode, body)
	}
	return login(t, app, "shopper", "Sh0pper!pw")
}

type lockedBuf struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

// captureLogs collects the JSON log entries written while fn runs.
func captureLogs(t *testing.T, fn func()) []map[string]any {
	t.Helper()
	buf := &lockedBuf{}
	applog.SetOutput(buf)
	defer applog.SetOutput(os.Stdout)

	fn()

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.b.String()), "\n") {
		var e map[string]any
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findAction(entries []map[string]any, action string) map[string]any {
	for _, e := range entries {
		if e["action"] == action {
			return e
		}
	}
	return nil
}
