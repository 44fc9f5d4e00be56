package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessLogPerRequest(t *testing.T) {
	app, _ := newTestApp(t, testConfig())

	logs := captureLogs(t, func() {
		resp, _ := do(t, app, "GET", "/healthz", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})
	e := findAction(logs, "http.access")
	require.NotNil(t, e, "expected http.access entry, got %v", logs)
	assert.Equal(t, "info", e["level"])
	assert.Equal(t, "GET", e["method"])
	assert.Equal(t, "/healthz", e["path"])
	assert.EqualValues(t, 200, e["status"])
	assert.NotEmpty(t, e["req_id"])
	assert.Contains(t, e, "latency_ms")
}

func TestAccessLogLevelFollowsStatus(t *testing.T) {
	app, _ := newTestApp(t, testConfig())

	logs := captureLogs(t, func() {
		do(t, app, "GET", "/products/999", nil, "")
	})
	e := findAction(logs, "http.access")
	require.NotNil(t, e)
	assert.Equal(t, "warning", e["level"])
	assert.EqualValues(t, 404, e["status"])
}

func TestAccessLogCarriesUserID(t *testing.T) {
	app, _ := newTestApp(t, testConfig())
	tok := login(t, app, adminUser, adminPass)

	logs := captureLogs(t, func() {
		do(t, app, "POST", "/categories", map[string]any{"name": "Garden"}, tok)
	})
	audit := findAction(logs, "category.create")
	require.NotNil(t, audit, "expected category.create audit entry, got %v", logs)
	assert.Equal(t, true, audit["audit"])
	assert.EqualValues(t, 1, audit["user_id"])

	access := findAction(logs, "http.access")
	require.NotNil(t, access)
	assert.EqualValues(t, 201, access["status"])
	assert.EqualValues(t, 1, access["user_id"])
}
