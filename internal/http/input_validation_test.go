package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputValidation(t *testing.T) {
	app, _ := newTestApp(t, testConfig())
	admin := login(t, app, adminUser, adminPass)

	cases := []struct {
		name, method, path string
		body               any
		token              string
		want               int
	}{
		{"non-numeric category id", "GET", "/categories/abc", nil, "", http.StatusBadRequest},
		{"zero product id", "GET", "/products/0", nil, "", http.StatusBadRequest},
		{"negative product id", "GET", "/products/-4", nil, "", http.StatusBadRequest},
		{"bad categoryId query", "GET", "/products?categoryId=shoes", nil, "", http.StatusBadRequest},
		{"bad minPrice", "GET", "/products?minPrice=cheap", nil, "", http.StatusBadRequest},
		{"bad maxPrice", "GET", "/products?maxPrice=1e", nil, "", http.StatusBadRequest},
		{"negative minPrice is a literal bound", "GET", "/products?minPrice=-1", nil, "", http.StatusOK},
		{"empty filters", "GET", "/products?color=&name=", nil, "", http.StatusOK},
		{"absent category", "GET", "/categories/999", nil, "", http.StatusNotFound},
		{"absent product", "GET", "/products/999", nil, "", http.StatusNotFound},
		{"malformed json", "POST", "/categories", "{\"name\":", admin, http.StatusBadRequest},
		{"wrong type in json", "POST", "/products", `{"name":"x","stock":"many"}`, admin, http.StatusBadRequest},
		{"price beyond cents precision range", "POST", "/products", `{"name":"Yacht","price":12345678901234567.89,"categoryId":1}`, admin, http.StatusBadRequest},
		{"price out of range on update", "PUT", "/products/1", `{"name":"Yacht","price":"100000000","categoryId":1}`, admin, http.StatusBadRequest},
		{"bad id on update", "PUT", "/products/x", map[string]any{"name": "x"}, admin, http.StatusBadRequest},
		{"bad id on delete", "DELETE", "/categories/x", nil, admin, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := do(t, app, tc.method, tc.path, tc.body, tc.token)
			assert.Equal(t, tc.want, resp.StatusCode, "body=%s", body)
		})
	}
}

func TestValidationFailureIsLogged(t *testing.T) {
	app, _ := newTestApp(t, testConfig())

	logs := captureLogs(t, func() {
		do(t, app, "GET", "/products?minPrice=cheap", nil, "")
	})
	e := findAction(logs, "validation.fail")
	if e == nil {
		t.Fatalf("expected validation.fail entry, got %v", logs)
	}
	assert.Equal(t, "minPrice", e["field"])
}
