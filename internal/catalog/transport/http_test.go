package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/internal/catalog/infra/memory"
	"github.com/dwikikusuma/storefront/pkg/httpx"
	"github.com/dwikikusuma/storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminToken = "secret"

func newMux() *http.ServeMux {
	mux := http.NewServeMux()
	NewHandler(app.NewService(memory.NewSeeded()), logger.Discard()).Register(mux, httpx.AdminOnly(adminToken))
	return mux
}

func do(t *testing.T, mux http.Handler, method, path, body string, admin bool) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	if admin {
		req.Header.Set("Authorization", "Bearer "+adminToken)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestListProductsFilterAndSearch(t *testing.T) {
	mux := newMux()

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"all", "/api/products?category=all", 12},
		{"no params", "/api/products", 12},
		{"category", "/api/products?category=home", 2},
		{"search cyrillic any case", "/api/products?q=" + "%D0%9A%D0%9E%D0%A4%D0%95", 1},
		{"category and search", "/api/products?category=clothing&q=xyz", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, mux, http.MethodGet, tt.query, "", false)
			require.Equal(t, http.StatusOK, rec.Code)

			var body struct {
				Products []domain.Product `json:"products"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Len(t, body.Products, tt.want)
		})
	}
}

func TestGetProduct(t *testing.T) {
	mux := newMux()

	rec := do(t, mux, http.MethodGet, "/api/products/5", "", false)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, mux, http.MethodGet, "/api/products/404", "", false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminRequiresToken(t *testing.T) {
	mux := newMux()

	rec := do(t, mux, http.MethodPost, "/api/admin/products", `{"name":"x","price":1}`, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminProductLifecycle(t *testing.T) {
	mux := newMux()

	rec := do(t, mux, http.MethodPost, "/api/admin/products", `{"name":"Чойнак","price":99000,"categoryId":"home"}`, true)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Product domain.Product `json:"product"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.True(t, created.Product.IsActive)

	rec = do(t, mux, http.MethodPatch, "/api/admin/products/"+created.Product.ID, `{"isActive":false}`, true)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, mux, http.MethodGet, "/api/products/"+created.Product.ID, "", false)
	assert.Equal(t, http.StatusNotFound, rec.Code, "inactive products are hidden from the storefront")

	rec = do(t, mux, http.MethodGet, "/api/admin/products?category=home", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), created.Product.ID)

	rec = do(t, mux, http.MethodDelete, "/api/admin/products/"+created.Product.ID, "", true)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, mux, http.MethodDelete, "/api/admin/products/"+created.Product.ID, "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminValidationErrors(t *testing.T) {
	mux := newMux()

	rec := do(t, mux, http.MethodPost, "/api/admin/products", `{"name":"","price":-5}`, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body httpx.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "INVALID_ARGUMENT", body.Code)
	assert.Contains(t, body.Fields, "name")
	assert.Contains(t, body.Fields, "price")

	rec = do(t, mux, http.MethodPost, "/api/admin/categories", `{"name":"x","bogus":1}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMapErr(t *testing.T) {
	status, body := mapErr(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL", body.Code)

	status, _ = mapErr(app.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, status)
}
