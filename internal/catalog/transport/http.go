package transport

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/pkg/httpx"
)

// Router is satisfied by *http.ServeMux and by wrappers that add per-route
// instrumentation.
type Router interface {
	Handle(pattern string, h http.Handler)
}

type Handler struct {
	svc *app.Service
	log *slog.Logger
}

func NewHandler(svc *app.Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Register mounts the public catalog reads and, behind admin, the CRUD
// endpoints.
func (h *Handler) Register(r Router, admin func(http.Handler) http.Handler) {
	r.Handle("GET /api/categories", http.HandlerFunc(h.listCategories))
	r.Handle("GET /api/products", http.HandlerFunc(h.listProducts))
	r.Handle("GET /api/products/{id}", http.HandlerFunc(h.getProduct))
	r.Handle("GET /api/storefront", http.HandlerFunc(h.storefront))

	r.Handle("GET /api/admin/categories", admin(http.HandlerFunc(h.listCategories)))
	r.Handle("POST /api/admin/categories", admin(http.HandlerFunc(h.createCategory)))
	r.Handle("PATCH /api/admin/categories/{id}", admin(http.HandlerFunc(h.updateCategory)))
	r.Handle("DELETE /api/admin/categories/{id}", admin(http.HandlerFunc(h.deleteCategory)))

	r.Handle("GET /api/admin/products", admin(http.HandlerFunc(h.adminListProducts)))
	r.Handle("POST /api/admin/products", admin(http.HandlerFunc(h.createProduct)))
	r.Handle("PATCH /api/admin/products/{id}", admin(http.HandlerFunc(h.updateProduct)))
	r.Handle("DELETE /api/admin/products/{id}", admin(http.HandlerFunc(h.deleteProduct)))
}

func filterFrom(r *http.Request, activeOnly bool) domain.Filter {
	q := r.URL.Query()
	return domain.Filter{
		CategoryID: q.Get("category"),
		Query:      q.Get("q"),
		ActiveOnly: activeOnly,
	}
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.ListCategories(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"categories": cats})
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListProducts(r.Context(), filterFrom(r, true))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (h *Handler) adminListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListProducts(r.Context(), filterFrom(r, false))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProduct(r.Context(), r.PathValue("id"))
	if err == nil && !p.IsActive {
		err = app.ErrNotFound
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"product": p})
}

func (h *Handler) storefront(w http.ResponseWriter, r *http.Request) {
	sf, err := h.svc.Storefront(r.Context(), filterFrom(r, true))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sf)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var in app.CategoryInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}
	c, err := h.svc.CreateCategory(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{"category": c})
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	var patch app.CategoryPatch
	if err := httpx.DecodeJSON(r, &patch); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}
	c, err := h.svc.UpdateCategory(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"category": c})
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteCategory(r.Context(), r.PathValue("id")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var in app.ProductInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}
	p, err := h.svc.CreateProduct(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{"product": p})
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var patch app.ProductPatch
	if err := httpx.DecodeJSON(r, &patch); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}
	p, err := h.svc.UpdateProduct(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"product": p})
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProduct(r.Context(), r.PathValue("id")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, body := mapErr(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("catalog request failed", slog.String("path", r.URL.Path), slog.Any("err", err))
	}
	httpx.WriteJSON(w, status, body)
}

func mapErr(err error) (int, httpx.ErrorBody) {
	var invalid *app.InvalidInputError
	switch {
	case errors.As(err, &invalid):
		return http.StatusBadRequest, httpx.ErrorBody{Error: "invalid input", Code: "INVALID_ARGUMENT", Fields: invalid.Fields}
	case errors.Is(err, app.ErrInvalidInput):
		return http.StatusBadRequest, httpx.ErrorBody{Error: err.Error(), Code: "INVALID_ARGUMENT"}
	case errors.Is(err, app.ErrNotFound):
		return http.StatusNotFound, httpx.ErrorBody{Error: "not found", Code: "NOT_FOUND"}
	default:
		return http.StatusInternalServerError, httpx.ErrorBody{Error: "internal error", Code: "INTERNAL"}
	}
}
