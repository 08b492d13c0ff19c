package transport

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/pkg/httpx"
)

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

// Register expects the httpx.Sessions middleware to run in front of the
// mounted routes.
func (h *Handler) Register(r Router) {
	r.Handle("GET /api/cart", http.HandlerFunc(h.get))
	r.Handle("DELETE /api/cart", http.HandlerFunc(h.clear))
	r.Handle("POST /api/cart/items", http.HandlerFunc(h.add))
	r.Handle("PATCH /api/cart/items/{productId}", http.HandlerFunc(h.setQuantity))
	r.Handle("DELETE /api/cart/items/{productId}", http.HandlerFunc(h.remove))
}

type addItemRequest struct {
	ProductID string `json:"productId"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.GetCart(r.Context(), httpx.SessionID(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, snap)
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}
	snap, err := h.svc.AddItem(r.Context(), httpx.SessionID(r.Context()), req.ProductID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, snap)
}

func (h *Handler) setQuantity(w http.ResponseWriter, r *http.Request) {
	var req setQuantityRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}
	if req.Quantity == nil {
		httpx.WriteError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "quantity is required")
		return
	}
	snap, err := h.svc.UpdateQuantity(r.Context(), httpx.SessionID(r.Context()), r.PathValue("productId"), *req.Quantity)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, snap)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.RemoveItem(r.Context(), httpx.SessionID(r.Context()), r.PathValue("productId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, snap)
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearCart(r.Context(), httpx.SessionID(r.Context())); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := mapErr(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("cart request failed", slog.String("path", r.URL.Path), slog.Any("err", err))
		httpx.WriteError(w, status, code, "internal error")
		return
	}
	httpx.WriteError(w, status, code, err.Error())
}

func mapErr(err error) (int, string) {
	switch {
	case errors.Is(err, app.ErrProductNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, app.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_ARGUMENT"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}
