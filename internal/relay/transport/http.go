package transport

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dwikikusuma/storefront/internal/relay/app"
	"github.com/dwikikusuma/storefront/internal/relay/domain"
	"github.com/dwikikusuma/storefront/pkg/httpx"
)

const successMessage = "Order sent successfully"

type sendOrderResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type HTTPHandler struct {
	svc *app.Service
	log *slog.Logger
}

func NewHTTPHandler(svc *app.Service, log *slog.Logger) *HTTPHandler {
	return &HTTPHandler{svc: svc, log: log}
}

// ServeHTTP handles POST /send-order. Preflight requests are answered by
// the CORS middleware in front of it.
func (h *HTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		httpx.WriteJSON(w, http.StatusMethodNotAllowed, sendOrderResponse{Error: "Method not allowed"})
		return
	}

	var o domain.Order
	if err := httpx.DecodeJSON(r, &o); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, sendOrderResponse{Error: err.Error()})
		return
	}

	if err := h.svc.Send(r.Context(), &o); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, app.ErrInvalidOrder) {
			status = http.StatusBadRequest
		}
		h.log.WarnContext(r.Context(), "send order failed", "status", status, "error", err)
		httpx.WriteJSON(w, status, sendOrderResponse{Error: err.Error()})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, sendOrderResponse{Success: true, Message: successMessage})
}
