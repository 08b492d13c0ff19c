package transport

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dwikikusuma/storefront/internal/order/app"
	"github.com/dwikikusuma/storefront/internal/order/domain"
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

func (h *Handler) Register(r Router) {
	r.Handle("GET /api/regions", http.HandlerFunc(h.regions))
	r.Handle("GET /api/checkout", http.HandlerFunc(h.view))
	r.Handle("PUT /api/checkout/form", http.HandlerFunc(h.updateForm))
	r.Handle("POST /api/checkout", http.HandlerFunc(h.submit))
}

type checkoutResponse struct {
	Checkout app.View        `json:"checkout"`
	Order    *domain.Payload `json:"order,omitempty"`
}

type errorResponse struct {
	httpx.ErrorBody
	Checkout *app.View `json:"checkout,omitempty"`
}

func (h *Handler) regions(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"regions": domain.Regions()})
}

func (h *Handler) view(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.View(r.Context(), httpx.SessionID(r.Context()))
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, checkoutResponse{Checkout: v})
}

func (h *Handler) updateForm(w http.ResponseWriter, r *http.Request) {
	var patch app.FormPatch
	if err := httpx.DecodeJSON(r, &patch); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}
	v, err := h.svc.UpdateForm(r.Context(), httpx.SessionID(r.Context()), patch)
	if err != nil {
		h.fail(w, r, err, &v)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, checkoutResponse{Checkout: v})
}

// submit accepts an optional form patch as body.
func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var patch *app.FormPatch
	var p app.FormPatch
	switch err := httpx.DecodeJSON(r, &p); {
	case err == nil:
		patch = &p
	case errors.Is(err, httpx.ErrEmptyBody):
	default:
		httpx.WriteError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}

	v, payload, err := h.svc.Submit(r.Context(), httpx.SessionID(r.Context()), patch)
	if err != nil {
		h.fail(w, r, err, &v)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, checkoutResponse{Checkout: v, Order: &payload})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, v *app.View) {
	status, body := mapErr(err)
	if status >= http.StatusInternalServerError && status != http.StatusBadGateway {
		h.log.Error("checkout request failed", slog.String("path", r.URL.Path), slog.Any("err", err))
	}
	if v != nil && v.State == "" {
		v = nil
	}
	httpx.WriteJSON(w, status, errorResponse{ErrorBody: body, Checkout: v})
}

func mapErr(err error) (int, httpx.ErrorBody) {
	var verrs domain.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return http.StatusUnprocessableEntity, httpx.ErrorBody{Error: "invalid order form", Code: "VALIDATION_FAILED", Fields: verrs}
	case errors.Is(err, app.ErrEmptyCart):
		return http.StatusBadRequest, httpx.ErrorBody{Error: err.Error(), Code: "EMPTY_CART"}
	case errors.Is(err, app.ErrInvalidInput):
		return http.StatusBadRequest, httpx.ErrorBody{Error: err.Error(), Code: "INVALID_ARGUMENT"}
	case errors.Is(err, app.ErrSubmissionInFlight):
		return http.StatusConflict, httpx.ErrorBody{Error: err.Error(), Code: "IN_FLIGHT"}
	case errors.Is(err, app.ErrSubmitFailed):
		return http.StatusBadGateway, httpx.ErrorBody{Error: domain.FailureNotice.Description, Code: "RELAY_FAILED"}
	default:
		return http.StatusInternalServerError, httpx.ErrorBody{Error: "internal error", Code: "INTERNAL"}
	}
}
