// Package handler provides the storefront's HTTP surface: JSON cart and
// checkout endpoints, browser form posts, and MCP tools.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"magento-storefront/internal/adapter"
	"magento-storefront/internal/cart"
	"magento-storefront/internal/checkout"
	"magento-storefront/internal/model"
	"magento-storefront/internal/session"
)

// Deps are the collaborators a Handler needs. Gatherer may be nil to omit
// the /metrics endpoint. StorefrontURL prefixes form-post redirects; empty
// keeps them relative.
type Deps struct {
	Commerce      adapter.Commerce
	Checkout      *checkout.Orchestrator
	Sessions      *session.Manager
	StorefrontURL string
	Gatherer      prometheus.Gatherer
	Logger        *slog.Logger
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	commerce      adapter.Commerce
	checkout      *checkout.Orchestrator
	cart          *cart.Service
	sessions      *session.Manager
	storefrontURL string
	gatherer      prometheus.Gatherer
	logger        *slog.Logger
}

// New creates a Handler.
func New(d Deps) *Handler {
	return &Handler{
		commerce:      d.Commerce,
		checkout:      d.Checkout,
		cart:          cart.NewService(d.Commerce, d.Logger),
		sessions:      d.Sessions,
		storefrontURL: strings.TrimRight(d.StorefrontURL, "/"),
		gatherer:      d.Gatherer,
		logger:        d.Logger,
	}
}

// RegisterRoutes registers all HTTP routes with the given ServeMux.
// Uses Go 1.22+ method routing patterns.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Cart
	mux.HandleFunc("GET /cart", h.handleGetCart)
	mux.HandleFunc("PUT /cart", h.handleSyncCart)
	mux.HandleFunc("POST /cart/items", h.handleAddItem)
	mux.HandleFunc("PATCH /cart/items/{uid}", h.handleUpdateItem)
	mux.HandleFunc("DELETE /cart/items/{uid}", h.handleRemoveItem)

	// Checkout
	mux.HandleFunc("GET /checkout", h.handleCheckoutPage)
	mux.HandleFunc("GET /checkout/readiness", h.handleReadiness)
	mux.HandleFunc("POST /checkout/place-order", h.handlePlaceOrder)

	// MCP transport - JSON-RPC endpoint using official MCP SDK
	mux.Handle("/mcp", h.NewMCPHandler())

	// Operations
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /healthz", h.handleHealth)
	if h.gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	}
}

// handleHealth returns a simple health check response.
// GET /health, GET /healthz
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

type healthResponse struct {
	Status string `json:"status"`
}

// === Response Helpers ===

// writeJSON sends a JSON response with the given status code.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// writeError sends an error response, extracting status/code from APIError if present.
// Uses errors.As() to unwrap error chains (e.g., fmt.Errorf wrapping).
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := h.toAPIError(r, err)
	h.writeJSON(w, apiErr.StatusCode, errorResponse{
		Error: errorBody{
			Code:    apiErr.Code,
			Message: apiErr.Message,
		},
	})
}

// toAPIError maps err onto the client-facing error taxonomy. Backend
// messages are logged, never returned.
func (h *Handler) toAPIError(r *http.Request, err error) *model.APIError {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var cf *cart.Failure
	if errors.As(err, &cf) {
		return cartAPIError(cf)
	}

	h.logger.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
	return model.NewInternalError(err)
}

func cartAPIError(f *cart.Failure) *model.APIError {
	switch f.Reason {
	case cart.ReasonMissingCart:
		return model.NewMissingCartError()
	case cart.ReasonCartServiceUnavailable:
		return model.NewUpstreamError("cart", f)
	case cart.ReasonAddFailed, cart.ReasonUpdateFailed, cart.ReasonRemoveFailed, cart.ReasonSyncFailed:
		e := model.NewReasonError(f.Reason, f)
		e.StatusCode = http.StatusUnprocessableEntity
		return e
	default:
		return model.NewReasonError(f.Reason, f)
	}
}

// errorResponse is the JSON structure for error responses.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MaxRequestBodySize limits request bodies to 1MB to prevent DoS.
const MaxRequestBodySize = 1 << 20 // 1MB

// decodeJSON reads JSON from request body into v.
// Limits body size to MaxRequestBodySize to prevent memory exhaustion.
// Returns an APIError if decoding fails.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		// Don't expose internal error details to client
		return model.NewValidationError("body", "invalid JSON")
	}
	return nil
}

// isForm reports whether r carries an HTML form body.
func isForm(r *http.Request) bool {
	mt := mediaType(r)
	return mt == "application/x-www-form-urlencoded" || mt == "multipart/form-data"
}

func mediaType(r *http.Request) string {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mt
}

// parseForm parses an HTML form body, bounded by MaxRequestBodySize.
func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)
	var err error
	if mediaType(r) == "multipart/form-data" {
		err = r.ParseMultipartForm(MaxRequestBodySize)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return model.NewValidationError("body", "invalid form")
	}
	return nil
}
