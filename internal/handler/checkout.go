package handler

import (
	"log/slog"
	"net/http"
	"net/url"

	"magento-storefront/internal/checkout"
	"magento-storefront/internal/magento"
	"magento-storefront/internal/model"
	"magento-storefront/internal/outcome"
	"magento-storefront/internal/readiness"
)

// checkoutPageResponse is the GET /checkout payload.
type checkoutPageResponse struct {
	*checkout.Page
	Notice *notice `json:"notice,omitempty"`
}

type notice struct {
	Type    string `json:"type"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message"`
}

// placeOrderResponse is the JSON outcome of POST /checkout/place-order.
type placeOrderResponse struct {
	Success     bool   `json:"success"`
	OrderNumber string `json:"orderNumber,omitempty"`
	ReasonCode  string `json:"reasonCode,omitempty"`
	Message     string `json:"message,omitempty"`
}

// handleCheckoutPage returns the data behind the checkout page. A redirect
// back from a failed form post (?checkout=error&reason=R) adds a notice.
// GET /checkout
func (h *Handler) handleCheckoutPage(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.FromRequest(w, r)

	page, err := h.checkout.Prepare(r.Context(), sess)
	if err != nil {
		h.writeError(w, r, upstreamError("checkout", err))
		return
	}

	resp := checkoutPageResponse{Page: page}
	q := r.URL.Query()
	if q.Get("checkout") == "error" {
		reason := q.Get("reason")
		resp.Notice = &notice{Type: "error", Reason: reason, Message: checkoutMessage(reason)}
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// handleReadiness evaluates the visitor's cart.
// GET /checkout/readiness
func (h *Handler) handleReadiness(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.FromRequest(w, r)
	cartID := sess.CartID()
	if cartID == "" {
		h.writeError(w, r, model.NewMissingCartError())
		return
	}

	snap, err := h.commerce.GetReadinessSnapshot(r.Context(), cartID)
	if err != nil {
		if magento.IsCartNotFound(err) {
			sess.ClearCart()
			h.writeError(w, r, model.NewMissingCartError())
			return
		}
		h.writeError(w, r, upstreamError("readiness", err))
		return
	}
	h.writeJSON(w, http.StatusOK, readiness.Evaluate(*snap))
}

// handlePlaceOrder runs checkout for the visitor's cart.
// POST /checkout/place-order
//
// Form posts get a 303 to the confirmation or back to /checkout with the
// reason; JSON clients get a placeOrderResponse. Both carry the
// Checkout-Outcome header.
func (h *Handler) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := h.sessions.FromRequest(w, r)

	form := isForm(r)
	var in checkout.FormInput
	if form {
		if err := parseForm(w, r); err != nil {
			h.writeError(w, r, err)
			return
		}
		in = checkout.ParseForm(r.PostForm)
	} else if err := decodeJSON(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	number, err := h.checkout.PlaceOrder(ctx, sess, in)
	result := outcome.Placed(number)
	if err != nil {
		result = outcome.Rejected(checkout.ReasonOf(err))
	}
	h.setOutcomeHeader(w, r, result)

	if form {
		http.Redirect(w, r, h.storefrontURL+outcomeLocation(result), http.StatusSeeOther)
		return
	}

	if !result.Success {
		h.writeJSON(w, checkoutStatus(result.Reason), placeOrderResponse{
			ReasonCode: result.Reason,
			Message:    checkoutMessage(result.Reason),
		})
		return
	}
	h.writeJSON(w, http.StatusOK, placeOrderResponse{Success: true, OrderNumber: result.Order})
}

func (h *Handler) setOutcomeHeader(w http.ResponseWriter, r *http.Request, o outcome.Outcome) {
	v, err := outcome.Format(o)
	if err != nil {
		h.logger.WarnContext(r.Context(), "failed to format outcome header", slog.String("error", err.Error()))
		return
	}
	w.Header().Set(outcome.Header, v)
}

// outcomeLocation is where a form post lands after checkout.
func outcomeLocation(o outcome.Outcome) string {
	if o.Success {
		return "/order/confirmation?" + url.Values{"order": {o.Order}}.Encode()
	}
	return "/checkout?" + url.Values{"checkout": {"error"}, "reason": {o.Reason}}.Encode()
}

// upstreamError maps commerce failures to 502 and leaves other errors to
// writeError.
func upstreamError(service string, err error) error {
	if magento.IsCommerceError(err) {
		return model.NewUpstreamError(service, err)
	}
	return err
}
