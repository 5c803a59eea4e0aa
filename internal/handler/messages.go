package handler

import (
	"net/http"

	"magento-storefront/internal/checkout"
)

// checkoutMessages maps checkout reason codes to shopper-facing text.
var checkoutMessages = map[string]string{
	checkout.ReasonMissingCart:            "Cart session was not found. Add products before checkout.",
	checkout.ReasonInvalidEmail:           "Enter a valid email address before placing order.",
	checkout.ReasonInvalidShippingAddress: "Shipping address is required for physical products.",
	checkout.ReasonMissingShippingMethod:  "Select a shipping method before placing order.",
	checkout.ReasonInvalidShippingMethod:  "Selected shipping method is not available for this cart.",
	checkout.ReasonMissingPaymentMethod:   "Select a payment method before placing order.",
	checkout.ReasonCartNotReady:           "Cart is not ready for checkout yet. Resolve shipping/payment readiness first.",
	checkout.ReasonCheckoutFailed:         "Checkout failed in commerce backend. Review cart readiness and try again.",
	checkout.ReasonUnexpected:             "Unexpected checkout failure occurred. Please try again.",
}

const fallbackCheckoutMessage = "Checkout failed. Please try again."

// checkoutMessage returns the text for reason, with a generic fallback.
func checkoutMessage(reason string) string {
	if msg, ok := checkoutMessages[reason]; ok {
		return msg
	}
	return fallbackCheckoutMessage
}

// checkoutStatus is the HTTP status JSON clients get for a failed placement.
func checkoutStatus(reason string) int {
	switch reason {
	case checkout.ReasonMissingCart:
		return http.StatusNotFound
	case checkout.ReasonCheckoutFailed:
		return http.StatusBadGateway
	case checkout.ReasonUnexpected:
		return http.StatusInternalServerError
	default:
		return http.StatusUnprocessableEntity
	}
}
