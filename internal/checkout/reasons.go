package checkout

import (
	"errors"

	"magento-storefront/internal/magento"
)

// Reason codes returned to the presentation layer. Message lookup lives there.
const (
	ReasonMissingCart            = "missing-cart"
	ReasonInvalidEmail           = "invalid-email"
	ReasonMissingPaymentMethod   = "missing-payment-method"
	ReasonInvalidShippingAddress = "invalid-shipping-address"
	ReasonMissingShippingMethod  = "missing-shipping-method"
	ReasonInvalidShippingMethod  = "invalid-shipping-method"
	ReasonCartNotReady           = "cart-not-ready"
	ReasonCheckoutFailed         = "checkout-failed"
	ReasonUnexpected             = "unexpected"
)

// OutcomePlaced labels a successful placement in metrics.
const OutcomePlaced = "placed"

// Failure is a checkout attempt that stopped with a stable reason code.
type Failure struct {
	Reason string
	Err    error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return "checkout " + f.Reason + ": " + f.Err.Error()
	}
	return "checkout " + f.Reason
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func fail(reason string, err error) *Failure {
	return &Failure{Reason: reason, Err: err}
}

// ReasonOf returns the reason code carried by err. Errors that are not a
// Failure report ReasonUnexpected; nil reports "".
func ReasonOf(err error) string {
	if err == nil {
		return ""
	}
	var f *Failure
	if errors.As(err, &f) {
		return f.Reason
	}
	return ReasonUnexpected
}

// classify maps an error from the mutation sequence to a Failure:
// commerce backend errors become checkout-failed, everything else unexpected.
func classify(err error) error {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	if magento.IsCommerceError(err) {
		return fail(ReasonCheckoutFailed, err)
	}
	return fail(ReasonUnexpected, err)
}
