// Package checkout sequences the Magento mutations that take a cart from
// "items added" to "order placed".
//
// The orchestrator keeps no state between calls. Every decision is made on a
// fresh readiness read, so a failed attempt can simply be resubmitted.
package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"magento-storefront/internal/adapter"
	"magento-storefront/internal/metrics"
	"magento-storefront/internal/model"
	"magento-storefront/internal/readiness"
)

// CartReference is the caller's handle on the visitor's cart and session.
type CartReference interface {
	CartID() string
	CustomerToken() string
	// ClearCart forgets the cart id after the cart became an order.
	ClearCart()
}

// Orchestrator places orders against a commerce backend.
type Orchestrator struct {
	commerce adapter.Commerce
	metrics  *metrics.Checkout
	logger   *slog.Logger
}

// New creates an Orchestrator. m may be nil.
func New(commerce adapter.Commerce, m *metrics.Checkout, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{commerce: commerce, metrics: m, logger: logger}
}

// PlaceOrder runs the checkout sequence for ref's cart and returns the order
// number. Failures are *Failure values; use ReasonOf to read the code.
func (o *Orchestrator) PlaceOrder(ctx context.Context, ref CartReference, form FormInput) (string, error) {
	number, err := o.placeOrder(ctx, ref, form)
	if err != nil {
		reason := ReasonOf(err)
		o.metrics.RecordOutcome(reason)
		level := slog.LevelInfo
		if reason == ReasonCheckoutFailed || reason == ReasonUnexpected {
			level = slog.LevelWarn
		}
		o.logger.Log(ctx, level, "checkout rejected",
			"cart_id", ref.CartID(),
			"reason", reason,
			"error", err,
		)
		return "", err
	}

	o.metrics.RecordOutcome(OutcomePlaced)
	o.logger.InfoContext(ctx, "order placed", "cart_id", ref.CartID(), "order_number", number)
	return number, nil
}

func (o *Orchestrator) placeOrder(ctx context.Context, ref CartReference, form FormInput) (string, error) {
	cartID := ref.CartID()
	if cartID == "" {
		return "", fail(ReasonMissingCart, nil)
	}
	token := ref.CustomerToken()

	email := o.resolveEmail(ctx, token, form.NormalizedEmail())
	if !model.LooksLikeEmail(email) {
		return "", fail(ReasonInvalidEmail, nil)
	}

	paymentCode := form.PaymentMethodCode()
	if paymentCode == "" {
		return "", fail(ReasonMissingPaymentMethod, nil)
	}

	current, err := o.readiness(ctx, cartID)
	if err != nil {
		return "", classify(err)
	}

	var method *model.ShippingMethodInput
	if !current.IsVirtual {
		method, current, err = o.prepareShipping(ctx, cartID, token, form)
		if err != nil {
			return "", classify(err)
		}
	}

	if blocking := blockingReasons(current.Reasons, method != nil); len(blocking) > 0 {
		return "", fail(ReasonCartNotReady, fmt.Errorf("blocking: %s", strings.Join(blocking, " ")))
	}

	number, err := o.commerce.PlaceGuestOrder(ctx, cartID, model.PlaceOrderInput{
		Email:             email,
		PaymentMethodCode: paymentCode,
		ShippingMethod:    method,
	})
	if err != nil {
		return "", classify(err)
	}

	ref.ClearCart()
	return number, nil
}

// blockingReasons drops the reasons placement settles itself: the email is
// set during placement, and a resolved shipping method is sent again right
// before placeOrder.
func blockingReasons(reasons []string, methodResolved bool) []string {
	ignored := []string{readiness.ReasonGuestEmailRequired}
	if methodResolved {
		ignored = append(ignored, readiness.ReasonShippingMethodNotSelected)
	}
	return readiness.Without(reasons, ignored...)
}

// prepareShipping applies the address and shipping method for a physical
// cart and returns the resolved method with the final readiness.
func (o *Orchestrator) prepareShipping(ctx context.Context, cartID, token string, form FormInput) (*model.ShippingMethodInput, *model.CheckoutReadiness, error) {
	if err := o.applyShippingAddress(ctx, cartID, token, form); err != nil {
		return nil, nil, err
	}

	afterAddress, err := o.readiness(ctx, cartID)
	if err != nil {
		return nil, nil, err
	}

	requested := form.RequestedShippingMethod()
	method := resolveShippingMethod(requested, afterAddress)
	if method == nil {
		return nil, nil, fail(ReasonMissingShippingMethod, nil)
	}
	if len(afterAddress.AvailableShippingMethods) > 0 && !afterAddress.HasShippingMethod(*method) {
		return nil, nil, fail(ReasonInvalidShippingMethod, fmt.Errorf("%s not offered", method.Key()))
	}

	if requested != nil || afterAddress.SelectedShippingMethod == "" {
		if err := o.commerce.SetShippingMethod(ctx, cartID, *method); err != nil {
			return nil, nil, err
		}
	}

	final, err := o.readiness(ctx, cartID)
	if err != nil {
		return nil, nil, err
	}
	return method, final, nil
}

// applyShippingAddress sets the form address, or the customer's default
// address when the form has none. A failed default-address lookup or write
// is reported as invalid-shipping-address.
func (o *Orchestrator) applyShippingAddress(ctx context.Context, cartID, token string, form FormInput) error {
	if addr := form.ShippingAddress(); addr != nil {
		return o.commerce.SetShippingAddress(ctx, cartID, *addr)
	}
	if token == "" {
		return fail(ReasonInvalidShippingAddress, nil)
	}

	dashboard, err := o.commerce.GetCustomerDashboard(ctx, token)
	if err != nil {
		return fail(ReasonInvalidShippingAddress, fmt.Errorf("customer dashboard: %w", err))
	}
	def := DefaultShippingAddress(dashboard.Addresses, dashboard.DefaultShippingID)
	if def == nil {
		return fail(ReasonInvalidShippingAddress, nil)
	}
	if err := o.commerce.SetShippingAddress(ctx, cartID, ShippingAddressFromCustomer(*def)); err != nil {
		return fail(ReasonInvalidShippingAddress, fmt.Errorf("apply default address: %w", err))
	}
	return nil
}

// resolveEmail prefers the signed-in customer's email. A failed profile
// lookup falls back to the submitted email.
func (o *Orchestrator) resolveEmail(ctx context.Context, token, submitted string) string {
	if token == "" {
		return submitted
	}
	profile, err := o.commerce.GetCustomerProfile(ctx, token)
	if err != nil {
		o.logger.DebugContext(ctx, "customer profile lookup failed, using submitted email", "error", err)
		return submitted
	}
	if email := strings.ToLower(strings.TrimSpace(profile.Email)); email != "" {
		return email
	}
	return submitted
}

func (o *Orchestrator) readiness(ctx context.Context, cartID string) (*model.CheckoutReadiness, error) {
	snap, err := o.commerce.GetReadinessSnapshot(ctx, cartID)
	if err != nil {
		return nil, err
	}
	r := readiness.Evaluate(*snap)
	return &r, nil
}

// resolveShippingMethod picks the requested method, else the selected one,
// else the first available one.
func resolveShippingMethod(requested *model.ShippingMethodInput, r *model.CheckoutReadiness) *model.ShippingMethodInput {
	if requested != nil {
		return requested
	}
	if r.SelectedShippingMethod != "" {
		if m, ok := model.ParseShippingMethodKey(r.SelectedShippingMethod); ok {
			return &m
		}
	}
	if len(r.AvailableShippingMethods) == 0 {
		return nil
	}
	first := r.AvailableShippingMethods[0]
	return &model.ShippingMethodInput{CarrierCode: first.CarrierCode, MethodCode: first.MethodCode}
}

// DefaultShippingAddress finds the address whose id equals defaultID (a
// positive integer), falling back to the one flagged as default shipping.
func DefaultShippingAddress(addresses []model.CustomerAddress, defaultID string) *model.CustomerAddress {
	if id, err := strconv.Atoi(strings.TrimSpace(defaultID)); err == nil && id > 0 {
		for i := range addresses {
			if n, err := strconv.Atoi(addresses[i].ID); err == nil && n == id {
				return &addresses[i]
			}
		}
	}
	for i := range addresses {
		if addresses[i].DefaultShipping {
			return &addresses[i]
		}
	}
	return nil
}

// ShippingAddressFromCustomer converts an address-book entry for
// setShippingAddressesOnCart. Blank street lines are dropped and the region
// code wins over the region name.
func ShippingAddressFromCustomer(a model.CustomerAddress) model.ShippingAddressInput {
	street := make([]string, 0, len(a.Street))
	for _, line := range a.Street {
		if strings.TrimSpace(line) != "" {
			street = append(street, line)
		}
	}
	if len(street) == 0 {
		street = []string{""}
	}
	region := a.RegionCode
	if region == "" {
		region = a.Region
	}
	return model.ShippingAddressInput{
		Firstname:   a.Firstname,
		Lastname:    a.Lastname,
		Street:      street,
		City:        a.City,
		Postcode:    a.Postcode,
		CountryCode: a.CountryCode,
		Telephone:   a.Telephone,
		Region:      region,
	}
}
