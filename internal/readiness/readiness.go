// Package readiness derives whether a Magento cart can be submitted as an order.
//
// Evaluate is a pure projection of a cart snapshot. Callers re-read the cart
// and re-evaluate after every mutation instead of caching a verdict.
package readiness

import (
	"strings"

	"magento-storefront/internal/model"
)

// Blocking reasons, surfaced verbatim to shoppers. Evaluate emits them in
// the order declared here.
const (
	ReasonShippingMethodNotSelected = "Shipping method is not selected yet."
	ReasonNoShippingMethods         = "No shipping methods are currently available."
	ReasonNoPaymentMethods          = "No payment methods are currently available."
	ReasonGuestEmailRequired        = "Guest email is required before placing order."
)

// Snapshot holds the raw cart fields readiness depends on.
type Snapshot struct {
	CartID            string
	IsVirtual         bool
	Email             string
	PaymentMethods    []model.PaymentMethodOption
	ShippingAddresses []ShippingAddress
}

// ShippingAddress is the per-address shipping state of a cart.
type ShippingAddress struct {
	Selected  *model.ShippingMethodInput
	Available []model.ShippingMethodOption
}

// Evaluate computes the readiness verdict for a snapshot.
// Only the first shipping address is consulted; multi-address carts are not supported.
func Evaluate(s Snapshot) model.CheckoutReadiness {
	hasGuestEmail := strings.TrimSpace(s.Email) != ""
	payments := mapPaymentMethods(s.PaymentMethods)

	var (
		shipping []model.ShippingMethodOption
		selected string
	)
	if len(s.ShippingAddresses) > 0 {
		first := s.ShippingAddresses[0]
		shipping = mapShippingMethods(first.Available)
		selected = selectedKey(first.Selected)
	}

	reasons := []string{}
	if !s.IsVirtual && selected == "" {
		reasons = append(reasons, ReasonShippingMethodNotSelected)
	}
	if !s.IsVirtual && len(shipping) == 0 {
		reasons = append(reasons, ReasonNoShippingMethods)
	}
	if len(payments) == 0 {
		reasons = append(reasons, ReasonNoPaymentMethods)
	}
	if !hasGuestEmail {
		reasons = append(reasons, ReasonGuestEmailRequired)
	}

	return model.CheckoutReadiness{
		CartID:                   s.CartID,
		Ready:                    len(reasons) == 0,
		Reasons:                  reasons,
		IsVirtual:                s.IsVirtual,
		RequiresGuestEmail:       !hasGuestEmail,
		AvailablePaymentMethods:  payments,
		AvailableShippingMethods: shipping,
		SelectedShippingMethod:   selected,
	}
}

// Without returns reasons minus every entry in ignored, preserving order.
func Without(reasons []string, ignored ...string) []string {
	out := make([]string, 0, len(reasons))
	for _, r := range reasons {
		skip := false
		for _, ig := range ignored {
			if r == ig {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, r)
		}
	}
	return out
}

func mapPaymentMethods(in []model.PaymentMethodOption) []model.PaymentMethodOption {
	out := make([]model.PaymentMethodOption, 0, len(in))
	for _, m := range in {
		code := strings.TrimSpace(m.Code)
		if code == "" {
			continue
		}
		out = append(out, model.PaymentMethodOption{
			Code:  code,
			Title: strings.TrimSpace(m.Title),
		})
	}
	return out
}

func mapShippingMethods(in []model.ShippingMethodOption) []model.ShippingMethodOption {
	out := make([]model.ShippingMethodOption, 0, len(in))
	for _, m := range in {
		carrier := strings.TrimSpace(m.CarrierCode)
		method := strings.TrimSpace(m.MethodCode)
		if carrier == "" || method == "" {
			continue
		}
		out = append(out, model.ShippingMethodOption{
			CarrierCode:  carrier,
			MethodCode:   method,
			CarrierTitle: strings.TrimSpace(m.CarrierTitle),
			MethodTitle:  strings.TrimSpace(m.MethodTitle),
			Amount:       m.Amount,
		})
	}
	return out
}

func selectedKey(m *model.ShippingMethodInput) string {
	if m == nil {
		return ""
	}
	carrier := strings.TrimSpace(m.CarrierCode)
	method := strings.TrimSpace(m.MethodCode)
	if carrier == "" || method == "" {
		return ""
	}
	return carrier + ":" + method
}
