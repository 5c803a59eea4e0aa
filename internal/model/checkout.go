package model

import (
	"strings"
)

// USCountryCode is the only shipping country accepted from checkout forms.
const USCountryCode = "US"

// PaymentMethodOption is a payment method Magento offers for the cart.
type PaymentMethodOption struct {
	Code  string `json:"code"`
	Title string `json:"title"`
}

// ShippingMethodOption is a carrier/method pair Magento offers for the
// cart's first shipping address.
type ShippingMethodOption struct {
	CarrierCode  string `json:"carrier_code"`
	MethodCode   string `json:"method_code"`
	CarrierTitle string `json:"carrier_title,omitempty"`
	MethodTitle  string `json:"method_title,omitempty"`
	Amount       *Money `json:"amount,omitempty"`
}

// Key returns the "carrier:method" form used by checkout forms.
func (o ShippingMethodOption) Key() string {
	return ShippingMethodInput{CarrierCode: o.CarrierCode, MethodCode: o.MethodCode}.Key()
}

// CheckoutReadiness is the derived view of whether a cart can be submitted.
// Ready is true iff Reasons is empty.
type CheckoutReadiness struct {
	CartID                   string                 `json:"cart_id"`
	Ready                    bool                   `json:"ready"`
	Reasons                  []string               `json:"reasons"`
	IsVirtual                bool                   `json:"is_virtual"`
	RequiresGuestEmail       bool                   `json:"requires_guest_email"`
	AvailablePaymentMethods  []PaymentMethodOption  `json:"available_payment_methods"`
	AvailableShippingMethods []ShippingMethodOption `json:"available_shipping_methods"`
	SelectedShippingMethod   string                 `json:"selected_shipping_method,omitempty"`
}

// HasShippingMethod reports whether carrier/method is among the available options.
func (r *CheckoutReadiness) HasShippingMethod(m ShippingMethodInput) bool {
	for _, opt := range r.AvailableShippingMethods {
		if opt.CarrierCode == m.CarrierCode && opt.MethodCode == m.MethodCode {
			return true
		}
	}
	return false
}

// ShippingMethodInput selects a carrier/method pair.
type ShippingMethodInput struct {
	CarrierCode string `json:"carrier_code" validate:"required"`
	MethodCode  string `json:"method_code" validate:"required"`
}

// Key returns "carrier:method".
func (m ShippingMethodInput) Key() string {
	return m.CarrierCode + ":" + m.MethodCode
}

// ParseShippingMethodKey parses "carrier:method". Anything after a second
// colon is ignored; both codes must be non-empty after trimming.
func ParseShippingMethodKey(s string) (ShippingMethodInput, bool) {
	carrier, rest, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return ShippingMethodInput{}, false
	}
	method, _, _ := strings.Cut(rest, ":")
	carrier, method = strings.TrimSpace(carrier), strings.TrimSpace(method)
	if carrier == "" || method == "" {
		return ShippingMethodInput{}, false
	}
	return ShippingMethodInput{CarrierCode: carrier, MethodCode: method}, true
}

// ShippingAddressInput is the address sent with setShippingAddressesOnCart.
type ShippingAddressInput struct {
	Firstname   string   `json:"firstname" validate:"required"`
	Lastname    string   `json:"lastname" validate:"required"`
	Street      []string `json:"street" validate:"min=1,max=2"`
	City        string   `json:"city" validate:"required"`
	Postcode    string   `json:"postcode" validate:"required"`
	CountryCode string   `json:"country_code" validate:"required,len=2,uppercase"`
	Telephone   string   `json:"telephone" validate:"required"`
	Region      string   `json:"region,omitempty"`
}

// PlaceOrderInput carries what PlaceGuestOrder sends. ShippingAddress and
// ShippingMethod are optional; when nil the cart's current values are kept.
type PlaceOrderInput struct {
	Email             string                `json:"email"`
	PaymentMethodCode string                `json:"payment_method_code"`
	ShippingAddress   *ShippingAddressInput `json:"shipping_address,omitempty"`
	ShippingMethod    *ShippingMethodInput  `json:"shipping_method,omitempty"`
}
