package checkout

import (
	"net/url"
	"strings"

	"magento-storefront/internal/model"
)

// FormInput is the raw checkout submission. Every field is an untrusted
// string; the orchestrator trims and validates before use. JSON clients send
// the same field names as the HTML form.
type FormInput struct {
	Email          string `json:"email"`
	PaymentMethod  string `json:"payment_method"`
	ShippingMethod string `json:"shipping_method,omitempty"`

	ShippingFirstname   string `json:"shipping_firstname,omitempty"`
	ShippingLastname    string `json:"shipping_lastname,omitempty"`
	ShippingStreet1     string `json:"shipping_street_1,omitempty"`
	ShippingStreet2     string `json:"shipping_street_2,omitempty"`
	ShippingCity        string `json:"shipping_city,omitempty"`
	ShippingPostcode    string `json:"shipping_postcode,omitempty"`
	ShippingCountryCode string `json:"shipping_country_code,omitempty"`
	ShippingTelephone   string `json:"shipping_telephone,omitempty"`
	ShippingState       string `json:"shipping_state,omitempty"`
	ShippingRegion      string `json:"shipping_region,omitempty"`
}

// ParseForm reads a checkout submission from form values.
func ParseForm(v url.Values) FormInput {
	return FormInput{
		Email:               v.Get("email"),
		PaymentMethod:       v.Get("payment_method"),
		ShippingMethod:      v.Get("shipping_method"),
		ShippingFirstname:   v.Get("shipping_firstname"),
		ShippingLastname:    v.Get("shipping_lastname"),
		ShippingStreet1:     v.Get("shipping_street_1"),
		ShippingStreet2:     v.Get("shipping_street_2"),
		ShippingCity:        v.Get("shipping_city"),
		ShippingPostcode:    v.Get("shipping_postcode"),
		ShippingCountryCode: v.Get("shipping_country_code"),
		ShippingTelephone:   v.Get("shipping_telephone"),
		ShippingState:       v.Get("shipping_state"),
		ShippingRegion:      v.Get("shipping_region"),
	}
}

// NormalizedEmail returns the submitted email trimmed and lower-cased.
func (f FormInput) NormalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(f.Email))
}

// PaymentMethodCode returns the trimmed payment method code.
func (f FormInput) PaymentMethodCode() string {
	return strings.TrimSpace(f.PaymentMethod)
}

// RequestedShippingMethod parses the "carrier:method" selection, or nil.
func (f FormInput) RequestedShippingMethod() *model.ShippingMethodInput {
	m, ok := model.ParseShippingMethodKey(f.ShippingMethod)
	if !ok {
		return nil
	}
	return &m
}

// ShippingAddress returns the submitted address, or nil unless every
// required field and a state are present and the country is US.
func (f FormInput) ShippingAddress() *model.ShippingAddressInput {
	state := strings.TrimSpace(f.ShippingState)
	if state == "" {
		state = strings.TrimSpace(f.ShippingRegion)
	}
	state = strings.ToUpper(state)
	if state == "" {
		return nil
	}

	addr := model.ShippingAddressInput{
		Firstname:   strings.TrimSpace(f.ShippingFirstname),
		Lastname:    strings.TrimSpace(f.ShippingLastname),
		City:        strings.TrimSpace(f.ShippingCity),
		Postcode:    strings.TrimSpace(f.ShippingPostcode),
		CountryCode: strings.ToUpper(strings.TrimSpace(f.ShippingCountryCode)),
		Telephone:   strings.TrimSpace(f.ShippingTelephone),
		Region:      state,
	}
	street1 := strings.TrimSpace(f.ShippingStreet1)
	if street1 == "" {
		return nil
	}
	addr.Street = []string{street1}
	if street2 := strings.TrimSpace(f.ShippingStreet2); street2 != "" {
		addr.Street = append(addr.Street, street2)
	}

	if model.Validate(addr) != nil || addr.CountryCode != model.USCountryCode {
		return nil
	}
	return &addr
}
