package model

import (
	"errors"
	"strings"
	"testing"
)

func TestLooksLikeEmail(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"guest@example.com", true},
		{"a.b+tag@shop.example.co", true},
		{"", false},
		{"no-at-sign.com", false},
		{"user@nodot", false},
		{"two words@example.com", false},
		{"user@@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := LooksLikeEmail(tt.input); got != tt.want {
				t.Errorf("LooksLikeEmail(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func validAddress() ShippingAddressInput {
	return ShippingAddressInput{
		Firstname:   "Ada",
		Lastname:    "Lovelace",
		Street:      []string{"1 Main St"},
		City:        "Austin",
		Postcode:    "78701",
		CountryCode: "US",
		Telephone:   "5125550100",
		Region:      "TX",
	}
}

func TestValidate_ShippingAddress(t *testing.T) {
	if err := Validate(validAddress()); err != nil {
		t.Fatalf("valid address rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*ShippingAddressInput)
		field  string
	}{
		{"missing firstname", func(a *ShippingAddressInput) { a.Firstname = "" }, "firstname"},
		{"no street", func(a *ShippingAddressInput) { a.Street = nil }, "street"},
		{"three street lines", func(a *ShippingAddressInput) { a.Street = []string{"a", "b", "c"} }, "street"},
		{"lowercase country", func(a *ShippingAddressInput) { a.CountryCode = "us" }, "country_code"},
		{"long country", func(a *ShippingAddressInput) { a.CountryCode = "USA" }, "country_code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr := validAddress()
			tt.mutate(&addr)
			err := Validate(addr)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("error should wrap ErrInvalidRequest: %v", err)
			}
			var apiErr *APIError
			if errors.As(err, &apiErr) && !strings.Contains(apiErr.Message, tt.field) {
				t.Errorf("Message = %q, want field %q", apiErr.Message, tt.field)
			}
		})
	}
}

func TestParseShippingMethodKey(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
		want  ShippingMethodInput
	}{
		{"flatrate:flatrate", true, ShippingMethodInput{"flatrate", "flatrate"}},
		{" ups : ground ", true, ShippingMethodInput{"ups", "ground"}},
		{"tablerate:bestway:extra", true, ShippingMethodInput{"tablerate", "bestway"}},
		{"flatrate", false, ShippingMethodInput{}},
		{":flatrate", false, ShippingMethodInput{}},
		{"flatrate:", false, ShippingMethodInput{}},
		{"", false, ShippingMethodInput{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseShippingMethodKey(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseShippingMethodKey(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.ok)
			}
			if ok && got.Key() == "" {
				t.Error("Key() should not be empty")
			}
		})
	}
}

func TestCheckoutReadiness_HasShippingMethod(t *testing.T) {
	r := &CheckoutReadiness{
		AvailableShippingMethods: []ShippingMethodOption{
			{CarrierCode: "flatrate", MethodCode: "flatrate"},
		},
	}
	if !r.HasShippingMethod(ShippingMethodInput{"flatrate", "flatrate"}) {
		t.Error("expected flatrate:flatrate to be available")
	}
	if r.HasShippingMethod(ShippingMethodInput{"ups", "ground"}) {
		t.Error("ups:ground should not be available")
	}
}
