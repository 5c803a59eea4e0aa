// Package outcome encodes checkout results in the Checkout-Outcome response
// header, an RFC 8941 dictionary:
//
//	Checkout-Outcome: success, order="000000123"
//	Checkout-Outcome: success=?0, reason="cart-not-ready"
package outcome

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dunglas/httpsfv"
)

// Header is the response header name.
const Header = "Checkout-Outcome"

// Outcome is the result of one place-order attempt.
type Outcome struct {
	Success bool
	Order   string // set when Success
	Reason  string // reason code when !Success
}

// Placed returns a successful outcome for order.
func Placed(order string) Outcome {
	return Outcome{Success: true, Order: order}
}

// Rejected returns a failed outcome carrying reason.
func Rejected(reason string) Outcome {
	return Outcome{Reason: reason}
}

// Format serializes o as a structured-field dictionary.
func Format(o Outcome) (string, error) {
	dict := httpsfv.NewDictionary()
	dict.Add("success", httpsfv.NewItem(o.Success))
	if o.Success {
		dict.Add("order", httpsfv.NewItem(o.Order))
	} else {
		dict.Add("reason", httpsfv.NewItem(o.Reason))
	}
	return httpsfv.Marshal(dict)
}

// Parse reads a Checkout-Outcome header value.
//
// Examples:
//   - success=?1, order="000000123"   → Placed("000000123")
//   - success=?0, reason="unexpected" → Rejected("unexpected")
//
// Unknown members are ignored.
func Parse(header string) (Outcome, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return Outcome{}, errors.New("empty Checkout-Outcome header")
	}

	dict, err := httpsfv.UnmarshalDictionary([]string{header})
	if err != nil {
		return Outcome{}, fmt.Errorf("invalid Checkout-Outcome header: %w", err)
	}

	member, ok := dict.Get("success")
	if !ok {
		return Outcome{}, errors.New("success key not found in Checkout-Outcome header")
	}
	item, ok := member.(httpsfv.Item)
	if !ok {
		return Outcome{}, errors.New("success value must be an item")
	}
	success, ok := item.Value.(bool)
	if !ok {
		return Outcome{}, errors.New("success value must be a boolean")
	}

	o := Outcome{Success: success}
	key := "reason"
	if success {
		key = "order"
	}
	value, err := stringMember(dict, key)
	if err != nil {
		return Outcome{}, err
	}
	if success {
		o.Order = value
	} else {
		o.Reason = value
	}
	return o, nil
}

func stringMember(dict *httpsfv.Dictionary, key string) (string, error) {
	member, ok := dict.Get(key)
	if !ok {
		return "", fmt.Errorf("%s key not found in Checkout-Outcome header", key)
	}
	item, ok := member.(httpsfv.Item)
	if !ok {
		return "", fmt.Errorf("%s value must be an item", key)
	}
	s, ok := item.Value.(string)
	if !ok {
		return "", fmt.Errorf("%s value must be a string", key)
	}
	return s, nil
}
