package magento

import (
	"errors"
	"strings"
)

// CommerceError reports any failure talking to Magento: transport errors,
// non-2xx statuses, GraphQL errors, and responses without data.
type CommerceError struct {
	// Message is the caller-facing summary. For GraphQL errors it is the
	// "; "-joined list of error messages.
	Message string

	// StatusCode is the HTTP status when the endpoint answered non-2xx.
	StatusCode int

	// Messages and Categories hold the individual GraphQL error entries.
	Messages   []string
	Categories []string

	// Err is the transport-level cause, if any.
	Err error
}

func (e *CommerceError) Error() string {
	return e.Message
}

func (e *CommerceError) Unwrap() error {
	return e.Err
}

// IsCommerceError reports whether err came from the commerce backend.
func IsCommerceError(err error) bool {
	var ce *CommerceError
	return errors.As(err, &ce)
}

// cartNotFoundMarkers are lower-cased fragments of the errors Magento returns
// for deleted, converted, or foreign carts.
var cartNotFoundMarkers = []string{
	"could not find a cart with id",
	"the cart isn't active",
	"current user does not have an active cart",
}

// IsCartNotFound reports whether err is Magento's stale-cart condition.
func IsCartNotFound(err error) bool {
	var ce *CommerceError
	if !errors.As(err, &ce) {
		return false
	}
	msgs := ce.Messages
	if len(msgs) == 0 {
		msgs = []string{ce.Message}
	}
	for _, msg := range msgs {
		lower := strings.ToLower(msg)
		for _, marker := range cartNotFoundMarkers {
			if strings.Contains(lower, marker) {
				return true
			}
		}
	}
	return false
}

// IsUnauthorized reports whether Magento rejected the customer token.
func IsUnauthorized(err error) bool {
	var ce *CommerceError
	if !errors.As(err, &ce) {
		return false
	}
	if ce.StatusCode == 401 {
		return true
	}
	for _, cat := range ce.Categories {
		if cat == "graphql-authorization" {
			return true
		}
	}
	return false
}
