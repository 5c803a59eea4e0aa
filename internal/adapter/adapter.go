// Package adapter defines the commerce backend operations the storefront
// depends on. *magento.Client is the production implementation.
package adapter

import (
	"context"

	"magento-storefront/internal/model"
	"magento-storefront/internal/readiness"
)

// Commerce abstracts the cart, checkout and customer operations of the
// commerce backend. Implementations surface backend failures as errors the
// caller can classify (see magento.CommerceError).
type Commerce interface {
	// CreateEmptyCart creates a guest cart and returns its id.
	CreateEmptyCart(ctx context.Context) (string, error)

	// AddItem adds qty of sku and returns the updated cart.
	AddItem(ctx context.Context, cartID, sku string, qty float64) (*model.CartSnapshot, error)

	// UpdateItemQuantity sets the quantity of the line identified by uid.
	UpdateItemQuantity(ctx context.Context, cartID, uid string, qty float64) (*model.CartSnapshot, error)

	// RemoveItem deletes the line identified by uid.
	RemoveItem(ctx context.Context, cartID, uid string) (*model.CartSnapshot, error)

	// GetCart returns the current cart snapshot.
	GetCart(ctx context.Context, cartID string) (*model.CartSnapshot, error)

	// GetReadinessSnapshot returns the raw readiness fields of the cart.
	// Callers evaluate it with readiness.Evaluate.
	GetReadinessSnapshot(ctx context.Context, cartID string) (*readiness.Snapshot, error)

	SetGuestEmail(ctx context.Context, cartID, email string) error
	SetShippingAddress(ctx context.Context, cartID string, addr model.ShippingAddressInput) error
	SetShippingMethod(ctx context.Context, cartID string, method model.ShippingMethodInput) error
	SetPaymentMethod(ctx context.Context, cartID, code string) error

	// PlaceOrder converts the cart into an order and returns the order number.
	PlaceOrder(ctx context.Context, cartID string) (string, error)

	// PlaceGuestOrder sets email, optional address and method, and payment,
	// then places the order.
	PlaceGuestOrder(ctx context.Context, cartID string, in model.PlaceOrderInput) (string, error)

	// GetCustomerProfile returns the customer owning token.
	GetCustomerProfile(ctx context.Context, token string) (*model.CustomerProfile, error)

	// GetCustomerDashboard returns the customer's addresses, orders and wishlists.
	GetCustomerDashboard(ctx context.Context, token string) (*model.CustomerDashboard, error)

	// GetCountryRegions lists regions of a country; unknown countries yield none.
	GetCountryRegions(ctx context.Context, countryCode string) ([]model.CountryRegion, error)
}
