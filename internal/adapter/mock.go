package adapter

import (
	"context"
	"errors"

	"magento-storefront/internal/model"
	"magento-storefront/internal/readiness"
)

// ErrNotConfigured is returned by Mock methods without a configured func.
var ErrNotConfigured = errors.New("mock: method not configured")

// Mock implements Commerce for testing.
// Each method can be configured via function fields; unconfigured methods
// return ErrNotConfigured.
type Mock struct {
	CreateEmptyCartFunc      func(ctx context.Context) (string, error)
	AddItemFunc              func(ctx context.Context, cartID, sku string, qty float64) (*model.CartSnapshot, error)
	UpdateItemQuantityFunc   func(ctx context.Context, cartID, uid string, qty float64) (*model.CartSnapshot, error)
	RemoveItemFunc           func(ctx context.Context, cartID, uid string) (*model.CartSnapshot, error)
	GetCartFunc              func(ctx context.Context, cartID string) (*model.CartSnapshot, error)
	GetReadinessSnapshotFunc func(ctx context.Context, cartID string) (*readiness.Snapshot, error)
	SetGuestEmailFunc        func(ctx context.Context, cartID, email string) error
	SetShippingAddressFunc   func(ctx context.Context, cartID string, addr model.ShippingAddressInput) error
	SetShippingMethodFunc    func(ctx context.Context, cartID string, method model.ShippingMethodInput) error
	SetPaymentMethodFunc     func(ctx context.Context, cartID, code string) error
	PlaceOrderFunc           func(ctx context.Context, cartID string) (string, error)
	PlaceGuestOrderFunc      func(ctx context.Context, cartID string, in model.PlaceOrderInput) (string, error)
	GetCustomerProfileFunc   func(ctx context.Context, token string) (*model.CustomerProfile, error)
	GetCustomerDashboardFunc func(ctx context.Context, token string) (*model.CustomerDashboard, error)
	GetCountryRegionsFunc    func(ctx context.Context, countryCode string) ([]model.CountryRegion, error)
}

// CreateEmptyCart calls the configured CreateEmptyCartFunc.
func (m *Mock) CreateEmptyCart(ctx context.Context) (string, error) {
	if m.CreateEmptyCartFunc != nil {
		return m.CreateEmptyCartFunc(ctx)
	}
	return "", ErrNotConfigured
}

// AddItem calls the configured AddItemFunc.
func (m *Mock) AddItem(ctx context.Context, cartID, sku string, qty float64) (*model.CartSnapshot, error) {
	if m.AddItemFunc != nil {
		return m.AddItemFunc(ctx, cartID, sku, qty)
	}
	return nil, ErrNotConfigured
}

// UpdateItemQuantity calls the configured UpdateItemQuantityFunc.
func (m *Mock) UpdateItemQuantity(ctx context.Context, cartID, uid string, qty float64) (*model.CartSnapshot, error) {
	if m.UpdateItemQuantityFunc != nil {
		return m.UpdateItemQuantityFunc(ctx, cartID, uid, qty)
	}
	return nil, ErrNotConfigured
}

// RemoveItem calls the configured RemoveItemFunc.
func (m *Mock) RemoveItem(ctx context.Context, cartID, uid string) (*model.CartSnapshot, error) {
	if m.RemoveItemFunc != nil {
		return m.RemoveItemFunc(ctx, cartID, uid)
	}
	return nil, ErrNotConfigured
}

// GetCart calls the configured GetCartFunc.
func (m *Mock) GetCart(ctx context.Context, cartID string) (*model.CartSnapshot, error) {
	if m.GetCartFunc != nil {
		return m.GetCartFunc(ctx, cartID)
	}
	return nil, ErrNotConfigured
}

// GetReadinessSnapshot calls the configured GetReadinessSnapshotFunc.
func (m *Mock) GetReadinessSnapshot(ctx context.Context, cartID string) (*readiness.Snapshot, error) {
	if m.GetReadinessSnapshotFunc != nil {
		return m.GetReadinessSnapshotFunc(ctx, cartID)
	}
	return nil, ErrNotConfigured
}

// SetGuestEmail calls the configured SetGuestEmailFunc.
func (m *Mock) SetGuestEmail(ctx context.Context, cartID, email string) error {
	if m.SetGuestEmailFunc != nil {
		return m.SetGuestEmailFunc(ctx, cartID, email)
	}
	return ErrNotConfigured
}

// SetShippingAddress calls the configured SetShippingAddressFunc.
func (m *Mock) SetShippingAddress(ctx context.Context, cartID string, addr model.ShippingAddressInput) error {
	if m.SetShippingAddressFunc != nil {
		return m.SetShippingAddressFunc(ctx, cartID, addr)
	}
	return ErrNotConfigured
}

// SetShippingMethod calls the configured SetShippingMethodFunc.
func (m *Mock) SetShippingMethod(ctx context.Context, cartID string, method model.ShippingMethodInput) error {
	if m.SetShippingMethodFunc != nil {
		return m.SetShippingMethodFunc(ctx, cartID, method)
	}
	return ErrNotConfigured
}

// SetPaymentMethod calls the configured SetPaymentMethodFunc.
func (m *Mock) SetPaymentMethod(ctx context.Context, cartID, code string) error {
	if m.SetPaymentMethodFunc != nil {
		return m.SetPaymentMethodFunc(ctx, cartID, code)
	}
	return ErrNotConfigured
}

// PlaceOrder calls the configured PlaceOrderFunc.
func (m *Mock) PlaceOrder(ctx context.Context, cartID string) (string, error) {
	if m.PlaceOrderFunc != nil {
		return m.PlaceOrderFunc(ctx, cartID)
	}
	return "", ErrNotConfigured
}

// PlaceGuestOrder calls the configured PlaceGuestOrderFunc.
func (m *Mock) PlaceGuestOrder(ctx context.Context, cartID string, in model.PlaceOrderInput) (string, error) {
	if m.PlaceGuestOrderFunc != nil {
		return m.PlaceGuestOrderFunc(ctx, cartID, in)
	}
	return "", ErrNotConfigured
}

// GetCustomerProfile calls the configured GetCustomerProfileFunc.
func (m *Mock) GetCustomerProfile(ctx context.Context, token string) (*model.CustomerProfile, error) {
	if m.GetCustomerProfileFunc != nil {
		return m.GetCustomerProfileFunc(ctx, token)
	}
	return nil, ErrNotConfigured
}

// GetCustomerDashboard calls the configured GetCustomerDashboardFunc.
func (m *Mock) GetCustomerDashboard(ctx context.Context, token string) (*model.CustomerDashboard, error) {
	if m.GetCustomerDashboardFunc != nil {
		return m.GetCustomerDashboardFunc(ctx, token)
	}
	return nil, ErrNotConfigured
}

// GetCountryRegions calls the configured GetCountryRegionsFunc or returns no regions.
func (m *Mock) GetCountryRegions(ctx context.Context, countryCode string) ([]model.CountryRegion, error) {
	if m.GetCountryRegionsFunc != nil {
		return m.GetCountryRegionsFunc(ctx, countryCode)
	}
	return []model.CountryRegion{}, nil
}

// Compile-time interface checks.
var _ Commerce = (*Mock)(nil)
