package magento

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"magento-storefront/internal/adapter"
	"magento-storefront/internal/model"
	"magento-storefront/internal/readiness"
)

var _ adapter.Commerce = (*Client)(nil)

// ErrMissingOrderNumber is returned when Magento accepts placeOrder but the
// response carries no order number. It is not a CommerceError.
var ErrMissingOrderNumber = errors.New("placeOrder did not return an order number")

// CreateEmptyCart creates a guest cart and returns its masked id.
func (c *Client) CreateEmptyCart(ctx context.Context) (string, error) {
	var resp struct {
		CreateEmptyCart string `json:"createEmptyCart"`
	}
	if err := c.execute(ctx, createEmptyCartMutation, nil, "", &resp); err != nil {
		return "", err
	}
	if resp.CreateEmptyCart == "" {
		return "", &CommerceError{Message: "createEmptyCart returned an empty cart id"}
	}
	return resp.CreateEmptyCart, nil
}

// AddItem adds qty of a simple product to the cart.
func (c *Client) AddItem(ctx context.Context, cartID, sku string, qty float64) (*model.CartSnapshot, error) {
	var resp struct {
		AddSimpleProductsToCart struct {
			Cart *cartNode `json:"cart"`
		} `json:"addSimpleProductsToCart"`
	}
	vars := map[string]any{"cartId": cartID, "sku": sku, "quantity": qty}
	if err := c.execute(ctx, addSimpleProductsToCartMutation, vars, "", &resp); err != nil {
		return nil, err
	}
	return toCartSnapshot(resp.AddSimpleProductsToCart.Cart), nil
}

// UpdateItemQuantity sets the quantity of a cart line.
func (c *Client) UpdateItemQuantity(ctx context.Context, cartID, uid string, qty float64) (*model.CartSnapshot, error) {
	var resp struct {
		UpdateCartItems struct {
			Cart *cartNode `json:"cart"`
		} `json:"updateCartItems"`
	}
	vars := map[string]any{"cartId": cartID, "cartItemUid": uid, "quantity": qty}
	if err := c.execute(ctx, updateCartItemsMutation, vars, "", &resp); err != nil {
		return nil, err
	}
	return toCartSnapshot(resp.UpdateCartItems.Cart), nil
}

// RemoveItem deletes a cart line.
func (c *Client) RemoveItem(ctx context.Context, cartID, uid string) (*model.CartSnapshot, error) {
	var resp struct {
		RemoveItemFromCart struct {
			Cart *cartNode `json:"cart"`
		} `json:"removeItemFromCart"`
	}
	vars := map[string]any{"cartId": cartID, "cartItemUid": uid}
	if err := c.execute(ctx, removeItemFromCartMutation, vars, "", &resp); err != nil {
		return nil, err
	}
	return toCartSnapshot(resp.RemoveItemFromCart.Cart), nil
}

// GetCart fetches the full cart snapshot.
func (c *Client) GetCart(ctx context.Context, cartID string) (*model.CartSnapshot, error) {
	var resp struct {
		Cart *cartNode `json:"cart"`
	}
	if err := c.execute(ctx, getCartQuery, map[string]any{"cartId": cartID}, "", &resp); err != nil {
		return nil, err
	}
	return toCartSnapshot(resp.Cart), nil
}

// GetReadinessSnapshot fetches the raw fields readiness is computed from.
func (c *Client) GetReadinessSnapshot(ctx context.Context, cartID string) (*readiness.Snapshot, error) {
	var resp struct {
		Cart *readinessNode `json:"cart"`
	}
	if err := c.execute(ctx, getCartCheckoutReadinessQuery, map[string]any{"cartId": cartID}, "", &resp); err != nil {
		return nil, err
	}
	if resp.Cart == nil {
		return nil, &CommerceError{Message: fmt.Sprintf("Could not find a cart with ID %q", cartID)}
	}
	s := toReadinessSnapshot(resp.Cart)
	return &s, nil
}

// GetReadiness fetches the snapshot and evaluates it.
func (c *Client) GetReadiness(ctx context.Context, cartID string) (*model.CheckoutReadiness, error) {
	s, err := c.GetReadinessSnapshot(ctx, cartID)
	if err != nil {
		return nil, err
	}
	r := readiness.Evaluate(*s)
	return &r, nil
}

// SetGuestEmail sets the order email. A blank email is a no-op.
func (c *Client) SetGuestEmail(ctx context.Context, cartID, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	vars := map[string]any{"cartId": cartID, "email": email}
	return c.execute(ctx, setGuestEmailOnCartMutation, vars, "", nil)
}

// SetShippingAddress sets the cart's single shipping address.
func (c *Client) SetShippingAddress(ctx context.Context, cartID string, addr model.ShippingAddressInput) error {
	vars := map[string]any{
		"cartId":      cartID,
		"firstname":   addr.Firstname,
		"lastname":    addr.Lastname,
		"street":      addr.Street,
		"city":        addr.City,
		"postcode":    addr.Postcode,
		"countryCode": addr.CountryCode,
		"telephone":   addr.Telephone,
		"region":      nil,
	}
	if addr.Region != "" {
		vars["region"] = addr.Region
	}
	return c.execute(ctx, setShippingAddressesOnCartMutation, vars, "", nil)
}

// SetShippingAddressFromCustomerAddress copies a saved address onto the cart.
// Requires the customer token that owns the address.
func (c *Client) SetShippingAddressFromCustomerAddress(ctx context.Context, cartID string, addressID int, token string) error {
	vars := map[string]any{"cartId": cartID, "customerAddressId": addressID}
	return c.execute(ctx, setShippingAddressFromCustomerAddressMutation, vars, token, nil)
}

// SetBillingAddressFromCustomerAddress copies a saved address as billing address.
func (c *Client) SetBillingAddressFromCustomerAddress(ctx context.Context, cartID string, addressID int, token string) error {
	vars := map[string]any{"cartId": cartID, "customerAddressId": addressID}
	return c.execute(ctx, setBillingAddressFromCustomerAddressMutation, vars, token, nil)
}

// SetShippingMethod selects a carrier/method on the first shipping address.
func (c *Client) SetShippingMethod(ctx context.Context, cartID string, m model.ShippingMethodInput) error {
	vars := map[string]any{
		"cartId":      cartID,
		"carrierCode": m.CarrierCode,
		"methodCode":  m.MethodCode,
	}
	return c.execute(ctx, setShippingMethodsOnCartMutation, vars, "", nil)
}

// SetPaymentMethod selects the payment method by code.
func (c *Client) SetPaymentMethod(ctx context.Context, cartID, code string) error {
	vars := map[string]any{"cartId": cartID, "paymentMethodCode": code}
	return c.execute(ctx, setPaymentMethodOnCartMutation, vars, "", nil)
}

// PlaceOrder converts the cart into an order and returns the order number.
func (c *Client) PlaceOrder(ctx context.Context, cartID string) (string, error) {
	var resp struct {
		PlaceOrder *struct {
			OrderV2 *struct {
				Number *string `json:"number"`
			} `json:"orderV2"`
		} `json:"placeOrder"`
	}
	if err := c.execute(ctx, placeOrderMutation, map[string]any{"cartId": cartID}, "", &resp); err != nil {
		return "", err
	}
	if resp.PlaceOrder == nil || resp.PlaceOrder.OrderV2 == nil {
		return "", ErrMissingOrderNumber
	}
	number := deref(resp.PlaceOrder.OrderV2.Number)
	if number == "" {
		return "", ErrMissingOrderNumber
	}
	return number, nil
}

// PlaceGuestOrder runs the guest placement sequence: email, optional
// address, optional method, payment, then placeOrder. It stops at the first
// failure; earlier mutations stay applied.
func (c *Client) PlaceGuestOrder(ctx context.Context, cartID string, in model.PlaceOrderInput) (string, error) {
	if err := c.SetGuestEmail(ctx, cartID, in.Email); err != nil {
		return "", err
	}
	if in.ShippingAddress != nil {
		if err := c.SetShippingAddress(ctx, cartID, *in.ShippingAddress); err != nil {
			return "", err
		}
	}
	if in.ShippingMethod != nil {
		if err := c.SetShippingMethod(ctx, cartID, *in.ShippingMethod); err != nil {
			return "", err
		}
	}
	if err := c.SetPaymentMethod(ctx, cartID, in.PaymentMethodCode); err != nil {
		return "", err
	}
	return c.PlaceOrder(ctx, cartID)
}
