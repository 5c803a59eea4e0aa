package magento

import (
	"context"
	"fmt"

	"magento-storefront/internal/model"
)

// GenerateCustomerToken exchanges customer credentials for a bearer token.
func (c *Client) GenerateCustomerToken(ctx context.Context, email, password string) (string, error) {
	var resp struct {
		GenerateCustomerToken *struct {
			Token string `json:"token"`
		} `json:"generateCustomerToken"`
	}
	vars := map[string]any{"email": email, "password": password}
	if err := c.execute(ctx, generateCustomerTokenMutation, vars, "", &resp); err != nil {
		return "", err
	}
	if resp.GenerateCustomerToken == nil || resp.GenerateCustomerToken.Token == "" {
		return "", &CommerceError{Message: "generateCustomerToken returned no token"}
	}
	return resp.GenerateCustomerToken.Token, nil
}

// GetCustomerProfile returns the signed-in customer's name and email.
func (c *Client) GetCustomerProfile(ctx context.Context, token string) (*model.CustomerProfile, error) {
	var resp struct {
		Customer *customerNode `json:"customer"`
	}
	if err := c.execute(ctx, getCustomerQuery, nil, token, &resp); err != nil {
		return nil, err
	}
	return toCustomerProfile(resp.Customer), nil
}

// GetCustomerDashboard returns profile, address book, recent orders and
// wishlists in one round trip.
func (c *Client) GetCustomerDashboard(ctx context.Context, token string) (*model.CustomerDashboard, error) {
	var resp struct {
		Customer *customerNode `json:"customer"`
	}
	if err := c.execute(ctx, getCustomerDashboardQuery, nil, token, &resp); err != nil {
		return nil, err
	}
	return toCustomerDashboard(resp.Customer), nil
}

// GetCustomerOrders returns one page of order history, newest first.
func (c *Client) GetCustomerOrders(ctx context.Context, token string, pageSize, page int) (*model.OrderPage, error) {
	if pageSize <= 0 || page <= 0 {
		return nil, fmt.Errorf("invalid page %d/%d", page, pageSize)
	}
	var resp struct {
		Customer *struct {
			Orders *ordersNode `json:"orders"`
		} `json:"customer"`
	}
	vars := map[string]any{"pageSize": pageSize, "currentPage": page}
	if err := c.execute(ctx, getCustomerOrdersQuery, vars, token, &resp); err != nil {
		return nil, err
	}

	out := &model.OrderPage{CurrentPage: page, Orders: []model.OrderSummary{}}
	if resp.Customer == nil || resp.Customer.Orders == nil {
		return out, nil
	}
	orders := resp.Customer.Orders
	out.TotalCount = orders.TotalCount
	if orders.PageInfo != nil {
		out.CurrentPage = orders.PageInfo.CurrentPage
		out.TotalPages = orders.PageInfo.TotalPages
	}
	out.Orders = toOrderSummaries(orders)
	return out, nil
}
