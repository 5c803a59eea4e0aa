package checkout

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"magento-storefront/internal/model"
	"magento-storefront/internal/readiness"
)

// Page is the data behind the checkout page.
type Page struct {
	HasCart         bool                     `json:"has_cart"`
	Cart            *model.CartSnapshot      `json:"cart,omitempty"`
	Readiness       *model.CheckoutReadiness `json:"readiness,omitempty"`
	VisibleReasons  []string                 `json:"visible_reasons"`
	CustomerSession bool                     `json:"customer_session"`
	CustomerEmail   string                   `json:"customer_email,omitempty"`
	DefaultAddress  *model.CustomerAddress   `json:"default_address,omitempty"`
	Regions         []model.CountryRegion    `json:"regions"`
}

type customerContext struct {
	email   string
	address *model.CustomerAddress
}

// Prepare loads the checkout page for ref. A signed-in customer's email and
// default shipping address are applied to the cart first, and a physical cart
// without a shipping method gets the first available one.
//
// Customer and region lookups never fail the page: customer errors fall back
// to guest mode, and a failed or empty region lookup to the static US list.
func (o *Orchestrator) Prepare(ctx context.Context, ref CartReference) (*Page, error) {
	page := &Page{VisibleReasons: []string{}}

	var customer customerContext
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		customer = o.loadCustomer(gctx, ref.CustomerToken())
		return nil
	})
	g.Go(func() error {
		regions, err := o.commerce.GetCountryRegions(gctx, model.USCountryCode)
		if err != nil {
			o.logger.DebugContext(gctx, "region lookup failed, using static list", "error", err)
			regions = nil
		}
		page.Regions = stateOptions(regions)
		return nil
	})
	_ = g.Wait()

	page.CustomerEmail = customer.email
	page.CustomerSession = customer.email != ""
	page.DefaultAddress = customer.address

	cartID := ref.CartID()
	if cartID == "" {
		return page, nil
	}
	page.HasCart = true

	if err := o.applyCustomerDefaults(ctx, cartID, customer); err != nil {
		return nil, fmt.Errorf("apply customer defaults: %w", err)
	}

	cart, err := o.commerce.GetCart(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	r, err := o.readiness(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("load readiness: %w", err)
	}
	page.Cart = cart
	page.Readiness = r

	if page.CustomerSession {
		page.VisibleReasons = readiness.Without(r.Reasons, readiness.ReasonGuestEmailRequired)
	} else {
		page.VisibleReasons = append(page.VisibleReasons, r.Reasons...)
	}
	return page, nil
}

// loadCustomer fetches profile and dashboard together. Either failing yields
// the zero customerContext.
func (o *Orchestrator) loadCustomer(ctx context.Context, token string) customerContext {
	if token == "" {
		return customerContext{}
	}

	var (
		profile   *model.CustomerProfile
		dashboard *model.CustomerDashboard
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = o.commerce.GetCustomerProfile(gctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		dashboard, err = o.commerce.GetCustomerDashboard(gctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		o.logger.DebugContext(ctx, "customer lookup failed, continuing as guest", "error", err)
		return customerContext{}
	}

	return customerContext{
		email:   strings.ToLower(strings.TrimSpace(profile.Email)),
		address: DefaultShippingAddress(dashboard.Addresses, dashboard.DefaultShippingID),
	}
}

func (o *Orchestrator) applyCustomerDefaults(ctx context.Context, cartID string, c customerContext) error {
	if c.email != "" {
		if err := o.commerce.SetGuestEmail(ctx, cartID, c.email); err != nil {
			return err
		}
	}
	if c.address == nil {
		return nil
	}

	if err := o.commerce.SetShippingAddress(ctx, cartID, ShippingAddressFromCustomer(*c.address)); err != nil {
		return err
	}
	r, err := o.readiness(ctx, cartID)
	if err != nil {
		return err
	}
	if r.IsVirtual || r.SelectedShippingMethod != "" || len(r.AvailableShippingMethods) == 0 {
		return nil
	}
	first := r.AvailableShippingMethods[0]
	return o.commerce.SetShippingMethod(ctx, cartID, model.ShippingMethodInput{
		CarrierCode: first.CarrierCode,
		MethodCode:  first.MethodCode,
	})
}

// dedupeRegions normalizes codes to upper case and keeps the first entry per code.
func dedupeRegions(regions []model.CountryRegion) []model.CountryRegion {
	seen := make(map[string]bool, len(regions))
	out := make([]model.CountryRegion, 0, len(regions))
	for _, r := range regions {
		code := strings.ToUpper(strings.TrimSpace(r.Code))
		name := strings.TrimSpace(r.Name)
		if code == "" || name == "" || seen[code] {
			continue
		}
		seen[code] = true
		r.Code, r.Name = code, name
		out = append(out, r)
	}
	return out
}
