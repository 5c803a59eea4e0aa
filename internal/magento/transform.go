package magento

import (
	"strings"

	"magento-storefront/internal/model"
	"magento-storefront/internal/readiness"
)

// =============================================================================
// MAGENTO → STOREFRONT TRANSFORMS
// =============================================================================

func toMoney(n *moneyNode) *model.Money {
	if n == nil {
		return nil
	}
	return model.NewMoney(n.Value, n.Currency)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toCartSnapshot(n *cartNode) *model.CartSnapshot {
	if n == nil {
		return &model.CartSnapshot{Items: []model.CartLineItem{}}
	}
	cart := &model.CartSnapshot{
		ID:            n.ID,
		TotalQuantity: n.TotalQuantity,
		Items:         make([]model.CartLineItem, 0, len(n.Items)),
	}
	if n.Prices != nil {
		cart.GrandTotal = toMoney(n.Prices.GrandTotal)
	}
	for _, item := range n.Items {
		if item == nil {
			continue
		}
		cart.Items = append(cart.Items, toCartLineItem(item))
	}
	return cart
}

// toCartLineItem prefers the tax-inclusive row total and falls back to the
// plain row total.
func toCartLineItem(n *cartItemNode) model.CartLineItem {
	item := model.CartLineItem{
		UID:      n.UID,
		Quantity: n.Quantity,
	}
	if p := n.Product; p != nil {
		item.SKU = p.SKU
		item.Name = p.Name
		if p.URLKey != nil && strings.TrimSpace(*p.URLKey) != "" {
			item.URLKey = *p.URLKey
		}
		if p.SmallImage != nil {
			item.ImageURL = deref(p.SmallImage.URL)
		}
	}
	if n.Prices != nil {
		total := n.Prices.RowTotalIncludingTax
		if total == nil || total.Value == nil {
			total = n.Prices.RowTotal
		}
		item.LineTotal = toMoney(total)
	}
	return item
}

// toReadinessSnapshot copies the raw cart readiness fields. Filtering and
// trimming happen in readiness.Evaluate.
func toReadinessSnapshot(n *readinessNode) readiness.Snapshot {
	s := readiness.Snapshot{
		CartID:    n.ID,
		IsVirtual: n.IsVirtual,
		Email:     deref(n.Email),
	}
	for _, m := range n.AvailablePaymentMethods {
		if m == nil {
			continue
		}
		s.PaymentMethods = append(s.PaymentMethods, model.PaymentMethodOption{Code: m.Code, Title: m.Title})
	}
	for _, addr := range n.ShippingAddresses {
		if addr == nil {
			s.ShippingAddresses = append(s.ShippingAddresses, readiness.ShippingAddress{})
			continue
		}
		var out readiness.ShippingAddress
		if sel := addr.SelectedShippingMethod; sel != nil {
			out.Selected = &model.ShippingMethodInput{CarrierCode: sel.CarrierCode, MethodCode: sel.MethodCode}
		}
		for _, m := range addr.AvailableShippingMethods {
			if m == nil {
				continue
			}
			out.Available = append(out.Available, model.ShippingMethodOption{
				CarrierCode:  m.CarrierCode,
				MethodCode:   m.MethodCode,
				CarrierTitle: deref(m.CarrierTitle),
				MethodTitle:  deref(m.MethodTitle),
				Amount:       toMoney(m.Amount),
			})
		}
		s.ShippingAddresses = append(s.ShippingAddresses, out)
	}
	return s
}

func toCustomerProfile(n *customerNode) *model.CustomerProfile {
	if n == nil {
		return &model.CustomerProfile{}
	}
	return &model.CustomerProfile{
		Email:     n.Email,
		Firstname: n.Firstname,
		Lastname:  n.Lastname,
	}
}

func toCustomerAddress(n *addressNode) model.CustomerAddress {
	addr := model.CustomerAddress{
		ID:              string(n.ID),
		Firstname:       n.Firstname,
		Lastname:        n.Lastname,
		Street:          streetLines(n.Street),
		City:            n.City,
		Postcode:        n.Postcode,
		CountryCode:     n.CountryCode,
		Telephone:       n.Telephone,
		DefaultShipping: n.DefaultShipping,
		DefaultBilling:  n.DefaultBilling,
	}
	if n.Region != nil {
		addr.Region = deref(n.Region.Region)
		addr.RegionCode = deref(n.Region.RegionCode)
	}
	return addr
}

// streetLines drops null and blank street lines.
func streetLines(in []*string) []string {
	out := make([]string, 0, len(in))
	for _, line := range in {
		if line == nil || strings.TrimSpace(*line) == "" {
			continue
		}
		out = append(out, *line)
	}
	return out
}

func toOrderSummaries(n *ordersNode) []model.OrderSummary {
	out := []model.OrderSummary{}
	if n == nil {
		return out
	}
	for _, o := range n.Items {
		if o == nil || o.Number == "" {
			continue
		}
		summary := model.OrderSummary{
			Number:    o.Number,
			OrderDate: o.OrderDate,
			Status:    o.Status,
		}
		if o.Total != nil {
			summary.GrandTotal = toMoney(o.Total.GrandTotal)
		}
		out = append(out, summary)
	}
	return out
}

func toCustomerDashboard(n *customerNode) *model.CustomerDashboard {
	d := &model.CustomerDashboard{
		Profile:   *toCustomerProfile(n),
		Addresses: []model.CustomerAddress{},
		Orders:    []model.OrderSummary{},
		Wishlists: []model.WishlistSummary{},
	}
	if n == nil {
		return d
	}
	d.IsSubscribed = n.IsSubscribed
	if n.DefaultBilling != nil {
		d.DefaultBillingID = string(*n.DefaultBilling)
	}
	if n.DefaultShipping != nil {
		d.DefaultShippingID = string(*n.DefaultShipping)
	}
	for _, a := range n.Addresses {
		if a == nil {
			continue
		}
		d.Addresses = append(d.Addresses, toCustomerAddress(a))
	}
	if n.Orders != nil {
		d.TotalOrderCount = n.Orders.TotalCount
	}
	d.Orders = toOrderSummaries(n.Orders)
	for _, w := range n.Wishlists {
		if w == nil {
			continue
		}
		d.Wishlists = append(d.Wishlists, model.WishlistSummary{
			ID:         string(w.ID),
			ItemsCount: w.ItemsCount,
			UpdatedAt:  deref(w.UpdatedAt),
		})
	}
	return d
}

func toProduct(n *productNode) model.Product {
	p := model.Product{
		SKU:     n.SKU,
		Name:    n.Name,
		URLKey:  n.URLKey,
		InStock: n.StockStatus != "OUT_OF_STOCK",
	}
	if n.SmallImage != nil {
		p.ImageURL = deref(n.SmallImage.URL)
	}
	if n.Description != nil {
		p.Description = n.Description.HTML
	}
	if n.PriceRange != nil && n.PriceRange.MinimumPrice != nil {
		price := n.PriceRange.MinimumPrice.FinalPrice
		if price == nil || price.Value == nil {
			price = n.PriceRange.MinimumPrice.RegularPrice
		}
		p.Price = toMoney(price)
	}
	return p
}
