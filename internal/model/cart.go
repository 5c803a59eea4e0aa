package model

// CartSnapshot is the presentation view of a Magento cart.
type CartSnapshot struct {
	ID            string         `json:"id"`
	TotalQuantity float64        `json:"total_quantity"`
	GrandTotal    *Money         `json:"grand_total,omitempty"`
	Items         []CartLineItem `json:"items"`
}

// IsEmpty reports whether the cart has no line items.
func (c *CartSnapshot) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// CartLineItem is a single cart row. UID is Magento's cart item uid and is
// what update and remove operations address.
type CartLineItem struct {
	UID       string  `json:"uid"`
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	ImageURL  string  `json:"image_url,omitempty"`
	URLKey    string  `json:"url_key,omitempty"`
	Quantity  float64 `json:"quantity"`
	LineTotal *Money  `json:"line_total,omitempty"`
}
