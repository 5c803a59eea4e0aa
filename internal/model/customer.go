package model

// CustomerProfile is the signed-in customer's identity.
type CustomerProfile struct {
	Email     string `json:"email"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// CustomerAddress is an entry of the customer's address book.
type CustomerAddress struct {
	ID              string   `json:"id"`
	Firstname       string   `json:"firstname"`
	Lastname        string   `json:"lastname"`
	Street          []string `json:"street"`
	City            string   `json:"city"`
	Postcode        string   `json:"postcode"`
	CountryCode     string   `json:"country_code"`
	Telephone       string   `json:"telephone"`
	Region          string   `json:"region,omitempty"`
	RegionCode      string   `json:"region_code,omitempty"`
	DefaultShipping bool     `json:"default_shipping"`
	DefaultBilling  bool     `json:"default_billing"`
}

// OrderSummary is a row of the customer's order history.
type OrderSummary struct {
	Number     string `json:"number"`
	OrderDate  string `json:"order_date"`
	Status     string `json:"status"`
	GrandTotal *Money `json:"grand_total,omitempty"`
}

// WishlistSummary is a wishlist header without its items.
type WishlistSummary struct {
	ID         string `json:"id"`
	ItemsCount int    `json:"items_count"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

// CustomerDashboard aggregates the account page data.
type CustomerDashboard struct {
	Profile           CustomerProfile   `json:"profile"`
	IsSubscribed      bool              `json:"is_subscribed"`
	DefaultBillingID  string            `json:"default_billing_id,omitempty"`
	DefaultShippingID string            `json:"default_shipping_id,omitempty"`
	Addresses         []CustomerAddress `json:"addresses"`
	TotalOrderCount   int               `json:"total_order_count"`
	Orders            []OrderSummary    `json:"orders"`
	Wishlists         []WishlistSummary `json:"wishlists"`
}

// OrderPage is one page of the customer's order history.
type OrderPage struct {
	TotalCount  int            `json:"total_count"`
	CurrentPage int            `json:"current_page"`
	TotalPages  int            `json:"total_pages"`
	Orders      []OrderSummary `json:"orders"`
}

// CountryRegion is a state/province entry of a country.
type CountryRegion struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// Product is a catalog listing entry.
type Product struct {
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	URLKey      string `json:"url_key"`
	ImageURL    string `json:"image_url,omitempty"`
	Description string `json:"description,omitempty"`
	Price       *Money `json:"price,omitempty"`
	InStock     bool   `json:"in_stock"`
}

// ProductPage is one page of catalog products.
type ProductPage struct {
	TotalCount  int       `json:"total_count"`
	CurrentPage int       `json:"current_page"`
	TotalPages  int       `json:"total_pages"`
	Products    []Product `json:"products"`
}
