package magento

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// =============================================================================
// MAGENTO GRAPHQL NODES
// =============================================================================
//
// Nodes mirror the selection sets in queries.go. Nearly every Magento field
// is nullable, so scalars that may be absent are pointers and transforms
// apply the defaults.
//
// =============================================================================

// flexString accepts a JSON string or number. Magento returns Int for
// address ids and String for default_shipping, depending on the field.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// Int returns the positive integer value, or 0 when the value is not one.
func (f flexString) Int() int {
	n, err := strconv.Atoi(string(f))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

type moneyNode struct {
	Value    *float64 `json:"value"`
	Currency *string  `json:"currency"`
}

type imageNode struct {
	URL *string `json:"url"`
}

type cartNode struct {
	ID            string  `json:"id"`
	TotalQuantity float64 `json:"total_quantity"`
	Prices        *struct {
		GrandTotal *moneyNode `json:"grand_total"`
	} `json:"prices"`
	Items []*cartItemNode `json:"items"`
}

type cartItemNode struct {
	UID      string  `json:"uid"`
	Quantity float64 `json:"quantity"`
	Product  *struct {
		SKU        string     `json:"sku"`
		Name       string     `json:"name"`
		URLKey     *string    `json:"url_key"`
		SmallImage *imageNode `json:"small_image"`
	} `json:"product"`
	Prices *struct {
		RowTotal             *moneyNode `json:"row_total"`
		RowTotalIncludingTax *moneyNode `json:"row_total_including_tax"`
	} `json:"prices"`
}

type readinessNode struct {
	ID                      string  `json:"id"`
	Email                   *string `json:"email"`
	IsVirtual               bool    `json:"is_virtual"`
	AvailablePaymentMethods []*struct {
		Code  string `json:"code"`
		Title string `json:"title"`
	} `json:"available_payment_methods"`
	ShippingAddresses []*shippingAddressNode `json:"shipping_addresses"`
}

type shippingAddressNode struct {
	SelectedShippingMethod *struct {
		CarrierCode string `json:"carrier_code"`
		MethodCode  string `json:"method_code"`
	} `json:"selected_shipping_method"`
	AvailableShippingMethods []*struct {
		CarrierCode  string     `json:"carrier_code"`
		MethodCode   string     `json:"method_code"`
		CarrierTitle *string    `json:"carrier_title"`
		MethodTitle  *string    `json:"method_title"`
		Amount       *moneyNode `json:"amount"`
	} `json:"available_shipping_methods"`
}

type customerNode struct {
	Email           string         `json:"email"`
	Firstname       string         `json:"firstname"`
	Lastname        string         `json:"lastname"`
	IsSubscribed    bool           `json:"is_subscribed"`
	DefaultBilling  *flexString    `json:"default_billing"`
	DefaultShipping *flexString    `json:"default_shipping"`
	Addresses       []*addressNode `json:"addresses"`
	Orders          *ordersNode    `json:"orders"`
	Wishlists       []*struct {
		ID         flexString `json:"id"`
		ItemsCount int        `json:"items_count"`
		UpdatedAt  *string    `json:"updated_at"`
	} `json:"wishlists"`
}

type addressNode struct {
	ID          flexString `json:"id"`
	Firstname   string     `json:"firstname"`
	Lastname    string     `json:"lastname"`
	Street      []*string  `json:"street"`
	City        string     `json:"city"`
	Postcode    string     `json:"postcode"`
	CountryCode string     `json:"country_code"`
	Telephone   string     `json:"telephone"`
	Region      *struct {
		Region     *string `json:"region"`
		RegionCode *string `json:"region_code"`
	} `json:"region"`
	DefaultShipping bool `json:"default_shipping"`
	DefaultBilling  bool `json:"default_billing"`
}

type ordersNode struct {
	TotalCount int `json:"total_count"`
	PageInfo   *struct {
		CurrentPage int `json:"current_page"`
		TotalPages  int `json:"total_pages"`
	} `json:"page_info"`
	Items []*struct {
		Number    string `json:"number"`
		OrderDate string `json:"order_date"`
		Status    string `json:"status"`
		Total     *struct {
			GrandTotal *moneyNode `json:"grand_total"`
		} `json:"total"`
	} `json:"items"`
}

type countryNode struct {
	ID                    *string `json:"id"`
	TwoLetterAbbreviation *string `json:"two_letter_abbreviation"`
	AvailableRegions      []*struct {
		ID   flexString `json:"id"`
		Code *string    `json:"code"`
		Name *string    `json:"name"`
	} `json:"available_regions"`
}

type productNode struct {
	UID         string     `json:"uid"`
	SKU         string     `json:"sku"`
	Name        string     `json:"name"`
	URLKey      string     `json:"url_key"`
	StockStatus string     `json:"stock_status"`
	SmallImage  *imageNode `json:"small_image"`
	Description *struct {
		HTML string `json:"html"`
	} `json:"description"`
	PriceRange *struct {
		MinimumPrice *struct {
			FinalPrice   *moneyNode `json:"final_price"`
			RegularPrice *moneyNode `json:"regular_price"`
		} `json:"minimum_price"`
	} `json:"price_range"`
}

type productsNode struct {
	Items      []*productNode `json:"items"`
	TotalCount int            `json:"total_count"`
	PageInfo   *struct {
		CurrentPage int `json:"current_page"`
		TotalPages  int `json:"total_pages"`
	} `json:"page_info"`
}
