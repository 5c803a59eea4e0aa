package magento

import (
	"context"
	"strings"

	"magento-storefront/internal/model"
)

// GetCountryRegions returns the regions Magento knows for a country, matched
// by id or two-letter code. Unknown countries yield an empty list.
func (c *Client) GetCountryRegions(ctx context.Context, countryCode string) ([]model.CountryRegion, error) {
	want := strings.ToUpper(strings.TrimSpace(countryCode))
	if want == "" {
		return []model.CountryRegion{}, nil
	}

	var resp struct {
		Countries []*countryNode `json:"countries"`
	}
	if err := c.execute(ctx, getCountriesQuery, nil, "", &resp); err != nil {
		return nil, err
	}

	regions := []model.CountryRegion{}
	for _, country := range resp.Countries {
		if country == nil {
			continue
		}
		byID := strings.ToUpper(strings.TrimSpace(deref(country.ID)))
		byAbbr := strings.ToUpper(strings.TrimSpace(deref(country.TwoLetterAbbreviation)))
		if byID != want && byAbbr != want {
			continue
		}
		for _, r := range country.AvailableRegions {
			if r == nil {
				continue
			}
			code := strings.ToUpper(strings.TrimSpace(deref(r.Code)))
			name := strings.TrimSpace(deref(r.Name))
			if code == "" || name == "" {
				continue
			}
			regions = append(regions, model.CountryRegion{ID: r.ID.Int(), Code: code, Name: name})
		}
		break
	}
	return regions, nil
}
