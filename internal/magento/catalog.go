package magento

import (
	"context"
	"fmt"
	"strings"

	"magento-storefront/internal/model"
)

// ListProducts returns one page of the catalog. Products without a SKU or
// URL key are skipped since they cannot be linked or added to a cart.
func (c *Client) ListProducts(ctx context.Context, pageSize, page int) (*model.ProductPage, error) {
	if pageSize <= 0 || page <= 0 {
		return nil, fmt.Errorf("invalid page %d/%d", page, pageSize)
	}
	var resp struct {
		Products *productsNode `json:"products"`
	}
	vars := map[string]any{"search": "", "pageSize": pageSize, "currentPage": page}
	if err := c.execute(ctx, listProductsQuery, vars, "", &resp); err != nil {
		return nil, err
	}

	out := &model.ProductPage{CurrentPage: page, Products: []model.Product{}}
	if resp.Products == nil {
		return out, nil
	}
	out.TotalCount = resp.Products.TotalCount
	if pi := resp.Products.PageInfo; pi != nil {
		out.CurrentPage = pi.CurrentPage
		out.TotalPages = pi.TotalPages
	}
	for _, n := range resp.Products.Items {
		if n == nil || n.SKU == "" || n.URLKey == "" {
			continue
		}
		out.Products = append(out.Products, toProduct(n))
	}
	return out, nil
}

// GetProductByURLKey returns the product with the given URL key, or nil when
// none matches.
func (c *Client) GetProductByURLKey(ctx context.Context, urlKey string) (*model.Product, error) {
	urlKey = strings.TrimSpace(urlKey)
	if urlKey == "" {
		return nil, nil
	}
	var resp struct {
		Products *productsNode `json:"products"`
	}
	if err := c.execute(ctx, productByURLKeyQuery, map[string]any{"urlKey": urlKey}, "", &resp); err != nil {
		return nil, err
	}
	if resp.Products == nil || len(resp.Products.Items) == 0 || resp.Products.Items[0] == nil {
		return nil, nil
	}
	p := toProduct(resp.Products.Items[0])
	return &p, nil
}
