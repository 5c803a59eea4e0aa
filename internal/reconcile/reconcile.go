// Package reconcile computes the mutations that turn a cart's current line
// items into a desired set. It backs full-state cart replacement: fetch the
// cart, diff, and run only the necessary mutations.
package reconcile

import (
	"sort"
	"strings"
)

// LineItemDiff describes the mutations needed to reconcile line items.
// Apply in order Remove → Update → Add so an update never targets a line
// that is about to be removed.
type LineItemDiff struct {
	ToAdd    []ItemToAdd
	ToRemove []ItemToRemove
	ToUpdate []ItemToUpdate
}

// ItemToAdd is a SKU missing from the cart.
type ItemToAdd struct {
	SKU      string
	Quantity float64
}

// ItemToRemove is a cart line absent from the desired set.
type ItemToRemove struct {
	SKU string
	UID string // cart line uid used by removeItemFromCart
}

// ItemToUpdate is a cart line whose quantity changes.
type ItemToUpdate struct {
	SKU         string
	UID         string
	OldQuantity float64
	NewQuantity float64
}

// IsEmpty returns true if no line item changes are needed.
func (d *LineItemDiff) IsEmpty() bool {
	return len(d.ToAdd) == 0 && len(d.ToRemove) == 0 && len(d.ToUpdate) == 0
}

// CurrentItem is a line of the current cart.
type CurrentItem struct {
	SKU      string
	UID      string
	Quantity float64
}

// DesiredItem is a line of the requested cart.
type DesiredItem struct {
	SKU      string  `json:"sku"`
	Quantity float64 `json:"quantity"`
}

// DiffLineItems computes the delta between current and desired line items,
// matching on SKU.
//
// Desired entries sharing a SKU are summed; a total of zero or less means the
// SKU should not be in the cart. When the cart holds several lines for one
// SKU, the first is kept and the rest are removed. Each slice of the result
// is sorted by SKU.
func DiffLineItems(current []CurrentItem, desired []DesiredItem) *LineItemDiff {
	diff := &LineItemDiff{}

	want := make(map[string]float64)
	for _, item := range desired {
		sku := strings.TrimSpace(item.SKU)
		if sku == "" {
			continue
		}
		want[sku] += item.Quantity
	}

	matched := make(map[string]bool)
	for _, item := range current {
		qty, ok := want[item.SKU]
		switch {
		case !ok || qty <= 0 || matched[item.SKU]:
			diff.ToRemove = append(diff.ToRemove, ItemToRemove{SKU: item.SKU, UID: item.UID})
		case item.Quantity != qty:
			diff.ToUpdate = append(diff.ToUpdate, ItemToUpdate{
				SKU:         item.SKU,
				UID:         item.UID,
				OldQuantity: item.Quantity,
				NewQuantity: qty,
			})
		}
		matched[item.SKU] = true
	}

	for sku, qty := range want {
		if qty > 0 && !matched[sku] {
			diff.ToAdd = append(diff.ToAdd, ItemToAdd{SKU: sku, Quantity: qty})
		}
	}

	sort.Slice(diff.ToAdd, func(i, j int) bool { return diff.ToAdd[i].SKU < diff.ToAdd[j].SKU })
	sort.SliceStable(diff.ToRemove, func(i, j int) bool { return diff.ToRemove[i].SKU < diff.ToRemove[j].SKU })
	sort.SliceStable(diff.ToUpdate, func(i, j int) bool { return diff.ToUpdate[i].SKU < diff.ToUpdate[j].SKU })
	return diff
}
