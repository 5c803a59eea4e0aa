package reconcile

import (
	"reflect"
	"testing"
)

func TestDiffLineItems_EmptyToItems(t *testing.T) {
	desired := []DesiredItem{
		{SKU: "WB02", Quantity: 1},
		{SKU: "WB01", Quantity: 2},
	}

	diff := DiffLineItems(nil, desired)

	want := []ItemToAdd{{SKU: "WB01", Quantity: 2}, {SKU: "WB02", Quantity: 1}}
	if !reflect.DeepEqual(diff.ToAdd, want) {
		t.Errorf("ToAdd = %+v, want %+v", diff.ToAdd, want)
	}
	if len(diff.ToRemove) != 0 || len(diff.ToUpdate) != 0 {
		t.Errorf("unexpected removes/updates: %+v", diff)
	}
}

func TestDiffLineItems_ItemsToEmpty(t *testing.T) {
	current := []CurrentItem{
		{SKU: "WB01", UID: "MTA=", Quantity: 2},
		{SKU: "MUG", UID: "MTE=", Quantity: 1},
	}

	diff := DiffLineItems(current, nil)

	want := []ItemToRemove{{SKU: "MUG", UID: "MTE="}, {SKU: "WB01", UID: "MTA="}}
	if !reflect.DeepEqual(diff.ToRemove, want) {
		t.Errorf("ToRemove = %+v, want %+v", diff.ToRemove, want)
	}
	if len(diff.ToAdd) != 0 || len(diff.ToUpdate) != 0 {
		t.Errorf("unexpected adds/updates: %+v", diff)
	}
}

func TestDiffLineItems_QuantityUpdate(t *testing.T) {
	current := []CurrentItem{{SKU: "WB01", UID: "MTA=", Quantity: 2}}
	desired := []DesiredItem{{SKU: "WB01", Quantity: 5}}

	diff := DiffLineItems(current, desired)

	if len(diff.ToUpdate) != 1 {
		t.Fatalf("ToUpdate = %d, want 1", len(diff.ToUpdate))
	}
	got := diff.ToUpdate[0]
	if got.UID != "MTA=" || got.OldQuantity != 2 || got.NewQuantity != 5 {
		t.Errorf("ToUpdate[0] = %+v", got)
	}
	if len(diff.ToAdd) != 0 || len(diff.ToRemove) != 0 {
		t.Errorf("unexpected adds/removes: %+v", diff)
	}
}

func TestDiffLineItems_NoChanges(t *testing.T) {
	current := []CurrentItem{{SKU: "WB01", UID: "MTA=", Quantity: 2}}
	desired := []DesiredItem{{SKU: "WB01", Quantity: 2}}

	if diff := DiffLineItems(current, desired); !diff.IsEmpty() {
		t.Errorf("diff = %+v, want empty", diff)
	}
}

func TestDiffLineItems_Mixed(t *testing.T) {
	current := []CurrentItem{
		{SKU: "KEEP", UID: "a", Quantity: 1},
		{SKU: "BUMP", UID: "b", Quantity: 1},
		{SKU: "DROP", UID: "c", Quantity: 3},
	}
	desired := []DesiredItem{
		{SKU: "KEEP", Quantity: 1},
		{SKU: "BUMP", Quantity: 4},
		{SKU: "NEW", Quantity: 1},
	}

	diff := DiffLineItems(current, desired)

	if !reflect.DeepEqual(diff.ToRemove, []ItemToRemove{{SKU: "DROP", UID: "c"}}) {
		t.Errorf("ToRemove = %+v", diff.ToRemove)
	}
	if !reflect.DeepEqual(diff.ToUpdate, []ItemToUpdate{{SKU: "BUMP", UID: "b", OldQuantity: 1, NewQuantity: 4}}) {
		t.Errorf("ToUpdate = %+v", diff.ToUpdate)
	}
	if !reflect.DeepEqual(diff.ToAdd, []ItemToAdd{{SKU: "NEW", Quantity: 1}}) {
		t.Errorf("ToAdd = %+v", diff.ToAdd)
	}
}

func TestDiffLineItems_DuplicatesAndZeroQuantities(t *testing.T) {
	current := []CurrentItem{
		{SKU: "WB01", UID: "first", Quantity: 1},
		{SKU: "WB01", UID: "second", Quantity: 1},
		{SKU: "MUG", UID: "mug", Quantity: 2},
	}
	desired := []DesiredItem{
		{SKU: "WB01", Quantity: 1},
		{SKU: " WB01 ", Quantity: 2},
		{SKU: "MUG", Quantity: 0},
		{SKU: "", Quantity: 3},
		{SKU: "CAP", Quantity: -1},
	}

	diff := DiffLineItems(current, desired)

	wantRemove := []ItemToRemove{{SKU: "MUG", UID: "mug"}, {SKU: "WB01", UID: "second"}}
	if !reflect.DeepEqual(diff.ToRemove, wantRemove) {
		t.Errorf("ToRemove = %+v, want %+v", diff.ToRemove, wantRemove)
	}
	wantUpdate := []ItemToUpdate{{SKU: "WB01", UID: "first", OldQuantity: 1, NewQuantity: 3}}
	if !reflect.DeepEqual(diff.ToUpdate, wantUpdate) {
		t.Errorf("ToUpdate = %+v, want %+v", diff.ToUpdate, wantUpdate)
	}
	if len(diff.ToAdd) != 0 {
		t.Errorf("ToAdd = %+v, want none", diff.ToAdd)
	}
}
