package configurator

import (
	"errors"
	"testing"
)

type stubStock map[uint]int64

func (s stubStock) ProductStock(id uint) (int64, bool) {
	v, ok := s[id]
	return v, ok
}

func buildComposition(items ...ComboItemData) *CompositionList {
	l := &CompositionList{}
	l.Load(items)
	return l
}

func TestCompositionValidatePasses(t *testing.T) {
	l := buildComposition(ComboItemData{ProductID: 1, Quantity: 2}, ComboItemData{ProductID: 2, Quantity: 1})
	r := NewReport()
	l.Validate(r, nil)
	if r.Failed() {
		t.Fatalf("expected pass, got %v", r.Errors(nil))
	}
}

func TestCompositionValidateEmpty(t *testing.T) {
	l := buildComposition()
	r := NewReport()
	l.Validate(r, nil)
	if key, _ := r.FieldError(CollectionItems); key != MsgComboItemsRequired {
		t.Fatalf("want items required got %v", r.Errors(nil))
	}
}

func TestCompositionDuplicateStopsRowChecks(t *testing.T) {
	l := buildComposition(
		ComboItemData{ProductID: 1, Quantity: 2},
		ComboItemData{ProductID: 1, Quantity: 3},
		ComboItemData{ProductID: 0, Quantity: 0},
	)
	r := NewReport()
	l.Validate(r, nil)
	if key, _ := r.FieldError(CollectionItems); key != MsgComboItemsDuplicate {
		t.Fatalf("want duplicate error got %v", r.Errors(nil))
	}
	if r.ErrorCount() != 1 || r.RowErrorCount(CollectionItems) != 0 {
		t.Fatalf("duplicate must be the only error, got %v", r.Errors(nil))
	}
}

func TestCompositionRowChecks(t *testing.T) {
	l := buildComposition(ComboItemData{ProductID: 0, Quantity: 1}, ComboItemData{ProductID: 5, Quantity: 0})
	r := NewReport()
	l.Validate(r, nil)
	paths := r.Errors(func(c string, id RowID) string { return l.locate(c, id) })
	if paths["items[0].product_id"] != MsgComboItemProduct {
		t.Fatalf("want product error on items[0], got %v", paths)
	}
	if paths["items[1].quantity"] != MsgComboItemQuantity {
		t.Fatalf("want quantity error on items[1], got %v", paths)
	}
}

func TestCompositionStockIsAdvisory(t *testing.T) {
	l := buildComposition(ComboItemData{ProductID: 1, Quantity: 5}, ComboItemData{ProductID: 2, Quantity: 1})
	r := NewReport()
	l.Validate(r, stubStock{1: 3})
	if r.Failed() {
		t.Fatalf("stock shortfall must not block, got %v", r.Errors(nil))
	}
	warnings := r.Warnings(l.locate)
	if warnings["items[0].quantity"] != MsgComboItemStockExceeded {
		t.Fatalf("want stock warning on items[0], got %v", warnings)
	}
	if _, ok := warnings["items[1].quantity"]; ok {
		t.Fatalf("unknown stock should not warn")
	}
}

func TestCompositionRemoveLastItemBlocked(t *testing.T) {
	l := NewCompositionList()
	if _, err := l.RemoveItem(0); !errors.Is(err, ErrLastItem) {
		t.Fatalf("want ErrLastItem got %v", err)
	}
	l.AddItem()
	if _, err := l.RemoveItem(0); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if l.Len() != 1 {
		t.Fatalf("len want 1 got %d", l.Len())
	}
}

func TestCompositionAvailableTargets(t *testing.T) {
	l := buildComposition(ComboItemData{ProductID: 1, Quantity: 1}, ComboItemData{ProductID: 2, Quantity: 1})
	catalog := []CatalogProduct{{ID: 1}, {ID: 2}, {ID: 3}}
	got := l.AvailableTargets(0, catalog)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("row 0 should see 1 and 3, got %+v", got)
	}
	if got := l.AvailableTargets(0, nil); len(got) != 0 {
		t.Fatalf("unloaded catalog should give empty picker")
	}
}

func TestReportSkipsRemovedRows(t *testing.T) {
	l := NewCompositionList()
	_ = l.SetTarget(0, 1)
	l.AddItem()
	_ = l.SetTarget(1, 2)
	_ = l.SetQuantity(1, 0)
	r := NewReport()
	l.Validate(r, nil)
	locate := func(c string, id RowID) string { return l.locate(c, id) }
	if r.Errors(locate)["items[1].quantity"] != MsgComboItemQuantity {
		t.Fatalf("want quantity error on row 1, got %v", r.Errors(locate))
	}

	if _, err := l.RemoveItem(1); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if errs := r.Errors(locate); len(errs) != 0 {
		t.Fatalf("removed row must not render, got %v", errs)
	}
	r.Prune(locate)
	if r.Failed() {
		t.Fatalf("prune should drop the removed row's error")
	}
}
