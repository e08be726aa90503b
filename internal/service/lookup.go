package service

import (
	"github.com/catalogkit/internal/repository"
)

// catalogLookup 服务端复核用的库存与时段状态
type catalogLookup struct {
	stock       map[uint]int64
	activeSlots map[uint]struct{}
}

// ProductStock 实现 configurator.StockLookup
func (l *catalogLookup) ProductStock(id uint) (int64, bool) {
	if l == nil {
		return 0, false
	}
	v, ok := l.stock[id]
	return v, ok
}

// TimeSlotActive 实现 configurator.ActiveSlots
func (l *catalogLookup) TimeSlotActive(id uint) bool {
	if l == nil {
		return true
	}
	_, ok := l.activeSlots[id]
	return ok
}

func buildLookup(products repository.ProductRepository, references repository.ReferenceRepository, productIDs []uint) (*catalogLookup, error) {
	lookup := &catalogLookup{stock: map[uint]int64{}, activeSlots: map[uint]struct{}{}}
	if products != nil && len(productIDs) > 0 {
		stock, err := products.StockByIDs(productIDs)
		if err != nil {
			return nil, err
		}
		lookup.stock = stock
	}
	if references != nil {
		slots, _, err := references.ListTimeSlots(repository.ReferenceListFilter{OnlyActive: true})
		if err != nil {
			return nil, err
		}
		for _, slot := range slots {
			lookup.activeSlots[slot.ID] = struct{}{}
		}
	}
	return lookup, nil
}
