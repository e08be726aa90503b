package editor

import (
	"context"
	"sync"

	"github.com/catalogkit/internal/client"
	"github.com/catalogkit/internal/configurator"
	"github.com/catalogkit/internal/constants"
	"github.com/catalogkit/internal/logger"

	"github.com/ecodeclub/ekit/slice"
	"golang.org/x/sync/errgroup"
)

// 同时进行的参考数据请求上限
const referenceConcurrency = 4

// referenceKinds 各类表单需要的参考数据
func referenceKinds(kind Kind) []string {
	switch kind {
	case KindProduct:
		return []string{constants.ReferenceUnits, constants.ReferenceCategories, constants.ReferenceSuppliers,
			constants.ReferenceBranches, constants.ReferenceTimeSlots}
	case KindCombo:
		return []string{constants.ReferenceProducts, constants.ReferenceBranches, constants.ReferenceTimeSlots}
	case KindPromotion:
		return []string{constants.ReferenceProducts, constants.ReferenceCategories, constants.ReferenceCombos,
			constants.ReferenceBranches, constants.ReferenceTimeSlots}
	}
	return nil
}

// loadReferences 并发拉取参考数据；单项失败记日志并退化为空列表
func loadReferences(ctx context.Context, gateway Gateway, kinds []string) *configurator.References {
	refs := &configurator.References{}
	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(referenceConcurrency)
	for _, kind := range kinds {
		kind := kind
		group.Go(func() error {
			items, err := gateway.ListReferences(groupCtx, kind)
			if err != nil {
				logger.Warnw("editor_reference_load_failed", "kind", kind, "error", err)
				items = nil
			}
			mu.Lock()
			defer mu.Unlock()
			assignReferences(refs, kind, items)
			return nil
		})
	}
	_ = group.Wait()
	return refs
}

func assignReferences(refs *configurator.References, kind string, items []client.ReferenceItem) {
	options := slice.Map(items, func(_ int, src client.ReferenceItem) configurator.Option {
		return configurator.Option{ID: src.ID, Name: src.Name}
	})
	switch kind {
	case constants.ReferenceUnits:
		refs.Units = options
	case constants.ReferenceCategories:
		refs.Categories = options
	case constants.ReferenceSuppliers:
		refs.Suppliers = options
	case constants.ReferenceBranches:
		refs.Branches = options
	case constants.ReferenceTimeSlots:
		refs.TimeSlots = options
	case constants.ReferenceCombos:
		refs.Combos = options
	case constants.ReferenceProducts:
		refs.Products = slice.Map(items, func(_ int, src client.ReferenceItem) configurator.CatalogProduct {
			return configurator.CatalogProduct{ID: src.ID, Name: src.Name, Stock: src.Stock}
		})
	}
}
