package service

import (
	"github.com/catalogkit/internal/configurator"
	"github.com/catalogkit/internal/models"

	"github.com/ecodeclub/ekit/slice"
)

// ProductSnapshot 商品记录转编辑快照
func ProductSnapshot(p *models.Product) configurator.ProductSnapshot {
	var supplierID uint
	if p.SupplierID != nil {
		supplierID = *p.SupplierID
	}
	return configurator.ProductSnapshot{
		ID: p.ID,
		ProductBase: configurator.ProductBase{
			Name:              p.Name,
			Description:       p.Description,
			CategoryID:        p.CategoryID,
			SupplierID:        supplierID,
			BaseUnit:          p.BaseUnit,
			BaseCostPrice:     p.BaseCostPrice,
			BaseStorePrice:    p.BaseStorePrice,
			BaseAppPrice:      p.BaseAppPrice,
			BaseStockQuantity: p.BaseStockQuantity,
			IsActive:          p.IsActive,
		},
		UnitConversions: slice.Map(p.UnitConversions, func(_ int, src models.ProductUnitConversion) configurator.UnitConversionData {
			return configurator.UnitConversionData{
				UnitName:         src.UnitName,
				UnitCode:         src.UnitCode,
				ConversionFactor: src.ConversionFactor.Decimal,
				StorePrice:       src.StorePrice,
				AppPrice:         src.AppPrice,
				IsSalesUnit:      src.IsSalesUnit,
			}
		}),
		Attributes:       []configurator.AttributeData(p.Attributes),
		ApplyAllBranches: p.ApplyAllBranches,
		BranchIDs:        []uint(p.BranchIDs),
		IsFlexibleTime:   p.IsFlexibleTime,
		TimeSlotIDs:      []uint(p.TimeSlotIDs),
	}
}

func applyProductSnapshot(p *models.Product, snap configurator.ProductSnapshot) {
	p.Name = snap.Name
	p.Description = snap.Description
	p.CategoryID = snap.CategoryID
	p.SupplierID = nil
	if snap.SupplierID != 0 {
		supplierID := snap.SupplierID
		p.SupplierID = &supplierID
	}
	p.BaseUnit = snap.BaseUnit
	p.BaseCostPrice = snap.BaseCostPrice
	p.BaseStorePrice = snap.BaseStorePrice
	p.BaseAppPrice = snap.BaseAppPrice
	p.BaseStockQuantity = snap.BaseStockQuantity
	p.IsActive = snap.IsActive
	p.UnitConversions = slice.Map(snap.UnitConversions, func(idx int, src configurator.UnitConversionData) models.ProductUnitConversion {
		return models.ProductUnitConversion{
			SortOrder:        idx,
			UnitName:         src.UnitName,
			UnitCode:         src.UnitCode,
			ConversionFactor: models.NewNumeric(src.ConversionFactor),
			StorePrice:       src.StorePrice,
			AppPrice:         src.AppPrice,
			IsSalesUnit:      src.IsSalesUnit,
		}
	})
	p.Attributes = models.JSONList[configurator.AttributeData](snap.Attributes)
	p.ApplyAllBranches, p.BranchIDs = scopeColumns(snap.ApplyAllBranches, snap.BranchIDs)
	p.IsFlexibleTime, p.TimeSlotIDs = scopeColumns(snap.IsFlexibleTime, snap.TimeSlotIDs)
}

// ComboSnapshot 套餐记录转编辑快照
func ComboSnapshot(c *models.Combo) configurator.ComboSnapshot {
	return configurator.ComboSnapshot{
		ID: c.ID,
		ComboBase: configurator.ComboBase{
			Name:        c.Name,
			Description: c.Description,
			StorePrice:  c.StorePrice,
			AppPrice:    c.AppPrice,
			IsActive:    c.IsActive,
			StartDate:   c.StartDate,
			EndDate:     c.EndDate,
		},
		Items: slice.Map(c.Items, func(_ int, src models.ComboItem) configurator.ComboItemData {
			return configurator.ComboItemData{ProductID: src.ProductID, Quantity: src.Quantity}
		}),
		Attributes:       []configurator.AttributeData(c.Attributes),
		ApplyAllBranches: c.ApplyAllBranches,
		BranchIDs:        []uint(c.BranchIDs),
		IsFlexibleTime:   c.IsFlexibleTime,
		TimeSlotIDs:      []uint(c.TimeSlotIDs),
	}
}

func applyComboSnapshot(c *models.Combo, snap configurator.ComboSnapshot) {
	c.Name = snap.Name
	c.Description = snap.Description
	c.StorePrice = snap.StorePrice
	c.AppPrice = snap.AppPrice
	c.IsActive = snap.IsActive
	c.StartDate = snap.StartDate
	c.EndDate = snap.EndDate
	c.Items = slice.Map(snap.Items, func(idx int, src configurator.ComboItemData) models.ComboItem {
		return models.ComboItem{ProductID: src.ProductID, Quantity: src.Quantity, SortOrder: idx}
	})
	c.Attributes = models.JSONList[configurator.AttributeData](snap.Attributes)
	c.ApplyAllBranches, c.BranchIDs = scopeColumns(snap.ApplyAllBranches, snap.BranchIDs)
	c.IsFlexibleTime, c.TimeSlotIDs = scopeColumns(snap.IsFlexibleTime, snap.TimeSlotIDs)
}

// PromotionSnapshot 促销记录转编辑快照
func PromotionSnapshot(p *models.Promotion) configurator.PromotionSnapshot {
	snap := configurator.PromotionSnapshot{
		ID: p.ID,
		PromotionBase: configurator.PromotionBase{
			Name:           p.Name,
			Description:    p.Description,
			DiscountType:   p.DiscountType,
			DiscountValue:  p.DiscountValue.Decimal,
			MinOrderAmount: p.MinOrderAmount,
			StartsAt:       p.StartsAt,
			EndsAt:         p.EndsAt,
			IsActive:       p.IsActive,
		},
		ApplicationType:  configurator.ApplicationType(p.ApplicationType),
		ApplyAllBranches: p.ApplyAllBranches,
		BranchIDs:        []uint(p.BranchIDs),
		IsFlexibleTime:   p.IsFlexibleTime,
		TimeSlotIDs:      []uint(p.TimeSlotIDs),
	}
	ids := []uint(p.TargetIDs)
	switch snap.ApplicationType {
	case configurator.ApplyProducts:
		snap.ProductIDs = ids
	case configurator.ApplyCategories:
		snap.CategoryIDs = ids
	case configurator.ApplyCombos:
		snap.ComboIDs = ids
	}
	return snap
}

func applyPromotionForm(p *models.Promotion, f *configurator.PromotionForm) {
	snap := f.Snapshot()
	p.Name = snap.Name
	p.Description = snap.Description
	p.DiscountType = snap.DiscountType
	p.DiscountValue = models.NewNumeric(snap.DiscountValue)
	p.MinOrderAmount = snap.MinOrderAmount
	p.StartsAt = snap.StartsAt
	p.EndsAt = snap.EndsAt
	p.IsActive = snap.IsActive
	p.ApplicationType = string(f.Target.Type())
	p.TargetIDs = models.UintArray(f.Target.IDs()).Normalize()
	p.ApplyAllBranches, p.BranchIDs = scopeColumns(snap.ApplyAllBranches, snap.BranchIDs)
	p.IsFlexibleTime, p.TimeSlotIDs = scopeColumns(snap.IsFlexibleTime, snap.TimeSlotIDs)
}

// scopeColumns 全部/不限时不保存目标列表
func scopeColumns(open bool, ids []uint) (bool, models.UintArray) {
	if open {
		return true, models.UintArray{}
	}
	return false, models.UintArray(ids).Normalize()
}
