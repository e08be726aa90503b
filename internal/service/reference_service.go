package service

import (
	"context"
	"fmt"
	"time"

	"github.com/catalogkit/internal/cache"
	"github.com/catalogkit/internal/constants"
	"github.com/catalogkit/internal/logger"
	"github.com/catalogkit/internal/models"
	"github.com/catalogkit/internal/repository"

	"github.com/ecodeclub/ekit/slice"
)

// ReferenceItem 参考数据条目（编辑端选择器使用）
type ReferenceItem struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Detail string `json:"detail,omitempty"`
	Stock  *int64 `json:"stock,omitempty"`
}

// ReferencePage 参考数据分页结果
type ReferencePage struct {
	Items []ReferenceItem `json:"items"`
	Total int64           `json:"total"`
}

// ReferenceQuery 参考数据查询参数
type ReferenceQuery struct {
	Kind     string
	Page     int
	PageSize int
	Search   string
}

// ReferenceService 参考数据服务（仅启用数据，Redis 缓存）
type ReferenceService struct {
	references repository.ReferenceRepository
	products   repository.ProductRepository
	combos     repository.ComboRepository
	ttl        time.Duration
}

// NewReferenceService 创建参考数据服务
func NewReferenceService(references repository.ReferenceRepository, products repository.ProductRepository, combos repository.ComboRepository, ttl time.Duration) *ReferenceService {
	return &ReferenceService{references: references, products: products, combos: combos, ttl: ttl}
}

// List 按类型查询参考数据，先读缓存
func (s *ReferenceService) List(ctx context.Context, query ReferenceQuery) (*ReferencePage, error) {
	if !validReferenceKind(query.Kind) {
		return nil, ErrReferenceTypeInvalid
	}
	key := cache.ReferenceListKey(query.Kind, query.Page, query.PageSize, query.Search)
	var cached ReferencePage
	hit, err := cache.GetReferenceList(ctx, key, &cached)
	if err != nil {
		logger.Warnw("reference_cache_read_failed", "kind", query.Kind, "error", err)
	}
	if hit {
		return &cached, nil
	}

	page, err := s.load(query)
	if err != nil {
		return nil, err
	}
	if err := cache.SetReferenceList(ctx, key, page, s.ttl); err != nil {
		logger.Warnw("reference_cache_write_failed", "kind", query.Kind, "error", err)
	}
	return page, nil
}

// Invalidate 清理参考数据缓存，失败只记录日志
func (s *ReferenceService) Invalidate(ctx context.Context, kinds ...string) {
	if err := cache.InvalidateReferences(ctx, kinds...); err != nil {
		logger.Warnw("reference_cache_invalidate_failed", "kinds", kinds, "error", err)
	}
}

func (s *ReferenceService) load(query ReferenceQuery) (*ReferencePage, error) {
	filter := repository.ReferenceListFilter{
		Page:       query.Page,
		PageSize:   query.PageSize,
		Search:     query.Search,
		OnlyActive: true,
	}
	switch query.Kind {
	case constants.ReferenceProducts:
		rows, total, err := s.products.List(repository.ProductListFilter{
			Page: query.Page, PageSize: query.PageSize, Search: query.Search, OnlyActive: true,
		})
		if err != nil {
			return nil, err
		}
		return &ReferencePage{Items: slice.Map(rows, func(_ int, src models.Product) ReferenceItem {
			stock := src.BaseStockQuantity
			return ReferenceItem{ID: src.ID, Name: src.Name, Detail: src.BaseUnit, Stock: &stock}
		}), Total: total}, nil
	case constants.ReferenceCombos:
		rows, total, err := s.combos.List(repository.ComboListFilter{
			Page: query.Page, PageSize: query.PageSize, Search: query.Search, OnlyActive: true,
		})
		if err != nil {
			return nil, err
		}
		return &ReferencePage{Items: slice.Map(rows, func(_ int, src models.Combo) ReferenceItem {
			return ReferenceItem{ID: src.ID, Name: src.Name}
		}), Total: total}, nil
	case constants.ReferenceCategories:
		rows, total, err := s.references.ListCategories(filter)
		if err != nil {
			return nil, err
		}
		return &ReferencePage{Items: slice.Map(rows, func(_ int, src models.Category) ReferenceItem {
			return ReferenceItem{ID: src.ID, Name: src.Name}
		}), Total: total}, nil
	case constants.ReferenceSuppliers:
		rows, total, err := s.references.ListSuppliers(filter)
		if err != nil {
			return nil, err
		}
		return &ReferencePage{Items: slice.Map(rows, func(_ int, src models.Supplier) ReferenceItem {
			return ReferenceItem{ID: src.ID, Name: src.Name, Detail: src.Phone}
		}), Total: total}, nil
	case constants.ReferenceBranches:
		rows, total, err := s.references.ListBranches(filter)
		if err != nil {
			return nil, err
		}
		return &ReferencePage{Items: slice.Map(rows, func(_ int, src models.Branch) ReferenceItem {
			return ReferenceItem{ID: src.ID, Name: src.Name, Detail: src.Address}
		}), Total: total}, nil
	case constants.ReferenceTimeSlots:
		rows, total, err := s.references.ListTimeSlots(filter)
		if err != nil {
			return nil, err
		}
		return &ReferencePage{Items: slice.Map(rows, func(_ int, src models.TimeSlot) ReferenceItem {
			return ReferenceItem{ID: src.ID, Name: src.Name, Detail: fmt.Sprintf("%s-%s", src.StartTime, src.EndTime)}
		}), Total: total}, nil
	case constants.ReferenceUnits:
		rows, total, err := s.references.ListUnits(filter)
		if err != nil {
			return nil, err
		}
		return &ReferencePage{Items: slice.Map(rows, func(_ int, src models.Unit) ReferenceItem {
			return ReferenceItem{ID: src.ID, Name: src.Name, Detail: src.Code}
		}), Total: total}, nil
	}
	return nil, ErrReferenceTypeInvalid
}

func validReferenceKind(kind string) bool {
	switch kind {
	case constants.ReferenceProducts, constants.ReferenceCategories, constants.ReferenceBranches,
		constants.ReferenceTimeSlots, constants.ReferenceSuppliers, constants.ReferenceCombos,
		constants.ReferenceUnits:
		return true
	}
	return false
}
