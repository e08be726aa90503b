package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/catalogkit/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func openRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func setupProductRepositoryTest(t *testing.T) (*GormProductRepository, *gorm.DB) {
	t.Helper()
	db := openRepositoryTestDB(t)
	return NewProductRepository(db), db
}

func int64Ptr(v int64) *int64 { return &v }

func createTestProduct(t *testing.T, repo *GormProductRepository, name string, stock int64) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:              name,
		CategoryID:        1,
		BaseUnit:          "bottle",
		BaseCostPrice:     10000,
		BaseStockQuantity: stock,
		IsActive:          true,
		ApplyAllBranches:  true,
		IsFlexibleTime:    true,
		UnitConversions: []models.ProductUnitConversion{
			{UnitName: "bottle", ConversionFactor: models.NewNumeric(decimal.NewFromInt(1)), IsSalesUnit: true},
			{UnitName: "case", UnitCode: "CS", ConversionFactor: models.NewNumeric(decimal.NewFromInt(12)), StorePrice: int64Ptr(118000), IsSalesUnit: true},
		},
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestProductCreateStoresConversionsInOrder(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	product := createTestProduct(t, repo, "Mineral water", 100)

	got, err := repo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	if got == nil || len(got.UnitConversions) != 2 {
		t.Fatalf("want 2 unit conversions, got %+v", got)
	}
	if got.UnitConversions[1].UnitName != "case" || got.UnitConversions[1].SortOrder != 1 {
		t.Fatalf("unexpected second conversion: %+v", got.UnitConversions[1])
	}
	if !got.UnitConversions[1].ConversionFactor.Equal(decimal.NewFromInt(12)) {
		t.Fatalf("factor want 12 got %s", got.UnitConversions[1].ConversionFactor.String())
	}
	if got.UnitConversions[1].StorePrice == nil || *got.UnitConversions[1].StorePrice != 118000 {
		t.Fatalf("store price not persisted: %+v", got.UnitConversions[1].StorePrice)
	}
	if got.UnitConversions[0].AppPrice != nil {
		t.Fatalf("unset app price should stay nil")
	}
}

func TestProductUpdateReplacesConversions(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	product := createTestProduct(t, repo, "Mineral water", 100)

	product.Name = "Sparkling water"
	product.UnitConversions = []models.ProductUnitConversion{
		{UnitName: "bottle", ConversionFactor: models.NewNumeric(decimal.NewFromInt(1)), IsSalesUnit: true},
	}
	if err := repo.Update(product); err != nil {
		t.Fatalf("update product failed: %v", err)
	}

	var count int64
	if err := db.Model(&models.ProductUnitConversion{}).Where("product_id = ?", product.ID).Count(&count).Error; err != nil {
		t.Fatalf("count conversions failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("conversions want 1 got %d", count)
	}
	got, _ := repo.GetByID(product.ID)
	if got.Name != "Sparkling water" {
		t.Fatalf("name not updated: %s", got.Name)
	}
}

func TestProductGetByIDMissingReturnsNil(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	got, err := repo.GetByID(999)
	if err != nil || got != nil {
		t.Fatalf("missing product want nil,nil got %v,%v", got, err)
	}
}

func TestProductStockByIDs(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	a := createTestProduct(t, repo, "A", 5)
	b := createTestProduct(t, repo, "B", 0)

	stock, err := repo.StockByIDs([]uint{a.ID, b.ID, 404})
	if err != nil {
		t.Fatalf("stock by ids failed: %v", err)
	}
	if stock[a.ID] != 5 {
		t.Fatalf("stock of A want 5 got %d", stock[a.ID])
	}
	if v, ok := stock[b.ID]; !ok || v != 0 {
		t.Fatalf("stock of B want 0 present got %d,%v", v, ok)
	}
	if _, ok := stock[404]; ok {
		t.Fatalf("missing product should not appear")
	}
}

func TestProductListSearchAndPagination(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	createTestProduct(t, repo, "Green tea", 1)
	createTestProduct(t, repo, "Black tea", 1)
	createTestProduct(t, repo, "Coffee", 1)

	rows, total, err := repo.List(ProductListFilter{Search: "tea", Page: 1, PageSize: 1})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("total want 2 got %d", total)
	}
	if len(rows) != 1 {
		t.Fatalf("page size want 1 got %d", len(rows))
	}
}

func TestProductCountComboUsageIgnoresDeletedCombos(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	product := createTestProduct(t, repo, "Fries", 10)
	combos := NewComboRepository(db)

	live := &models.Combo{Name: "Lunch", IsActive: true, Items: []models.ComboItem{{ProductID: product.ID, Quantity: 1}}}
	gone := &models.Combo{Name: "Old", IsActive: true, Items: []models.ComboItem{{ProductID: product.ID, Quantity: 2}}}
	for _, combo := range []*models.Combo{live, gone} {
		if err := combos.Create(combo); err != nil {
			t.Fatalf("create combo failed: %v", err)
		}
	}
	if err := db.Model(&models.Combo{}).Where("id = ?", gone.ID).Update("deleted_at", time.Now()).Error; err != nil {
		t.Fatalf("soft delete combo failed: %v", err)
	}

	count, err := repo.CountComboUsage(product.ID)
	if err != nil {
		t.Fatalf("count combo usage failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("usage want 1 got %d", count)
	}
}

func TestProductDeleteRemovesConversions(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	product := createTestProduct(t, repo, "Juice", 3)
	if err := repo.Delete(product.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	var count int64
	db.Model(&models.ProductUnitConversion{}).Where("product_id = ?", product.ID).Count(&count)
	if count != 0 {
		t.Fatalf("conversions should be removed, got %d", count)
	}
	got, _ := repo.GetByID(product.ID)
	if got != nil {
		t.Fatalf("deleted product should not be found")
	}
}
