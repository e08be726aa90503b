//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"

	"github.com/catalogkit/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}
	_ = db.Migrator().DropTable(models.AllModels()...)
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(models.AllModels()...)
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestPostgresProductSearchIsCaseInsensitive(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewProductRepository(db)
	createTestProduct(t, repo, "Mineral Water", 10)
	createTestProduct(t, repo, "Orange juice", 5)

	rows, total, err := repo.List(ProductListFilter{Page: 1, PageSize: 10, Search: "water"})
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if total != 1 || len(rows) != 1 || rows[0].Name != "Mineral Water" {
		t.Fatalf("ILIKE search want 1 match got total=%d rows=%+v", total, rows)
	}
}

func TestPostgresComboUpdateReplacesItems(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	products := NewProductRepository(db)
	bread := createTestProduct(t, products, "Bread", 10)
	milk := createTestProduct(t, products, "Milk", 10)

	combos := NewComboRepository(db)
	combo := &models.Combo{
		Name:             "Breakfast",
		IsActive:         true,
		ApplyAllBranches: true,
		IsFlexibleTime:   true,
		Items:            []models.ComboItem{{ProductID: bread.ID, Quantity: 1}, {ProductID: milk.ID, Quantity: 2}},
	}
	if err := combos.Create(combo); err != nil {
		t.Fatalf("create combo failed: %v", err)
	}

	combo.Items = []models.ComboItem{{ProductID: milk.ID, Quantity: 3}}
	if err := combos.Update(combo); err != nil {
		t.Fatalf("update combo failed: %v", err)
	}
	stored, err := combos.GetByID(combo.ID)
	if err != nil || stored == nil {
		t.Fatalf("get combo failed: %v", err)
	}
	if len(stored.Items) != 1 || stored.Items[0].ProductID != milk.ID || stored.Items[0].Quantity != 3 {
		t.Fatalf("items should be replaced, got %+v", stored.Items)
	}

	usage, err := products.CountComboUsage(bread.ID)
	if err != nil || usage != 0 {
		t.Fatalf("bread should no longer be used, got %d %v", usage, err)
	}
}
