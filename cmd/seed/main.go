package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/catalogkit/internal/config"
	"github.com/catalogkit/internal/configurator"
	"github.com/catalogkit/internal/logger"
	"github.com/catalogkit/internal/models"
	"github.com/catalogkit/internal/provider"
	"github.com/catalogkit/internal/service"

	"gorm.io/gorm"
)

type seedProduct struct {
	name     string
	category string
	baseUnit string
	cost     int64
	store    int64
	stock    int64
	// 换算单位：名称 -> 系数
	units []seedUnit
}

type seedUnit struct {
	name   string
	factor string
	store  string
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, false); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(nil); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	container := provider.NewContainer(cfg, models.DB)
	defer container.Close()
	db := models.DB

	for _, unit := range []models.Unit{
		{Name: "Bottle", Code: "BTL", IsActive: true},
		{Name: "Case", Code: "CS", IsActive: true},
		{Name: "Piece", Code: "PC", IsActive: true},
		{Name: "Kilogram", Code: "KG", IsActive: true},
	} {
		unit := unit
		ensure(db, &unit, "name = ?", unit.Name)
	}

	categoryIDs := map[string]uint{}
	for i, name := range []string{"Drinks", "Bakery", "Snacks"} {
		category := models.Category{Name: name, SortOrder: i, IsActive: true}
		ensure(db, &category, "name = ?", name)
		categoryIDs[name] = category.ID
	}

	for _, supplier := range []models.Supplier{
		{Name: "Fresh Farm Co.", Phone: "0901000001", IsActive: true},
		{Name: "City Beverages", Phone: "0901000002", IsActive: true},
	} {
		supplier := supplier
		ensure(db, &supplier, "name = ?", supplier.Name)
	}

	for _, branch := range []models.Branch{
		{Name: "Downtown", Address: "12 Main Street", IsActive: true},
		{Name: "Riverside", Address: "88 River Road", IsActive: true},
	} {
		branch := branch
		ensure(db, &branch, "name = ?", branch.Name)
	}

	slotIDs := map[string]uint{}
	for _, slot := range []models.TimeSlot{
		{Name: "Breakfast", StartTime: "06:00", EndTime: "10:00", IsActive: true},
		{Name: "Lunch", StartTime: "11:00", EndTime: "14:00", IsActive: true},
		{Name: "Late night", StartTime: "22:00", EndTime: "23:59", IsActive: true},
	} {
		slot := slot
		ensure(db, &slot, "name = ?", slot.Name)
		slotIDs[slot.Name] = slot.ID
	}
	// 停用的时段用于演示“已选但停用”的提示
	if err := db.Model(&models.TimeSlot{}).Where("id = ?", slotIDs["Late night"]).Update("is_active", false).Error; err != nil {
		stdLog.Printf("Failed to deactivate time slot: %v", err)
	}

	ctx := context.Background()
	productIDs := map[string]uint{}
	for _, item := range []seedProduct{
		{name: "Mineral water", category: "Drinks", baseUnit: "Bottle", cost: 4000, store: 6000, stock: 240,
			units: []seedUnit{{name: "Case", factor: "24", store: "130000"}}},
		{name: "Croissant", category: "Bakery", baseUnit: "Piece", cost: 9000, store: 18000, stock: 40},
		{name: "Potato chips", category: "Snacks", baseUnit: "Piece", cost: 7000, store: 12000, stock: 60,
			units: []seedUnit{{name: "Box", factor: "10", store: "110000"}}},
	} {
		var existing models.Product
		if err := db.Where("name = ?", item.name).First(&existing).Error; err == nil {
			productIDs[item.name] = existing.ID
			stdLog.Printf("Product already exists: %s", item.name)
			continue
		}
		form := configurator.NewProductForm()
		form.Name = item.name
		form.CategoryID = categoryIDs[item.category]
		form.BaseUnit = item.baseUnit
		form.BaseCostPrice = item.cost
		form.BaseStorePrice = item.store
		form.BaseAppPrice = item.store
		form.BaseStockQuantity = item.stock
		form.Units.Add()
		_ = form.Units.Update(0, configurator.UnitFieldName, item.baseUnit)
		for i, unit := range item.units {
			form.Units.Add()
			_ = form.Units.Update(i+1, configurator.UnitFieldName, unit.name)
			_ = form.Units.Update(i+1, configurator.UnitFieldFactor, unit.factor)
			_ = form.Units.Update(i+1, configurator.UnitFieldStorePrice, unit.store)
		}
		result, err := container.ProductConfigService.Create(ctx, form)
		if err != nil {
			logSaveError(stdLog, "product", item.name, err)
			continue
		}
		productIDs[item.name] = result.ID
		stdLog.Printf("Created product: %s", item.name)
	}

	var combo models.Combo
	if err := db.Where("name = ?", "Breakfast set").First(&combo).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		form := configurator.NewComboForm()
		form.Name = "Breakfast set"
		form.StorePrice = 22000
		form.AppPrice = 21000
		start := time.Now().Truncate(24 * time.Hour)
		end := start.AddDate(0, 3, 0)
		form.StartDate, form.EndDate = &start, &end
		_ = form.Items.SetTarget(0, productIDs["Croissant"])
		form.Items.AddItem()
		_ = form.Items.SetTarget(1, productIDs["Mineral water"])
		form.TimeWindow.SwitchFixed()
		form.TimeWindow.Pick(slotIDs["Breakfast"])
		if _, err := container.ComboService.Create(ctx, form); err != nil {
			logSaveError(stdLog, "combo", form.Name, err)
		} else {
			stdLog.Printf("Created combo: %s", form.Name)
		}
	}

	stdLog.Printf("Seed completed")
}

func ensure(db *gorm.DB, record interface{}, query string, args ...interface{}) {
	result := db.Where(query, args...).FirstOrCreate(record)
	if result.Error != nil {
		logger.Errorw("seed_record_failed", "query", query, "args", args, "error", result.Error)
	}
}

func logSaveError(stdLog *log.Logger, kind, name string, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		stdLog.Printf("Seed %s %s rejected: %v", kind, name, validationErr.Errors())
		return
	}
	stdLog.Printf("Failed to create %s %s: %v", kind, name, err)
}
