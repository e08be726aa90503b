package configurator

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDeriveMetricsScalesCostAndStock(t *testing.T) {
	set := NewUnitConversionSet()
	set.Add()
	set.Add()
	if err := set.Update(1, UnitFieldFactor, "12"); err != nil {
		t.Fatalf("update factor failed: %v", err)
	}
	base := BaseFigures{CostPrice: decimal.NewFromInt(10000), StockQuantity: decimal.NewFromInt(100)}

	metrics, err := set.DeriveMetrics(base, 1)
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}
	if !metrics.Cost.Equal(decimal.NewFromInt(120000)) {
		t.Fatalf("cost want 120000 got %s", metrics.Cost)
	}
	if !metrics.Stock.Equal(decimal.RequireFromString("8.333")) {
		t.Fatalf("stock want 8.333 got %s", metrics.Stock)
	}
}

func TestDeriveMetricsBaseRowUnchanged(t *testing.T) {
	base := BaseFigures{CostPrice: decimal.RequireFromString("1.23456"), StockQuantity: decimal.NewFromInt(7)}
	metrics := DeriveMetrics(base, 0, decimal.NewFromInt(50))
	if !metrics.Cost.Equal(base.CostPrice) || !metrics.Stock.Equal(base.StockQuantity) {
		t.Fatalf("base row should return base figures, got %+v", metrics)
	}
}

func TestDeriveMetricsIdentityFactor(t *testing.T) {
	base := BaseFigures{CostPrice: decimal.NewFromInt(450), StockQuantity: decimal.RequireFromString("33.5")}
	metrics := DeriveMetrics(base, 2, decimal.NewFromInt(1))
	if !metrics.Stock.Equal(base.StockQuantity) {
		t.Fatalf("factor 1 should keep stock, got %s", metrics.Stock)
	}
	if !metrics.Cost.Equal(base.CostPrice) {
		t.Fatalf("factor 1 should keep cost, got %s", metrics.Cost)
	}
}

func TestDeriveMetricsRoundsHalfUp(t *testing.T) {
	base := BaseFigures{CostPrice: decimal.NewFromInt(1), StockQuantity: decimal.NewFromInt(2)}
	metrics := DeriveMetrics(base, 1, decimal.RequireFromString("0.0005"))
	if !metrics.Cost.Equal(decimal.RequireFromString("0.001")) {
		t.Fatalf("cost want 0.001 got %s", metrics.Cost)
	}
}

func TestDeriveMetricsCostNonDecreasingInFactor(t *testing.T) {
	base := BaseFigures{CostPrice: decimal.NewFromInt(333), StockQuantity: decimal.NewFromInt(10)}
	prev := decimal.Zero
	for _, raw := range []string{"0.001", "0.5", "1", "1.25", "3", "12", "250"} {
		metrics := DeriveMetrics(base, 1, decimal.RequireFromString(raw))
		if metrics.Cost.LessThan(prev) {
			t.Fatalf("cost decreased at factor %s: %s < %s", raw, metrics.Cost, prev)
		}
		prev = metrics.Cost
	}
}

func TestDeriveMetricsNonPositiveFactorDoesNotPanic(t *testing.T) {
	base := BaseFigures{CostPrice: decimal.NewFromInt(10), StockQuantity: decimal.NewFromInt(10)}
	metrics := DeriveMetrics(base, 1, decimal.Zero)
	if !metrics.Stock.IsZero() {
		t.Fatalf("stock want 0 got %s", metrics.Stock)
	}
}

func TestUnitUpdateNormalizesMoney(t *testing.T) {
	set := NewUnitConversionSet()
	set.Add()
	if err := set.Update(0, UnitFieldStorePrice, "1.200.000 đ"); err != nil {
		t.Fatalf("update store price failed: %v", err)
	}
	if err := set.Update(0, UnitFieldAppPrice, ""); err != nil {
		t.Fatalf("update app price failed: %v", err)
	}
	row := set.Rows()[0]
	if row.StorePrice == nil || *row.StorePrice != 1200000 {
		t.Fatalf("store price want 1200000 got %v", row.StorePrice)
	}
	if row.AppPrice != nil {
		t.Fatalf("empty app price should be null, got %v", *row.AppPrice)
	}
	if !row.IsSalesUnit || !row.Factor.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("default row unexpected: %+v", row)
	}
}

func TestUnitUpdateUnknownField(t *testing.T) {
	set := NewUnitConversionSet()
	set.Add()
	if err := set.Update(0, UnitField("color"), "red"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("want ErrUnknownField got %v", err)
	}
	if err := set.Update(3, UnitFieldName, "box"); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("want ErrIndexOutOfRange got %v", err)
	}
}

func TestUnitValidateNameAndFactor(t *testing.T) {
	set := NewUnitConversionSet()
	set.Add()
	id := set.Add()
	_ = set.Update(0, UnitFieldName, "Thùng")
	_ = set.Update(1, UnitFieldFactor, "abc")

	r := NewReport()
	set.Validate(r)
	if _, ok := r.RowError(CollectionUnits, id, string(UnitFieldName)); !ok {
		t.Fatalf("expected unit name error")
	}
	if key, _ := r.RowError(CollectionUnits, id, string(UnitFieldFactor)); key != MsgUnitFactorPositive {
		t.Fatalf("factor error want %s got %s", MsgUnitFactorPositive, key)
	}
	if r.ErrorCount() != 2 {
		t.Fatalf("error count want 2 got %d", r.ErrorCount())
	}
}

func TestUnitFactorWithDecimalCommaFailsValidation(t *testing.T) {
	set := NewUnitConversionSet()
	set.Add()
	id := set.Add()
	_ = set.Update(1, UnitFieldName, "Lốc")
	if err := set.Update(1, UnitFieldFactor, "1,5"); err != nil {
		t.Fatalf("update should accept the text and defer to validation: %v", err)
	}
	if !set.Rows()[1].Factor.IsZero() {
		t.Fatalf("comma factor should be stored as 0, got %s", set.Rows()[1].Factor)
	}

	r := NewReport()
	set.Validate(r)
	if key, _ := r.RowError(CollectionUnits, id, string(UnitFieldFactor)); key != MsgUnitFactorPositive {
		t.Fatalf("factor error want %s got %s", MsgUnitFactorPositive, key)
	}
}

func TestUnitRemoveHasNoMinimum(t *testing.T) {
	set := NewUnitConversionSet()
	set.Add()
	if _, err := set.Remove(0); err != nil {
		t.Fatalf("remove last unit failed: %v", err)
	}
	if set.Len() != 0 {
		t.Fatalf("len want 0 got %d", set.Len())
	}
}
