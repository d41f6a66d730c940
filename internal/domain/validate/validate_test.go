package validate

import (
	"errors"
	"testing"

	"github.com/Spok95/decor-catalog/internal/domain/errs"
	"github.com/Spok95/decor-catalog/internal/domain/materials"
	"github.com/Spok95/decor-catalog/internal/domain/products"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func validProduct() products.Input {
	return products.Input{TypeID: 1, Name: "Дуб натуральный", Articul: "8758385", MinCost: d("4456.90"), Width: d("2.00")}
}

func validMaterial() materials.Input {
	return materials.Input{
		TypeID: 1, Name: "Глина", UnitPrice: d("15.29"),
		StockQuantity: 0, MinQuantity: 100, PackageQuantity: 50, Unit: materials.UnitKilogram,
	}
}

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *errs.ValidationError, got %v", err)
	}
	return ve.Field
}

func TestProduct(t *testing.T) {
	if err := Product(validProduct()); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	tests := []struct {
		name  string
		edit  func(*products.Input)
		field string
	}{
		{"empty articul", func(in *products.Input) { in.Articul = "" }, "articul"},
		{"empty name", func(in *products.Input) { in.Name = "" }, "name"},
		{"no type", func(in *products.Input) { in.TypeID = 0 }, "type_id"},
		{"zero min cost", func(in *products.Input) { in.MinCost = decimal.Zero }, "min_cost"},
		{"negative min cost", func(in *products.Input) { in.MinCost = d("-1") }, "min_cost"},
		{"min cost too large", func(in *products.Input) { in.MinCost = d("1000000") }, "min_cost"},
		{"min cost fractional cents", func(in *products.Input) { in.MinCost = d("10.005") }, "min_cost"},
		{"zero width", func(in *products.Input) { in.Width = decimal.Zero }, "width"},
		{"width too large", func(in *products.Input) { in.Width = d("10.01") }, "width"},
		{"width too precise", func(in *products.Input) { in.Width = d("1.255") }, "width"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validProduct()
			tt.edit(&in)
			if got := fieldOf(t, Product(in)); got != tt.field {
				t.Fatalf("field = %q, want %q", got, tt.field)
			}
		})
	}
}

func TestProductWidthBounds(t *testing.T) {
	for _, w := range []string{"0.01", "10", "10.00"} {
		in := validProduct()
		in.Width = d(w)
		if err := Product(in); err != nil {
			t.Fatalf("width %s rejected: %v", w, err)
		}
	}
}

func TestMaterial(t *testing.T) {
	if err := Material(validMaterial()); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	tests := []struct {
		name  string
		edit  func(*materials.Input)
		field string
	}{
		{"empty name", func(in *materials.Input) { in.Name = "" }, "name"},
		{"no type", func(in *materials.Input) { in.TypeID = 0 }, "type_id"},
		{"zero price", func(in *materials.Input) { in.UnitPrice = decimal.Zero }, "unit_price"},
		{"negative stock", func(in *materials.Input) { in.StockQuantity = -1 }, "stock_quantity"},
		{"stock too large", func(in *materials.Input) { in.StockQuantity = MaxQuantity + 1 }, "stock_quantity"},
		{"zero min quantity", func(in *materials.Input) { in.MinQuantity = 0 }, "min_quantity"},
		{"zero package quantity", func(in *materials.Input) { in.PackageQuantity = 0 }, "package_quantity"},
		{"unknown unit", func(in *materials.Input) { in.Unit = "ton" }, "unit"},
		{"empty unit", func(in *materials.Input) { in.Unit = "" }, "unit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validMaterial()
			tt.edit(&in)
			if got := fieldOf(t, Material(in)); got != tt.field {
				t.Fatalf("field = %q, want %q", got, tt.field)
			}
		})
	}
}

func TestMaterialAcceptsEveryUnit(t *testing.T) {
	for _, u := range materials.Units {
		in := validMaterial()
		in.Unit = u
		if err := Material(in); err != nil {
			t.Fatalf("unit %s rejected: %v", u, err)
		}
	}
}
