// Package validate checks catalog input against the business rules before any
// write reaches the store. Callers pass normalized input.
package validate

import (
	"github.com/Spok95/decor-catalog/internal/domain/errs"
	"github.com/Spok95/decor-catalog/internal/domain/materials"
	"github.com/Spok95/decor-catalog/internal/domain/products"
	"github.com/shopspring/decimal"
)

// Limits carried over from the shop's entry forms.
var (
	MaxWidth = decimal.RequireFromString("10.00")
	MaxMoney = decimal.RequireFromString("999999.99")
)

const MaxQuantity = 999999

// Product checks a product write. Type existence is checked by the caller.
func Product(in products.Input) error {
	switch {
	case in.Articul == "":
		return errs.Invalid("articul", "must not be empty")
	case in.Name == "":
		return errs.Invalid("name", "must not be empty")
	case in.TypeID <= 0:
		return errs.Invalid("type_id", "must be set")
	}
	if err := money("min_cost", in.MinCost); err != nil {
		return err
	}
	if !in.Width.IsPositive() {
		return errs.Invalid("width", "must be > 0")
	}
	if in.Width.GreaterThan(MaxWidth) {
		return errs.Invalid("width", "must be <= "+MaxWidth.StringFixed(2))
	}
	if !in.Width.Equal(in.Width.Truncate(2)) {
		return errs.Invalid("width", "must have at most 2 decimal places")
	}
	return nil
}

// Material checks a material write. Type existence is checked by the caller.
func Material(in materials.Input) error {
	switch {
	case in.Name == "":
		return errs.Invalid("name", "must not be empty")
	case in.TypeID <= 0:
		return errs.Invalid("type_id", "must be set")
	}
	if err := money("unit_price", in.UnitPrice); err != nil {
		return err
	}
	if in.StockQuantity < 0 {
		return errs.Invalid("stock_quantity", "must be >= 0")
	}
	if err := quantity("stock_quantity", in.StockQuantity, false); err != nil {
		return err
	}
	if err := quantity("min_quantity", in.MinQuantity, true); err != nil {
		return err
	}
	if err := quantity("package_quantity", in.PackageQuantity, true); err != nil {
		return err
	}
	if !in.Unit.Valid() {
		return errs.Invalid("unit", "must be one of piece, meter, kilogram, liter, pack")
	}
	return nil
}

func money(field string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return errs.Invalid(field, "must be > 0")
	}
	if v.GreaterThan(MaxMoney) {
		return errs.Invalid(field, "must be <= "+MaxMoney.StringFixed(2))
	}
	if !v.Equal(v.Truncate(2)) {
		return errs.Invalid(field, "must have at most 2 decimal places")
	}
	return nil
}

func quantity(field string, v int, positive bool) error {
	if positive && v <= 0 {
		return errs.Invalid(field, "must be > 0")
	}
	if v > MaxQuantity {
		return errs.Invalid(field, "must be <= 999999")
	}
	return nil
}
