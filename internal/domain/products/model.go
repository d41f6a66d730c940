package products

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Type is a product type with its pricing coefficient.
type Type struct {
	ID          int64
	Name        string
	Coefficient decimal.Decimal
}

type Product struct {
	ID       int64
	TypeID   int64  // 0 when the type was removed
	TypeName string // joined from type_product, for display
	Name     string
	Articul  string
	MinCost  decimal.Decimal // минимальная стоимость для партнёра, ₽
	Width    decimal.Decimal // м
}

// Input carries the writable fields of a product.
type Input struct {
	TypeID  int64
	Name    string
	Articul string
	MinCost decimal.Decimal
	Width   decimal.Decimal
}

// Normalize trims the text fields.
func (in Input) Normalize() Input {
	in.Name = strings.TrimSpace(in.Name)
	in.Articul = strings.TrimSpace(in.Articul)
	return in
}

// Input returns the writable fields of p.
func (p Product) Input() Input {
	return Input{
		TypeID:  p.TypeID,
		Name:    p.Name,
		Articul: p.Articul,
		MinCost: p.MinCost,
		Width:   p.Width,
	}
}

// CostInputs are the stored values the price formula reads.
type CostInputs struct {
	Width       decimal.Decimal
	Coefficient decimal.Decimal
}
