package materials

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Unit string

const (
	UnitPiece    Unit = "piece"
	UnitMeter    Unit = "meter"
	UnitKilogram Unit = "kilogram"
	UnitLiter    Unit = "liter"
	UnitPack     Unit = "pack"
)

// Units lists the accepted units in display order.
var Units = []Unit{UnitPiece, UnitMeter, UnitKilogram, UnitLiter, UnitPack}

var unitLabels = map[Unit]string{
	UnitPiece:    "шт",
	UnitMeter:    "м",
	UnitKilogram: "кг",
	UnitLiter:    "л",
	UnitPack:     "упак",
}

// Valid reports whether u is one of Units.
func (u Unit) Valid() bool {
	_, ok := unitLabels[u]
	return ok
}

// Label is the short shop label (шт, м, кг, л, упак).
func (u Unit) Label() string {
	if l, ok := unitLabels[u]; ok {
		return l
	}
	return string(u)
}

// ParseUnit accepts a unit code or its shop label.
func ParseUnit(s string) (Unit, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for u, l := range unitLabels {
		if s == string(u) || s == l {
			return u, true
		}
	}
	return "", false
}

type Type struct {
	ID   int64
	Name string
}

type Material struct {
	ID              int64
	TypeID          int64  // 0 when the type was removed
	TypeName        string // имя типа (для отображения)
	Name            string
	UnitPrice       decimal.Decimal // ₽ за единицу
	StockQuantity   int
	MinQuantity     int // минимальный заказ
	PackageQuantity int
	Unit            Unit
}

// Input carries the writable fields of a material.
type Input struct {
	TypeID          int64
	Name            string
	UnitPrice       decimal.Decimal
	StockQuantity   int
	MinQuantity     int
	PackageQuantity int
	Unit            Unit
}

// Normalize trims the name and canonicalizes a unit given by its label.
func (in Input) Normalize() Input {
	in.Name = strings.TrimSpace(in.Name)
	if u, ok := ParseUnit(string(in.Unit)); ok {
		in.Unit = u
	}
	return in
}

func (m Material) Input() Input {
	return Input{
		TypeID:          m.TypeID,
		Name:            m.Name,
		UnitPrice:       m.UnitPrice,
		StockQuantity:   m.StockQuantity,
		MinQuantity:     m.MinQuantity,
		PackageQuantity: m.PackageQuantity,
		Unit:            m.Unit,
	}
}
