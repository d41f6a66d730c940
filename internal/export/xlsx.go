// Package export writes the catalog to an Excel workbook.
package export

import (
	"fmt"
	"io"

	"github.com/Spok95/decor-catalog/internal/domain/materials"
	"github.com/Spok95/decor-catalog/internal/domain/products"
	"github.com/xuri/excelize/v2"
)

const (
	ProductsSheet  = "products"
	MaterialsSheet = "materials"
)

var (
	productHeader  = []any{"id", "type", "articul", "name", "min_cost", "width"}
	materialHeader = []any{"id", "type", "name", "unit_price", "unit", "stock_quantity", "min_quantity", "package_quantity"}
)

// WriteCatalog writes one sheet per entity, in the order given.
func WriteCatalog(w io.Writer, prods []products.Product, mats []materials.Material) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), ProductsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(MaterialsSheet); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}

	prodRows := make([][]any, 0, len(prods))
	for _, p := range prods {
		prodRows = append(prodRows, []any{
			p.ID,
			p.TypeName,
			p.Articul,
			p.Name,
			p.MinCost.InexactFloat64(),
			p.Width.InexactFloat64(),
		})
	}
	if err := writeSheet(f, ProductsSheet, productHeader, prodRows); err != nil {
		return err
	}

	matRows := make([][]any, 0, len(mats))
	for _, m := range mats {
		matRows = append(matRows, []any{
			m.ID,
			m.TypeName,
			m.Name,
			m.UnitPrice.InexactFloat64(),
			m.Unit.Label(),
			m.StockQuantity,
			m.MinQuantity,
			m.PackageQuantity,
		})
	}
	if err := writeSheet(f, MaterialsSheet, materialHeader, matRows); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

func writeSheet(f *excelize.File, sheet string, header []any, rows [][]any) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("%s header: %w", sheet, err)
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}
