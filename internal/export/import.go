package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// PriceUpdate is one row of an edited materials sheet.
type PriceUpdate struct {
	Line       int
	MaterialID int64
	UnitPrice  decimal.Decimal
}

type LineError struct {
	Line   int
	Reason string
}

func (e LineError) Error() string { return fmt.Sprintf("line %d: %s", e.Line, e.Reason) }

// ReadMaterialPrices reads the id and unit_price columns of the materials
// sheet written by WriteCatalog. Rows with an empty price are left out; rows
// that cannot be parsed are reported and skipped.
func ReadMaterialPrices(r io.Reader) ([]PriceUpdate, []LineError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := MaterialsSheet
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("sheet %s is empty", sheet)
	}

	idCol, priceCol := -1, -1
	for i, h := range rows[0] {
		switch strings.TrimSpace(strings.ToLower(h)) {
		case "id":
			idCol = i
		case "unit_price":
			priceCol = i
		}
	}
	if idCol < 0 || priceCol < 0 {
		return nil, nil, fmt.Errorf("sheet %s: id and unit_price columns are required", sheet)
	}

	var (
		out  []PriceUpdate
		bad  []LineError
		need = max(idCol, priceCol)
	)
	for i, row := range rows[1:] {
		line := i + 2
		if len(row) <= need {
			continue
		}
		idStr := strings.TrimSpace(row[idCol])
		priceStr := strings.TrimSpace(strings.ReplaceAll(row[priceCol], ",", "."))
		if idStr == "" || priceStr == "" {
			continue
		}
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || id <= 0 {
			bad = append(bad, LineError{Line: line, Reason: "bad id " + strconv.Quote(idStr)})
			continue
		}
		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			bad = append(bad, LineError{Line: line, Reason: "bad price " + strconv.Quote(priceStr)})
			continue
		}
		out = append(out, PriceUpdate{Line: line, MaterialID: id, UnitPrice: price})
	}
	return out, bad, nil
}
