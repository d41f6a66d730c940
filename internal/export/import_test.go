package export

import (
	"bytes"
	"testing"

	"github.com/Spok95/decor-catalog/internal/domain/materials"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func TestReadMaterialPricesRoundTrip(t *testing.T) {
	mats := []materials.Material{
		{ID: 3, Name: "Охра", UnitPrice: decimal.RequireFromString("15.29"), Unit: materials.UnitKilogram, MinQuantity: 1, PackageQuantity: 1},
		{ID: 9, Name: "Глазурь", UnitPrice: decimal.RequireFromString("120"), Unit: materials.UnitLiter, MinQuantity: 1, PackageQuantity: 1},
	}
	var buf bytes.Buffer
	if err := WriteCatalog(&buf, nil, mats); err != nil {
		t.Fatal(err)
	}

	ups, bad, err := ReadMaterialPrices(&buf)
	if err != nil || len(bad) != 0 {
		t.Fatalf("err=%v bad=%v", err, bad)
	}
	if len(ups) != 2 || ups[0].MaterialID != 3 || !ups[0].UnitPrice.Equal(decimal.RequireFromString("15.29")) || ups[1].Line != 3 {
		t.Fatalf("updates = %+v", ups)
	}
}

func TestReadMaterialPricesBadRows(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"unit_price", "name", "id"},
		{"10,50", "Охра", "4"},
		{"", "Пусто", "5"},
		{"abc", "Мусор", "6"},
		{"7", "Без id", "x"},
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			t.Fatal(err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}

	ups, bad, err := ReadMaterialPrices(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(ups) != 1 || ups[0].MaterialID != 4 || !ups[0].UnitPrice.Equal(decimal.RequireFromString("10.5")) {
		t.Fatalf("updates = %+v", ups)
	}
	if len(bad) != 2 || bad[0].Line != 4 || bad[1].Line != 5 {
		t.Fatalf("bad = %+v", bad)
	}
}

func TestReadMaterialPricesMissingColumns(t *testing.T) {
	f := excelize.NewFile()
	header := []any{"name"}
	_ = f.SetSheetRow(f.GetSheetName(0), "A1", &header)
	var buf bytes.Buffer
	_ = f.Write(&buf)

	if _, _, err := ReadMaterialPrices(&buf); err == nil {
		t.Fatal("expected error")
	}
}
