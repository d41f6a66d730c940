package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Spok95/decor-catalog/internal/domain/materials"
	"github.com/Spok95/decor-catalog/internal/domain/products"
	"github.com/shopspring/decimal"
)

func TestParseArgs(t *testing.T) {
	inv, err := parseArgs(nil)
	if err != nil || inv.command != "serve" || inv.configPath != "config/example.yaml" {
		t.Fatalf("defaults: %+v, %v", inv, err)
	}

	inv, err = parseArgs([]string{"--config", "/etc/catalog.yaml", "export", "out.xlsx"})
	if err != nil || inv.command != "export" || inv.args[0] != "out.xlsx" || inv.configPath != "/etc/catalog.yaml" {
		t.Fatalf("export: %+v, %v", inv, err)
	}

	inv, err = parseArgs([]string{"recalc", "-c", "x.yaml"})
	if err != nil || inv.command != "recalc" || inv.configPath != "x.yaml" {
		t.Fatalf("interspersed flag: %+v, %v", inv, err)
	}

	for _, bad := range [][]string{{"export"}, {"drop"}, {"--nope"}} {
		if _, err := parseArgs(bad); err == nil {
			t.Fatalf("%v accepted", bad)
		}
	}
}

func TestPrintTables(t *testing.T) {
	var buf bytes.Buffer
	printProducts(&buf, []products.Product{{ID: 1, TypeName: "Ламинат", Articul: "A1", Name: "Дуб",
		MinCost: decimal.RequireFromString("470"), Width: decimal.RequireFromString("2")}})
	if !strings.Contains(buf.String(), "470.00") || !strings.Contains(buf.String(), "2.00") {
		t.Fatalf("products:\n%s", buf.String())
	}

	buf.Reset()
	printMaterials(&buf, []materials.Material{{ID: 3, Name: "Охра", UnitPrice: decimal.RequireFromString("15.29"), Unit: materials.UnitLiter}})
	if !strings.Contains(buf.String(), "15.29") || !strings.Contains(buf.String(), "л") {
		t.Fatalf("materials:\n%s", buf.String())
	}
}
