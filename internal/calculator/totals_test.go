package calculator

import (
	"testing"

	"wishly/internal/core"
	"wishly/internal/rates"
)

func usdOnly() *rates.Table {
	tbl := rates.NewTable(core.USD)
	tbl.Load(map[core.Currency]float64{core.USD: 1})
	return tbl
}

func TestGroupTotal(t *testing.T) {
	// Alice: A (100 USD, top-level), B (20 USD, required dependent of A),
	// C (5 USD, optional dependent of A).
	items := []core.Item{
		{ID: "a", Name: "Console", Price: core.Price{Cents: 10000}, Currency: core.USD},
		{ID: "b", Name: "Controller", Price: core.Price{Cents: 2000}, Currency: core.USD, ParentID: "a", Required: true},
		{ID: "c", Name: "Sticker", Price: core.Price{Cents: 500}, Currency: core.USD, ParentID: "a", Required: false},
	}
	tbl := usdOnly()

	if got := GroupTotal(items, "a", core.USD, tbl); got != 120 {
		t.Fatalf("expected 120 (100 + 20, excluding optional), got %v", got)
	}
}

func TestGroupTotalNoChildren(t *testing.T) {
	items := []core.Item{
		{ID: "a", Name: "Lamp", Price: core.Price{Cents: 4550}, Currency: core.USD},
		{ID: "b", Name: "Bulb", Price: core.Price{Cents: 300}, Currency: core.USD},
	}
	if got := GroupTotal(items, "a", core.USD, usdOnly()); got != 45.5 {
		t.Fatalf("expected parent's own converted price 45.5, got %v", got)
	}
}

func TestGroupTotalUnknownParent(t *testing.T) {
	items := []core.Item{
		{ID: "a", Name: "Lamp", Price: core.Price{Cents: 4550}, Currency: core.USD},
	}
	if got := GroupTotal(items, "nope", core.USD, usdOnly()); got != 0 {
		t.Fatalf("expected 0 for unknown parent, got %v", got)
	}
}

func TestGroupTotalConvertsMixedCurrencies(t *testing.T) {
	// 1 EUR = 2 USD = 10 SEK
	tbl := rates.NewTable(core.EUR)
	tbl.Load(map[core.Currency]float64{core.USD: 2, core.SEK: 10})

	items := []core.Item{
		{ID: "a", Name: "Skis", Price: core.Price{Cents: 10000}, Currency: core.EUR},                             // 100 EUR
		{ID: "b", Name: "Bindings", Price: core.Price{Cents: 5000}, Currency: core.SEK, ParentID: "a", Required: true}, // 50 SEK = 5 EUR
	}

	if got := GroupTotal(items, "a", core.USD, tbl); got != 210 {
		t.Fatalf("expected 210 USD (200 + 10), got %v", got)
	}
}

func TestDependents(t *testing.T) {
	items := []core.Item{
		{ID: "a"},
		{ID: "b", ParentID: "a"},
		{ID: "c"},
		{ID: "d", ParentID: "a"},
	}
	deps := Dependents(items, "a")
	if len(deps) != 2 || deps[0].ID != "b" || deps[1].ID != "d" {
		t.Fatalf("unexpected dependents: %+v", deps)
	}
	if got := Dependents(items, "c"); got != nil {
		t.Fatalf("expected no dependents, got %+v", got)
	}
}

func TestSortedByPrice(t *testing.T) {
	tbl := rates.NewTable(core.EUR)
	tbl.Load(map[core.Currency]float64{core.USD: 2, core.SEK: 10})

	items := []core.Item{
		{ID: "x", Price: core.Price{Cents: 3000}, Currency: core.USD}, // 15 EUR
		{ID: "y", Price: core.Price{Cents: 1000}, Currency: core.EUR}, // 10 EUR
		{ID: "z", Price: core.Price{Cents: 2000}, Currency: core.SEK}, // 2 EUR
	}

	asc := SortedByPrice(items, core.EUR, tbl, false)
	if asc[0].ID != "z" || asc[1].ID != "y" || asc[2].ID != "x" {
		t.Fatalf("ascending order wrong: %s %s %s", asc[0].ID, asc[1].ID, asc[2].ID)
	}

	desc := SortedByPrice(items, core.EUR, tbl, true)
	if desc[0].ID != "x" || desc[1].ID != "y" || desc[2].ID != "z" {
		t.Fatalf("descending order wrong: %s %s %s", desc[0].ID, desc[1].ID, desc[2].ID)
	}

	// Input slice untouched
	if items[0].ID != "x" {
		t.Fatal("SortedByPrice must not mutate its input")
	}
}

func TestSortedByPriceStable(t *testing.T) {
	items := []core.Item{
		{ID: "first", Price: core.Price{Cents: 1000}, Currency: core.USD},
		{ID: "second", Price: core.Price{Cents: 1000}, Currency: core.USD},
	}
	out := SortedByPrice(items, core.USD, usdOnly(), false)
	if out[0].ID != "first" || out[1].ID != "second" {
		t.Fatal("equal prices must keep relative order")
	}
}
