// Package calculator computes derived values over a person's item list:
// dependency group totals and price-sorted orderings. Everything here is a
// pure function over its inputs; totals are computed on demand at render
// time and never stored, so they always reflect the current item set and
// display currency.
package calculator

import (
	"sort"

	"wishly/internal/core"
)

// Converter expresses an amount given in one currency in another.
// Implemented by rates.Table.
type Converter interface {
	Convert(amount float64, from, to core.Currency) float64
}

// GroupTotal returns the combined display cost of the item with the given
// id: its own price plus the prices of every direct dependent marked
// required, all converted to the display currency. Dependents that are shown
// with the parent but not marked required are excluded. Returns 0 when no
// item has that id.
func GroupTotal(items []core.Item, parentID string, display core.Currency, conv Converter) float64 {
	var parent *core.Item
	for i := range items {
		if items[i].ID == parentID {
			parent = &items[i]
			break
		}
	}
	if parent == nil {
		return 0
	}

	total := conv.Convert(parent.Price.Amount(), parent.Currency, display)
	for _, it := range items {
		if it.ParentID == parentID && it.Required {
			total += conv.Convert(it.Price.Amount(), it.Currency, display)
		}
	}
	return total
}

// Dependents returns the direct children of the given item, in list order.
func Dependents(items []core.Item, parentID string) []core.Item {
	var out []core.Item
	for _, it := range items {
		if it.ParentID == parentID {
			out = append(out, it)
		}
	}
	return out
}

// SortedByPrice returns a new ordering of items by their price converted to
// the display currency. The sort is stable so items with equal converted
// prices keep their relative order.
func SortedByPrice(items []core.Item, display core.Currency, conv Converter, descending bool) []core.Item {
	out := make([]core.Item, len(items))
	copy(out, items)
	sort.SliceStable(out, func(a, b int) bool {
		pa := conv.Convert(out[a].Price.Amount(), out[a].Currency, display)
		pb := conv.Convert(out[b].Price.Amount(), out[b].Currency, display)
		if descending {
			return pa > pb
		}
		return pa < pb
	})
	return out
}
