// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating HTTP request
// data: form text is parsed into typed drafts before it can enter the model.
package http

import (
	"net/url"
	"strconv"
	"strings"

	"wishly/internal/core"
	"wishly/internal/wishlist"
)

// parseItemDraft builds a typed item draft from raw form input. Price text
// and currency codes are parsed and rejected here; nothing unparsed reaches
// the store.
func parseItemDraft(form url.Values) (wishlist.ItemDraft, error) {
	priceCents, err := core.ParsePriceToCents(form.Get("price"))
	if err != nil {
		return wishlist.ItemDraft{}, err
	}
	currency, err := core.ParseCurrency(form.Get("currency"))
	if err != nil {
		return wishlist.ItemDraft{}, err
	}
	return wishlist.ItemDraft{
		Name:       sanitizeInput(form.Get("name")),
		PriceCents: priceCents,
		Currency:   currency,
		Link:       strings.TrimSpace(form.Get("link")),
		ParentID:   strings.TrimSpace(form.Get("parent_id")),
		Required:   parseCheckbox(form.Get("required")),
	}, nil
}

// parseMoveIndexes extracts drag-reorder positions. A missing or empty "to"
// means the drop was cancelled; -1 signals the store to no-op.
func parseMoveIndexes(form url.Values) (from, to int, ok bool) {
	from, err := strconv.Atoi(strings.TrimSpace(form.Get("from")))
	if err != nil {
		return 0, 0, false
	}
	rawTo := strings.TrimSpace(form.Get("to"))
	if rawTo == "" {
		return from, -1, true
	}
	to, err = strconv.Atoi(rawTo)
	if err != nil {
		return 0, 0, false
	}
	return from, to, true
}

// parseCheckbox interprets HTML checkbox values.
func parseCheckbox(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
