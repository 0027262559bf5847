package http

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"wishly/internal/calculator"
	"wishly/internal/core"
	"wishly/internal/rates"
)

// ItemView is an item prepared for rendering: price converted to the
// display currency and formatted, dependents nested under their parent.
type ItemView struct {
	ID         string
	Name       string
	Link       string
	Price      string
	Currency   core.Currency
	Required   bool
	Dependents []ItemView

	// FlatIndex is the item's position in the person's flat item list,
	// which is what reorder requests address.
	FlatIndex int

	// GroupTotal is rendered only on items that have dependents: the
	// item's own price plus all required dependents, in display currency.
	GroupTotal string
}

type PersonView struct {
	ID    string
	Name  string
	Index int
	Items []ItemView // top-level items in display order
}

type PageView struct {
	People      []PersonView
	Display     core.Currency
	Currencies  []core.Currency
	RatesLoaded bool
}

// buildPageView converts store state into the render model for one display
// currency. Group totals are derived here on every render, never stored.
func (s *Server) buildPageView(display core.Currency) PageView {
	people := s.store.People()
	view := PageView{
		Display:     display,
		Currencies:  core.Currencies(),
		RatesLoaded: !s.table.Empty(),
	}
	for i, p := range people {
		pv := PersonView{ID: p.ID, Name: p.Name, Index: i}
		flat := make(map[string]int, len(p.Items))
		for idx, it := range p.Items {
			flat[it.ID] = idx
		}
		for _, it := range p.Items {
			if !it.TopLevel() {
				continue
			}
			iv := s.itemView(it, display, flat[it.ID])
			for _, dep := range calculator.Dependents(p.Items, it.ID) {
				iv.Dependents = append(iv.Dependents, s.itemView(dep, display, flat[dep.ID]))
			}
			if len(iv.Dependents) > 0 {
				total := calculator.GroupTotal(p.Items, it.ID, display, s.table)
				iv.GroupTotal = formatAmount(total, display)
			}
			pv.Items = append(pv.Items, iv)
		}
		view.People = append(view.People, pv)
	}
	return view
}

func (s *Server) itemView(it core.Item, display core.Currency, flatIndex int) ItemView {
	converted := s.table.Convert(it.Price.Amount(), it.Currency, display)
	return ItemView{
		ID:        it.ID,
		Name:      it.Name,
		Link:      it.Link,
		Price:     formatAmount(converted, display),
		Currency:  it.Currency,
		Required:  it.Required,
		FlatIndex: flatIndex,
	}
}

// renderPeople returns the people-list fragment, served from the fragment
// cache when store state, rate table and display currency are unchanged.
// The rate generation is part of the key because rates load asynchronously:
// a fragment rendered with identity conversion must not outlive the fetch.
func (s *Server) renderPeople(display core.Currency) (template.HTML, error) {
	key := fmt.Sprintf("%d|%d|%s", s.store.Version(), s.table.Generation(), display)
	if frag, ok := s.fragCache.Get(key); ok {
		return frag, nil
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "people.html", s.buildPageView(display)); err != nil {
		return "", fmt.Errorf("render people fragment: %w", err)
	}
	frag := template.HTML(buf.String())
	s.fragCache.Set(key, frag)
	return frag, nil
}

// writePeopleFragment re-renders the people list after a mutation.
func (s *Server) writePeopleFragment(w http.ResponseWriter, r *http.Request) {
	frag, err := s.renderPeople(s.DisplayCurrency())
	if err != nil {
		slog.ErrorContext(r.Context(), "Fragment render failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(frag))
}

// formatAmount renders a converted amount rounded to 2 decimals with the
// currency's symbol.
func formatAmount(amount float64, c core.Currency) string {
	v := strconv.FormatFloat(rates.Round2(amount), 'f', 2, 64)
	switch c {
	case core.USD:
		return "$" + v
	case core.EUR:
		return "€" + v
	case core.GBP:
		return "£" + v
	case core.JPY:
		return "¥" + v
	case core.SEK:
		return v + " kr"
	default:
		return v + " " + string(c)
	}
}
