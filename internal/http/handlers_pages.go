package http

import (
	"html/template"
	"log/slog"
	"net/http"

	"wishly/internal/calculator"
	"wishly/internal/core"
	"wishly/internal/log"
)

// indexView is the full-page render model: the people fragment plus the
// chrome around it (currency picker, rates status).
type indexView struct {
	People      template.HTML
	Display     core.Currency
	Currencies  []core.Currency
	RatesLoaded bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	display := s.DisplayCurrency()

	frag, err := s.renderPeople(display)
	if err != nil {
		slog.ErrorContext(r.Context(), "Index render failed", log.FieldError, err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	view := indexView{
		People:      frag,
		Display:     display,
		Currencies:  core.Currencies(),
		RatesLoaded: !s.table.Empty(),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "index.html", view); err != nil {
		slog.ErrorContext(r.Context(), "Template execution failed", log.FieldError, err.Error())
	}
}

// handleSetCurrency switches the display currency for the session and
// re-renders the people list in it.
func (s *Server) handleSetCurrency(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		badRequest(w, r, err)
		return
	}

	currency, err := core.ParseCurrency(r.Form.Get("currency"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	s.setDisplayCurrency(currency)
	slog.InfoContext(r.Context(), "Display currency changed", log.FieldCurrency, string(currency))
	s.writePeopleFragment(w, r)
}

// handleGroupTotal renders the group total for one parent item: its own
// price plus all required dependents, in the current display currency.
// Computed fresh on every call so it always reflects current state.
func (s *Server) handleGroupTotal(w http.ResponseWriter, r *http.Request) {
	personID := r.URL.Query().Get(":id")
	parentID := r.URL.Query().Get("parent")

	person, err := s.store.Person(personID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	display := s.DisplayCurrency()
	total := calculator.GroupTotal(person.Items, parentID, display, s.table)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(`<span class="group-total">` + template.HTMLEscapeString(formatAmount(total, display)) + `</span>`))
}
