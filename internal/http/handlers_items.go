package http

import (
	"log/slog"
	"net/http"

	"wishly/internal/log"
)

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		badRequest(w, r, err)
		return
	}
	personID := r.URL.Query().Get(":id")

	draft, err := parseItemDraft(r.Form)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	item, err := s.store.AddItem(personID, draft)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	slog.InfoContext(r.Context(), "Item added",
		log.FieldPersonID, personID,
		log.FieldItemID, item.ID,
		log.FieldItemName, item.Name,
		log.FieldPriceCents, item.Price.Cents,
		log.FieldCurrency, string(item.Currency),
		log.FieldOperation, log.OpCreate)
	s.writePeopleFragment(w, r)
}

func (s *Server) handleEditItem(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		badRequest(w, r, err)
		return
	}
	personID := r.URL.Query().Get(":id")
	itemID := r.URL.Query().Get(":item_id")

	draft, err := parseItemDraft(r.Form)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	if _, err := s.store.EditItem(personID, itemID, draft); err != nil {
		writeStoreError(w, r, err)
		return
	}
	slog.InfoContext(r.Context(), "Item updated",
		log.FieldPersonID, personID,
		log.FieldItemID, itemID,
		log.FieldOperation, log.OpUpdate)
	s.writePeopleFragment(w, r)
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	personID := r.URL.Query().Get(":id")
	itemID := r.URL.Query().Get(":item_id")

	if err := s.store.RemoveItem(personID, itemID); err != nil {
		writeStoreError(w, r, err)
		return
	}
	slog.InfoContext(r.Context(), "Item removed with dependents",
		log.FieldPersonID, personID,
		log.FieldItemID, itemID,
		log.FieldOperation, log.OpDelete)
	s.writePeopleFragment(w, r)
}

func (s *Server) handleReorderItems(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		badRequest(w, r, err)
		return
	}
	personID := r.URL.Query().Get(":id")
	from, to, ok := parseMoveIndexes(r.Form)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid reorder positions</div>`))
		return
	}

	if err := s.store.ReorderItems(personID, from, to); err != nil {
		writeStoreError(w, r, err)
		return
	}
	s.writePeopleFragment(w, r)
}

func (s *Server) handleSortItems(w http.ResponseWriter, r *http.Request) {
	personID := r.URL.Query().Get(":id")

	descending, err := s.store.SortItemsByPrice(personID, s.DisplayCurrency(), s.table)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	slog.InfoContext(r.Context(), "Items sorted by price",
		log.FieldPersonID, personID,
		"descending", descending,
		log.FieldOperation, log.OpSort)
	s.writePeopleFragment(w, r)
}
