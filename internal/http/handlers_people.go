package http

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"wishly/internal/core"
	"wishly/internal/log"
)

func (s *Server) handleAddPerson(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		badRequest(w, r, err)
		return
	}
	name := sanitizeInput(r.Form.Get("name"))

	person, err := s.store.AddPerson(name)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	slog.InfoContext(r.Context(), "Person added",
		log.FieldPersonID, person.ID,
		log.FieldOperation, log.OpCreate)
	s.writePeopleFragment(w, r)
}

func (s *Server) handleRenamePerson(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		badRequest(w, r, err)
		return
	}
	id := r.URL.Query().Get(":id")
	name := sanitizeInput(r.Form.Get("name"))

	if err := s.store.RenamePerson(id, name); err != nil {
		writeStoreError(w, r, err)
		return
	}
	s.writePeopleFragment(w, r)
}

func (s *Server) handleRemovePerson(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")

	if err := s.store.RemovePerson(id); err != nil {
		writeStoreError(w, r, err)
		return
	}
	slog.InfoContext(r.Context(), "Person removed",
		log.FieldPersonID, id,
		log.FieldOperation, log.OpDelete)
	s.writePeopleFragment(w, r)
}

func (s *Server) handleReorderPeople(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		badRequest(w, r, err)
		return
	}
	from, to, ok := parseMoveIndexes(r.Form)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid reorder positions</div>`))
		return
	}

	if err := s.store.ReorderPeople(from, to); err != nil {
		writeStoreError(w, r, err)
		return
	}
	s.writePeopleFragment(w, r)
}

func badRequest(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "Parse form error",
		log.FieldError, err.Error(),
		log.FieldMethod, r.Method,
		log.FieldPath, r.URL.Path)
	w.WriteHeader(http.StatusBadRequest)
	_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
}

// writeStoreError maps store errors to responses: unknown ids are 404,
// anything rejected by validation is 422.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrPersonNotFound), errors.Is(err, core.ErrItemNotFound):
		w.WriteHeader(http.StatusNotFound)
	default:
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	slog.WarnContext(r.Context(), "Request rejected",
		log.FieldError, err.Error(),
		log.FieldMethod, r.Method,
		log.FieldPath, r.URL.Path)
	_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(err.Error()) + `</div>`))
}
