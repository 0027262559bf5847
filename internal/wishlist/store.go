// Package wishlist holds the in-memory person/collection store. All
// application state lives here for the session; there is no persistence.
package wishlist

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"wishly/internal/calculator"
	"wishly/internal/core"
)

// ItemDraft carries already-parsed, typed item fields into the store.
// Raw form text is parsed at the HTTP boundary before a draft is built.
type ItemDraft struct {
	Name       string
	PriceCents int64
	Currency   core.Currency
	Link       string
	ParentID   string
	Required   bool
}

// Store owns the ordered list of people, each with an ordered item list.
// A mutex guards all state; every operation is atomic under the lock.
type Store struct {
	mu      sync.Mutex
	people  []core.Person
	sortAsc map[string]bool // per-person direction of the last price sort
	version uint64
}

func New() *Store {
	return &Store{sortAsc: make(map[string]bool)}
}

// NewFromFiles creates a store seeded with people listed one per line in
// seed_people.txt under base, if present. Blank lines and # comments are
// skipped.
func NewFromFiles(base string) *Store {
	s := New()
	for _, name := range readLines(filepath.Join(base, "seed_people.txt")) {
		_, _ = s.AddPerson(name)
	}
	return s
}

// Version returns a counter bumped by every successful mutation.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// People returns a deep copy of the people list in display order.
func (s *Store) People() []core.Person {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Person, len(s.people))
	for i, p := range s.people {
		out[i] = copyPerson(p)
	}
	return out
}

// Person returns a deep copy of one person.
func (s *Store) Person(id string) (core.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findPerson(id)
	if p == nil {
		return core.Person{}, core.ErrPersonNotFound
	}
	return copyPerson(*p), nil
}

// AddPerson appends a person to the end of the list.
func (s *Store) AddPerson(name string) (core.Person, error) {
	p := core.Person{ID: uuid.NewString(), Name: strings.TrimSpace(name)}
	if err := p.Validate(); err != nil {
		return core.Person{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.people = append(s.people, p)
	s.version++
	return copyPerson(p), nil
}

// RenamePerson replaces a person's display name.
func (s *Store) RenamePerson(id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findPerson(id)
	if p == nil {
		return core.ErrPersonNotFound
	}
	renamed := *p
	renamed.Name = strings.TrimSpace(name)
	if err := renamed.Validate(); err != nil {
		return err
	}
	p.Name = renamed.Name
	s.version++
	return nil
}

// RemovePerson removes a person and everything they own.
func (s *Store) RemovePerson(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.people {
		if s.people[i].ID == id {
			s.people = append(s.people[:i], s.people[i+1:]...)
			delete(s.sortAsc, id)
			s.version++
			return nil
		}
	}
	return core.ErrPersonNotFound
}

// ReorderPeople moves the person at from to position to, preserving the
// relative order of everyone else. A negative to means the drag was
// cancelled and the call is a no-op.
func (s *Store) ReorderPeople(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if from < 0 || from >= len(s.people) {
		return core.ErrPersonNotFound
	}
	if to < 0 {
		return nil
	}
	moved := splice(s.people, from, to)
	s.people = moved
	s.version++
	return nil
}

// AddItem appends an item to the end of the person's item list.
func (s *Store) AddItem(personID string, draft ItemDraft) (core.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findPerson(personID)
	if p == nil {
		return core.Item{}, core.ErrPersonNotFound
	}
	item, err := buildItem(uuid.NewString(), draft, p.Items, "")
	if err != nil {
		return core.Item{}, err
	}
	p.Items = append(p.Items, item)
	s.version++
	return item, nil
}

// EditItem replaces the editable fields of an item. The dependency cap
// applies: an item that has dependents of its own cannot be given a parent.
func (s *Store) EditItem(personID, itemID string, draft ItemDraft) (core.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findPerson(personID)
	if p == nil {
		return core.Item{}, core.ErrPersonNotFound
	}
	idx := -1
	for i := range p.Items {
		if p.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return core.Item{}, core.ErrItemNotFound
	}
	if draft.ParentID != "" {
		for _, it := range p.Items {
			if it.ParentID == itemID {
				return core.Item{}, core.ErrNestedDependency
			}
		}
	}
	item, err := buildItem(itemID, draft, p.Items, itemID)
	if err != nil {
		return core.Item{}, err
	}
	p.Items[idx] = item
	s.version++
	return item, nil
}

// RemoveItem removes an item along with every item that directly depends on
// it. The cascade is one level deep, matching the dependency cap.
func (s *Store) RemoveItem(personID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findPerson(personID)
	if p == nil {
		return core.ErrPersonNotFound
	}
	found := false
	kept := p.Items[:0:0]
	for _, it := range p.Items {
		if it.ID == itemID {
			found = true
			continue
		}
		if it.ParentID == itemID {
			continue
		}
		kept = append(kept, it)
	}
	if !found {
		return core.ErrItemNotFound
	}
	p.Items = kept
	s.version++
	return nil
}

// ReorderItems moves the item at from to position to within one person's
// list. A negative to means the drag was cancelled and the call is a no-op.
func (s *Store) ReorderItems(personID string, from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findPerson(personID)
	if p == nil {
		return core.ErrPersonNotFound
	}
	if from < 0 || from >= len(p.Items) {
		return core.ErrItemNotFound
	}
	if to < 0 {
		return nil
	}
	p.Items = splice(p.Items, from, to)
	s.version++
	return nil
}

// SortItemsByPrice reorders the person's items by price converted to the
// display currency. The direction toggles on each invocation, starting
// ascending; the direction used is returned for display.
func (s *Store) SortItemsByPrice(personID string, display core.Currency, conv calculator.Converter) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findPerson(personID)
	if p == nil {
		return false, core.ErrPersonNotFound
	}
	asc := !s.sortAsc[personID]
	s.sortAsc[personID] = asc
	p.Items = calculator.SortedByPrice(p.Items, display, conv, !asc)
	s.version++
	return !asc, nil
}

func (s *Store) findPerson(id string) *core.Person {
	for i := range s.people {
		if s.people[i].ID == id {
			return &s.people[i]
		}
	}
	return nil
}

// buildItem validates a draft against the person's current items. selfID is
// set when editing so an item referencing itself as parent is ruled out.
func buildItem(id string, draft ItemDraft, items []core.Item, selfID string) (core.Item, error) {
	item := core.Item{
		ID:       id,
		Name:     strings.TrimSpace(draft.Name),
		Price:    core.Price{Cents: draft.PriceCents},
		Currency: draft.Currency,
		Link:     strings.TrimSpace(draft.Link),
		ParentID: draft.ParentID,
		Required: draft.Required,
	}
	if item.ParentID == "" {
		// Required is only meaningful on dependents
		item.Required = false
	} else {
		if selfID != "" && item.ParentID == selfID {
			return core.Item{}, core.ErrUnknownParent
		}
		var parent *core.Item
		for i := range items {
			if items[i].ID == item.ParentID {
				parent = &items[i]
				break
			}
		}
		if parent == nil {
			return core.Item{}, core.ErrUnknownParent
		}
		if !parent.TopLevel() {
			return core.Item{}, core.ErrNestedDependency
		}
	}
	if err := item.Validate(); err != nil {
		return core.Item{}, err
	}
	return item, nil
}

// splice moves the element at from to position to, clamping to to the end.
func splice[T any](in []T, from, to int) []T {
	moved := in[from]
	rest := append(append([]T{}, in[:from]...), in[from+1:]...)
	if to > len(rest) {
		to = len(rest)
	}
	out := append(append(append([]T{}, rest[:to]...), moved), rest[to:]...)
	return out
}

func copyPerson(p core.Person) core.Person {
	out := p
	out.Items = append([]core.Item(nil), p.Items...)
	return out
}

func readLines(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}
