package wishlist

import (
	"wishly/internal/calculator"
	"wishly/internal/core"
)

// Ports consumed by the HTTP layer.
type (
	PeopleReader interface {
		People() []core.Person
		Person(id string) (core.Person, error)
	}

	PeopleWriter interface {
		AddPerson(name string) (core.Person, error)
		RenamePerson(id, name string) error
		RemovePerson(id string) error
		ReorderPeople(from, to int) error
	}

	ItemWriter interface {
		AddItem(personID string, draft ItemDraft) (core.Item, error)
		EditItem(personID, itemID string, draft ItemDraft) (core.Item, error)
		RemoveItem(personID, itemID string) error
		ReorderItems(personID string, from, to int) error
		SortItemsByPrice(personID string, display core.Currency, conv calculator.Converter) (descending bool, err error)
	}

	// Versioned exposes a counter that changes on every mutation, used to
	// key render caches so they can never serve stale state.
	Versioned interface {
		Version() uint64
	}
)
