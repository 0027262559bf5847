package core

import (
	"errors"
	"net/url"
	"strings"
)

// Supported display and storage currencies. Rates are expressed relative to
// a single base currency chosen at startup.
const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	SEK Currency = "SEK"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
)

type (
	Currency string

	// Price is a monetary amount stored in hundredths of a currency unit.
	// Stored prices keep full precision; rounding happens only for display.
	Price struct {
		Cents int64
	}

	// Item is one wishlist entry owned by a person.
	Item struct {
		ID       string
		Name     string
		Price    Price
		Currency Currency
		Link     string // optional store URL, empty when absent

		// ParentID references another item of the same person that this
		// item depends on. Empty means top-level. The dependency graph is
		// capped at one level: a parent never has a parent itself.
		ParentID string

		// Required marks a dependent item whose cost counts towards the
		// parent's group total. Only meaningful when ParentID is set.
		Required bool
	}

	// Person owns an ordered list of items. Order is meaningful: it is the
	// display and drag-reorder position.
	Person struct {
		ID    string
		Name  string
		Items []Item
	}
)

var (
	ErrInvalidPrice        = errors.New("invalid price")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrEmptyName           = errors.New("empty name")
	ErrInvalidLink         = errors.New("invalid link")
	ErrPersonNotFound      = errors.New("person not found")
	ErrItemNotFound        = errors.New("item not found")
	ErrUnknownParent       = errors.New("parent item not found")
	ErrNestedDependency    = errors.New("dependent items cannot have their own dependents")
)

// Currencies returns the supported set in display order.
func Currencies() []Currency {
	return []Currency{USD, EUR, SEK, GBP, JPY}
}

// ParseCurrency validates a raw currency code from form input.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

func (c Currency) Validate() error {
	switch c {
	case USD, EUR, SEK, GBP, JPY:
		return nil
	default:
		return ErrUnsupportedCurrency
	}
}

// Amount returns the price as a float for conversion and display purposes.
// Use cents for anything that must stay exact.
func (p Price) Amount() float64 {
	return float64(p.Cents) / 100.0
}

func (p Price) Validate() error {
	if p.Cents < 0 {
		return ErrInvalidPrice
	}
	return nil
}

func (i Item) Validate() error {
	if len(strings.TrimSpace(i.Name)) == 0 {
		return ErrEmptyName
	}
	if len(i.Name) > 200 {
		return errors.New("name too long (max 200 characters)")
	}
	if err := i.Price.Validate(); err != nil {
		return err
	}
	if err := i.Currency.Validate(); err != nil {
		return err
	}
	if i.Link != "" {
		u, err := url.Parse(i.Link)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return ErrInvalidLink
		}
	}
	return nil
}

// TopLevel reports whether the item has no dependency parent.
func (i Item) TopLevel() bool {
	return i.ParentID == ""
}

func (p Person) Validate() error {
	if len(strings.TrimSpace(p.Name)) == 0 {
		return ErrEmptyName
	}
	if len(p.Name) > 100 {
		return errors.New("name too long (max 100 characters)")
	}
	return nil
}
