package catalog

import (
	"errors"
	"strings"

	"github.com/zhouzirui/ebooks/backend/internal/model/catalog"
)

// ErrSurnameRequired is returned when a prefix lookup is issued without a
// surname prefix. It is distinct from a lookup that matched nothing.
var ErrSurnameRequired = errors.New("surname prefix is required")

// Service answers catalog queries. Every method is a read-only scan of the
// store and returns results in catalog order; an empty result is not an error.
type Service struct {
	store catalog.Store
}

// NewService binds the query layer to an immutable catalog.
func NewService(store catalog.Store) *Service {
	return &Service{store: store}
}

// All returns the whole catalog.
func (s *Service) All() []catalog.Author {
	return s.store.List()
}

// Count reports the number of authors in the catalog.
func (s *Service) Count() int {
	return s.store.Len()
}

// BySurname returns authors whose surname contains fragment, ignoring case.
func (s *Service) BySurname(fragment string) []catalog.Author {
	needle := strings.ToLower(fragment)
	return s.filter(func(a catalog.Author) bool {
		return strings.Contains(strings.ToLower(a.Surname), needle)
	})
}

// ByFullName returns authors whose name and surname both equal the inputs, ignoring case.
func (s *Service) ByFullName(name, surname string) []catalog.Author {
	name, surname = strings.ToLower(name), strings.ToLower(surname)
	return s.filter(func(a catalog.Author) bool {
		return strings.ToLower(a.Name) == name && strings.ToLower(a.Surname) == surname
	})
}

// ByNameAndSurnamePrefix returns authors with the given name whose surname
// starts with prefix. present reports whether the caller supplied a prefix
// at all; an empty but present prefix matches every surname.
func (s *Service) ByNameAndSurnamePrefix(name, prefix string, present bool) ([]catalog.Author, error) {
	if !present {
		return nil, ErrSurnameRequired
	}

	name, prefix = strings.ToLower(name), strings.ToLower(prefix)
	return s.filter(func(a catalog.Author) bool {
		return strings.ToLower(a.Name) == name && strings.HasPrefix(strings.ToLower(a.Surname), prefix)
	}), nil
}

// WorksByYear flattens the works of every author edited in year, keeping
// author order and then work order.
func (s *Service) WorksByYear(year string) []catalog.Work {
	want := catalog.ParseEditionYear(year)

	works := make([]catalog.Work, 0)
	for _, author := range s.store.List() {
		for _, work := range author.Works {
			if work.Edition.Equal(want) {
				works = append(works, work)
			}
		}
	}
	return works
}

func (s *Service) filter(match func(catalog.Author) bool) []catalog.Author {
	authors := make([]catalog.Author, 0)
	for _, author := range s.store.List() {
		if match(author) {
			authors = append(authors, author)
		}
	}
	return authors
}
