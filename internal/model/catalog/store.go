package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale orders surnames the way a Spanish reader expects.
var DefaultLocale = language.MustParse("es-ES")

// Store exposes the catalog to the query layer.
type Store interface {
	List() []Author
	Len() int
}

// MemoryStore implements Store with an in-memory slice sorted once by
// surname. It is never modified after construction, so it is safe to share
// between requests without locking.
type MemoryStore struct {
	items []Author
}

type storeOptions struct {
	locale language.Tag
}

// Option customizes NewMemoryStore.
type Option func(*storeOptions)

// WithLocale sets the collation used for the surname ordering.
func WithLocale(tag language.Tag) Option {
	return func(o *storeOptions) {
		o.locale = tag
	}
}

// NewMemoryStore returns a MemoryStore holding a sorted copy of the supplied authors.
func NewMemoryStore(items []Author, opts ...Option) *MemoryStore {
	options := storeOptions{locale: DefaultLocale}
	for _, opt := range opts {
		opt(&options)
	}

	sorted := cloneAuthors(items)
	SortBySurname(sorted, options.locale)
	return &MemoryStore{items: sorted}
}

// SortBySurname orders authors in place by surname using the collation
// rules of locale. Authors with equal surnames keep their relative order.
func SortBySurname(authors []Author, locale language.Tag) {
	c := collate.New(locale)
	sort.SliceStable(authors, func(i, j int) bool {
		return c.CompareString(authors[i].Surname, authors[j].Surname) < 0
	})
}

// List returns the catalog in surname order. Each author's works are
// copied as well, so callers may modify the result freely.
func (s *MemoryStore) List() []Author {
	return cloneAuthors(s.items)
}

// Len reports the number of authors.
func (s *MemoryStore) Len() int {
	return len(s.items)
}

// cloneAuthors never returns nil, so an empty catalog encodes as [].
func cloneAuthors(items []Author) []Author {
	authors := make([]Author, len(items))
	for i, author := range items {
		author.Works = append([]Work(nil), author.Works...)
		authors[i] = author
	}
	return authors
}
