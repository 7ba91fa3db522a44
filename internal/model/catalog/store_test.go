package catalog

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

func authorsWithSurnames(surnames ...string) []Author {
	authors := make([]Author, 0, len(surnames))
	for _, surname := range surnames {
		authors = append(authors, Author{Name: "N", Surname: surname})
	}
	return authors
}

func surnames(authors []Author) []string {
	out := make([]string, 0, len(authors))
	for _, a := range authors {
		out = append(out, a.Surname)
	}
	return out
}

func TestMemoryStoreSortsWithSpanishCollation(t *testing.T) {
	store := NewMemoryStore(authorsWithSurnames("Zorrilla", "Ortega", "Ñíguez", "Núñez", "Dumas", "Álvarez", "alcott"))

	assert.Equal(t,
		[]string{"alcott", "Álvarez", "Dumas", "Núñez", "Ñíguez", "Ortega", "Zorrilla"},
		surnames(store.List()),
	)
}

func TestMemoryStoreSortInvariant(t *testing.T) {
	store := NewMemoryStore(authorsWithSurnames("Pérez Galdós", "Pardo Bazán", "Bécquer", "Alas", "Álvarez Quintero", "de Cervantes", "Dumas hijo", "Dumas"))
	c := collate.New(DefaultLocale)

	list := store.List()
	for i := 1; i < len(list); i++ {
		assert.LessOrEqual(t, c.CompareString(list[i-1].Surname, list[i].Surname), 0,
			"%q sorted before %q", list[i-1].Surname, list[i].Surname)
	}
}

func TestMemoryStoreWithLocale(t *testing.T) {
	// Outside Spanish, ñ is an accented n rather than a letter of its own.
	store := NewMemoryStore(authorsWithSurnames("Núñez", "Ñíguez"), WithLocale(language.English))
	assert.Equal(t, []string{"Ñíguez", "Núñez"}, surnames(store.List()))
}

func TestMemoryStoreSortIsStable(t *testing.T) {
	items := []Author{
		{Name: "Alexandre", Surname: "Dumas"},
		{Name: "Victor", Surname: "Hugo"},
		{Name: "Marie", Surname: "Dumas"},
	}
	store := NewMemoryStore(items)

	list := store.List()
	require.Len(t, list, 3)
	assert.Equal(t, "Alexandre", list[0].Name)
	assert.Equal(t, "Marie", list[1].Name)
	assert.Equal(t, "Hugo", list[2].Surname)
}

func TestMemoryStoreIsImmutable(t *testing.T) {
	items := authorsWithSurnames("Hugo", "Dumas")
	store := NewMemoryStore(items)

	items[0].Surname = "Changed"
	assert.Equal(t, []string{"Dumas", "Hugo"}, surnames(store.List()))

	list := store.List()
	list[0].Surname = "Changed"
	assert.Equal(t, []string{"Dumas", "Hugo"}, surnames(store.List()))
	assert.Equal(t, 2, store.Len())
}

func TestMemoryStoreEmptyCatalogIsArray(t *testing.T) {
	for _, items := range [][]Author{nil, {}} {
		store := NewMemoryStore(items)

		list := store.List()
		assert.NotNil(t, list)

		data, err := json.Marshal(list)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	}
}

func TestMemoryStoreWorksAreNotShared(t *testing.T) {
	authors, err := Load(strings.NewReader(`[{"autor_nombre":"Victor","autor_apellido":"Hugo","obras":[{"titulo":"Los miserables","edicion":1862}]}]`), FormatJSON)
	require.NoError(t, err)
	store := NewMemoryStore(authors)

	authors[0].Works[0] = Work{Edition: ParseEditionYear("1900")}

	list := store.List()
	list[0].Works[0] = Work{Edition: ParseEditionYear("1900")}

	year, ok := store.List()[0].Works[0].Edition.Year()
	require.True(t, ok)
	assert.Equal(t, 1862, year)
}
