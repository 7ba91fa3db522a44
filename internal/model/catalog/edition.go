package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// EditionYear is the publication year of a work. Source documents carry it
// either as a JSON number or as a string, so both the stored value and a
// requested year are normalized to an integer before they are compared.
type EditionYear struct {
	text  string
	year  int
	valid bool
}

// ParseEditionYear normalizes a textual year. Values that are not integral
// numbers are kept verbatim and only compare equal to the same text.
func ParseEditionYear(raw string) EditionYear {
	text := strings.TrimSpace(raw)
	if year, ok := parseYear(text); ok {
		return EditionYear{text: text, year: year, valid: true}
	}
	return EditionYear{text: text}
}

// Year returns the integer year and whether the value was numeric.
func (y EditionYear) Year() (int, bool) {
	return y.year, y.valid
}

// String returns the trimmed source text.
func (y EditionYear) String() string {
	return y.text
}

// IsZero reports whether no year was present in the source.
func (y EditionYear) IsZero() bool {
	return y.text == "" && !y.valid
}

// Equal compares two years after normalization.
func (y EditionYear) Equal(other EditionYear) bool {
	if y.valid || other.valid {
		return y.valid && other.valid && y.year == other.year
	}
	return y.text == other.text
}

// UnmarshalJSON accepts numbers, strings and null.
func (y *EditionYear) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*y = EditionYear{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("edition year: %w", err)
		}
		*y = ParseEditionYear(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("edition year %s: %w", data, err)
	}
	*y = ParseEditionYear(n.String())
	return nil
}

// MarshalJSON writes numeric years as numbers and anything else as a string.
func (y EditionYear) MarshalJSON() ([]byte, error) {
	if y.valid {
		return []byte(strconv.Itoa(y.year)), nil
	}
	if y.text == "" {
		return []byte("null"), nil
	}
	return json.Marshal(y.text)
}

func parseYear(text string) (int, bool) {
	if text == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(text); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}
