package catalog

import (
	"bytes"
	"encoding/json"
)

// Author is a catalog entry together with its published works.
//
// Fields other than the ones below are kept as they appeared in the source
// document and written back unchanged when the author is serialized.
type Author struct {
	Name    string `json:"autor_nombre"`
	Surname string `json:"autor_apellido"`
	Works   []Work `json:"obras"`

	raw json.RawMessage
}

// Work is a published edition. Only the edition year is interpreted; the
// rest of the record (titulo and anything else) is opaque and only reachable
// through Field.
type Work struct {
	Edition EditionYear `json:"edicion"`

	raw json.RawMessage
}

type authorFields Author

type workFields Work

// UnmarshalJSON decodes the known fields and retains the source object.
func (a *Author) UnmarshalJSON(data []byte) error {
	var fields authorFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*a = Author(fields)
	a.raw = compact(data)
	return nil
}

// MarshalJSON returns the source object when the author was decoded from
// one, otherwise the known fields.
func (a Author) MarshalJSON() ([]byte, error) {
	if len(a.raw) > 0 {
		return a.raw, nil
	}
	fields := authorFields(a)
	if fields.Works == nil {
		fields.Works = []Work{}
	}
	return json.Marshal(fields)
}

// UnmarshalJSON decodes the edition year and retains the source object.
func (w *Work) UnmarshalJSON(data []byte) error {
	var fields workFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*w = Work(fields)
	w.raw = compact(data)
	return nil
}

// MarshalJSON mirrors Author.MarshalJSON.
func (w Work) MarshalJSON() ([]byte, error) {
	if len(w.raw) > 0 {
		return w.raw, nil
	}
	return json.Marshal(workFields(w))
}

// Field returns the source value of a work field, whatever its JSON type.
func (w Work) Field(name string) (json.RawMessage, bool) {
	if len(w.raw) == 0 {
		return nil, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(w.raw, &fields); err != nil {
		return nil, false
	}
	value, ok := fields[name]
	return value, ok
}

func compact(data []byte) json.RawMessage {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return append(json.RawMessage(nil), data...)
	}
	return buf.Bytes()
}
