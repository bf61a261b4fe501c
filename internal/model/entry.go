package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// NoSelection is the placeholder name UI-style adapters show before the user
// picks an entry. It never names a stored password.
const NoSelection = ""

// ErrMalformedEntries is returned when stored data is not a JSON object of
// string values.
var ErrMalformedEntries = errors.New("entries must be a JSON object of string values")

// Entry is a single named password.
type Entry struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Entries maps names to passwords and remembers insertion order.
// The zero value is an empty, usable set.
type Entries struct {
	names []string
	index map[string]string
}

// NewEntries builds a set from the given entries, in order.
func NewEntries(entries ...Entry) *Entries {
	e := &Entries{}
	for _, entry := range entries {
		e.Set(entry.Name, entry.Password)
	}
	return e
}

// Len returns the number of entries.
func (e *Entries) Len() int {
	return len(e.names)
}

// Get returns the password stored under name.
func (e *Entries) Get(name string) (string, bool) {
	password, ok := e.index[name]
	return password, ok
}

// Set inserts or overwrites name. An overwritten entry keeps its position.
func (e *Entries) Set(name, password string) {
	if e.index == nil {
		e.index = make(map[string]string)
	}
	if _, exists := e.index[name]; !exists {
		e.names = append(e.names, name)
	}
	e.index[name] = password
}

// Delete removes name and reports whether it was present.
func (e *Entries) Delete(name string) bool {
	if _, ok := e.index[name]; !ok {
		return false
	}
	delete(e.index, name)
	for i, n := range e.names {
		if n == name {
			e.names = append(e.names[:i], e.names[i+1:]...)
			break
		}
	}
	return true
}

// Names returns a copy of the stored names in insertion order.
func (e *Entries) Names() []string {
	names := make([]string, len(e.names))
	copy(names, e.names)
	return names
}

// All returns every entry in insertion order.
func (e *Entries) All() []Entry {
	result := make([]Entry, len(e.names))
	for i, name := range e.names {
		result[i] = Entry{Name: name, Password: e.index[name]}
	}
	return result
}

// Clone returns an independent copy.
func (e *Entries) Clone() *Entries {
	return NewEntries(e.All()...)
}

// MarshalJSON writes the entries as a single JSON object, keys in insertion order.
func (e *Entries) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range e.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(e.index[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object of string values, keeping key order.
// A repeated key takes the last value and the first position.
func (e *Entries) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEntries, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrMalformedEntries
	}

	parsed := &Entries{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedEntries, err)
		}
		name, ok := tok.(string)
		if !ok {
			return ErrMalformedEntries
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("%w: value for %q: %v", ErrMalformedEntries, name, err)
		}
		// Decoding null into a string is a silent no-op, so check the kind first.
		if len(raw) == 0 || raw[0] != '"' {
			return fmt.Errorf("%w: value for %q is not a string", ErrMalformedEntries, name)
		}
		var password string
		if err := json.Unmarshal(raw, &password); err != nil {
			return fmt.Errorf("%w: value for %q: %v", ErrMalformedEntries, name, err)
		}
		parsed.Set(name, password)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEntries, err)
	}
	if _, err := dec.Token(); err == nil {
		return fmt.Errorf("%w: trailing data", ErrMalformedEntries)
	}

	*e = *parsed
	return nil
}

// SaveEntryRequest represents a request to store a password under a name.
// An empty password asks the server to generate one using Generate.
type SaveEntryRequest struct {
	Name     string           `json:"name"`
	Password string           `json:"password"`
	Generate *GenerateRequest `json:"generate,omitempty"`
}

// EntryResponse represents a single recalled entry.
type EntryResponse struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// NamesResponse lists stored entry names in store order.
type NamesResponse struct {
	Names []string `json:"names"`
}
