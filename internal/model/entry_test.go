package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestEntriesSetKeepsPositionOnOverwrite(t *testing.T) {
	e := NewEntries(
		Entry{Name: "a", Password: "1"},
		Entry{Name: "b", Password: "2"},
		Entry{Name: "c", Password: "3"},
	)
	e.Set("a", "updated")

	if e.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", e.Len())
	}
	if got, _ := e.Get("a"); got != "updated" {
		t.Errorf("Get(a) = %q, want %q", got, "updated")
	}
	assertNames(t, e.Names(), "a", "b", "c")
}

func TestEntriesDelete(t *testing.T) {
	e := NewEntries(Entry{Name: "a", Password: "1"}, Entry{Name: "b", Password: "2"})

	if !e.Delete("a") {
		t.Fatal("Delete(a) = false, want true")
	}
	if e.Delete("a") {
		t.Error("second Delete(a) = true, want false")
	}
	if _, ok := e.Get("a"); ok {
		t.Error("Get(a) still present after delete")
	}
	assertNames(t, e.Names(), "b")
}

func TestEntriesZeroValue(t *testing.T) {
	var e Entries
	if _, ok := e.Get("missing"); ok {
		t.Error("Get() on zero value reported present")
	}
	if e.Delete("missing") {
		t.Error("Delete() on zero value reported present")
	}
	e.Set("x", "y")
	if got, _ := e.Get("x"); got != "y" {
		t.Errorf("Get(x) = %q, want %q", got, "y")
	}
}

func TestEntriesCloneIsIndependent(t *testing.T) {
	orig := NewEntries(Entry{Name: "a", Password: "1"})
	clone := orig.Clone()
	clone.Set("b", "2")
	clone.Set("a", "changed")

	if orig.Len() != 1 {
		t.Errorf("original Len() = %d, want 1", orig.Len())
	}
	if got, _ := orig.Get("a"); got != "1" {
		t.Errorf("original Get(a) = %q, want %q", got, "1")
	}
}

func TestEntriesJSONPreservesOrder(t *testing.T) {
	input := `{"zeta":"z","alpha":"a","mid":"m"}`

	var e Entries
	if err := json.Unmarshal([]byte(input), &e); err != nil {
		t.Fatalf("Unmarshal() unexpected error: %v", err)
	}
	assertNames(t, e.Names(), "zeta", "alpha", "mid")

	out, err := json.Marshal(&e)
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	if string(out) != input {
		t.Errorf("Marshal() = %s, want %s", out, input)
	}
}

func TestEntriesJSONEscaping(t *testing.T) {
	e := NewEntries(Entry{Name: `quote"name`, Password: `p\w"d`}, Entry{Name: "", Password: "empty"})

	out, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}

	var back Entries
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("Unmarshal(%s) unexpected error: %v", out, err)
	}
	if got, _ := back.Get(`quote"name`); got != `p\w"d` {
		t.Errorf("escaped value = %q, want %q", got, `p\w"d`)
	}
	if got, ok := back.Get(""); !ok || got != "empty" {
		t.Errorf("empty name = %q, %v; want %q, true", got, ok, "empty")
	}
}

func TestEntriesJSONDuplicateKeys(t *testing.T) {
	var e Entries
	if err := json.Unmarshal([]byte(`{"a":"1","b":"2","a":"3"}`), &e); err != nil {
		t.Fatalf("Unmarshal() unexpected error: %v", err)
	}
	if got, _ := e.Get("a"); got != "3" {
		t.Errorf("Get(a) = %q, want %q", got, "3")
	}
	assertNames(t, e.Names(), "a", "b")
}

func TestEntriesJSONRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"array", `["a","b"]`},
		{"null", `null`},
		{"string", `"text"`},
		{"number value", `{"a":1}`},
		{"null value", `{"a":null}`},
		{"nested object", `{"a":{"b":"c"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e Entries
			err := e.UnmarshalJSON([]byte(tt.input))
			if !errors.Is(err, ErrMalformedEntries) {
				t.Errorf("UnmarshalJSON(%s) error = %v, want ErrMalformedEntries", tt.input, err)
			}
		})
	}
}

func TestEntriesEmptyObject(t *testing.T) {
	var e Entries
	if err := json.Unmarshal([]byte(`{}`), &e); err != nil {
		t.Fatalf("Unmarshal() unexpected error: %v", err)
	}
	if e.Len() != 0 {
		t.Errorf("Len() = %d, want 0", e.Len())
	}

	out, err := json.Marshal(&e)
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	if string(out) != "{}" {
		t.Errorf("Marshal() = %s, want {}", out)
	}
}

func assertNames(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
