package core

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestDateOrToday(t *testing.T) {
	d := DateOrToday("2025-10-24")
	if d.String() != "2025-10-24" {
		t.Fatalf("expected canonical form, got %q", d.String())
	}

	for _, in := range []string{"", "bad-date", "24 October 2025", "2025-13-40"} {
		if got := DateOrToday(in); got.String() != Today().String() {
			t.Fatalf("%q: expected today fallback, got %q", in, got.String())
		}
	}
}

func TestNormalizeCategory(t *testing.T) {
	if got := NormalizeCategory("  Groceries "); got != "groceries" {
		t.Fatalf("expected %q, got %q", "groceries", got)
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{"Dairy ", " WEEKLY", "", "  "})
	want := []string{"dairy", "weekly"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestRecordJSONShape(t *testing.T) {
	rec := Record{
		ID:          1,
		Amount:      Money{Cents: 1235},
		Category:    "groceries",
		Description: "Milk",
		Date:        NewDate(2025, 10, 24),
		Tags:        []string{"dairy"},
	}
	b, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":1,"amount":12.35,"category":"groceries","description":"Milk","date":"2025-10-24","tags":["dairy"]}`
	if string(b) != want {
		t.Fatalf("unexpected JSON:\n got %s\nwant %s", b, want)
	}
}
