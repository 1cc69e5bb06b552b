package store

import (
	"errors"
	"reflect"
	"testing"

	"moneta/internal/core"
)

func TestAddAssignsStrictlyIncreasingIDs(t *testing.T) {
	s := New()
	for i := 1; i <= 5; i++ {
		rec, err := s.Add(AddRequest{Amount: float64(i), Category: "c", Description: "d"})
		if err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
		if rec.ID != int64(i) {
			t.Fatalf("expected id %d, got %d", i, rec.ID)
		}
	}
	if s.Len() != 5 {
		t.Fatalf("expected 5 records, got %d", s.Len())
	}
}

func TestAddNormalizes(t *testing.T) {
	s := New()
	rec, err := s.Add(AddRequest{
		Amount:      12.345,
		Category:    " Groceries ",
		Description: " Milk ",
		Date:        "bad-date",
		Tags:        []string{"Dairy "},
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if rec.Amount.Cents != 1235 {
		t.Fatalf("expected 1235 cents (half-up), got %d", rec.Amount.Cents)
	}
	if rec.Category != "groceries" {
		t.Fatalf("expected normalized category, got %q", rec.Category)
	}
	if rec.Description != "Milk" {
		t.Fatalf("expected trimmed description, got %q", rec.Description)
	}
	if rec.Date.String() != core.Today().String() {
		t.Fatalf("expected today fallback, got %q", rec.Date.String())
	}
	if !reflect.DeepEqual(rec.Tags, []string{"dairy"}) {
		t.Fatalf("expected normalized tags, got %v", rec.Tags)
	}
}

func TestAddRejectsNegativeAmount(t *testing.T) {
	s := New()
	if _, err := s.Add(AddRequest{Amount: -1, Category: "c", Description: "d"}); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("failed add must not insert, got %d records", s.Len())
	}
}

func TestAddAllIsAtomic(t *testing.T) {
	s := New()
	_, err := s.AddAll([]AddRequest{
		{Amount: 10, Category: "food", Description: "lunch"},
		{Amount: -3, Category: "fuel", Description: "petrol"},
	})
	if !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("batch with a bad element must insert nothing, got %d", s.Len())
	}

	recs, err := s.AddAll([]AddRequest{
		{Amount: 10, Category: "food", Description: "lunch"},
		{Amount: 3, Category: "fuel", Description: "petrol"},
	})
	if err != nil {
		t.Fatalf("addall: %v", err)
	}
	if len(recs) != 2 || recs[0].ID != 1 || recs[1].ID != 2 {
		t.Fatalf("unexpected batch result: %+v", recs)
	}
}

func TestAllReturnsCopyInInsertionOrder(t *testing.T) {
	s := New()
	_, _ = s.Add(AddRequest{Amount: 1, Category: "a", Description: "x"})
	_, _ = s.Add(AddRequest{Amount: 2, Category: "b", Description: "y"})

	all := s.All()
	if len(all) != 2 || all[0].ID != 1 || all[1].ID != 2 {
		t.Fatalf("unexpected order: %+v", all)
	}

	all[0].Category = "mutated"
	if s.All()[0].Category != "a" {
		t.Fatal("All must return a defensive copy")
	}
}
