// Package store holds the in-memory, append-only expense collection.
//
// The store owns record ids: they start at 1 and increase strictly in
// insertion order, with no gaps or reuse. There are no update or delete
// operations; data lives only for the process lifetime.
package store

import (
	"fmt"
	"strings"
	"sync"

	"moneta/internal/core"
)

// Store is an explicit, self-contained record store. Construct one per
// process (or per test) with New; there is no ambient global state.
type Store struct {
	mu      sync.Mutex
	nextID  int64
	records []core.Record
}

func New() *Store {
	return &Store{nextID: 1}
}

// AddRequest carries the raw inputs for one insertion. Category, description,
// tags and date are normalized by the store; malformed dates fall back to
// today rather than failing.
type AddRequest struct {
	Amount      float64
	Category    string
	Description string
	Date        string
	Tags        []string
}

// Add normalizes the request, assigns the next id and appends the record.
// The only failure mode is core.ErrInvalidAmount for a negative or
// non-finite amount.
func (s *Store) Add(req AddRequest) (core.Record, error) {
	rec, err := normalize(req)
	if err != nil {
		return core.Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = s.nextID
	s.nextID++
	s.records = append(s.records, rec)
	return rec, nil
}

// AddAll commits a batch atomically: every request is validated and
// normalized before any record is appended, so a batch with one bad element
// inserts nothing. Ids within the batch follow insertion order.
func (s *Store) AddAll(reqs []AddRequest) ([]core.Record, error) {
	staged := make([]core.Record, 0, len(reqs))
	for i, req := range reqs {
		rec, err := normalize(req)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		staged = append(staged, rec)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range staged {
		staged[i].ID = s.nextID
		s.nextID++
	}
	s.records = append(s.records, staged...)

	out := make([]core.Record, len(staged))
	copy(out, staged)
	return out, nil
}

// All returns every record in insertion order. The returned slice is a copy;
// callers only ever see derived views of the collection.
func (s *Store) All() []core.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len reports the number of stored records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func normalize(req AddRequest) (core.Record, error) {
	amount, err := core.MoneyFromFloat(req.Amount)
	if err != nil {
		return core.Record{}, err
	}
	return core.Record{
		Amount:      amount,
		Category:    core.NormalizeCategory(req.Category),
		Description: strings.TrimSpace(req.Description),
		Date:        core.DateOrToday(req.Date),
		Tags:        core.NormalizeTags(req.Tags),
	}, nil
}
