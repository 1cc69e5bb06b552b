// Package query implements filtering and aggregation over the record store.
package query

import (
	"errors"
	"slices"
	"sort"
	"strings"

	"moneta/internal/core"
	"moneta/internal/store"
)

// ErrInsufficientData signals an aggregation over an empty store. It is
// distinct from a populated-but-zero-sum result: callers must render a
// "not enough data" message instead of an empty chart.
var ErrInsufficientData = errors.New("not enough data")

type Engine struct {
	store *store.Store
}

func New(s *store.Store) *Engine {
	return &Engine{store: s}
}

// Criteria are combined with AND semantics; empty fields are not applied.
// Date bounds are inclusive and malformed bounds fall back to today, the
// same rule applied to dates at insertion.
type Criteria struct {
	Category  string
	Tag       string
	StartDate string
	EndDate   string
}

// Filter returns the records matching all supplied criteria, in insertion
// order, together with the sum of their amounts.
func (e *Engine) Filter(c Criteria) ([]core.Record, core.Money) {
	category := core.NormalizeCategory(c.Category)
	tag := core.NormalizeCategory(c.Tag)

	var start, end core.Date
	if strings.TrimSpace(c.StartDate) != "" {
		start = core.DateOrToday(c.StartDate)
	}
	if strings.TrimSpace(c.EndDate) != "" {
		end = core.DateOrToday(c.EndDate)
	}

	matched := []core.Record{}
	var total core.Money
	for _, rec := range e.store.All() {
		if category != "" && rec.Category != category {
			continue
		}
		if tag != "" && !slices.Contains(rec.Tags, tag) {
			continue
		}
		if !start.IsZero() && rec.Date.Before(start.Time) {
			continue
		}
		if !end.IsZero() && rec.Date.After(end.Time) {
			continue
		}
		matched = append(matched, rec)
		total = total.Add(rec.Amount)
	}
	return matched, total
}

// ByCategory groups all records by normalized category, summing amounts.
func (e *Engine) ByCategory() (map[string]core.Money, error) {
	all := e.store.All()
	if len(all) == 0 {
		return nil, ErrInsufficientData
	}
	totals := make(map[string]core.Money)
	for _, rec := range all {
		totals[rec.Category] = totals[rec.Category].Add(rec.Amount)
	}
	return totals, nil
}

// DateTotal is one point of the daily spending trend.
type DateTotal struct {
	Date  core.Date  `json:"date"`
	Total core.Money `json:"total"`
}

// ByDate groups all records by date, summing amounts, ordered
// chronologically.
func (e *Engine) ByDate() ([]DateTotal, error) {
	all := e.store.All()
	if len(all) == 0 {
		return nil, ErrInsufficientData
	}
	byDay := make(map[string]DateTotal)
	for _, rec := range all {
		key := rec.Date.String()
		dt := byDay[key]
		dt.Date = rec.Date
		dt.Total = dt.Total.Add(rec.Amount)
		byDay[key] = dt
	}
	out := make([]DateTotal, 0, len(byDay))
	for _, dt := range byDay {
		out = append(out, dt)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date.Time)
	})
	return out, nil
}
