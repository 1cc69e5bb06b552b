package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// Date is a calendar date normalized to midnight UTC. Its canonical
	// textual form is YYYY-MM-DD, which sorts lexicographically in
	// chronological order.
	Date struct {
		time.Time
	}

	// Money is a non-negative amount stored as integer cents.
	Money struct {
		Cents int64
	}

	// Record is one stored expense entry. Records are created through the
	// store, never updated in place and never deleted.
	Record struct {
		ID          int64    `json:"id"`
		Amount      Money    `json:"amount"`
		Category    string   `json:"category"`
		Description string   `json:"description"`
		Date        Date     `json:"date"`
		Tags        []string `json:"tags"`
	}
)

var ErrInvalidAmount = errors.New("invalid amount")

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current date.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// DateOrToday parses a YYYY-MM-DD string, falling back to the current date
// when the input is missing or malformed. Dates are never stored as raw
// unparsed strings.
func DateOrToday(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		return Today()
	}
	return d
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// NormalizeCategory trims surrounding whitespace and lower-cases a category
// name. Categories are free-form; there is no fixed enumeration.
func NormalizeCategory(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeTags normalizes each tag like a category, dropping entries that
// are empty after trimming. Order is preserved.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = NormalizeCategory(t)
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}
