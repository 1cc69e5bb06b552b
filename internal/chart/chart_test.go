package chart

import (
	"strings"
	"testing"

	"moneta/internal/core"
	"moneta/internal/query"
)

func TestDistribution(t *testing.T) {
	r := NewRenderer(40, 10)
	ch := r.Distribution(map[string]core.Money{
		"food": {Cents: 1500},
		"fuel": {Cents: 300},
	})
	if ch.Kind != KindDistribution {
		t.Fatalf("unexpected kind %q", ch.Kind)
	}
	if ch.Title == "" || strings.TrimSpace(ch.View) == "" {
		t.Fatal("expected a rendered view with a title")
	}
}

func TestTrend(t *testing.T) {
	r := NewRenderer(40, 10)
	ch := r.Trend([]query.DateTotal{
		{Date: core.NewDate(2025, 10, 1), Total: core.Money{Cents: 1000}},
		{Date: core.NewDate(2025, 10, 2), Total: core.Money{Cents: 800}},
	})
	if ch.Kind != KindTrend {
		t.Fatalf("unexpected kind %q", ch.Kind)
	}
	if strings.TrimSpace(ch.View) == "" {
		t.Fatal("expected a rendered view")
	}
}

func TestNewRendererDefaults(t *testing.T) {
	r := NewRenderer(0, -1)
	if r.width != defaultWidth || r.height != defaultHeight {
		t.Fatalf("expected defaults, got %dx%d", r.width, r.height)
	}
}
