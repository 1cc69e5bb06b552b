package agent

import (
	"context"
	"strings"
	"testing"

	"moneta/internal/chart"
	"moneta/internal/llm"
	"moneta/internal/query"
	"moneta/internal/store"
)

func newResolver(t *testing.T, st *store.Store, gen llm.Generator) *Resolver {
	t.Helper()
	return NewResolver(st, query.New(st), chart.NewRenderer(40, 10), gen, nil)
}

func seedStore(t *testing.T) *store.Store {
	t.Helper()
	st := store.New()
	_, err := st.AddAll([]store.AddRequest{
		{Amount: 10, Category: "food", Description: "lunch", Date: "2025-10-01"},
		{Amount: 5, Category: "food", Description: "snack", Date: "2025-10-02"},
		{Amount: 3, Category: "fuel", Description: "petrol", Date: "2025-10-02"},
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return st
}

func TestResolvePlotDistribution(t *testing.T) {
	gen := &fakeGenerator{structuredResp: `{"intent":"plot_distribution"}`}
	r := newResolver(t, seedStore(t), gen)

	msg, ch := r.ResolveAndExecute(context.Background(), "pie chart please", "key")
	if ch == nil {
		t.Fatalf("expected a chart handle, got none (%s)", msg)
	}
	if ch.Kind != chart.KindDistribution {
		t.Fatalf("unexpected chart kind %q", ch.Kind)
	}
	if !strings.Contains(msg, "Chart generated") {
		t.Fatalf("unexpected message: %q", msg)
	}
	if gen.lastSchema == nil || gen.lastSchema.Type != "object" {
		t.Fatalf("expected the intent object schema, got %+v", gen.lastSchema)
	}
}

func TestResolvePlotTrend(t *testing.T) {
	gen := &fakeGenerator{structuredResp: `{"intent":"plot_trend"}`}
	r := newResolver(t, seedStore(t), gen)

	_, ch := r.ResolveAndExecute(context.Background(), "line chart of spending", "key")
	if ch == nil || ch.Kind != chart.KindTrend {
		t.Fatalf("expected a trend chart, got %+v", ch)
	}
}

func TestResolveOnEmptyStoreSkipsDispatch(t *testing.T) {
	gen := &fakeGenerator{structuredResp: `{"intent":"plot_distribution"}`}
	r := newResolver(t, store.New(), gen)

	msg, ch := r.ResolveAndExecute(context.Background(), "pie chart please", "key")
	if ch != nil {
		t.Fatal("no chart may be produced from an empty store")
	}
	if !strings.Contains(msg, "no expenses have been added yet") {
		t.Fatalf("unexpected message: %q", msg)
	}
	if gen.textCalls != 0 {
		t.Fatal("the conversational fallback must not run for a rejected tool intent")
	}
}

func TestResolveFilter(t *testing.T) {
	gen := &fakeGenerator{structuredResp: `{"intent":"filter","category":"Food"}`}
	r := newResolver(t, seedStore(t), gen)

	msg, ch := r.ResolveAndExecute(context.Background(), "show me food expenses", "key")
	if ch != nil {
		t.Fatal("filter must not return a chart")
	}
	if !strings.Contains(msg, "2") || !strings.Contains(msg, "15.00") {
		t.Fatalf("expected count and total in message, got %q", msg)
	}
}

func TestResolveNoneFallsBackToConversation(t *testing.T) {
	gen := &fakeGenerator{
		structuredResp: `{"intent":"none"}`,
		textResp:       "Hello! How can I help with your expenses?",
	}
	r := newResolver(t, seedStore(t), gen)

	msg, ch := r.ResolveAndExecute(context.Background(), "good morning", "key")
	if ch != nil {
		t.Fatal("conversational replies carry no chart")
	}
	if msg != gen.textResp {
		t.Fatalf("expected the conversational reply, got %q", msg)
	}
	if gen.textCalls != 1 {
		t.Fatalf("expected exactly one conversational call, got %d", gen.textCalls)
	}
}

func TestResolveUnrecognizedIntentFallsBack(t *testing.T) {
	gen := &fakeGenerator{
		structuredResp: `{"intent":"unhandled"}`,
		textResp:       "Sorry, could you rephrase that?",
	}
	r := newResolver(t, seedStore(t), gen)

	msg, _ := r.ResolveAndExecute(context.Background(), "do a backflip", "key")
	if msg != gen.textResp {
		t.Fatalf("unrecognized intents must use the conversational path, got %q", msg)
	}
}

func TestResolveMissingCredential(t *testing.T) {
	gen := &fakeGenerator{}
	r := newResolver(t, seedStore(t), gen)

	msg, ch := r.ResolveAndExecute(context.Background(), "pie chart", " ")
	if ch != nil || gen.structuredCalls != 0 {
		t.Fatal("no call may be made without a credential")
	}
	if !strings.Contains(msg, "API key is missing") {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestResolveTransportFailure(t *testing.T) {
	gen := &fakeGenerator{structuredErr: &llm.TransportError{StatusCode: 500, Message: "boom"}}
	r := newResolver(t, seedStore(t), gen)

	msg, ch := r.ResolveAndExecute(context.Background(), "pie chart", "key")
	if ch != nil || msg != msgInternalError {
		t.Fatalf("expected internal error message, got %q (chart=%v)", msg, ch)
	}
}

func TestResolveMalformedIntentReply(t *testing.T) {
	cases := map[string]string{
		"not json":       `pie chart sounds great`,
		"missing intent": `{"category":"food"}`,
	}
	for name, resp := range cases {
		t.Run(name, func(t *testing.T) {
			gen := &fakeGenerator{structuredResp: resp}
			r := newResolver(t, seedStore(t), gen)

			msg, ch := r.ResolveAndExecute(context.Background(), "pie chart", "key")
			if ch != nil || msg != msgInternalError {
				t.Fatalf("expected internal error message, got %q", msg)
			}
		})
	}
}

func TestResolveConversationalFailure(t *testing.T) {
	gen := &fakeGenerator{
		structuredResp: `{"intent":"none"}`,
		textErr:        &llm.TransportError{StatusCode: 503, Message: "down"},
	}
	r := newResolver(t, seedStore(t), gen)

	msg, _ := r.ResolveAndExecute(context.Background(), "hi", "key")
	if msg != msgInternalError {
		t.Fatalf("fallback failures are internal errors too, got %q", msg)
	}
}

func TestParseIntent(t *testing.T) {
	cases := map[string]Intent{
		"filter":            IntentFilter,
		" PLOT_TREND ":      IntentPlotTrend,
		"plot_distribution": IntentPlotDistribution,
		"none":              IntentNone,
		"unhandled":         IntentNone,
		"":                  IntentNone,
	}
	for in, want := range cases {
		if got := parseIntent(in); got != want {
			t.Fatalf("%q: expected %q, got %q", in, want, got)
		}
	}
}
