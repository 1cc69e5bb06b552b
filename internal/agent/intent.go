package agent

import (
	"strings"

	"moneta/internal/llm"
)

// Intent is the resolved user-request category driving dispatch. The set is
// closed; anything the model labels outside it resolves to IntentNone.
type Intent string

const (
	IntentFilter           Intent = "filter"
	IntentPlotDistribution Intent = "plot_distribution"
	IntentPlotTrend        Intent = "plot_trend"
	IntentNone             Intent = "none"
)

// parseIntent normalizes the model's label into the closed intent set.
// Unrecognized labels (including the model's occasional "unhandled") fall
// back to the conversational path.
func parseIntent(s string) Intent {
	switch Intent(strings.ToLower(strings.TrimSpace(s))) {
	case IntentFilter:
		return IntentFilter
	case IntentPlotDistribution:
		return IntentPlotDistribution
	case IntentPlotTrend:
		return IntentPlotTrend
	default:
		return IntentNone
	}
}

// intentPayload is the typed intermediate the model's intent reply is parsed
// into. Only intent is mandatory; the rest are per-intent parameters.
type intentPayload struct {
	Intent    string `json:"intent" validate:"required"`
	Category  string `json:"category"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func intentSchema() *llm.Schema {
	return llm.Object(map[string]*llm.Schema{
		"intent":     llm.String("One of: 'plot_distribution', 'plot_trend', 'filter', or 'none'."),
		"category":   llm.String("The category to filter by (e.g., 'groceries', 'transport')."),
		"start_date": llm.String("Start date for filter in YYYY-MM-DD format."),
		"end_date":   llm.String("End date for filter in YYYY-MM-DD format."),
	}, "intent")
}
