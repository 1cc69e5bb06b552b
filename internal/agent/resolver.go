package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"moneta/internal/chart"
	applog "moneta/internal/log"
	"moneta/internal/llm"
	"moneta/internal/query"
	"moneta/internal/store"
)

const intentInstruction = "You are an intelligent data agent. Analyze the user's request and determine the user's intent: " +
	"'plot_distribution' (for pie/bar charts), 'plot_trend' (for line charts), 'filter' (for specific data requests), " +
	"or 'none' (for greetings/other questions). Extract any relevant parameters like category or dates. " +
	"Respond ONLY with a single JSON object matching the required schema. Do not output any other text."

// Resolver maps one free-form query to exactly one local action via a
// schema-constrained intent call, then executes it. Each invocation is
// independent; the resolver holds no cross-invocation state.
type Resolver struct {
	store    *store.Store
	engine   *query.Engine
	charts   *chart.Renderer
	gen      llm.Generator
	validate *validator.Validate
	log      *applog.Logger
}

func NewResolver(st *store.Store, engine *query.Engine, charts *chart.Renderer, gen llm.Generator, logger *applog.Logger) *Resolver {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &Resolver{
		store:    st,
		engine:   engine,
		charts:   charts,
		gen:      gen,
		validate: validator.New(),
		log:      logger,
	}
}

// ResolveAndExecute resolves the query's intent and runs the matching local
// action. It always returns a user-facing message and, for chart intents on
// sufficient data, a chart handle.
func (r *Resolver) ResolveAndExecute(ctx context.Context, userQuery, credential string) (string, *chart.Chart) {
	if strings.TrimSpace(credential) == "" {
		return msgMissingCredential, nil
	}

	raw, err := r.gen.GenerateStructured(ctx, credential, intentInstruction, userQuery, intentSchema())
	if err != nil {
		r.log.ErrorContext(ctx, "intent call failed",
			applog.FieldOperation, applog.OpResolve,
			applog.FieldError, err)
		return msgInternalError, nil
	}

	var payload intentPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		r.log.WarnContext(ctx, "intent reply is not a JSON object",
			applog.FieldOperation, applog.OpResolve,
			applog.FieldError, err)
		return msgInternalError, nil
	}
	if err := r.validate.Struct(&payload); err != nil {
		r.log.WarnContext(ctx, "intent reply is missing required fields",
			applog.FieldOperation, applog.OpResolve,
			applog.FieldError, err)
		return msgInternalError, nil
	}

	intent := parseIntent(payload.Intent)
	r.log.InfoContext(ctx, "intent resolved",
		applog.FieldOperation, applog.OpResolve,
		applog.FieldIntent, string(intent))

	// Data-backed intents require existing records; the dispatch is not
	// invoked on an empty store.
	switch intent {
	case IntentFilter, IntentPlotDistribution, IntentPlotTrend:
		if r.store.Len() == 0 {
			return fmt.Sprintf("'%s' could not run: no expenses have been added yet.", intent), nil
		}
	}

	switch intent {
	case IntentFilter:
		matched, total := r.engine.Filter(query.Criteria{
			Category:  payload.Category,
			StartDate: payload.StartDate,
			EndDate:   payload.EndDate,
		})
		return fmt.Sprintf("Done! Found %d expense(s) totaling $%s.", len(matched), total), nil

	case IntentPlotDistribution:
		totals, err := r.engine.ByCategory()
		if err != nil {
			return "Charting failed: not enough data to generate the category distribution chart.", nil
		}
		return "Done! Chart generated successfully.", r.charts.Distribution(totals)

	case IntentPlotTrend:
		points, err := r.engine.ByDate()
		if err != nil {
			return "Charting failed: not enough data to generate the spending trend chart.", nil
		}
		return "Done! Chart generated successfully.", r.charts.Trend(points)

	case IntentNone:
		return r.converse(ctx, userQuery, credential), nil
	}

	// parseIntent is total over the closed set above.
	return msgInternalError, nil
}

// converse issues the second, unconstrained call for greetings and anything
// outside the tool set.
func (r *Resolver) converse(ctx context.Context, userQuery, credential string) string {
	reply, err := r.gen.GenerateText(ctx, credential,
		"Generate a short, friendly response to this query: "+userQuery)
	if err != nil {
		r.log.ErrorContext(ctx, "conversational call failed",
			applog.FieldOperation, applog.OpResolve,
			applog.FieldError, err)
		return msgInternalError
	}
	return reply
}

const msgInternalError = "An internal error occurred while handling the request."
