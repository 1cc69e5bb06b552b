// Package agent turns free-form user text into store operations through the
// structured-generation port: bulk extraction of expenses, and single-intent
// resolution with local dispatch.
//
// No error leaves this package: every failure is converted into a
// user-facing message at the boundary.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	applog "moneta/internal/log"
	"moneta/internal/llm"
	"moneta/internal/store"
)

const extractionInstruction = "You are an expense parser. Your task is to extract all individual expenses " +
	"from the user's raw text input, even if the user provides a list (e.g., 'potatoes 2.50\\nlimes 3.32'). " +
	"For each item, determine the amount, a suitable financial category (e.g., Groceries, Transport, Bills), " +
	"a description, and the date (default to today if not provided). " +
	"ALWAYS respond with a JSON array that strictly matches the required schema. " +
	"If no expenses are found, return an empty array."

// extractedItem mirrors one element of the expense-array schema. Amount is a
// pointer so a missing field is distinguishable from an explicit zero.
type extractedItem struct {
	Amount      *float64 `json:"amount" validate:"required,gte=0"`
	Category    string   `json:"category" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Date        string   `json:"date"`
}

func expenseSchema() *llm.Schema {
	return llm.Array(llm.Object(map[string]*llm.Schema{
		"amount":      llm.Number("The monetary amount."),
		"category":    llm.String("The financial category."),
		"description": llm.String("A short, descriptive name."),
		"date":        llm.String("Date in YYYY-MM-DD format."),
	}, "amount", "category", "description", "date"))
}

// Extractor converts one block of free-form text into validated store
// insertions via a schema-constrained generation call.
type Extractor struct {
	store    *store.Store
	gen      llm.Generator
	validate *validator.Validate
	log      *applog.Logger
}

func NewExtractor(st *store.Store, gen llm.Generator, logger *applog.Logger) *Extractor {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &Extractor{
		store:    st,
		gen:      gen,
		validate: validator.New(),
		log:      logger,
	}
}

// ExtractAndStore extracts expenses from text and commits them as one
// atomic batch. It returns the number of records added and a user-facing
// message; failures add nothing and are reported in the message.
func (e *Extractor) ExtractAndStore(ctx context.Context, text, credential string) (int, string) {
	if strings.TrimSpace(credential) == "" {
		return 0, msgMissingCredential
	}

	raw, err := e.gen.GenerateStructured(ctx, credential, extractionInstruction, text, expenseSchema())
	if err != nil {
		e.log.ErrorContext(ctx, "extraction call failed",
			applog.FieldOperation, applog.OpExtract,
			applog.FieldError, err)
		return 0, extractionFailureMessage(err)
	}

	var items []extractedItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		e.log.WarnContext(ctx, "extraction reply is not a JSON array",
			applog.FieldOperation, applog.OpExtract,
			applog.FieldError, err)
		return 0, "Extraction failed: the model did not return a JSON array of expenses; nothing was added."
	}

	// All-or-nothing: every element is validated before any insertion, and
	// the failure message names the offending positions.
	var bad []string
	reqs := make([]store.AddRequest, 0, len(items))
	for i, item := range items {
		if err := e.validate.Struct(&item); err != nil {
			bad = append(bad, strconv.Itoa(i+1))
			continue
		}
		reqs = append(reqs, store.AddRequest{
			Amount:      *item.Amount,
			Category:    item.Category,
			Description: item.Description,
			Date:        item.Date,
		})
	}
	if len(bad) > 0 {
		return 0, fmt.Sprintf(
			"Extraction failed: %d of %d items were invalid or missing required fields (item %s); nothing was added.",
			len(bad), len(items), strings.Join(bad, ", "))
	}

	added, err := e.store.AddAll(reqs)
	if err != nil {
		// Unreachable for schema-valid batches; kept for the store contract.
		return 0, fmt.Sprintf("Extraction failed: %v; nothing was added.", err)
	}

	e.log.InfoContext(ctx, "expenses extracted",
		applog.FieldOperation, applog.OpExtract,
		applog.FieldItemsAdded, len(added))
	return len(added), fmt.Sprintf("Successfully parsed and added %d expense(s).", len(added))
}

const msgMissingCredential = "API key is missing; no request was made."

func extractionFailureMessage(err error) string {
	var te *llm.TransportError
	switch {
	case errors.Is(err, llm.ErrMissingCredential):
		return msgMissingCredential
	case errors.Is(err, llm.ErrMalformedResponse):
		return "Extraction failed: the model returned an unreadable response; nothing was added."
	case errors.As(err, &te):
		return "Extraction failed: could not reach the language model; nothing was added."
	default:
		return "Extraction failed: an internal error occurred; nothing was added."
	}
}
