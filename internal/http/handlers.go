package http

import (
	"net/http"

	applog "moneta/internal/log"
	"moneta/internal/query"
	"moneta/internal/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleListExpenses returns the stored records, optionally narrowed by the
// category/tag/start_date/end_date query parameters. Filters combine with AND.
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	matched, total := s.engine.Filter(query.Criteria{
		Category:  q.Get("category"),
		Tag:       q.Get("tag"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	})

	respondJSON(w, http.StatusOK, listResponse{
		Expenses: matched,
		Count:    len(matched),
		Total:    total.String(),
	})
}

// handleCreateExpense inserts one structured expense directly, without the
// language model.
func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Amount == nil {
		respondError(w, http.StatusUnprocessableEntity, "amount is required")
		return
	}

	rec, err := s.store.Add(store.AddRequest{
		Amount:      *req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        req.Date,
		Tags:        req.Tags,
	})
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "amount must be a non-negative number")
		return
	}

	s.log.InfoContext(r.Context(), "expense created",
		applog.FieldOperation, applog.OpAdd,
		applog.FieldRecordID, rec.ID,
		applog.FieldCategory, rec.Category,
		applog.FieldAmountCents, rec.Amount.Cents)
	respondJSON(w, http.StatusCreated, rec)
}

// handleParseExpenses runs natural-language extraction over the request text
// and commits the parsed expenses as one batch. Extraction failures are part
// of the contract: they come back as a 200 with an explanatory message and
// zero items added.
func (s *Server) handleParseExpenses(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Text == "" {
		respondError(w, http.StatusBadRequest, "text is required")
		return
	}

	added, message := s.extractor.ExtractAndStore(r.Context(), req.Text, s.credential)
	respondJSON(w, http.StatusOK, parseResponse{
		Message:    message,
		ItemsAdded: added,
	})
}

// handleAgentQuery resolves the query's intent and executes it, returning the
// agent's message plus a chart when one was produced.
func (s *Server) handleAgentQuery(w http.ResponseWriter, r *http.Request) {
	var req agentQueryRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Query == "" {
		respondError(w, http.StatusBadRequest, "query is required")
		return
	}

	message, ch := s.resolver.ResolveAndExecute(r.Context(), req.Query, s.credential)
	respondJSON(w, http.StatusOK, agentQueryResponse{
		Message: message,
		Chart:   ch,
	})
}
