package http

import (
	"encoding/json"
	"net/http"

	"moneta/internal/chart"
	"moneta/internal/core"
	applog "moneta/internal/log"
)

const maxBodyBytes = 1 << 20 // 1 MiB

type listResponse struct {
	Expenses []core.Record `json:"expenses"`
	Count    int           `json:"count"`
	Total    string        `json:"total"`
}

// createExpenseRequest uses a pointer amount so a missing field is
// distinguishable from an explicit zero.
type createExpenseRequest struct {
	Amount      *float64 `json:"amount"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Tags        []string `json:"tags"`
}

type parseRequest struct {
	Text string `json:"text"`
}

type parseResponse struct {
	Message    string `json:"message"`
	ItemsAdded int    `json:"items_added"`
}

type agentQueryRequest struct {
	Query string `json:"query"`
}

type agentQueryResponse struct {
	Message string       `json:"message"`
	Chart   *chart.Chart `json:"chart,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// decodeJSON parses the request body into dst. On failure it writes a 400
// and returns false; callers just return.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		s.log.WarnContext(r.Context(), "malformed request body",
			applog.FieldPath, r.URL.Path,
			applog.FieldError, err)
		respondError(w, http.StatusBadRequest, "malformed JSON request body")
		return false
	}
	return true
}
