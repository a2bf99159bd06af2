package http

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"despesas/internal/core"
	"despesas/internal/log"
	"despesas/internal/services"
)

const maxBodyBytes = 64 << 10

var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// amountText accepts the amount either as a JSON string or a bare number.
type amountText string

func (a *amountText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = amountText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("amount must be a string or a number: %w", err)
	}
	*a = amountText(n.String())
	return nil
}

type draftRequest struct {
	Description string     `json:"description"`
	Amount      amountText `json:"amount"`
	Payer       string     `json:"payer"`
	Category    string     `json:"category"`
}

func (d draftRequest) toDraft() core.Draft {
	return core.Draft{
		Description: sanitizeInput(d.Description),
		AmountText:  string(d.Amount),
		Payer:       sanitizeInput(d.Payer),
		Category:    sanitizeInput(d.Category),
	}
}

type draftResponse struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Payer       string `json:"payer"`
	Category    string `json:"category"`
}

type expenseResponse struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Payer       string `json:"payer"`
	Category    string `json:"category"`
}

func newExpenseResponse(e core.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount.String(),
		Payer:       e.Payer,
		Category:    e.Category,
	}
}

type amountResponse struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

type reportResponse struct {
	Total      string           `json:"total"`
	ByPayer    []amountResponse `json:"byPayer"`
	ByCategory []amountResponse `json:"byCategory"`
}

func newReportResponse(r core.Report) reportResponse {
	out := reportResponse{
		Total:      r.Total.String(),
		ByPayer:    make([]amountResponse, 0, len(r.ByPayer)),
		ByCategory: make([]amountResponse, 0, len(r.ByCategory)),
	}
	for _, p := range r.ByPayer {
		out.ByPayer = append(out.ByPayer, amountResponse{Name: p.Name, Amount: p.Amount.String()})
	}
	for _, c := range r.ByCategory {
		out.ByCategory = append(out.ByCategory, amountResponse{Name: c.Name, Amount: c.Amount.String()})
	}
	return out
}

type categoryRequest struct {
	Name string `json:"name"`
}

type categoryResponse struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

// writeServiceError maps ledger errors to responses: 422 for rejected drafts,
// 404 for missing expenses, 500 for everything else.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *core.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: verr.Message, Field: verr.Field})
	case services.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: msgExpenseNotFound})
	default:
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Ledger operation failed",
			log.FieldError, err, log.FieldMethod, r.Method, log.FieldPath, r.URL.Path)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgStorageFailure})
	}
}

// pathInt parses a non-negative integer path value.
func pathInt(r *http.Request, name string) (int64, bool) {
	v := strings.TrimSpace(r.PathValue(name))
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// confirmed reports whether the request carries confirm=true.
func confirmed(r *http.Request) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return err == nil && v
}

// sanitizeInput removes control characters except tab and newlines.
// Whitespace is kept so the validation gate sees the text as typed.
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(buf)
}

// requestID reuses a well-formed X-Request-ID header or generates a new id.
func requestID(r *http.Request) string {
	if id := r.Header.Get("X-Request-ID"); requestIDPattern.MatchString(id) {
		return id
	}
	return generateRequestID()
}
