package transporthttp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/avilev/daily-status/internal/model"
	"github.com/avilev/daily-status/internal/normalize"
	"github.com/avilev/daily-status/internal/validate"
)

// maxDiagnosticRows caps the diagnostic read regardless of the query.
const maxDiagnosticRows = 10

// Submitter runs the submission pipeline for one validated submission
// and returns its reference ID.
type Submitter interface {
	Submit(ctx context.Context, sub model.Submission) (string, error)
}

// RowReader is the diagnostic slice of the storage collaborator.
type RowReader interface {
	Read(ctx context.Context, limit int) ([][]any, error)
}

// API holds the handler dependencies for the submission endpoints.
type API struct {
	Submitter    Submitter
	Reader       RowReader
	MaxBodyBytes int64
	Log          *log.Logger
}

type submitResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id,omitempty"`
}

type rowsResponse struct {
	OK   bool    `json:"ok"`
	Rows [][]any `json:"rows"`
}

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// Router wires the endpoints with their middleware.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(requestLogger(a.Log))
	r.Use(chimw.Recoverer)

	r.Get("/healthz", a.handleHealthz)
	r.Route("/api", func(r chi.Router) {
		r.With(bodyLimit(a.MaxBodyBytes), requireJSON).Post("/submit", a.handleSubmit)
		r.Get("/test-sheets", a.handleTestSheets)
	})
	return r
}

func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSubmit runs the full pipeline: decode, validate, submit.
// Validation failures never reach the submitter.
func (a *API) handleSubmit(w http.ResponseWriter, r *http.Request) {
	defer drainBody(r)

	var req validate.Request
	if err := decodeJSONStrict(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	sub, err := validate.Submission(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := a.Submitter.Submit(r.Context(), sub)
	if err != nil {
		// Detail stays in the server logs; the submitter already
		// logged it with full context.
		var nerr *normalize.Error
		status := http.StatusBadGateway
		if errors.As(err, &nerr) {
			status = http.StatusInternalServerError
		}
		writeError(w, status, "could not record your status, please try again")
		return
	}

	writeJSON(w, http.StatusOK, submitResponse{OK: true, ID: id})
}

// handleTestSheets reads a handful of raw rows for connectivity
// verification. Not part of the submission pipeline.
func (a *API) handleTestSheets(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	if limit > maxDiagnosticRows {
		limit = maxDiagnosticRows
	}

	rows, err := a.Reader.Read(r.Context(), limit)
	if err != nil {
		a.Log.Error("diagnostic sheet read failed", "err", err)
		writeError(w, http.StatusInternalServerError, "sheet read failed")
		return
	}
	writeJSON(w, http.StatusOK, rowsResponse{OK: true, Rows: rows})
}

func decodeJSONStrict(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{OK: false, Error: msg})
}
