package transporthttp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avilev/daily-status/internal/normalize"
	"github.com/avilev/daily-status/internal/submit"
)

type recordingAppender struct {
	rows [][]any
	err  error
}

func (f *recordingAppender) Append(_ context.Context, cells []any) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, cells)
	return nil
}

type stubReader struct {
	rows  [][]any
	err   error
	limit int
}

func (f *stubReader) Read(_ context.Context, limit int) ([][]any, error) {
	f.limit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func newTestAPI(app *recordingAppender, reader *stubReader) *API {
	svc := &submit.Service{
		Normalizer: normalize.New(time.FixedZone("UTC+2", 2*60*60), 2025),
		Storage:    app,
		Now:        func() time.Time { return time.Date(2025, time.September, 1, 15, 13, 0, 0, time.UTC) },
		Log:        log.New(io.Discard),
	}
	return &API{
		Submitter:    svc,
		Reader:       reader,
		MaxBodyBytes: 1 << 20,
		Log:          log.New(io.Discard),
	}
}

func postSubmit(t *testing.T, api *API, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/submit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestSubmitEndToEnd(t *testing.T) {
	app := &recordingAppender{}
	api := newTestAPI(app, &stubReader{})

	rec := postSubmit(t, api, `{
		"email": "user@example.com",
		"activity": "Vacation",
		"location": "Kyiv Office",
		"projects": ["Campaigns"]
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["ok"])
	assert.NotEmpty(t, body["id"])

	require.Len(t, app.rows, 1)
	row := app.rows[0]
	require.Len(t, row, 9)
	assert.Equal(t, "Vacation", row[3], "projects cell is overridden")
	assert.Equal(t, "Home", row[8], "location cell is overridden")
}

func TestSubmitValidationFailure(t *testing.T) {
	app := &recordingAppender{}
	api := newTestAPI(app, &stubReader{})

	rec := postSubmit(t, api, `{"email": "not-an-email", "activity": "Working Day"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["ok"])
	assert.Contains(t, body["error"], "email")
	assert.Empty(t, app.rows, "the pipeline must not run on invalid input")
}

func TestSubmitMalformedJSON(t *testing.T) {
	api := newTestAPI(&recordingAppender{}, &stubReader{})

	rec := postSubmit(t, api, `{"email": `)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["ok"])
}

func TestSubmitRejectsUnknownFields(t *testing.T) {
	api := newTestAPI(&recordingAppender{}, &stubReader{})

	rec := postSubmit(t, api, `{"email": "user@example.com", "activity": "Vacation", "admin": true}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitRequiresJSONContentType(t *testing.T) {
	api := newTestAPI(&recordingAppender{}, &stubReader{})

	req := httptest.NewRequest(http.MethodPost, "/api/submit", strings.NewReader("email=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestSubmitStorageFailureIsNotMaskedAsSuccess(t *testing.T) {
	app := &recordingAppender{err: errors.New("backend unavailable")}
	api := newTestAPI(app, &stubReader{})

	rec := postSubmit(t, api, `{"email": "user@example.com", "activity": "Working Day"}`)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["ok"])
	assert.NotContains(t, body["error"], "backend unavailable", "collaborator detail stays out of client responses")
}

func TestTestSheetsReturnsRows(t *testing.T) {
	reader := &stubReader{rows: [][]any{{"a", "b"}, {"c"}}}
	api := newTestAPI(&recordingAppender{}, reader)

	req := httptest.NewRequest(http.MethodGet, "/api/test-sheets", nil)
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["ok"])
	assert.Len(t, body["rows"], 2)
}

func TestTestSheetsCapsLimit(t *testing.T) {
	reader := &stubReader{}
	api := newTestAPI(&recordingAppender{}, reader)

	req := httptest.NewRequest(http.MethodGet, "/api/test-sheets?limit=500", nil)
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, maxDiagnosticRows, reader.limit)
}

func TestTestSheetsRejectsBadLimit(t *testing.T) {
	api := newTestAPI(&recordingAppender{}, &stubReader{})

	req := httptest.NewRequest(http.MethodGet, "/api/test-sheets?limit=abc", nil)
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTestSheetsReadFailure(t *testing.T) {
	reader := &stubReader{err: errors.New("permission denied")}
	api := newTestAPI(&recordingAppender{}, reader)

	req := httptest.NewRequest(http.MethodGet, "/api/test-sheets", nil)
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["ok"])
}

func TestHealthz(t *testing.T) {
	api := newTestAPI(&recordingAppender{}, &stubReader{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
