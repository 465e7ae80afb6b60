package sheets

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// spreadsheetsScope covers both the append and the diagnostic read.
const spreadsheetsScope = "https://www.googleapis.com/auth/spreadsheets"

// DefaultReadLimit is the number of rows the diagnostic read fetches
// when no limit is given.
const DefaultReadLimit = 3

// Credentials identifies the service account used to reach the sheet.
// PrivateKey must be the full PEM block with real line breaks.
type Credentials struct {
	ClientEmail string
	PrivateKey  string
}

// Client wraps the Sheets API for a single spreadsheet tab. It holds
// no per-request state and is safe for concurrent reuse: construct it
// once at startup and share it across requests.
type Client struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	tab           string
}

// New builds an authenticated client for the given spreadsheet and tab.
// The underlying token source fetches and refreshes access tokens
// lazily, so construction itself does no network I/O; credential
// problems surface on the first call instead.
func New(ctx context.Context, creds Credentials, spreadsheetID, tab string) (*Client, error) {
	cfg := &jwt.Config{
		Email:      creds.ClientEmail,
		PrivateKey: []byte(creds.PrivateKey),
		Scopes:     []string{spreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}
	svc, err := sheetsapi.NewService(ctx, option.WithTokenSource(cfg.TokenSource(ctx)))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID, tab: tab}, nil
}

// Append writes one row after the last existing row of the tab. Cells
// are written with USER_ENTERED so the sheet parses dates and numbers
// itself; this service never interprets cell values.
func (c *Client) Append(ctx context.Context, cells []any) error {
	rng := fmt.Sprintf("%s!A:Z", c.tab)
	vr := &sheetsapi.ValueRange{Values: [][]any{cells}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("appending row to %s: %w", rng, err)
	}
	return nil
}

// Read returns up to limit raw rows from the top of the tab. It exists
// for connectivity checks only and is not part of the submission path.
func (c *Client) Read(ctx context.Context, limit int) ([][]any, error) {
	if limit <= 0 {
		limit = DefaultReadLimit
	}
	rng := fmt.Sprintf("%s!A1:Z%d", c.tab, limit)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", rng, err)
	}
	if resp.Values == nil {
		return [][]any{}, nil
	}
	return resp.Values, nil
}
