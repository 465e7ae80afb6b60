package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avilev/daily-status/internal/config"
	"github.com/avilev/daily-status/internal/sheets"
)

var checkRows int

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify Google Sheets connectivity",
	Long: `check reads a handful of rows from the configured tab using the same
credentials the server uses. It is the CLI twin of GET /api/test-sheets.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().IntVar(&checkRows, "rows", sheets.DefaultReadLimit, "Number of rows to fetch")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	ctx := context.Background()
	store, err := sheets.New(ctx, sheets.Credentials{
		ClientEmail: cfg.GoogleClientEmail,
		PrivateKey:  cfg.GooglePrivateKey,
	}, cfg.SpreadsheetID, cfg.TabName)
	if err != nil {
		return fmt.Errorf("sheets client: %w", err)
	}

	rows, err := store.Read(ctx, checkRows)
	if err != nil {
		return fmt.Errorf("sheet read: %w", err)
	}

	fmt.Printf("Read %d row(s) from tab %q:\n", len(rows), cfg.TabName)
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = fmt.Sprint(c)
		}
		fmt.Println("  " + strings.Join(cells, " | "))
	}
	return nil
}
