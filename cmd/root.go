package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "daily-status",
	Short: "Daily status intake service",
	Long: `daily-status receives daily status submissions over HTTP, normalizes
them into a fixed nine-cell row, and appends them to a shared Google
Sheets tab. A confirmation email is sent when a mail provider is
configured.`,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
}
