package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/educreatorschool-design/hanvitlms/internal/printer"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all collections to a JSON snapshot file",
	Long: `Export serializes every collection (users, courses, submissions,
notices, Q&A, messages) to a JSON file. The current session is excluded.

The default filename carries today's date, e.g. hanvit-export-2026-08-31.json.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: hanvit-export-<date>.json)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	_, st, _, err := openStore()
	if err != nil {
		return err
	}

	data, err := st.Export()
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	out := exportOutput
	if out == "" {
		out = fmt.Sprintf("hanvit-export-%s.json", time.Now().Format("2006-01-02"))
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	printer.Success("Exported state to %s\n", out)
	return nil
}
