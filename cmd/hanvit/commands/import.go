package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/educreatorschool-design/hanvitlms/internal/printer"
	"github.com/educreatorschool-design/hanvitlms/pkg/model"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a previously exported JSON snapshot",
	Long: `Import parses an exported snapshot and wholesale-replaces every local
collection. The import fails closed: a malformed file, or one missing the
mandatory users/courses collections, leaves the existing state untouched.

Older export files that lack the notice, Q&A or message collections are
accepted; the missing collections default to empty.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	_, st, files, err := openStore()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	// Persist after a successful import; a rejected import must not touch
	// the stored state either.
	files.Attach(st)

	if err := st.Import(data); err != nil {
		var badSnap *model.ErrBadSnapshot
		if errors.As(err, &badSnap) {
			return printer.Error(
				"Import rejected",
				badSnap.Error(),
				[]string{"Check that the file is an unmodified hanvit export"},
			)
		}
		return err
	}

	printer.Success("Imported state from %s\n", args[0])
	return nil
}
