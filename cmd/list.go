package cmd

import (
	"io"

	"github.com/chris-regnier/jrnlctl/internal/ui"
	"github.com/chris-regnier/jrnlctl/internal/vault"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal entries",
	Long:  "List every journaled date with a preview of its first line, oldest first.",
	Example: `  jrnlctl list -f journal.jrnl
  jrnlctl list --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(s *session) error {
			return listRun(cmd.OutOrStdout(), s.doc, jsonOutput)
		})
	},
}

func listRun(w io.Writer, doc vault.Document, asJSON bool) error {
	summaries := ui.ToSummaries(doc)
	if asJSON {
		return ui.FormatJSON(w, summaries)
	}
	ui.FormatEntryList(w, summaries)
	return nil
}

func init() {
	rootCmd.AddCommand(listCmd)
}
