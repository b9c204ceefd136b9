package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chris-regnier/jrnlctl/internal/config"
	"github.com/chris-regnier/jrnlctl/internal/datekey"
	"github.com/chris-regnier/jrnlctl/internal/vault"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export entries as Markdown files",
	Long: `Write every entry to DIR/DD-MM-YYYY.md with the date in YAML front-matter.
The files are plain text; keep them somewhere safe.`,
	Example: `  jrnlctl export -f journal.jrnl --out ./backup`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(s *session) error {
			n, err := exportRun(s.doc, config.ExpandPath(exportDir))
			if err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", n, exportDir)
			return nil
		})
	},
}

func exportRun(doc vault.Document, dir string) (int, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return 0, fmt.Errorf("creating %s: %w", dir, err)
	}

	dates := make([]datekey.DateKey, 0, len(doc.Entries))
	for d := range doc.Entries {
		dates = append(dates, d)
	}
	datekey.Sort(dates)

	for _, d := range dates {
		path := filepath.Join(dir, d.String()+".md")
		if err := os.WriteFile(path, marshalEntry(d, doc.Entries[d]), 0o600); err != nil {
			return 0, fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return len(dates), nil
}

func marshalEntry(date datekey.DateKey, text string) []byte {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "date: %s\n", date)
	b.WriteString("---\n\n")
	b.WriteString(text)
	b.WriteString("\n")
	return []byte(b.String())
}

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "out", "o", ".", "output directory")
	rootCmd.AddCommand(exportCmd)
}
