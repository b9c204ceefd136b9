package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/chris-regnier/jrnlctl/internal/datekey"
	"github.com/chris-regnier/jrnlctl/internal/vault"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var importOverwrite bool

var importCmd = &cobra.Command{
	Use:   "import FILE...",
	Short: "Import Markdown files as entries",
	Long: `Merge Markdown files into the journal. Each file needs YAML front-matter
with the entry date:

  ---
  date: 01-01-2024
  ---

Existing entries are kept unless --overwrite is given. Nothing is saved if
any file fails to parse.`,
	Example: `  jrnlctl import -f journal.jrnl backup/*.md
  jrnlctl import --overwrite 01-01-2024.md`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(s *session) error {
			res, err := importRun(&s.doc, args, importOverwrite)
			if err != nil {
				return err
			}
			if res.Added+res.Replaced > 0 {
				if err := s.save(); err != nil {
					return fmt.Errorf("saving %s: %w", s.path, err)
				}
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(),
				"Imported %d entries (%d replaced, %d skipped)\n",
				res.Added+res.Replaced, res.Replaced, res.Skipped)
			return nil
		})
	},
}

type importFrontMatter struct {
	Date string `yaml:"date"`
}

type importResult struct {
	Added    int
	Replaced int
	Skipped  int
}

type importedEntry struct {
	date datekey.DateKey
	text string
}

// importRun merges files into doc. All files are parsed before doc is
// touched.
func importRun(doc *vault.Document, files []string, overwrite bool) (importResult, error) {
	var res importResult
	parsed := make([]importedEntry, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return res, fmt.Errorf("reading %s: %w", path, err)
		}
		date, text, err := unmarshalEntry(data)
		if err != nil {
			return res, fmt.Errorf("%s: %w", path, err)
		}
		parsed = append(parsed, importedEntry{date: date, text: text})
	}

	if doc.Entries == nil {
		doc.Entries = make(map[datekey.DateKey]string)
	}
	for _, e := range parsed {
		existing, ok := doc.Entries[e.date]
		switch {
		case !ok:
			res.Added++
		case existing == e.text || !overwrite:
			res.Skipped++
			continue
		default:
			res.Replaced++
		}
		doc.Entries[e.date] = e.text
	}
	return res, nil
}

func unmarshalEntry(data []byte) (datekey.DateKey, string, error) {
	var fm importFrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &fm)
	if err != nil {
		return datekey.DateKey{}, "", fmt.Errorf("parsing front-matter: %w", err)
	}
	if fm.Date == "" {
		return datekey.DateKey{}, "", errors.New("missing date in front-matter")
	}
	date, err := datekey.Parse(fm.Date)
	if err != nil {
		return datekey.DateKey{}, "", err
	}
	text := strings.TrimPrefix(string(body), "\n")
	text = strings.TrimSuffix(text, "\n")
	return date, text, nil
}

func init() {
	importCmd.Flags().BoolVar(&importOverwrite, "overwrite", false, "replace existing entries")
	rootCmd.AddCommand(importCmd)
}
