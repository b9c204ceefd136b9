package cmd

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chris-regnier/jrnlctl/internal/datekey"
	"github.com/chris-regnier/jrnlctl/internal/ui"
	"github.com/chris-regnier/jrnlctl/internal/vault"
	"github.com/spf13/cobra"
)

const showWidth = 80

var showAll bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show journal entries",
	Long: `Print the entry for --date (today by default) rendered as Markdown.
With --all every entry is shown, oldest first; on a terminal the pager opens at
--date and the arrow keys move between entries.`,
	Example: `  jrnlctl show -f journal.jrnl
  jrnlctl show -f journal.jrnl -d 01-01-2024
  jrnlctl show --all
  jrnlctl show -d 01-01-2024 --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := selectedDate()
		if err != nil {
			return err
		}
		return withSession(cmd, func(s *session) error {
			theme := ui.ResolveTheme(appConfig.Theme)
			if showAll {
				return showAllRun(cmd.OutOrStdout(), s.doc, date, jsonOutput, theme)
			}
			return showRun(cmd.OutOrStdout(), s.doc, date, jsonOutput, theme)
		})
	},
}

func showRun(w io.Writer, doc vault.Document, date datekey.DateKey, asJSON bool, theme ui.Theme) error {
	text, ok := doc.Entries[date]
	if !ok {
		return fmt.Errorf("no entry for %s", date)
	}
	if asJSON {
		return ui.FormatJSON(w, ui.EntryJSON{Date: date.String(), Text: text})
	}
	return ui.Page(w, []ui.PagerPage{entryPage(date, text, theme)}, 0, theme, showWidth)
}

// showAllRun shows every entry. The pager starts at date, or at the first
// entry when date has none.
func showAllRun(w io.Writer, doc vault.Document, date datekey.DateKey, asJSON bool, theme ui.Theme) error {
	dates := make([]datekey.DateKey, 0, len(doc.Entries))
	for d := range doc.Entries {
		dates = append(dates, d)
	}
	datekey.Sort(dates)

	if asJSON {
		entries := make([]ui.EntryJSON, len(dates))
		for i, d := range dates {
			entries[i] = ui.EntryJSON{Date: d.String(), Text: doc.Entries[d]}
		}
		return ui.FormatJSON(w, entries)
	}
	if len(dates) == 0 {
		ui.FormatEntryList(w, nil)
		return nil
	}

	pages := make([]ui.PagerPage, len(dates))
	start := 0
	for i, d := range dates {
		pages[i] = entryPage(d, doc.Entries[d], theme)
		if d == date {
			start = i
		}
	}
	return ui.Page(w, pages, start, theme, showWidth)
}

func entryPage(date datekey.DateKey, text string, theme ui.Theme) ui.PagerPage {
	var buf bytes.Buffer
	ui.FormatEntryFull(&buf, date, text, showWidth, theme.MarkdownStyle)
	return ui.PagerPage{Title: date.Friendly(), Body: buf.String()}
}

func init() {
	showCmd.Flags().BoolVarP(&showAll, "all", "a", false, "show every entry")
	rootCmd.AddCommand(showCmd)
}
