package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/chris-regnier/jrnlctl/internal/datekey"
	"github.com/chris-regnier/jrnlctl/internal/vault"
)

const previewWidth = 60

// EntrySummary is a JSON representation for list output.
type EntrySummary struct {
	Date    string `json:"date"`
	Preview string `json:"preview"`
	Lines   int    `json:"lines"`
}

// EntryJSON is a JSON representation of a single entry.
type EntryJSON struct {
	Date string `json:"date"`
	Text string `json:"text"`
}

// ToSummaries converts a journal into list rows in chronological order.
func ToSummaries(doc vault.Document) []EntrySummary {
	dates := make([]datekey.DateKey, 0, len(doc.Entries))
	for d := range doc.Entries {
		dates = append(dates, d)
	}
	datekey.Sort(dates)

	summaries := make([]EntrySummary, len(dates))
	for i, d := range dates {
		text := doc.Entries[d]
		lines := 0
		if text != "" {
			lines = strings.Count(text, "\n") + 1
		}
		summaries[i] = EntrySummary{
			Date:    d.String(),
			Preview: Preview(text, previewWidth),
			Lines:   lines,
		}
	}
	return summaries
}

// FormatEntryList writes one line per entry.
func FormatEntryList(w io.Writer, summaries []EntrySummary) {
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No journal entries found.")
		return
	}
	for _, s := range summaries {
		fmt.Fprintf(w, "%s  %s\n", s.Date, s.Preview)
	}
}

// FormatEntryFull writes an entry with a date header. The markdownStyle
// parameter controls glamour rendering (e.g. "dark", "light").
func FormatEntryFull(w io.Writer, date datekey.DateKey, text string, width int, markdownStyle string) {
	fmt.Fprintf(w, "%s (%s)\n\n", date.Friendly(), date)
	if text == "" {
		fmt.Fprintln(w, "(empty entry)")
		return
	}
	fmt.Fprintln(w, RenderMarkdown(text, width, markdownStyle))
}

// FormatJSON writes any value as JSON to the writer.
func FormatJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
