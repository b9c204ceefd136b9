package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/chris-regnier/jrnlctl/internal/config"
	"github.com/chris-regnier/jrnlctl/internal/datekey"
	"github.com/chris-regnier/jrnlctl/internal/ui"
	"github.com/chris-regnier/jrnlctl/internal/vault"
)

func sampleDoc() vault.Document {
	doc := vault.NewDocument()
	doc.Entries[datekey.MustNew(2024, time.January, 2)] = "Second day\nmore"
	doc.Entries[datekey.MustNew(2024, time.January, 1)] = "Hello"
	doc.Entries[datekey.MustNew(2024, time.January, 3)] = ""
	return doc
}

func TestShowRunJSON(t *testing.T) {
	var buf bytes.Buffer
	date := datekey.MustNew(2024, time.January, 2)
	if err := showRun(&buf, sampleDoc(), date, true, ui.Theme{}); err != nil {
		t.Fatalf("showRun: %v", err)
	}

	var got ui.EntryJSON
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if got.Date != "02-01-2024" || got.Text != "Second day\nmore" {
		t.Errorf("unexpected entry %+v", got)
	}
}

func TestShowRunPlain(t *testing.T) {
	var buf bytes.Buffer
	theme := ui.ResolveTheme(config.ThemeConfig{Preset: "default-dark"})
	if err := showRun(&buf, sampleDoc(), datekey.MustNew(2024, time.January, 1), false, theme); err != nil {
		t.Fatalf("showRun: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "01 January, 2024 (01-01-2024)") {
		t.Errorf("expected date header, got %q", buf.String())
	}
}

func TestShowRunEmptyEntry(t *testing.T) {
	var buf bytes.Buffer
	if err := showRun(&buf, sampleDoc(), datekey.MustNew(2024, time.January, 3), false, ui.Theme{}); err != nil {
		t.Fatalf("showRun: %v", err)
	}
	if !strings.Contains(buf.String(), "(empty entry)") {
		t.Errorf("expected empty marker, got %q", buf.String())
	}
}

func TestShowRunMissingEntry(t *testing.T) {
	err := showRun(&bytes.Buffer{}, sampleDoc(), datekey.MustNew(2023, time.December, 31), false, ui.Theme{})
	if err == nil || !strings.Contains(err.Error(), "31-12-2023") {
		t.Errorf("expected missing entry error, got %v", err)
	}
}

func TestListRun(t *testing.T) {
	var buf bytes.Buffer
	if err := listRun(&buf, sampleDoc(), false); err != nil {
		t.Fatalf("listRun: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", buf.String())
	}
	if lines[0] != "01-01-2024  Hello" {
		t.Errorf("expected oldest first, got %q", lines[0])
	}
	if lines[1] != "02-01-2024  Second day" {
		t.Errorf("expected first line preview, got %q", lines[1])
	}
}

func TestListRunEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := listRun(&buf, vault.NewDocument(), false); err != nil {
		t.Fatalf("listRun: %v", err)
	}
	if !strings.Contains(buf.String(), "No journal entries found.") {
		t.Errorf("expected empty message, got %q", buf.String())
	}

	buf.Reset()
	if err := listRun(&buf, vault.NewDocument(), true); err != nil {
		t.Fatalf("listRun: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("expected empty JSON array, got %q", buf.String())
	}
}

func TestListRunJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := listRun(&buf, sampleDoc(), true); err != nil {
		t.Fatalf("listRun: %v", err)
	}
	var got []ui.EntrySummary
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if len(got) != 3 || got[1].Lines != 2 || got[2].Lines != 0 {
		t.Errorf("unexpected summaries %+v", got)
	}
}

func TestShowAllRunJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := showAllRun(&buf, sampleDoc(), datekey.Today(), true, ui.Theme{}); err != nil {
		t.Fatalf("showAllRun: %v", err)
	}
	var got []ui.EntryJSON
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	want := []string{"01-01-2024", "02-01-2024", "03-01-2024"}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].Date != w {
			t.Errorf("entry %d: expected %s, got %s", i, w, got[i].Date)
		}
	}
}

func TestShowAllRunPlain(t *testing.T) {
	var buf bytes.Buffer
	if err := showAllRun(&buf, sampleDoc(), datekey.MustNew(2024, time.January, 2), false, ui.Theme{}); err != nil {
		t.Fatalf("showAllRun: %v", err)
	}
	out := buf.String()
	first := strings.Index(out, "(01-01-2024)")
	second := strings.Index(out, "(02-01-2024)")
	third := strings.Index(out, "(03-01-2024)")
	if first < 0 || second < first || third < second {
		t.Errorf("expected every entry oldest first, got %q", out)
	}
}

func TestShowAllRunEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := showAllRun(&buf, vault.NewDocument(), datekey.Today(), false, ui.Theme{}); err != nil {
		t.Fatalf("showAllRun: %v", err)
	}
	if !strings.Contains(buf.String(), "No journal entries found.") {
		t.Errorf("expected empty message, got %q", buf.String())
	}
}
