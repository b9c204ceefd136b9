package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/chris-regnier/jrnlctl/internal/config"
	"github.com/chris-regnier/jrnlctl/internal/datekey"
	"github.com/chris-regnier/jrnlctl/internal/vault"
)

// setupTestEnv resets the command globals and returns a scratch directory.
// The key derivation cost is kept low so tests stay fast.
func setupTestEnv(t *testing.T) string {
	t.Helper()
	appConfig = &config.Config{
		MaxSize: vault.DefaultMaxSize,
		KDF:     config.KDFConfig{Time: 1, Memory: 64, Threads: 1},
		Theme:   config.ThemeConfig{Preset: "default-dark"},
	}
	filePath = ""
	passwordFlag = ""
	dateFlag = ""
	jsonOutput = false
	return t.TempDir()
}

func testStore() *vault.Store {
	return newStore(slog.New(slog.DiscardHandler))
}

// writeJournal saves entries keyed by DD-MM-YYYY to dir/name.
func writeJournal(t *testing.T, dir, name, password string, entries map[string]string) string {
	t.Helper()
	doc := vault.NewDocument()
	for k, v := range entries {
		d, err := datekey.Parse(k)
		if err != nil {
			t.Fatalf("parsing %q: %v", k, err)
		}
		doc.Entries[d] = v
	}
	path := filepath.Join(dir, name)
	if err := testStore().Save(doc, path, password); err != nil {
		t.Fatalf("saving journal: %v", err)
	}
	return path
}

// stubPasswords makes readPassword return answers in order.
func stubPasswords(t *testing.T, answers ...string) *int {
	t.Helper()
	calls := 0
	orig := readPassword
	readPassword = func(int) ([]byte, error) {
		if calls >= len(answers) {
			return nil, errors.New("unexpected password prompt")
		}
		calls++
		return []byte(answers[calls-1]), nil
	}
	t.Cleanup(func() { readPassword = orig })
	return &calls
}

func strPtr(s string) *string { return &s }
