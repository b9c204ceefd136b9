package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/briandowns/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chris-regnier/jrnlctl/internal/config"
	"github.com/chris-regnier/jrnlctl/internal/vault"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readPassword is replaced in tests.
var readPassword = term.ReadPassword

// session is an unlocked journal used by the non-interactive commands.
type session struct {
	store    *vault.Store
	path     string
	password string
	doc      vault.Document
	progress io.Writer
}

// openLog returns a logger writing to the configured log file, or a
// discarding logger when none is set. The returned func closes the file.
func openLog() (*slog.Logger, func(), error) {
	if appConfig == nil || appConfig.LogFile == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := tea.LogToFile(appConfig.LogFile, "jrnlctl")
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, nil)), func() { f.Close() }, nil
}

func newStore(logger *slog.Logger) *vault.Store {
	return vault.New(
		vault.WithKDF(vault.KDFParams{
			Time:    appConfig.KDF.Time,
			Memory:  appConfig.KDF.Memory,
			Threads: appConfig.KDF.Threads,
		}),
		vault.WithMaxSize(appConfig.MaxSize),
		vault.WithLogger(logger),
	)
}

// journalPath returns --file, falling back to default_file.
func journalPath() (string, error) {
	path := filePath
	if path == "" {
		path = appConfig.DefaultFile
	}
	if path == "" {
		return "", errors.New("no journal file: pass --file or set default_file in the config")
	}
	return config.ExpandPath(path), nil
}

// withSession opens the journal and runs fn on it.
func withSession(cmd *cobra.Command, fn func(*session) error) error {
	logger, closeLog, err := openLog()
	if err != nil {
		return err
	}
	defer closeLog()

	path, err := journalPath()
	if err != nil {
		return err
	}
	s, err := openSession(cmd.ErrOrStderr(), newStore(logger), path, givenPassword(cmd))
	if err != nil {
		return err
	}
	return fn(s)
}

// openSession loads path. Without a given password the empty password is
// tried first and the user is prompted only if the journal is protected.
func openSession(w io.Writer, store *vault.Store, path string, password *string) (*session, error) {
	s := &session{store: store, path: path, progress: w}
	if password != nil {
		s.password = *password
	}
	err := s.load()
	if password == nil && errors.Is(err, vault.ErrWrongPassword) {
		s.password, err = promptPassword(w, "Password: ")
		if err != nil {
			return nil, err
		}
		err = s.load()
	}
	if errors.Is(err, vault.ErrInvalidFormat) && !store.Probe(path) {
		return nil, fmt.Errorf("%s is not a jrnlctl journal: %w", path, err)
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return s, nil
}

func (s *session) load() error {
	return withSpinner(s.progress, "Unlocking journal", func() error {
		doc, err := s.store.Load(s.path, s.password)
		s.doc = doc
		return err
	})
}

func (s *session) save() error {
	return withSpinner(s.progress, "Encrypting journal", func() error {
		return s.store.Save(s.doc, s.path, s.password)
	})
}

func promptPassword(w io.Writer, prompt string) (string, error) {
	fmt.Fprint(w, prompt)
	b, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(b), nil
}

// promptNewPassword asks for a password twice.
func promptNewPassword(w io.Writer) (string, error) {
	first, err := promptPassword(w, "New password: ")
	if err != nil {
		return "", err
	}
	second, err := promptPassword(w, "Retype new password: ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errors.New("passwords don't match")
	}
	return first, nil
}

// withSpinner runs fn while a spinner turns on w. Nothing is drawn unless w
// is a terminal.
func withSpinner(w io.Writer, suffix string, fn func() error) error {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return fn()
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(f))
	s.Suffix = " " + suffix
	s.Start()
	defer s.Stop()
	return fn()
}
