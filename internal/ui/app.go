package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chris-regnier/jrnlctl/internal/datekey"
	"github.com/chris-regnier/jrnlctl/internal/journal"
	"github.com/chris-regnier/jrnlctl/internal/vault"
)

// State is the mode the App is in.
type State int

const (
	StateGetFile State = iota
	StatePassword
	StateEdit
	StateSetDate
	StateDelete
	StateAskToSave
	StateExit
)

func (s State) String() string {
	switch s {
	case StateGetFile:
		return "get-file"
	case StatePassword:
		return "password"
	case StateEdit:
		return "edit"
	case StateSetDate:
		return "set-date"
	case StateDelete:
		return "delete"
	case StateAskToSave:
		return "ask-to-save"
	case StateExit:
		return "exit"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// fileStep is the sub-step of StateGetFile.
type fileStep int

const (
	stepPath fileStep = iota
	stepConfirmCreate
	stepNewPassword
)

// Store loads and saves journals. *vault.Store implements it.
type Store interface {
	Load(path, password string) (vault.Document, error)
	Save(doc vault.Document, path, password string) error
}

// Options configures a new App.
type Options struct {
	DefaultFile string          // prefilled in the path prompt
	Date        datekey.DateKey // selected date; zero means today
	Theme       Theme
	Logger      *slog.Logger
	MaxWidth    int // maximum content width (0 = no limit)
}

const sidebarWidth = 24

// App is the interactive journal session.
type App struct {
	store  Store
	theme  Theme
	logger *slog.Logger
	state  State

	// GetFile and Password
	step      fileStep
	pathInput textinput.Model
	passInput textinput.Model
	newPass   passwordForm

	// Session, set once a journal is open
	path     string
	password string
	entries  *journal.Model[*textBuffer]
	selected datekey.DateKey
	unsaved  bool

	picker       datePicker
	forcedPicker bool
	sidebar      list.Model

	status    string
	statusErr bool

	width    int
	height   int
	maxWidth int
}

// NewApp returns an App asking for a journal file.
func NewApp(store Store, opts Options) App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	date := opts.Date
	if date.IsZero() {
		date = datekey.Today()
	}

	pathInput := textinput.New()
	pathInput.Placeholder = "path/to/journal.jrnl"
	pathInput.Prompt = "> "
	pathInput.SetValue(opts.DefaultFile)
	pathInput.Focus()

	a := App{
		store:     store,
		theme:     opts.Theme,
		logger:    logger,
		state:     StateGetFile,
		pathInput: pathInput,
		passInput: newPasswordInput("Password"),
		newPass:   newPasswordForm(),
		selected:  date,
		maxWidth:  opts.MaxWidth,
	}
	a.sidebar = a.newSidebar()
	return a
}

// OpenFile starts the session on path with an empty password, the way the
// path prompt does. A protected journal continues at the password prompt and a
// missing one at the create prompt. Any other failure is returned.
func (a App) OpenFile(path string) (App, error) {
	a.pathInput.SetValue(path)
	a.path = path
	doc, err := a.store.Load(path, "")
	switch {
	case err == nil:
		return a.open(doc, ""), nil
	case errors.Is(err, vault.ErrWrongPassword):
		return a.setState(StatePassword), nil
	case errors.Is(err, vault.ErrNotFound):
		a.step = stepConfirmCreate
		return a, nil
	}
	return a, err
}

// Unlock starts the session on path with password. Any failure is returned.
func (a App) Unlock(path, password string) (App, error) {
	a.pathInput.SetValue(path)
	doc, err := a.store.Load(path, password)
	if err != nil {
		return a, err
	}
	a.path = path
	return a.open(doc, password), nil
}

// State returns the current state.
func (a App) State() State { return a.state }

// Unsaved reports whether the journal has changes that were not saved.
func (a App) Unsaved() bool { return a.unsaved }

// Selected returns the selected date.
func (a App) Selected() datekey.DateKey { return a.selected }

// Document snapshots the open journal. It is empty before a journal is open.
func (a App) Document() vault.Document {
	if a.entries == nil {
		return vault.NewDocument()
	}
	return a.entries.Document()
}

func (a App) Init() tea.Cmd {
	return textinput.Blink
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		return a, nil

	case tea.KeyMsg:
		switch a.state {
		case StateGetFile:
			return a.updateGetFile(msg)
		case StatePassword:
			return a.updatePassword(msg)
		case StateEdit:
			return a.updateEdit(msg)
		case StateSetDate:
			return a.updateSetDate(msg)
		case StateDelete:
			return a.updateDelete(msg)
		case StateAskToSave:
			return a.updateAskToSave(msg)
		case StateExit:
			return a, tea.Quit
		}
	}

	// Cursor blinks and other non-key messages go to the focused input.
	var cmd tea.Cmd
	switch a.state {
	case StateGetFile:
		switch a.step {
		case stepPath:
			a.pathInput, cmd = a.pathInput.Update(msg)
		case stepNewPassword:
			if a.newPass.retyping {
				a.newPass.second, cmd = a.newPass.second.Update(msg)
			} else {
				a.newPass.first, cmd = a.newPass.first.Update(msg)
			}
		}
	case StatePassword:
		a.passInput, cmd = a.passInput.Update(msg)
	case StateEdit:
		if b := a.buffer(); b != nil {
			_, cmd = b.Input(msg)
		}
	}
	return a, cmd
}

func (a App) updateGetFile(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.step {
	case stepConfirmCreate:
		switch strings.ToLower(msg.String()) {
		case "y":
			a.step = stepNewPassword
			a.newPass = newPasswordForm()
			a.clearStatus()
			return a, textinput.Blink
		case "n":
			return a.exit()
		case "esc":
			a.step = stepPath
			return a, nil
		}
		return a, nil

	case stepNewPassword:
		form, result, cmd := a.newPass.update(msg)
		a.newPass = form
		switch result {
		case formCancelled:
			a.step = stepPath
			a.clearStatus()
			return a, nil
		case formDone:
			return a.create(form.Password())
		}
		return a, cmd
	}

	switch msg.String() {
	case "esc", "ctrl+c":
		return a.exit()
	case "enter":
		path := strings.TrimSpace(a.pathInput.Value())
		if path == "" {
			a.setError("Enter the path of a journal file")
			return a, nil
		}
		next, err := a.OpenFile(path)
		if err != nil {
			a.logger.Info("open failed", "path", path, "kind", vault.Kind(err))
			a.setError(describe(err))
			return a, nil
		}
		next.clearStatus()
		return next, textinput.Blink
	}

	var cmd tea.Cmd
	a.pathInput, cmd = a.pathInput.Update(msg)
	return a, cmd
}

// create writes an empty journal protected by password and opens it.
func (a App) create(password string) (tea.Model, tea.Cmd) {
	doc := vault.NewDocument()
	if err := a.store.Save(doc, a.path, password); err != nil {
		a.logger.Warn("create failed", "path", a.path, "kind", vault.Kind(err))
		a.step = stepPath
		a.newPass = newPasswordForm()
		a.setError(describe(err))
		return a, nil
	}
	a.logger.Info("journal created", "path", a.path)
	a = a.open(doc, password)
	a.setStatus("Created " + a.path)
	return a, nil
}

func (a App) updatePassword(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		return a.exit()
	case "enter":
		password := a.passInput.Value()
		doc, err := a.store.Load(a.path, password)
		if err != nil {
			a.logger.Info("unlock failed", "path", a.path, "kind", vault.Kind(err))
			a.passInput.Reset()
			a.passInput.Placeholder = "Wrong Password"
			if errors.Is(err, vault.ErrWrongPassword) {
				a.clearStatus()
			} else {
				a.setError(describe(err))
			}
			return a, nil
		}
		a.clearStatus()
		return a.open(doc, password), nil
	}

	var cmd tea.Cmd
	a.passInput, cmd = a.passInput.Update(msg)
	return a, cmd
}

func (a App) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		a.save()
		return a, nil
	case "esc", "ctrl+c":
		if !a.unsaved {
			return a.exit()
		}
		return a.setState(StateAskToSave), nil
	case "alt+d":
		a.picker = newDatePicker(a.selected)
		a.forcedPicker = false
		return a.setState(StateSetDate), nil
	case "ctrl+r":
		return a.setState(StateDelete), nil
	}

	changed, cmd := a.buffer().Input(msg)
	if changed {
		a.unsaved = true
		a.refreshSidebar()
	}
	return a, cmd
}

func (a App) updateAskToSave(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "y":
		return a.exit()
	case "n", "esc":
		return a.setState(StateEdit), nil
	case "ctrl+s":
		if a.save() {
			return a.exit()
		}
	}
	return a, nil
}

func (a App) updateSetDate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.selectDate(a.picker.date)
		return a.setState(StateEdit), nil
	case "esc", "ctrl+c":
		if a.forcedPicker {
			a.selectDate(datekey.Today())
		}
		return a.setState(StateEdit), nil
	}
	a.picker = a.picker.update(msg)
	return a, nil
}

func (a App) updateDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "y":
		a.entries.Remove(a.selected)
		a.unsaved = true
		a.logger.Debug("entry removed", "date", a.selected.String())
		a.picker = newDatePicker(a.selected)
		a.forcedPicker = true
		a.refreshSidebar()
		return a.setState(StateSetDate), nil
	case "n", "esc", "ctrl+c":
		return a.setState(StateEdit), nil
	}
	return a, nil
}

// open adopts doc as the working journal and switches to editing the selected
// date.
func (a App) open(doc vault.Document, password string) App {
	a.password = password
	a.entries = journal.FromDocument(doc, newTextBuffer)
	a.unsaved = false
	a.logger.Info("session opened", "path", a.path, "entries", a.entries.Len())
	a.entries.GetOrCreate(datekey.Today())
	a.selectDate(a.selected)
	return a.setState(StateEdit)
}

// selectDate makes date the edited entry, creating it if needed. Creating an
// empty entry does not mark the journal as changed.
func (a *App) selectDate(date datekey.DateKey) {
	a.selected = date
	if a.entries.GetOrCreate(date).ReadOnly() {
		a.setStatus("This entry has text the editor cannot show unchanged; it is read-only")
	}
	a.layout()
	a.refreshSidebar()
}

// save writes every entry to the journal file. The unsaved flag is only
// cleared when the write succeeds.
func (a *App) save() bool {
	doc := a.entries.Document()
	if err := a.store.Save(doc, a.path, a.password); err != nil {
		a.logger.Warn("save failed", "path", a.path, "kind", vault.Kind(err))
		a.setError("Save failed: " + describe(err))
		return false
	}
	a.unsaved = false
	a.setStatus(fmt.Sprintf("Saved %d entries", len(doc.Entries)))
	return true
}

func (a App) exit() (tea.Model, tea.Cmd) {
	a = a.setState(StateExit)
	return a, tea.Quit
}

func (a App) setState(s State) App {
	if a.state != s {
		a.logger.Debug("state change", "from", a.state.String(), "to", s.String())
	}
	a.state = s
	return a
}

// buffer returns the selected entry, or nil while the selection has none
// (between a delete and the next pick).
func (a App) buffer() *textBuffer {
	if a.entries == nil {
		return nil
	}
	b, _ := a.entries.Get(a.selected)
	return b
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusErr = false
}

func (a *App) setError(s string) {
	a.status = s
	a.statusErr = true
}

func (a *App) clearStatus() {
	a.status = ""
	a.statusErr = false
}

// describe turns a store error into a short message for the status line.
func describe(err error) string {
	switch vault.Kind(err) {
	case vault.ErrWrongPassword:
		return "Wrong password"
	case vault.ErrInvalidFormat:
		return "Not a journal file"
	case vault.ErrOutOfRangeSize:
		return "File is too large"
	case vault.ErrNotFound:
		return "File does not exist"
	}
	return err.Error()
}

// Run starts the interactive session and blocks until it exits.
func Run(a App) error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
