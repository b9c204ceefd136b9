package ui

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chris-regnier/jrnlctl/internal/journal"
)

// textBuffer is the editable text of one journal entry, backed by a bubbles
// textarea. text holds the entry as stored until the textarea changes it, so
// an entry that is only viewed is saved back byte for byte.
type textBuffer struct {
	area     textarea.Model
	text     string
	readOnly bool
}

var _ journal.Buffer = (*textBuffer)(nil)

func newTextBuffer() *textBuffer {
	ta := textarea.New()
	ta.Placeholder = "Dear diary..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Prompt = ""
	ta.Focus()
	return &textBuffer{area: ta}
}

// Lines implements journal.Buffer.
func (b *textBuffer) Lines() []string {
	return journal.SplitLines(b.text)
}

// LoadFrom implements journal.Buffer. Text the textarea would alter (tabs,
// carriage returns, control characters, or more lines than it holds) is kept
// as is and the buffer becomes read-only.
func (b *textBuffer) LoadFrom(lines []string) {
	b.text = journal.JoinLines(lines)
	b.area.SetValue(b.text)
	b.readOnly = b.area.Value() != b.text
}

// ReadOnly reports whether edits are refused because the textarea cannot show
// the entry unchanged.
func (b *textBuffer) ReadOnly() bool { return b.readOnly }

// Input forwards msg to the textarea and reports whether the text changed.
// Cursor movement and blinking do not count as a change. On a read-only
// buffer any change is undone.
func (b *textBuffer) Input(msg tea.Msg) (bool, tea.Cmd) {
	before := b.area.Value()
	var cmd tea.Cmd
	b.area, cmd = b.area.Update(msg)
	after := b.area.Value()
	if after == before {
		return false, cmd
	}
	if b.readOnly {
		b.area.SetValue(b.text)
		return false, cmd
	}
	b.text = after
	return true, cmd
}

// SetSize resizes the visible editing area.
func (b *textBuffer) SetSize(width, height int) {
	b.area.SetWidth(max(width, 1))
	b.area.SetHeight(max(height, 1))
}

func (b *textBuffer) View() string {
	return b.area.View()
}
