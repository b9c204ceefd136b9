package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const mismatchMessage = "Passwords don't match"

func newPasswordInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.Prompt = "> "
	ti.Focus()
	return ti
}

// formResult is the outcome of feeding a key to a passwordForm.
type formResult int

const (
	formPending formResult = iota
	formDone
	formCancelled
)

// passwordForm asks for a new password twice. A mismatch clears both inputs
// and starts over.
type passwordForm struct {
	first    textinput.Model
	second   textinput.Model
	retyping bool
	err      string
}

func newPasswordForm() passwordForm {
	f := passwordForm{
		first:  newPasswordInput("New password"),
		second: newPasswordInput("Retype password"),
	}
	f.second.Blur()
	return f
}

// Password returns the confirmed password. It is only meaningful after the
// form reported formDone.
func (f passwordForm) Password() string {
	return f.first.Value()
}

func (f passwordForm) update(msg tea.KeyMsg) (passwordForm, formResult, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return newPasswordForm(), formCancelled, nil
	case "enter":
		if !f.retyping {
			f.retyping = true
			f.err = ""
			f.first.Blur()
			cmd := f.second.Focus()
			return f, formPending, cmd
		}
		if f.first.Value() != f.second.Value() {
			f = newPasswordForm()
			f.err = mismatchMessage
			return f, formPending, nil
		}
		return f, formDone, nil
	}

	var cmd tea.Cmd
	if f.retyping {
		f.second, cmd = f.second.Update(msg)
	} else {
		f.first, cmd = f.first.Update(msg)
	}
	return f, formPending, cmd
}

func (f passwordForm) view() string {
	if f.retyping {
		return f.first.View() + "\n" + f.second.View()
	}
	return f.first.View()
}
