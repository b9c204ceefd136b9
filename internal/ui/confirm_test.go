package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestConfirmModelKeys(t *testing.T) {
	tests := []struct {
		name       string
		key        tea.KeyMsg
		defaultYes bool
		want       bool
	}{
		{"y confirms", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}}, false, true},
		{"Y confirms", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'Y'}}, false, true},
		{"n declines", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}}, true, false},
		{"esc declines", tea.KeyMsg{Type: tea.KeyEsc}, true, false},
		{"enter takes default no", tea.KeyMsg{Type: tea.KeyEnter}, false, false},
		{"enter takes default yes", tea.KeyMsg{Type: tea.KeyEnter}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := confirmModel{prompt: "Continue?", defaultYes: tt.defaultYes}
			updated, cmd := m.Update(tt.key)
			got := updated.(confirmModel)

			if !got.done {
				t.Fatal("expected prompt to be done")
			}
			if got.confirmed != tt.want {
				t.Errorf("confirmed = %v, want %v", got.confirmed, tt.want)
			}
			if cmd == nil {
				t.Error("expected quit command")
			}
		})
	}
}

func TestConfirmModelIgnoresOtherKeys(t *testing.T) {
	m := confirmModel{prompt: "Continue?"}
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if updated.(confirmModel).done || cmd != nil {
		t.Error("expected unrelated key to be ignored")
	}
}

func TestConfirmModelView(t *testing.T) {
	m := confirmModel{prompt: "Re-encrypt journal?", defaultYes: true}
	view := stripANSI(m.View())
	if !strings.Contains(view, "Re-encrypt journal?") || !strings.Contains(view, "[Y/n]") {
		t.Errorf("unexpected view %q", view)
	}
}
