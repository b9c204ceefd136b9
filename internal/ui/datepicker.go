package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chris-regnier/jrnlctl/internal/datekey"
)

type dateField int

const (
	fieldDay dateField = iota
	fieldMonth
	fieldYear
	numDateFields
)

// datePicker edits a date one field at a time. Every step saturates at the
// ends of the representable range.
type datePicker struct {
	date  datekey.DateKey
	focus dateField
}

func newDatePicker(date datekey.DateKey) datePicker {
	return datePicker{date: date}
}

func (p datePicker) step(n int) datePicker {
	switch p.focus {
	case fieldDay:
		p.date = p.date.AddDays(n)
	case fieldMonth:
		p.date = p.date.AddMonths(n)
	case fieldYear:
		p.date = p.date.AddYears(n)
	}
	return p
}

// update applies a navigation key. Keys it does not handle are ignored.
func (p datePicker) update(msg tea.KeyMsg) datePicker {
	switch msg.String() {
	case "+", " ", "up", "k":
		return p.step(1)
	case "-", "down", "j":
		return p.step(-1)
	case "right", "tab", "l":
		p.focus = (p.focus + 1) % numDateFields
	case "left", "shift+tab", "h":
		p.focus = (p.focus + numDateFields - 1) % numDateFields
	}
	return p
}

func (p datePicker) view(theme Theme, today datekey.DateKey, hasEntry func(datekey.DateKey) bool) string {
	fields := []string{
		fmt.Sprintf("%02d", p.date.Day()),
		p.date.Month().String(),
		fmt.Sprintf("%04d", p.date.Year()),
	}
	for i, f := range fields {
		if dateField(i) == p.focus {
			fields[i] = theme.SelectedStyle().Render(" " + f + " ")
		} else {
			fields[i] = theme.ViewPaneStyle().Render(" " + f + " ")
		}
	}

	var b strings.Builder
	b.WriteString(theme.HeaderStyle().Render("Go to date"))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(fields, theme.ViewPaneStyle().Render(" ")))
	b.WriteString("\n\n")
	b.WriteString(renderCalendar(p.date, today, hasEntry, theme.calendar()))
	return b.String()
}
