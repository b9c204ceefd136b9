package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/jrnlctl/internal/datekey"
)

// calendarStyles controls how the month grid under the date picker is drawn.
type calendarStyles struct {
	Header   lipgloss.Style
	Empty    lipgloss.Style
	Entry    lipgloss.Style
	Today    lipgloss.Style
	Selected lipgloss.Style
}

// renderCalendar draws the month containing selected as a Sunday-first grid.
// Days for which hasEntry reports true use the Entry style.
func renderCalendar(selected, today datekey.DateKey, hasEntry func(datekey.DateKey) bool, styles calendarStyles) string {
	if selected.IsZero() {
		return ""
	}

	year, month := selected.Year(), selected.Month()
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := selected.DaysInMonth()

	lines := []string{
		styles.Header.Render(fmt.Sprintf("%-20s", first.Format("January 2006"))),
		styles.Header.Render("Su Mo Tu We Th Fr Sa"),
	}

	offset := int(first.Weekday())
	rows := (offset + days + 6) / 7
	for row := range rows {
		cells := make([]string, 0, 7)
		for col := range 7 {
			day := row*7 + col - offset + 1
			if day < 1 || day > days {
				cells = append(cells, styles.Empty.Render("  "))
				continue
			}
			d := datekey.MustNew(year, month, day)
			cells = append(cells, renderCalendarDay(d, d == today, d == selected, hasEntry(d), styles))
		}
		lines = append(lines, strings.Join(cells, styles.Empty.Render(" ")))
	}

	return strings.Join(lines, "\n")
}

func renderCalendarDay(d datekey.DateKey, isToday, isSelected, hasEntry bool, styles calendarStyles) string {
	style := styles.Empty
	if hasEntry {
		style = styles.Entry
	}
	if isToday {
		style = style.Inherit(styles.Today)
	}
	if isSelected {
		style = styles.Selected.Inherit(style)
	}
	return style.Render(fmt.Sprintf("%2d", d.Day()))
}
