package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/jrnlctl/internal/datekey"
	"github.com/chris-regnier/jrnlctl/internal/journal"
)

// dateItem implements list.Item for a journaled day.
type dateItem struct {
	date     datekey.DateKey
	preview  string
	selected bool
}

func (d dateItem) Title() string {
	marker := "○"
	if d.selected {
		marker = "●"
	}
	return fmt.Sprintf("%s %s", marker, d.date)
}

func (d dateItem) Description() string { return d.preview }
func (d dateItem) FilterValue() string { return d.date.String() }

// Preview returns the first non-blank line of text, cut to width runes.
func Preview(text string, width int) string {
	for _, line := range journal.SplitLines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		runes := []rune(line)
		if len(runes) > width {
			return string(runes[:width-1]) + "…"
		}
		return line
	}
	return ""
}

func (a App) newSidebar() list.Model {
	l := a.theme.NewList(nil, sidebarWidth, max(a.height-6, 1))
	l.Title = "Entries"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}

// refreshSidebar rebuilds the journaled-dates list and highlights the
// selected date.
func (a *App) refreshSidebar() {
	if a.entries == nil {
		return
	}
	dates := a.entries.Dates()
	items := make([]list.Item, len(dates))
	index := 0
	for i, d := range dates {
		items[i] = dateItem{
			date:     d,
			preview:  Preview(a.entries.Text(d), sidebarWidth-4),
			selected: d == a.selected,
		}
		if d == a.selected {
			index = i
		}
	}
	a.sidebar.SetItems(items)
	a.sidebar.Select(index)
}

// layout sizes the sidebar and the selected entry's editor to the window.
func (a *App) layout() {
	if a.width == 0 || a.height == 0 {
		return
	}
	a.sidebar.SetSize(sidebarWidth, max(a.height-shortcutLines-2, 1))
	if b := a.buffer(); b != nil {
		b.SetSize(a.contentWidth()-sidebarWidth-3, a.height-4)
	}
}

// contentWidth returns the effective content width, respecting MaxWidth configuration.
func (a *App) contentWidth() int {
	if a.maxWidth > 0 && a.width > a.maxWidth {
		return a.maxWidth
	}
	return a.width
}

const shortcutLines = 5

func (a App) shortcuts() string {
	return a.theme.HelpStyle().Width(sidebarWidth).Render(strings.Join([]string{
		"^S     save",
		"Alt+D  go to date",
		"^R     delete entry",
		"Esc    quit",
		"",
	}, "\n"))
}

func (a App) statusLine() string {
	cw := max(a.contentWidth(), 1)
	if a.status == "" {
		return a.theme.HelpStyle().Width(cw).Render(" ")
	}
	if a.statusErr {
		return a.theme.DangerStyle().Width(cw).Render(a.status)
	}
	return a.theme.AccentStyle().Width(cw).Render(a.status)
}

func (a App) View() string {
	var body string
	switch a.state {
	case StateExit:
		return ""
	case StateGetFile:
		body = a.getFileView()
	case StatePassword:
		body = a.theme.HeaderStyle().Render("Unlock "+a.path) + "\n\n" + a.passInput.View()
	case StateSetDate:
		body = a.picker.view(a.theme, datekey.Today(), a.entries.Has)
		if a.forcedPicker {
			body += "\n\n" + a.theme.HelpStyle().Render("enter select • esc today")
		} else {
			body += "\n\n" + a.theme.HelpStyle().Render("+/- change • ←/→ field • enter select • esc cancel")
		}
	default:
		body = a.editView()
	}

	result := body + "\n" + a.statusLine()
	if a.width == 0 || a.height == 0 {
		return result
	}
	return a.theme.PaintScreen(result, a.width, a.height, a.contentWidth())
}

func (a App) getFileView() string {
	header := a.theme.HeaderStyle().Render("Open journal")
	switch a.step {
	case stepConfirmCreate:
		return header + "\n\n" + a.theme.ViewPaneStyle().Render(
			fmt.Sprintf("%s does not exist. Create it? (y/n)", a.path))
	case stepNewPassword:
		var b strings.Builder
		b.WriteString(header + "\n\n")
		b.WriteString(a.theme.ViewPaneStyle().Render("Choose a password for " + a.path))
		b.WriteString("\n\n" + a.newPass.view())
		if a.newPass.err != "" {
			b.WriteString("\n\n" + a.theme.DangerStyle().Render(a.newPass.err))
		}
		return b.String()
	}
	return header + "\n\n" + a.pathInput.View()
}

func (a App) editView() string {
	title := a.selected.Friendly()
	if a.unsaved {
		title += " *"
	}
	body := ""
	if b := a.buffer(); b != nil {
		if b.ReadOnly() {
			title += " (read-only)"
		}
		body = b.View()
	}
	header := a.theme.HeaderStyle().Render(title)

	editor := header + "\n\n" + body
	switch a.state {
	case StateDelete:
		editor += "\n" + a.theme.DangerStyle().Render(
			fmt.Sprintf("Delete entry for %s? (y/n)", a.selected.Friendly()))
	case StateAskToSave:
		editor += "\n" + a.theme.DangerStyle().Render(
			"Quit without saving? (y/n, ^S save and quit)")
	}

	side := a.sidebar.View() + "\n" + a.shortcuts()
	return lipgloss.JoinHorizontal(lipgloss.Top,
		a.theme.SidebarStyle().Width(sidebarWidth).Render(side),
		" ",
		editor,
	)
}
