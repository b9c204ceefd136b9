package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// PagerPage is one entry shown by Page.
type PagerPage struct {
	Title string
	Body  string
}

type pagerKeyMap struct {
	Prev key.Binding
	Next key.Binding
	Quit key.Binding
}

var pagerKeys = pagerKeyMap{
	Prev: key.NewBinding(key.WithKeys("left", "h", "p"), key.WithHelp("←", "previous")),
	Next: key.NewBinding(key.WithKeys("right", "l", "n"), key.WithHelp("→", "next")),
	Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// pagerModel scrolls through one page at a time and flips between pages.
type pagerModel struct {
	viewport viewport.Model
	pages    []PagerPage
	current  int
	theme    Theme
	ready    bool
	maxWidth int
	width    int
	height   int
}

func (m pagerModel) Init() tea.Cmd {
	return nil
}

func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, pagerKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, pagerKeys.Prev):
			return m.turn(-1), nil
		case key.Matches(msg, pagerKeys.Next):
			return m.turn(1), nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		height := max(msg.Height-2, 1)
		if !m.ready {
			m.viewport = viewport.New(m.contentWidth(), height)
			m.ready = true
		} else {
			m.viewport.Width = m.contentWidth()
			m.viewport.Height = height
		}
		m.viewport.SetContent(m.page().Body)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// turn moves by delta pages, stopping at either end.
func (m pagerModel) turn(delta int) pagerModel {
	next := min(max(m.current+delta, 0), len(m.pages)-1)
	if next == m.current {
		return m
	}
	m.current = next
	if m.ready {
		m.viewport.SetContent(m.page().Body)
		m.viewport.GotoTop()
	}
	return m
}

func (m pagerModel) page() PagerPage {
	if len(m.pages) == 0 {
		return PagerPage{}
	}
	return m.pages[m.current]
}

func (m pagerModel) contentWidth() int {
	if m.maxWidth > 0 && m.width > m.maxWidth {
		return m.maxWidth
	}
	return m.width
}

func (m pagerModel) footer() string {
	hints := "↑/↓ scroll"
	if len(m.pages) > 1 {
		hints = fmt.Sprintf("%d/%d • ←/→ entry • %s", m.current+1, len(m.pages), hints)
	}
	return fmt.Sprintf("%s • q quit  %3.f%%", hints, m.viewport.ScrollPercent()*100)
}

func (m pagerModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	cw := m.contentWidth()
	screen := strings.Join([]string{
		m.theme.HeaderStyle().Width(cw).Render(m.page().Title),
		m.theme.ViewPaneStyle().Width(cw).Render(m.viewport.View()),
		m.theme.HelpStyle().Width(cw).Render(m.footer()),
	}, "\n")
	return m.theme.PaintScreen(screen, m.width, m.height, cw)
}

// Page shows pages starting at start. Unless w is a terminal, every page is
// written out in order. A single page that fits on the screen is written
// directly too; anything else opens the pager.
func Page(w io.Writer, pages []PagerPage, start int, theme Theme, maxWidth int) error {
	if len(pages) == 0 {
		return nil
	}
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return writePages(w, pages)
	}
	if len(pages) == 1 {
		_, height, err := term.GetSize(int(f.Fd()))
		if err != nil || strings.Count(pages[0].Body, "\n")+1 <= height-2 {
			return writePages(w, pages)
		}
	}

	m := pagerModel{
		pages:    pages,
		current:  min(max(start, 0), len(pages)-1),
		theme:    theme,
		maxWidth: maxWidth,
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(f)).Run()
	return err
}

func writePages(w io.Writer, pages []PagerPage) error {
	for i, p := range pages {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(w, p.Body); err != nil {
			return err
		}
	}
	return nil
}
