package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/jrnlctl/internal/config"
)

// Theme holds resolved lipgloss colors for the journal screens and the
// rendered output of the show command.
type Theme struct {
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Accent        lipgloss.Color
	Muted         lipgloss.Color
	Danger        lipgloss.Color
	Background    lipgloss.Color
	MarkdownStyle string
}

const defaultPreset = "default-dark"

// palette builds a preset from its colors in Theme field order.
func palette(primary, secondary, accent, muted, danger, background, markdown string) Theme {
	return Theme{
		Primary:       lipgloss.Color(primary),
		Secondary:     lipgloss.Color(secondary),
		Accent:        lipgloss.Color(accent),
		Muted:         lipgloss.Color(muted),
		Danger:        lipgloss.Color(danger),
		Background:    lipgloss.Color(background),
		MarkdownStyle: markdown,
	}
}

// Built-in presets. The default ones use 256-color codes, the rest true color.
var presets = map[string]Theme{
	"default-dark":     palette("15", "243", "33", "241", "9", "235", "dark"),
	"default-light":    palette("0", "240", "27", "245", "1", "254", "light"),
	"dracula":          palette("#F8F8F2", "#6272A4", "#BD93F9", "#6272A4", "#FF5555", "#282A36", "dark"),
	"nord":             palette("#ECEFF4", "#4C566A", "#88C0D0", "#616E88", "#BF616A", "#2E3440", "dark"),
	"gruvbox-dark":     palette("#EBDBB2", "#665C54", "#FABD2F", "#928374", "#FB4934", "#282828", "dark"),
	"gruvbox-light":    palette("#3C3836", "#A89984", "#D79921", "#928374", "#CC241D", "#FBF1C7", "light"),
	"solarized-light":  palette("#586E75", "#93A1A1", "#268BD2", "#93A1A1", "#DC322F", "#FDF6E3", "light"),
	"catppuccin-mocha": palette("#CDD6F4", "#585B70", "#CBA6F7", "#6C7086", "#F38BA8", "#1E1E2E", "dark"),
}

// ResolveTheme starts from the configured preset, falling back to the
// default one, and applies any explicit color overrides.
func ResolveTheme(cfg config.ThemeConfig) Theme {
	theme, ok := presets[cfg.Preset]
	if !ok {
		theme = presets[defaultPreset]
	}

	overrides := []struct {
		dst   *lipgloss.Color
		value string
	}{
		{&theme.Primary, cfg.Primary},
		{&theme.Secondary, cfg.Secondary},
		{&theme.Accent, cfg.Accent},
		{&theme.Muted, cfg.Muted},
		{&theme.Danger, cfg.Danger},
		{&theme.Background, cfg.Background},
	}
	for _, o := range overrides {
		if o.value != "" {
			*o.dst = lipgloss.Color(o.value)
		}
	}
	if cfg.MarkdownStyle != "" {
		theme.MarkdownStyle = cfg.MarkdownStyle
	}
	return theme
}

func (t Theme) base() lipgloss.Style {
	return lipgloss.NewStyle().Background(t.Background)
}

// HelpStyle is used for key hints and the empty status line.
func (t Theme) HelpStyle() lipgloss.Style {
	return t.base().Foreground(t.Muted)
}

// HeaderStyle is used for screen titles and the entry date.
func (t Theme) HeaderStyle() lipgloss.Style {
	return t.base().Bold(true).Foreground(t.Primary)
}

// AccentStyle is used for status messages.
func (t Theme) AccentStyle() lipgloss.Style {
	return t.base().Foreground(t.Accent)
}

// DangerStyle is used for errors and the delete and quit prompts.
func (t Theme) DangerStyle() lipgloss.Style {
	return t.base().Foreground(t.Danger)
}

// ViewPaneStyle is plain text on the theme background.
func (t Theme) ViewPaneStyle() lipgloss.Style {
	return t.base().Foreground(t.Primary)
}

// SelectedStyle marks the focused date field and the selected calendar day.
func (t Theme) SelectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Background).Background(t.Accent)
}

// SidebarStyle draws the journaled-dates column with a rule on its right.
func (t Theme) SidebarStyle() lipgloss.Style {
	return t.ViewPaneStyle().
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(t.Secondary).
		BorderBackground(t.Background)
}

// calendar returns the month grid styles for the date picker. Days with
// an entry use the accent color.
func (t Theme) calendar() calendarStyles {
	return calendarStyles{
		Header:   t.base().Foreground(t.Secondary),
		Empty:    t.base().Foreground(t.Muted),
		Entry:    t.base().Bold(true).Foreground(t.Accent),
		Today:    lipgloss.NewStyle().Underline(true),
		Selected: t.SelectedStyle(),
	}
}

// eraseLine returns the escape sequence that sets the background color and
// clears to the end of the line. lipgloss cannot express it.
func (t Theme) eraseLine() string {
	s := string(t.Background)
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		var r, g, b int
		fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b)
		return fmt.Sprintf("\x1b[48;2;%d;%d;%dm\x1b[K", r, g, b)
	}
	return "\x1b[48;5;" + s + "m\x1b[K"
}

// PaintScreen pads content to a termWidth by termHeight block on the theme
// background. When contentWidth is narrower than the terminal the content is
// centered. Every line also ends with an erase-to-end-of-line so the
// background reaches the edge even when a width is measured short.
func (t Theme) PaintScreen(content string, termWidth, termHeight, contentWidth int) string {
	fill := t.base()
	eol := t.eraseLine()

	indent := 0
	if contentWidth > 0 && contentWidth < termWidth {
		indent = (termWidth - contentWidth) / 2
	}
	margin := ""
	if indent > 0 {
		margin = fill.Render(strings.Repeat(" ", indent))
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		pad := max(termWidth-indent-lipgloss.Width(line), 0)
		var b strings.Builder
		b.WriteString(margin)
		b.WriteString(line)
		if pad > 0 {
			b.WriteString(fill.Render(strings.Repeat(" ", pad)))
		}
		b.WriteString(eol)
		lines[i] = b.String()
	}

	blank := fill.Render(strings.Repeat(" ", termWidth)) + eol
	for len(lines) < termHeight {
		lines = append(lines, blank)
	}
	return strings.Join(lines[:termHeight], "\n")
}

// NewList returns a themed list for the journaled-dates sidebar.
func (t Theme) NewList(items []list.Item, width, height int) list.Model {
	l := list.New(items, t.listDelegate(), width, height)
	l.Styles = t.listStyles()
	return l
}

func (t Theme) listDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.SetSpacing(0)

	normal := t.base().Foreground(t.Primary).Padding(0, 0, 0, 1)
	d.Styles.NormalTitle = normal
	d.Styles.NormalDesc = normal.Foreground(t.Muted)
	d.Styles.DimmedTitle = normal.Foreground(t.Muted)
	d.Styles.DimmedDesc = normal.Foreground(t.Muted)

	d.Styles.SelectedTitle = t.base().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(t.Accent).
		BorderBackground(t.Background).
		Foreground(t.Accent)
	d.Styles.SelectedDesc = d.Styles.SelectedTitle.Foreground(t.Secondary)
	return d
}

func (t Theme) listStyles() list.Styles {
	s := list.DefaultStyles()
	s.Title = t.HeaderStyle()
	s.TitleBar = t.base().Padding(0, 0, 1, 0)
	s.NoItems = t.HelpStyle()
	s.PaginationStyle = t.HelpStyle()
	s.ActivePaginationDot = t.AccentStyle().SetString("•")
	s.InactivePaginationDot = t.HelpStyle().SetString("•")
	return s
}
