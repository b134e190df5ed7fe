package ui

import (
	"fmt"
	"strings"
	"unicode"

	logstate "github.com/atomicstack/i2c-ble-client/internal/state"
	uistate "github.com/atomicstack/i2c-ble-client/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	telemetryStampLayout = "15:04:05.000"
	statusStampLayout    = "15:04:05"
	clockLayout          = "15:04:05"

	helpCommands = "Commands: HELP, ADD 0x08-0x77, ADD 0x50, LIST, CLEAR"
	helpControls = "Controls: q=quit, Ctrl+C=force quit, c=command, ↑↓=scroll, [ ]=status scroll, Tab=complete, Esc=exit edit"

	// header, two help rows, bordered input, two bordered panels with titles
	chromeRows = 1 + 2 + 3 + 2*3
)

type layout struct {
	width         int
	telemetryRows int
	statusRows    int
}

func (m *Model) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

// layout splits the rows left after fixed chrome between the two logs,
// giving the telemetry log three quarters.
func (m *Model) layout() layout {
	w, h := m.size()
	rows := h - chromeRows
	if rows < 2 {
		rows = 2
	}
	status := rows / 4
	if status < 1 {
		status = 1
	}
	return layout{width: w, telemetryRows: rows - status, statusRows: status}
}

// syncViewports keeps both cursors inside their visible windows. It runs in
// Update so View stays free of side effects on scroll state.
func (m *Model) syncViewports() {
	l := m.layout()
	m.telemetryOffset, _ = uistate.Window(m.telemetryOffset, m.state.TelemetryCursor(), m.state.TelemetryLen(), l.telemetryRows)
	m.statusOffset, _ = uistate.Window(m.statusOffset, m.state.StatusCursor(), m.state.StatusLen(), l.statusRows)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	sizeMsg, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = sizeMsg.Width
	}
	if !m.fixedHeight {
		m.height = sizeMsg.Height
	}
	m.syncViewports()
	return nil
}

// View implements tea.Model.
func (m *Model) View() string {
	l := m.layout()
	editing := m.state.Mode() == uistate.ModeEditing
	sections := []string{
		m.headerLine(l.width),
		m.logPanel(logPanel{
			title:       "I2C Telemetry",
			entries:     m.state.Telemetry(),
			offset:      m.telemetryOffset,
			cursor:      m.state.TelemetryCursor(),
			rows:        l.telemetryRows,
			stamp:       telemetryStampLayout,
			placeholder: "(waiting for I2C data)",
			focused:     !editing,
		}, l.width),
		m.logPanel(logPanel{
			title:       "Status",
			entries:     m.state.Status(),
			offset:      m.statusOffset,
			cursor:      m.state.StatusCursor(),
			rows:        l.statusRows,
			stamp:       statusStampLayout,
			placeholder: "(no status messages)",
		}, l.width),
		boxed(clip(m.inputLine(), l.width-2), l.width, editing),
		render(styles.Help, clip(helpCommands, l.width)),
		render(styles.Help, clip(helpControls, l.width)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) headerLine(width int) string {
	left := "I2C BLE Logger"
	if m.device != "" {
		left += " · " + sanitize(m.device)
	}
	link, linkStyle := m.linkIndicator()
	right := m.clock.Format(clockLayout)

	gap := width - ansi.StringWidth(left) - ansi.StringWidth(link) - ansi.StringWidth(right) - 2
	if gap < 1 {
		gap = 1
	}
	line := render(styles.Title, left) + "  " + render(linkStyle, link) + strings.Repeat(" ", gap) + render(styles.Clock, right)
	return clip(line, width)
}

func (m *Model) linkIndicator() (string, *lipgloss.Style) {
	switch m.link {
	case linkUp:
		return "● connected", styles.LinkUp
	case linkDown:
		return "○ disconnected", styles.LinkDown
	default:
		return "◌ checking link", styles.LinkUnknown
	}
}

type logPanel struct {
	title       string
	entries     []logstate.Entry
	offset      int
	cursor      int
	rows        int
	stamp       string
	placeholder string
	focused     bool
}

func (m *Model) logPanel(p logPanel, width int) string {
	inner := width - 2
	title := p.title
	if len(p.entries) > 0 {
		title = fmt.Sprintf("%s [%d/%d]", p.title, p.cursor+1, len(p.entries))
	}
	lines := make([]string, 0, p.rows+1)
	lines = append(lines, render(styles.PanelTitle, clip(title, inner)))

	if len(p.entries) == 0 {
		lines = append(lines, render(styles.Placeholder, clip(p.placeholder, inner)))
	} else {
		start, end := uistate.Window(p.offset, p.cursor, len(p.entries), p.rows)
		for idx := start; idx < end; idx++ {
			entry := p.entries[idx]
			text := clip(fmt.Sprintf("%s | %s", entry.Time.Format(p.stamp), sanitize(entry.Text)), inner)
			style := styles.Entry
			if idx == p.cursor {
				style = styles.SelectedRow
			}
			lines = append(lines, render(style, text))
		}
	}
	for len(lines) < p.rows+1 {
		lines = append(lines, "")
	}
	return boxed(strings.Join(lines, "\n"), width, p.focused)
}

func boxed(content string, width int, focused bool) string {
	style := styles.Panel
	if focused && styles.PanelFocused != nil {
		style = styles.PanelFocused
	}
	if style == nil {
		return content
	}
	inner := width - 2
	if inner < 1 {
		inner = 1
	}
	return style.Copy().Width(inner).Render(content)
}

// sanitize keeps device-supplied text from moving the cursor or recolouring
// the screen.
func sanitize(text string) string {
	text = ansi.Strip(text)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, text)
}

func clip(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(text) <= width {
		return text
	}
	return truncate.StringWithTail(text, uint(width), "…")
}
