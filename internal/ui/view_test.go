package ui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/i2c-ble-client/internal/backend"
	"github.com/atomicstack/i2c-ble-client/internal/event"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func TestViewRendersPanelsAndHelp(t *testing.T) {
	h := NewHarness(newTestModel(Config{DeviceName: "I2C-BLE-Logger", Width: 120, Height: 30}))
	h.Send(eventMsg{event: event.Classify("[0x42] READ: 0x10")})
	h.Send(eventMsg{event: event.Classify("Config updated")})
	h.Send(tickMsg(time.Date(2024, 5, 1, 9, 8, 7, 0, time.Local)))

	view := h.View()
	for _, want := range []string{
		"I2C BLE Logger · I2C-BLE-Logger",
		"09:08:07",
		"I2C Telemetry [1/1]",
		"12:00:00.000 | [0x42] READ: 0x10",
		"Status [1/1]",
		"12:00:00 | Config updated",
		"press c to type a command",
		helpCommands,
		"Controls: q=quit, Ctrl+C=force quit, c=command",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view, got:\n%s", want, view)
		}
	}
}

func TestViewShowsPlaceholdersWhenEmpty(t *testing.T) {
	view := newTestModel(Config{Width: 80}).View()
	if !strings.Contains(view, "(waiting for I2C data)") {
		t.Fatalf("expected telemetry placeholder, got:\n%s", view)
	}
	if !strings.Contains(view, "(no status messages)") {
		t.Fatalf("expected status placeholder, got:\n%s", view)
	}
	if !strings.Contains(view, "checking link") {
		t.Fatalf("expected unknown link indicator, got:\n%s", view)
	}
}

func TestViewShowsLinkState(t *testing.T) {
	h := NewHarness(newTestModel(Config{Width: 80}))
	h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindLink, Connected: false}})
	if view := h.View(); !strings.Contains(view, "○ disconnected") {
		t.Fatalf("expected disconnected indicator, got:\n%s", view)
	}
}

func TestViewShowsEditingBuffer(t *testing.T) {
	h := NewHarness(newTestModel(Config{Width: 80}))
	h.Type("cADD 0x50")
	view := h.View()
	if !strings.Contains(view, "> ADD 0x50") {
		t.Fatalf("expected buffer in input line, got:\n%s", view)
	}
	if strings.Contains(view, inputPlaceholder) {
		t.Fatalf("expected placeholder to be hidden while editing")
	}
}

func TestViewDrawsCaretWithoutResettingIt(t *testing.T) {
	m := newTestModel(Config{Width: 80})
	h := NewHarness(m)
	h.Type("cLIST")
	m.inputCursor.SetChar("_")
	first := h.View()
	if !strings.Contains(first, "> LIST_") {
		t.Fatalf("expected caret after buffer, got:\n%s", first)
	}
	if second := h.View(); second != first {
		t.Fatalf("expected repeated renders to match")
	}
}

func TestViewStripsControlSequences(t *testing.T) {
	h := NewHarness(newTestModel(Config{Width: 80}))
	h.Send(eventMsg{event: event.Telemetry("\x1b[31m[0x10] READ:\t0x01\x1b[0m")})
	view := h.View()
	if strings.Contains(view, "\x1b") {
		t.Fatalf("expected no escape sequences in view, got %q", view)
	}
	if !strings.Contains(view, "[0x10] READ: 0x01") {
		t.Fatalf("expected sanitized telemetry, got:\n%s", view)
	}
}

func TestViewClipsToWidth(t *testing.T) {
	h := NewHarness(newTestModel(Config{Width: 40, Height: 20}))
	h.Send(eventMsg{event: event.Telemetry("[0x50] READ: " + strings.Repeat("0xFF ", 40))})
	h.Send(eventMsg{event: event.Status(strings.Repeat("long status ", 10))})
	for i, line := range strings.Split(h.View(), "\n") {
		if w := ansi.StringWidth(line); w > 40 {
			t.Fatalf("line %d is %d columns wide: %q", i, w, line)
		}
	}
}

func TestViewKeepsCursorVisible(t *testing.T) {
	h := NewHarness(newTestModel(Config{Width: 80, Height: 24}))
	for i := 0; i < 30; i++ {
		h.Send(eventMsg{event: event.Telemetry(fmt.Sprintf("line-%02d", i))})
	}
	view := h.View()
	if !strings.Contains(view, "line-29") || strings.Contains(view, "line-05") {
		t.Fatalf("expected newest entries in view, got:\n%s", view)
	}
	if !strings.Contains(view, "I2C Telemetry [30/30]") {
		t.Fatalf("expected position indicator, got:\n%s", view)
	}
	h.Press(tea.KeyHome)
	view = h.View()
	if !strings.Contains(view, "line-00") || strings.Contains(view, "line-29") {
		t.Fatalf("expected oldest entries in view after home, got:\n%s", view)
	}
}

func TestViewFitsHeight(t *testing.T) {
	h := NewHarness(newTestModel(Config{Width: 80, Height: 24}))
	for i := 0; i < 50; i++ {
		h.Send(eventMsg{event: event.Telemetry(fmt.Sprintf("line-%02d", i))})
		h.Send(eventMsg{event: event.Status(fmt.Sprintf("status-%02d", i))})
	}
	if got := len(strings.Split(h.View(), "\n")); got != 24 {
		t.Fatalf("expected 24 rows, got %d", got)
	}
}
