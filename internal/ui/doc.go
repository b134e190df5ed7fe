// Package ui contains the Bubble Tea program that renders the logger client.
// The Model type only orchestrates messages; every state transition lives in
// internal/ui/state so it can be tested without a terminal.
//
// Message flow:
//   - Key presses arrive as tea.KeyMsg. They are translated into
//     terminal-independent uistate.Key values; the interrupt chord is mapped
//     before anything else so it works in every mode.
//   - Device events arrive through waitForEvent, a command that blocks on the
//     event queue and yields exactly one eventMsg. The handler folds the event
//     into the state and re-arms the wait, so a burst of notifications drains
//     one per update without starving key handling.
//   - Link changes from the backend watcher arrive the same way via
//     waitForBackendEvent.
//   - A periodic tickMsg keeps the header clock current while idle.
//
// State ownership:
//   - The model is the only writer of uistate.State. Producers never touch it;
//     they push onto bridge queues instead.
//   - Submitted commands leave through the command bus and are written to the
//     device by the dispatcher goroutine, whose acknowledgements come back as
//     ordinary events.
//
// The terminal itself (raw mode, alternate screen, restoration on exit) is
// owned by tea.Program.
package ui
