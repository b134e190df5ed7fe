package state

import (
	"strings"
	"time"
	"unicode"

	"github.com/atomicstack/i2c-ble-client/internal/event"
	logstate "github.com/atomicstack/i2c-ble-client/internal/state"
)

// Mode is the input mode of the command line.
type Mode int

const (
	ModeNormal Mode = iota
	ModeEditing
)

func (m Mode) String() string {
	if m == ModeEditing {
		return "editing"
	}
	return "normal"
}

const pageStep = 10

// Options sizes the logs and seeds completion.
type Options struct {
	TelemetryCapacity int
	StatusCapacity    int
	Vocabulary        []string
	// Now stamps entries; defaults to time.Now.
	Now func() time.Time
}

// State is everything the screen shows. It performs no I/O and has exactly
// one owner, the UI model.
type State struct {
	telemetry logstate.LogStore
	status    logstate.LogStore

	mode            Mode
	buffer          []rune
	telemetryCursor int
	statusCursor    int
	quit            bool

	vocabulary []string
	now        func() time.Time
}

// New builds an empty State.
func New(opts Options) *State {
	if opts.TelemetryCapacity <= 0 {
		opts.TelemetryCapacity = logstate.TelemetryCapacity
	}
	if opts.StatusCapacity <= 0 {
		opts.StatusCapacity = logstate.StatusCapacity
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Vocabulary == nil {
		opts.Vocabulary = DefaultVocabulary()
	}
	return &State{
		telemetry:  logstate.NewLogStore(opts.TelemetryCapacity),
		status:     logstate.NewLogStore(opts.StatusCapacity),
		vocabulary: append([]string(nil), opts.Vocabulary...),
		now:        opts.Now,
	}
}

func (s *State) Telemetry() []logstate.Entry { return s.telemetry.Entries() }
func (s *State) Status() []logstate.Entry    { return s.status.Entries() }
func (s *State) TelemetryLen() int           { return s.telemetry.Len() }
func (s *State) StatusLen() int              { return s.status.Len() }
func (s *State) Mode() Mode                  { return s.mode }
func (s *State) Buffer() string              { return string(s.buffer) }
func (s *State) TelemetryCursor() int        { return s.telemetryCursor }
func (s *State) StatusCursor() int           { return s.statusCursor }
func (s *State) ShouldQuit() bool            { return s.quit }

// Apply folds one application event into the logs and returns how many
// lines were stored.
func (s *State) Apply(evt event.Event) int {
	switch evt.Kind {
	case event.KindTelemetry:
		n := s.appendLines(s.telemetry, evt.Text)
		s.telemetryCursor = lastIndex(s.telemetry.Len())
		return n
	case event.KindStatus, event.KindCommandAck:
		// some transports cannot send raw control characters
		text := strings.ReplaceAll(evt.Text, `\n`, "\n")
		n := s.appendLines(s.status, text)
		s.statusCursor = lastIndex(s.status.Len())
		return n
	}
	return 0
}

func (s *State) appendLines(store logstate.LogStore, text string) int {
	stamp := s.now()
	added := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		store.Append(logstate.Entry{Time: stamp, Text: line})
		added++
	}
	return added
}

// ApplyKey runs the input state machine. When Enter submits a non-empty
// command the trimmed text is returned with emitted set.
func (s *State) ApplyKey(k Key) (command string, emitted bool) {
	if k.Code == KeyInterrupt {
		s.quit = true
		return "", false
	}
	switch s.mode {
	case ModeEditing:
		return s.editingKey(k)
	default:
		s.normalKey(k)
		return "", false
	}
}

func (s *State) normalKey(k Key) {
	switch k.Code {
	case KeyRune:
		switch k.Rune {
		case 'q':
			s.quit = true
		case 'c':
			s.mode = ModeEditing
		case '[':
			s.ScrollStatus(-1)
		case ']':
			s.ScrollStatus(1)
		}
	case KeyUp:
		s.ScrollTelemetry(-1)
	case KeyDown:
		s.ScrollTelemetry(1)
	case KeyPageUp:
		s.ScrollTelemetry(-pageStep)
	case KeyPageDown:
		s.ScrollTelemetry(pageStep)
	case KeyHome:
		s.TelemetryHome()
	case KeyEnd:
		s.TelemetryEnd()
	}
}

func (s *State) editingKey(k Key) (string, bool) {
	switch k.Code {
	case KeyRune:
		if !unicode.IsControl(k.Rune) {
			s.buffer = append(s.buffer, k.Rune)
		}
	case KeyBackspace:
		if len(s.buffer) > 0 {
			s.buffer = s.buffer[:len(s.buffer)-1]
		}
	case KeyEnter:
		s.mode = ModeNormal
		trimmed := strings.TrimSpace(string(s.buffer))
		if trimmed == "" {
			return "", false
		}
		s.buffer = nil
		return trimmed, true
	case KeyEsc:
		s.buffer = nil
		s.mode = ModeNormal
	case KeyF12:
		s.quit = true
	case KeyTab:
		if completed, ok := Complete(s.vocabulary, string(s.buffer)); ok {
			s.buffer = []rune(completed)
		}
	}
	return "", false
}

func lastIndex(n int) int {
	if n == 0 {
		return 0
	}
	return n - 1
}
