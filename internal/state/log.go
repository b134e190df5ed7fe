package state

import "time"

const (
	// TelemetryCapacity bounds the bus transaction log.
	TelemetryCapacity = 1000
	// StatusCapacity bounds the status and acknowledgement log.
	StatusCapacity = 100
)

// Entry is one displayed log line.
type Entry struct {
	Time time.Time
	Text string
}

// LogStore is a bounded, ordered log that evicts its oldest entries first.
type LogStore interface {
	Entries() []Entry
	Len() int
	Append(entries ...Entry)
}

type logStore struct {
	capacity int
	entries  []Entry
}

// NewLogStore returns a store holding at most capacity entries. A capacity
// below one is treated as one.
func NewLogStore(capacity int) LogStore {
	if capacity < 1 {
		capacity = 1
	}
	return &logStore{capacity: capacity}
}

func (s *logStore) Entries() []Entry {
	return cloneEntries(s.entries)
}

func (s *logStore) Len() int {
	return len(s.entries)
}

// Append adds entries in order, enforcing the capacity after each insert.
func (s *logStore) Append(entries ...Entry) {
	for _, e := range entries {
		s.entries = append(s.entries, e)
		if over := len(s.entries) - s.capacity; over > 0 {
			// shift in place so the backing array does not grow unbounded
			n := copy(s.entries, s.entries[over:])
			for i := n; i < len(s.entries); i++ {
				s.entries[i] = Entry{}
			}
			s.entries = s.entries[:n]
		}
	}
}

func cloneEntries(entries []Entry) []Entry {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]Entry, len(entries))
	copy(dup, entries)
	return dup
}
