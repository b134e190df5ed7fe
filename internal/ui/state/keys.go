package state

// KeyCode identifies a key independent of the terminal library.
type KeyCode int

const (
	KeyNone KeyCode = iota
	KeyRune
	KeyEnter
	KeyBackspace
	KeyEsc
	KeyTab
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyF12
	// KeyInterrupt is the global quit chord; it is honoured in every mode.
	KeyInterrupt
)

// Key is a single key press.
type Key struct {
	Code KeyCode
	Rune rune
}

// Rune builds a printable key press.
func Rune(r rune) Key {
	return Key{Code: KeyRune, Rune: r}
}

// Press builds a non-printable key press.
func Press(code KeyCode) Key {
	return Key{Code: code}
}
