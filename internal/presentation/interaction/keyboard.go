package interaction

import (
	"os"

	"golang.org/x/sys/unix"
)

// KeyboardReader handles keyboard input in raw mode
type KeyboardReader struct {
	tty      *os.File
	oldState *unix.Termios
	input    chan KeyEvent
	stop     chan struct{}
}

// KeyEvent represents a keyboard event
type KeyEvent struct {
	Key  rune
	Type KeyType
}

// KeyType represents the type of key pressed
type KeyType int

const (
	KeyChar KeyType = iota
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
)

const (
	keyCtrlC = 3
	keyEsc   = 27
)

// NewKeyboardReader switches stdin to raw mode and starts reading keys
func NewKeyboardReader() (*KeyboardReader, error) {
	return NewKeyboardReaderFrom(os.Stdin)
}

// NewKeyboardReaderFrom reads keys from the given terminal
func NewKeyboardReaderFrom(tty *os.File) (*KeyboardReader, error) {
	kr := &KeyboardReader{
		tty:   tty,
		input: make(chan KeyEvent, 10),
		stop:  make(chan struct{}),
	}

	if err := kr.enableRawMode(); err != nil {
		return nil, err
	}

	go kr.readInput()

	return kr, nil
}

func (kr *KeyboardReader) readInput() {
	buf := make([]byte, 8)

	for {
		select {
		case <-kr.stop:
			return
		default:
			n, err := kr.tty.Read(buf)
			if err != nil {
				return
			}
			if n == 0 {
				continue
			}

			event := kr.parseInput(buf[:n])
			if event != nil {
				select {
				case kr.input <- *event:
				case <-kr.stop:
					return
				}
			}
		}
	}
}

// parseInput decodes one read: a plain byte, a lone ESC, or a CSI/SS3
// cursor sequence.
func (kr *KeyboardReader) parseInput(buf []byte) *KeyEvent {
	if len(buf) == 0 {
		return nil
	}

	if buf[0] != keyEsc {
		return &KeyEvent{Key: rune(buf[0]), Type: KeyChar}
	}
	if len(buf) == 1 {
		return &KeyEvent{Key: keyEsc, Type: KeyEscape}
	}
	if len(buf) >= 3 && (buf[1] == '[' || buf[1] == 'O') {
		switch buf[2] {
		case 'A':
			return &KeyEvent{Type: KeyUp}
		case 'B':
			return &KeyEvent{Type: KeyDown}
		case 'C':
			return &KeyEvent{Type: KeyRight}
		case 'D':
			return &KeyEvent{Type: KeyLeft}
		case 'H':
			return &KeyEvent{Type: KeyHome}
		case 'F':
			return &KeyEvent{Type: KeyEnd}
		}
	}
	return nil
}

// Events returns the keyboard event channel
func (kr *KeyboardReader) Events() <-chan KeyEvent {
	return kr.input
}

// Close stops the keyboard reader and restores terminal
func (kr *KeyboardReader) Close() error {
	close(kr.stop)
	return kr.disableRawMode()
}
