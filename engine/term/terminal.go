package term

import (
	"github.com/pkg/errors"
	"golang.org/x/term"
	"io"
	"os"
)

const (
	escHideCursor  = "\x1b[?25l"
	escShowCursor  = "\x1b[?25h"
	escClearScreen = "\x1b[2J"
)

// Terminal owns the process' terminal while the game runs: raw input,
// hidden cursor, and the original state to go back to.
type Terminal struct {
	in       *os.File
	out      *os.File
	oldState *term.State
}

// Open switches in to raw mode when it is a terminal. Piped input is left
// as it is so headless runs keep working.
func Open(in, out *os.File) (*Terminal, error) {
	t := &Terminal{in: in, out: out}
	if term.IsTerminal(int(in.Fd())) {
		state, err := term.MakeRaw(int(in.Fd()))
		if err != nil {
			return nil, errors.Wrap(err, "enable raw mode")
		}
		t.oldState = state
	}
	if _, err := io.WriteString(out, escClearScreen+escHideCursor); err != nil {
		t.Restore()
		return nil, errors.Wrap(err, "prepare terminal")
	}
	return t, nil
}

func (t *Terminal) Input() io.Reader { return t.in }
func (t *Terminal) Output() io.Writer { return t.out }

func (t *Terminal) IsRaw() bool {
	return t.oldState != nil
}

// Size reports the output size in cells.
func (t *Terminal) Size() (int, int, error) {
	if !term.IsTerminal(int(t.out.Fd())) {
		return 0, 0, errors.New("output is not a terminal")
	}
	width, height, err := term.GetSize(int(t.out.Fd()))
	if err != nil {
		return 0, 0, errors.Wrap(err, "query terminal size")
	}
	return width, height, nil
}

// Restore resets colors, shows the cursor and leaves raw mode.
func (t *Terminal) Restore() error {
	_, writeErr := io.WriteString(t.out, escReset+escShowCursor+"\r\n")
	if t.oldState != nil {
		if err := term.Restore(int(t.in.Fd()), t.oldState); err != nil {
			return errors.Wrap(err, "restore terminal")
		}
		t.oldState = nil
	}
	return errors.Wrap(writeErr, "restore terminal")
}
