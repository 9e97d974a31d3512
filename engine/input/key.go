package input

import (
	"github.com/pkg/errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Key identifies a key. Printable keys use their lower case rune, special
// keys live in the private use area.
type Key rune

const (
	KeyNone      Key = 0
	KeyInterrupt Key = 0x03
	KeyTab       Key = '\t'
	KeyEnter     Key = '\r'
	KeyEscape    Key = 0x1b
	KeySpace     Key = ' '
	KeyBackspace Key = 0x7f
)

const (
	KeyArrowUp Key = 0xE000 + iota
	KeyArrowDown
	KeyArrowRight
	KeyArrowLeft
)

var keyNames = map[string]Key{
	"space":     KeySpace,
	"esc":       KeyEscape,
	"escape":    KeyEscape,
	"enter":     KeyEnter,
	"tab":       KeyTab,
	"backspace": KeyBackspace,
	"up":        KeyArrowUp,
	"down":      KeyArrowDown,
	"left":      KeyArrowLeft,
	"right":     KeyArrowRight,
	"ctrl+c":    KeyInterrupt,
}

// KeyByName parses a binding: a named key such as "space" or "up", or a
// single character.
func KeyByName(name string) (Key, error) {
	if key, ok := keyNames[strings.ToLower(name)]; ok {
		return key, nil
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return Key(unicode.ToLower(r)), nil
	}
	return KeyNone, errors.Errorf("unknown key %q", name)
}

func (k Key) String() string {
	for name, key := range keyNames {
		if key == k && name != "esc" {
			return name
		}
	}
	if k == KeyNone {
		return "none"
	}
	return string(rune(k))
}

// Decoder turns raw terminal bytes into keys. Escape sequences split
// across reads are completed on the next Feed.
type Decoder struct {
	pending []byte
}

func (d *Decoder) Feed(data []byte) []Key {
	buf := append(d.pending, data...)
	d.pending = nil
	var keys []Key
	for i := 0; i < len(buf); {
		b := buf[i]
		if b == 0x1b {
			if i+1 >= len(buf) {
				keys = append(keys, KeyEscape)
				i++
				continue
			}
			if buf[i+1] != '[' && buf[i+1] != 'O' {
				keys = append(keys, KeyEscape)
				i++
				continue
			}
			if i+2 >= len(buf) {
				d.pending = append(d.pending, buf[i:]...)
				break
			}
			if key, ok := arrowKey(buf[i+2]); ok {
				keys = append(keys, key)
			}
			i += 3
			continue
		}
		if b == '\n' {
			keys = append(keys, KeyEnter)
			i++
			continue
		}
		r, size := utf8.DecodeRune(buf[i:])
		if r == utf8.RuneError && size <= 1 && !utf8.FullRune(buf[i:]) {
			d.pending = append(d.pending, buf[i:]...)
			break
		}
		keys = append(keys, Key(unicode.ToLower(r)))
		i += size
	}
	return keys
}

func arrowKey(b byte) (Key, bool) {
	switch b {
	case 'A':
		return KeyArrowUp, true
	case 'B':
		return KeyArrowDown, true
	case 'C':
		return KeyArrowRight, true
	case 'D':
		return KeyArrowLeft, true
	}
	return KeyNone, false
}
