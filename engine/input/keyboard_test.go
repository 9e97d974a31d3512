package input

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"testing"
	"time"
)

func TestKeyByName(t *testing.T) {
	cases := map[string]Key{
		"w":     'w',
		"W":     'w',
		";":     ';',
		"`":     '`',
		"space": KeySpace,
		"Esc":   KeyEscape,
		"up":    KeyArrowUp,
	}
	for name, expected := range cases {
		key, err := KeyByName(name)
		require.NoError(t, err, name)
		assert.Equal(t, expected, key, name)
	}
	_, err := KeyByName("hyper")
	assert.Error(t, err)
	assert.Equal(t, "space", KeySpace.String())
	assert.Equal(t, "escape", KeyEscape.String())
	assert.Equal(t, "q", Key('q').String())
}

func TestDecoder(t *testing.T) {
	var d Decoder
	keys := d.Feed([]byte("wA \x1b[A\x1b[D;"))
	assert.Equal(t, []Key{'w', 'a', KeySpace, KeyArrowUp, KeyArrowLeft, ';'}, keys)

	// an escape sequence split across two reads
	assert.Empty(t, d.Feed([]byte("\x1b[")))
	assert.Equal(t, []Key{KeyArrowDown, 'x'}, d.Feed([]byte("Bx")))

	assert.Equal(t, []Key{KeyEscape}, d.Feed([]byte{0x1b}))
	assert.Equal(t, []Key{KeyEscape, 'q'}, d.Feed([]byte("\x1bq")))
	assert.Equal(t, []Key{KeyInterrupt}, d.Feed([]byte{0x03}))
}

func TestScriptedKeyboardEdges(t *testing.T) {
	kb := NewScriptedKeyboard()

	kb.Press('w')
	kb.Poll()
	assert.True(t, kb.IsHeld('w'))
	assert.True(t, kb.WasPressed('w'))
	assert.False(t, kb.WasReleased('w'))

	kb.Poll()
	assert.True(t, kb.IsHeld('w'))
	assert.False(t, kb.WasPressed('w'))

	kb.Release('w')
	kb.Poll()
	assert.False(t, kb.IsHeld('w'))
	assert.True(t, kb.WasReleased('w'))

	kb.Tap(KeySpace)
	kb.Poll()
	assert.True(t, kb.WasPressed(KeySpace))
	kb.Poll()
	assert.True(t, kb.WasReleased(KeySpace))
	assert.False(t, kb.IsHeld(KeySpace))
}

func TestTerminalKeyboardHoldWindow(t *testing.T) {
	kb := newTerminalKeyboard(100 * time.Millisecond)
	clock := time.Unix(100, 0)
	kb.now = func() time.Time { return clock }

	kb.events <- 'w'
	kb.Poll()
	assert.True(t, kb.IsHeld('w'))
	assert.True(t, kb.WasPressed('w'))

	clock = clock.Add(60 * time.Millisecond)
	kb.events <- 'w'
	kb.Poll()
	assert.True(t, kb.IsHeld('w'))
	assert.False(t, kb.WasPressed('w'))

	clock = clock.Add(150 * time.Millisecond)
	kb.Poll()
	assert.False(t, kb.IsHeld('w'))
	assert.True(t, kb.WasReleased('w'))
}

func TestTerminalKeyboardReadsFromReader(t *testing.T) {
	reader, writer := io.Pipe()
	kb := NewTerminalKeyboard(reader, time.Second)
	defer kb.Close()

	_, err := writer.Write([]byte("d"))
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		kb.Poll()
		return kb.IsHeld('d')
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, writer.Close())
	assert.Eventually(t, func() bool { return kb.Err() == io.EOF }, time.Second, 5*time.Millisecond)
}
