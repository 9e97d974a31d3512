package input

import (
	"io"
	"sync"
	"time"
)

// Keyboard is polled once per frame. IsHeld reports keys that are down in
// the current frame, WasPressed and WasReleased report the edges against
// the previous frame.
type Keyboard interface {
	Poll()
	IsHeld(k Key) bool
	WasPressed(k Key) bool
	WasReleased(k Key) bool
}

type keyStates struct {
	current  map[Key]bool
	previous map[Key]bool
}

func newKeyStates() keyStates {
	return keyStates{current: make(map[Key]bool), previous: make(map[Key]bool)}
}

func (s *keyStates) advance(held map[Key]bool) {
	s.previous = s.current
	s.current = held
}

func (s *keyStates) isHeld(k Key) bool { return s.current[k] }
func (s *keyStates) wasPressed(k Key) bool { return s.current[k] && !s.previous[k] }
func (s *keyStates) wasReleased(k Key) bool { return !s.current[k] && s.previous[k] }

// TerminalKeyboard reads key presses from a raw terminal. Terminals do not
// report key releases, so a key counts as held while its last repeat
// arrived within the hold window.
type TerminalKeyboard struct {
	events     chan Key
	done       chan struct{}
	closeOnce  sync.Once
	lastSeen   map[Key]time.Time
	holdWindow time.Duration
	now        func() time.Time
	states     keyStates

	errMutex sync.Mutex
	err      error
}

func NewTerminalKeyboard(r io.Reader, holdWindow time.Duration) *TerminalKeyboard {
	k := newTerminalKeyboard(holdWindow)
	go k.readLoop(r)
	return k
}

func newTerminalKeyboard(holdWindow time.Duration) *TerminalKeyboard {
	return &TerminalKeyboard{
		events:     make(chan Key, 256),
		done:       make(chan struct{}),
		lastSeen:   make(map[Key]time.Time),
		holdWindow: holdWindow,
		now:        time.Now,
		states:     newKeyStates(),
	}
}

func (k *TerminalKeyboard) readLoop(r io.Reader) {
	var decoder Decoder
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		for _, key := range decoder.Feed(buf[:n]) {
			select {
			case k.events <- key:
			case <-k.done:
				return
			}
		}
		if err != nil {
			k.errMutex.Lock()
			k.err = err
			k.errMutex.Unlock()
			return
		}
	}
}

// Err returns the error that ended the reader, if any.
func (k *TerminalKeyboard) Err() error {
	k.errMutex.Lock()
	defer k.errMutex.Unlock()
	return k.err
}

func (k *TerminalKeyboard) Poll() {
	now := k.now()
	for drained := false; !drained; {
		select {
		case key := <-k.events:
			k.lastSeen[key] = now
		default:
			drained = true
		}
	}
	held := make(map[Key]bool, len(k.lastSeen))
	for key, seen := range k.lastSeen {
		if now.Sub(seen) <= k.holdWindow {
			held[key] = true
		} else {
			delete(k.lastSeen, key)
		}
	}
	k.states.advance(held)
}

func (k *TerminalKeyboard) IsHeld(key Key) bool { return k.states.isHeld(key) }
func (k *TerminalKeyboard) WasPressed(key Key) bool { return k.states.wasPressed(key) }
func (k *TerminalKeyboard) WasReleased(key Key) bool { return k.states.wasReleased(key) }

// Close stops forwarding keys. A reader blocked in Read exits after its
// next read returns.
func (k *TerminalKeyboard) Close() {
	k.closeOnce.Do(func() { close(k.done) })
}

// ScriptedKeyboard is driven by code instead of a terminal.
type ScriptedKeyboard struct {
	mutex  sync.Mutex
	down   map[Key]bool
	taps   map[Key]bool
	states keyStates
}

func NewScriptedKeyboard() *ScriptedKeyboard {
	return &ScriptedKeyboard{
		down:   make(map[Key]bool),
		taps:   make(map[Key]bool),
		states: newKeyStates(),
	}
}

func (s *ScriptedKeyboard) Press(keys ...Key) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, key := range keys {
		s.down[key] = true
	}
}

func (s *ScriptedKeyboard) Release(keys ...Key) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, key := range keys {
		delete(s.down, key)
	}
}

func (s *ScriptedKeyboard) ReleaseAll() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.down = make(map[Key]bool)
}

// Tap holds the key for exactly the next poll.
func (s *ScriptedKeyboard) Tap(key Key) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.taps[key] = true
}

func (s *ScriptedKeyboard) Poll() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	held := make(map[Key]bool, len(s.down)+len(s.taps))
	for key := range s.down {
		held[key] = true
	}
	for key := range s.taps {
		held[key] = true
	}
	s.taps = make(map[Key]bool)
	s.states.advance(held)
}

func (s *ScriptedKeyboard) IsHeld(key Key) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.states.isHeld(key)
}

func (s *ScriptedKeyboard) WasPressed(key Key) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.states.wasPressed(key)
}

func (s *ScriptedKeyboard) WasReleased(key Key) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.states.wasReleased(key)
}
