package util

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type TimerState struct {
	name         string
	lastDuration float64

	totalDuration  float64
	executionCount int64

	minDuration float64
	maxDuration float64
}

func (t *TimerState) averageDuration() float64 {
	if t.executionCount == 0 {
		return 0
	}
	return t.totalDuration / float64(t.executionCount)
}

func (t *TimerState) Last() float64 { return t.lastDuration }
func (t *TimerState) Average() float64 { return t.averageDuration() }
func (t *TimerState) Count() int64 { return t.executionCount }

func (t *TimerState) String() string {
	return fmt.Sprintf("%s %.2fms (avg %.2f, min %.2f, max %.2f)", t.name, t.lastDuration, t.averageDuration(), t.minDuration, t.maxDuration)
}

func (t *TimerState) record(durationInMS float64) {
	t.lastDuration = durationInMS
	t.totalDuration += durationInMS
	t.executionCount++
	t.minDuration = math.Min(t.minDuration, durationInMS)
	t.maxDuration = math.Max(t.maxDuration, durationInMS)
}

// Timer keeps per section frame timings in milliseconds. Sections are
// reported in the order they were first started.
type Timer struct {
	states     map[string]*TimerState
	timerNames []string
	now        func() time.Time
}

func NewTimer() *Timer {
	return &Timer{
		states: make(map[string]*TimerState),
		now:    time.Now,
	}
}

func (t *Timer) GetState(name string) *TimerState {
	return t.states[name]
}

func (t *Timer) Reset() {
	for _, state := range t.states {
		state.lastDuration = 0
		state.totalDuration = 0
		state.executionCount = 0
		state.minDuration = math.MaxFloat64
		state.maxDuration = 0
	}
}

func (t *Timer) Lines() []string {
	lines := make([]string, 0, len(t.timerNames))
	for _, name := range t.timerNames {
		lines = append(lines, t.states[name].String())
	}
	return lines
}

func (t *Timer) String() string {
	return strings.Join(t.Lines(), "\n")
}

// Start begins timing the named section. Calling the returned func stops it
// and returns the elapsed milliseconds.
func (t *Timer) Start(name string) func() float64 {
	state, ok := t.states[name]
	if !ok {
		t.timerNames = append(t.timerNames, name)
		state = &TimerState{
			name:        name,
			minDuration: math.MaxFloat64,
		}
		t.states[name] = state
	}
	start := t.now()
	return func() float64 {
		durationInMS := float64(t.now().Sub(start).Microseconds()) / 1000.0
		state.record(durationInMS)
		return durationInMS
	}
}
