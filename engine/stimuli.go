package engine

import "github.com/Zyko0/go-sdl3/sdl"

type Mode int

const (
	// ModeTime holds the stimulus for a fixed duration.
	ModeTime Mode = iota
	// ModeKeypress holds the stimulus until an accepted key or the max wait.
	ModeKeypress
)

func (m Mode) String() string {
	if m == ModeKeypress {
		return "keypress"
	}
	return "time"
}

// Component is one slide of a trial.
type Component struct {
	Label      string
	Mode       Mode
	DurationMS uint64 // duration for ModeTime, max wait for ModeKeypress (0 waits forever)
	Keys       []sdl.Keycode
}

// Response is what happened while a component was on screen. Times are
// milliseconds since the session clock started.
type Response struct {
	Pressed bool
	Key     string
	OnsetMS uint64
	RTMS    uint64
}

func (c Component) accepts(k sdl.Keycode) bool {
	for _, want := range c.Keys {
		if want == k {
			return true
		}
	}
	return false
}
