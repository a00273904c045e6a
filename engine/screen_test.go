package engine

import (
	"strings"
	"testing"

	"github.com/Zyko0/go-sdl3/sdl"
	"github.com/stretchr/testify/assert"
)

func TestWrapLine(t *testing.T) {
	assert.Equal(t, []string{"short"}, wrapLine("short", 20))
	assert.Equal(t, []string{""}, wrapLine("", 20))
	assert.Equal(t,
		[]string{"the object will", "be hidden in a", "series of images"},
		wrapLine("the object will be hidden in a series of images", 16))
	assert.Equal(t, []string{"a", "verylongword", "b"}, wrapLine("a verylongword b", 5))
}

func TestWelcomeTextSeconds(t *testing.T) {
	assert.True(t, strings.Contains(WelcomeText(30000), "presented for 30 seconds"))
	assert.True(t, strings.Contains(WelcomeText(2500), "presented for 3 seconds"))
}

func TestFit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ScreenWidth, cfg.ScreenHeight = 1000, 500
	s := &Screen{cfg: cfg}

	// Small stimuli are centred at native size.
	assert.Equal(t, sdl.FRect{X: 450, Y: 200, W: 100, H: 100}, s.fit(100, 100))

	// Wide stimuli shrink to the window width.
	assert.Equal(t, sdl.FRect{X: 0, Y: 150, W: 1000, H: 200}, s.fit(2000, 400))

	// Tall stimuli shrink to the window height.
	assert.Equal(t, sdl.FRect{X: 375, Y: 0, W: 250, H: 500}, s.fit(500, 1000))

	cfg.ScaleFactor = 0.5
	assert.Equal(t, sdl.FRect{X: 475, Y: 225, W: 50, H: 50}, s.fit(100, 100))
}

func TestComponentAccepts(t *testing.T) {
	c := Component{Mode: ModeKeypress, Keys: spaceOnly}
	assert.True(t, c.accepts(sdl.K_SPACE))
	assert.False(t, c.accepts(sdl.K_ESCAPE))
	assert.Equal(t, "keypress", ModeKeypress.String())
	assert.Equal(t, "time", ModeTime.String())
}
