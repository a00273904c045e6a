package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Zyko0/go-sdl3/sdl"
	"github.com/Zyko0/go-sdl3/ttf"
)

// ErrAborted is returned when the participant presses ESC or closes the
// window.
var ErrAborted = errors.New("session aborted")

const CrossSize = 20

// Screen draws stimuli one at a time and collects key presses.
type Screen struct {
	renderer *sdl.Renderer
	font     *ttf.Font
	cfg      *Config

	startTicks  uint64
	lookaheadMS uint64
}

func NewScreen(renderer *sdl.Renderer, font *ttf.Font, cfg *Config) *Screen {
	rr := float32(60.0)
	if win, err := renderer.Window(); err == nil {
		display := sdl.GetDisplayForWindow(win)
		if mode, err := display.CurrentDisplayMode(); err == nil && mode.RefreshRate > 0 {
			rr = mode.RefreshRate
		}
	}
	frame := uint64(1000.0 / rr)
	return &Screen{
		renderer:    renderer,
		font:        font,
		cfg:         cfg,
		startTicks:  sdl.Ticks(),
		lookaheadMS: frame / 2,
	}
}

// Now is the session clock in milliseconds.
func (s *Screen) Now() uint64 {
	return sdl.Ticks() - s.startTicks
}

func (s *Screen) clear() {
	c := s.cfg.BGColor
	s.renderer.SetDrawColor(c.R, c.G, c.B, c.A)
	s.renderer.Clear()
}

// fit scales a w x h stimulus down to the window if needed, applies the
// configured scale factor and centres it.
func (s *Screen) fit(w, h float32) sdl.FRect {
	sw, sh := float32(s.cfg.ScreenWidth), float32(s.cfg.ScreenHeight)
	scale := float32(1)
	if w > sw {
		scale = sw / w
	}
	if h*scale > sh {
		scale = sh / h
	}
	scale *= s.cfg.ScaleFactor
	return sdl.FRect{
		X: (sw - w*scale) / 2.0,
		Y: (sh - h*scale) / 2.0,
		W: w * scale,
		H: h * scale,
	}
}

func (s *Screen) drawFixationCross() {
	c := s.cfg.FixationColor
	s.renderer.SetDrawColor(c.R, c.G, c.B, c.A)
	mx, my := float32(s.cfg.ScreenWidth)/2, float32(s.cfg.ScreenHeight)/2
	s.renderer.RenderLine(mx-CrossSize, my, mx+CrossSize, my)
	s.renderer.RenderLine(mx, my-CrossSize, mx, my+CrossSize)
}

// Show presents t, or the drawn fixation cross when t is nil, and holds it
// as c describes. The returned onset is taken right after the frame is
// presented.
func (s *Screen) Show(t *Texture, c Component) (Response, error) {
	s.clear()
	if t != nil && t.Tex != nil {
		dst := s.fit(t.W, t.H)
		s.renderer.RenderTexture(t.Tex, nil, &dst)
	} else {
		s.drawFixationCross()
	}
	s.renderer.Present()

	return s.hold(c, s.Now())
}

// hold polls events until the component ends. Timed components end half a
// frame early so the next flip lands on the intended frame.
func (s *Screen) hold(c Component, onset uint64) (Response, error) {
	resp := Response{OnsetMS: onset}
	for {
		for {
			var ev sdl.Event
			if !sdl.PollEvent(&ev) {
				break
			}
			switch ev.Type {
			case sdl.EVENT_QUIT:
				return resp, ErrAborted
			case sdl.EVENT_KEY_DOWN:
				key := ev.KeyboardEvent().Key
				if key == sdl.K_ESCAPE {
					return resp, ErrAborted
				}
				if c.Mode == ModeKeypress && c.accepts(key) {
					resp.Pressed = true
					resp.Key = key.KeyName()
					resp.RTMS = s.Now() - onset
					return resp, nil
				}
			}
		}

		elapsed := s.Now() - onset
		switch c.Mode {
		case ModeTime:
			if elapsed+s.lookaheadMS >= c.DurationMS {
				return resp, nil
			}
		case ModeKeypress:
			if c.DurationMS > 0 && elapsed >= c.DurationMS {
				return resp, nil
			}
		}
		sdl.Delay(1)
	}
}

// ShowText draws text line by line in the middle of the screen and waits
// for one of keys. Without a font the text goes to stdout instead.
func (s *Screen) ShowText(text string, maxWaitMS uint64, keys ...sdl.Keycode) (Response, error) {
	s.clear()
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if s.font == nil {
		fmt.Println(text)
	} else {
		s.drawLines(lines)
	}
	s.renderer.Present()

	return s.hold(Component{Label: "text", Mode: ModeKeypress, DurationMS: maxWaitMS, Keys: keys}, s.Now())
}

func (s *Screen) drawLines(lines []string) {
	// Rough glyph width of proportional fonts at this size.
	maxChars := int(float32(s.cfg.ScreenWidth) * 0.9 / (float32(s.cfg.FontSize) * 0.55))
	var wrapped []string
	for _, line := range lines {
		wrapped = append(wrapped, wrapLine(strings.TrimSpace(line), maxChars)...)
	}
	lines = wrapped

	lineH := float32(s.cfg.FontSize) * 1.4
	y := (float32(s.cfg.ScreenHeight) - lineH*float32(len(lines))) / 2
	for _, line := range lines {
		if line != "" {
			s.drawLine(line, y)
		}
		y += lineH
	}
}

func (s *Screen) drawLine(line string, y float32) {
	surf, err := s.font.RenderTextBlended(line, s.cfg.TextColor)
	if err != nil || surf == nil {
		return
	}
	defer surf.Destroy()

	tex, err := s.renderer.CreateTextureFromSurface(surf)
	if err != nil {
		return
	}
	defer tex.Destroy()

	w, h := float32(surf.W), float32(surf.H)
	r := sdl.FRect{X: (float32(s.cfg.ScreenWidth) - w) / 2, Y: y, W: w, H: h}
	s.renderer.RenderTexture(tex, nil, &r)
}

// wrapLine breaks line at spaces so no piece is longer than width
// characters, unless a single word is.
func wrapLine(line string, width int) []string {
	if width <= 0 || len(line) <= width {
		return []string{line}
	}
	var out []string
	cur := ""
	for _, word := range strings.Fields(line) {
		switch {
		case cur == "":
			cur = word
		case len(cur)+1+len(word) <= width:
			cur += " " + word
		default:
			out = append(out, cur)
			cur = word
		}
	}
	return append(out, cur)
}
