package engine

import (
	"fmt"
	"strconv"

	"github.com/Zyko0/go-sdl3/sdl"
	"github.com/Zyko0/go-sdl3/ttf"
)

type resOption struct {
	W, H  int
	Label string
}

var resOptions = []resOption{
	{1024, 768, "1024x768 (XGA)"},
	{1200, 800, "1200x800"},
	{1440, 900, "1440x900 (WXGA+)"},
	{1920, 1080, "1920x1080 (FHD)"},
	{2560, 1440, "2560x1440 (QHD)"},
}

const (
	fieldAssets = iota
	fieldSchedule
	fieldOutput
	numFields
)

var fieldLabels = [numFields]string{
	"Assets Directory:",
	"Trial Schedule CSV (optional):",
	"Output Results CSV:",
}

type setupForm struct {
	cfg      *Config
	window   *sdl.Window
	renderer *sdl.Renderer
	font     *ttf.Font
	focus    int
	res      int
	done     bool
}

func (f *setupForm) field(i int) *string {
	switch i {
	case fieldAssets:
		return &f.cfg.AssetsDir
	case fieldSchedule:
		return &f.cfg.ScheduleFile
	case fieldOutput:
		return &f.cfg.OutputFile
	}
	return nil
}

func inside(mx, my, x, y, w, h float32) bool {
	return mx >= x && mx <= x+w && my >= y && my <= y+h
}

func fieldY(i int) float32 { return float32(50 + i*70) }

// RunGuiSetup shows a settings form and reports whether the user pressed
// START. Settings are remembered in cachePath.
func RunGuiSetup(cfg *Config, cachePath string) bool {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		fmt.Printf("SDL_Init Error: %v\n", err)
		return false
	}
	defer sdl.Quit()

	if err := ttf.Init(); err != nil {
		fmt.Printf("TTF_Init Error: %v\n", err)
		return false
	}
	defer ttf.Quit()

	window, renderer, err := sdl.CreateWindowAndRenderer("priming setup", 800, 700, 0)
	if err != nil {
		fmt.Printf("CreateWindowAndRenderer Error: %v\n", err)
		return false
	}
	defer window.Destroy()
	defer renderer.Destroy()

	fontPath := GetDefaultFontPath()
	if fontPath == "" {
		fmt.Println("Error: No default font found for GUI setup")
		return false
	}
	guiFont, err := ttf.OpenFont(fontPath, 18)
	if err != nil {
		fmt.Printf("Failed to load GUI font: %v\n", err)
		return false
	}
	defer guiFont.Close()

	f := &setupForm{cfg: cfg, window: window, renderer: renderer, font: guiFont, focus: -1, res: 2}
	for i, r := range resOptions {
		if cfg.ScreenWidth == r.W && cfg.ScreenHeight == r.H {
			f.res = i
			break
		}
	}

	window.StartTextInput()
	defer window.StopTextInput()

	for !f.done {
		var e sdl.Event
		for sdl.PollEvent(&e) {
			switch e.Type {
			case sdl.EVENT_QUIT:
				return false
			case sdl.EVENT_MOUSE_BUTTON_DOWN:
				me := e.MouseButtonEvent()
				f.click(me.X, me.Y)
			case sdl.EVENT_TEXT_INPUT:
				if t := f.field(f.focus); t != nil {
					*t += e.TextInputEvent().Text
				}
			case sdl.EVENT_KEY_DOWN:
				if t := f.field(f.focus); t != nil && e.KeyboardEvent().Key == sdl.K_BACKSPACE && len(*t) > 0 {
					*t = (*t)[:len(*t)-1]
				}
			}
		}
		f.draw()
		sdl.Delay(10)
	}

	if err := cfg.SaveCache(cachePath); err != nil {
		fmt.Printf("Failed to save settings: %v\n", err)
	}
	return true
}

func (f *setupForm) click(mx, my float32) {
	f.focus = -1
	for i := 0; i < numFields; i++ {
		y := fieldY(i)
		if inside(mx, my, 50, y, 650, 30) {
			f.focus = i
		}
		if inside(mx, my, 710, y, 70, 30) {
			f.browse(i)
		}
	}

	// Trial count stepper.
	if inside(mx, my, 230, 260, 30, 30) && f.cfg.NumTrials > 1 {
		f.cfg.NumTrials--
	}
	if inside(mx, my, 330, 260, 30, 30) {
		f.cfg.NumTrials++
	}

	for i := range resOptions {
		if inside(mx, my, 50, float32(320+i*40), 250, 30) {
			f.res = i
		}
	}

	if inside(mx, my, 450, 320, 250, 30) {
		f.cfg.UseFixation = !f.cfg.UseFixation
	}
	if inside(mx, my, 450, 370, 250, 30) {
		f.cfg.Fullscreen = !f.cfg.Fullscreen
	}

	if inside(mx, my, 350, 620, 100, 40) && f.cfg.AssetsDir != "" {
		f.cfg.ScreenWidth = resOptions[f.res].W
		f.cfg.ScreenHeight = resOptions[f.res].H
		f.done = true
	}
}

func (f *setupForm) browse(i int) {
	target := f.field(i)
	cb := sdl.NewDialogFileCallback(func(fileList []string, filter int32) {
		if len(fileList) > 0 {
			*target = fileList[0]
		}
	})
	switch i {
	case fieldAssets:
		sdl.ShowOpenFolderDialog(cb, f.window, "", false)
	case fieldSchedule:
		filters := []sdl.DialogFileFilter{{Name: "CSV Files", Pattern: "csv"}}
		sdl.ShowOpenFileDialog(cb, f.window, filters, "", false)
	case fieldOutput:
		sdl.ShowSaveFileDialog(cb, f.window, nil, "results.csv")
	}
}

func (f *setupForm) text(s string, x, y float32, c sdl.Color) {
	if s == "" {
		return
	}
	surf, err := f.font.RenderTextBlended(s, c)
	if err != nil || surf == nil {
		return
	}
	defer surf.Destroy()
	tex, err := f.renderer.CreateTextureFromSurface(surf)
	if err != nil {
		return
	}
	r := sdl.FRect{X: x, Y: y, W: float32(surf.W), H: float32(surf.H)}
	f.renderer.RenderTexture(tex, nil, &r)
	tex.Destroy()
}

func (f *setupForm) box(x, y, w, h float32, fill, border sdl.Color) {
	r := sdl.FRect{X: x, Y: y, W: w, H: h}
	f.renderer.SetDrawColor(fill.R, fill.G, fill.B, fill.A)
	f.renderer.RenderFillRect(&r)
	f.renderer.SetDrawColor(border.R, border.G, border.B, border.A)
	f.renderer.RenderRect(&r)
}

func (f *setupForm) checkbox(label string, x, y float32, on bool) {
	black := sdl.Color{A: 255}
	white := sdl.Color{R: 255, G: 255, B: 255, A: 255}
	f.box(x, y, 20, 20, white, black)
	if on {
		green := sdl.Color{G: 150, A: 255}
		f.box(x+4, y+4, 12, 12, green, green)
	}
	f.text(label, x+30, y, black)
}

func (f *setupForm) draw() {
	black := sdl.Color{A: 255}
	white := sdl.Color{R: 255, G: 255, B: 255, A: 255}
	grey := sdl.Color{R: 200, G: 200, B: 200, A: 255}
	idle := sdl.Color{R: 180, G: 180, B: 180, A: 255}
	blue := sdl.Color{G: 120, B: 255, A: 255}

	f.renderer.SetDrawColor(240, 240, 240, 255)
	f.renderer.Clear()

	for i := 0; i < numFields; i++ {
		y := fieldY(i)
		f.text(fieldLabels[i], 50, y-30, black)
		border := idle
		if f.focus == i {
			border = blue
		}
		f.box(50, y, 650, 30, white, border)
		f.text(*f.field(i), 55, y+5, black)
		f.box(710, y, 70, 30, grey, black)
		f.text("...", 735, y+5, black)
	}

	f.text("Trials:", 50, 265, black)
	f.box(230, 260, 30, 30, grey, black)
	f.text("-", 240, 265, black)
	f.text(strconv.Itoa(f.cfg.NumTrials), 280, 265, black)
	f.box(330, 260, 30, 30, grey, black)
	f.text("+", 340, 265, black)

	for i, opt := range resOptions {
		f.checkbox(opt.Label, 50, float32(320+i*40), f.res == i)
	}
	f.checkbox("Show fixation cross", 450, 320, f.cfg.UseFixation)
	f.checkbox("Fullscreen mode", 450, 370, f.cfg.Fullscreen)

	start := sdl.Color{G: 150, A: 255}
	if f.cfg.AssetsDir == "" {
		start = idle
	}
	f.box(350, 620, 100, 40, start, start)
	f.text("START", 375, 630, white)

	f.renderer.Present()
}
