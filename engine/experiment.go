package engine

import (
	"encoding/csv"
	"fmt"
	"image"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Zyko0/go-sdl3/sdl"

	"github.com/MWalidJ/Psychopy-priming-experiment/design"
	"github.com/MWalidJ/Psychopy-priming-experiment/placement"
)

const (
	welcomeText = `Welcome to the priming task!

You are about to be presented with an object which you need to memorize.

The object will be hidden in a series of images and your task is to find the object.

Each image will be presented for %d seconds, if you find the object during that time frame press the SPACE bar key.

If you did not find the object do not worry about it.

Between each task you will be presented with a cross that you need to focus your gaze on.

Thank you very much for participating. Enjoy!

Press the SPACE bar key to continue.`

	ObjectViewText = "Press SPACE to view the object and then press SPACE again once you are ready to start"

	EndText = "The task is complete. Thank you!"
)

// WelcomeText is the first instruction screen for a given search time.
func WelcomeText(maxResponseMS uint64) string {
	return fmt.Sprintf(welcomeText, (maxResponseMS+999)/1000)
}

// TrialResult is one row of the results file.
type TrialResult struct {
	Trial         int
	Design        design.Trial
	At            image.Point
	Detected      bool
	RTMS          uint64
	TargetOnsetMS uint64
}

type ResultLog struct {
	Entries []TrialResult
}

func (l *ResultLog) Add(r TrialResult) {
	l.Entries = append(l.Entries, r)
}

// Detections counts trials where the participant reported the object.
func (l *ResultLog) Detections() int {
	n := 0
	for _, e := range l.Entries {
		if e.Detected {
			n++
		}
	}
	return n
}

var resultHeader = []string{
	"trial", "background", "vertical", "horizontal", "congruent", "region",
	"x", "y", "detected", "rt_ms", "target_onset_ms",
}

func (l *ResultLog) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Write(resultHeader)
	for _, e := range l.Entries {
		rt := ""
		if e.Detected {
			rt = strconv.FormatUint(e.RTMS, 10)
		}
		w.Write([]string{
			strconv.Itoa(e.Trial),
			strconv.Itoa(e.Design.Background),
			string(e.Design.Prime.Vertical),
			string(e.Design.Prime.Horizontal),
			strconv.FormatBool(e.Design.Congruent),
			e.Design.Region.String(),
			strconv.Itoa(e.At.X),
			strconv.Itoa(e.At.Y),
			strconv.FormatBool(e.Detected),
			rt,
			strconv.FormatUint(e.TargetOnsetMS, 10),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// TrialSource yields the conditions of trial n (0-based).
type TrialSource func(n int) design.Trial

// RandomTrials designs every trial on demand from rng.
func RandomTrials(rng *rand.Rand) TrialSource {
	return func(int) design.Trial { return design.DesignTrial(rng) }
}

// ScheduledTrials replays a fixed list.
func ScheduledTrials(trials []design.Trial) TrialSource {
	return func(n int) design.Trial { return trials[n] }
}

// Stage composes the target image of one trial and archives it as PNG so
// it can be uploaded to the renderer and kept with the results.
type Stage struct {
	Assets     *Assets
	Fraction   float64
	Rng        *rand.Rand
	ArchiveDir string
}

func (st *Stage) Compose(n int, t design.Trial) (string, image.Point, error) {
	if t.Background < 0 || t.Background >= len(st.Assets.Backgrounds) {
		return "", image.Point{}, fmt.Errorf("trial %d: background %d not loaded", n+1, t.Background)
	}
	bg := st.Assets.Backgrounds[t.Background]
	composite, at, err := placement.Place(st.Assets.Object, bg, t.Region, st.Fraction, st.Rng)
	if err != nil {
		return "", image.Point{}, fmt.Errorf("trial %d: %w", n+1, err)
	}
	path := filepath.Join(st.ArchiveDir, fmt.Sprintf("trial_%03d_%s.png", n+1, t.Region))
	if err := SavePNG(path, composite); err != nil {
		return "", image.Point{}, fmt.Errorf("trial %d: archive composite: %w", n+1, err)
	}
	return path, at, nil
}

// Session runs the instruction screens and the trial loop on an open
// window.
type Session struct {
	Cfg      *Config
	Screen   *Screen
	Textures *TextureCache
	Stage    *Stage
	Trials   TrialSource
	Count    int
	Mixer    *AudioMixer
	Feedback *SoundResource
	DLP      *DLPIO8G
	Log      *slog.Logger
	Results  ResultLog
}

var spaceOnly = []sdl.Keycode{sdl.K_SPACE}

// Run shows the instructions, the object preview and every trial. Results
// collected before an abort are kept in s.Results.
func (s *Session) Run() error {
	if _, err := s.Screen.ShowText(WelcomeText(s.Cfg.MaxResponseMS), 0, spaceOnly...); err != nil {
		return err
	}
	if _, err := s.Screen.ShowText(ObjectViewText, 0, spaceOnly...); err != nil {
		return err
	}
	obj, err := s.Textures.Load(s.Stage.Assets.ObjectPath)
	if err != nil {
		return err
	}
	if _, err := s.Screen.Show(obj, Component{Label: "object", Mode: ModeKeypress, Keys: spaceOnly}); err != nil {
		return err
	}

	for n := 0; n < s.Count; n++ {
		t := s.Trials(n)
		res, err := s.runTrial(n, t)
		if err != nil {
			return err
		}
		s.Results.Add(res)
		fmt.Printf("\rTrial: %d/%d ", n+1, s.Count)
		os.Stdout.Sync()
	}
	fmt.Println()

	_, err = s.Screen.ShowText(EndText, 5000, spaceOnly...)
	return err
}

func (s *Session) cue(c Cue) *Texture {
	path, ok := s.Stage.Assets.Cues[c]
	if !ok {
		return nil
	}
	t, err := s.Textures.Load(path)
	if err != nil {
		s.Log.Warn("cue not drawable", "cue", c, "error", err)
		return nil
	}
	return t
}

func (s *Session) runTrial(n int, t design.Trial) (TrialResult, error) {
	res := TrialResult{Trial: n + 1, Design: t}

	path, at, err := s.Stage.Compose(n, t)
	if err != nil {
		return res, err
	}
	res.At = at
	target, err := LoadTexture(s.Screen.renderer, path)
	if err != nil {
		return res, err
	}
	defer target.Destroy()

	s.Log.Debug("trial", "n", n+1, "background", t.Background, "prime", t.Prime.String(),
		"congruent", t.Congruent, "region", t.Region.String(), "x", at.X, "y", at.Y)

	if s.Cfg.UseFixation && s.Cfg.FixationMS > 0 {
		if _, err := s.Screen.Show(s.cue(CueCross), Component{Label: "fixation", Mode: ModeTime, DurationMS: s.Cfg.FixationMS}); err != nil {
			return res, err
		}
	}

	for _, d := range []design.Direction{t.Prime.Horizontal, t.Prime.Vertical} {
		prime := s.cue(CueFor(d))
		if prime == nil {
			return res, fmt.Errorf("trial %d: no cue image for %s", n+1, d)
		}
		s.trigger(s.DLP.Pulse, LinePrime)
		if _, err := s.Screen.Show(prime, Component{Label: string(d), Mode: ModeTime, DurationMS: s.Cfg.PrimeMS}); err != nil {
			return res, err
		}
	}

	s.trigger(s.DLP.Set, LineTarget)
	resp, err := s.Screen.Show(target, Component{
		Label:      "target",
		Mode:       ModeKeypress,
		DurationMS: s.Cfg.MaxResponseMS,
		Keys:       spaceOnly,
	})
	s.trigger(s.DLP.Unset, LineTarget)
	if err != nil {
		return res, err
	}

	res.TargetOnsetMS = resp.OnsetMS
	if resp.Pressed {
		res.Detected = true
		res.RTMS = resp.RTMS
		s.trigger(s.DLP.Pulse, LineResponse)
		s.Mixer.Play(s.Feedback)
	}
	return res, nil
}

func (s *Session) trigger(fn func(string) error, line string) {
	if err := fn(line); err != nil {
		s.Log.Warn("trigger write failed", "line", line, "error", err)
	}
}
