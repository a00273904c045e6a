package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/Zyko0/go-sdl3/sdl"
	"github.com/Zyko0/go-sdl3/ttf"

	"github.com/MWalidJ/Psychopy-priming-experiment/design"
	"github.com/MWalidJ/Psychopy-priming-experiment/placement"
)

// Summary is what a finished or aborted session produced.
type Summary struct {
	Trials     int
	Detections int
	ResultFile string
	Aborted    bool
}

// Run opens the experiment window and runs a full session. Results are
// saved even when the participant aborts; the abort is reported in the
// summary rather than as an error.
func Run(cfg *Config) (*Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := placement.NewRand(seed)

	trials, count, err := planTrials(cfg, rng)
	if err != nil {
		return nil, err
	}
	log.Info("session planned", "trials", count, "seed", seed, "schedule", cfg.ScheduleFile)

	assets, err := LoadAssets(cfg.AssetsDir, cfg.ScreenWidth)
	if err != nil {
		return nil, err
	}

	flags := sdl.INIT_VIDEO | sdl.INIT_EVENTS
	if cfg.FeedbackSound != "" {
		flags |= sdl.INIT_AUDIO
	}
	if err := sdl.Init(flags); err != nil {
		return nil, fmt.Errorf("SDL_Init: %w", err)
	}
	defer sdl.Quit()

	if err := ttf.Init(); err != nil {
		return nil, fmt.Errorf("TTF_Init: %w", err)
	}
	defer ttf.Quit()

	windowFlags := sdl.WINDOW_RESIZABLE
	if cfg.Fullscreen {
		windowFlags |= sdl.WINDOW_FULLSCREEN
	}
	window, renderer, err := sdl.CreateWindowAndRenderer("priming", cfg.ScreenWidth, cfg.ScreenHeight, windowFlags)
	if err != nil {
		return nil, fmt.Errorf("CreateWindowAndRenderer: %w", err)
	}
	defer window.Destroy()
	defer renderer.Destroy()

	if cfg.VSync {
		renderer.SetVSync(1)
	} else {
		renderer.SetVSync(0)
	}

	font := openFont(cfg, log)
	defer func() {
		if font != nil {
			font.Close()
		}
	}()

	archive, cleanup, err := openArchive(cfg)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	textures := NewTextureCache(renderer)
	defer textures.Destroy()

	session := &Session{
		Cfg:      cfg,
		Screen:   NewScreen(renderer, font, cfg),
		Textures: textures,
		Stage: &Stage{
			Assets:     assets,
			Fraction:   cfg.ResizeFraction,
			Rng:        rng,
			ArchiveDir: archive,
		},
		Trials: trials,
		Count:  count,
		Log:    log,
	}

	if cfg.FeedbackSound != "" {
		snd, err := LoadSound(cfg.FeedbackSound)
		if err != nil {
			log.Warn("feedback sound disabled", "error", err)
		} else {
			mixer := NewAudioMixer()
			stream, err := mixer.Open()
			if err != nil {
				log.Warn("feedback sound disabled", "error", err)
			} else {
				defer stream.Destroy()
				session.Mixer, session.Feedback = mixer, snd
			}
		}
	}

	if cfg.DLPDevice != "" {
		dlp, err := NewDLPIO8G(cfg.DLPDevice, 9600)
		if err != nil {
			log.Warn("trigger device disabled", "device", cfg.DLPDevice, "error", err)
		} else {
			defer dlp.Close()
			session.DLP = dlp
		}
	}

	runErr := session.Run()
	summary := &Summary{
		Trials:     len(session.Results.Entries),
		Detections: session.Results.Detections(),
		Aborted:    errors.Is(runErr, ErrAborted),
	}
	if runErr != nil && !summary.Aborted {
		return summary, runErr
	}

	outputName := TimestampedName(cfg.OutputFile, time.Now())
	if err := session.Results.Save(outputName); err != nil {
		return summary, fmt.Errorf("save results: %w", err)
	}
	summary.ResultFile = outputName
	log.Info("results saved", "file", outputName, "trials", summary.Trials, "detections", summary.Detections, "aborted", summary.Aborted)
	return summary, nil
}

// planTrials picks the trial source. Trials and placements share rng, so a
// seed reproduces the whole session. A schedule file fixes the trial count
// to its length.
func planTrials(cfg *Config, rng *rand.Rand) (TrialSource, int, error) {
	if cfg.ScheduleFile == "" {
		return RandomTrials(rng), cfg.NumTrials, nil
	}
	trials, err := design.LoadSchedule(cfg.ScheduleFile)
	if err != nil {
		return nil, 0, fmt.Errorf("load schedule: %w", err)
	}
	if len(trials) == 0 {
		return nil, 0, fmt.Errorf("schedule %s has no trials", cfg.ScheduleFile)
	}
	return ScheduledTrials(trials), len(trials), nil
}

func openFont(cfg *Config, log *slog.Logger) *ttf.Font {
	path := cfg.FontFile
	if path == "" {
		path = GetDefaultFontPath()
	}
	if path == "" {
		log.Warn("no font found, instructions go to stdout")
		return nil
	}
	font, err := ttf.OpenFont(path, float32(cfg.FontSize))
	if err != nil {
		log.Warn("failed to load font", "font", path, "error", err)
		return nil
	}
	return font
}

// openArchive returns where composites are written. Without a configured
// directory a temporary one is used and removed by cleanup.
func openArchive(cfg *Config) (string, func(), error) {
	if cfg.ArchiveDir != "" {
		if err := os.MkdirAll(cfg.ArchiveDir, 0o755); err != nil {
			return "", nil, err
		}
		return cfg.ArchiveDir, func() {}, nil
	}
	dir, err := os.MkdirTemp("", "priming-*")
	if err != nil {
		return "", nil, err
	}
	return dir, func() { os.RemoveAll(dir) }, nil
}

// TimestampedName inserts the time before the .csv extension, or appends it
// when the name has none.
func TimestampedName(name string, t time.Time) string {
	stamp := "_" + t.Format("20060102-150405")
	if strings.HasSuffix(name, ".csv") {
		return strings.TrimSuffix(name, ".csv") + stamp + ".csv"
	}
	return name + stamp + ".csv"
}
