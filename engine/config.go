package engine

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Zyko0/go-sdl3/sdl"
)

type Config struct {
	AssetsDir      string
	ScheduleFile   string
	ProtocolFile   string
	OutputFile     string
	ArchiveDir     string
	FontFile       string
	FeedbackSound  string
	DLPDevice      string
	LogLevel       string
	LogFormat      string
	FontSize       int
	ScreenWidth    int
	ScreenHeight   int
	NumTrials      int
	Seed           int64 // 0 draws a seed from the clock
	ScaleFactor    float32
	ResizeFraction float64
	FixationMS     uint64
	PrimeMS        uint64
	MaxResponseMS  uint64
	UseFixation    bool
	Fullscreen     bool
	VSync          bool
	BGColor        sdl.Color
	TextColor      sdl.Color
	FixationColor  sdl.Color
}

func DefaultConfig() *Config {
	return &Config{
		AssetsDir:      "assets",
		OutputFile:     "results.csv",
		LogLevel:       "info",
		LogFormat:      "text",
		FontSize:       25,
		ScreenWidth:    1440,
		ScreenHeight:   900,
		NumTrials:      10,
		ScaleFactor:    1.0,
		ResizeFraction: 0.1,
		FixationMS:     500,
		PrimeMS:        100,
		MaxResponseMS:  30000,
		UseFixation:    true,
		VSync:          true,
		BGColor:        sdl.Color{R: 0, G: 0, B: 0, A: 255},
		TextColor:      sdl.Color{R: 255, G: 255, B: 255, A: 255},
		FixationColor:  sdl.Color{R: 255, G: 255, B: 255, A: 255},
	}
}

// Validate reports the first setting that would prevent a session from running.
func (cfg *Config) Validate() error {
	switch {
	case cfg.AssetsDir == "":
		return ErrNoAssets
	case cfg.ScheduleFile == "" && cfg.NumTrials <= 0:
		return fmt.Errorf("number of trials must be positive, got %d", cfg.NumTrials)
	case cfg.ResizeFraction <= 0 || cfg.ResizeFraction > 1:
		return fmt.Errorf("resize fraction must be in (0, 1], got %v", cfg.ResizeFraction)
	case cfg.ScreenWidth <= 0 || cfg.ScreenHeight <= 0:
		return fmt.Errorf("invalid screen size %dx%d", cfg.ScreenWidth, cfg.ScreenHeight)
	case cfg.PrimeMS == 0:
		return errors.New("prime duration must be positive")
	case cfg.MaxResponseMS == 0:
		return errors.New("max response time must be positive")
	case cfg.ScaleFactor <= 0:
		return fmt.Errorf("scale factor must be positive, got %v", cfg.ScaleFactor)
	}
	return nil
}

// ParseColor reads "R,G,B" or "R,G,B,A". Alpha defaults to opaque.
func ParseColor(s string) (sdl.Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return sdl.Color{}, fmt.Errorf("color %q: want R,G,B[,A]", s)
	}
	v := [4]uint8{0, 0, 0, 255}
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return sdl.Color{}, fmt.Errorf("color %q: %w", s, err)
		}
		v[i] = uint8(n)
	}
	return sdl.Color{R: v[0], G: v[1], B: v[2], A: v[3]}, nil
}

func formatColor(c sdl.Color) string {
	return fmt.Sprintf("%d,%d,%d,%d", c.R, c.G, c.B, c.A)
}

const CacheFile = ".priming_cache"

// SaveCache remembers the settings edited in the setup window.
func (cfg *Config) SaveCache(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "assets_dir=%s\n", cfg.AssetsDir)
	fmt.Fprintf(f, "schedule_file=%s\n", cfg.ScheduleFile)
	fmt.Fprintf(f, "output_file=%s\n", cfg.OutputFile)
	fmt.Fprintf(f, "trials=%d\n", cfg.NumTrials)
	fmt.Fprintf(f, "resize=%g\n", cfg.ResizeFraction)
	fmt.Fprintf(f, "screen_w=%d\n", cfg.ScreenWidth)
	fmt.Fprintf(f, "screen_h=%d\n", cfg.ScreenHeight)
	fmt.Fprintf(f, "use_fixation=%s\n", boolFlag(cfg.UseFixation))
	fmt.Fprintf(f, "fullscreen=%s\n", boolFlag(cfg.Fullscreen))
	fmt.Fprintf(f, "bg_color=%s\n", formatColor(cfg.BGColor))
	fmt.Fprintf(f, "text_color=%s\n", formatColor(cfg.TextColor))
	return f.Close()
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// LoadCache applies a cache written by SaveCache. Unknown keys and
// unparsable values are ignored; a missing file is not an error.
func (cfg *Config) LoadCache(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		val = strings.TrimSpace(val)

		switch key {
		case "assets_dir":
			cfg.AssetsDir = val
		case "schedule_file":
			cfg.ScheduleFile = val
		case "output_file":
			cfg.OutputFile = val
		case "trials":
			if n, err := strconv.Atoi(val); err == nil {
				cfg.NumTrials = n
			}
		case "resize":
			if f, err := strconv.ParseFloat(val, 64); err == nil {
				cfg.ResizeFraction = f
			}
		case "screen_w":
			if n, err := strconv.Atoi(val); err == nil {
				cfg.ScreenWidth = n
			}
		case "screen_h":
			if n, err := strconv.Atoi(val); err == nil {
				cfg.ScreenHeight = n
			}
		case "use_fixation":
			cfg.UseFixation = val != "0"
		case "fullscreen":
			cfg.Fullscreen = val != "0"
		case "bg_color":
			if c, err := ParseColor(val); err == nil {
				cfg.BGColor = c
			}
		case "text_color":
			if c, err := ParseColor(val); err == nil {
				cfg.TextColor = c
			}
		}
	}
	return nil
}
