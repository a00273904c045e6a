package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/Zyko0/go-sdl3/bin/binimg"
	"github.com/Zyko0/go-sdl3/bin/binsdl"
	"github.com/Zyko0/go-sdl3/bin/binttf"

	"github.com/MWalidJ/Psychopy-priming-experiment/engine"
	"github.com/MWalidJ/Psychopy-priming-experiment/placement"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	os.Exit(run())
}

func run() int {
	defer binsdl.Load().Unload()
	defer binimg.Load().Unload()
	defer binttf.Load().Unload()

	cfg := engine.DefaultConfig()
	def := engine.DefaultConfig()

	protocol := flag.String("protocol", "", "HCL protocol file")
	assetsDir := flag.String("assets", def.AssetsDir, "Directory with backgrounds/, arrows&cross/ and the object image")
	schedule := flag.String("schedule", "", "Trial schedule CSV (overrides -trials)")
	trials := flag.Int("trials", def.NumTrials, "Number of randomly designed trials")
	resize := flag.Float64("resize", def.ResizeFraction, "Object width as a fraction of the background width")
	seed := flag.Int64("seed", 0, "Random seed (0 = from clock)")
	outputFile := flag.String("output", def.OutputFile, "Output CSV file")
	archiveDir := flag.String("archive-dir", "", "Keep composed target images in this directory")
	fontFile := flag.String("font", "", "TTF font file")
	fontSize := flag.Int("font-size", def.FontSize, "Font size")
	feedback := flag.String("feedback-sound", "", "WAV played when the object is found")
	dlpDevice := flag.String("dlp", "", "DLP-IO8-G device")
	screenW := flag.Int("width", def.ScreenWidth, "Screen width")
	screenH := flag.Int("height", def.ScreenHeight, "Screen height")
	scaleFactor := flag.Float64("scale", 1.0, "Scale factor for stimuli")
	fixationMS := flag.Uint64("fixation-ms", def.FixationMS, "Fixation duration in ms")
	primeMS := flag.Uint64("prime-ms", def.PrimeMS, "Duration of each prime in ms")
	responseMS := flag.Uint64("response-ms", def.MaxResponseMS, "Maximum search time per target in ms")
	noVSync := flag.Bool("no-vsync", false, "Disable VSync")
	noFixation := flag.Bool("no-fixation", false, "Disable fixation cross")
	fullscreen := flag.Bool("fullscreen", false, "Enable fullscreen")
	bgColorStr := flag.String("bg-color", "0,0,0,255", "Background color (R,G,B,A)")
	textColorStr := flag.String("text-color", "255,255,255,255", "Text color (R,G,B,A)")
	fixColorStr := flag.String("fixation-color", "255,255,255,255", "Fixation color (R,G,B,A)")
	logLevel := flag.String("log-level", def.LogLevel, "Log level: debug, info, warn, error")
	logFormat := flag.String("log-format", def.LogFormat, "Log format: text or json")

	flag.Parse()

	if *protocol != "" {
		p, err := engine.LoadProtocol(*protocol)
		if err != nil {
			fmt.Printf("Failed to load protocol: %v\n", err)
			return 1
		}
		p.Apply(cfg)
		cfg.ProtocolFile = *protocol
	}

	// Flags given on the command line win over the protocol file.
	var colorErr error
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "assets":
			cfg.AssetsDir = *assetsDir
		case "schedule":
			cfg.ScheduleFile = *schedule
		case "trials":
			cfg.NumTrials = *trials
		case "resize":
			cfg.ResizeFraction = *resize
		case "seed":
			cfg.Seed = *seed
		case "output":
			cfg.OutputFile = *outputFile
		case "width":
			cfg.ScreenWidth = *screenW
		case "height":
			cfg.ScreenHeight = *screenH
		case "fixation-ms":
			cfg.FixationMS = *fixationMS
		case "prime-ms":
			cfg.PrimeMS = *primeMS
		case "response-ms":
			cfg.MaxResponseMS = *responseMS
		case "fullscreen":
			cfg.Fullscreen = *fullscreen
		case "bg-color":
			cfg.BGColor, colorErr = engine.ParseColor(*bgColorStr)
		case "text-color":
			cfg.TextColor, colorErr = engine.ParseColor(*textColorStr)
		case "fixation-color":
			cfg.FixationColor, colorErr = engine.ParseColor(*fixColorStr)
		}
	})
	if colorErr != nil {
		fmt.Printf("Error: %v\n", colorErr)
		return 2
	}

	cfg.ArchiveDir = *archiveDir
	cfg.FontFile = *fontFile
	cfg.FontSize = *fontSize
	cfg.FeedbackSound = *feedback
	cfg.DLPDevice = *dlpDevice
	cfg.ScaleFactor = float32(*scaleFactor)
	cfg.VSync = !*noVSync
	cfg.UseFixation = !*noFixation
	cfg.LogLevel = *logLevel
	cfg.LogFormat = *logFormat

	summary, err := engine.Run(cfg)
	if err != nil {
		var imgErr *engine.ImageLoadError
		var regionErr *placement.InvalidRegionError
		switch {
		case errors.As(err, &imgErr):
			fmt.Printf("Missing or unreadable asset: %s (%v)\n", imgErr.Path, imgErr.Err)
		case errors.As(err, &regionErr):
			fmt.Printf("Object does not fit the %s region; lower -resize or use larger backgrounds (%v)\n", regionErr.Region, err)
		default:
			fmt.Printf("Error: %v\n", err)
		}
		return 1
	}

	if summary.Aborted {
		fmt.Printf("Session aborted after %d trials\n", summary.Trials)
	}
	fmt.Printf("Results saved to %s\n", summary.ResultFile)
	fmt.Println(summary.Detections)
	return 0
}
