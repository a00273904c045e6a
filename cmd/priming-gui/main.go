package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/Zyko0/go-sdl3/bin/binimg"
	"github.com/Zyko0/go-sdl3/bin/binsdl"
	"github.com/Zyko0/go-sdl3/bin/binttf"

	"github.com/MWalidJ/Psychopy-priming-experiment/engine"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if !run() {
		os.Exit(1)
	}
}

func run() bool {
	defer binsdl.Load().Unload()
	defer binimg.Load().Unload()
	defer binttf.Load().Unload()

	cfg := engine.DefaultConfig()
	if err := cfg.LoadCache(engine.CacheFile); err != nil {
		fmt.Printf("Ignoring settings cache: %v\n", err)
	}

	if !engine.RunGuiSetup(cfg, engine.CacheFile) {
		return true
	}

	summary, err := engine.Run(cfg)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return false
	}
	fmt.Printf("Results saved to %s\n", summary.ResultFile)
	fmt.Println(summary.Detections)
	return true
}
