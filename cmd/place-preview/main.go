// place-preview hides the object on one background once per region and
// writes the composites as PNG files, printing where the object went. It is
// meant for checking an asset set and a resize fraction before a session.
//
//	place-preview -assets assets -bg 6 -resize 0.08 -seed 42 -out preview
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/MWalidJ/Psychopy-priming-experiment/design"
	"github.com/MWalidJ/Psychopy-priming-experiment/engine"
	"github.com/MWalidJ/Psychopy-priming-experiment/placement"
)

func main() {
	assetsDir := flag.String("assets", "assets", "Assets directory")
	bgIdx := flag.Int("bg", 0, fmt.Sprintf("Background index (0-%d)", design.NumBackgrounds-1))
	resize := flag.Float64("resize", 0.1, "Object width as a fraction of the background width")
	width := flag.Int("width", 1200, "Scale the background to this width first (0 keeps it)")
	seed := flag.Int64("seed", 0, "Random seed (0 = from clock)")
	outDir := flag.String("out", "preview", "Output directory")
	flag.Parse()

	if *bgIdx < 0 || *bgIdx >= design.NumBackgrounds {
		fmt.Printf("Error: background index %d out of range\n", *bgIdx)
		os.Exit(2)
	}

	obj, err := engine.LoadImage(filepath.Join(*assetsDir, engine.ObjectFile))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	bg, err := engine.LoadImage(engine.BackgroundPath(*assetsDir, *bgIdx))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if *width > 0 {
		bg = placement.Resize(bg, *width)
	}

	failed := false
	for _, region := range placement.Regions() {
		// Each region gets its own generator so a seed pins every preview.
		var rng *rand.Rand
		if *seed != 0 {
			rng = placement.NewRand(*seed)
		}
		img, at, err := placement.Place(obj, bg, region, *resize, rng)
		if err != nil {
			fmt.Printf("%-10s error: %v\n", region, err)
			failed = true
			continue
		}
		path := filepath.Join(*outDir, fmt.Sprintf("bg%02d_%s.png", *bgIdx, region))
		if err := engine.SavePNG(path, img); err != nil {
			fmt.Printf("%-10s error: %v\n", region, err)
			failed = true
			continue
		}
		fmt.Printf("%-10s (%d, %d) -> %s\n", region, at.X, at.Y, path)
	}
	if failed {
		os.Exit(1)
	}
}
