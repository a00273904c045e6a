// schedule writes a trial list for the priming task so several
// participants can run the same conditions.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/MWalidJ/Psychopy-priming-experiment/design"
	"github.com/MWalidJ/Psychopy-priming-experiment/placement"
)

func main() {
	n := flag.Int("n", 10, "Number of trials")
	seed := flag.Int64("seed", 0, "Random seed (0 = from clock)")
	out := flag.String("out", "schedule.csv", "Output CSV file")
	flag.Parse()

	if *n <= 0 {
		fmt.Println("Error: -n must be positive")
		os.Exit(2)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	trials := design.Sequence(placement.NewRand(*seed), *n)
	if err := design.SaveSchedule(*out, trials); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	congruent := 0
	for _, t := range trials {
		if t.Congruent {
			congruent++
		}
	}
	fmt.Printf("Wrote %d trials (%d congruent, seed %d) to %s\n", len(trials), congruent, *seed, *out)
}
