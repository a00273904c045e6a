// Package design draws the per-trial conditions of the priming task: which
// background is shown, which pair of arrows primes the participant and
// where the object is actually hidden.
package design

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/MWalidJ/Psychopy-priming-experiment/placement"
)

// NumBackgrounds is the size of the fixed background set.
const NumBackgrounds = 8

type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case Up, Down, Left, Right:
		return d, nil
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

// PrimePair is the vertical and horizontal arrow shown before the target.
type PrimePair struct {
	Vertical   Direction
	Horizontal Direction
}

func (p PrimePair) String() string {
	return string(p.Vertical) + "_" + string(p.Horizontal)
}

// Region is the quadrant the pair points at.
func (p PrimePair) Region() placement.Region {
	r, err := placement.ParseRegion(p.String())
	if err != nil {
		return placement.Anywhere
	}
	return r
}

// Primes is the canonical prime list. Entry i+2 (mod 4) points at the
// quadrant diagonally opposite entry i.
var Primes = [4]PrimePair{
	{Down, Right},
	{Down, Left},
	{Up, Left},
	{Up, Right},
}

// PrimeIndex returns the position of p in Primes, or -1.
func PrimeIndex(p PrimePair) int {
	for i, q := range Primes {
		if q == p {
			return i
		}
	}
	return -1
}

// Trial is one immutable set of trial conditions.
type Trial struct {
	Background int
	Prime      PrimePair
	Congruent  bool
	Region     placement.Region
}

// ResolveRegion returns where the object goes for the i-th prime pair.
// Incongruent trials reverse both axes.
func ResolveRegion(i int, congruent bool) placement.Region {
	if !congruent {
		i = (i + 2) % len(Primes)
	}
	return Primes[i].Region()
}

// NewTrial builds a trial from explicit conditions.
func NewTrial(background int, prime PrimePair, congruent bool) (Trial, error) {
	if background < 0 || background >= NumBackgrounds {
		return Trial{}, fmt.Errorf("background index %d out of range [0, %d)", background, NumBackgrounds)
	}
	i := PrimeIndex(prime)
	if i < 0 {
		return Trial{}, fmt.Errorf("prime pair %s is not one of the canonical pairs", prime)
	}
	return Trial{
		Background: background,
		Prime:      prime,
		Congruent:  congruent,
		Region:     ResolveRegion(i, congruent),
	}, nil
}

// DesignTrial draws a background, then a prime pair, then congruency from rng.
func DesignTrial(rng *rand.Rand) Trial {
	bg := rng.Intn(NumBackgrounds)
	i := rng.Intn(len(Primes))
	congruent := rng.Intn(2) == 1
	return Trial{
		Background: bg,
		Prime:      Primes[i],
		Congruent:  congruent,
		Region:     ResolveRegion(i, congruent),
	}
}

// Sequence designs n consecutive trials.
func Sequence(rng *rand.Rand, n int) []Trial {
	trials := make([]Trial, n)
	for i := range trials {
		trials[i] = DesignTrial(rng)
	}
	return trials
}
