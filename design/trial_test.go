package design

import (
	"testing"

	"github.com/MWalidJ/Psychopy-priming-experiment/placement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesignTrialReproducible(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		a := DesignTrial(placement.NewRand(seed))
		b := DesignTrial(placement.NewRand(seed))
		assert.Equal(t, a, b)
	}
}

func TestDesignTrialRanges(t *testing.T) {
	rng := placement.NewRand(3)
	seenCongruent := map[bool]bool{}
	for i := 0; i < 500; i++ {
		tr := DesignTrial(rng)
		require.GreaterOrEqual(t, tr.Background, 0)
		require.Less(t, tr.Background, NumBackgrounds)
		idx := PrimeIndex(tr.Prime)
		require.GreaterOrEqual(t, idx, 0)
		assert.Equal(t, ResolveRegion(idx, tr.Congruent), tr.Region)
		seenCongruent[tr.Congruent] = true
	}
	assert.Len(t, seenCongruent, 2)
}

func TestResolveRegion(t *testing.T) {
	tests := []struct {
		i           int
		congruent   placement.Region
		incongruent placement.Region
	}{
		{0, placement.DownRight, placement.UpLeft},
		{1, placement.DownLeft, placement.UpRight},
		{2, placement.UpLeft, placement.DownRight},
		{3, placement.UpRight, placement.DownLeft},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.congruent, ResolveRegion(tt.i, true))
		assert.Equal(t, tt.incongruent, ResolveRegion(tt.i, false))
		assert.Equal(t, Primes[tt.i].Region(), ResolveRegion(tt.i, true))
		assert.Equal(t, Primes[(tt.i+2)%4].Region(), ResolveRegion(tt.i, false))
	}
}

func TestNewTrial(t *testing.T) {
	tr, err := NewTrial(5, PrimePair{Up, Left}, false)
	require.NoError(t, err)
	assert.Equal(t, placement.DownRight, tr.Region)

	_, err = NewTrial(8, PrimePair{Up, Left}, true)
	assert.Error(t, err)

	_, err = NewTrial(0, PrimePair{Left, Up}, true)
	assert.Error(t, err)
}

func TestSequence(t *testing.T) {
	a := Sequence(placement.NewRand(11), 25)
	b := Sequence(placement.NewRand(11), 25)
	assert.Len(t, a, 25)
	assert.Equal(t, a, b)
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection(" UP ")
	require.NoError(t, err)
	assert.Equal(t, Up, d)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}
