package engine

import (
	"encoding/csv"
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MWalidJ/Psychopy-priming-experiment/design"
	"github.com/MWalidJ/Psychopy-priming-experiment/placement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultLogSave(t *testing.T) {
	var log ResultLog
	log.Add(TrialResult{
		Trial:         1,
		Design:        design.Trial{Background: 2, Prime: design.Primes[0], Congruent: true, Region: placement.DownRight},
		At:            image.Point{X: 510, Y: 420},
		Detected:      true,
		RTMS:          1234,
		TargetOnsetMS: 9000,
	})
	log.Add(TrialResult{
		Trial:         2,
		Design:        design.Trial{Background: 4, Prime: design.Primes[3], Congruent: false, Region: placement.DownLeft},
		At:            image.Point{X: 12, Y: 600},
		TargetOnsetMS: 40000,
	})
	assert.Equal(t, 1, log.Detections())

	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, log.Save(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, resultHeader, rows[0])
	assert.Equal(t, []string{"1", "2", "down", "right", "true", "down_right", "510", "420", "true", "1234", "9000"}, rows[1])
	assert.Equal(t, []string{"2", "4", "up", "right", "false", "down_left", "12", "600", "false", "", "40000"}, rows[2])
}

func TestStageCompose(t *testing.T) {
	assets, err := LoadAssets(makeAssets(t), 800)
	require.NoError(t, err)

	archive := t.TempDir()
	st := &Stage{Assets: assets, Fraction: 0.1, Rng: placement.NewRand(5), ArchiveDir: archive}

	tr, err := design.NewTrial(3, design.Primes[2], true)
	require.NoError(t, err)

	path, at, err := st.Compose(0, tr)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(archive, "trial_001_up_left.png"), path)

	// 800x600 background, 80x53 object, upper-left quadrant.
	assert.True(t, at.X >= 0 && at.X <= 400-80, "x=%d", at.X)
	assert.True(t, at.Y >= 0 && at.Y <= 300-53, "y=%d", at.Y)

	img, err := LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 800, 600), img.Bounds())
}

func TestStageComposeErrors(t *testing.T) {
	assets, err := LoadAssets(makeAssets(t), 0)
	require.NoError(t, err)

	st := &Stage{Assets: assets, Fraction: 0.6, Rng: placement.NewRand(1), ArchiveDir: t.TempDir()}
	tr, err := design.NewTrial(0, design.Primes[0], true)
	require.NoError(t, err)

	_, _, err = st.Compose(0, tr)
	var regionErr *placement.InvalidRegionError
	assert.True(t, errors.As(err, &regionErr), "got %v", err)

	_, _, err = st.Compose(1, design.Trial{Background: 99})
	assert.Error(t, err)
}

func TestTrialSources(t *testing.T) {
	a := RandomTrials(placement.NewRand(8))
	b := RandomTrials(placement.NewRand(8))
	for n := 0; n < 10; n++ {
		assert.Equal(t, a(n), b(n))
	}

	list := design.Sequence(placement.NewRand(1), 3)
	s := ScheduledTrials(list)
	assert.Equal(t, list[2], s(2))
}

func TestPlanTrials(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumTrials = 7
	src, n, err := planTrials(cfg, placement.NewRand(1))
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.NotNil(t, src)

	path := filepath.Join(t.TempDir(), "schedule.csv")
	trials := design.Sequence(placement.NewRand(2), 4)
	require.NoError(t, design.SaveSchedule(path, trials))

	cfg.ScheduleFile = path
	src, n, err = planTrials(cfg, placement.NewRand(1))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, trials[3], src(3))

	empty := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	cfg.ScheduleFile = empty
	_, _, err = planTrials(cfg, placement.NewRand(1))
	assert.Error(t, err)
}

func TestOpenArchive(t *testing.T) {
	cfg := DefaultConfig()
	dir, cleanup, err := openArchive(cfg)
	require.NoError(t, err)
	assert.DirExists(t, dir)
	cleanup()
	assert.NoDirExists(t, dir)

	cfg.ArchiveDir = filepath.Join(t.TempDir(), "kept")
	dir, cleanup, err = openArchive(cfg)
	require.NoError(t, err)
	cleanup()
	assert.DirExists(t, dir)
}

func TestTimestampedName(t *testing.T) {
	ts := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	assert.Equal(t, "results_20260304-050607.csv", TimestampedName("results.csv", ts))
	assert.Equal(t, "out/p01_20260304-050607.csv", TimestampedName("out/p01", ts))
}
