package engine

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/MWalidJ/Psychopy-priming-experiment/design"
	"github.com/MWalidJ/Psychopy-priming-experiment/placement"
)

// Layout of the assets directory.
const (
	BackgroundsDir = "backgrounds"
	CuesDir        = "arrows&cross"
	ObjectFile     = "beerus.png"
)

var ErrNoAssets = errors.New("assets directory not set")

// ImageLoadError reports an asset that is missing or cannot be decoded.
type ImageLoadError struct {
	Path string
	Err  error
}

func (e *ImageLoadError) Error() string {
	return fmt.Sprintf("load image %s: %v", e.Path, e.Err)
}

func (e *ImageLoadError) Unwrap() error { return e.Err }

// Cue is one of the fixation or arrow images.
type Cue string

const (
	CueCross Cue = "cross"
	CueLeft  Cue = "left"
	CueRight Cue = "right"
	CueUp    Cue = "up"
	CueDown  Cue = "down"
)

var allCues = []Cue{CueCross, CueLeft, CueRight, CueUp, CueDown}

// CueFor returns the arrow cue pointing in d.
func CueFor(d design.Direction) Cue { return Cue(d) }

type Assets struct {
	Dir         string
	Object      image.Image
	ObjectPath  string
	Backgrounds []image.Image
	Cues        map[Cue]string
}

// LoadAssets decodes the object and the background set from dir and checks
// that every cue image is readable. Backgrounds are scaled to width pixels
// wide when width is positive. Cue images are kept as paths since they are
// only ever drawn.
func LoadAssets(dir string, width int) (*Assets, error) {
	if dir == "" {
		return nil, ErrNoAssets
	}
	a := &Assets{
		Dir:         dir,
		ObjectPath:  filepath.Join(dir, ObjectFile),
		Backgrounds: make([]image.Image, design.NumBackgrounds),
		Cues:        make(map[Cue]string, len(allCues)),
	}

	var err error
	if a.Object, err = LoadImage(a.ObjectPath); err != nil {
		return nil, err
	}

	for i := range a.Backgrounds {
		bg, err := LoadImage(BackgroundPath(dir, i))
		if err != nil {
			return nil, err
		}
		if width > 0 {
			bg = placement.Resize(bg, width)
		}
		a.Backgrounds[i] = bg
	}

	for _, c := range allCues {
		p := filepath.Join(dir, CuesDir, string(c)+".png")
		if err := checkImage(p); err != nil {
			return nil, err
		}
		a.Cues[c] = p
	}

	return a, nil
}

// BackgroundPath returns the file of background i, e.g. backgrounds/03.jpg.
func BackgroundPath(dir string, i int) string {
	return filepath.Join(dir, BackgroundsDir, fmt.Sprintf("%02d.jpg", i))
}

// LoadImage decodes a JPEG or PNG file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ImageLoadError{Path: path, Err: err}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &ImageLoadError{Path: path, Err: err}
	}
	return img, nil
}

func checkImage(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return &ImageLoadError{Path: path, Err: err}
	}
	defer f.Close()

	if _, _, err := image.DecodeConfig(f); err != nil {
		return &ImageLoadError{Path: path, Err: err}
	}
	return nil
}

// SavePNG writes img to path, creating parent directories.
func SavePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return err
	}
	return f.Close()
}
