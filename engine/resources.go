package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Zyko0/go-sdl3/img"
	"github.com/Zyko0/go-sdl3/sdl"
)

func GetDefaultFontPath() string {
	// Check local fonts directory
	entries, err := os.ReadDir("fonts")
	if err == nil {
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			ext := strings.ToLower(filepath.Ext(entry.Name()))
			if ext == ".ttf" || ext == ".ttc" {
				return filepath.Join("fonts", entry.Name())
			}
		}
	}

	var paths []string
	switch runtime.GOOS {
	case "windows":
		paths = []string{"C:\\Windows\\Fonts\\arial.ttf"}
	case "darwin":
		paths = []string{"/System/Library/Fonts/Helvetica.ttc"}
	default:
		paths = []string{
			"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
			"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		}
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// Texture is an uploaded image with its pixel size.
type Texture struct {
	Tex  *sdl.Texture
	W, H float32
}

// TextureCache uploads image files once per path. Textures live until
// Destroy.
type TextureCache struct {
	renderer *sdl.Renderer
	entries  map[string]*Texture
}

func NewTextureCache(renderer *sdl.Renderer) *TextureCache {
	return &TextureCache{
		renderer: renderer,
		entries:  make(map[string]*Texture),
	}
}

func (c *TextureCache) Load(path string) (*Texture, error) {
	if t, ok := c.entries[path]; ok {
		return t, nil
	}
	t, err := LoadTexture(c.renderer, path)
	if err != nil {
		return nil, err
	}
	c.entries[path] = t
	return t, nil
}

// Destroy frees every cached texture.
func (c *TextureCache) Destroy() {
	for path, t := range c.entries {
		t.Destroy()
		delete(c.entries, path)
	}
}

// LoadTexture uploads an image file outside of any cache; the caller owns
// the result.
func LoadTexture(renderer *sdl.Renderer, path string) (*Texture, error) {
	tex, err := img.LoadTexture(renderer, path)
	if err != nil {
		return nil, &ImageLoadError{Path: path, Err: err}
	}
	w, h, err := tex.Size()
	if err != nil {
		tex.Destroy()
		return nil, fmt.Errorf("texture size %s: %w", path, err)
	}
	return &Texture{Tex: tex, W: w, H: h}, nil
}

func (t *Texture) Destroy() {
	if t != nil && t.Tex != nil {
		t.Tex.Destroy()
		t.Tex = nil
	}
}
