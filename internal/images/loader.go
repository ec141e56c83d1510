// Package images supplies intrinsic photo dimensions to the geometry
// engines and photo listings with thumbnails to the editing frontend.
package images

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/webp"

	"github.com/pjmuller/photobook/internal/album"
)

// Loader reads image dimensions from a photo directory, caching them so
// that the engines can treat lookups as synchronous.
type Loader struct {
	dir string

	mu    sync.Mutex
	cache map[string]album.ImageDimensions
}

// NewLoader creates a loader rooted at the given photo directory.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir, cache: make(map[string]album.ImageDimensions)}
}

// Dir returns the photo directory.
func (l *Loader) Dir() string {
	return l.dir
}

// Dimensions returns the intrinsic dimensions for a photo path relative to
// the photo directory. The second return is false when the file is missing
// or unreadable; callers must then leave existing crop values untouched.
func (l *Loader) Dimensions(path string) (album.ImageDimensions, bool) {
	l.mu.Lock()
	if d, ok := l.cache[path]; ok {
		l.mu.Unlock()
		return d, true
	}
	l.mu.Unlock()

	d, err := decodeDimensions(filepath.Join(l.dir, path))
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("Image dimensions unavailable")
		return album.ImageDimensions{}, false
	}

	l.mu.Lock()
	l.cache[path] = d
	l.mu.Unlock()
	return d, true
}

// Func adapts the loader to the engines' lookup signature.
func (l *Loader) Func() func(path string) (album.ImageDimensions, bool) {
	return l.Dimensions
}

func decodeDimensions(fullPath string) (album.ImageDimensions, error) {
	file, err := os.Open(fullPath)
	if err != nil {
		return album.ImageDimensions{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return album.ImageDimensions{}, fmt.Errorf("failed to decode image config: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return album.ImageDimensions{}, fmt.Errorf("invalid image dimensions %dx%d", cfg.Width, cfg.Height)
	}
	return album.ImageDimensions{Width: cfg.Width, Height: cfg.Height}, nil
}

// PhotoInfo describes one photo for the picker panel.
type PhotoInfo struct {
	Filename string `json:"filename"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Size     int64  `json:"size"`
	ThumbURL string `json:"thumbUrl"`
}

// List returns every readable photo in the directory, sorted by filename.
// Thumbnails are generated lazily as a side effect.
func (l *Loader) List() ([]*PhotoInfo, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*PhotoInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read photos directory: %w", err)
	}

	var photos []*PhotoInfo
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".webp" {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		dims, ok := l.Dimensions(entry.Name())
		if !ok {
			continue
		}

		thumbURL := "/photos/" + entry.Name()
		if thumbName, err := l.EnsureThumbnail(entry.Name()); err == nil {
			thumbURL = "/photos/.thumbs/" + thumbName
		} else {
			log.Warn().Err(err).Str("photo", entry.Name()).Msg("Thumbnail generation failed")
		}

		photos = append(photos, &PhotoInfo{
			Filename: entry.Name(),
			Width:    dims.Width,
			Height:   dims.Height,
			Size:     info.Size(),
			ThumbURL: thumbURL,
		})
	}

	sort.Slice(photos, func(i, j int) bool { return photos[i].Filename < photos[j].Filename })
	return photos, nil
}
