package images

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

const (
	thumbsDirName = ".thumbs"
	thumbWidth    = 400
	thumbQuality  = 70
)

// EnsureThumbnail creates a WebP thumbnail for the editor UI if one does
// not exist yet and returns its filename inside the .thumbs directory.
func (l *Loader) EnsureThumbnail(name string) (string, error) {
	thumbName := thumbFilename(name)
	thumbPath := filepath.Join(l.dir, thumbsDirName, thumbName)
	if _, err := os.Stat(thumbPath); err == nil {
		return thumbName, nil
	}

	img, err := imaging.Open(filepath.Join(l.dir, name), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", name, err)
	}

	if img.Bounds().Dx() > thumbWidth {
		img = imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
	}

	if err := os.MkdirAll(filepath.Join(l.dir, thumbsDirName), 0755); err != nil {
		return "", fmt.Errorf("failed to create thumbs directory: %w", err)
	}
	out, err := os.Create(thumbPath)
	if err != nil {
		return "", fmt.Errorf("failed to create thumbnail file: %w", err)
	}
	defer out.Close()

	if err := webp.Encode(out, img, &webp.Options{Quality: thumbQuality}); err != nil {
		return "", fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return thumbName, nil
}

func thumbFilename(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return base + ".webp"
}
