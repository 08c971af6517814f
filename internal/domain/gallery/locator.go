package gallery

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/liview/internal/infrastructure/logging"
	"github.com/GriffinCanCode/liview/internal/shared/fserr"
)

// DefaultExtensions is the image allow-list used when none is configured.
var DefaultExtensions = []string{"png", "jpg", "jpeg", "gif", "webp"}

// globMeta are the characters that would change the meaning of the
// extension pattern.
const globMeta = `*?[]{}\,/`

// Locator finds image files by extension.
type Locator struct {
	extensions []string
	pattern    string
	log        *logging.Logger
}

// NewLocator creates a locator for the given extensions (without dots,
// any case). An empty list uses DefaultExtensions.
func NewLocator(extensions []string, log *logging.Logger) (*Locator, error) {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	exts := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext == "" {
			continue
		}
		if strings.ContainsAny(ext, globMeta) {
			return nil, fmt.Errorf("image extension %q contains pattern characters", ext)
		}
		exts = append(exts, ext)
	}
	if len(exts) == 0 {
		return nil, fmt.Errorf("no usable image extensions in %v", extensions)
	}

	pattern := "*." + exts[0]
	if len(exts) > 1 {
		pattern = "*.{" + strings.Join(exts, ",") + "}"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid image pattern %q", pattern)
	}

	return &Locator{
		extensions: exts,
		pattern:    pattern,
		log:        logging.OrNop(log).Named("gallery"),
	}, nil
}

// Extensions returns the allow-list in lower case.
func (l *Locator) Extensions() []string {
	out := make([]string, len(l.extensions))
	copy(out, l.extensions)
	return out
}

// IsImage reports whether name has an allowed extension. Case-insensitive;
// a bare dotfile such as ".png" has no extension.
func (l *Locator) IsImage(name string) bool {
	base := filepath.Base(name)
	if ext := filepath.Ext(base); ext == "" || ext == base {
		return false
	}
	ok, _ := doublestar.Match(l.pattern, strings.ToLower(base))
	return ok
}

// ListImages returns the image files directly inside dir. Symlinks to
// regular files are included; entries that cannot be inspected are dropped.
func (l *Locator) ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fserr.IO("list images", dir, err)
	}

	images := []string{}
	for _, entry := range entries {
		if !l.IsImage(entry.Name()) {
			continue
		}
		full := filepath.Join(dir, entry.Name())
		if !isRegular(full, entry) {
			continue
		}
		images = append(images, full)
	}

	NaturalSort(images)
	return images, nil
}

// ListImagesRecursive returns every image reachable beneath dir. Unreadable
// sub-trees are skipped and a missing root yields an empty result. Symlinked
// directories are not descended.
func (l *Locator) ListImagesRecursive(ctx context.Context, dir string) ([]string, error) {
	var (
		mu     sync.Mutex
		images = []string{}
	)

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, dir, func(p string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			l.log.Debug("skipping unreadable path", zap.String("path", p), zap.Error(err))
			if d != nil && d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}
		if d.IsDir() || !l.IsImage(p) || !isRegular(p, d) {
			return nil
		}

		// Walk callbacks run on several goroutines
		mu.Lock()
		images = append(images, p)
		mu.Unlock()
		return nil
	})

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		l.log.Debug("recursive listing incomplete", zap.String("dir", dir), zap.Error(err))
	}

	NaturalSort(images)
	return images, nil
}

// FirstImage returns the first image in dir in natural order.
func (l *Locator) FirstImage(dir string) (string, error) {
	images, err := l.ListImages(dir)
	if err != nil {
		return "", err
	}
	if len(images) == 0 {
		return "", fserr.New(fserr.KindPathNotFound, "first image", dir, fmt.Errorf("no images in folder"))
	}
	return images[0], nil
}

// isRegular reports whether the entry is a regular file, following symlinks.
func isRegular(path string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink == 0 {
		return d.Type().IsRegular()
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
