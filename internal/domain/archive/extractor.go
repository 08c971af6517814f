package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/liview/internal/infrastructure/logging"
	"github.com/GriffinCanCode/liview/internal/shared/fserr"
	"github.com/GriffinCanCode/liview/internal/shared/paths"
)

// DefaultMaxEntrySize bounds the in-memory buffer for a single entry.
const DefaultMaxEntrySize int64 = 512 << 20

// ErrEntryTooLarge is wrapped when an entry exceeds the configured cap.
var ErrEntryTooLarge = errors.New("archive entry exceeds size limit")

// Result summarizes a finished extraction.
type Result struct {
	Archive string `json:"archive"`
	Dir     string `json:"dir"`
	Files   int    `json:"files"`
	Dirs    int    `json:"dirs"`
	Skipped int    `json:"skipped"`
	Bytes   int64  `json:"bytes"`
}

// Entries returns the number of entries materialized on disk.
func (r *Result) Entries() int { return r.Files + r.Dirs }

// Entry describes one member of a container without extracting it.
type Entry struct {
	Name           string    `json:"name"`
	Size           uint64    `json:"size"`
	CompressedSize uint64    `json:"compressed_size"`
	Modified       time.Time `json:"modified"`
	IsDir          bool      `json:"is_dir"`
}

// Options configures an Extractor.
type Options struct {
	MaxEntrySize int64
	Logger       *logging.Logger
}

// Extractor unpacks zip archives. It holds no per-call state.
type Extractor struct {
	maxEntrySize int64
	log          *logging.Logger
}

// NewExtractor creates an extractor. A non-positive size cap uses
// DefaultMaxEntrySize.
func NewExtractor(opts Options) *Extractor {
	limit := opts.MaxEntrySize
	if limit <= 0 {
		limit = DefaultMaxEntrySize
	}
	return &Extractor{
		maxEntrySize: limit,
		log:          logging.OrNop(opts.Logger).Named("archive"),
	}
}

// MaxEntrySize returns the per-entry cap in bytes.
func (e *Extractor) MaxEntrySize() int64 { return e.maxEntrySize }

// Extract unpacks archivePath into dest, creating dest and its ancestors.
// Entries are written in container order. A failure part-way leaves the
// entries already written in place; callers own cleanup of dest.
//
// Cancellation is checked between entries only.
func (e *Extractor) Extract(ctx context.Context, archivePath, dest string) (*Result, error) {
	reader, err := e.open(archivePath)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	absDest, err := filepath.Abs(dest)
	if err != nil {
		return nil, fserr.IO("resolve destination", dest, err)
	}

	targets, err := resolveTargets(absDest, reader.File)
	if err != nil {
		return nil, fserr.Format("validate archive", archivePath, err)
	}

	if err := os.MkdirAll(absDest, 0o755); err != nil {
		return nil, fserr.IO("create destination", absDest, err)
	}

	log := e.log.With(zap.String("archive", archivePath), zap.String("dest", absDest))
	log.Info("extracting archive", zap.Int("entries", len(reader.File)))

	res := &Result{Archive: archivePath, Dir: absDest}
	for i, file := range reader.File {
		select {
		case <-ctx.Done():
			log.Warn("extraction cancelled", zap.Int("written", res.Entries()))
			return nil, ctx.Err()
		default:
		}

		target := targets[i]
		mode := file.Mode()

		switch {
		case mode.IsDir():
			if err := os.MkdirAll(target, 0o755); err != nil {
				return nil, fserr.IO("create directory entry", target, err)
			}
			res.Dirs++
		case !mode.IsRegular():
			log.Debug("skipping non-regular entry", zap.String("entry", file.Name), zap.Stringer("mode", mode))
			res.Skipped++
		default:
			n, err := e.writeEntry(file, target)
			if err != nil {
				log.Warn("extraction failed", zap.String("entry", file.Name), zap.Error(err))
				return nil, err
			}
			res.Files++
			res.Bytes += n
		}
	}

	log.Info("extracted archive",
		zap.Int("files", res.Files),
		zap.Int("dirs", res.Dirs),
		zap.Int("skipped", res.Skipped),
		zap.Int64("bytes", res.Bytes),
	)
	return res, nil
}

// List returns the members of archivePath in container order.
func (e *Extractor) List(archivePath string) ([]Entry, error) {
	reader, err := e.open(archivePath)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	entries := make([]Entry, 0, len(reader.File))
	for _, file := range reader.File {
		entries = append(entries, Entry{
			Name:           file.Name,
			Size:           file.UncompressedSize64,
			CompressedSize: file.CompressedSize64,
			Modified:       file.Modified,
			IsDir:          file.Mode().IsDir(),
		})
	}
	return entries, nil
}

func (e *Extractor) open(archivePath string) (*zip.ReadCloser, error) {
	info, err := os.Stat(archivePath)
	if err != nil {
		return nil, fserr.IO("open archive", archivePath, err)
	}
	if info.IsDir() {
		return nil, fserr.Format("open archive", archivePath, fmt.Errorf("is a directory"))
	}

	mtype, err := Detect(archivePath)
	if err != nil {
		return nil, err
	}
	if !IsZip(mtype) {
		return nil, fserr.Format("open archive", archivePath, fmt.Errorf("unsupported format %s", mtype.String()))
	}

	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		// The reader is still returned when only entry names are insecure
		if reader != nil {
			reader.Close()
			return nil, fserr.Format("open archive", archivePath, fmt.Errorf("%w: %v", fserr.ErrUnsafeEntry, err))
		}
		return nil, fserr.Format("open archive", archivePath, err)
	}
	reader.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())
	return reader, nil
}

// resolveTargets maps every entry to its destination path, rejecting the
// container if any entry is absolute or climbs out of dest.
func resolveTargets(dest string, files []*zip.File) ([]string, error) {
	targets := make([]string, len(files))
	for i, file := range files {
		target, err := paths.SafeJoin(dest, file.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", fserr.ErrUnsafeEntry, err)
		}
		targets[i] = target
	}
	return targets, nil
}

// writeEntry buffers one file entry and publishes it with a rename.
func (e *Extractor) writeEntry(file *zip.File, target string) (int64, error) {
	if file.UncompressedSize64 > uint64(e.maxEntrySize) {
		return 0, fserr.Format("read entry", file.Name,
			fmt.Errorf("%w: %d > %d bytes", ErrEntryTooLarge, file.UncompressedSize64, e.maxEntrySize))
	}

	rc, err := file.Open()
	if err != nil {
		return 0, fserr.Format("open entry", file.Name, err)
	}
	defer rc.Close()

	var buf bytes.Buffer
	buf.Grow(int(file.UncompressedSize64))
	n, err := io.Copy(&buf, io.LimitReader(rc, e.maxEntrySize+1))
	if err != nil {
		return 0, fserr.Format("read entry", file.Name, err)
	}
	// Headers can lie about the uncompressed size
	if n > e.maxEntrySize {
		return 0, fserr.Format("read entry", file.Name,
			fmt.Errorf("%w: more than %d bytes", ErrEntryTooLarge, e.maxEntrySize))
	}

	if err := writeAtomic(target, buf.Bytes(), file.Mode().Perm()); err != nil {
		return 0, err
	}
	return n, nil
}

func writeAtomic(target string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fserr.IO("create entry parent", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".liview-*")
	if err != nil {
		return fserr.IO("create entry", target, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fserr.IO("write entry", target, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fserr.IO("write entry", target, err)
	}

	if perm == 0 {
		perm = 0o644
	}
	if err := os.Chmod(tmpName, perm|0o200); err != nil {
		cleanup()
		return fserr.IO("write entry", target, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		cleanup()
		return fserr.IO("publish entry", target, err)
	}
	return nil
}
