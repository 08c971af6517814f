package archive

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/liview/internal/shared/fserr"
)

type zipEntry struct {
	name   string
	body   string
	method uint16
	mode   fs.FileMode
}

// writeZip builds a zip at dir/name from entries in order.
func writeZip(t *testing.T, dir, name string, entries ...zipEntry) string {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	w.RegisterCompressor(zstd.ZipMethodWinZip, zstd.ZipCompressor())

	for _, e := range entries {
		hdr := &zip.FileHeader{Name: e.name, Method: e.method}
		if e.method == 0 && len(e.body) > 0 {
			hdr.Method = zip.Deflate
		}
		if e.mode != 0 {
			hdr.SetMode(e.mode)
		}
		fw, err := w.CreateHeader(hdr)
		require.NoError(t, err)
		if e.body != "" {
			_, err = fw.Write([]byte(e.body))
			require.NoError(t, err)
		}
	}
	require.NoError(t, w.Close())

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestExtractRoundTrip(t *testing.T) {
	src := t.TempDir()
	archive := writeZip(t, src, "book.zip",
		zipEntry{name: "dir/"},
		zipEntry{name: "dir/x.png", body: "png-x"},
		zipEntry{name: "dir/y.png", body: "png-y"},
		zipEntry{name: "root.jpg", body: "jpeg"},
	)

	dest := filepath.Join(t.TempDir(), "nested", "out")
	ex := NewExtractor(Options{})

	res, err := ex.Extract(context.Background(), archive, dest)
	require.NoError(t, err)

	assert.Equal(t, dest, res.Dir)
	assert.Equal(t, 3, res.Files)
	assert.Equal(t, 1, res.Dirs)
	assert.Equal(t, 4, res.Entries())
	assert.Equal(t, int64(len("png-x")+len("png-y")+len("jpeg")), res.Bytes)

	assert.Equal(t, "png-x", readFile(t, filepath.Join(dest, "dir", "x.png")))
	assert.Equal(t, "png-y", readFile(t, filepath.Join(dest, "dir", "y.png")))
	assert.Equal(t, "jpeg", readFile(t, filepath.Join(dest, "root.jpg")))

	// No temp files left behind
	leftovers, err := filepath.Glob(filepath.Join(dest, "dir", ".liview-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestExtractImplicitParents(t *testing.T) {
	archive := writeZip(t, t.TempDir(), "flat.zip",
		zipEntry{name: "a/b/c/deep.webp", body: "webp"},
	)
	dest := t.TempDir()

	_, err := NewExtractor(Options{}).Extract(context.Background(), archive, dest)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dest, "a", "b", "c", "deep.webp"))
}

func TestExtractTwoDestinations(t *testing.T) {
	archive := writeZip(t, t.TempDir(), "book.zip",
		zipEntry{name: "x.png", body: "one"},
	)
	ex := NewExtractor(Options{})

	var wg sync.WaitGroup
	dests := []string{t.TempDir(), t.TempDir()}
	errs := make([]error, len(dests))
	for i, d := range dests {
		wg.Add(1)
		go func(i int, d string) {
			defer wg.Done()
			_, errs[i] = ex.Extract(context.Background(), archive, d)
		}(i, d)
	}
	wg.Wait()

	for i, d := range dests {
		require.NoError(t, errs[i])
		assert.Equal(t, "one", readFile(t, filepath.Join(d, "x.png")))
	}
}

func TestExtractZstdEntry(t *testing.T) {
	archive := writeZip(t, t.TempDir(), "zstd.zip",
		zipEntry{name: "z.gif", body: "zstd-compressed-body", method: zstd.ZipMethodWinZip},
	)
	dest := t.TempDir()

	res, err := NewExtractor(Options{}).Extract(context.Background(), archive, dest)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Files)
	assert.Equal(t, "zstd-compressed-body", readFile(t, filepath.Join(dest, "z.gif")))
}

func TestExtractRejectsUnsafeEntries(t *testing.T) {
	tests := []struct {
		name  string
		entry string
	}{
		{"parent traversal", "../evil.png"},
		{"nested traversal", "dir/../../evil.png"},
		{"absolute", "/tmp/evil.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			archive := writeZip(t, t.TempDir(), "evil.zip",
				zipEntry{name: "ok.png", body: "fine"},
				zipEntry{name: tt.entry, body: "evil"},
			)
			parent := t.TempDir()
			dest := filepath.Join(parent, "out")

			_, err := NewExtractor(Options{}).Extract(context.Background(), archive, dest)
			require.Error(t, err)
			assert.ErrorIs(t, err, fserr.ErrArchiveFormat)
			assert.ErrorIs(t, err, fserr.ErrUnsafeEntry)

			// Validation runs before any write
			assert.NoFileExists(t, filepath.Join(dest, "ok.png"))
			assert.NoFileExists(t, filepath.Join(parent, "evil.png"))
		})
	}
}

func TestExtractFormatErrors(t *testing.T) {
	dir := t.TempDir()

	notZip := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notZip, []byte("just some text, not a container"), 0o644))

	// Valid local header signature followed by garbage
	corrupt := filepath.Join(dir, "corrupt.zip")
	require.NoError(t, os.WriteFile(corrupt, append([]byte("PK\x03\x04"), bytes.Repeat([]byte{0xff}, 64)...), 0o644))

	ex := NewExtractor(Options{})
	for _, path := range []string{notZip, corrupt, dir} {
		dest := filepath.Join(t.TempDir(), "out")
		_, err := ex.Extract(context.Background(), path, dest)
		require.Error(t, err, path)
		assert.Equal(t, fserr.KindArchiveFormat, fserr.KindOf(err), path)
		assert.NoDirExists(t, dest, "nothing written for %s", path)
	}
}

func TestExtractMissingArchive(t *testing.T) {
	_, err := NewExtractor(Options{}).Extract(context.Background(), filepath.Join(t.TempDir(), "gone.zip"), t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, fserr.ErrPathNotFound)
}

func TestExtractSizeCap(t *testing.T) {
	archive := writeZip(t, t.TempDir(), "big.zip",
		zipEntry{name: "small.png", body: "1234"},
		zipEntry{name: "big.png", body: "0123456789abcdef"},
	)
	dest := t.TempDir()

	_, err := NewExtractor(Options{MaxEntrySize: 8}).Extract(context.Background(), archive, dest)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEntryTooLarge)
	assert.ErrorIs(t, err, fserr.ErrArchiveFormat)

	// Earlier entries stay, the oversized one never appears
	assert.FileExists(t, filepath.Join(dest, "small.png"))
	assert.NoFileExists(t, filepath.Join(dest, "big.png"))
}

func TestExtractSkipsSymlinks(t *testing.T) {
	archive := writeZip(t, t.TempDir(), "links.zip",
		zipEntry{name: "real.png", body: "png"},
		zipEntry{name: "link.png", body: "/etc/passwd", mode: fs.ModeSymlink | 0o777},
	)
	dest := t.TempDir()

	res, err := NewExtractor(Options{}).Extract(context.Background(), archive, dest)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Files)
	assert.Equal(t, 1, res.Skipped)

	_, err = os.Lstat(filepath.Join(dest, "link.png"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestExtractCancelled(t *testing.T) {
	archive := writeZip(t, t.TempDir(), "book.zip",
		zipEntry{name: "x.png", body: "x"},
	)
	dest := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExtractor(Options{}).Extract(ctx, archive, dest)
	require.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, filepath.Join(dest, "x.png"))
}

func TestList(t *testing.T) {
	archive := writeZip(t, t.TempDir(), "book.zip",
		zipEntry{name: "dir/"},
		zipEntry{name: "dir/x.png", body: "png-x"},
	)

	entries, err := NewExtractor(Options{}).List(archive)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "dir/", entries[0].Name)
	assert.True(t, entries[0].IsDir)
	assert.Equal(t, "dir/x.png", entries[1].Name)
	assert.False(t, entries[1].IsDir)
	assert.Equal(t, uint64(5), entries[1].Size)
}

func TestIsZip(t *testing.T) {
	zipPath := writeZip(t, t.TempDir(), "a.bin", zipEntry{name: "x.png", body: "x"})

	mtype, err := Detect(zipPath)
	require.NoError(t, err)
	assert.True(t, IsZip(mtype))

	txt := filepath.Join(t.TempDir(), "a.zip")
	require.NoError(t, os.WriteFile(txt, []byte("hello"), 0o644))
	mtype, err = Detect(txt)
	require.NoError(t, err)
	assert.False(t, IsZip(mtype))
}
