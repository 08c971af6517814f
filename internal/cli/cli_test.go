package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/liview/internal/domain/archive"
	"github.com/GriffinCanCode/liview/internal/shared/fserr"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	t.Setenv("STORAGE_TEMP_ROOT", filepath.Join(t.TempDir(), "tmp"))
	t.Setenv("STORAGE_CACHE_ROOT", filepath.Join(t.TempDir(), "cache"))

	var out bytes.Buffer
	err := run(context.Background(), append([]string{"liviewctl"}, args...), &out)
	return out.String(), err
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func writeZip(t *testing.T, path string, names ...string) {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, n := range names {
		fw, err := w.Create(n)
		require.NoError(t, err)
		_, err = fw.Write([]byte(n))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestImagesCommand(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "2.png"))
	touch(t, filepath.Join(dir, "10.png"))
	touch(t, filepath.Join(dir, "sub", "1.jpg"))

	out, err := runCLI(t, "--json", "images", dir)
	require.NoError(t, err)

	var images []string
	require.NoError(t, json.Unmarshal([]byte(out), &images))
	assert.Equal(t, []string{filepath.Join(dir, "2.png"), filepath.Join(dir, "10.png")}, images)

	out, err = runCLI(t, "images", "-r", dir)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "sub", "1.jpg"))
}

func TestFoldersAndSiblings(t *testing.T) {
	root := t.TempDir()
	for _, d := range []string{"A", "B", "C"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, d), 0o755))
	}

	out, err := runCLI(t, "folders", root)
	require.NoError(t, err)
	assert.Equal(t, "A/\nB/\nC/\n", out)

	out, err = runCLI(t, "siblings", filepath.Join(root, "B"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "A")+"\n"+filepath.Join(root, "C")+"\n", out)
}

func TestExtractAndEntries(t *testing.T) {
	archivePath := filepath.Join(t.TempDir(), "vol1.zip")
	writeZip(t, archivePath, "p1.png", "p2.png")

	out, err := runCLI(t, "--json", "entries", archivePath)
	require.NoError(t, err)
	var entries []archive.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "p1.png", entries[0].Name)

	dest := filepath.Join(t.TempDir(), "out")
	out, err = runCLI(t, "--json", "extract", "--dest", dest, archivePath)
	require.NoError(t, err)
	var res archive.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, dest, res.Dir)
	assert.FileExists(t, filepath.Join(dest, "p2.png"))

	out, err = runCLI(t, "extract", archivePath)
	require.NoError(t, err)
	assert.Contains(t, out, "extracted ")
	assert.Contains(t, out, filepath.Join("cache", "vol1"))
}

func TestCommandErrors(t *testing.T) {
	_, err := runCLI(t, "images")
	assert.Error(t, err)

	_, err = runCLI(t, "images", filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, fserr.ErrPathNotFound)

	_, err = runCLI(t, "siblings", "/")
	assert.ErrorIs(t, err, fserr.ErrNoParent)
}
