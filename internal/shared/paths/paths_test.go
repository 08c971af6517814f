package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithin(t *testing.T) {
	root := filepath.FromSlash("/data/extract")

	tests := []struct {
		target string
		want   bool
	}{
		{"/data/extract", true},
		{"/data/extract/a/b.png", true},
		{"/data/extract/../extract/x", true},
		{"/data/extracted", false},
		{"/data", false},
		{"/etc/passwd", false},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			assert.Equal(t, tt.want, Within(root, filepath.FromSlash(tt.target)))
		})
	}
}

func TestSafeJoin(t *testing.T) {
	root := t.TempDir()

	got, err := SafeJoin(root, "dir/x.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "dir", "x.png"), got)

	got, err = SafeJoin(root, "dir/../y.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "y.png"), got)

	for _, name := range []string{"../evil.png", "dir/../../evil.png", "/etc/passwd", ".."} {
		_, err := SafeJoin(root, name)
		assert.Error(t, err, name)
	}
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("comic-01"))

	for _, name := range []string{"", ".", "..", "a/b", `a\b`} {
		assert.Error(t, ValidateName(name), name)
	}
}

func TestStem(t *testing.T) {
	assert.Equal(t, "book", Stem("/x/book.zip"))
	assert.Equal(t, "book.tar", Stem("book.tar.zip"))
	assert.Equal(t, ".hidden", Stem(".hidden"))
	assert.Equal(t, "plain", Stem("plain"))
}

func TestDefaultRoots(t *testing.T) {
	assert.Equal(t, AppName, filepath.Base(DefaultTempRoot()))
	assert.Equal(t, "archives", filepath.Base(DefaultCacheRoot()))
}
