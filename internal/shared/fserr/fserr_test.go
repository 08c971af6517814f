package fserr

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesKindSentinel(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"io", New(KindIO, "write entry", "/tmp/x", errors.New("disk full")), ErrIO},
		{"not found", NotFound("siblings", "/missing"), ErrPathNotFound},
		{"no parent", NoParent("siblings", "/"), ErrNoParent},
		{"format", Format("open archive", "a.zip", nil), ErrArchiveFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)

			wrapped := fmt.Errorf("outer: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)

			for _, other := range []error{ErrIO, ErrPathNotFound, ErrNoParent, ErrArchiveFormat} {
				if other != tt.sentinel {
					assert.NotErrorIs(t, tt.err, other)
				}
			}
		})
	}
}

func TestIOPromotesNotExist(t *testing.T) {
	err := IO("read dir", "/nope", fs.ErrNotExist)

	assert.Equal(t, KindPathNotFound, err.Kind)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestUnsafeEntryWrapsUnderFormat(t *testing.T) {
	err := Format("resolve entry", "../evil.png", ErrUnsafeEntry)

	assert.ErrorIs(t, err, ErrArchiveFormat)
	assert.ErrorIs(t, err, ErrUnsafeEntry)
}

func TestErrorMessage(t *testing.T) {
	err := New(KindIO, "write entry", "/dst/a.png", errors.New("permission denied"))
	assert.Equal(t, "write entry /dst/a.png: permission denied", err.Error())

	assert.Equal(t, "PathNotFound /x", New(KindPathNotFound, "", "/x", nil).Error())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNoParent, KindOf(fmt.Errorf("wrap: %w", NoParent("siblings", "/"))))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.Equal(t, "ArchiveFormatError", KindArchiveFormat.String())
}
