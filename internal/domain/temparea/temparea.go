package temparea

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/GriffinCanCode/liview/internal/shared/fserr"
)

// Policy selects the lifetime of allocated directories.
type Policy string

const (
	// Scoped directories are removed when the owning area is closed.
	Scoped Policy = "scoped"
	// Named directories live under a fixed cache root until released by the caller.
	Named Policy = "named"
)

// ParsePolicy converts a configuration string to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case Scoped, Named:
		return Policy(s), nil
	default:
		return "", fmt.Errorf("unknown temp area policy %q", s)
	}
}

// Area hands out directories under one root and removes them again.
type Area interface {
	// Allocate creates a fresh directory. An empty name gets a generated one.
	Allocate(name string) (string, error)
	// Release removes a directory and everything beneath it. Idempotent.
	Release(path string) error
	// Root is the directory all allocations live under.
	Root() string
	// Policy reports the area's lifetime policy.
	Policy() Policy
	// Close ends the area's lifetime.
	Close() error
}

// ErrClosed is returned by Allocate on a closed area.
var ErrClosed = errors.New("temp area is closed")

// Allocate creates a uniquely named directory under base, creating base when
// missing, and returns its absolute path. The name is a random UUID; the leaf
// is created with a non-recursive mkdir so an existing directory is never
// handed out twice.
func Allocate(base string) (string, error) {
	return create(base, uuid.NewString())
}

// Release recursively removes path. A path that does not exist is not an error.
func Release(path string) error {
	if path == "" {
		return nil
	}
	if err := os.RemoveAll(path); err != nil {
		return fserr.IO("release temp dir", path, err)
	}
	return nil
}

func create(base, name string) (string, error) {
	abs, err := filepath.Abs(base)
	if err != nil {
		return "", fserr.IO("resolve temp base", base, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", fserr.IO("create temp base", abs, err)
	}

	dir := filepath.Join(abs, name)
	if err := os.Mkdir(dir, 0o755); err != nil {
		return "", fserr.IO("create temp dir", dir, err)
	}
	return dir, nil
}
