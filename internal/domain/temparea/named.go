package temparea

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/GriffinCanCode/liview/internal/shared/fserr"
	"github.com/GriffinCanCode/liview/internal/shared/paths"
)

// stagingPrefix marks directories that are still being filled.
const stagingPrefix = ".staging-"

// NamedArea hands out caller-named directories under a fixed cache root.
// Directories outlive the process; callers release them explicitly.
type NamedArea struct {
	root string
}

// NewNamed returns an area rooted at cacheRoot. The root is created lazily.
func NewNamed(cacheRoot string) (*NamedArea, error) {
	abs, err := filepath.Abs(cacheRoot)
	if err != nil {
		return nil, fmt.Errorf("resolve cache root: %w", err)
	}
	return &NamedArea{root: abs}, nil
}

// Allocate creates root/name. It fails when the directory already exists;
// call Release first to clear state left by a prior run.
func (a *NamedArea) Allocate(name string) (string, error) {
	if name == "" {
		name = uuid.NewString()
	}
	if err := paths.ValidateName(name); err != nil {
		return "", fmt.Errorf("invalid temp dir name: %w", err)
	}
	return create(a.root, name)
}

// Path returns where name would be allocated, without touching the disk.
func (a *NamedArea) Path(name string) (string, error) {
	if err := paths.ValidateName(name); err != nil {
		return "", fmt.Errorf("invalid temp dir name: %w", err)
	}
	return filepath.Join(a.root, name), nil
}

// Stage creates a hidden directory under the cache root that Commit later
// moves to root/name. Whatever already lives at root/name is untouched
// until then.
func (a *NamedArea) Stage(name string) (string, error) {
	if _, err := a.Path(name); err != nil {
		return "", err
	}
	return create(a.root, stagingPrefix+name+"-"+uuid.NewString())
}

// Commit replaces root/name with the staged directory and returns the final
// path. On failure the previous root/name may already be gone but the staged
// directory is left for the caller to release.
func (a *NamedArea) Commit(staged, name string) (string, error) {
	final, err := a.Path(name)
	if err != nil {
		return "", err
	}
	if filepath.Dir(filepath.Clean(staged)) != a.root || !strings.HasPrefix(filepath.Base(staged), stagingPrefix) {
		return "", fmt.Errorf("commit %s: not a staged directory under %s", staged, a.root)
	}
	if err := Release(final); err != nil {
		return "", err
	}
	if err := os.Rename(staged, final); err != nil {
		return "", fserr.IO("commit temp dir", final, err)
	}
	return final, nil
}

// Release removes path if it lies inside the cache root.
func (a *NamedArea) Release(path string) error {
	if path == "" {
		return nil
	}
	if !paths.Within(a.root, path) || filepath.Clean(path) == a.root {
		return fmt.Errorf("release %s: outside cache root %s", path, a.root)
	}
	return Release(path)
}

// Root returns the cache root.
func (a *NamedArea) Root() string { return a.root }

// Policy returns Named.
func (a *NamedArea) Policy() Policy { return Named }

// Close is a no-op; named directories are caller-managed.
func (a *NamedArea) Close() error { return nil }

// Compile-time check
var _ Area = (*NamedArea)(nil)
