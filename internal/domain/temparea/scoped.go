package temparea

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/GriffinCanCode/liview/internal/shared/paths"
)

// ScopedArea owns one subtree under a base path. Everything allocated from it
// is removed by Close.
type ScopedArea struct {
	root string

	mu     sync.RWMutex
	closed bool
}

// NewScoped creates the area's root directory as base/<owner>. An empty owner
// gets a generated name.
func NewScoped(base, owner string) (*ScopedArea, error) {
	if owner == "" {
		owner = uuid.NewString()
	} else if err := paths.ValidateName(owner); err != nil {
		return nil, fmt.Errorf("invalid scoped area owner: %w", err)
	}

	root, err := create(base, owner)
	if err != nil {
		return nil, err
	}
	return &ScopedArea{root: root}, nil
}

// Allocate creates a unique directory under the area root. A non-empty name is
// kept as a readable prefix; the UUID suffix keeps it unique.
func (a *ScopedArea) Allocate(name string) (string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.closed {
		return "", ErrClosed
	}

	leaf := uuid.NewString()
	if name != "" {
		if err := paths.ValidateName(name); err != nil {
			return "", fmt.Errorf("invalid temp dir name: %w", err)
		}
		leaf = name + "_" + leaf
	}
	return create(a.root, leaf)
}

// Release removes path if it lies inside the area.
func (a *ScopedArea) Release(path string) error {
	if path == "" {
		return nil
	}
	if !paths.Within(a.root, path) || filepath.Clean(path) == a.root {
		return fmt.Errorf("release %s: outside scoped area %s", path, a.root)
	}
	return Release(path)
}

// Root returns the area root.
func (a *ScopedArea) Root() string { return a.root }

// Policy returns Scoped.
func (a *ScopedArea) Policy() Policy { return Scoped }

// Close removes the whole subtree. Safe to call more than once.
func (a *ScopedArea) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.closed = true
	return Release(a.root)
}

// Closed reports whether Close has been called.
func (a *ScopedArea) Closed() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.closed
}

// Compile-time check
var _ Area = (*ScopedArea)(nil)
