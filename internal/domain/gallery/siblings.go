package gallery

import (
	"os"
	"path/filepath"

	"github.com/GriffinCanCode/liview/internal/shared/fserr"
)

// Neighbors locates a folder among its siblings.
type Neighbors struct {
	Prev  string `json:"prev,omitempty"`
	Next  string `json:"next,omitempty"`
	Index int    `json:"index"`
	Total int    `json:"total"`
}

// Siblings returns the directories sharing path's parent, excluding path
// itself, in natural order.
func Siblings(path string) ([]string, error) {
	self, all, err := siblingSet(path, "list siblings")
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(all))
	for _, dir := range all {
		if dir != self {
			out = append(out, dir)
		}
	}
	return out, nil
}

// FindNeighbors returns the folders just before and after path in the
// natural order of its parent's sub-directories.
func FindNeighbors(path string) (Neighbors, error) {
	self, all, err := siblingSet(path, "find neighbors")
	if err != nil {
		return Neighbors{}, err
	}

	n := Neighbors{Index: -1, Total: len(all)}
	for i, dir := range all {
		if dir != self {
			continue
		}
		n.Index = i
		if i > 0 {
			n.Prev = all[i-1]
		}
		if i+1 < len(all) {
			n.Next = all[i+1]
		}
		break
	}
	return n, nil
}

// siblingSet returns the cleaned absolute path and every directory in its
// parent, path included when it is a directory.
func siblingSet(path, op string) (string, []string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", nil, fserr.IO(op, path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", nil, fserr.IO(op, path, err)
	}

	parent := filepath.Dir(abs)
	if parent == abs {
		return "", nil, fserr.NoParent(op, path)
	}

	dirs, err := subdirectories(parent)
	if err != nil {
		return "", nil, fserr.IO(op, parent, err)
	}
	return abs, dirs, nil
}

// subdirectories lists the directories directly inside dir in natural order.
// Symlinks to directories count; entries that cannot be inspected are dropped.
func subdirectories(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	dirs := []string{}
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			dirs = append(dirs, full)
			continue
		}
		if entry.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(full); err == nil && info.IsDir() {
				dirs = append(dirs, full)
			}
		}
	}

	NaturalSort(dirs)
	return dirs, nil
}
