package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AppName is the directory name used under the OS temp and cache roots.
const AppName = "liview"

// DefaultTempRoot returns the base directory for scoped temp areas.
func DefaultTempRoot() string {
	return filepath.Join(os.TempDir(), AppName)
}

// DefaultCacheRoot returns the fixed cache root for named extractions.
// Falls back to the temp root when the user cache dir is unavailable.
func DefaultCacheRoot() string {
	dir, err := os.UserCacheDir()
	if err != nil || dir == "" {
		return filepath.Join(DefaultTempRoot(), "archives")
	}
	return filepath.Join(dir, AppName, "archives")
}

// Within reports whether target is root or lies beneath it.
// Both paths are cleaned lexically; symlinks are not resolved.
func Within(root, target string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(target))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// SafeJoin resolves a slash-separated relative name against root and rejects
// names that are absolute or escape root via "..".
func SafeJoin(root, name string) (string, error) {
	native := filepath.FromSlash(name)
	if filepath.IsAbs(native) || filepath.VolumeName(native) != "" || strings.HasPrefix(name, "/") {
		return "", fmt.Errorf("absolute path %q", name)
	}

	target := filepath.Join(root, native)
	if !Within(root, target) {
		return "", fmt.Errorf("path %q escapes %s", name, root)
	}
	return target, nil
}

// ValidateName checks that name is usable as a single path element.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("name %q is reserved", name)
	}
	if strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("name %q contains path separators", name)
	}
	return nil
}

// Stem returns the base name of path without its final extension.
func Stem(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" && ext != base {
		return strings.TrimSuffix(base, ext)
	}
	return base
}
