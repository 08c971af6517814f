package gallery

import (
	"path/filepath"

	"github.com/GriffinCanCode/liview/internal/shared/fserr"
)

// Folder is one navigable entry in a folder listing.
type Folder struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	Extracted bool   `json:"extracted"`
}

// DirLister supplies the directories of extracted archives.
type DirLister interface {
	Dirs() []string
}

// Browser lists folders, merging extracted archives into the result.
type Browser struct {
	extracted DirLister
}

// NewBrowser creates a browser. extracted may be nil.
func NewBrowser(extracted DirLister) *Browser {
	return &Browser{extracted: extracted}
}

// ListFolders returns the sub-directories of dir in natural order, followed
// by every extracted-archive directory in registration order. An extracted
// directory that is already a sub-directory of dir is flagged rather than
// listed twice.
func (b *Browser) ListFolders(dir string) ([]Folder, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fserr.IO("list folders", dir, err)
	}

	subdirs, err := subdirectories(abs)
	if err != nil {
		return nil, fserr.IO("list folders", dir, err)
	}

	folders := make([]Folder, 0, len(subdirs))
	index := make(map[string]int, len(subdirs))
	for _, p := range subdirs {
		index[p] = len(folders)
		folders = append(folders, Folder{Name: filepath.Base(p), Path: p})
	}

	if b.extracted == nil {
		return folders, nil
	}
	for _, p := range b.extracted.Dirs() {
		p = filepath.Clean(p)
		if i, ok := index[p]; ok {
			folders[i].Extracted = true
			continue
		}
		index[p] = len(folders)
		folders = append(folders, Folder{Name: filepath.Base(p), Path: p, Extracted: true})
	}
	return folders, nil
}
