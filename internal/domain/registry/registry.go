package registry

import (
	"path/filepath"
	"sync"
	"time"
)

// Record describes one completed extraction.
type Record struct {
	Archive     string    `json:"archive"`
	Dir         string    `json:"dir"`
	Policy      string    `json:"policy"`
	ExtractedAt time.Time `json:"extracted_at"`
}

// Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	records []Record
	byDir   map[string]int
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{byDir: make(map[string]int)}
}

// Record appends rec and reports true. When rec.Dir is already registered the
// existing record is refreshed in place, keeping its position, and Record
// reports false.
func (r *Registry) Record(rec Record) bool {
	rec.Dir = filepath.Clean(rec.Dir)
	if rec.ExtractedAt.IsZero() {
		rec.ExtractedAt = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if i, ok := r.byDir[rec.Dir]; ok {
		r.records[i] = rec
		return false
	}
	r.byDir[rec.Dir] = len(r.records)
	r.records = append(r.records, rec)
	return true
}

// List returns a copy of every record in insertion order.
func (r *Registry) List() []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// Dirs returns the registered destination directories in insertion order.
func (r *Registry) Dirs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.records))
	for i, rec := range r.records {
		out[i] = rec.Dir
	}
	return out
}

// Contains reports whether dir has been recorded.
func (r *Registry) Contains(dir string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byDir[filepath.Clean(dir)]
	return ok
}

// Len returns the number of records.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
