// Package registry records which archives were extracted where.
//
// The registry is an append-only, in-memory list owned by one session. It
// feeds the folder listing so extracted archives show up next to real
// sub-directories.
//
// Features:
//   - Concurrent Record calls never lose an entry
//   - Readers get an insertion-ordered snapshot and never observe a torn list
//   - Re-recording an already registered directory refreshes its record in place
//
// Example Usage:
//
//	reg := registry.New()
//	reg.Record(registry.Record{Archive: "/books/a.zip", Dir: dir, Policy: "scoped"})
//	for _, dir := range reg.Dirs() {
//	    fmt.Println(dir)
//	}
package registry
