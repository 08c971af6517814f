// Package temparea allocates and removes the transient directories archives
// are extracted into.
//
// Two lifetime policies share the Area interface:
//   - ScopedArea: one subtree per owner (a session); Close removes it all.
//   - NamedArea: caller-named directories under a fixed cache root that stay
//     until the caller releases them.
//
// Names come from random UUIDs, so concurrent allocations on the same base
// never race for a path and need no coordination.
//
// Example Usage:
//
//	area, err := temparea.NewScoped(cfg.Storage.TempRoot, sessionID.String())
//	dir, err := area.Allocate("")
//	defer area.Close()
package temparea
