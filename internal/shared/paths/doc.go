// Package paths provides the standard storage locations and path-containment
// helpers used by the temp areas and the archive extractor.
//
// # Directory Structure
//
//	<os temp dir>/liview/          (scoped areas, one subtree per session)
//	  └── sess_<ulid>/
//	      └── <uuid>/              (one extraction)
//	<user cache dir>/liview/archives/
//	  └── <name>/                  (named, caller-managed extractions)
//
// # Usage
//
//	target, err := paths.SafeJoin(dest, entry.Name)
//	if err != nil {
//	    // entry escapes dest
//	}
package paths
