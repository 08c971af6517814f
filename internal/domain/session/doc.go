// Package session ties temp storage, extraction and the registry together
// for one running viewer.
//
// A Session owns:
//   - a scoped temp area, removed when the session is closed
//   - a named area under the cache root, left for the next run
//   - the extraction registry feeding folder listings
//
// Opening an archive allocates a directory under the chosen policy,
// extracts into it and records it. A failed extraction releases the
// directory and records nothing. Named opens extract into a staging
// directory first, so a failed re-open keeps the previous extraction.
//
// Example Usage:
//
//	sess, err := session.New(session.Options{TempRoot: cfg.Storage.TempRoot, CacheRoot: cfg.Storage.CacheRoot})
//	defer sess.Close()
//	res, err := sess.ExtractArchive(ctx, "/books/vol1.zip")
//	fmt.Println(res.Dir)
package session
