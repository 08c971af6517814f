// Package http exposes image discovery and archive extraction over HTTP.
//
// Endpoints:
//   - GET  /health: liveness and session summary
//   - GET  /folders?path=: sub-folders plus extracted archives
//   - GET  /images?path=&recursive=: images in a folder
//   - GET  /siblings?path=, /neighbors?path=: folder navigation
//   - GET  /thumbnail?path=: first image of a folder
//   - GET  /image?path=: raw image bytes
//   - POST /archives/extract, /archives/open: extraction
//   - GET  /archives, /archives/entries?path=: registry and archive contents
//
// Failures use one body shape, {"success": false, "error": ..., "kind": ...},
// where kind is the failure classification (PathNotFound, NoParentDirectory,
// ArchiveFormatError, IoFailure, InvalidRequest).
package http
