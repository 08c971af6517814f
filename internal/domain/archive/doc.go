// Package archive extracts zip containers into plain directories.
//
// Format detection sniffs content rather than trusting the file extension.
// Entries are validated against the destination before anything is written;
// an entry that would land outside it fails the whole extraction. Each file
// entry is buffered in memory up to a size cap and published with a
// temp-file rename, so a reader never observes a half-written image.
//
// Extractions are independent: two calls with different destinations share
// nothing and may run concurrently.
package archive
