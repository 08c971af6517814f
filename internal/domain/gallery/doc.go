// Package gallery turns directories into ordered image collections.
//
// Components:
//   - Locator: image discovery, shallow (strict) or recursive (lenient)
//   - Siblings / Neighbors: folders next to the one being viewed
//   - Browser: sub-folder listing merged with extracted archives
//
// Strictness:
//   - ListImages fails when the directory is missing or unreadable
//   - ListImagesRecursive skips anything it cannot read, including the root,
//     and only fails on context cancellation
//
// All listings come back in natural order, so "2.png" sorts before
// "10.png".
package gallery
