// Package scan builds the directory tree document.
//
// It walks a directory tree top-down in a single pass, prunes ignored
// directory names before descending, computes folder sizes under a shared
// time budget, and assembles a rooted tree keyed by absolute paths.
package scan
