// Package archive discovers vendor texture zips in a working directory and
// extracts them into sibling directories for materialization.
package archive
