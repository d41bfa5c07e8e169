// Package history persists a record of processed archives in SQLite so
// earlier runs can be inspected after the fact.
package history
