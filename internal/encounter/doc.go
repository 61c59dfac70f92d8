// Package encounter persists the observations captured for a form as JSON
// documents, one file per encounter, guarded by an advisory file lock.
package encounter
