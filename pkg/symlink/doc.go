// Package symlink implements the force-symlink primitive used by every link
// phase of a build: whatever occupies the destination is removed and a
// fresh symlink to the source takes its place.
//
// The operation is idempotent across builds and destructive: a real file at
// the destination is deleted without backup.
package symlink
