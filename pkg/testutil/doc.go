// Package testutil provides utilities for testing homebuild components.
//
// Key components:
//   - MemoryFS: In-memory types.FS with symlink semantics, error injection
//     and an operation log for asserting side-effect order
//   - AssertSymlink / AssertNotExists: filesystem assertions
//   - Entity: terse ConfigEntity construction
//
// Tests that need a real shell or real symlinks use t.TempDir() instead.
package testutil
