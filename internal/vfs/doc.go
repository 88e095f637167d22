// Package vfs implements the in-memory staging filesystem that makes one
// module's disk effects atomic. A VFS is constructed immediately before a
// module (or per-application) execution, collects every write in memory, and
// either flushes everything to disk on success or is cleared without
// flushing on failure. Clearing happens unconditionally on every exit path;
// a VFS that is never cleared is a defect.
package vfs
