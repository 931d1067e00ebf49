// Package filesystem provides filesystem abstraction interfaces and implementations.
//
// The extractor reads year directories through a FileSystemProvider and the CSV
// sink writes its output through one, so both can be exercised against an
// in-memory tree in tests.
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
package filesystem
