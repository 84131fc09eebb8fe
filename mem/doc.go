// Package mem provides the allocation primitives that grago containers route
// their memory through.
//
// # Why an allocator interface
//
// Containers never call make directly for the buffers they own. Routing every
// buffer through an Allocator lets a resource.Controller enforce a memory
// budget and lets test harnesses fail the k-th allocation to exercise
// partial-failure paths (see package testutil).
//
// # Semantics
//
//   - AllocBytes has calloc semantics: the buffer is zeroed and non-nil even
//     for a zero-length request.
//   - ReallocBytes preserves the common prefix and zeroes any extension.
//   - Free* releases budget accounting only; the garbage collector owns the
//     actual memory.
//
// Allocators must be safe for concurrent use.
package mem
