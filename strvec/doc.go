// Package strvec implements a dynamically-sized sequence of owned,
// variable-length byte strings.
//
// A StrVec tracks two boundaries: the logical length (Len) and the reserved
// capacity (Cap). Every slot in the logical range holds a buffer the vector
// uniquely owns; buffers are copied on the way in and released on eviction,
// never shared between vectors. Slots in the reserved range hold no live
// buffers.
//
// # Concurrency Model
//
// StrVec is a passive data structure with no internal synchronization.
// Callers serialize mutation; concurrent readers using only Len/Get/Bytes are
// safe as long as no writer is active. No operation blocks or spawns
// goroutines.
//
// # Partial Failure
//
// Every fallible operation leaves the vector in a valid state before
// returning its error: the logical size may be smaller than before, but no
// slot in the logical range ever holds a released buffer. Allocation failures
// surface as grago.ErrNoMemory, malformed indices and ranges as
// grago.ErrInvalidArgument, and growth past the platform integer maximum as
// grago.ErrOverflow.
//
// # Byte Strings
//
// Elements are opaque byte sequences. SetBytes stores embedded NUL bytes
// faithfully and Bytes returns the full payload; Get preserves the historical
// NUL-terminated view and truncates at the first NUL byte.
package strvec
