// Package testutil provides testing utilities for grago.
//
// This package is intended for use in tests and benchmarks only.
//
// # Allocation Failure Injection
//
// FailingAllocator wraps any mem.Allocator and fails the k-th allocation
// request, which is how the partial-failure paths of the containers are
// exercised:
//
//	alloc := testutil.NewFailingAllocator(nil, 3)
//	_, err := strvec.New(alloc, 10) // third allocation fails
//
// # Random String Corpora
//
//	words := testutil.Words(seed, 100)
package testutil
