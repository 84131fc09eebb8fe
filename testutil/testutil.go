package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/grago"
	"github.com/hupe1980/grago/mem"
)

// FailingAllocator wraps another allocator and fails exactly the k-th
// allocation request (1-based, counting AllocBytes, ReallocBytes, AllocSlots
// and ReallocSlots). Later requests succeed again, so rollback paths run
// against a working allocator. It is safe for concurrent use.
type FailingAllocator struct {
	mu        sync.Mutex
	inner     mem.Allocator
	countdown int // fails when it reaches 1; <= 0 means never
	failures  int
}

// NewFailingAllocator creates a FailingAllocator that fails the failAt-th
// allocation. inner defaults to mem.Default(); failAt <= 0 never fails.
func NewFailingAllocator(inner mem.Allocator, failAt int) *FailingAllocator {
	if inner == nil {
		inner = mem.Default()
	}
	return &FailingAllocator{inner: inner, countdown: failAt}
}

// Failures returns the number of injected failures so far.
func (a *FailingAllocator) Failures() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.failures
}

// fail reports whether the current allocation request must fail.
func (a *FailingAllocator) fail() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.countdown <= 0 {
		return false
	}
	a.countdown--
	if a.countdown == 0 {
		a.failures++
		return true
	}
	return false
}

// AllocBytes implements mem.Allocator.
func (a *FailingAllocator) AllocBytes(n int) ([]byte, error) {
	if a.fail() {
		return nil, grago.Raise(grago.ErrNoMemory, "testutil: injected allocation failure")
	}
	return a.inner.AllocBytes(n)
}

// ReallocBytes implements mem.Allocator.
func (a *FailingAllocator) ReallocBytes(b []byte, n int) ([]byte, error) {
	if a.fail() {
		return nil, grago.Raise(grago.ErrNoMemory, "testutil: injected allocation failure")
	}
	return a.inner.ReallocBytes(b, n)
}

// FreeBytes implements mem.Allocator.
func (a *FailingAllocator) FreeBytes(b []byte) { a.inner.FreeBytes(b) }

// AllocSlots implements mem.Allocator.
func (a *FailingAllocator) AllocSlots(n int) ([][]byte, error) {
	if a.fail() {
		return nil, grago.Raise(grago.ErrNoMemory, "testutil: injected allocation failure")
	}
	return a.inner.AllocSlots(n)
}

// ReallocSlots implements mem.Allocator.
func (a *FailingAllocator) ReallocSlots(s [][]byte, n int) ([][]byte, error) {
	if a.fail() {
		return nil, grago.Raise(grago.ErrNoMemory, "testutil: injected allocation failure")
	}
	return a.inner.ReallocSlots(s, n)
}

// FreeSlots implements mem.Allocator.
func (a *FailingAllocator) FreeSlots(s [][]byte) { a.inner.FreeSlots(s) }

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Words returns n random words of length 1..12, deterministic for a seed.
func Words(seed int64, n int) []string {
	rng := rand.New(rand.NewSource(seed))
	words := make([]string, n)
	for i := range words {
		b := make([]byte, 1+rng.Intn(12))
		for j := range b {
			b[j] = letters[rng.Intn(len(letters))]
		}
		words[i] = string(b)
	}
	return words
}
