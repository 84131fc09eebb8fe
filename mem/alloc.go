package mem

import (
	"github.com/hupe1980/grago"
	"github.com/hupe1980/grago/resource"
)

// slotCost is the budget accounting cost of one slot-array entry.
const slotCost = 24 // slice header: ptr + len + cap

// Allocator allocates the buffers and slot arrays owned by containers.
type Allocator interface {
	// AllocBytes returns a zeroed buffer of length n. Non-nil even for n == 0.
	AllocBytes(n int) ([]byte, error)

	// ReallocBytes returns a buffer of length n holding the prefix of b.
	// On error b is still valid and still accounted.
	ReallocBytes(b []byte, n int) ([]byte, error)

	// FreeBytes releases the accounting for b.
	FreeBytes(b []byte)

	// AllocSlots returns a slot array of length n with nil entries.
	AllocSlots(n int) ([][]byte, error)

	// ReallocSlots returns a slot array of length n holding the prefix of s.
	// On error s is still valid and still accounted.
	ReallocSlots(s [][]byte, n int) ([][]byte, error)

	// FreeSlots releases the accounting for s.
	FreeSlots(s [][]byte)
}

// Default returns the allocator used when a container is constructed with a
// nil allocator.
func Default() Allocator { return Heap{} }

// Heap is the plain heap allocator. It never fails and performs no
// accounting.
type Heap struct{}

// AllocBytes implements Allocator.
func (Heap) AllocBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, grago.Raise(grago.ErrInvalidArgument, "mem: negative buffer size %d", n)
	}
	return make([]byte, n), nil
}

// ReallocBytes implements Allocator.
func (Heap) ReallocBytes(b []byte, n int) ([]byte, error) {
	if n < 0 {
		return nil, grago.Raise(grago.ErrInvalidArgument, "mem: negative buffer size %d", n)
	}
	if n <= cap(b) {
		grown := b[:n]
		for i := len(b); i < n; i++ {
			grown[i] = 0
		}
		return grown, nil
	}
	grown := make([]byte, n)
	copy(grown, b)
	return grown, nil
}

// FreeBytes implements Allocator.
func (Heap) FreeBytes([]byte) {}

// AllocSlots implements Allocator.
func (Heap) AllocSlots(n int) ([][]byte, error) {
	if n < 0 {
		return nil, grago.Raise(grago.ErrInvalidArgument, "mem: negative slot count %d", n)
	}
	return make([][]byte, n), nil
}

// ReallocSlots implements Allocator.
func (Heap) ReallocSlots(s [][]byte, n int) ([][]byte, error) {
	if n < 0 {
		return nil, grago.Raise(grago.ErrInvalidArgument, "mem: negative slot count %d", n)
	}
	if n <= cap(s) {
		grown := s[:n]
		for i := len(s); i < n; i++ {
			grown[i] = nil
		}
		return grown, nil
	}
	grown := make([][]byte, n)
	copy(grown, s)
	return grown, nil
}

// FreeSlots implements Allocator.
func (Heap) FreeSlots([][]byte) {}

// Budgeted wraps an allocator with a resource.Controller memory budget and an
// optional metrics collector. Budget exhaustion surfaces as grago.ErrNoMemory.
type Budgeted struct {
	inner   Allocator
	ctrl    *resource.Controller
	metrics grago.MetricsCollector
}

// NewBudgeted creates a budget-enforcing allocator. inner defaults to Heap,
// metrics to the no-op collector.
func NewBudgeted(inner Allocator, ctrl *resource.Controller, metrics grago.MetricsCollector) *Budgeted {
	if inner == nil {
		inner = Heap{}
	}
	if metrics == nil {
		metrics = grago.NoopMetricsCollector{}
	}
	return &Budgeted{inner: inner, ctrl: ctrl, metrics: metrics}
}

// AllocBytes implements Allocator.
func (a *Budgeted) AllocBytes(n int) ([]byte, error) {
	if err := a.ctrl.AcquireMemory(int64(n)); err != nil {
		err = grago.Raise(grago.ErrNoMemory, "mem: buffer of %d bytes over budget", n)
		a.metrics.RecordAlloc(n, err)
		return nil, err
	}
	b, err := a.inner.AllocBytes(n)
	if err != nil {
		a.ctrl.ReleaseMemory(int64(n))
	}
	a.metrics.RecordAlloc(n, err)
	return b, err
}

// ReallocBytes implements Allocator.
func (a *Budgeted) ReallocBytes(b []byte, n int) ([]byte, error) {
	if grow := int64(n - len(b)); grow > 0 {
		if err := a.ctrl.AcquireMemory(grow); err != nil {
			err = grago.Raise(grago.ErrNoMemory, "mem: buffer growth of %d bytes over budget", grow)
			a.metrics.RecordAlloc(n, err)
			return nil, err
		}
	}
	grown, err := a.inner.ReallocBytes(b, n)
	if err != nil {
		if grow := int64(n - len(b)); grow > 0 {
			a.ctrl.ReleaseMemory(grow)
		}
		a.metrics.RecordAlloc(n, err)
		return nil, err
	}
	if shrink := int64(len(b) - n); shrink > 0 {
		a.ctrl.ReleaseMemory(shrink)
	}
	a.metrics.RecordAlloc(n, nil)
	return grown, nil
}

// FreeBytes implements Allocator.
func (a *Budgeted) FreeBytes(b []byte) {
	a.inner.FreeBytes(b)
	a.ctrl.ReleaseMemory(int64(len(b)))
	a.metrics.RecordFree(len(b))
}

// AllocSlots implements Allocator.
func (a *Budgeted) AllocSlots(n int) ([][]byte, error) {
	if err := a.ctrl.AcquireMemory(int64(n) * slotCost); err != nil {
		err = grago.Raise(grago.ErrNoMemory, "mem: slot array of %d over budget", n)
		a.metrics.RecordAlloc(n*slotCost, err)
		return nil, err
	}
	s, err := a.inner.AllocSlots(n)
	if err != nil {
		a.ctrl.ReleaseMemory(int64(n) * slotCost)
	}
	a.metrics.RecordAlloc(n*slotCost, err)
	return s, err
}

// ReallocSlots implements Allocator.
func (a *Budgeted) ReallocSlots(s [][]byte, n int) ([][]byte, error) {
	if grow := int64(n-len(s)) * slotCost; grow > 0 {
		if err := a.ctrl.AcquireMemory(grow); err != nil {
			err = grago.Raise(grago.ErrNoMemory, "mem: slot array growth of %d over budget", n-len(s))
			a.metrics.RecordAlloc(n*slotCost, err)
			return nil, err
		}
	}
	grown, err := a.inner.ReallocSlots(s, n)
	if err != nil {
		if grow := int64(n-len(s)) * slotCost; grow > 0 {
			a.ctrl.ReleaseMemory(grow)
		}
		a.metrics.RecordAlloc(n*slotCost, err)
		return nil, err
	}
	if shrink := int64(len(s)-n) * slotCost; shrink > 0 {
		a.ctrl.ReleaseMemory(shrink)
	}
	a.metrics.RecordAlloc(n*slotCost, nil)
	return grown, nil
}

// FreeSlots implements Allocator.
func (a *Budgeted) FreeSlots(s [][]byte) {
	a.inner.FreeSlots(s)
	a.ctrl.ReleaseMemory(int64(len(s)) * slotCost)
	a.metrics.RecordFree(len(s) * slotCost)
}
