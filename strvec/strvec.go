package strvec

import (
	"bytes"
	"fmt"
	"iter"
	"math"

	"github.com/hupe1980/grago"
	"github.com/hupe1980/grago/mem"
)

// maxLen is the largest logical length a vector can reach.
const maxLen = math.MaxInt

// StrVec is a vector of owned byte strings with explicit capacity.
//
// The zero value is not usable; construct with New or NewCopy. After Destroy
// the vector must not be used again without re-construction.
type StrVec struct {
	alloc mem.Allocator
	slots [][]byte // len(slots) is the reserved capacity
	size  int      // logical length; slots[size:] hold no live buffers
}

// New creates a vector of length n whose elements are all empty strings.
// A nil allocator selects mem.Default().
func New(alloc mem.Allocator, n int) (*StrVec, error) {
	if alloc == nil {
		alloc = mem.Default()
	}
	if n < 0 {
		return nil, grago.Raise(grago.ErrInvalidArgument, "strvec: negative length %d", n)
	}
	slots, err := alloc.AllocSlots(n)
	if err != nil {
		return nil, fmt.Errorf("strvec: init: %w", err)
	}
	sv := &StrVec{alloc: alloc, slots: slots}
	for i := 0; i < n; i++ {
		buf, err := alloc.AllocBytes(0)
		if err != nil {
			sv.size = i
			sv.Destroy()
			return nil, fmt.Errorf("strvec: init: %w", err)
		}
		sv.slots[i] = buf
	}
	sv.size = n
	return sv, nil
}

// NewCopy creates a deep clone of src. On failure every partial allocation is
// rolled back. A nil allocator selects mem.Default().
func NewCopy(alloc mem.Allocator, src *StrVec) (*StrVec, error) {
	sv, err := New(alloc, src.Len())
	if err != nil {
		return nil, err
	}
	for i := 0; i < src.size; i++ {
		if err := sv.SetBytes(i, src.slots[i]); err != nil {
			sv.Destroy()
			return nil, fmt.Errorf("strvec: copy: %w", err)
		}
	}
	return sv, nil
}

// Destroy releases every element buffer and the slot array. The vector may be
// re-created with New afterwards. Calling any other method after Destroy is a
// programmer error.
func (sv *StrVec) Destroy() {
	for i := 0; i < sv.size; i++ {
		sv.alloc.FreeBytes(sv.slots[i])
		sv.slots[i] = nil
	}
	sv.alloc.FreeSlots(sv.slots)
	sv.slots = nil
	sv.size = 0
}

// Len returns the number of logical elements.
func (sv *StrVec) Len() int { return sv.size }

// Cap returns the reserved capacity in slots.
func (sv *StrVec) Cap() int { return len(sv.slots) }

// Get returns the element at index i truncated at its first NUL byte,
// preserving the historical NUL-terminated view. Bounds are the caller's
// responsibility; an index outside the slot array panics.
func (sv *StrVec) Get(i int) string {
	b := sv.slots[i]
	if j := bytes.IndexByte(b, 0); j >= 0 {
		b = b[:j]
	}
	return string(b)
}

// Bytes returns the full payload of the element at index i, including any
// embedded NUL bytes. The slice is borrowed: it is valid until the next
// mutation of the vector and must not be modified.
func (sv *StrVec) Bytes(i int) []byte { return sv.slots[i] }

// Set copies s into slot i, resizing the slot's buffer to fit. If the
// reallocation fails the previous element is left intact. The index may
// address any slot within the reserved capacity.
func (sv *StrVec) Set(i int, s string) error {
	if i < 0 || i >= len(sv.slots) {
		return grago.Raise(grago.ErrInvalidArgument, "strvec: index %d out of bounds (capacity %d)", i, len(sv.slots))
	}
	buf, err := sv.reallocSlot(i, len(s))
	if err != nil {
		return fmt.Errorf("strvec: set index %d: %w", i, err)
	}
	copy(buf, s)
	sv.slots[i] = buf
	return nil
}

// SetBytes copies the byte run b into slot i. Unlike Set, embedded NUL bytes
// are stored faithfully. If the reallocation fails the previous element is
// left intact.
func (sv *StrVec) SetBytes(i int, b []byte) error {
	if i < 0 || i >= len(sv.slots) {
		return grago.Raise(grago.ErrInvalidArgument, "strvec: index %d out of bounds (capacity %d)", i, len(sv.slots))
	}
	buf, err := sv.reallocSlot(i, len(b))
	if err != nil {
		return fmt.Errorf("strvec: set index %d: %w", i, err)
	}
	copy(buf, b)
	sv.slots[i] = buf
	return nil
}

// reallocSlot sizes the buffer of slot i to n bytes, allocating fresh when
// the slot is reserved. The slot itself is not updated; on error the old
// buffer is untouched.
func (sv *StrVec) reallocSlot(i, n int) ([]byte, error) {
	if sv.slots[i] == nil {
		return sv.alloc.AllocBytes(n)
	}
	return sv.alloc.ReallocBytes(sv.slots[i], n)
}

// Add appends a copy of s. When the reserved capacity is exhausted it doubles,
// capped at the platform integer maximum; adding to a vector already at the
// cap fails with grago.ErrOverflow.
func (sv *StrVec) Add(s string) error {
	if sv.size == maxLen {
		return grago.Raise(grago.ErrOverflow, "strvec: already at maximum size")
	}
	if sv.size == len(sv.slots) {
		newCap := maxLen
		if sv.size < maxLen/2 {
			newCap = sv.size * 2
		}
		if newCap == 0 {
			newCap = 1
		}
		if err := sv.Reserve(newCap); err != nil {
			return fmt.Errorf("strvec: add: %w", err)
		}
	}
	// The slot is freshly allocated regardless of previous reserve content.
	if prev := sv.slots[sv.size]; prev != nil {
		sv.alloc.FreeBytes(prev)
		sv.slots[sv.size] = nil
	}
	buf, err := sv.alloc.AllocBytes(len(s))
	if err != nil {
		return fmt.Errorf("strvec: add: %w", err)
	}
	copy(buf, s)
	sv.slots[sv.size] = buf
	sv.size++
	return nil
}

// Reserve grows the reserved capacity to at least n slots. The logical length
// is unchanged; it never shrinks capacity.
func (sv *StrVec) Reserve(n int) error {
	if n <= len(sv.slots) {
		return nil
	}
	slots, err := sv.alloc.ReallocSlots(sv.slots, n)
	if err != nil {
		return fmt.Errorf("strvec: reserve: %w", err)
	}
	sv.slots = slots
	return nil
}

// Resize sets the logical length to n. Shrinking releases the tail elements
// and keeps the reserved capacity. Growing reallocates the slot array to
// exactly n and fills the added slots with empty strings; if an allocation
// fails midway, the buffers allocated by this call are released, the array
// stays at the new capacity and the logical length keeps its old value.
func (sv *StrVec) Resize(n int) error {
	switch {
	case n < 0:
		return grago.Raise(grago.ErrInvalidArgument, "strvec: negative length %d", n)
	case n < sv.size:
		for i := n; i < sv.size; i++ {
			sv.alloc.FreeBytes(sv.slots[i])
			sv.slots[i] = nil
		}
		sv.size = n
	case n > sv.size:
		slots, err := sv.alloc.ReallocSlots(sv.slots, n)
		if err != nil {
			return fmt.Errorf("strvec: resize: %w", err)
		}
		sv.slots = slots
		for i := sv.size; i < n; i++ {
			buf, err := sv.alloc.AllocBytes(0)
			if err != nil {
				for j := sv.size; j < i; j++ {
					sv.alloc.FreeBytes(sv.slots[j])
					sv.slots[j] = nil
				}
				return fmt.Errorf("strvec: resize: %w", err)
			}
			sv.slots[i] = buf
		}
		sv.size = n
	}
	return nil
}

// Clear releases every element and sets the logical length to zero. The
// reserved capacity is retained. Clearing an empty vector is a no-op.
func (sv *StrVec) Clear() {
	for i := 0; i < sv.size; i++ {
		sv.alloc.FreeBytes(sv.slots[i])
		sv.slots[i] = nil
	}
	sv.size = 0
}

// Remove releases the element at index i and closes the gap.
func (sv *StrVec) Remove(i int) error {
	return sv.RemoveSection(i, i+1)
}

// RemoveSection releases the elements in [from, to) and shifts the tail left.
// The reserved capacity is not shrunk.
func (sv *StrVec) RemoveSection(from, to int) error {
	if from < 0 || to < from || to > sv.size {
		return grago.Raise(grago.ErrInvalidArgument, "strvec: remove section [%d, %d) out of bounds (size %d)", from, to, sv.size)
	}
	for i := from; i < to; i++ {
		sv.alloc.FreeBytes(sv.slots[i])
	}
	n := to - from
	copy(sv.slots[from:], sv.slots[to:sv.size])
	for i := sv.size - n; i < sv.size; i++ {
		sv.slots[i] = nil
	}
	sv.size -= n
	return nil
}

// MoveInterval copies the contents of slots [begin, end) into slots
// [dst, dst+end-begin). Existing destination buffers are released; source
// slots keep their own copies. The ranges may overlap: the source is
// duplicated in full before any destination is written, so an allocation
// failure leaves the vector unchanged.
func (sv *StrVec) MoveInterval(begin, end, dst int) error {
	if begin < 0 || end < begin || end > sv.size || dst < 0 || dst+(end-begin) > sv.size {
		return grago.Raise(grago.ErrInvalidArgument, "strvec: move interval [%d, %d) to %d out of bounds (size %d)", begin, end, dst, sv.size)
	}
	if begin == dst || end == begin {
		return nil
	}
	n := end - begin
	tmp := make([][]byte, n)
	for i := 0; i < n; i++ {
		src := sv.slots[begin+i]
		buf, err := sv.alloc.AllocBytes(len(src))
		if err != nil {
			for j := 0; j < i; j++ {
				sv.alloc.FreeBytes(tmp[j])
			}
			return fmt.Errorf("strvec: move interval: %w", err)
		}
		copy(buf, src)
		tmp[i] = buf
	}
	for i := 0; i < n; i++ {
		sv.alloc.FreeBytes(sv.slots[dst+i])
		sv.slots[dst+i] = tmp[i]
	}
	return nil
}

// PermDelete applies a per-slot mapping computed over the length at entry:
// index[i] == 0 releases slot i, index[i] == k > 0 relocates slot i to
// position k-1. The mapping must place the survivors bijectively onto
// [0, Len()-nremove); both the logical length and the reserved capacity drop
// by nremove. A malformed mapping fails with grago.ErrInvalidArgument and
// leaves the vector unchanged.
func (sv *StrVec) PermDelete(index []int, nremove int) error {
	if len(index) != sv.size {
		return grago.Raise(grago.ErrInvalidArgument, "strvec: permdelete index length %d does not match size %d", len(index), sv.size)
	}
	newSize := sv.size - nremove
	if nremove < 0 || newSize < 0 {
		return grago.Raise(grago.ErrInvalidArgument, "strvec: permdelete remove count %d out of range (size %d)", nremove, sv.size)
	}
	drops := 0
	seen := make([]bool, newSize)
	for i, k := range index {
		if k == 0 {
			drops++
			continue
		}
		d := k - 1
		if d < 0 || d >= newSize || seen[d] {
			return grago.Raise(grago.ErrInvalidArgument, "strvec: permdelete maps slot %d to invalid position %d", i, d)
		}
		seen[d] = true
	}
	if drops != nremove {
		return grago.Raise(grago.ErrInvalidArgument, "strvec: permdelete drops %d slots, expected %d", drops, nremove)
	}

	staged := make([][]byte, newSize)
	for i, k := range index {
		if k == 0 {
			sv.alloc.FreeBytes(sv.slots[i])
			continue
		}
		staged[k-1] = sv.slots[i]
	}
	copy(sv.slots, staged)
	for i := newSize; i < len(sv.slots); i++ {
		sv.slots[i] = nil
	}

	// Opportunistic capacity shrink; a refused shrink keeps the old array.
	if slots, err := sv.alloc.ReallocSlots(sv.slots, len(sv.slots)-nremove); err == nil {
		sv.slots = slots
	} else {
		sv.slots = sv.slots[:len(sv.slots)-nremove]
	}
	sv.size = newSize
	return nil
}

// Append grows the vector by from.Len() and deep-copies every non-empty
// element of from into the new tail; empty source elements are represented by
// the empty buffers the grow step placed. On a mid-copy allocation failure
// the vector is truncated back to its prior length.
func (sv *StrVec) Append(from *StrVec) error {
	len1, len2 := sv.size, from.size
	if len1 > maxLen-len2 {
		return grago.Raise(grago.ErrOverflow, "strvec: append of %d elements overflows", len2)
	}
	if err := sv.Resize(len1 + len2); err != nil {
		return fmt.Errorf("strvec: append: %w", err)
	}
	for i := 0; i < len2; i++ {
		src := from.slots[i]
		if len(src) == 0 {
			continue
		}
		buf, err := sv.alloc.AllocBytes(len(src))
		if err != nil {
			_ = sv.Resize(len1)
			return fmt.Errorf("strvec: append: %w", err)
		}
		copy(buf, src)
		sv.alloc.FreeBytes(sv.slots[len1+i])
		sv.slots[len1+i] = buf
	}
	return nil
}

// Index resizes dst to len(idx) and sets dst[i] to a copy of the element at
// idx[i]. Every index must lie within the logical range; dst must be an
// initialized vector distinct from the receiver.
func (sv *StrVec) Index(dst *StrVec, idx []int) error {
	for _, j := range idx {
		if j < 0 || j >= sv.size {
			return grago.Raise(grago.ErrInvalidArgument, "strvec: index %d out of bounds (size %d)", j, sv.size)
		}
	}
	if err := dst.Resize(len(idx)); err != nil {
		return fmt.Errorf("strvec: index: %w", err)
	}
	for i, j := range idx {
		if err := dst.SetBytes(i, sv.slots[j]); err != nil {
			return fmt.Errorf("strvec: index: %w", err)
		}
	}
	return nil
}

// Swap exchanges the elements at i and j.
func (sv *StrVec) Swap(i, j int) error {
	if i < 0 || i >= sv.size || j < 0 || j >= sv.size {
		return grago.Raise(grago.ErrInvalidArgument, "strvec: swap %d, %d out of bounds (size %d)", i, j, sv.size)
	}
	sv.slots[i], sv.slots[j] = sv.slots[j], sv.slots[i]
	return nil
}

// Contains reports whether any element equals s under the Get view.
func (sv *StrVec) Contains(s string) bool {
	for i := 0; i < sv.size; i++ {
		if sv.Get(i) == s {
			return true
		}
	}
	return false
}

// All iterates over the elements in index order using the Get view.
func (sv *StrVec) All() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i := 0; i < sv.size; i++ {
			if !yield(i, sv.Get(i)) {
				return
			}
		}
	}
}
