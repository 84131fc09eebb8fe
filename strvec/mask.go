package strvec

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/grago"
	"github.com/hupe1980/grago/mem"
)

// RemoveMask releases every element whose index is set in bm and compacts the
// survivors, preserving their order. The bitmap is compiled into a PermDelete
// mapping. A bit at or beyond Len() fails with grago.ErrInvalidArgument.
func (sv *StrVec) RemoveMask(bm *roaring.Bitmap) error {
	if bm == nil || bm.IsEmpty() {
		return nil
	}
	if int64(bm.Maximum()) >= int64(sv.size) {
		return grago.Raise(grago.ErrInvalidArgument, "strvec: mask bit %d out of bounds (size %d)", bm.Maximum(), sv.size)
	}
	index := make([]int, sv.size)
	pos, nremove := 0, 0
	for i := 0; i < sv.size; i++ {
		if bm.Contains(uint32(i)) {
			nremove++
			continue
		}
		pos++
		index[i] = pos
	}
	if err := sv.PermDelete(index, nremove); err != nil {
		return fmt.Errorf("strvec: remove mask: %w", err)
	}
	return nil
}

// Select returns a new vector holding copies of the flagged elements in
// ascending index order. A nil allocator selects mem.Default().
func (sv *StrVec) Select(alloc mem.Allocator, bm *roaring.Bitmap) (*StrVec, error) {
	if bm == nil || bm.IsEmpty() {
		return New(alloc, 0)
	}
	if int64(bm.Maximum()) >= int64(sv.size) {
		return nil, grago.Raise(grago.ErrInvalidArgument, "strvec: mask bit %d out of bounds (size %d)", bm.Maximum(), sv.size)
	}
	idx := make([]int, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		idx = append(idx, int(it.Next()))
	}
	dst, err := New(alloc, 0)
	if err != nil {
		return nil, err
	}
	if err := sv.Index(dst, idx); err != nil {
		dst.Destroy()
		return nil, fmt.Errorf("strvec: select: %w", err)
	}
	return dst, nil
}
