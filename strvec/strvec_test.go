package strvec

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/grago"
	"github.com/hupe1980/grago/testutil"
)

// checkInvariants asserts the structural invariants that must hold after
// every successful operation: the logical length never exceeds the reserved
// capacity, every live slot holds a buffer and no reserved slot does.
func checkInvariants(t *testing.T, sv *StrVec) {
	t.Helper()
	require.GreaterOrEqual(t, sv.size, 0)
	require.LessOrEqual(t, sv.size, len(sv.slots))
	for i := 0; i < sv.size; i++ {
		require.NotNil(t, sv.slots[i], "live slot %d must hold a buffer", i)
	}
}

func elements(sv *StrVec) []string {
	out := make([]string, 0, sv.Len())
	for _, s := range sv.All() {
		out = append(out, s)
	}
	return out
}

func TestNew(t *testing.T) {
	sv, err := New(nil, 3)
	require.NoError(t, err)
	defer sv.Destroy()

	assert.Equal(t, 3, sv.Len())
	assert.Equal(t, 3, sv.Cap())
	for i := 0; i < 3; i++ {
		assert.Equal(t, "", sv.Get(i))
		assert.NotNil(t, sv.Bytes(i))
	}
	checkInvariants(t, sv)
}

func TestNew_Empty(t *testing.T) {
	sv, err := New(nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, sv.Len())

	// Destroy is idempotent on a just-initialized empty vector.
	sv.Destroy()
	sv.Destroy()
}

func TestNew_NegativeLength(t *testing.T) {
	_, err := New(nil, -1)
	assert.ErrorIs(t, err, grago.ErrInvalidArgument)
}

func TestSetGet(t *testing.T) {
	sv, err := New(nil, 3)
	require.NoError(t, err)
	defer sv.Destroy()

	require.NoError(t, sv.Set(0, "a"))
	require.NoError(t, sv.Set(1, ""))
	require.NoError(t, sv.Set(2, "cd"))

	assert.Equal(t, []string{"a", "", "cd"}, elements(sv))

	// Overwriting reallocates the slot buffer to fit.
	require.NoError(t, sv.Set(2, "a much longer replacement value"))
	assert.Equal(t, "a much longer replacement value", sv.Get(2))
	require.NoError(t, sv.Set(2, "x"))
	assert.Equal(t, "x", sv.Get(2))
	checkInvariants(t, sv)
}

func TestSet_Bounds(t *testing.T) {
	sv, err := New(nil, 2)
	require.NoError(t, err)
	defer sv.Destroy()

	assert.ErrorIs(t, sv.Set(-1, "x"), grago.ErrInvalidArgument)
	assert.ErrorIs(t, sv.Set(2, "x"), grago.ErrInvalidArgument)
	assert.ErrorIs(t, sv.SetBytes(5, []byte("x")), grago.ErrInvalidArgument)
	assert.Equal(t, []string{"", ""}, elements(sv))
}

func TestSet_ReservedSlot(t *testing.T) {
	sv, err := New(nil, 1)
	require.NoError(t, err)
	defer sv.Destroy()

	require.NoError(t, sv.Reserve(4))
	require.Equal(t, 4, sv.Cap())

	// The index may address any slot within the reserved capacity; the
	// logical length does not change.
	require.NoError(t, sv.Set(3, "hidden"))
	assert.Equal(t, 1, sv.Len())
}

func TestSetBytes_EmbeddedNUL(t *testing.T) {
	sv, err := New(nil, 1)
	require.NoError(t, err)
	defer sv.Destroy()

	require.NoError(t, sv.SetBytes(0, []byte("ab\x00cd")))

	// Bytes exposes the full payload, Get truncates at the first NUL.
	assert.Equal(t, []byte("ab\x00cd"), sv.Bytes(0))
	assert.Equal(t, "ab", sv.Get(0))
}

func TestAdd(t *testing.T) {
	sv, err := New(nil, 0)
	require.NoError(t, err)
	defer sv.Destroy()

	require.NoError(t, sv.Add("x"))
	require.NoError(t, sv.Add("y"))
	require.NoError(t, sv.Add("z"))

	assert.Equal(t, 3, sv.Len())
	assert.Equal(t, "y", sv.Get(1))
	assert.GreaterOrEqual(t, sv.Cap(), 3)
	checkInvariants(t, sv)
}

func TestAdd_GrowthDoubles(t *testing.T) {
	sv, err := New(nil, 0)
	require.NoError(t, err)
	defer sv.Destroy()

	caps := map[int]bool{}
	for i := 0; i < 33; i++ {
		require.NoError(t, sv.Add(fmt.Sprintf("s%d", i)))
		caps[sv.Cap()] = true
	}
	// 1 -> 2 -> 4 -> 8 -> 16 -> 32 -> 64
	for _, want := range []int{1, 2, 4, 8, 16, 32, 64} {
		assert.True(t, caps[want], "capacity %d should have been reached", want)
	}
	assert.Equal(t, 33, sv.Len())
}

func TestResize(t *testing.T) {
	sv, err := New(nil, 2)
	require.NoError(t, err)
	defer sv.Destroy()

	require.NoError(t, sv.Set(0, "a"))
	require.NoError(t, sv.Set(1, "b"))

	require.NoError(t, sv.Resize(5))
	assert.Equal(t, []string{"a", "b", "", "", ""}, elements(sv))
	assert.Equal(t, 5, sv.Cap())

	require.NoError(t, sv.Resize(1))
	assert.Equal(t, []string{"a"}, elements(sv))
	assert.Equal(t, 5, sv.Cap(), "shrink keeps the reserved capacity")
	checkInvariants(t, sv)
}

func TestClear(t *testing.T) {
	sv, err := New(nil, 3)
	require.NoError(t, err)
	defer sv.Destroy()

	require.NoError(t, sv.Set(0, "a"))
	oldCap := sv.Cap()

	sv.Clear()
	assert.Equal(t, 0, sv.Len())
	assert.Equal(t, oldCap, sv.Cap())

	// Clearing again is a no-op.
	sv.Clear()
	assert.Equal(t, 0, sv.Len())
	checkInvariants(t, sv)
}

func TestRemoveSection(t *testing.T) {
	sv, err := New(nil, 4)
	require.NoError(t, err)
	defer sv.Destroy()

	for i, s := range []string{"a", "b", "c", "d"} {
		require.NoError(t, sv.Set(i, s))
	}

	require.NoError(t, sv.RemoveSection(1, 3))
	assert.Equal(t, []string{"a", "d"}, elements(sv))
	assert.Equal(t, 4, sv.Cap(), "reserved capacity is not shrunk")
	checkInvariants(t, sv)
}

func TestRemoveSection_Bounds(t *testing.T) {
	sv, err := New(nil, 3)
	require.NoError(t, err)
	defer sv.Destroy()

	assert.ErrorIs(t, sv.RemoveSection(-1, 2), grago.ErrInvalidArgument)
	assert.ErrorIs(t, sv.RemoveSection(2, 1), grago.ErrInvalidArgument)
	assert.ErrorIs(t, sv.RemoveSection(0, 4), grago.ErrInvalidArgument)
	assert.Equal(t, 3, sv.Len())
}

func TestRemove(t *testing.T) {
	sv, err := New(nil, 3)
	require.NoError(t, err)
	defer sv.Destroy()

	for i, s := range []string{"a", "b", "c"} {
		require.NoError(t, sv.Set(i, s))
	}
	require.NoError(t, sv.Remove(1))
	assert.Equal(t, []string{"a", "c"}, elements(sv))
}

func TestMoveInterval_NoOp(t *testing.T) {
	sv, err := New(nil, 2)
	require.NoError(t, err)
	defer sv.Destroy()

	require.NoError(t, sv.Set(0, "p"))
	require.NoError(t, sv.Set(1, "q"))

	require.NoError(t, sv.MoveInterval(0, 2, 0))
	assert.Equal(t, []string{"p", "q"}, elements(sv))
	checkInvariants(t, sv)
}

func TestMoveInterval_Overlapping(t *testing.T) {
	sv, err := New(nil, 4)
	require.NoError(t, err)
	defer sv.Destroy()

	for i, s := range []string{"a", "b", "c", "d"} {
		require.NoError(t, sv.Set(i, s))
	}

	// Source [0, 2) overlaps destination [1, 3): the source must be read
	// in full before any destination write.
	require.NoError(t, sv.MoveInterval(0, 2, 1))
	assert.Equal(t, []string{"a", "a", "b", "d"}, elements(sv))
	checkInvariants(t, sv)
}

func TestMoveInterval_Bounds(t *testing.T) {
	sv, err := New(nil, 3)
	require.NoError(t, err)
	defer sv.Destroy()

	assert.ErrorIs(t, sv.MoveInterval(0, 4, 0), grago.ErrInvalidArgument)
	assert.ErrorIs(t, sv.MoveInterval(0, 2, 2), grago.ErrInvalidArgument)
	assert.ErrorIs(t, sv.MoveInterval(-1, 1, 0), grago.ErrInvalidArgument)
}

func TestPermDelete(t *testing.T) {
	sv, err := New(nil, 3)
	require.NoError(t, err)
	defer sv.Destroy()

	for i, s := range []string{"x", "y", "z"} {
		require.NoError(t, sv.Set(i, s))
	}

	// Slot 0 relocates to position 1, slot 1 is dropped, slot 2 relocates
	// to position 0.
	require.NoError(t, sv.PermDelete([]int{2, 0, 1}, 1))
	assert.Equal(t, []string{"z", "x"}, elements(sv))
	assert.Equal(t, 2, sv.Cap(), "capacity drops with the removals")
	checkInvariants(t, sv)
}

func TestPermDelete_DropAll(t *testing.T) {
	sv, err := New(nil, 3)
	require.NoError(t, err)
	defer sv.Destroy()

	require.NoError(t, sv.PermDelete([]int{0, 0, 0}, 3))
	assert.Equal(t, 0, sv.Len())
}

func TestPermDelete_Malformed(t *testing.T) {
	newVec := func(t *testing.T) *StrVec {
		sv, err := New(nil, 3)
		require.NoError(t, err)
		for i, s := range []string{"x", "y", "z"} {
			require.NoError(t, sv.Set(i, s))
		}
		return sv
	}

	tests := []struct {
		name    string
		index   []int
		nremove int
	}{
		{"wrong index length", []int{1, 0}, 1},
		{"destination out of range", []int{3, 0, 1}, 1},
		{"duplicate destination", []int{1, 0, 1}, 1},
		{"drop count mismatch", []int{2, 0, 1}, 2},
		{"negative remove count", []int{1, 2, 3}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sv := newVec(t)
			defer sv.Destroy()

			err := sv.PermDelete(tt.index, tt.nremove)
			assert.ErrorIs(t, err, grago.ErrInvalidArgument)
			assert.Equal(t, []string{"x", "y", "z"}, elements(sv), "a malformed mapping must leave the vector unchanged")
		})
	}
}

func TestAppend(t *testing.T) {
	a, err := New(nil, 2)
	require.NoError(t, err)
	defer a.Destroy()
	require.NoError(t, a.Set(0, "hi"))
	require.NoError(t, a.Set(1, ""))

	b, err := New(nil, 1)
	require.NoError(t, err)
	defer b.Destroy()
	require.NoError(t, b.Set(0, "world"))

	require.NoError(t, a.Append(b))
	assert.Equal(t, []string{"hi", "", "world"}, elements(a))
	assert.Equal(t, []string{"world"}, elements(b), "the source is kept unchanged")
	checkInvariants(t, a)
}

func TestAppend_Self(t *testing.T) {
	sv, err := New(nil, 2)
	require.NoError(t, err)
	defer sv.Destroy()
	require.NoError(t, sv.Set(0, "a"))
	require.NoError(t, sv.Set(1, "b"))

	require.NoError(t, sv.Append(sv))
	assert.Equal(t, []string{"a", "b", "a", "b"}, elements(sv))
}

func TestNewCopy(t *testing.T) {
	src, err := New(nil, 3)
	require.NoError(t, err)
	defer src.Destroy()
	for i, s := range []string{"a", "", "cd"} {
		require.NoError(t, src.Set(i, s))
	}

	dst, err := NewCopy(nil, src)
	require.NoError(t, err)
	defer dst.Destroy()

	assert.Equal(t, elements(src), elements(dst))

	// Mutating the source must not leak into the clone.
	require.NoError(t, src.Set(0, "mutated"))
	assert.Equal(t, "a", dst.Get(0))
	checkInvariants(t, dst)
}

func TestIndex(t *testing.T) {
	src, err := New(nil, 3)
	require.NoError(t, err)
	defer src.Destroy()
	for i, s := range []string{"a", "b", "c"} {
		require.NoError(t, src.Set(i, s))
	}

	dst, err := New(nil, 0)
	require.NoError(t, err)
	defer dst.Destroy()

	require.NoError(t, src.Index(dst, []int{2, 0, 2, 1}))
	assert.Equal(t, []string{"c", "a", "c", "b"}, elements(dst))

	assert.ErrorIs(t, src.Index(dst, []int{3}), grago.ErrInvalidArgument)
	assert.ErrorIs(t, src.Index(dst, []int{-1}), grago.ErrInvalidArgument)
	checkInvariants(t, dst)
}

func TestSwap(t *testing.T) {
	sv, err := New(nil, 2)
	require.NoError(t, err)
	defer sv.Destroy()
	require.NoError(t, sv.Set(0, "a"))
	require.NoError(t, sv.Set(1, "b"))

	require.NoError(t, sv.Swap(0, 1))
	assert.Equal(t, []string{"b", "a"}, elements(sv))
	assert.ErrorIs(t, sv.Swap(0, 2), grago.ErrInvalidArgument)
}

func TestContains(t *testing.T) {
	sv, err := New(nil, 0)
	require.NoError(t, err)
	defer sv.Destroy()
	require.NoError(t, sv.Add("needle"))

	assert.True(t, sv.Contains("needle"))
	assert.False(t, sv.Contains("straw"))
}

func TestConcurrentReaders(t *testing.T) {
	words := testutil.Words(7, 64)
	sv, err := New(nil, 0)
	require.NoError(t, err)
	defer sv.Destroy()
	for _, w := range words {
		require.NoError(t, sv.Add(w))
	}

	// Concurrent readers are safe as long as no writer is active.
	var g errgroup.Group
	for r := 0; r < 8; r++ {
		g.Go(func() error {
			for i := 0; i < sv.Len(); i++ {
				if sv.Get(i) != words[i] {
					return fmt.Errorf("element %d mismatch", i)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func BenchmarkAdd(b *testing.B) {
	words := testutil.Words(1, 1024)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		sv, _ := New(nil, 0)
		for _, w := range words {
			_ = sv.Add(w)
		}
		sv.Destroy()
	}
}

func BenchmarkGet(b *testing.B) {
	sv, _ := New(nil, 0)
	defer sv.Destroy()
	for _, w := range testutil.Words(1, 1024) {
		_ = sv.Add(w)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = sv.Get(i % sv.Len())
	}
}
