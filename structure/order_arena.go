package structure

import "errors"

// OrderArena is a slot-indexed arena with stable int32 handles.
// Slots are linked into per-owner FIFO sequences through prev/next handles,
// so any slot can be unlinked in O(1) without scanning its list.
//
// Design:
// - Freed slots are chained through Next into a free list and reused
// - The arena grows by DefaultGrowthFactor when the free list is exhausted
// - A handle stays valid from Alloc until Free, regardless of growth

var (
	ErrInvalidHandle = errors.New("arena: invalid handle")
)

type arenaSlot[T any] struct {
	Value T
	Prev  int32
	Next  int32
	inUse bool
}

// OrderArena stores values of type T in reusable slots.
type OrderArena[T any] struct {
	slots    []arenaSlot[T]
	freeHead int32
	count    int32
	onGrow   func(oldCap, newCap int32)
}

// NewOrderArena creates an arena with the given initial capacity.
func NewOrderArena[T any](capacity int32) *OrderArena[T] {
	if capacity < 1 {
		capacity = 1
	}

	a := &OrderArena[T]{
		slots:    make([]arenaSlot[T], capacity),
		freeHead: 0,
	}

	for i := int32(0); i < capacity-1; i++ {
		a.slots[i].Next = i + 1
		a.slots[i].Prev = NullIndex
	}
	a.slots[capacity-1].Next = NullIndex
	a.slots[capacity-1].Prev = NullIndex

	return a
}

// OnGrow registers a callback invoked whenever the arena expands.
func (a *OrderArena[T]) OnGrow(fn func(oldCap, newCap int32)) {
	a.onGrow = fn
}

func (a *OrderArena[T]) grow() {
	oldCap := int32(len(a.slots))
	newCap := oldCap * DefaultGrowthFactor

	if a.onGrow != nil {
		a.onGrow(oldCap, newCap)
	}

	newSlots := make([]arenaSlot[T], newCap)
	copy(newSlots, a.slots)

	for i := oldCap; i < newCap-1; i++ {
		newSlots[i].Next = i + 1
		newSlots[i].Prev = NullIndex
	}
	newSlots[newCap-1].Next = a.freeHead
	newSlots[newCap-1].Prev = NullIndex
	a.freeHead = oldCap

	a.slots = newSlots
}

// Alloc stores v in a free slot and returns its handle.
func (a *OrderArena[T]) Alloc(v T) int32 {
	if a.freeHead == NullIndex {
		a.grow()
	}

	h := a.freeHead
	slot := &a.slots[h]
	a.freeHead = slot.Next

	slot.Value = v
	slot.Prev = NullIndex
	slot.Next = NullIndex
	slot.inUse = true
	a.count++

	return h
}

// Free releases the slot. The caller must unlink it from any list first.
func (a *OrderArena[T]) Free(h int32) {
	if !a.valid(h) {
		return
	}

	var zero T
	slot := &a.slots[h]
	slot.Value = zero
	slot.inUse = false
	slot.Prev = NullIndex
	slot.Next = a.freeHead
	a.freeHead = h
	a.count--
}

// Get returns a pointer to the value stored at h.
// The pointer is invalidated by the next Alloc that grows the arena.
func (a *OrderArena[T]) Get(h int32) (*T, error) {
	if !a.valid(h) {
		return nil, ErrInvalidHandle
	}
	return &a.slots[h].Value, nil
}

// MustGet is like Get but panics on an invalid handle.
func (a *OrderArena[T]) MustGet(h int32) *T {
	v, err := a.Get(h)
	if err != nil {
		panic(err)
	}
	return v
}

// Next returns the handle following h in its list, or NullIndex.
func (a *OrderArena[T]) Next(h int32) int32 {
	if !a.valid(h) {
		return NullIndex
	}
	return a.slots[h].Next
}

// Count returns the number of allocated slots.
func (a *OrderArena[T]) Count() int32 {
	return a.count
}

// Capacity returns the current number of slots.
func (a *OrderArena[T]) Capacity() int32 {
	return int32(len(a.slots))
}

func (a *OrderArena[T]) valid(h int32) bool {
	return h >= 0 && int(h) < len(a.slots) && a.slots[h].inUse
}

// HandleList is a FIFO of arena handles linked through the arena slots.
// The zero value is not usable; create one with NewHandleList.
type HandleList struct {
	Head int32
	Tail int32
	Len  int64
}

// NewHandleList returns an empty list.
func NewHandleList() HandleList {
	return HandleList{Head: NullIndex, Tail: NullIndex}
}

// Empty reports whether the list holds no handles.
func (l *HandleList) Empty() bool {
	return l.Head == NullIndex
}

// PushBack appends h to the tail of l.
func (a *OrderArena[T]) PushBack(l *HandleList, h int32) {
	slot := &a.slots[h]
	slot.Prev = l.Tail
	slot.Next = NullIndex

	if l.Tail != NullIndex {
		a.slots[l.Tail].Next = h
	} else {
		l.Head = h
	}
	l.Tail = h
	l.Len++
}

// Unlink removes h from l in O(1). The slot stays allocated.
func (a *OrderArena[T]) Unlink(l *HandleList, h int32) {
	slot := &a.slots[h]

	if slot.Prev != NullIndex {
		a.slots[slot.Prev].Next = slot.Next
	} else {
		l.Head = slot.Next
	}

	if slot.Next != NullIndex {
		a.slots[slot.Next].Prev = slot.Prev
	} else {
		l.Tail = slot.Prev
	}

	slot.Prev = NullIndex
	slot.Next = NullIndex
	l.Len--
}
