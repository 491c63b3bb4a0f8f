package multiblock

// allocator hands out consecutive output node indices up to a capacity fixed before generation starts
type allocator struct {
	next     int
	capacity int
}

func newAllocator(capacity int) *allocator {
	return &allocator{capacity: capacity}
}

func (a *allocator) allocate() (idx int, err error) {
	if a.next >= a.capacity {
		return -1, newError(PreconditionError, "mesh", -1, "node capacity %d exhausted", a.capacity)
	}
	idx = a.next
	a.next++
	return
}

func (a *allocator) remaining() int { return a.capacity - a.next }
