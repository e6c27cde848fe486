package flow

// IDAllocator issues node ids in strictly increasing order.
// The zero value starts at 1.
type IDAllocator struct {
	next NodeID
}

// NewIDAllocator returns an allocator whose first id is first.
func NewIDAllocator(first NodeID) *IDAllocator {
	return &IDAllocator{next: first}
}

// Next returns a fresh id and advances the counter.
func (a *IDAllocator) Next() NodeID {
	if a.next == 0 {
		a.next = 1
	}
	id := a.next
	a.next++
	return id
}

// Peek returns the id the next call to Next will issue.
func (a *IDAllocator) Peek() NodeID {
	if a.next == 0 {
		return 1
	}
	return a.next
}
