package orderbookv1

// Queue is a priority queue of same-side orders implementing heap.Interface.
// Order.Outranks encodes the priority, so the same type serves as a max-heap
// for buys and a min-heap for sells.
type Queue []*Order

func (q Queue) Len() int { return len(q) }

func (q Queue) Less(i, j int) bool { return q[i].Outranks(q[j]) }

func (q Queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

// Push appends an order; use heap.Push, never call directly.
func (q *Queue) Push(x any) {
	*q = append(*q, x.(*Order))
}

// Pop removes the last order; use heap.Pop, never call directly.
func (q *Queue) Pop() any {
	old := *q
	n := len(old)
	order := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return order
}

// Peek returns the highest-priority order without removing it, or nil when
// the queue is empty.
func (q Queue) Peek() *Order {
	if len(q) == 0 {
		return nil
	}
	return q[0]
}
