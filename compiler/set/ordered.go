package set

import (
	"nikand.dev/go/heap"
	"tlog.app/go/loc"
	"tlog.app/go/tlog"
)

type (
	// Ordered is a queue without duplicates.
	// It pops keys in ascending order.
	Ordered[K Key] struct {
		h  heap.Heap[K]
		in Bits[K]
		n  int
	}
)

func NewOrdered[K Key](n int) *Ordered[K] {
	return &Ordered[K]{
		h:  heap.Heap[K]{Less: orderedLess[K]},
		in: MakeBits[K](n),
	}
}

// Push adds k unless it's already queued.
func (q *Ordered[K]) Push(k K) bool {
	if q.Has(k) {
		return false
	}

	tlog.V("worklist_push").Printw("push", "key", k, "len", q.n, "from", loc.Caller(1))

	q.in.Set(k)
	q.n++
	q.h.Push(k)

	return true
}

// Remove drops k from the queue if it's there.
// Its heap slot is left behind and skipped by Pop.
func (q *Ordered[K]) Remove(k K) {
	if !q.Has(k) {
		return
	}

	q.in.Clear(k)
	q.n--
}

func (q *Ordered[K]) Pop() (k K, ok bool) {
	for q.h.Len() != 0 {
		k = q.h.Pop()

		if !q.in.IsSet(k) {
			continue
		}

		q.in.Clear(k)
		q.n--

		return k, true
	}

	return k, false
}

func (q *Ordered[K]) Has(k K) bool {
	return q.in.IsSet(k)
}

func (q *Ordered[K]) Len() int {
	return q.n
}

func orderedLess[K Key](d []K, i, j int) bool {
	return d[i] < d[j]
}
