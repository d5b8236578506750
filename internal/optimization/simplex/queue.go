package simplex

import "container/heap"

// queue orders simplices by score, highest first. Ties are broken by
// insertion order, so equally scored regions are revisited in the order they
// were produced and no region can be starved behind an equal peer.
type queue struct {
	items simplexHeap
	seq   uint64
}

type queueItem struct {
	simplex *Simplex
	score   float64
	seq     uint64
}

type simplexHeap []queueItem

func (h simplexHeap) Len() int { return len(h) }

func (h simplexHeap) Less(i, j int) bool {
	if h[i].score != h[j].score {
		return h[i].score > h[j].score
	}
	return h[i].seq < h[j].seq
}

func (h simplexHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *simplexHeap) Push(x interface{}) { *h = append(*h, x.(queueItem)) }

func (h *simplexHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func newQueue() *queue {
	return &queue{}
}

// push inserts the simplex with the given priority score.
func (q *queue) push(s *Simplex, score float64) {
	heap.Push(&q.items, queueItem{simplex: s, score: score, seq: q.seq})
	q.seq++
}

// pop removes and returns the highest-scored simplex.
// ok is false when the queue is empty.
func (q *queue) pop() (*Simplex, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	item := heap.Pop(&q.items).(queueItem)
	return item.simplex, true
}

func (q *queue) len() int {
	return len(q.items)
}
