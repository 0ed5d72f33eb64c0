package app

import "cw/internal/count"

type ordered struct {
	index  int
	counts count.Counts
	err    error
}

// orderedHeap is a container/heap min-heap on input index.
type orderedHeap []ordered

func (h orderedHeap) Len() int           { return len(h) }
func (h orderedHeap) Less(i, j int) bool { return h[i].index < h[j].index }
func (h orderedHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *orderedHeap) Push(x any) { *h = append(*h, x.(ordered)) }

func (h *orderedHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = ordered{}
	*h = old[:n-1]
	return it
}

func (h orderedHeap) ready(next int) bool {
	return len(h) > 0 && h[0].index == next
}
