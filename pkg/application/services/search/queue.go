package search

import "github.com/vsinha/botplan/pkg/domain/entities"

// stateQueue is a FIFO of search states backed by a slice.
// The consumed prefix is reclaimed once it dominates the buffer.
type stateQueue struct {
	items []entities.SearchState
	head  int
}

func newStateQueue(capacity int) *stateQueue {
	return &stateQueue{items: make([]entities.SearchState, 0, capacity)}
}

func (q *stateQueue) Push(s entities.SearchState) {
	q.items = append(q.items, s)
}

func (q *stateQueue) Pop() (entities.SearchState, bool) {
	if q.head >= len(q.items) {
		return entities.SearchState{}, false
	}
	s := q.items[q.head]
	q.head++

	if q.head > 1024 && q.head*2 >= len(q.items) {
		n := copy(q.items, q.items[q.head:])
		q.items = q.items[:n]
		q.head = 0
	}
	return s, true
}

func (q *stateQueue) Len() int {
	return len(q.items) - q.head
}
