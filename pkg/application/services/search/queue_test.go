package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/botplan/pkg/domain/entities"
)

func TestStateQueue_FIFO(t *testing.T) {
	q := newStateQueue(4)

	_, ok := q.Pop()
	assert.False(t, ok, "empty queue should report no state")

	for i := 0; i < 3; i++ {
		q.Push(entities.SearchState{Elapsed: i})
	}
	assert.Equal(t, 3, q.Len())

	for i := 0; i < 3; i++ {
		s, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, i, s.Elapsed)
	}
	assert.Equal(t, 0, q.Len())
}

func TestStateQueue_CompactsKeepingOrder(t *testing.T) {
	q := newStateQueue(16)
	const total = 5000

	next := 0
	for i := 0; i < total; i++ {
		q.Push(entities.SearchState{Elapsed: i})
		// Drain at half the push rate so the consumed prefix keeps growing
		if i%2 == 1 {
			s, ok := q.Pop()
			require.True(t, ok)
			require.Equal(t, next, s.Elapsed)
			next++
		}
	}

	for q.Len() > 0 {
		s, _ := q.Pop()
		require.Equal(t, next, s.Elapsed)
		next++
	}
	assert.Equal(t, total, next)
	assert.LessOrEqual(t, q.head, 1024+1)
}
