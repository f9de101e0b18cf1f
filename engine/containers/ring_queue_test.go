package containers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingQueueFIFO(t *testing.T) {
	rq := NewRingQueue[int](3)
	assert.True(t, rq.IsEmpty())

	_, err := rq.Dequeue()
	assert.ErrorIs(t, err, ErrQueueEmpty)

	for i := 1; i <= 3; i++ {
		require.NoError(t, rq.Enqueue(i))
	}
	assert.True(t, rq.IsFull())
	assert.ErrorIs(t, rq.Enqueue(4), ErrQueueFull)

	v, err := rq.Peek()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, _ = rq.Dequeue()
	assert.Equal(t, 1, v)
	require.NoError(t, rq.Enqueue(4))

	var got []int
	for !rq.IsEmpty() {
		v, _ := rq.Dequeue()
		got = append(got, v)
	}
	assert.Equal(t, []int{2, 3, 4}, got)
}

func TestRingQueuePushEvictsOldest(t *testing.T) {
	rq := NewRingQueue[string](2)

	_, ok := rq.Push("a")
	assert.False(t, ok)
	rq.Push("b")

	evicted, ok := rq.Push("c")
	assert.True(t, ok)
	assert.Equal(t, "a", evicted)
	assert.Equal(t, 2, rq.Len())

	v, _ := rq.Dequeue()
	assert.Equal(t, "b", v)
}
