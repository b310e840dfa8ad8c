package sim

import "github.com/OCharnyshevich/voxelworld/pkg/world/voxel"

// WorkQueue is a FIFO of block positions that holds each position at most
// once. The backing ring buffer doubles when full.
type WorkQueue struct {
	buf     []voxel.BlockPos
	head    int
	size    int
	pending map[voxel.BlockPos]struct{}
}

// NewWorkQueue creates a queue with room for capacity entries before growing.
func NewWorkQueue(capacity int) *WorkQueue {
	return &WorkQueue{
		buf:     make([]voxel.BlockPos, max(capacity, 8)),
		pending: make(map[voxel.BlockPos]struct{}, capacity),
	}
}

// Push appends p unless it is already queued, and reports whether it did.
func (q *WorkQueue) Push(p voxel.BlockPos) bool {
	if _, ok := q.pending[p]; ok {
		return false
	}
	if q.size == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.size)%len(q.buf)] = p
	q.size++
	q.pending[p] = struct{}{}
	return true
}

// Pop removes the oldest position.
func (q *WorkQueue) Pop() (voxel.BlockPos, bool) {
	if q.size == 0 {
		return voxel.BlockPos{}, false
	}
	p := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	delete(q.pending, p)
	return p, true
}

// Len returns the number of queued positions.
func (q *WorkQueue) Len() int { return q.size }

// Contains reports whether p is queued.
func (q *WorkQueue) Contains(p voxel.BlockPos) bool {
	_, ok := q.pending[p]
	return ok
}

func (q *WorkQueue) grow() {
	next := make([]voxel.BlockPos, len(q.buf)*2)
	for i := 0; i < q.size; i++ {
		next[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.buf = next
	q.head = 0
}
