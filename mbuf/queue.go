package mbuf

// Queue is an ordered chain of buffers belonging to one connection, linked
// in place through each buffer's queue link. A buffer is on at most one
// queue at a time; the pool refuses to take back a buffer that is still
// linked. The zero value is an empty queue.
type Queue struct {
	head *Buffer
	tail *Buffer
}

// Empty reports whether the queue holds no buffers.
func (q *Queue) Empty() bool { return q.head == nil }

// Head returns the oldest buffer, or nil.
func (q *Queue) Head() *Buffer { return q.head }

// Tail returns the newest buffer, or nil. The tail is the only buffer new
// bytes land in and the only one a split may divide.
func (q *Queue) Tail() *Buffer { return q.tail }

// Len walks the chain and counts. Only stats and tests care; the hot path
// never needs the length.
func (q *Queue) Len() int {
	n := 0
	for b := q.head; b != nil; b = b.next {
		n++
	}
	return n
}

// Insert appends buf at the tail.
func (q *Queue) Insert(buf *Buffer) {
	buf.next = nil
	if q.tail == nil {
		q.head = buf
	} else {
		q.tail.next = buf
	}
	q.tail = buf
}

// Remove unlinks buf and clears its link so it can be released or relinked.
// Removing the head is O(1); interior removal walks the chain from the
// front. A buffer that is not on the queue means the caller's bookkeeping
// has diverged, which is fatal.
func (q *Queue) Remove(buf *Buffer) {
	if q.head == buf {
		q.head = buf.next
		if q.tail == buf {
			q.tail = nil
		}
		buf.next = nil
		return
	}
	for b := q.head; b != nil; b = b.next {
		if b.next == buf {
			b.next = buf.next
			if q.tail == buf {
				q.tail = b
			}
			buf.next = nil
			return
		}
	}
	panic(ErrNotQueued)
}
