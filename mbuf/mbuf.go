// Package mbuf implements the chunked buffer layer of the proxy: a pool of
// fixed-size buffers, per-connection buffer queues, and the split operation
// the protocol layer uses to refragment pipelined requests and responses.
//
// All buffers of a pool share one geometry, decided at startup: a chunk of S
// bytes accounts for H bytes of bookkeeping and carries L = S - H bytes of
// payload. Released buffers are parked on the pool's free list instead of
// going back to the allocator, so a steady-state proxy stops allocating once
// it has seen its peak load.
//
// Nothing in this package locks. A pool and every buffer it hands out belong
// to a single event loop; run one pool per worker.
package mbuf

import "io"

// guardSentinel is the value every live buffer carries in its guard word.
const guardSentinel uint32 = 0xdeadbeef

// Buffer is one fixed-capacity chunk. The region [0, pos) has already been
// consumed, [pos, last) is staged and waiting for the peer, and [last, cap)
// is free room. The guard word is verified every time the buffer crosses a
// pool boundary, so a stray write into the bookkeeping is caught at the next
// recycle instead of silently corrupting connection state.
//
// Buffers hold no reference to their pool and are never resized. Contents
// are not erased on release; only the cursors are reset, on the next Get.
type Buffer struct {
	guard uint32
	next  *Buffer // successor on the free list or on a Queue
	data  []byte
	pos   int // read cursor, first staged byte
	last  int // write cursor, one past the last staged byte
}

func (b *Buffer) check() {
	if b.guard != guardSentinel {
		panic(CorruptionError{Guard: b.guard})
	}
}

// Len returns the number of staged bytes, last - pos.
func (b *Buffer) Len() int { return b.last - b.pos }

// Available returns the free room past the write cursor.
func (b *Buffer) Available() int { return len(b.data) - b.last }

// Cap returns the size of the data region. It is the same for every buffer
// of a pool and never changes.
func (b *Buffer) Cap() int { return len(b.data) }

// Empty reports whether there are no staged bytes.
func (b *Buffer) Empty() bool { return b.pos == b.last }

// Full reports whether the write cursor has reached the end of the region.
func (b *Buffer) Full() bool { return b.last == len(b.data) }

// Bytes returns the staged region [pos, last) as a view into the buffer's
// storage. Appends extend the view in place; Read and Rewind shrink it. The
// caller must not hold on to it across a release.
func (b *Buffer) Bytes() []byte { return b.data[b.pos:b.last] }

// Rewind forgets all staged bytes, moving both cursors back to the start of
// the region. The bytes themselves are left in place.
func (b *Buffer) Rewind() {
	b.pos = 0
	b.last = 0
}

// Next returns the successor on the queue this buffer is linked to, or nil
// for the tail and for unlinked buffers. The send path walks a connection's
// queue with it.
func (b *Buffer) Next() *Buffer { return b.next }

// MustWrite appends p at the write cursor. The caller is expected to have
// checked Available; an append that does not fit is a bug in the caller's
// accounting and panics with a CapacityError rather than truncating
// protocol bytes. Appending nothing is a no-op.
func (b *Buffer) MustWrite(p []byte) {
	if len(p) == 0 {
		return
	}
	if len(p) > b.Available() {
		panic(CapacityError{N: len(p), Room: b.Available()})
	}
	b.last += copy(b.data[b.last:], p)
}

// Write is the checked variant of MustWrite and implements io.Writer. When p
// does not fit it writes nothing and returns a CapacityError, so a fill
// loop can move on to a fresh buffer. Short writes never happen.
func (b *Buffer) Write(p []byte) (int, error) {
	if len(p) > b.Available() {
		return 0, CapacityError{N: len(p), Room: b.Available()}
	}
	b.last += copy(b.data[b.last:], p)
	return len(p), nil
}

// Read drains staged bytes into p, advancing the read cursor. It returns
// io.EOF once nothing is staged.
func (b *Buffer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if b.Empty() {
		return 0, io.EOF
	}
	n := copy(p, b.data[b.pos:b.last])
	b.pos += n
	return n, nil
}

// ReadFrom fills the free room from r until the buffer is full or r is
// drained. The buffer never grows; on a full buffer it reads nothing. An
// io.EOF from r is reported as success, like every ReaderFrom.
func (b *Buffer) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	for !b.Full() {
		n, err := r.Read(b.data[b.last:])
		if n < 0 {
			panic("mbuf.Buffer.ReadFrom: reader returned negative count")
		}
		b.last += n
		total += int64(n)
		if err == io.EOF {
			break
		}
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteTo flushes the staged region into w, advancing the read cursor past
// whatever w accepted.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	if b.Empty() {
		return 0, nil
	}
	n, err := w.Write(b.data[b.pos:b.last])
	if n < 0 || n > b.Len() {
		panic("mbuf.Buffer.WriteTo: invalid Write count")
	}
	b.pos += n
	if err == nil && !b.Empty() {
		err = io.ErrShortWrite
	}
	return int64(n), err
}
