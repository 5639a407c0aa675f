package mbuf

import (
	"context"
	"log/slog"
)

// Split divides the tail buffer of q at cut, an offset into its data region
// with pos <= cut <= last. Bytes from cut onward move to a fresh buffer
// behind the head literal; the tail buffer is truncated at cut and finished
// with the tail literal. The new buffer is returned unlinked: the caller
// decides which queue it joins, and refragmentation usually sends it to
// another connection's queue.
//
// A split grows the byte count by the two literals. That is the point: the
// literals turn one protocol unit into two independently valid ones, a
// pipelined multi-get carved up across server connections being the
// canonical case.
//
// The only failure is growing the pool (wrapped ErrNoMem), and the queue is
// untouched when that happens. An empty queue or a cut outside the staged
// region is caller bookkeeping gone wrong and panics. A literal the
// geometry cannot absorb panics once the append overruns, like any other
// overrun.
func (p *Pool) Split(q *Queue, cut int, head, tail Literal) (*Buffer, error) {
	buf := q.Tail()
	if buf == nil {
		panic(ErrEmptyQueue)
	}
	if cut < buf.pos || cut > buf.last {
		panic(CutRangeError{Cut: cut, Pos: buf.pos, Last: buf.last})
	}

	nbuf, err := p.Get()
	if err != nil {
		return nil, err
	}

	nbuf.MustWrite(head.Bytes())
	moved := buf.last - cut
	nbuf.MustWrite(buf.data[cut:buf.last])
	buf.last = cut
	buf.MustWrite(tail.Bytes())

	if p.log.Enabled(context.Background(), slog.LevelDebug) {
		p.log.Debug("split mbuf",
			"buf", bufPtr(buf), "len", buf.Len(),
			"nbuf", bufPtr(nbuf), "nlen", nbuf.Len(),
			"moved", moved)
	}
	return nbuf, nil
}
