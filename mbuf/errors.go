package mbuf

import (
	"errors"
	"fmt"
)

// ErrNoMem is the only error this package returns: the backing allocator
// could not produce another region. Callers shed the connection they were
// filling and carry on. Every other condition below is a bookkeeping bug in
// the caller or a corrupted buffer, is not recoverable, and is delivered by
// panic instead.
var (
	ErrNoMem = errors.New("backing allocator exhausted")

	ErrStillLinked   = errors.New("buffer released while still on a queue")
	ErrDoubleRelease = errors.New("buffer released twice")
	ErrNotQueued     = errors.New("buffer is not on this queue")
	ErrEmptyQueue    = errors.New("queue has no tail to split")
)

// CapacityError reports an append past the free room. MustWrite panics with
// it, Write returns it.
type CapacityError struct {
	N    int // bytes the caller tried to append
	Room int // free room at the time
}

func (e CapacityError) Error() string {
	return fmt.Sprintf("append of %d bytes overruns %d bytes of room", e.N, e.Room)
}

// CorruptionError is the panic value for a guard word that no longer holds
// the sentinel: something wrote over the buffer's bookkeeping.
type CorruptionError struct {
	Guard uint32
}

func (e CorruptionError) Error() string {
	return fmt.Sprintf("buffer guard is 0x%08x, want 0x%08x", e.Guard, guardSentinel)
}

// CutRangeError is the panic value for a split offset outside the staged
// region of the tail buffer.
type CutRangeError struct {
	Cut  int
	Pos  int
	Last int
}

func (e CutRangeError) Error() string {
	return fmt.Sprintf("cut %d outside staged region [%d, %d]", e.Cut, e.Pos, e.Last)
}

// UnknownLiteralError is the panic value for a literal code outside the
// table. The table is closed; an unknown code can only come from a
// corrupted call site.
type UnknownLiteralError struct {
	Literal Literal
}

func (e UnknownLiteralError) Error() string {
	return fmt.Sprintf("unknown literal code %d", int(e.Literal))
}

// LeakError is the panic value for a pool closed while buffers are still
// checked out.
type LeakError struct {
	InUse int
}

func (e LeakError) Error() string {
	return fmt.Sprintf("pool closed with %d buffers still checked out", e.InUse)
}
