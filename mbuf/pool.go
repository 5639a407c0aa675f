package mbuf

import (
	"context"
	"fmt"
	"log/slog"
)

const (
	// DefaultChunkSize is the stock chunk size S. 16K fits most protocol
	// sentences in one buffer while keeping the footprint of an idle
	// connection small.
	DefaultChunkSize = 16384

	// DefaultHeaderSize is the stock bookkeeping share H of a chunk.
	// Buffers carry S - H bytes of payload, so the configured chunk size
	// reflects the true memory cost of a buffer rather than just its
	// payload.
	DefaultHeaderSize = 48

	// MinChunkSize and MaxChunkSize bound the configurable chunk size.
	MinChunkSize = 512
	MaxChunkSize = 16 * 1024 * 1024
)

// Config fixes a pool's geometry and plumbing. The zero value is a working
// default: 16K chunks, plain allocation, no logging. Geometry is set once
// at startup and never changes over a pool's life.
type Config struct {
	// ChunkSize is the total chunk size S in bytes, bookkeeping included.
	// Zero means DefaultChunkSize.
	ChunkSize int
	// HeaderSize is the bookkeeping share H of each chunk. Zero means
	// DefaultHeaderSize.
	HeaderSize int
	// Backing supplies raw regions. Nil means BufpoolAllocator(nil).
	Backing Allocator
	// Log receives per-buffer debug lines. Nil discards them.
	Log *slog.Logger
}

func (c Config) chunkSize() int {
	if c.ChunkSize == 0 {
		return DefaultChunkSize
	}
	return c.ChunkSize
}

func (c Config) headerSize() int {
	if c.HeaderSize == 0 {
		return DefaultHeaderSize
	}
	return c.HeaderSize
}

func (c Config) backing() Allocator {
	if c.Backing == nil {
		return BufpoolAllocator(nil)
	}
	return c.Backing
}

func (c Config) log() *slog.Logger {
	if c.Log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Log
}

// VerifyConfig checks pool geometry the way the proxy does at startup:
// chunk size within [MinChunkSize, MaxChunkSize], header smaller than the
// chunk, and a data region with room for the longest protocol literal.
func VerifyConfig(cfg Config) error {
	s := cfg.chunkSize()
	h := cfg.headerSize()
	if s < MinChunkSize || s > MaxChunkSize {
		return fmt.Errorf("chunk size %d out of range [%d, %d]", s, MinChunkSize, MaxChunkSize)
	}
	if h < 0 || h >= s {
		return fmt.Errorf("header size %d does not fit chunk size %d", h, s)
	}
	if data := s - h; data <= MaxLiteralLen() {
		return fmt.Errorf("data region of %d bytes cannot hold a %d byte protocol literal", data, MaxLiteralLen())
	}
	return nil
}

// Pool hands out fixed-geometry buffers and recycles them through a free
// list. Released buffers stay parked on the list until Close, so a pool
// that once served peak load keeps that many chunks from then on; the list
// is bounded by peak demand, not by a cap.
type Pool struct {
	dataSize   int
	headerSize int

	backing Allocator
	log     *slog.Logger

	free  *Buffer // free list head, LIFO, linked through Buffer.next
	nfree int
	total int // chunks grown from the backing allocator
}

// NewPool verifies the geometry and returns an empty pool. Chunks are
// allocated on demand; nothing is reserved up front.
func NewPool(cfg Config) (*Pool, error) {
	if err := VerifyConfig(cfg); err != nil {
		return nil, err
	}
	p := &Pool{
		dataSize:   cfg.chunkSize() - cfg.headerSize(),
		headerSize: cfg.headerSize(),
		backing:    cfg.backing(),
		log:        cfg.log(),
	}
	p.log.Debug("init pool", "chunk", p.ChunkSize(), "header", p.headerSize, "data", p.dataSize)
	return p, nil
}

// ChunkSize returns the total chunk size S.
func (p *Pool) ChunkSize() int { return p.dataSize + p.headerSize }

// DataSize returns the payload capacity of every buffer, S - H.
func (p *Pool) DataSize() int { return p.dataSize }

// Get returns an empty buffer of the pool's data capacity: recycled off the
// free list when one is parked there, freshly grown otherwise. Cursors are
// reset either way; leftover bytes from the previous owner are not erased.
// The only failure is the backing allocator running dry.
func (p *Pool) Get() (*Buffer, error) {
	b := p.free
	if b != nil {
		p.free = b.next
		p.nfree--
		b.next = nil
		b.check()
	} else {
		region, err := p.backing.Alloc(p.dataSize)
		if err != nil {
			return nil, fmt.Errorf("grow pool: %w", err)
		}
		b = &Buffer{guard: guardSentinel, data: region}
		p.total++
	}
	b.pos = 0
	b.last = 0
	if p.log.Enabled(context.Background(), slog.LevelDebug) {
		p.log.Debug("get mbuf", "buf", bufPtr(b), "free", p.nfree)
	}
	return b, nil
}

// Put parks b back on the free list. b must be off every queue with its
// guard intact; a linked, corrupted, or already parked buffer means
// connection bookkeeping broke down, and letting it back into circulation
// would hand the same bytes to two owners, so Put panics.
func (p *Pool) Put(b *Buffer) {
	if b.next != nil {
		panic(ErrStillLinked)
	}
	if p.free == b {
		panic(ErrDoubleRelease)
	}
	b.check()
	if p.log.Enabled(context.Background(), slog.LevelDebug) {
		p.log.Debug("put mbuf", "buf", bufPtr(b), "len", b.Len())
	}
	b.next = p.free
	p.free = b
	p.nfree++
}

// Close returns every region to the backing allocator and resets the pool.
// Every chunk the pool ever grew by must be parked on the free list;
// buffers still checked out mean a connection leaked them, which panics
// before anything is freed. Drained buffers are poisoned so a stale
// reference trips the guard check.
func (p *Pool) Close() {
	if inuse := p.total - p.nfree; inuse != 0 {
		panic(LeakError{InUse: inuse})
	}
	drained := 0
	for b := p.free; b != nil; {
		next := b.next
		b.check()
		b.guard = 0
		b.next = nil
		p.backing.Free(b.data)
		b.data = nil
		drained++
		b = next
	}
	p.free = nil
	p.nfree -= drained
	if p.nfree != 0 {
		panic(LeakError{InUse: p.nfree})
	}
	p.total = 0
	p.log.Debug("close pool", "drained", drained)
}

// PoolStats is a point-in-time census of a pool's chunks.
type PoolStats struct {
	Free  int // buffers parked on the free list
	InUse int // buffers checked out by connections
	Total int // chunks grown from the backing allocator
}

// Stats counts the pool's chunks. The proxy surfaces these as gauges.
func (p *Pool) Stats() PoolStats {
	return PoolStats{
		Free:  p.nfree,
		InUse: p.total - p.nfree,
		Total: p.total,
	}
}

func bufPtr(b *Buffer) string {
	return fmt.Sprintf("%p", b)
}
