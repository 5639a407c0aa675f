package mbuf

import "github.com/asciimoth/bufpool"

// Allocator supplies the raw regions chunks are carved from. A pool calls
// Alloc once per chunk it grows by and hands every region back through Free
// on Close, so implementations only ever see coarse chunk-sized traffic.
type Allocator interface {
	// Alloc returns a region of exactly size bytes, or an error wrapping
	// ErrNoMem once the backing store is exhausted.
	Alloc(size int) ([]byte, error)
	// Free takes back a region obtained from Alloc.
	Free(p []byte)
}

// BufpoolAllocator adapts a bufpool.Pool to the Allocator interface. A nil
// pool is fine and falls back to plain allocation, same as everywhere else
// bufpool is used. Plain allocation does not fail, so this allocator never
// reports ErrNoMem.
func BufpoolAllocator(pool bufpool.Pool) Allocator {
	return bufpoolAllocator{pool: pool}
}

type bufpoolAllocator struct {
	pool bufpool.Pool
}

func (a bufpoolAllocator) Alloc(size int) ([]byte, error) {
	return bufpool.GetBuffer(a.pool, size), nil
}

func (a bufpoolAllocator) Free(p []byte) {
	bufpool.PutBuffer(a.pool, p)
}
