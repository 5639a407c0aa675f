package mbuf_test

import (
	"log/slog"
	"testing"

	"github.com/github101/twemproxy/internal"
	"github.com/github101/twemproxy/mbuf"
)

var _ mbuf.Allocator = &testAllocator{}

// testAllocator is a countable stand-in for the real backing. It can be
// capped to make Alloc fail, which plain allocation through bufpool never
// does.
type testAllocator struct {
	limit  int // max live regions, 0 means unlimited
	allocs int
	frees  int
	live   int
}

func (a *testAllocator) Alloc(size int) ([]byte, error) {
	if a.limit > 0 && a.live >= a.limit {
		return nil, mbuf.ErrNoMem
	}
	a.allocs++
	a.live++
	return make([]byte, size), nil
}

func (a *testAllocator) Free(p []byte) {
	a.frees++
	a.live--
}

// testLogger turns on per-buffer debug lines when the debug env var is set,
// so a failing run can be replayed verbosely.
func testLogger() *slog.Logger {
	if !internal.DebugFromEnvVar() {
		return nil
	}
	return internal.NewLogger(slog.LevelDebug)
}

func newTestPool(t *testing.T, cfg mbuf.Config) *mbuf.Pool {
	t.Helper()
	if cfg.Log == nil {
		cfg.Log = testLogger()
	}
	pool, err := mbuf.NewPool(cfg)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	return pool
}

func mustGet(t *testing.T, pool *mbuf.Pool) *mbuf.Buffer {
	t.Helper()
	buf, err := pool.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	return buf
}

func recoverPanic(t *testing.T, fn func()) any {
	t.Helper()
	var val any
	func() {
		defer func() { val = recover() }()
		fn()
	}()
	if val == nil {
		t.Fatal("expected a panic")
	}
	return val
}
