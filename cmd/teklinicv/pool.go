package main

import (
	"runtime"
	"sync"

	teklinicv "github.com/alnah/go-teklinicv"
)

// RendererPool hands out teklinicv.Renderer instances to batch workers.
// Each renderer keeps its own template cache, so workers never wait on one
// another's template parsing. Renderers are created lazily on first
// acquire.
type RendererPool struct {
	size    int
	opts    []teklinicv.Option
	sem     chan CVRenderer
	mu      sync.Mutex
	created int
	closed  bool
}

// NewRendererPool creates a pool with capacity for n renderers built with
// opts.
func NewRendererPool(n int, opts ...teklinicv.Option) *RendererPool {
	if n < 1 {
		n = 1
	}
	return &RendererPool{
		size: n,
		opts: opts,
		sem:  make(chan CVRenderer, n),
	}
}

// Compile-time check that RendererPool implements Pool.
var _ Pool = (*RendererPool)(nil)

// Acquire gets a renderer from the pool, creating one if needed.
// Blocks if all renderers are in use.
func (p *RendererPool) Acquire() CVRenderer {
	select {
	case r := <-p.sem:
		return r
	default:
	}

	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()
		return teklinicv.NewRenderer(p.opts...)
	}
	p.mu.Unlock()

	return <-p.sem
}

// Release returns a renderer to the pool.
func (p *RendererPool) Release(r CVRenderer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.closed {
		p.sem <- r
	}
}

// Close stops the pool from accepting released renderers.
func (p *RendererPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.closed {
		p.closed = true
		close(p.sem)
	}
}

// Size returns the pool capacity.
func (p *RendererPool) Size() int {
	return p.size
}

// resolvePoolSize determines the worker count.
// Priority: explicit flag > GOMAXPROCS-based calculation.
func resolvePoolSize(flagWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers.
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	if n > 8 {
		return 8
	}
	return n
}
