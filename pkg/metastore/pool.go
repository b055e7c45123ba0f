// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package metastore

import (
	"context"

	"github.com/cockroachdb/errors"
)

// Factory constructs one new underlying metastore connection. BoundedPool
// calls it lazily, only while fewer than capacity clients exist.
type Factory func(ctx context.Context) (Client, error)

// BoundedPool is a fixed-capacity pool of metastore clients, built lazily
// up to capacity and then reused. It is a minimal, channel-based
// semaphore rather than a port of cockroach's quotapool package: the
// metastore client itself is an external collaborator, so the pool only
// needs to bound concurrency and guarantee release, not the richer
// fairness/cancellation semantics quotapool provides for request-level
// flow control elsewhere in that project.
type BoundedPool struct {
	factory Factory
	slots   chan struct{}
	clients chan Client
}

// NewBoundedPool returns a pool that lazily creates up to capacity
// clients via factory and reuses them across Get/Release cycles.
func NewBoundedPool(capacity int, factory Factory) *BoundedPool {
	p := &BoundedPool{
		factory: factory,
		slots:   make(chan struct{}, capacity),
		clients: make(chan Client, capacity),
	}
	for i := 0; i < capacity; i++ {
		p.slots <- struct{}{}
	}
	return p
}

// Get leases a client, blocking until one is available or ctx is done.
// The caller must call Release on the returned client exactly once.
func (p *BoundedPool) Get(ctx context.Context) (Client, error) {
	select {
	case c := <-p.clients:
		return &pooledClient{Client: c, pool: p}, nil
	default:
	}

	select {
	case <-p.slots:
		c, err := p.factory(ctx)
		if err != nil {
			p.slots <- struct{}{}
			return nil, errors.Wrap(err, "creating metastore client")
		}
		return &pooledClient{Client: c, pool: p}, nil
	case c := <-p.clients:
		return &pooledClient{Client: c, pool: p}, nil
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "acquiring metastore client")
	}
}

// pooledClient wraps a leased Client so Release returns it to the pool
// instead of (or in addition to) whatever cleanup the underlying
// implementation performs.
type pooledClient struct {
	Client
	pool *BoundedPool
}

// Release returns the client to the pool for reuse. Request Facade methods
// call this on every exit path after a successful Get, most of them in a
// defer right after the Get.
func (c *pooledClient) Release() {
	select {
	case c.pool.clients <- c.Client:
	default:
		// Pool already has enough idle clients buffered; drop this one
		// and give back its capacity slot.
		c.pool.slots <- struct{}{}
	}
}
