// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package policyreload runs a periodic authorization-policy reload task:
// every R seconds, staggered by a per-process random jitter, it
// reconstructs a fresh authorization.Checker from the policy file and
// atomically installs it, without ever blocking a reader mid-lookup.
package policyreload

import (
	"context"
	"encoding/binary"
	"math/rand"
	"time"

	"github.com/bravechou2009/impala/pkg/authorization"
	"github.com/bravechou2009/impala/pkg/util/log"
	"github.com/bravechou2009/impala/pkg/util/syncutil"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
)

// DefaultInterval is the reload period absent an override, matching the
// source's AUTHORIZATION_POLICY_RELOAD_INTERVAL_SECS.
const DefaultInterval = 5 * time.Minute

// DefaultJitter is the upper bound of the uniform random stagger added to
// DefaultInterval to decorrelate reload ticks across an Impalad fleet.
const DefaultJitter = 60 * time.Second

// Reloader owns the auth-checker lock: a reader/writer lock distinct from
// the Catalog lock, guarding only the currently installed
// *authorization.Checker. Swaps take the writer half only for the
// duration of the pointer replacement; Checker() takes the reader half
// only while reading the installed pointer. A Checker is immutable, so
// callers then run CheckAccess/HasAccess on that snapshot without
// holding the lock.
type Reloader struct {
	mu struct {
		syncutil.RWMutex
		checker *authorization.Checker
	}

	config Config
	cron   *cron.Cron
	fail   prometheus.Counter
}

// Config controls the reload cadence and target file.
type Config struct {
	authorization.Config
	Interval time.Duration
	Jitter   time.Duration
}

// New constructs a Reloader with an initial Checker already installed,
// built synchronously from config rather than lazily on first use. reg
// may be nil to use the default Prometheus registerer.
func New(config Config, reg prometheus.Registerer) (*Reloader, error) {
	if config.Interval == 0 {
		config.Interval = DefaultInterval
	}
	if config.Jitter == 0 {
		config.Jitter = DefaultJitter
	}
	r := &Reloader{config: config}
	checker, err := authorization.NewChecker(config.Config)
	if err != nil {
		return nil, err
	}
	r.mu.checker = checker

	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r.fail = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_policy_reload_failures_total",
		Help: "Authorization policy reload attempts that failed and kept the previous checker.",
	})
	if err := reg.Register(r.fail); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			r.fail = are.ExistingCollector.(prometheus.Counter)
		}
	}
	return r, nil
}

// Checker returns the currently installed Checker under the reader half
// of the auth-checker lock.
func (r *Reloader) Checker() *authorization.Checker {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mu.checker
}

// Start launches the periodic reload task, staggered by a uniform random
// jitter in [0, Jitter) seeded from a fresh UUID per process (replacing
// java.util.UUID.randomUUID().hashCode() as the PRNG seed in the original).
// Start is a no-op if authorization is disabled: there is nothing to
// reload. Stop must be called to release the background goroutine.
func (r *Reloader) Start(ctx context.Context) {
	if !r.config.Enabled {
		return
	}
	id := uuid.New()
	seed := int64(binary.BigEndian.Uint64(id[:8]))
	jitter := time.Duration(rand.New(rand.NewSource(seed)).Int63n(int64(r.config.Jitter)))
	delay := r.config.Interval + jitter

	r.cron = cron.New()
	r.cron.Schedule(cron.Every(delay), cron.FuncJob(func() { r.reload(ctx) }))
	r.cron.Start()
}

// Stop halts the periodic reload task.
func (r *Reloader) Stop() {
	if r.cron != nil {
		r.cron.Stop()
	}
}

// reload reconstructs a Checker from the policy file and swaps it in. If
// construction fails, the previous Checker remains installed, the failure
// is logged and counted, and the next tick retries.
func (r *Reloader) reload(ctx context.Context) {
	log.Infof(ctx, "reloading authorization policy file from: %s", r.config.PolicyFile)
	checker, err := authorization.NewChecker(r.config.Config)
	if err != nil {
		log.Warningf(ctx, "authorization policy reload failed, keeping previous checker: %v", err)
		r.fail.Inc()
		return
	}
	r.mu.Lock()
	r.mu.checker = checker
	r.mu.Unlock()
}
