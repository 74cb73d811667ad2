// Package cache memoises property test outcomes per polynomial.
package cache

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	logging "github.com/ipfs/go-log/v2"

	"github.com/ppopth/gfpoly/poly"
)

var log = logging.Logger("cache")

var defaultSweepInterval = 1 * time.Minute

// Outcome is the cached result of a property test
type Outcome int32

const (
	Unknown Outcome = iota
	Yes
	No
)

func (o Outcome) String() string {
	switch o {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "unknown"
	}
}

func outcomeOf(b bool) Outcome {
	if b {
		return Yes
	}
	return No
}

// Property names the tested property an outcome belongs to
type Property uint8

const (
	Irreducible Property = iota + 1
	Primitive
	ConwayConsistent
)

func (p Property) String() string {
	switch p {
	case Irreducible:
		return "irreducible"
	case Primitive:
		return "primitive"
	case ConwayConsistent:
		return "conway-consistent"
	default:
		return fmt.Sprintf("property(%d)", uint8(p))
	}
}

type key struct {
	poly     poly.Key
	property Property
}

func (k key) String() string {
	d := k.poly.Field
	return fmt.Sprintf("%s/%d/%s/%d/%x/%d", d.Characteristic, d.Degree, d.Modulus, k.poly.Degree, k.poly.Digest, k.property)
}

// call is a computation in flight. It runs on its own context, cancelled once
// every waiter has given up.
type call struct {
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	waiters int

	result bool
	err    error
}

type entry struct {
	outcome Outcome
	expiry  time.Time // zero when entries never expire
	lastUse atomic.Int64
}

// Stats are cumulative cache counters
type Stats struct {
	Hits      uint64
	Misses    uint64
	Computes  uint64
	Evictions uint64
}

// Cache maps (polynomial, property) to a test outcome. Reads of resolved
// entries take no lock. A computation runs at most once per key at a time and
// errors are never stored. A waiter whose context ends leaves without
// disturbing the others.
type Cache struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once

	entries sync.Map // key -> *entry
	callsMu sync.Mutex
	calls   map[key]*call
	size    atomic.Int64
	tick    atomic.Int64
	evictMu sync.Mutex

	maxEntries    int
	ttl           time.Duration
	sweepInterval time.Duration

	hits, misses, computes, evictions atomic.Uint64
}

// Option is a functional option for the Cache
type Option func(*Cache) error

// WithMaxEntries bounds the number of entries. The least recently used entries
// are evicted first, approximately.
func WithMaxEntries(n int) Option {
	return func(c *Cache) error {
		if n < 1 {
			return fmt.Errorf("max entries must be positive, got %d", n)
		}
		c.maxEntries = n
		return nil
	}
}

// WithTTL expires entries ttl after they were computed
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) error {
		if ttl <= 0 {
			return fmt.Errorf("ttl must be positive, got %v", ttl)
		}
		c.ttl = ttl
		return nil
	}
}

// WithSweepInterval sets how often expired entries are removed
func WithSweepInterval(d time.Duration) Option {
	return func(c *Cache) error {
		if d <= 0 {
			return fmt.Errorf("sweep interval must be positive, got %v", d)
		}
		c.sweepInterval = d
		return nil
	}
}

// New creates a Cache. A cache with a TTL runs a background sweeper until Close
// is called.
func New(opts ...Option) (*Cache, error) {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Cache{
		ctx:           ctx,
		cancel:        cancel,
		sweepInterval: defaultSweepInterval,
		calls:         make(map[key]*call),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			cancel()
			return nil, err
		}
	}

	if c.ttl > 0 {
		c.wg.Add(1)
		go c.background()
	}
	return c, nil
}

func (c *Cache) load(k key, now time.Time) (*entry, bool) {
	v, ok := c.entries.Load(k)
	if !ok {
		return nil, false
	}
	e := v.(*entry)
	if !e.expiry.IsZero() && e.expiry.Before(now) {
		return nil, false
	}
	e.lastUse.Store(c.tick.Add(1))
	return e, true
}

// Lookup returns the cached outcome, Unknown when absent
func (c *Cache) Lookup(k poly.Key, property Property) Outcome {
	if e, ok := c.load(key{k, property}, time.Now()); ok {
		return e.outcome
	}
	return Unknown
}

// GetOrCompute returns the cached outcome or runs compute and caches its result.
// Concurrent callers for the same key wait for a single computation, which gets
// a context that is cancelled only when all of them have returned. A caller
// whose ctx ends returns ctx.Err() at once.
func (c *Cache) GetOrCompute(ctx context.Context, k poly.Key, property Property, compute func(context.Context) (bool, error)) (bool, error) {
	ck := key{k, property}
	if e, ok := c.load(ck, time.Now()); ok {
		c.hits.Add(1)
		return e.outcome == Yes, nil
	}
	c.misses.Add(1)

	for {
		cl, started := c.join(ctx, ck)
		if started {
			if ctx.Done() == nil {
				// the caller never leaves, so it can do the work itself
				c.run(ck, cl, compute)
			} else {
				go c.run(ck, cl, compute)
			}
		}

		select {
		case <-cl.done:
			c.leave(ck, cl)
			if cl.err != nil && cl.ctx.Err() != nil && ctx.Err() == nil {
				// abandoned by the earlier waiters before we joined
				continue
			}
			return cl.result, cl.err
		case <-ctx.Done():
			c.leave(ck, cl)
			return false, ctx.Err()
		}
	}
}

// join registers a waiter on the computation of k, creating it when none runs
func (c *Cache) join(ctx context.Context, k key) (*call, bool) {
	c.callsMu.Lock()
	defer c.callsMu.Unlock()
	if cl, ok := c.calls[k]; ok {
		cl.waiters++
		return cl, false
	}
	cctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	cl := &call{ctx: cctx, cancel: cancel, done: make(chan struct{}), waiters: 1}
	c.calls[k] = cl
	return cl, true
}

// leave drops a waiter. The last one cancels a computation still running.
func (c *Cache) leave(k key, cl *call) {
	c.callsMu.Lock()
	defer c.callsMu.Unlock()
	cl.waiters--
	if cl.waiters > 0 {
		return
	}
	if c.calls[k] == cl {
		delete(c.calls, k)
	}
	cl.cancel()
}

func (c *Cache) run(k key, cl *call, compute func(context.Context) (bool, error)) {
	if e, ok := c.load(k, time.Now()); ok {
		cl.result = e.outcome == Yes
	} else {
		c.computes.Add(1)
		cl.result, cl.err = compute(cl.ctx)
		if cl.err == nil {
			c.store(k, outcomeOf(cl.result))
		} else {
			log.Debugf("computing %s failed: %v", k.property, cl.err)
		}
	}

	c.callsMu.Lock()
	if c.calls[k] == cl {
		delete(c.calls, k)
	}
	c.callsMu.Unlock()
	close(cl.done)
}

func (c *Cache) store(k key, o Outcome) {
	e := &entry{outcome: o}
	if c.ttl > 0 {
		e.expiry = time.Now().Add(c.ttl)
	}
	e.lastUse.Store(c.tick.Add(1))
	if _, loaded := c.entries.Swap(k, e); !loaded {
		c.size.Add(1)
	}
	if c.maxEntries > 0 && c.size.Load() > int64(c.maxEntries) {
		c.evict()
	}
}

// evict drops the least recently used entries until the cache is a tenth below
// its bound
func (c *Cache) evict() {
	c.evictMu.Lock()
	defer c.evictMu.Unlock()

	if c.size.Load() <= int64(c.maxEntries) {
		return
	}
	type aged struct {
		k    key
		e    *entry
		tick int64
	}
	var all []aged
	c.entries.Range(func(k, v any) bool {
		e := v.(*entry)
		all = append(all, aged{k.(key), e, e.lastUse.Load()})
		return true
	})
	slices.SortFunc(all, func(a, b aged) int {
		switch {
		case a.tick < b.tick:
			return -1
		case a.tick > b.tick:
			return 1
		}
		return 0
	})

	target := c.maxEntries - c.maxEntries/10
	drop := len(all) - target
	for _, a := range all[:max(drop, 0)] {
		if c.deleteEntry(a.k, a.e) {
			c.evictions.Add(1)
		}
	}
	log.Debugf("evicted %d entries", max(drop, 0))
}

// deleteEntry removes k only while it still maps to e
func (c *Cache) deleteEntry(k key, e *entry) bool {
	if c.entries.CompareAndDelete(k, e) {
		c.size.Add(-1)
		return true
	}
	return false
}

func (c *Cache) background() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			c.sweep(now)

		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Cache) sweep(now time.Time) {
	removed := 0
	c.entries.Range(func(k, v any) bool {
		e := v.(*entry)
		if !e.expiry.IsZero() && e.expiry.Before(now) && c.deleteEntry(k.(key), e) {
			removed++
		}
		return true
	})
	if removed > 0 {
		log.Debugf("swept %d expired entries", removed)
	}
}

// Len returns the number of stored entries, including expired ones not yet swept
func (c *Cache) Len() int {
	return int(c.size.Load())
}

// Stats returns the cumulative counters
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Computes:  c.computes.Load(),
		Evictions: c.evictions.Load(),
	}
}

// Clear removes every entry
func (c *Cache) Clear() {
	c.entries.Range(func(k, v any) bool {
		c.deleteEntry(k.(key), v.(*entry))
		return true
	})
}

// Close stops the background sweeper
func (c *Cache) Close() error {
	c.once.Do(func() {
		c.cancel()
		c.wg.Wait()
	})
	return nil
}
