// Package bridge keeps the local state store and the remote shared record
// eventually consistent without feedback loops.
//
// Two flows run concurrently:
//   - Inbound: a Pub/Sub subscription delivers full remote snapshots,
//     which replace the local collections atomically.
//   - Outbound: every local state change (re)starts a debounce timer;
//     when it fires the complete current snapshot is pushed to the remote
//     record as a full-document upsert. Rapid edits coalesce into one push.
//
// Echo suppression: while an inbound snapshot is being applied, and for
// a short guard window afterwards, local change notifications do not
// arm the debounce timer, so a remote-triggered update is never re-pushed
// as if it were a new local change.
//
// Conflict policy is last writer wins at whole-snapshot granularity.
// Concurrent edits from two clients whose debounce windows overlap can
// clobber each other; that is an accepted limitation of the design, not
// a bug this component tries to fix.
package bridge

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/educreatorschool-design/hanvitlms/internal/store"
	"github.com/educreatorschool-design/hanvitlms/pkg/model"
	"github.com/educreatorschool-design/hanvitlms/pkg/remote"
)

const (
	// DefaultDebounce is the quiet period after the last local change
	// before a push goes out.
	DefaultDebounce = 1 * time.Second

	// DefaultGuard is how long after applying an inbound snapshot local
	// changes are still treated as echo.
	DefaultGuard = 200 * time.Millisecond

	// pushTimeout bounds a single outbound upsert.
	pushTimeout = 10 * time.Second
)

// Options tunes the bridge's timing. Zero values fall back to defaults;
// tests shrink both to keep runs fast.
type Options struct {
	Debounce time.Duration
	Guard    time.Duration
}

// Bridge replicates state between a Store and a remote record client.
type Bridge struct {
	store    *store.Store
	client   *remote.Client
	debounce time.Duration
	guard    time.Duration

	mu       sync.Mutex
	applying bool        // true while an inbound snapshot is being applied (and during the guard window)
	timer    *time.Timer // armed debounce timer, nil when idle

	wg sync.WaitGroup
}

// New creates a sync bridge between st and client. The bridge does
// nothing until Start is called.
func New(st *store.Store, client *remote.Client, opts Options) *Bridge {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Guard <= 0 {
		opts.Guard = DefaultGuard
	}
	return &Bridge{
		store:    st,
		client:   client,
		debounce: opts.Debounce,
		guard:    opts.Guard,
	}
}

// Start seeds local state with one synchronous fetch of the remote
// record, registers the bridge as a store change subscriber, then blocks
// consuming inbound events until ctx is cancelled.
//
// Remote failures never block local operation: a failed fetch, subscribe
// or push is logged and the store stays fully usable offline. A failed
// push is retried only by the natural debounce on the next local change.
func (b *Bridge) Start(ctx context.Context) error {
	// Startup fetch: apply exactly like an inbound update, with the same
	// echo-suppression guard, before the user interacts.
	snap, err := b.client.Fetch(ctx)
	switch {
	case err == nil:
		b.applyInbound(snap)
	case remote.IsNotFound(err):
		log.Printf("[INFO] No remote state yet, starting from local copy")
	default:
		log.Printf("[WARN] Initial remote fetch failed, continuing offline: %v", err)
	}

	sub, err := b.client.Subscribe(ctx)
	if err != nil {
		log.Printf("[WARN] Remote subscribe failed, continuing offline: %v", err)
		sub = nil
	}

	b.store.Subscribe(b.onLocalChange)

	if sub != nil {
		b.wg.Add(1)
		go b.inboundLoop(ctx, sub)
	}

	<-ctx.Done()
	if sub != nil {
		sub.Close()
	}

	b.mu.Lock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.mu.Unlock()

	b.wg.Wait()
	return nil
}

// inboundLoop consumes remote snapshots until the subscription closes.
func (b *Bridge) inboundLoop(ctx context.Context, sub *remote.Subscription) {
	defer b.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return

		case snap, ok := <-sub.Events():
			if !ok {
				return
			}
			b.applyInbound(snap)

		case err, ok := <-sub.Errors():
			if !ok {
				return
			}
			log.Printf("[WARN] Dropped malformed remote event: %v", err)
		}
	}
}

// applyInbound replaces local collections with the remote snapshot under
// echo suppression. The suppression flag stays up for the guard window
// after the apply so trailing change notifications from the apply itself
// are not pushed back out.
func (b *Bridge) applyInbound(snap *model.Snapshot) {
	b.mu.Lock()
	b.applying = true
	// A push armed before the inbound event is stale; the remote already
	// has newer state.
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.mu.Unlock()

	b.store.ApplyRemote(snap)

	time.AfterFunc(b.guard, func() {
		b.mu.Lock()
		b.applying = false
		b.mu.Unlock()
	})
}

// onLocalChange is the store subscriber: every successful mutation lands
// here. While applying a remote update it does nothing; otherwise it
// (re)starts the debounce timer.
func (b *Bridge) onLocalChange() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.applying {
		return
	}

	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.debounce, b.push)
}

// push sends the complete current snapshot to the remote record. Runs on
// the debounce timer's goroutine once the quiet period elapses.
func (b *Bridge) push() {
	b.mu.Lock()
	b.timer = nil
	b.mu.Unlock()

	snap, err := b.store.Snapshot()
	if err != nil {
		log.Printf("[WARN] Skipping push, snapshot failed: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
	defer cancel()

	if err := b.client.Upsert(ctx, snap); err != nil {
		log.Printf("[WARN] Remote push failed: %v", err)
	}
}
