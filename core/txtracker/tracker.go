package txtracker

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"
	"github.com/gaze-network/vega-contracts/common/errs"
	"github.com/gaze-network/vega-contracts/internal/metrics"
	"github.com/gaze-network/vega-contracts/pkg/logger"
	"github.com/gaze-network/vega-contracts/pkg/logger/slogx"
	"github.com/samber/lo"
)

type Option func(*Tracker)

// WithPreservePosition keeps an updated record at its first-seen position
// instead of moving it to the end of the collection.
func WithPreservePosition() Option {
	return func(t *Tracker) {
		t.preservePosition = true
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(t *Tracker) {
		t.metrics = m
	}
}

type listener struct {
	id uint64
	fn Listener
}

// Tracker keeps at most one record per transaction hash and notifies
// listeners with the full collection after every merge.
type Tracker struct {
	resolver         Resolver
	metrics          *metrics.Metrics
	preservePosition bool

	// notifyMu makes merge-then-notify atomic with respect to other merges.
	notifyMu sync.Mutex

	mu        sync.RWMutex
	txs       []TrackedTransaction
	listeners []listener
	nextID    atomic.Uint64
	feed      event.Feed
}

// New creates a Tracker. resolver may be nil if ObserveEvent is never used.
func New(resolver Resolver, opts ...Option) *Tracker {
	t := &Tracker{resolver: resolver}
	for _, opt := range opts {
		opt(t)
	}
	if t.metrics == nil {
		t.metrics = metrics.Nop()
	}
	return t
}

// Track tracks a submitted transaction until it reaches required confirmations.
// It blocks until then, or until a confirmation wait fails. A transaction that
// is already tracked keeps the depth it was first tracked with.
func (t *Tracker) Track(ctx context.Context, h Handle, required int) error {
	if err := validate(h, required); err != nil {
		return errors.WithStack(err)
	}
	required, _ = t.start(h.Hash(), required)
	return t.follow(ctx, h, h.Hash(), required)
}

// Go starts tracking in the background. The initial pending record is merged
// before Go returns; the returned channel receives the result of the tracking.
func (t *Tracker) Go(ctx context.Context, h Handle, required int) <-chan error {
	if err := validate(h, required); err != nil {
		return failed(errors.WithStack(err))
	}
	required, _ = t.start(h.Hash(), required)
	return t.goFollow(ctx, h, required)
}

// TrackIfAbsent is Go for transactions not tracked yet. The claim is atomic:
// of concurrent callers for the same hash only one gets a non-nil channel.
func (t *Tracker) TrackIfAbsent(ctx context.Context, h Handle, required int) (<-chan error, error) {
	if err := validate(h, required); err != nil {
		return nil, errors.WithStack(err)
	}
	if _, claimed := t.start(h.Hash(), required); !claimed {
		return nil, nil
	}
	return t.goFollow(ctx, h, required), nil
}

// start inserts the initial pending record. If the hash is already tracked it
// returns the required confirmations of the existing record instead.
func (t *Tracker) start(hash common.Hash, required int) (int, bool) {
	if t.merge(TrackedTransaction{Hash: hash, Pending: true, RequiredConfirmations: required}, true) {
		return required, true
	}
	if prev, ok := t.Get(hash); ok {
		return prev.RequiredConfirmations, false
	}
	return required, false
}

func (t *Tracker) goFollow(ctx context.Context, h Handle, required int) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- t.follow(ctx, h, h.Hash(), required)
	}()
	return done
}

func failed(err error) <-chan error {
	done := make(chan error, 1)
	done <- err
	close(done)
	return done
}

// ObserveEvent starts tracking the transaction that emitted a contract event,
// unless that transaction is already tracked.
func (t *Tracker) ObserveEvent(ctx context.Context, log types.Log, required int) error {
	if required < 1 {
		return errors.Wrapf(errs.InvalidArgument, "required confirmations must be at least 1, got %d", required)
	}
	ctx = logger.WithContext(ctx, slogx.Stringer("tx_hash", log.TxHash))

	if log.Removed {
		logger.DebugContext(ctx, "Ignoring removed event log")
		return nil
	}
	if _, ok := t.Get(log.TxHash); ok {
		t.metrics.DuplicateObservation()
		return nil
	}
	if t.resolver == nil {
		return errors.Wrap(errs.InvalidArgument, "tracker has no transaction resolver")
	}

	h, err := t.resolver.TransactionHandle(ctx, log.TxHash)
	if err != nil {
		return errors.Wrapf(err, "can't resolve transaction %s", log.TxHash)
	}

	// another observer may have claimed the transaction while it was being resolved
	if _, claimed := t.start(log.TxHash, required); !claimed {
		t.metrics.DuplicateObservation()
		return nil
	}
	return t.follow(ctx, h, log.TxHash, required)
}

// follow awaits confirmations 1..required strictly in order, merging after each.
func (t *Tracker) follow(ctx context.Context, h Handle, hash common.Hash, required int) error {
	ctx = logger.WithContext(ctx, slogx.Stringer("tx_hash", hash))
	for i := 1; i <= required; i++ {
		receipt, err := h.Wait(ctx, i)
		if err != nil {
			t.metrics.ConfirmationWaitFailed()
			logger.WarnContext(ctx, "Failed waiting for transaction confirmation",
				slogx.Int("confirmations", i),
				slogx.Int("required", required),
				slogx.Error(err),
			)
			return errors.Wrapf(errors.Mark(err, errs.WaitFailed), "wait for confirmation %d/%d of %s", i, required, hash)
		}
		t.metrics.ConfirmationObserved()
		t.merge(TrackedTransaction{
			Hash:                  hash,
			Receipt:               receipt,
			Pending:               i < required,
			Confirmations:         i,
			RequiredConfirmations: required,
		}, false)
	}
	logger.InfoContext(ctx, "Transaction confirmed", slogx.Int("confirmations", required))
	return nil
}

// merge replaces the record with the same hash, or appends a new one, then
// notifies listeners. Observations that would move a record backwards are
// dropped, and a replacement keeps the RequiredConfirmations of the record it
// replaces. With onlyIfAbsent an existing record is never replaced.
// Reports whether the collection changed.
func (t *Tracker) merge(next TrackedTransaction, onlyIfAbsent bool) bool {
	t.notifyMu.Lock()
	defer t.notifyMu.Unlock()

	t.mu.Lock()
	prev, idx, found := lo.FindIndexOf(t.txs, func(tx TrackedTransaction) bool {
		return tx.Hash == next.Hash
	})
	if found {
		next.RequiredConfirmations = prev.RequiredConfirmations
	}
	switch {
	case found && (onlyIfAbsent || regresses(prev, next)):
		t.mu.Unlock()
		return false
	case found && t.preservePosition:
		t.txs[idx] = next
	case found:
		t.txs = append(slices.Delete(t.txs, idx, idx+1), next)
	default:
		t.txs = append(t.txs, next)
		t.metrics.TransactionTracked()
	}
	if (!found || prev.Pending) && !next.Pending {
		t.metrics.TransactionFinalized()
	}
	snapshot := t.txs
	listeners := slices.Clone(t.listeners)
	t.mu.Unlock()

	for _, l := range listeners {
		l.fn(slices.Clone(snapshot))
		t.metrics.Notified()
	}
	t.feed.Send(slices.Clone(snapshot))
	return true
}

// regresses reports whether next is older than prev: fewer confirmations,
// or pending again after prev was final.
func regresses(prev, next TrackedTransaction) bool {
	return next.Confirmations < prev.Confirmations || (!prev.Pending && next.Pending)
}

// Subscribe registers a listener. Listeners are invoked synchronously in
// registration order after every merge, while further merges are held back.
// A listener must not call Track, Go, TrackIfAbsent or ObserveEvent directly;
// doing so deadlocks. Start them in a new goroutine instead.
// The returned func unregisters it.
func (t *Tracker) Subscribe(fn Listener) (unsubscribe func()) {
	id := t.nextID.Add(1)
	t.addListener(id, fn)
	return func() { t.removeListener(id) }
}

// Watch delivers the collection to ch after every merge. The slice is shared
// by all watchers and must not be modified. The client must keep draining ch;
// a blocked watcher holds back further merges.
func (t *Tracker) Watch(ch chan<- []TrackedTransaction) event.Subscription {
	return t.feed.Subscribe(ch)
}

func (t *Tracker) addListener(id uint64, fn Listener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, listener{id: id, fn: fn})
}

func (t *Tracker) removeListener(id uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = slices.DeleteFunc(t.listeners, func(l listener) bool { return l.id == id })
}

// Transactions returns the tracked transactions in collection order.
func (t *Tracker) Transactions() []TrackedTransaction {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.txs)
}

// Get returns the tracked transaction with the given hash.
func (t *Tracker) Get(hash common.Hash) (TrackedTransaction, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return lo.Find(t.txs, func(tx TrackedTransaction) bool { return tx.Hash == hash })
}

func validate(h Handle, required int) error {
	if h == nil {
		return errors.Wrap(errs.InvalidArgument, "transaction handle is nil")
	}
	if required < 1 {
		return errors.Wrapf(errs.InvalidArgument, "required confirmations must be at least 1, got %d", required)
	}
	return nil
}
