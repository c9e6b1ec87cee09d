// Package engine implements the game session: the tick scheduler that ages
// the shop's clocks and the dispatcher that applies the witch's actions.
package engine

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/hammamikhairi/brewrush/internal/customer"
	"github.com/hammamikhairi/brewrush/internal/domain"
	"github.com/hammamikhairi/brewrush/internal/fulfill"
	"github.com/hammamikhairi/brewrush/internal/inventory"
	"github.com/hammamikhairi/brewrush/internal/logger"
	"github.com/hammamikhairi/brewrush/internal/world"
)

// Defaults for a new session.
const (
	DefaultDuration     = 10 * time.Minute
	DefaultMaxCustomers = 4
)

// Option configures a session.
type Option func(*Session)

// WithRand sets the randomness used for recipe draws, waits and flavor.
func WithRand(rng domain.Rand) Option {
	return func(s *Session) {
		s.rng = rng
	}
}

// WithPolicy sets how replacement customers pick their recipe.
func WithPolicy(p customer.Policy) Option {
	return func(s *Session) {
		s.policy = p
	}
}

// WithMaxCustomers sets how many customers may wait at once.
func WithMaxCustomers(n int) Option {
	return func(s *Session) {
		s.maxCustomers = n
	}
}

// WithInventoryCap sets the number of bag slots.
func WithInventoryCap(n int) Option {
	return func(s *Session) {
		s.inventoryCap = n
	}
}

// WithDuration sets the global countdown.
func WithDuration(d time.Duration) Option {
	return func(s *Session) {
		s.duration = d
	}
}

// WithDeliverAt restricts fulfilling orders to one location. Empty means
// anywhere.
func WithDeliverAt(id domain.LocationID) Option {
	return func(s *Session) {
		s.deliverAt = id
	}
}

// WithImpatientAt sets the remaining wait at which a customer raises the
// impatience alert.
func WithImpatientAt(d time.Duration) Option {
	return func(s *Session) {
		s.impatientAt = d
	}
}

// WithRestock refills every location's pool to its starting stock each
// time the given amount of play passes. Zero never restocks.
func WithRestock(every time.Duration) Option {
	return func(s *Session) {
		s.restockEvery = every
	}
}

// WithClock sets the wall clock used to stamp the run record.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// Session is one game. It owns the inventory and the customer queue and
// borrows the recipe book and the map. A session is driven from a single
// goroutine through Advance; it does no locking.
type Session struct {
	id        string
	status    domain.SessionStatus
	reason    string
	tick      uint64
	duration  time.Duration
	remaining time.Duration
	revenue   int
	fulfilled int
	expired   int
	history   []domain.RecipeID

	location  domain.LocationID
	deliverAt domain.LocationID
	warning   string
	lastErr   error
	flavor    string
	events    []domain.Event

	maxCustomers int
	inventoryCap int
	impatientAt  time.Duration
	restockEvery time.Duration
	sinceRestock time.Duration

	recipes    domain.RecipeSource
	world      *world.Graph
	inv        *inventory.Store
	queue      *customer.Queue
	resolver   *fulfill.Resolver
	dispatcher *Dispatcher
	policy     customer.Policy
	rng        domain.Rand

	startedAt time.Time
	now       func() time.Time
	last      domain.Snapshot
	abortErr  error
	log       *logger.Logger
}

// New starts a session on the given recipe book and map. The witch begins
// at the map's home with an empty bag and the queue filled to capacity.
func New(recipes domain.RecipeSource, graph *world.Graph, log *logger.Logger, opts ...Option) (*Session, error) {
	s := &Session{
		id:           generateID(),
		status:       domain.SessionRunning,
		duration:     DefaultDuration,
		maxCustomers: DefaultMaxCustomers,
		inventoryCap: inventory.DefaultCapacity,
		recipes:      recipes,
		world:        graph,
		location:     graph.Home(),
		now:          time.Now,
		log:          log.Named("engine"),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.duration <= 0 {
		return nil, fmt.Errorf("session duration must be positive, got %s", s.duration)
	}
	if s.restockEvery < 0 {
		return nil, fmt.Errorf("restock interval must not be negative, got %s", s.restockEvery)
	}
	if s.deliverAt != "" && !graph.Has(s.deliverAt) {
		return nil, fmt.Errorf("deliver_at %s: %w", s.deliverAt, domain.ErrNotFound)
	}
	if len(recipes.All()) == 0 {
		return nil, fmt.Errorf("recipe book is empty")
	}
	if s.rng == nil {
		seed := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if s.policy == nil {
		s.policy = customer.NewUniform(s.rng)
	}

	s.remaining = s.duration
	s.startedAt = s.now()
	s.inv = inventory.New(s.inventoryCap)
	s.queue = customer.NewQueue(s.log, s.maxCustomers, customer.WithImpatientAt(s.impatientAt))
	s.resolver = fulfill.NewResolver(s.queue, s.log)
	s.dispatcher = NewDispatcher(s.log)
	s.flavor = graph.Flavor(s.location, s.rng)

	if err := s.fill(); err != nil {
		return nil, err
	}
	s.last = s.snapshot()

	s.log.Info("session %s started: %s, %d customers, %d slots", s.id, s.duration, s.maxCustomers, s.inv.Cap())
	return s, nil
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Status returns the lifecycle state.
func (s *Session) Status() domain.SessionStatus { return s.status }

// LastError returns the error behind the current warning, or nil.
func (s *Session) LastError() error { return s.lastErr }

// History returns the recipes served so far, in order.
func (s *Session) History() []domain.RecipeID {
	return append([]domain.RecipeID(nil), s.history...)
}

// Snapshot returns the most recent snapshot without advancing time.
func (s *Session) Snapshot() domain.Snapshot { return s.last }

// Advance runs one tick: the countdown and every customer age by elapsed,
// expired customers are replaced, then action (if any) is applied. Once the
// countdown reaches zero the session ends and later ticks return the final
// snapshot. The error is non-nil only when an invariant broke; the session
// is then aborted and keeps returning its last good snapshot.
func (s *Session) Advance(elapsed time.Duration, action domain.Action) (domain.Snapshot, error) {
	switch s.status {
	case domain.SessionEnded:
		return s.last, nil
	case domain.SessionAborted:
		return s.last, s.abortErr
	}
	if elapsed < 0 {
		elapsed = 0
	}

	s.tick++
	s.events = nil

	if elapsed >= s.remaining {
		// Customers age up to closing time; nobody replaces them and the
		// action is dropped.
		s.expire(s.remaining)
		s.remaining = 0
		s.end(domain.ReasonTime)
		if err := s.check(); err != nil {
			return s.abort(err)
		}
		s.last = s.snapshot()
		return s.last, nil
	}
	s.remaining -= elapsed

	s.expire(elapsed)
	for _, c := range s.queue.Impatient() {
		s.emit(domain.Event{
			Kind:     domain.EventImpatient,
			Customer: c.ID,
			Recipe:   c.Recipe.ID,
			Message:  fmt.Sprintf("customer #%d is running out of patience", c.ID),
		})
	}
	if err := s.fill(); err != nil {
		return s.abort(err)
	}
	s.restock(elapsed)

	if action != nil {
		if err := s.dispatcher.Apply(action, s); err != nil {
			if errors.Is(err, domain.ErrInvariant) {
				return s.abort(err)
			}
			s.warn(err)
		} else if _, idle := action.(domain.NoOp); !idle {
			s.warning, s.lastErr = "", nil
		}
	}

	if err := s.check(); err != nil {
		return s.abort(err)
	}
	s.last = s.snapshot()
	return s.last, nil
}

// Quit ends a running session early.
func (s *Session) Quit() domain.Snapshot {
	if s.status == domain.SessionRunning {
		s.events = nil
		s.end(domain.ReasonQuit)
		s.last = s.snapshot()
	}
	return s.last
}

// Record returns the run's score line.
func (s *Session) Record() domain.RunRecord {
	reason := s.reason
	if reason == "" {
		reason = domain.ReasonQuit
	}
	return domain.RunRecord{
		ID:        s.id,
		StartedAt: s.startedAt,
		Played:    s.duration - s.remaining,
		Revenue:   s.revenue,
		Fulfilled: s.fulfilled,
		Expired:   s.expired,
		Reason:    reason,
	}
}

func (s *Session) expire(elapsed time.Duration) {
	for _, c := range s.queue.ExpireDue(elapsed) {
		s.expired++
		s.emit(domain.Event{Kind: domain.EventExpired, Customer: c.ID, Recipe: c.Recipe.ID})
	}
}

func (s *Session) restock(elapsed time.Duration) {
	if s.restockEvery <= 0 {
		return
	}
	s.sinceRestock += elapsed
	if s.sinceRestock < s.restockEvery {
		return
	}
	s.sinceRestock %= s.restockEvery
	s.world.Restock()
	s.log.Debug("restocked after %s of play", s.duration-s.remaining)
}

func (s *Session) end(reason string) {
	s.status = domain.SessionEnded
	s.reason = reason
	s.emit(domain.Event{Kind: domain.EventEnded, Amount: s.revenue, Message: reason})
	s.log.Info("session %s ended (%s): revenue %d, served %d, lost %d", s.id, reason, s.revenue, s.fulfilled, s.expired)
}

func (s *Session) abort(err error) (domain.Snapshot, error) {
	s.status = domain.SessionAborted
	s.reason = domain.ReasonAborted
	s.abortErr = err
	s.last.Status = domain.SessionAborted
	s.log.Error("session %s aborted: %v", s.id, err)
	return s.last, err
}

// fill spawns customers until the queue is at capacity.
func (s *Session) fill() error {
	book := s.recipes.All()
	for !s.queue.Full() {
		r := s.policy.Next(book)
		if r == nil {
			return nil
		}
		c, err := s.queue.Spawn(r, customer.Wait(r, s.rng))
		if err != nil {
			if errors.Is(err, domain.ErrQueueFull) {
				return nil
			}
			return err
		}
		s.emit(domain.Event{Kind: domain.EventSpawned, Customer: c.ID, Recipe: r.ID})
	}
	return nil
}

// enter moves the witch and picks a fresh flavor line.
func (s *Session) enter(to domain.LocationID) {
	s.location = to
	s.flavor = s.world.Flavor(to, s.rng)
	s.log.Debug("entered %s", to)
}

func (s *Session) warn(err error) {
	s.lastErr = err
	s.warning = err.Error()
	s.emit(domain.Event{Kind: domain.EventWarning, Message: s.warning})
	s.log.Debug("warning: %v", err)
}

func (s *Session) emit(ev domain.Event) {
	s.events = append(s.events, ev)
}

func (s *Session) check() error {
	if s.remaining < 0 {
		return fmt.Errorf("negative time remaining %s: %w", s.remaining, domain.ErrInvariant)
	}
	if s.revenue < 0 {
		return fmt.Errorf("negative revenue %d: %w", s.revenue, domain.ErrInvariant)
	}
	if err := s.inv.Check(); err != nil {
		return err
	}
	return s.queue.Check()
}

// snapshot copies the session state. Nothing in the result aliases the
// session.
func (s *Session) snapshot() domain.Snapshot {
	snap := domain.Snapshot{
		SessionID:     s.id,
		Status:        s.status,
		Tick:          s.tick,
		TimeRemaining: s.remaining,
		Revenue:       s.revenue,
		Fulfilled:     s.fulfilled,
		Expired:       s.expired,
		Inventory:     s.inv.Snapshot(),
		InventoryUsed: s.inv.Len(),
		InventoryCap:  s.inv.Cap(),
		MaxCustomers:  s.queue.Cap(),
		Location:      s.location,
		LocationName:  s.world.Name(s.location),
		Neighbors:     s.world.Exits(s.location),
		Collectible:   s.world.Stock(s.location),
		Warning:       s.warning,
		Flavor:        s.flavor,
		Events:        append([]domain.Event(nil), s.events...),
	}
	for _, c := range s.queue.List() {
		snap.Customers = append(snap.Customers, domain.CustomerView{
			ID:         c.ID,
			RecipeID:   c.Recipe.ID,
			RecipeName: c.Recipe.Name,
			Summary:    c.Recipe.Summary(),
			Payout:     c.Recipe.Payout,
			Remaining:  c.Remaining,
			Patience:   c.Patience,
		})
	}
	return snap
}
