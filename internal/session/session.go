package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/donothingclub/donothing/internal/model"
)

// PersistEvery is the tick interval between remote persistence pushes
const PersistEvery = 10

// ErrNoUser is returned when a session is started without a resolved user;
// callers should route to registration instead
var ErrNoUser = errors.New("session requires a resolved user")

// TimePersister pushes an accrued total to the remote service
type TimePersister interface {
	PersistTime(ctx context.Context, userID string, seconds int64) error
}

// State is the session lifecycle state
type State int

// Session states
const (
	StateIdle State = iota
	StateActive
)

func (s State) String() string {
	if s == StateActive {
		return "active"
	}
	return "idle"
}

// Session is the accrual clock for one active session. While running it
// increments elapsed time once per second on a fixed-period ticker and every
// tenth tick pushes the accrued total to the remote service, fire-and-forget.
// The tick handler is the sole writer of the elapsed count; local time is the
// source of truth for display and the remote total is eventually consistent.
type Session struct {
	user      *model.User
	persister TimePersister
	clock     clockwork.Clock
	logger    *slog.Logger

	// onPersist is invoked after each successful push (leaderboard refresh hook)
	onPersist func(total int64)

	mu      sync.RWMutex
	state   State
	elapsed int64
}

// Option configures a Session
type Option func(*Session)

// WithOnPersist sets a callback fired after every successful persistence push
func WithOnPersist(fn func(total int64)) Option {
	return func(s *Session) {
		s.onPersist = fn
	}
}

// New creates a session for the given user. A nil user is refused: there is
// nothing to accrue against until registration has produced one.
func New(user *model.User, persister TimePersister, clock clockwork.Clock, logger *slog.Logger, opts ...Option) (*Session, error) {
	if user == nil {
		return nil, ErrNoUser
	}

	s := &Session{
		user:      user,
		persister: persister,
		clock:     clock,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Run drives the accrual loop until ctx is cancelled. The ticker is the only
// resource the session holds; it is released on return. There is no stop
// action besides cancellation - continuous accrual is the point.
func (s *Session) Run(ctx context.Context) error {
	s.setState(StateActive)
	defer s.setState(StateIdle)

	ticker := s.clock.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.Chan():
			s.tick(ctx)
		}
	}
}

// tick advances elapsed time by exactly one second and, on every tenth tick,
// dispatches a persistence push. The push runs in its own goroutine so a slow
// or failed request never delays the next tick; out-of-order overwrites are a
// tolerated consequence (writes are idempotent, keyed by the local total).
func (s *Session) tick(ctx context.Context) {
	s.mu.Lock()
	s.elapsed++
	elapsed := s.elapsed
	s.mu.Unlock()

	if elapsed%PersistEvery == 0 {
		go s.persist(ctx, s.user.TotalTime+elapsed)
	}
}

// persist pushes the accrued total. Failures are logged and the cycle is
// skipped; there is no retry and the local count is never rolled back.
func (s *Session) persist(ctx context.Context, total int64) {
	if err := s.persister.PersistTime(ctx, string(s.user.ID), total); err != nil {
		s.logger.Warn("persist failed",
			slog.String("user_id", string(s.user.ID)),
			slog.Int64("total", total),
			slog.String("error", err.Error()),
		)
		return
	}

	s.logger.Info("persisted accrued time",
		slog.String("user_id", string(s.user.ID)),
		slog.Int64("total", total),
	)

	if s.onPersist != nil {
		s.onPersist(total)
	}
}

// Elapsed returns the seconds accrued by this session so far
func (s *Session) Elapsed() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.elapsed
}

// Total returns the user's accrued total including this session
func (s *Session) Total() int64 {
	return s.user.TotalTime + s.Elapsed()
}

// State returns the current session state
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
