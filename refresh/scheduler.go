package refresh

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"klinik/model"
)

// Scheduler states.
const (
	StateIdle       = "idle"
	StateChecking   = "checking"
	StateRefreshing = "refreshing"
	StateRetrying   = "retrying"
)

// Persisted state keys.
const (
	keyLastChecked = "refresh.last_checked" // "2006-01-02", gates the daily check
	keyLastSuccess = "refresh.last_success" // RFC3339 of the last successful cycle
)

var (
	// ErrInProgress is returned when a refresh is already in flight; the
	// hourly poll and manual triggers never stack a second one.
	ErrInProgress = errors.New("refresh already in progress")
	// ErrExhausted is returned once the retry budget is spent.
	ErrExhausted = errors.New("refresh retries exhausted")
)

// Clock is injected so date-rollover behavior is testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock { return systemClock{} }

// StateStore is the persistent key-value port behind the scheduler. The
// production adapter sits on the app_state table; tests use an in-memory
// fake.
type StateStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// Runner is one refresh cycle; satisfied by *Pipeline.
type Runner interface {
	Run(ctx context.Context, cycleID string) error
}

// Policy is the retry/poll configuration, passed in rather than hard-coded.
// Backoff before retry n is n times RetryDelay.
type Policy struct {
	MaxRetries   int
	RetryDelay   time.Duration
	PollInterval time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:   3,
		RetryDelay:   5 * time.Minute,
		PollInterval: time.Hour,
	}
}

// Scheduler decides when the six sources must be re-fetched: once per
// distinguishable day it checks whether a new calendar month has begun
// since the last successful refresh, and if so runs the pipeline with
// retry/backoff and health tracking. A manual trigger shares the same
// cycle handling but skips the date check.
type Scheduler struct {
	clock    Clock
	store    StateStore
	pipeline Runner
	policy   Policy
	logger   *logrus.Logger

	mu          sync.Mutex
	running     bool
	state       string
	retryCount  int
	health      string
	lastError   string
	lastCycleID string
	callbacks   []func(model.RefreshState)
}

func NewScheduler(clock Clock, store StateStore, pipeline Runner, policy Policy, logger *logrus.Logger) *Scheduler {
	if policy.MaxRetries <= 0 {
		policy.MaxRetries = DefaultPolicy().MaxRetries
	}
	if policy.RetryDelay <= 0 {
		policy.RetryDelay = DefaultPolicy().RetryDelay
	}
	if policy.PollInterval <= 0 {
		policy.PollInterval = DefaultPolicy().PollInterval
	}
	return &Scheduler{
		clock:    clock,
		store:    store,
		pipeline: pipeline,
		policy:   policy,
		logger:   logger,
		state:    StateIdle,
		health:   model.HealthHealthy,
	}
}

// OnRefresh registers a callback invoked after every finished cycle,
// successful or exhausted, with a copy of the scheduler state.
func (s *Scheduler) OnRefresh(cb func(model.RefreshState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callbacks = append(s.callbacks, cb)
}

// Start runs the mount-time check immediately, then polls the daily-check
// condition on the poll interval so a long-running session still catches a
// month rollover.
func (s *Scheduler) Start(ctx context.Context) {
	go func() {
		s.CheckNow(ctx)
		ticker := time.NewTicker(s.policy.PollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.CheckNow(ctx)
			}
		}
	}()
}

// CheckNow performs the Idle -> Checking transition: at most once per
// calendar day it evaluates the month-rollover condition and, when due,
// runs an automatic refresh cycle.
func (s *Scheduler) CheckNow(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.state = StateChecking
	s.mu.Unlock()

	now := s.clock.Now()
	today := now.Format("2006-01-02")

	lastChecked, err := s.store.Get(keyLastChecked)
	if err != nil {
		s.log(logrus.Fields{}).Warnf("failed to read last-checked date: %v", err)
	}
	if lastChecked == today {
		s.setIdle()
		return
	}
	if err := s.store.Set(keyLastChecked, today); err != nil {
		s.log(logrus.Fields{}).Warnf("failed to persist last-checked date: %v", err)
	}

	if !s.refreshDue(now) {
		s.setIdle()
		return
	}

	s.log(logrus.Fields{"date": today}).Info("month rollover detected, starting automatic refresh")
	if err := s.runCycle(ctx); err != nil && !errors.Is(err, ErrInProgress) {
		s.log(logrus.Fields{}).Errorf("automatic refresh failed: %v", err)
	}
}

// refreshDue reports whether today is the 1st of a month and that month is
// strictly later than the month of the last successful refresh.
func (s *Scheduler) refreshDue(now time.Time) bool {
	if now.Day() != 1 {
		return false
	}
	raw, err := s.store.Get(keyLastSuccess)
	if err != nil || raw == "" {
		return true
	}
	last, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return true
	}
	if now.Year() != last.Year() {
		return now.Year() > last.Year()
	}
	return now.Month() > last.Month()
}

// RefreshNow is the manual trigger: it bypasses the date check but shares
// the same success/failure handling. It does not touch the automatic
// cycle's retry counter on entry; only a successful cycle resets it.
func (s *Scheduler) RefreshNow(ctx context.Context) error {
	return s.runCycle(ctx)
}

// runCycle drives Refreshing -> {Success, Retrying -> Refreshing,
// FailedFinal}. Only one cycle may be in flight at a time.
func (s *Scheduler) runCycle(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrInProgress
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.state = StateIdle
		s.mu.Unlock()
	}()

	for {
		cycleID := uuid.NewString()
		s.mu.Lock()
		s.state = StateRefreshing
		s.lastCycleID = cycleID
		attempt := s.retryCount
		s.mu.Unlock()

		s.log(logrus.Fields{"cycle_id": cycleID, "attempt": attempt}).Info("refresh cycle starting")
		err := s.pipeline.Run(ctx, cycleID)
		if err == nil {
			s.handleSuccess(cycleID)
			return nil
		}
		if done, ferr := s.handleFailure(ctx, cycleID, err); done {
			return ferr
		}
		// Retry budget remains; loop re-enters Refreshing after backoff.
	}
}

func (s *Scheduler) handleSuccess(cycleID string) {
	now := s.clock.Now()
	if err := s.store.Set(keyLastSuccess, now.Format(time.RFC3339)); err != nil {
		s.log(logrus.Fields{"cycle_id": cycleID}).Warnf("failed to persist last-success timestamp: %v", err)
	}

	s.mu.Lock()
	s.retryCount = 0
	s.health = model.HealthHealthy
	s.lastError = ""
	s.mu.Unlock()

	s.log(logrus.Fields{"cycle_id": cycleID}).Info("refresh cycle succeeded")
	s.notify()
}

// handleFailure returns done=true when the cycle is over (budget spent or
// context cancelled); otherwise the caller retries after the backoff.
func (s *Scheduler) handleFailure(ctx context.Context, cycleID string, cause error) (bool, error) {
	s.mu.Lock()
	s.retryCount++
	retries := s.retryCount
	s.lastError = cause.Error()
	if retries < s.policy.MaxRetries {
		s.health = model.HealthWarning
		s.state = StateRetrying
	} else {
		s.health = model.HealthCritical
		// Reset so the next scheduled cycle starts with a fresh budget.
		s.retryCount = 0
	}
	s.mu.Unlock()

	if retries >= s.policy.MaxRetries {
		s.log(logrus.Fields{"cycle_id": cycleID, "retries": retries}).Errorf("refresh exhausted: %v", cause)
		s.notify()
		return true, fmt.Errorf("%w: %v", ErrExhausted, cause)
	}

	backoff := time.Duration(retries) * s.policy.RetryDelay
	s.log(logrus.Fields{"cycle_id": cycleID, "retry": retries, "backoff": backoff.String()}).
		Warnf("refresh cycle failed, retrying: %v", cause)

	select {
	case <-ctx.Done():
		return true, ctx.Err()
	case <-time.After(backoff):
		return false, nil
	}
}

func (s *Scheduler) setIdle() {
	s.mu.Lock()
	if !s.running {
		s.state = StateIdle
	}
	s.mu.Unlock()
}

// State reports the externally visible scheduler state for the status
// endpoint.
func (s *Scheduler) State() model.RefreshState {
	lastSuccess, _ := s.store.Get(keyLastSuccess)

	s.mu.Lock()
	defer s.mu.Unlock()
	return model.RefreshState{
		State:       s.state,
		LastRefresh: lastSuccess,
		RetryCount:  s.retryCount,
		Health:      s.health,
		LastError:   s.lastError,
		LastCycleID: s.lastCycleID,
	}
}

func (s *Scheduler) notify() {
	state := s.State()
	s.mu.Lock()
	cbs := make([]func(model.RefreshState), len(s.callbacks))
	copy(cbs, s.callbacks)
	s.mu.Unlock()
	for _, cb := range cbs {
		cb(state)
	}
}

func (s *Scheduler) log(fields logrus.Fields) *logrus.Entry {
	logger := s.logger
	if logger == nil {
		logger = logrus.New()
	}
	fields["component"] = "refresh"
	return logger.WithFields(fields)
}
