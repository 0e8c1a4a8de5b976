// Package tracker is the in-memory source of truth: one explicit state
// object owning the classification pipeline, the echo-chamber breaker, the
// credibility-load meter and the weekly aggregates. Storage is a
// durability sink only; after Hydrate every read is served from memory.
package tracker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/clearfeed/mediascope/internal/utils"
	"github.com/clearfeed/mediascope/pkg/diet"
	"github.com/clearfeed/mediascope/pkg/echo"
	"github.com/clearfeed/mediascope/pkg/load"
	"github.com/clearfeed/mediascope/pkg/storage"
)

// Options configures a Tracker. Zero values get sensible defaults; Store
// may be nil for a memory-only instance (tests, dry runs).
type Options struct {
	Store    *storage.Store
	Clock    func() time.Time
	Log      *logrus.Logger
	Password string // unlocks an encrypted snapshot during Hydrate
}

// Tracker holds all mutable state behind one mutex. Handlers never touch
// package-level state; parallel test instances are fine.
type Tracker struct {
	mu    sync.Mutex
	state *storage.State

	history *echo.History
	debt    *echo.Debt
	alerter *echo.Alerter
	meter   *load.Meter

	store    *storage.Store
	clock    func() time.Time
	log      *logrus.Logger
	password string
}

// New builds a tracker with default state. Call Hydrate to load the
// persisted snapshot.
func New(opts Options) *Tracker {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	log := opts.Log
	if log == nil {
		log = utils.Log
	}
	return &Tracker{
		state:    storage.DefaultState(clock()),
		history:  echo.NewHistory(clock),
		debt:     echo.NewDebt(clock),
		alerter:  echo.NewAlerter(0, clock),
		meter:    load.NewMeter(clock),
		store:    opts.Store,
		clock:    clock,
		log:      log,
		password: opts.Password,
	}
}

// Hydrate loads the persisted snapshot. Missing or unreadable snapshots
// fall back to the in-memory defaults: a data-load failure means an empty
// tracker, never a dead one. The bias history is intentionally not
// rehydrated; it models recent browsing only.
func (t *Tracker) Hydrate(ctx context.Context) error {
	if t.store == nil {
		return nil
	}
	st, err := t.store.LoadState(ctx, t.password)
	switch {
	case errors.Is(err, storage.ErrNoSnapshot):
		t.log.Debug("no snapshot, starting fresh")
		return nil
	case errors.Is(err, storage.ErrEncrypted), errors.Is(err, storage.ErrBadPassword):
		return err // the caller must supply the right password
	case err != nil:
		t.log.Warnf("snapshot load failed, starting fresh: %v", err)
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = st
	t.meter.Restore(st.UserData.CredibilityLoad, time.UnixMilli(st.UserData.LoadUpdatedAt))
	t.alerter.SetCooldown(time.Duration(st.UserData.Settings.AlertCooldownMinutes) * time.Minute)
	if t.password != "" {
		// Keep subsequent saves encrypted with the same password.
		t.store.SetPassword(t.password)
	}
	t.log.Infof("hydrated %d week(s) of data", len(st.UserData.WeeklyData))
	return nil
}

// persistLocked writes the full snapshot. Save errors are logged and
// dropped; durability is best-effort by design.
func (t *Tracker) persistLocked(ctx context.Context) {
	if t.store == nil {
		return
	}
	t.state.UserData.CredibilityLoad = t.meter.Load
	t.state.UserData.LoadUpdatedAt = t.meter.LastUpdated.UnixMilli()
	if err := t.store.SaveState(ctx, t.state); err != nil {
		t.log.Errorf("snapshot save failed: %v", err)
	}
}

// snapshotLocked returns a deep copy of the state via the storage codec,
// so callers can marshal it without holding the lock.
func (t *Tracker) snapshotLocked() *storage.State {
	raw, err := storage.Encode(t.state)
	if err != nil {
		t.log.Errorf("snapshot encode failed: %v", err)
		return storage.DefaultState(t.clock())
	}
	copy, err := storage.Decode(raw)
	if err != nil {
		t.log.Errorf("snapshot decode failed: %v", err)
		return storage.DefaultState(t.clock())
	}
	return copy
}

// Snapshot returns a deep copy of the full persisted state.
func (t *Tracker) Snapshot() *storage.State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

// IsTracking reports whether visits are currently recorded.
func (t *Tracker) IsTracking() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.IsTracking
}

// ToggleTracking flips tracking and returns the new value.
func (t *Tracker) ToggleTracking(ctx context.Context) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.IsTracking = !t.state.IsTracking
	t.persistLocked(ctx)
	return t.state.IsTracking
}

// ClearAll resets every piece of state to defaults, including the
// in-memory bias history, and drops the snapshot.
func (t *Tracker) ClearAll(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = storage.DefaultState(t.clock())
	t.history.Reset()
	t.debt.Clear()
	t.alerter.Reset()
	t.meter.Reset()
	if t.store != nil {
		if err := t.store.Clear(ctx); err != nil {
			t.log.Errorf("snapshot clear failed: %v", err)
		}
	}
}

// EnableEncryption turns on the at-rest encryption transform and rewrites
// the snapshot.
func (t *Tracker) EnableEncryption(ctx context.Context, password string) error {
	if len(password) < storage.MinPasswordLength {
		return storage.ErrPasswordTooShort
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.store == nil {
		return errors.New("tracker: no storage configured")
	}
	t.store.SetPassword(password)
	t.password = password
	t.persistLocked(ctx)
	return nil
}

// DisableEncryption turns the transform off and rewrites the snapshot in
// plaintext.
func (t *Tracker) DisableEncryption(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.store == nil {
		return errors.New("tracker: no storage configured")
	}
	t.store.SetPassword("")
	t.password = ""
	t.persistLocked(ctx)
	return nil
}

// EncryptionEnabled reports whether saves are encrypted.
func (t *Tracker) EncryptionEnabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store != nil && t.store.EncryptionEnabled()
}

// currentBucketLocked returns (key, bucket) for the week containing now,
// creating the bucket lazily when create is set.
func (t *Tracker) currentBucketLocked(now time.Time, create bool) (string, *diet.WeekBucket) {
	key := diet.WeekKeyOf(now)
	b := t.state.UserData.WeeklyData[key]
	if b == nil && create {
		b = diet.NewWeekBucket()
		t.state.UserData.WeeklyData[key] = b
	}
	return key, b
}
