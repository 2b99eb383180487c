package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"swiftpos/internal/store"
)

// ErrDriveNotConnected is returned by TriggerManual when no cloud account is
// linked; a manual backup is then a no-op.
var ErrDriveNotConnected = errors.New("backup: google drive is not connected")

// Transport uploads a snapshot to the external backup target. The production
// wiring is a timed stub, real uploads are out of scope.
type Transport func(ctx context.Context, snapshot store.Envelope) error

// StubTransport simulates an upload that takes delay to complete.
func StubTransport(delay time.Duration) Transport {
	return func(ctx context.Context, _ store.Envelope) error {
		select {
		case <-time.After(delay):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Scheduler watches the engine for qualifying changes and debounces them
// into a single cloud sync: only the trailing change of a quiet window
// triggers an upload. Re-arming replaces the pending timer, and a change
// while backups are ineligible cancels it.
type Scheduler struct {
	engine   *Engine
	debounce time.Duration
	auto     Transport
	manual   Transport

	mu      sync.Mutex
	timer   *time.Timer
	syncing atomic.Int32 // uploads in flight; a bool would clear early when runs overlap
}

// NewScheduler wires a scheduler to the engine. The initial state load never
// arms it; only mutations after construction do.
func NewScheduler(e *Engine, debounce time.Duration, auto, manual Transport) *Scheduler {
	s := &Scheduler{
		engine:   e,
		debounce: debounce,
		auto:     auto,
		manual:   manual,
	}
	e.AttachScheduler(s)
	return s
}

// Notify records a state change. When backups are eligible (auto-backup on
// and drive connected) it arms the debounce timer, restarting it if one is
// already pending. When ineligible it cancels any pending timer, so flipping
// auto-backup off also drops the queued sync.
func (s *Scheduler) Notify(eligible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !eligible {
		if s.timer != nil {
			s.timer.Stop()
			s.timer = nil
		}
		return
	}
	if s.timer != nil {
		s.timer.Reset(s.debounce)
		return
	}
	s.timer = time.AfterFunc(s.debounce, s.runAuto)
}

// Stop cancels any pending automatic backup.
func (s *Scheduler) Stop() {
	s.Notify(false)
}

// Syncing reports whether an upload is in flight.
func (s *Scheduler) Syncing() bool {
	return s.syncing.Load() > 0
}

func (s *Scheduler) runAuto() {
	s.syncing.Add(1)
	defer s.syncing.Add(-1)

	logrus.Info("Change detected, starting auto backup")
	snapshot, err := s.engine.Export()
	if err != nil {
		logrus.WithError(err).Error("Auto backup: snapshot failed")
		return
	}
	if err := s.auto(context.Background(), snapshot); err != nil {
		logrus.WithError(err).Error("Auto backup: upload failed")
		return
	}
	now := time.Now()
	if err := s.engine.stampLastBackup(now); err != nil {
		logrus.WithError(err).Error("Auto backup: failed to record backup time")
		return
	}
	logrus.WithField("backup_time", now.Format(time.RFC3339)).Info("Auto backup completed")
}

// TriggerManual performs an on-demand sync. It only requires a connected
// drive; the auto-backup flag is irrelevant. The call is synchronous: when
// it returns nil the upload finished and the backup time is stamped.
func (s *Scheduler) TriggerManual(ctx context.Context) error {
	if !s.engine.Settings().GoogleDriveConnected {
		return ErrDriveNotConnected
	}

	s.syncing.Add(1)
	defer s.syncing.Add(-1)

	snapshot, err := s.engine.Export()
	if err != nil {
		return err
	}
	if err := s.manual(ctx, snapshot); err != nil {
		return err
	}
	now := time.Now()
	if err := s.engine.stampLastBackup(now); err != nil {
		return err
	}
	logrus.WithField("backup_time", now.Format(time.RFC3339)).Info("Manual backup completed")
	return nil
}
