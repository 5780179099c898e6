package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	log "github.com/sirupsen/logrus"
)

// PinRestorer re-fetches saved pins into map markers.
type PinRestorer interface {
	RestorePins(ctx context.Context) (int, error)
}

// Scheduler periodically refreshes the markers of saved pins.
type Scheduler struct {
	scheduler *gocron.Scheduler
	restorer  PinRestorer
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler.
func New(interval time.Duration, restorer PinRestorer) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		restorer:  restorer,
		interval:  interval,
		timeout:   30 * time.Second,
	}
}

// Start runs the refresh job immediately and then every interval.
func (s *Scheduler) Start() error {
	if s.restorer == nil {
		log.Info("scheduler: no pin restorer configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) run() {
	log.Debug("scheduler: restoring saved pins")

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := s.restorer.RestorePins(ctx)
	if err != nil {
		log.WithFields(log.Fields{"restored": n, "error": err}).Warn("scheduler: some saved pins could not be restored")
		return
	}
	log.WithField("restored", n).Debug("scheduler: saved pins restored")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
