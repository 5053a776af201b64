// Package schedule runs replication units periodically for serve mode.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Unit is one periodic job. Passes of the same unit never overlap.
//
// A unit with a Cron expression runs on that schedule; otherwise it runs
// once at start and then every Interval.
type Unit struct {
	Name     string
	Interval time.Duration
	Cron     string
	Run      func(ctx context.Context) error
}

// Enabled reports whether the unit has a schedule.
func (u Unit) Enabled() bool {
	return u.Cron != "" || u.Interval > 0
}

// Scheduler runs units on their own tickers or cron schedules.
type Scheduler struct {
	units  []Unit
	crons  map[string]cron.Schedule
	cron   *cron.Cron
	logger *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a scheduler for units. Units with neither a cron
// expression nor a positive interval are disabled. An invalid cron
// expression is an error.
func NewScheduler(units []Unit, logger *slog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		crons:  make(map[string]cron.Schedule),
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger: logger,
	}
	for _, u := range units {
		if !u.Enabled() {
			logger.Info("unit disabled", "unit", u.Name)
			continue
		}
		if u.Cron != "" {
			sched, err := cron.ParseStandard(u.Cron)
			if err != nil {
				return nil, fmt.Errorf("unit %s: parse cron %q: %w", u.Name, u.Cron, err)
			}
			s.crons[u.Name] = sched
		}
		s.units = append(s.units, u)
	}
	return s, nil
}

// Units returns the names of the enabled units.
func (s *Scheduler) Units() []string {
	names := make([]string, len(s.units))
	for i, u := range s.units {
		names[i] = u.Name
	}
	return names
}

// Start begins periodic runs. Interval units run once immediately, then on
// each tick. Cron units wait for their first scheduled time.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for _, u := range s.units {
		if sched, ok := s.crons[u.Name]; ok {
			s.cron.Schedule(sched, cron.FuncJob(func() { s.runOnce(ctx, u) }))
			continue
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.loop(ctx, u)
		}()
	}
	if len(s.crons) > 0 {
		s.cron.Start()
	}
}

// Stop cancels the scheduler and waits for in-flight passes to finish.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	<-s.cron.Stop().Done()
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, u Unit) {
	// Run once immediately at startup.
	s.runOnce(ctx, u)

	ticker := time.NewTicker(u.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx, u)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, u Unit) {
	start := time.Now()
	if err := u.Run(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Error("scheduled pass failed", "unit", u.Name, "err", err)
		return
	}
	s.logger.Debug("scheduled pass completed", "unit", u.Name, "duration", time.Since(start))
}
