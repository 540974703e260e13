package scheduler

import (
	"context"
	"log"
	"time"

	"app/forecast"
)

// Scheduler runs the full prediction sweep once a day at a fixed local time.
// It lives for the whole process; failures are logged and never propagate.
type Scheduler struct {
	service *forecast.Service
	hour    int
	minute  int
}

func New(service *forecast.Service, hour, minute int) *Scheduler {
	return &Scheduler{service: service, hour: hour, minute: minute}
}

// Start launches the scheduling loop in its own goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	log.Printf("[cron] prediction scheduler initialized, runs daily at %02d:%02d", s.hour, s.minute)
	go s.run(ctx)
}

func (s *Scheduler) run(ctx context.Context) {
	for {
		next := nextRun(time.Now(), s.hour, s.minute)
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		s.runOnce(ctx)
	}
}

// runOnce executes one sweep. A panic in the sweep must not take down the
// host process.
func (s *Scheduler) runOnce(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[cron] prediction sweep panicked: %v", r)
		}
	}()

	start := time.Now()
	log.Printf("[cron] starting daily prediction sweep")

	summary, err := s.service.ComputeAll(ctx)
	if err != nil {
		log.Printf("[cron] prediction sweep failed: %v", err)
		return
	}

	log.Printf("[cron] prediction sweep finished in %s: %d products, %d successful, %d failed",
		time.Since(start).Round(time.Millisecond), summary.TotalProducts, summary.Successful, summary.Failed)
	for _, e := range summary.Errors {
		log.Printf("[cron] failed %s (%s): %s", e.ProductName, e.ProductID, e.Error)
	}
}

// nextRun returns the next occurrence of hour:minute strictly after now.
func nextRun(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
