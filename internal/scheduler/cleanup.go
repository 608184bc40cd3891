// Package scheduler runs the periodic catalog maintenance sweep.
package scheduler

import (
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"
)

// AuthorPurger removes soft-deleted authors that no longer own any books.
type AuthorPurger interface {
	PurgeSoftDeleted() (int64, error)
}

// CleanupScheduler periodically purges soft-deleted authors whose last book
// has been removed since the soft delete.
type CleanupScheduler struct {
	purger   AuthorPurger
	schedule string

	cron      *cron.Cron
	mu        sync.Mutex
	isRunning bool
}

func NewCleanupScheduler(purger AuthorPurger, schedule string) *CleanupScheduler {
	return &CleanupScheduler{
		purger:   purger,
		schedule: schedule,
		cron:     cron.New(),
	}
}

// Start schedules the sweep. Calling Start on a running scheduler is a
// no-op.
func (s *CleanupScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.runSweep); err != nil {
		return fmt.Errorf("failed to schedule cleanup job with schedule '%s': %w", s.schedule, err)
	}

	s.cron.Start()
	s.isRunning = true
	log.Printf("Author cleanup scheduler: started with schedule '%s'", s.schedule)
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *CleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false
	log.Printf("Author cleanup scheduler: stopped")
}

// RunNow triggers an immediate sweep, mainly for tests and manual
// maintenance.
func (s *CleanupScheduler) RunNow() {
	s.runSweep()
}

func (s *CleanupScheduler) runSweep() {
	purged, err := s.purger.PurgeSoftDeleted()
	if err != nil {
		log.Printf("Author cleanup: sweep failed: %v", err)
		return
	}
	if purged > 0 {
		log.Printf("Author cleanup: purged %d soft-deleted authors without books", purged)
	}
}
