// Package scheduler runs the periodic integrity audit that verifies the
// derived class counters against live document counts.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/studydesk/studydesk/internal/services"
)

// Auditor is the integrity service the scheduler drives.
type Auditor interface {
	AuditAll(repair bool) (*services.IntegrityReport, error)
}

// Config controls the audit schedule.
type Config struct {
	Enabled  bool
	Schedule string // cron format, e.g. "0 * * * *" for hourly
	Repair   bool   // rewrite drifted counters instead of only reporting
}

// IntegrityScheduler periodically audits counter consistency.
type IntegrityScheduler struct {
	auditor Auditor
	config  Config

	cron       *cron.Cron
	mu         sync.Mutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewIntegrityScheduler creates a new scheduler instance.
func NewIntegrityScheduler(auditor Auditor, cfg Config) *IntegrityScheduler {
	return &IntegrityScheduler{
		auditor: auditor,
		config:  cfg,
		cron:    cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if the audit is enabled.
func (s *IntegrityScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.config.Enabled {
		log.Printf("Integrity audit scheduler: disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.config.Schedule, s.runAudit); err != nil {
		return fmt.Errorf("invalid audit schedule '%s': %w", s.config.Schedule, err)
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Integrity audit scheduler: started with schedule '%s' (repair=%v)",
		s.config.Schedule, s.config.Repair)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running audit to finish.
func (s *IntegrityScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Integrity audit scheduler: stopped")
}

func (s *IntegrityScheduler) runAudit() {
	report, err := s.auditor.AuditAll(s.config.Repair)
	if err != nil {
		log.Printf("Integrity audit scheduler: audit failed: %v", err)
		return
	}
	if len(report.Drifted) == 0 {
		log.Printf("Integrity audit scheduler: %d classes checked, counters consistent", report.ClassesChecked)
	}
}
