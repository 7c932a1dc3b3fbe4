package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/studydesk/studydesk/internal/services"
)

// CounterAuditor recounts the derived class counters and optionally repairs
// drift.
type CounterAuditor interface {
	AuditAll(repair bool) (*services.IntegrityReport, error)
}

// IntegrityAuditTask verifies that every class's documentCount/doneCount
// match the live document counts.
type IntegrityAuditTask struct {
	Repair bool `json:"repair"`
}

// Config returns the queue configuration for integrity audit tasks.
func (t IntegrityAuditTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "integrity_audit",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// IntegrityAuditProcessor creates a processor function for IntegrityAuditTask.
func IntegrityAuditProcessor(auditor CounterAuditor) backlite.QueueProcessor[IntegrityAuditTask] {
	return func(ctx context.Context, task IntegrityAuditTask) error {
		if auditor == nil {
			return fmt.Errorf("counter auditor not configured")
		}

		report, err := auditor.AuditAll(task.Repair)
		if err != nil {
			return fmt.Errorf("integrity audit: %w", err)
		}

		if len(report.Drifted) == 0 {
			log.Printf("[TASK] Integrity audit: %d classes checked, counters consistent", report.ClassesChecked)
		} else {
			log.Printf("[TASK] Integrity audit: %d classes checked, %d drifted (repair=%v)",
				report.ClassesChecked, len(report.Drifted), task.Repair)
		}
		return nil
	}
}

// NewIntegrityAuditQueue creates a backlite queue for integrity audit tasks.
func NewIntegrityAuditQueue(auditor CounterAuditor) backlite.Queue {
	return backlite.NewQueue(IntegrityAuditProcessor(auditor))
}
