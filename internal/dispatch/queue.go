package dispatch

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"salespipeline/internal/models"
	"salespipeline/internal/notify"
	"salespipeline/internal/repositories"
)

// QueueWorker persists orders as pending work orders. Critical orders are
// also announced through the notifier.
type QueueWorker struct {
	repo     repositories.WorkOrderRepository
	notifier notify.Notifier
	newID    func() string
}

func NewQueueWorker(repo repositories.WorkOrderRepository, notifier notify.Notifier) *QueueWorker {
	return &QueueWorker{repo: repo, notifier: notifier, newID: uuid.NewString}
}

func (w *QueueWorker) Handle(ctx context.Context, o Order) error {
	wo := &models.WorkOrder{
		DispatchID: w.newID(),
		LeadID:     o.LeadID,
		Specialist: o.Specialist,
		Action:     o.Action,
		Priority:   o.Priority,
		Reason:     o.Reason,
		LeadData:   string(o.LeadData),
		Status:     models.WorkOrderPending,
	}
	if err := w.repo.Store(ctx, wo); err != nil {
		return fmt.Errorf("queue work order: %w", err)
	}
	log.Printf("[dispatch][queued] id=%d dispatch=%s lead=%s specialist=%s priority=%s",
		wo.ID, wo.DispatchID, wo.LeadID, wo.Specialist, wo.Priority)

	if o.Priority != models.PriorityCritical || w.notifier == nil {
		return nil
	}
	msg := notify.Message{
		Subject: fmt.Sprintf("Critical work for %s: lead %s", o.Specialist, o.LeadID),
		Body:    fmt.Sprintf("%s\nReason: %s\nWork order #%d (%s)", o.Action, o.Reason, wo.ID, wo.DispatchID),
	}
	// The order is already queued; a failed alert is logged, not returned.
	if err := w.notifier.Notify(ctx, msg); err != nil {
		log.Printf("[dispatch][notify][err] work_order=%d: %v", wo.ID, err)
	}
	return nil
}
