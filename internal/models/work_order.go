// internal/models/work_order.go
package models

import "time"

// WorkOrderStatus is the lifecycle state of a dispatched delegation.
type WorkOrderStatus string

const (
	WorkOrderPending    WorkOrderStatus = "pending"
	WorkOrderInProgress WorkOrderStatus = "in_progress"
	WorkOrderDone       WorkOrderStatus = "done"
	WorkOrderFailed     WorkOrderStatus = "failed"
)

// WorkOrderTransitions lists the allowed status moves.
var WorkOrderTransitions = map[WorkOrderStatus]map[WorkOrderStatus]bool{
	WorkOrderPending:    {WorkOrderInProgress: true, WorkOrderFailed: true},
	WorkOrderInProgress: {WorkOrderDone: true, WorkOrderFailed: true},
	WorkOrderDone:       {},
	WorkOrderFailed:     {WorkOrderPending: true},
}

// WorkOrder is a delegation queued for a specialist.
type WorkOrder struct {
	ID         int64           `json:"id"`
	DispatchID string          `json:"dispatch_id"`
	LeadID     string          `json:"lead_id"`
	Specialist Specialist      `json:"specialist"`
	Action     string          `json:"action"`
	Priority   Priority        `json:"priority"`
	Reason     string          `json:"reason"`
	LeadData   string          `json:"lead_data"` // JSON snapshot handed to the specialist
	Status     WorkOrderStatus `json:"status"`
	LastError  *string         `json:"last_error,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// WorkOrderFilter defines the available parameters for filtering work orders.
type WorkOrderFilter struct {
	LeadID     *string
	Specialist *Specialist
	Status     *WorkOrderStatus
	Limit      int
}
