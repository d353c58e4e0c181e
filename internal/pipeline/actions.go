package pipeline

import (
	"context"
	"errors"
	"strings"

	"salespipeline/internal/models"
)

// Action names an operation of the request envelope.
type Action string

const (
	ActionEvaluateTransition Action = "EvaluateTransition"
	ActionGetStatus          Action = "GetStatus"
	ActionCheckReadiness     Action = "CheckReadiness"
	ActionGetRecommendations Action = "GetRecommendations"
	ActionBatchEvaluate      Action = "BatchEvaluate"
	ActionValidateTransition Action = "ValidateTransition"
)

// ActionRequest is the envelope every surface decodes. Which fields are
// required depends on the action.
type ActionRequest struct {
	Action       Action                 `json:"action"`
	LeadID       string                 `json:"lead_id,omitempty"`
	CurrentStage models.Stage           `json:"current_stage,omitempty"`
	Snapshot     *models.LeadSnapshot   `json:"snapshot,omitempty"`
	Snapshots    []*models.LeadSnapshot `json:"snapshots,omitempty"`
	From         models.Stage           `json:"from,omitempty"`
	To           models.Stage           `json:"to,omitempty"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// ActionResponse carries either data or a list of human-readable errors.
type ActionResponse struct {
	Status string   `json:"status"`
	Data   any      `json:"data,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

// TransitionCheck answers ValidateTransition.
type TransitionCheck struct {
	From         models.Stage   `json:"from"`
	To           models.Stage   `json:"to"`
	Valid        bool           `json:"valid"`
	ValidTargets []models.Stage `json:"valid_targets"`
	Reason       string         `json:"reason,omitempty"`
}

// BatchResult answers BatchEvaluate.
type BatchResult struct {
	Items     []models.BatchItem `json:"items"`
	Evaluated int                `json:"evaluated"`
	Failed    int                `json:"failed"`
}

func failure(msgs ...string) ActionResponse {
	return ActionResponse{Status: StatusError, Errors: msgs}
}

func success(data any) ActionResponse {
	return ActionResponse{Status: StatusOK, Data: data}
}

// Execute runs one envelope. Input problems come back as an error response,
// never as a Go error.
func (o *Orchestrator) Execute(ctx context.Context, req ActionRequest) ActionResponse {
	switch req.Action {
	case ActionEvaluateTransition, ActionGetStatus, ActionCheckReadiness, ActionGetRecommendations:
		if req.Snapshot == nil {
			return failure(ErrSnapshotRequired.Error())
		}
	}

	switch req.Action {
	case ActionEvaluateTransition:
		res, err := o.EvaluateTransition(req.LeadID, req.CurrentStage, req.Snapshot)
		return respond(res, err)
	case ActionGetStatus:
		res, err := o.GetStatus(req.Snapshot)
		return respond(res, err)
	case ActionCheckReadiness:
		res, err := o.CheckReadiness(req.Snapshot)
		return respond(res, err)
	case ActionGetRecommendations:
		res, err := o.GetRecommendations(req.Snapshot)
		return respond(res, err)
	case ActionBatchEvaluate:
		return o.executeBatch(ctx, req)
	case ActionValidateTransition:
		return o.executeValidate(req)
	case "":
		return failure("action is required")
	default:
		return failure("unknown action " + string(req.Action))
	}
}

func respond(data any, err error) ActionResponse {
	if err != nil {
		return failure(err.Error())
	}
	return success(data)
}

func (o *Orchestrator) executeBatch(ctx context.Context, req ActionRequest) ActionResponse {
	snaps := req.Snapshots
	if len(snaps) == 0 && req.Snapshot != nil {
		snaps = []*models.LeadSnapshot{req.Snapshot}
	}
	if len(snaps) == 0 {
		return failure("snapshots is required")
	}
	items, err := o.BatchEvaluate(ctx, snaps)
	if err != nil {
		return failure(err.Error())
	}
	out := BatchResult{Items: items}
	for _, it := range items {
		if it.Error != "" {
			out.Failed++
		} else {
			out.Evaluated++
		}
	}
	return success(out)
}

func (o *Orchestrator) executeValidate(req ActionRequest) ActionResponse {
	var missing []string
	if req.From == "" {
		missing = append(missing, "from is required")
	}
	if req.To == "" {
		missing = append(missing, "to is required")
	}
	if len(missing) > 0 {
		return failure(missing...)
	}

	from, errFrom := models.ParseStage(string(req.From))
	to, errTo := models.ParseStage(string(req.To))
	if err := errors.Join(errFrom, errTo); err != nil {
		return failure(strings.Split(err.Error(), "\n")...)
	}
	check := TransitionCheck{From: from, To: to, ValidTargets: ValidTargets(from), Valid: true}
	if err := o.ValidateTransition(from, to); err != nil {
		check.Valid = false
		check.Reason = err.Error()
	}
	return success(check)
}
