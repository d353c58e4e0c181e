package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"salespipeline/internal/models"
)

func TestExecute_RequiresSnapshot(t *testing.T) {
	o := newTestOrchestrator(t)
	for _, a := range []Action{ActionEvaluateTransition, ActionGetStatus, ActionCheckReadiness, ActionGetRecommendations} {
		t.Run(string(a), func(t *testing.T) {
			resp := o.Execute(context.Background(), ActionRequest{Action: a})
			if resp.Status != StatusError {
				t.Fatalf("status = %q, want error", resp.Status)
			}
			if len(resp.Errors) != 1 || resp.Errors[0] != "snapshot is required" {
				t.Errorf("errors = %v", resp.Errors)
			}
			if resp.Data != nil {
				t.Errorf("no data expected, got %v", resp.Data)
			}
		})
	}
}

func TestExecute_Actions(t *testing.T) {
	o := newTestOrchestrator(t)
	snap := &models.LeadSnapshot{
		LeadID:         "lead-7",
		CurrentStage:   models.StageIntelligence,
		BANT:           bant(65),
		Intelligence:   threeFlags(),
		StageEnteredAt: daysAgo(2),
	}
	ctx := context.Background()

	resp := o.Execute(ctx, ActionRequest{Action: ActionEvaluateTransition, Snapshot: snap})
	res, isResult := resp.Data.(*models.TransitionResult)
	if resp.Status != StatusOK || !isResult || !res.CanTransition {
		t.Fatalf("evaluate = %+v", resp)
	}

	resp = o.Execute(ctx, ActionRequest{Action: ActionGetStatus, Snapshot: snap})
	if _, isStatus := resp.Data.(*models.StatusReport); !isStatus {
		t.Errorf("status data = %T", resp.Data)
	}

	resp = o.Execute(ctx, ActionRequest{Action: ActionCheckReadiness, Snapshot: snap})
	if _, isReadiness := resp.Data.(*models.ReadinessReport); !isReadiness {
		t.Errorf("readiness data = %T", resp.Data)
	}

	resp = o.Execute(ctx, ActionRequest{Action: ActionGetRecommendations, Snapshot: snap})
	if _, isList := resp.Data.([]string); !isList {
		t.Errorf("recommendations data = %T", resp.Data)
	}
}

func TestExecute_MalformedSignalsStillEvaluate(t *testing.T) {
	o := newTestOrchestrator(t)
	body := `{
		"action": "EvaluateTransition",
		"snapshot": {
			"lead_id": "lead-odd",
			"current_stage": "intelligence",
			"bant": {"budget": 12.5, "authority": "7.5", "need": "unknown"},
			"engagement": {"demo_requests": "1"}
		}
	}`
	var req ActionRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("decode request: %v", err)
	}

	resp := o.Execute(context.Background(), req)
	res, isResult := resp.Data.(*models.TransitionResult)
	if resp.Status != StatusOK || !isResult {
		t.Fatalf("response = %+v", resp)
	}
	if res.BANTScore != 20 {
		t.Errorf("bant score = %g, want 20", res.BANTScore)
	}
	// the string demo counter still triggers the demo override
	if !res.CanTransition || res.TargetStage == nil || *res.TargetStage != models.StageOutreach {
		t.Errorf("target = %v, want outreach", res.TargetStage)
	}
	if len(res.Warnings) == 0 || !strings.Contains(res.Warnings[0], "bant.need") {
		t.Errorf("warnings = %v, want the unreadable field named first", res.Warnings)
	}
}

func TestExecute_Batch(t *testing.T) {
	o := newTestOrchestrator(t)
	ctx := context.Background()

	resp := o.Execute(ctx, ActionRequest{Action: ActionBatchEvaluate})
	if resp.Status != StatusError || resp.Errors[0] != "snapshots is required" {
		t.Fatalf("empty batch = %+v", resp)
	}

	resp = o.Execute(ctx, ActionRequest{
		Action:    ActionBatchEvaluate,
		Snapshots: []*models.LeadSnapshot{{LeadID: "a"}, nil, {LeadID: "c"}},
	})
	out, isBatch := resp.Data.(BatchResult)
	if resp.Status != StatusOK || !isBatch {
		t.Fatalf("batch = %+v", resp)
	}
	if out.Evaluated != 2 || out.Failed != 1 || out.Items[1].Error == "" {
		t.Errorf("batch result = %+v", out)
	}
}

func TestExecute_Validate(t *testing.T) {
	o := newTestOrchestrator(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		req       ActionRequest
		wantOK    bool
		wantValid bool
	}{
		{name: "valid", req: ActionRequest{From: "Intelligence", To: "outreach"}, wantOK: true, wantValid: true},
		{name: "invalid edge", req: ActionRequest{From: "discovery", To: "outreach"}, wantOK: true},
		{name: "missing fields", req: ActionRequest{}},
		{name: "unknown stage", req: ActionRequest{From: "discovery", To: "won"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Action = ActionValidateTransition
			resp := o.Execute(ctx, tt.req)
			if (resp.Status == StatusOK) != tt.wantOK {
				t.Fatalf("status = %q errors = %v", resp.Status, resp.Errors)
			}
			if !tt.wantOK {
				return
			}
			check := resp.Data.(TransitionCheck)
			if check.Valid != tt.wantValid {
				t.Errorf("valid = %v, reason %q", check.Valid, check.Reason)
			}
			if !check.Valid && check.Reason == "" {
				t.Error("an invalid move needs a reason")
			}
		})
	}

	resp := o.Execute(ctx, ActionRequest{})
	if resp.Status != StatusError || resp.Errors[0] != "action is required" {
		t.Errorf("empty action = %+v", resp)
	}
	resp = o.Execute(ctx, ActionRequest{Action: "Teleport"})
	if resp.Status != StatusError {
		t.Errorf("unknown action = %+v", resp)
	}
}
