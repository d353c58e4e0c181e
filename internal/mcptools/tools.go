// Package mcptools exposes the pipeline engine as MCP tools so agents can
// evaluate leads over stdio.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"salespipeline/internal/models"
	"salespipeline/internal/pipeline"
)

const snapshotHelp = "Lead snapshot as a JSON object: " +
	`{"lead_id":"42","current_stage":"intelligence","bant":{"budget":20,"authority":15,"need":20,"timeline":10},` +
	`"intelligence":{"has_scraper_data":true},"engagement":{"demo_requests":1},"stage_entered_at":"2026-03-01T09:00:00Z"}`

// ActionTool runs one pipeline action per call.
type ActionTool struct {
	engine      *pipeline.Orchestrator
	name        string
	description string
	action      pipeline.Action
}

func NewEvaluateTool(engine *pipeline.Orchestrator) *ActionTool {
	return &ActionTool{
		engine: engine,
		name:   "pipeline_evaluate",
		description: "Decide whether a lead can move to its next pipeline stage. " +
			"Returns the target stage, blockers, warnings, readiness, confidence and specialist delegations.",
		action: pipeline.ActionEvaluateTransition,
	}
}

func NewStatusTool(engine *pipeline.Orchestrator) *ActionTool {
	return &ActionTool{
		engine:      engine,
		name:        "pipeline_status",
		description: "Full lead status: every score, the stage clock, the transition evaluation and the prioritized checklist.",
		action:      pipeline.ActionGetStatus,
	}
}

func NewReadinessTool(engine *pipeline.Orchestrator) *ActionTool {
	return &ActionTool{
		engine:      engine,
		name:        "pipeline_readiness",
		description: "Readiness breakdown (BANT, intelligence, engagement, time) and whether the lead could move now.",
		action:      pipeline.ActionCheckReadiness,
	}
}

func NewRecommendationsTool(engine *pipeline.Orchestrator) *ActionTool {
	return &ActionTool{
		engine:      engine,
		name:        "pipeline_recommendations",
		description: "Stage-specific next steps for a lead, most urgent first.",
		action:      pipeline.ActionGetRecommendations,
	}
}

func NewBatchTool(engine *pipeline.Orchestrator) *ActionTool {
	return &ActionTool{
		engine:      engine,
		name:        "pipeline_batch_evaluate",
		description: "Evaluate many leads at once. Results keep the input order.",
		action:      pipeline.ActionBatchEvaluate,
	}
}

func NewValidateTool(engine *pipeline.Orchestrator) *ActionTool {
	return &ActionTool{
		engine:      engine,
		name:        "pipeline_validate_transition",
		description: "Check whether a manual stage move follows the pipeline graph and list the valid targets.",
		action:      pipeline.ActionValidateTransition,
	}
}

// Definition returns the MCP tool definition for registration.
func (t *ActionTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(t.description)}
	switch t.action {
	case pipeline.ActionValidateTransition:
		opts = append(opts,
			mcp.WithString("from", mcp.Required(), mcp.Description("Current stage, e.g. 'discovery'")),
			mcp.WithString("to", mcp.Required(), mcp.Description("Requested stage, e.g. 'qualified'")),
		)
	case pipeline.ActionBatchEvaluate:
		opts = append(opts,
			mcp.WithString("snapshots", mcp.Required(), mcp.Description("JSON array of lead snapshots. "+snapshotHelp)),
		)
	default:
		opts = append(opts, mcp.WithString("snapshot", mcp.Required(), mcp.Description(snapshotHelp)))
		if t.action == pipeline.ActionEvaluateTransition {
			opts = append(opts,
				mcp.WithString("lead_id", mcp.Description("Overrides the snapshot's lead_id")),
				mcp.WithString("current_stage", mcp.Description("Overrides the snapshot's current_stage")),
			)
		}
	}
	return mcp.NewTool(t.name, opts...)
}

// Handle decodes the arguments, runs the action and returns the data as
// indented JSON. Input problems are tool errors, not protocol errors.
func (t *ActionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	areq := pipeline.ActionRequest{Action: t.action}

	switch t.action {
	case pipeline.ActionValidateTransition:
		areq.From = models.Stage(req.GetString("from", ""))
		areq.To = models.Stage(req.GetString("to", ""))
	case pipeline.ActionBatchEvaluate:
		raw := strings.TrimSpace(req.GetString("snapshots", ""))
		if raw != "" {
			if err := json.Unmarshal([]byte(raw), &areq.Snapshots); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid snapshots JSON: %v", err)), nil
			}
		}
	default:
		raw := strings.TrimSpace(req.GetString("snapshot", ""))
		if raw != "" && raw != "null" {
			var snap models.LeadSnapshot
			if err := json.Unmarshal([]byte(raw), &snap); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid snapshot JSON: %v", err)), nil
			}
			areq.Snapshot = &snap
		}
		areq.LeadID = req.GetString("lead_id", "")
		areq.CurrentStage = models.Stage(req.GetString("current_stage", ""))
	}

	resp := t.engine.Execute(ctx, areq)
	if resp.Status != pipeline.StatusOK {
		return mcp.NewToolResultError(strings.Join(resp.Errors, "; ")), nil
	}
	out, err := json.MarshalIndent(resp.Data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding %s result: %w", t.name, err)
	}
	return mcp.NewToolResultText(string(out)), nil
}
