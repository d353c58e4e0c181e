// Package pipeline decides whether a lead may move to its next stage.
//
// Everything here is a pure function of a caller-supplied snapshot and the
// current time. The package stores nothing and performs no I/O, so an
// Orchestrator can be shared by any number of goroutines.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"salespipeline/internal/models"
)

// Orchestrator is the public entry point of the engine.
type Orchestrator struct {
	policy  Policy
	rules   *RuleEngine
	planner Planner
	now     func() time.Time
}

type Option func(*Orchestrator)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// NewOrchestrator validates the policy and builds the engine around it.
func NewOrchestrator(p Policy, opts ...Option) (*Orchestrator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	o := &Orchestrator{
		policy:  p,
		rules:   NewRuleEngine(p),
		planner: NewPlanner(p),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

func (o *Orchestrator) Policy() Policy { return o.policy }

// EvaluateTransition scores the snapshot and decides the transition. An
// explicit stage wins over the snapshot's own stage.
func (o *Orchestrator) EvaluateTransition(leadID string, stage models.Stage, snap *models.LeadSnapshot) (*models.TransitionResult, error) {
	if snap == nil {
		return nil, ErrSnapshotRequired
	}
	sig, warns := o.signals(leadID, stage, snap, o.now())
	return o.evaluate(sig, warns), nil
}

// GetStatus returns the evaluation together with the scoring detail.
func (o *Orchestrator) GetStatus(snap *models.LeadSnapshot) (*models.StatusReport, error) {
	if snap == nil {
		return nil, ErrSnapshotRequired
	}
	sig, warns := o.signals("", "", snap, o.now())
	return &models.StatusReport{
		LeadID:          sig.LeadID,
		CurrentStage:    sig.Stage,
		BANT:            sig.BANT,
		Intelligence:    sig.Intelligence,
		Engagement:      sig.Engagement,
		StageTime:       sig.Time,
		Readiness:       sig.Readiness,
		Transition:      o.evaluate(sig, warns),
		Recommendations: o.recommend(sig),
		GeneratedAt:     sig.Now,
	}, nil
}

// CheckReadiness reports readiness and whether the lead could move now.
func (o *Orchestrator) CheckReadiness(snap *models.LeadSnapshot) (*models.ReadinessReport, error) {
	if snap == nil {
		return nil, ErrSnapshotRequired
	}
	sig, warns := o.signals("", "", snap, o.now())
	res := o.evaluate(sig, warns)
	return &models.ReadinessReport{
		LeadID:        sig.LeadID,
		CurrentStage:  sig.Stage,
		Readiness:     sig.Readiness,
		CanTransition: res.CanTransition,
		TargetStage:   res.TargetStage,
		Blockers:      res.Blockers,
		Confidence:    res.Confidence,
	}, nil
}

// GetRecommendations returns the stage checklist sorted by urgency.
func (o *Orchestrator) GetRecommendations(snap *models.LeadSnapshot) ([]string, error) {
	if snap == nil {
		return nil, ErrSnapshotRequired
	}
	sig, _ := o.signals("", "", snap, o.now())
	return o.recommend(sig), nil
}

// BatchEvaluate evaluates leads in parallel. Results keep the input order;
// a nil snapshot fails only its own item.
func (o *Orchestrator) BatchEvaluate(ctx context.Context, snaps []*models.LeadSnapshot) ([]models.BatchItem, error) {
	items := make([]models.BatchItem, len(snaps))
	now := o.now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.policy.BatchConcurrency)
	for i, snap := range snaps {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := models.BatchItem{Index: i}
			if snap == nil {
				item.Error = ErrSnapshotRequired.Error()
				items[i] = item
				return nil
			}
			sig, warns := o.signals("", "", snap, now)
			item.LeadID = sig.LeadID
			item.Result = o.evaluate(sig, warns)
			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return items, fmt.Errorf("batch evaluation: %w", err)
	}
	return items, nil
}

// ValidateTransition checks an explicit stage move against the graph.
func (o *Orchestrator) ValidateTransition(from, to models.Stage) error {
	return ValidateTransition(from, to)
}

func (o *Orchestrator) evaluate(sig Signals, inputWarnings []string) *models.TransitionResult {
	res := o.rules.Evaluate(sig)
	if len(inputWarnings) > 0 {
		res.Warnings = append(append([]string{}, inputWarnings...), res.Warnings...)
	}
	o.planner.Plan(sig, res)
	return res
}

// signals scores a snapshot. The returned warnings describe input problems
// that were tolerated: an unknown stage or fields that could not be read.
func (o *Orchestrator) signals(leadID string, stage models.Stage, snap *models.LeadSnapshot, now time.Time) (Signals, []string) {
	if leadID == "" {
		leadID = snap.LeadID
	}
	var warns []string
	resolved, warn := resolveStage(stage, snap.CurrentStage)
	if warn != "" {
		warns = append(warns, warn)
	}
	if len(snap.Unreadable) > 0 {
		warns = append(warns, "Unreadable input treated as empty: "+strings.Join(snap.Unreadable, ", "))
	}

	bant := ScoreBANT(snap.BANT)
	intel := AssessIntelligence(snap.Intelligence)
	eng := ScoreEngagement(snap.Engagement)
	clock := MeasureStageTime(snap.StageEnteredAt, now, o.policy.Window(resolved))

	return Signals{
		LeadID:           leadID,
		Stage:            resolved,
		BANT:             bant,
		Intelligence:     intel,
		Engagement:       eng,
		Time:             clock,
		Readiness:        CalculateReadiness(bant, intel, eng, clock),
		ClosingConfirmed: snap.ClosingConfirmed,
		Now:              now,
	}, warns
}

func resolveStage(explicit, fromSnapshot models.Stage) (models.Stage, string) {
	raw := explicit
	if raw == "" {
		raw = fromSnapshot
	}
	if raw == "" {
		return models.StageDiscovery, ""
	}
	st, err := models.ParseStage(string(raw))
	if err != nil {
		return models.StageDiscovery, fmt.Sprintf("Unknown stage %q, evaluated as %s", raw, models.StageDiscovery)
	}
	return st, ""
}
