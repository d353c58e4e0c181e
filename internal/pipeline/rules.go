package pipeline

import (
	"fmt"
	"strings"
	"time"

	"salespipeline/internal/models"
)

// Signals is everything the rule engine needs about one lead, already scored.
type Signals struct {
	LeadID           string
	Stage            models.Stage
	BANT             models.BANTScore
	Intelligence     models.IntelligenceStatus
	Engagement       models.EngagementSignals
	Time             models.StageTime
	Readiness        models.ReadinessBreakdown
	ClosingConfirmed bool
	Now              time.Time
}

type metric int

const (
	metricBANT metric = iota
	metricReadiness
)

func (m metric) String() string {
	if m == metricReadiness {
		return "readiness"
	}
	return "BANT score"
}

// gate is a single score threshold guarding a generic edge.
type gate struct {
	target    models.Stage
	metric    metric
	threshold float64
}

// RuleEngine decides the candidate target stage and collects blockers.
type RuleEngine struct {
	policy Policy
	gates  map[models.Stage]gate
}

func NewRuleEngine(p Policy) *RuleEngine {
	return &RuleEngine{
		policy: p,
		gates: map[models.Stage]gate{
			models.StageDiscovery: {target: models.StageQualified, metric: metricBANT, threshold: float64(p.QualifyBANT)},
			models.StageQualified: {target: models.StageIntelligence, metric: metricBANT, threshold: float64(p.IntelligenceBANT)},
			models.StageOutreach:  {target: models.StageNegotiation, metric: metricReadiness, threshold: p.NegotiationReadiness},
		},
	}
}

// Evaluate runs the stage rules, the clock warnings and the demo override,
// in that order.
func (e *RuleEngine) Evaluate(sig Signals) *models.TransitionResult {
	res := &models.TransitionResult{
		LeadID:             sig.LeadID,
		CurrentStage:       sig.Stage,
		ReadinessScore:     sig.Readiness.Score,
		BANTScore:          sig.BANT.Total,
		Blockers:           []string{},
		Warnings:           []string{},
		RecommendedActions: []string{},
		Delegations:        []models.DelegationRecommendation{},
		EvaluatedAt:        sig.Now,
	}

	var target *models.Stage
	switch sig.Stage {
	case models.StageClosed:
		res.Warnings = append(res.Warnings, "Lead is closed; no further transitions are possible")
	case models.StageIntelligence:
		target = e.outreachGate(sig, res)
	case models.StageNegotiation:
		target = e.closingGate(sig, res)
	default:
		target = e.thresholdGate(sig, res)
	}

	e.clockWarnings(sig, res)

	if target != nil && !CanTransition(sig.Stage, *target) {
		res.Warnings = append(res.Warnings, fmt.Sprintf("Rejected candidate %s -> %s: not an edge of the stage graph", sig.Stage, *target))
		target = nil
	}

	target = e.applyDemoOverride(sig, res, target)

	res.TargetStage = target
	res.CanTransition = target != nil && len(res.Blockers) == 0
	res.Confidence = Confidence(sig.BANT.Total, sig.Readiness.Score, len(res.Blockers))
	return res
}

func (e *RuleEngine) thresholdGate(sig Signals, res *models.TransitionResult) *models.Stage {
	g, ok := e.gates[sig.Stage]
	if !ok {
		return nil
	}
	value := sig.BANT.Total
	if g.metric == metricReadiness {
		value = sig.Readiness.Score
	}
	if value >= g.threshold {
		return models.StagePtr(g.target)
	}

	res.Blockers = append(res.Blockers,
		fmt.Sprintf("%s %.0f is below the %s threshold of %.0f", g.metric, value, g.target, g.threshold))
	switch g.metric {
	case metricBANT:
		res.RecommendedActions = append(res.RecommendedActions,
			fmt.Sprintf("Continue qualification: raise BANT from %g to %.0f", sig.BANT.Total, g.threshold))
		res.Delegations = appendDelegation(res.Delegations, qualifierDelegation(sig.BANT.Total, g.threshold))
	case metricReadiness:
		res.RecommendedActions = append(res.RecommendedActions,
			fmt.Sprintf("Increase engagement: readiness %.0f of %.0f needed for %s", value, g.threshold, g.target))
	}
	return nil
}

// outreachGate guards intelligence -> outreach. Every failed requirement
// adds its own blocker; the upper time bound is advisory only.
func (e *RuleEngine) outreachGate(sig Signals, res *models.TransitionResult) *models.Stage {
	p := e.policy
	w := p.Window(models.StageIntelligence)

	if outreach := float64(p.OutreachBANT); sig.BANT.Total < outreach {
		res.Blockers = append(res.Blockers,
			fmt.Sprintf("BANT score %g is below the outreach threshold of %d", sig.BANT.Total, p.OutreachBANT))
		res.RecommendedActions = append(res.RecommendedActions,
			fmt.Sprintf("Re-qualify the lead: BANT needs %g more points before outreach", outreach-sig.BANT.Total))
		res.Delegations = appendDelegation(res.Delegations, qualifierDelegation(sig.BANT.Total, outreach))
	}

	if sig.Intelligence.Completeness < p.OutreachCompleteness {
		missing := strings.Join(sig.Intelligence.Missing, ", ")
		res.Blockers = append(res.Blockers,
			fmt.Sprintf("Intelligence completeness %d%% is below the required %d%% (missing: %s)",
				sig.Intelligence.Completeness, p.OutreachCompleteness, missing))
		res.RecommendedActions = append(res.RecommendedActions, "Complete lead research: "+missing)
	}

	if sig.Time.ElapsedDays < w.MinDays {
		res.Blockers = append(res.Blockers,
			fmt.Sprintf("Lead has been in intelligence for %.1f days; the minimum is %g", sig.Time.ElapsedDays, w.MinDays))
		res.RecommendedActions = append(res.RecommendedActions,
			fmt.Sprintf("Hold the lead in intelligence for at least %g day(s) before outreach", w.MinDays))
	}

	if w.MaxDays > 0 && sig.Time.ElapsedDays > w.MaxDays {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("Lead has been in intelligence for %.1f days, exceeding the %g-day limit", sig.Time.ElapsedDays, w.MaxDays))
		if sig.BANT.Total >= float64(p.EscalationBANT) {
			res.RecommendedActions = append(res.RecommendedActions,
				fmt.Sprintf("Escalate for manual review: BANT %g is strong but the lead has stalled in intelligence", sig.BANT.Total))
		} else {
			res.RecommendedActions = append(res.RecommendedActions,
				fmt.Sprintf("Consider disqualifying: BANT %g is weak and the lead has stalled in intelligence", sig.BANT.Total))
		}
	}

	if len(res.Blockers) > 0 {
		return nil
	}
	return models.StagePtr(models.StageOutreach)
}

// closingGate always proposes closed from negotiation; the move itself
// waits for a manual outcome confirmation.
func (e *RuleEngine) closingGate(sig Signals, res *models.TransitionResult) *models.Stage {
	if !sig.ClosingConfirmed {
		res.Blockers = append(res.Blockers, "Closing outcome has not been confirmed")
		res.RecommendedActions = append(res.RecommendedActions, "Confirm the deal outcome with the account owner")
	}
	return models.StagePtr(models.StageClosed)
}

func (e *RuleEngine) clockWarnings(sig Signals, res *models.TransitionResult) {
	if sig.Stage.IsTerminal() {
		return
	}
	t := sig.Time
	if t.ApproachingTimeout {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("Approaching %s timeout: %.1f of %g days elapsed", sig.Stage, t.ElapsedDays, t.TimeoutThresholdDays))
	}
	// intelligence reports its own overstay in outreachGate
	if t.Exceeded && sig.Stage != models.StageIntelligence {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("Lead exceeded the %g-day %s window (%.1f days)", t.TimeoutThresholdDays, sig.Stage, t.ElapsedDays))
	}
}

// applyDemoOverride forces the configured edge when the lead asked for a
// demo. It only fires when the rules chose no target.
func (e *RuleEngine) applyDemoOverride(sig Signals, res *models.TransitionResult, target *models.Stage) *models.Stage {
	o := e.policy.DemoOverride
	if !o.Enabled || !sig.Engagement.DemoRequested || sig.Stage != o.From || target != nil {
		return target
	}
	res.Blockers = []string{}
	res.Warnings = append(res.Warnings,
		fmt.Sprintf("Demo requested: %s -> %s forced, requirements bypassed", o.From, o.To))
	res.Delegations = prependDelegation(res.Delegations, models.DelegationRecommendation{
		Specialist: o.Specialist,
		Action:     "Begin outreach immediately and schedule the requested demo",
		Priority:   models.PriorityCritical,
		Reason:     fmt.Sprintf("Lead requested %d demo(s)", sig.Engagement.DemoRequests),
	})
	return models.StagePtr(o.To)
}

func qualifierDelegation(bant, threshold float64) models.DelegationRecommendation {
	return models.DelegationRecommendation{
		Specialist: models.SpecialistLeadQualifier,
		Action:     "Re-run BANT qualification and fill the missing criteria",
		Priority:   models.PriorityHigh,
		Reason:     fmt.Sprintf("BANT score %g is below %g", bant, threshold),
	}
}
