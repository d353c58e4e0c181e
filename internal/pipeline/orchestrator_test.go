package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"salespipeline/internal/models"
)

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func newTestOrchestrator(t *testing.T) *Orchestrator {
	t.Helper()
	o, err := NewOrchestrator(DefaultPolicy(), WithClock(func() time.Time { return testNow }))
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}
	return o
}

func daysAgo(d float64) *time.Time {
	ts := testNow.Add(-time.Duration(d * 24 * float64(time.Hour)))
	return &ts
}

// bant builds an input whose clamped total equals total (0..100).
func bant(total int) *models.BANTInput {
	var parts [4]float64
	rest := float64(total)
	for i := range parts {
		parts[i] = min(25, rest)
		rest -= parts[i]
	}
	return &models.BANTInput{Budget: parts[0], Authority: parts[1], Need: parts[2], Timeline: parts[3]}
}

// threeFlags is 80% complete.
func threeFlags() *models.IntelligenceInput {
	return &models.IntelligenceInput{HasScraperData: true, HasCompetitorData: true, HasContactVerified: true}
}

func hasDelegation(res *models.TransitionResult, s models.Specialist, p models.Priority) bool {
	for _, d := range res.Delegations {
		if d.Specialist == s && d.Priority == p {
			return true
		}
	}
	return false
}

func containsText(list []string, sub string) bool {
	for _, s := range list {
		if strings.Contains(strings.ToLower(s), strings.ToLower(sub)) {
			return true
		}
	}
	return false
}

func assertConsistent(t *testing.T, res *models.TransitionResult) {
	t.Helper()
	want := res.TargetStage != nil && len(res.Blockers) == 0
	if res.CanTransition != want {
		t.Errorf("can_transition = %v, but target=%v blockers=%v", res.CanTransition, res.TargetStage, res.Blockers)
	}
	seen := map[models.Specialist]bool{}
	for _, d := range res.Delegations {
		if seen[d.Specialist] {
			t.Errorf("duplicate delegation for %s", d.Specialist)
		}
		seen[d.Specialist] = true
	}
}

func TestEvaluateTransition_MissingSnapshot(t *testing.T) {
	o := newTestOrchestrator(t)
	res, err := o.EvaluateTransition("lead-1", models.StageIntelligence, nil)
	if !errors.Is(err, ErrSnapshotRequired) {
		t.Fatalf("err = %v, want ErrSnapshotRequired", err)
	}
	if res != nil {
		t.Errorf("expected no partial result, got %+v", res)
	}
	if _, err := o.GetStatus(nil); !errors.Is(err, ErrSnapshotRequired) {
		t.Errorf("GetStatus err = %v", err)
	}
	if _, err := o.CheckReadiness(nil); !errors.Is(err, ErrSnapshotRequired) {
		t.Errorf("CheckReadiness err = %v", err)
	}
	if _, err := o.GetRecommendations(nil); !errors.Is(err, ErrSnapshotRequired) {
		t.Errorf("GetRecommendations err = %v", err)
	}
}

func TestEvaluateTransition_ReadyLead(t *testing.T) {
	o := newTestOrchestrator(t)
	snap := &models.LeadSnapshot{
		LeadID:         "lead-ready",
		BANT:           bant(65),
		Intelligence:   threeFlags(),
		StageEnteredAt: daysAgo(2),
	}

	res, err := o.EvaluateTransition("lead-ready", models.StageIntelligence, snap)
	if err != nil {
		t.Fatalf("EvaluateTransition: %v", err)
	}
	assertConsistent(t, res)
	if !res.CanTransition {
		t.Fatalf("expected transition, blockers = %v", res.Blockers)
	}
	if res.TargetStage == nil || *res.TargetStage != models.StageOutreach {
		t.Fatalf("target = %v, want outreach", res.TargetStage)
	}
	if len(res.Blockers) != 0 {
		t.Errorf("blockers = %v, want none", res.Blockers)
	}
	if !hasDelegation(res, models.SpecialistOutreachComposer, models.PriorityHigh) {
		t.Error("expected a high priority outreach delegation")
	}
	if !hasDelegation(res, models.SpecialistObjectionRebuttal, models.PriorityNormal) {
		t.Error("expected a normal priority positioning delegation")
	}
	if hasDelegation(res, models.SpecialistLeadQualifier, models.PriorityHigh) {
		t.Error("qualified lead should not be sent back to the qualifier")
	}
	if res.BANTScore != 65 {
		t.Errorf("bant score = %g, want 65", res.BANTScore)
	}
}

func TestEvaluateTransition_BANTBlocked(t *testing.T) {
	o := newTestOrchestrator(t)
	snap := &models.LeadSnapshot{
		BANT:           bant(40),
		Intelligence:   threeFlags(),
		StageEnteredAt: daysAgo(2),
	}

	res, err := o.EvaluateTransition("lead-blocked", models.StageIntelligence, snap)
	if err != nil {
		t.Fatalf("EvaluateTransition: %v", err)
	}
	assertConsistent(t, res)
	if res.CanTransition {
		t.Fatal("expected the transition to be blocked")
	}
	if res.TargetStage != nil {
		t.Errorf("target = %v, want none", *res.TargetStage)
	}
	if !containsText(res.Blockers, "below the outreach threshold of 60") {
		t.Errorf("blockers = %v, want a BANT threshold message", res.Blockers)
	}
	if len(res.Blockers) != 1 {
		t.Errorf("blockers = %v, want exactly one", res.Blockers)
	}
	if !hasDelegation(res, models.SpecialistLeadQualifier, models.PriorityHigh) {
		t.Errorf("delegations = %+v, want LEAD_QUALIFIER at high", res.Delegations)
	}
	if res.Confidence <= 0 || res.Confidence >= 1 {
		t.Errorf("confidence = %v, want a value strictly inside (0,1)", res.Confidence)
	}
}

func TestEvaluateTransition_OneBlockerPerFailedRequirement(t *testing.T) {
	o := newTestOrchestrator(t)
	snap := &models.LeadSnapshot{
		BANT:           bant(30),
		Intelligence:   &models.IntelligenceInput{HasScraperData: true},
		StageEnteredAt: daysAgo(0.25),
	}
	res, err := o.EvaluateTransition("lead-x", models.StageIntelligence, snap)
	if err != nil {
		t.Fatalf("EvaluateTransition: %v", err)
	}
	assertConsistent(t, res)
	if len(res.Blockers) != 3 {
		t.Fatalf("blockers = %v, want 3", res.Blockers)
	}
	if !containsText(res.Blockers, "missing: competitor_data, social_profiles, contact_verified") {
		t.Errorf("blockers = %v, want the missing flags listed", res.Blockers)
	}
	if !containsText(res.Blockers, "the minimum is 1") {
		t.Errorf("blockers = %v, want a minimum-time blocker", res.Blockers)
	}
	if len(res.RecommendedActions) < 3 {
		t.Errorf("recommended actions = %v, want one per blocker", res.RecommendedActions)
	}
}

func TestEvaluateTransition_DemoOverride(t *testing.T) {
	o := newTestOrchestrator(t)
	snap := &models.LeadSnapshot{
		BANT:           bant(10),
		Intelligence:   &models.IntelligenceInput{},
		Engagement:     &models.EngagementInput{DemoRequests: 1},
		StageEnteredAt: daysAgo(2),
	}

	res, err := o.EvaluateTransition("lead-demo", models.StageIntelligence, snap)
	if err != nil {
		t.Fatalf("EvaluateTransition: %v", err)
	}
	assertConsistent(t, res)
	if !res.CanTransition {
		t.Fatalf("expected forced transition, blockers = %v", res.Blockers)
	}
	if res.TargetStage == nil || *res.TargetStage != models.StageOutreach {
		t.Fatalf("target = %v, want outreach", res.TargetStage)
	}
	if len(res.Blockers) != 0 {
		t.Errorf("blockers = %v, want cleared", res.Blockers)
	}
	if len(res.Delegations) == 0 {
		t.Fatal("expected delegations")
	}
	first := res.Delegations[0]
	if first.Specialist != models.SpecialistOutreachComposer || first.Priority != models.PriorityCritical {
		t.Errorf("first delegation = %+v, want critical OUTREACH_COMPOSER", first)
	}
	if !hasDelegation(res, models.SpecialistLeadQualifier, models.PriorityHigh) {
		t.Error("low BANT should still be delegated to the qualifier")
	}
}

func TestEvaluateTransition_DemoOverrideScoping(t *testing.T) {
	o := newTestOrchestrator(t)

	discovery := &models.LeadSnapshot{
		Engagement:     &models.EngagementInput{DemoRequests: 5},
		StageEnteredAt: daysAgo(2),
	}
	res, err := o.EvaluateTransition("lead-d", models.StageDiscovery, discovery)
	if err != nil {
		t.Fatalf("EvaluateTransition: %v", err)
	}
	assertConsistent(t, res)
	if res.CanTransition || res.TargetStage != nil {
		t.Errorf("demo in discovery must not fast-track: target=%v can=%v", res.TargetStage, res.CanTransition)
	}

	intel := &models.LeadSnapshot{
		BANT:       bant(0),
		Engagement: &models.EngagementInput{DemoRequests: 1},
	}
	res, err = o.EvaluateTransition("lead-i", models.StageIntelligence, intel)
	if err != nil {
		t.Fatalf("EvaluateTransition: %v", err)
	}
	assertConsistent(t, res)
	if res.TargetStage == nil || *res.TargetStage != models.StageOutreach {
		t.Errorf("target = %v, want outreach", res.TargetStage)
	}
	if len(res.Blockers) != 0 {
		t.Errorf("blockers = %v, want none", res.Blockers)
	}
}

func TestEvaluateTransition_DemoOverrideDisabled(t *testing.T) {
	p := DefaultPolicy()
	p.DemoOverride.Enabled = false
	o, err := NewOrchestrator(p, WithClock(func() time.Time { return testNow }))
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}
	res, err := o.EvaluateTransition("lead-i", models.StageIntelligence, &models.LeadSnapshot{
		Engagement: &models.EngagementInput{DemoRequests: 1},
	})
	if err != nil {
		t.Fatalf("EvaluateTransition: %v", err)
	}
	if res.CanTransition || res.TargetStage != nil {
		t.Errorf("override disabled: target=%v can=%v", res.TargetStage, res.CanTransition)
	}
}

func TestEvaluateTransition_TimeExceededEscalation(t *testing.T) {
	o := newTestOrchestrator(t)

	tests := []struct {
		name         string
		bant         int
		wantEscalate bool
	}{
		{name: "strong BANT escalates", bant: 55, wantEscalate: true},
		{name: "weak BANT disqualifies", bant: 45, wantEscalate: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := &models.LeadSnapshot{
				BANT:           bant(tt.bant),
				Intelligence:   threeFlags(),
				StageEnteredAt: daysAgo(8),
			}
			res, err := o.EvaluateTransition("lead-slow", models.StageIntelligence, snap)
			if err != nil {
				t.Fatalf("EvaluateTransition: %v", err)
			}
			assertConsistent(t, res)
			if res.CanTransition {
				t.Fatal("expected the BANT blocker to hold")
			}
			if !containsText(res.Blockers, "BANT score") {
				t.Errorf("blockers = %v, want a BANT blocker", res.Blockers)
			}
			if !containsText(res.Warnings, "exceeding the 7-day limit") {
				t.Errorf("warnings = %v, want an overstay warning", res.Warnings)
			}
			escalate := containsText(res.RecommendedActions, "escalate for manual review")
			disqualify := containsText(res.RecommendedActions, "disqualif")
			if escalate != tt.wantEscalate || disqualify == tt.wantEscalate {
				t.Errorf("actions = %v, escalate=%v disqualify=%v", res.RecommendedActions, escalate, disqualify)
			}
		})
	}
}

func TestEvaluateTransition_OverstayDoesNotBlock(t *testing.T) {
	o := newTestOrchestrator(t)
	res, err := o.EvaluateTransition("lead-late", models.StageIntelligence, &models.LeadSnapshot{
		BANT:           bant(70),
		Intelligence:   threeFlags(),
		StageEnteredAt: daysAgo(10),
	})
	if err != nil {
		t.Fatalf("EvaluateTransition: %v", err)
	}
	if !res.CanTransition {
		t.Errorf("overstaying is advisory, got blockers %v", res.Blockers)
	}
	if !containsText(res.RecommendedActions, "escalate for manual review") {
		t.Errorf("actions = %v, want escalation", res.RecommendedActions)
	}
}

func TestEvaluateTransition_GenericGates(t *testing.T) {
	o := newTestOrchestrator(t)
	full := &models.IntelligenceInput{HasScraperData: true, HasCompetitorData: true, HasSocialProfiles: true, HasContactVerified: true}

	tests := []struct {
		name       string
		stage      models.Stage
		snap       *models.LeadSnapshot
		wantTarget *models.Stage
		wantCan    bool
	}{
		{
			name:       "discovery qualifies at 20",
			stage:      models.StageDiscovery,
			snap:       &models.LeadSnapshot{BANT: bant(20), StageEnteredAt: daysAgo(1)},
			wantTarget: models.StagePtr(models.StageQualified),
			wantCan:    true,
		},
		{
			name:  "discovery below 20",
			stage: models.StageDiscovery,
			snap:  &models.LeadSnapshot{BANT: bant(19), StageEnteredAt: daysAgo(1)},
		},
		{
			name:       "qualified moves to intelligence at 40",
			stage:      models.StageQualified,
			snap:       &models.LeadSnapshot{BANT: bant(40), StageEnteredAt: daysAgo(2)},
			wantTarget: models.StagePtr(models.StageIntelligence),
			wantCan:    true,
		},
		{
			name:  "outreach blocked on readiness",
			stage: models.StageOutreach,
			snap:  &models.LeadSnapshot{BANT: bant(60), StageEnteredAt: daysAgo(4)},
		},
		{
			name:  "outreach ready for negotiation",
			stage: models.StageOutreach,
			snap: &models.LeadSnapshot{
				BANT:           bant(100),
				Intelligence:   full,
				Engagement:     &models.EngagementInput{ContentDownloads: 10},
				StageEnteredAt: daysAgo(7),
			},
			wantTarget: models.StagePtr(models.StageNegotiation),
			wantCan:    true,
		},
		{
			name:       "negotiation waits for confirmation",
			stage:      models.StageNegotiation,
			snap:       &models.LeadSnapshot{BANT: bant(90), StageEnteredAt: daysAgo(3)},
			wantTarget: models.StagePtr(models.StageClosed),
		},
		{
			name:       "negotiation closes once confirmed",
			stage:      models.StageNegotiation,
			snap:       &models.LeadSnapshot{BANT: bant(90), StageEnteredAt: daysAgo(3), ClosingConfirmed: true},
			wantTarget: models.StagePtr(models.StageClosed),
			wantCan:    true,
		},
		{
			name:  "closed is terminal",
			stage: models.StageClosed,
			snap:  &models.LeadSnapshot{BANT: bant(100), Intelligence: full, Engagement: &models.EngagementInput{DemoRequests: 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := o.EvaluateTransition("lead", tt.stage, tt.snap)
			if err != nil {
				t.Fatalf("EvaluateTransition: %v", err)
			}
			assertConsistent(t, res)
			if (res.TargetStage == nil) != (tt.wantTarget == nil) {
				t.Fatalf("target = %v, want %v", res.TargetStage, tt.wantTarget)
			}
			if tt.wantTarget != nil && *res.TargetStage != *tt.wantTarget {
				t.Errorf("target = %s, want %s", *res.TargetStage, *tt.wantTarget)
			}
			if res.CanTransition != tt.wantCan {
				t.Errorf("can_transition = %v, want %v (blockers %v)", res.CanTransition, tt.wantCan, res.Blockers)
			}
		})
	}
}

func TestEvaluateTransition_NegotiationDelegatesClosingStrategy(t *testing.T) {
	o := newTestOrchestrator(t)
	res, err := o.EvaluateTransition("lead-n", models.StageNegotiation, &models.LeadSnapshot{BANT: bant(80)})
	if err != nil {
		t.Fatalf("EvaluateTransition: %v", err)
	}
	if !hasDelegation(res, models.SpecialistClosingStrategy, models.PriorityNormal) {
		t.Errorf("delegations = %+v, want CLOSING_STRATEGY", res.Delegations)
	}
}

func TestEvaluateTransition_StageResolution(t *testing.T) {
	o := newTestOrchestrator(t)

	res, err := o.EvaluateTransition("", "", &models.LeadSnapshot{LeadID: "snap-id", CurrentStage: models.StageQualified})
	if err != nil {
		t.Fatalf("EvaluateTransition: %v", err)
	}
	if res.CurrentStage != models.StageQualified || res.LeadID != "snap-id" {
		t.Errorf("stage=%s lead=%s, want qualified/snap-id", res.CurrentStage, res.LeadID)
	}

	res, err = o.EvaluateTransition("x", "", &models.LeadSnapshot{CurrentStage: "bogus"})
	if err != nil {
		t.Fatalf("malformed stage must not error: %v", err)
	}
	if res.CurrentStage != models.StageDiscovery {
		t.Errorf("stage = %s, want discovery fallback", res.CurrentStage)
	}
	if len(res.Warnings) == 0 || !strings.Contains(res.Warnings[0], "Unknown stage") {
		t.Errorf("warnings = %v, want unknown stage warning first", res.Warnings)
	}

	res, err = o.EvaluateTransition("x", models.StageOutreach, &models.LeadSnapshot{CurrentStage: models.StageDiscovery})
	if err != nil {
		t.Fatalf("EvaluateTransition: %v", err)
	}
	if res.CurrentStage != models.StageOutreach {
		t.Errorf("explicit stage should win, got %s", res.CurrentStage)
	}
}

func TestEvaluateTransition_Properties(t *testing.T) {
	o := newTestOrchestrator(t)
	intel := []*models.IntelligenceInput{nil, threeFlags(), {HasScraperData: true, HasCompetitorData: true, HasSocialProfiles: true, HasContactVerified: true}}
	ages := []*time.Time{nil, daysAgo(0.5), daysAgo(2), daysAgo(6), daysAgo(30)}

	for _, stage := range models.Stages {
		for _, total := range []int{0, 19, 40, 60, 100} {
			for _, in := range intel {
				for _, age := range ages {
					for _, demos := range []int{0, 1} {
						for _, confirmed := range []bool{false, true} {
							snap := &models.LeadSnapshot{
								BANT:             bant(total),
								Intelligence:     in,
								Engagement:       &models.EngagementInput{EmailOpens: total, DemoRequests: demos},
								StageEnteredAt:   age,
								ClosingConfirmed: confirmed,
							}
							res, err := o.EvaluateTransition("p", stage, snap)
							if err != nil {
								t.Fatalf("EvaluateTransition: %v", err)
							}
							assertConsistent(t, res)
							if res.TargetStage != nil && !CanTransition(stage, *res.TargetStage) {
								t.Fatalf("%s -> %s is outside the graph", stage, *res.TargetStage)
							}
							if stage == models.StageClosed && res.TargetStage != nil {
								t.Fatalf("closed produced target %s", *res.TargetStage)
							}
							if res.ReadinessScore < 0 || res.ReadinessScore > 100 {
								t.Fatalf("readiness %v outside [0,100]", res.ReadinessScore)
							}
							if res.Confidence < 0 || res.Confidence > 1 {
								t.Fatalf("confidence %v outside [0,1]", res.Confidence)
							}
						}
					}
				}
			}
		}
	}
}

func TestGetRecommendations_IntelligenceChecklist(t *testing.T) {
	o := newTestOrchestrator(t)
	recs, err := o.GetRecommendations(&models.LeadSnapshot{
		CurrentStage:   models.StageIntelligence,
		BANT:           bant(70),
		Intelligence:   &models.IntelligenceInput{HasScraperData: true},
		StageEnteredAt: daysAgo(2),
	})
	if err != nil {
		t.Fatalf("GetRecommendations: %v", err)
	}
	want := []string{
		researchSteps[FlagCompetitorData],
		researchSteps[FlagSocialProfiles],
		researchSteps[FlagContactVerified],
	}
	if len(recs) != len(want) {
		t.Fatalf("recs = %v, want %v", recs, want)
	}
	for i := range want {
		if recs[i] != want[i] {
			t.Errorf("recs[%d] = %q, want %q", i, recs[i], want[i])
		}
	}
}

func TestGetRecommendations_Ordering(t *testing.T) {
	o := newTestOrchestrator(t)
	recs, err := o.GetRecommendations(&models.LeadSnapshot{
		CurrentStage:   models.StageIntelligence,
		BANT:           bant(30),
		Engagement:     &models.EngagementInput{DemoRequests: 2},
		StageEnteredAt: daysAgo(6),
	})
	if err != nil {
		t.Fatalf("GetRecommendations: %v", err)
	}
	if len(recs) < 3 {
		t.Fatalf("recs = %v", recs)
	}
	if !strings.HasPrefix(recs[0], "PRIORITY: schedule the requested demo") {
		t.Errorf("recs[0] = %q, want the demo item first", recs[0])
	}
	if !strings.HasPrefix(recs[1], "URGENT:") {
		t.Errorf("recs[1] = %q, want the urgency item second", recs[1])
	}
}

func TestGetRecommendations_ClosedIsEmpty(t *testing.T) {
	o := newTestOrchestrator(t)
	recs, err := o.GetRecommendations(&models.LeadSnapshot{CurrentStage: models.StageClosed})
	if err != nil {
		t.Fatalf("GetRecommendations: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("recs = %v, want none", recs)
	}
}

func TestGetStatus(t *testing.T) {
	o := newTestOrchestrator(t)
	report, err := o.GetStatus(&models.LeadSnapshot{
		LeadID:         "lead-s",
		CurrentStage:   models.StageIntelligence,
		BANT:           bant(65),
		Intelligence:   threeFlags(),
		StageEnteredAt: daysAgo(2.5),
	})
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if report.Intelligence.Completeness != 80 {
		t.Errorf("completeness = %d, want 80", report.Intelligence.Completeness)
	}
	if report.StageTime.Days != 2 || report.StageTime.Hours != 12 {
		t.Errorf("stage time = %dd %dh, want 2d 12h", report.StageTime.Days, report.StageTime.Hours)
	}
	if report.Transition == nil || !report.Transition.CanTransition {
		t.Errorf("transition = %+v, want can_transition", report.Transition)
	}
	if report.Readiness.Score != report.Transition.ReadinessScore {
		t.Errorf("readiness mismatch: %v vs %v", report.Readiness.Score, report.Transition.ReadinessScore)
	}
}

func TestCheckReadiness(t *testing.T) {
	o := newTestOrchestrator(t)
	rep, err := o.CheckReadiness(&models.LeadSnapshot{CurrentStage: models.StageIntelligence, BANT: bant(40)})
	if err != nil {
		t.Fatalf("CheckReadiness: %v", err)
	}
	if rep.CanTransition {
		t.Error("expected not ready")
	}
	if len(rep.Blockers) == 0 {
		t.Error("expected blockers")
	}
	if rep.Readiness.BANT != 24 {
		t.Errorf("bant contribution = %v, want 24", rep.Readiness.BANT)
	}
}

func TestBatchEvaluate_PreservesOrder(t *testing.T) {
	o := newTestOrchestrator(t)
	snaps := []*models.LeadSnapshot{
		{LeadID: "a", CurrentStage: models.StageDiscovery, BANT: bant(30)},
		nil,
		{LeadID: "c", CurrentStage: models.StageIntelligence, BANT: bant(65), Intelligence: threeFlags(), StageEnteredAt: daysAgo(2)},
	}
	for i := 0; i < 20; i++ {
		snaps = append(snaps, &models.LeadSnapshot{LeadID: "bulk", BANT: bant(i * 5)})
	}

	items, err := o.BatchEvaluate(context.Background(), snaps)
	if err != nil {
		t.Fatalf("BatchEvaluate: %v", err)
	}
	if len(items) != len(snaps) {
		t.Fatalf("items = %d, want %d", len(items), len(snaps))
	}
	for i, item := range items {
		if item.Index != i {
			t.Errorf("items[%d].Index = %d", i, item.Index)
		}
	}
	if items[0].LeadID != "a" || items[0].Result == nil || !items[0].Result.CanTransition {
		t.Errorf("items[0] = %+v", items[0])
	}
	if items[1].Error != ErrSnapshotRequired.Error() || items[1].Result != nil {
		t.Errorf("items[1] = %+v, want snapshot error", items[1])
	}
	if items[2].LeadID != "c" || items[2].Result == nil || !items[2].Result.CanTransition {
		t.Errorf("items[2] = %+v", items[2])
	}
}

func TestBatchEvaluate_CancelledContext(t *testing.T) {
	o := newTestOrchestrator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := o.BatchEvaluate(ctx, []*models.LeadSnapshot{{LeadID: "a"}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
