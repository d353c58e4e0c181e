package pipeline

import (
	"fmt"

	"salespipeline/internal/models"
)

// StageWindow is the [min,max] number of days a lead is expected to spend
// in a stage. MaxDays <= 0 means the stage never times out.
type StageWindow struct {
	MinDays float64
	MaxDays float64
}

// DemoOverride is the demo-request fast track. A lead in From with at least
// one demo request and no chosen target is forced to To with all blockers
// cleared. The default scope is the intelligence -> outreach edge only.
type DemoOverride struct {
	Enabled    bool
	From       models.Stage
	To         models.Stage
	Specialist models.Specialist
}

// Policy holds every threshold the engine uses.
type Policy struct {
	QualifyBANT          int     // discovery -> qualified
	IntelligenceBANT     int     // qualified -> intelligence
	OutreachBANT         int     // intelligence -> outreach
	OutreachCompleteness int     // intelligence -> outreach, percent
	NegotiationReadiness float64 // outreach -> negotiation
	EscalationBANT       int     // overstayed intelligence leads at or above this are escalated
	Windows              map[models.Stage]StageWindow
	DemoOverride         DemoOverride
	BatchConcurrency     int
}

// DefaultPolicy returns the stock thresholds.
func DefaultPolicy() Policy {
	return Policy{
		QualifyBANT:          20,
		IntelligenceBANT:     40,
		OutreachBANT:         60,
		OutreachCompleteness: 75,
		NegotiationReadiness: 80,
		EscalationBANT:       50,
		Windows: map[models.Stage]StageWindow{
			models.StageDiscovery:    {MinDays: 0, MaxDays: 3},
			models.StageQualified:    {MinDays: 1, MaxDays: 5},
			models.StageIntelligence: {MinDays: 1, MaxDays: 7},
			models.StageOutreach:     {MinDays: 3, MaxDays: 14},
			models.StageNegotiation:  {MinDays: 2, MaxDays: 21},
			models.StageClosed:       {MinDays: 0, MaxDays: 0},
		},
		DemoOverride: DemoOverride{
			Enabled:    true,
			From:       models.StageIntelligence,
			To:         models.StageOutreach,
			Specialist: models.SpecialistOutreachComposer,
		},
		BatchConcurrency: 8,
	}
}

// Window returns the configured window for a stage.
func (p Policy) Window(s models.Stage) StageWindow {
	return p.Windows[s]
}

// Validate rejects a policy that leaves a stage without a window or points
// the demo override at an edge outside the graph.
func (p Policy) Validate() error {
	for _, s := range models.Stages {
		w, ok := p.Windows[s]
		if !ok {
			return fmt.Errorf("policy: no stage window for %s", s)
		}
		if w.MinDays < 0 || (w.MaxDays > 0 && w.MinDays > w.MaxDays) {
			return fmt.Errorf("policy: invalid window for %s: [%g,%g]", s, w.MinDays, w.MaxDays)
		}
	}
	if p.OutreachCompleteness < 0 || p.OutreachCompleteness > 100 {
		return fmt.Errorf("policy: outreach completeness %d out of range", p.OutreachCompleteness)
	}
	if p.DemoOverride.Enabled {
		if !CanTransition(p.DemoOverride.From, p.DemoOverride.To) {
			return fmt.Errorf("policy: demo override edge %s -> %s is not in the stage graph",
				p.DemoOverride.From, p.DemoOverride.To)
		}
		if !p.DemoOverride.Specialist.Valid() {
			return fmt.Errorf("policy: unknown demo override specialist %q", p.DemoOverride.Specialist)
		}
	}
	if p.BatchConcurrency < 1 {
		return fmt.Errorf("policy: batch concurrency must be positive, got %d", p.BatchConcurrency)
	}
	return nil
}
