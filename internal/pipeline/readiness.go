package pipeline

import "salespipeline/internal/models"

const (
	readinessBANTWeight         = 0.6
	readinessIntelligenceWeight = 0.2
	readinessEngagementCap      = 30
)

// CalculateReadiness blends the signals into a 0-100 score. The components
// can sum past 100, so the clamp is applied last.
func CalculateReadiness(b models.BANTScore, i models.IntelligenceStatus, e models.EngagementSignals, t models.StageTime) models.ReadinessBreakdown {
	r := models.ReadinessBreakdown{
		BANT:         readinessBANTWeight * b.Total,
		Intelligence: readinessIntelligenceWeight * float64(i.Completeness),
		Engagement:   float64(min(readinessEngagementCap, e.EngagementScore)),
		Time:         t.TimeFactor,
	}
	r.Score = clampFloat(r.BANT+r.Intelligence+r.Engagement+r.Time, 0, 100)
	return r
}

// Confidence is reported for blocked results too, so callers can tell
// "close but blocked" from "far from ready".
func Confidence(bantTotal float64, readiness float64, blockers int) float64 {
	blockerTerm := 0.2 - min(0.2, 0.05*float64(blockers))
	c := 0.4*(bantTotal/100) + 0.4*(readiness/100) + blockerTerm
	return clampFloat(c, 0, 1)
}
