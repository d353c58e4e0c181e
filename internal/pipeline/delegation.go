package pipeline

import (
	"fmt"

	"salespipeline/internal/models"
)

// lowEngagementScore marks outreach leads that need a nudge.
const lowEngagementScore = 10

// Planner adds follow-up delegations to an evaluated transition.
type Planner struct {
	policy Policy
}

func NewPlanner(p Policy) Planner {
	return Planner{policy: p}
}

// Plan appends to res.Delegations. It never replaces what the rule engine
// produced and never adds a second delegation for the same specialist.
func (p Planner) Plan(sig Signals, res *models.TransitionResult) {
	d := res.Delegations

	if res.CanTransition && res.TargetStage != nil && *res.TargetStage == models.StageOutreach {
		d = appendDelegation(d, models.DelegationRecommendation{
			Specialist: models.SpecialistOutreachComposer,
			Action:     "Compose the first-touch outreach sequence",
			Priority:   models.PriorityHigh,
			Reason:     "Lead is moving to outreach",
		})
		d = appendDelegation(d, models.DelegationRecommendation{
			Specialist: models.SpecialistObjectionRebuttal,
			Action:     "Prepare competitive positioning and objection rebuttals",
			Priority:   models.PriorityNormal,
			Reason:     "Outreach needs positioning against known competitors",
		})
	}

	if sig.Stage == models.StageNegotiation && !res.CanTransition {
		d = appendDelegation(d, models.DelegationRecommendation{
			Specialist: models.SpecialistClosingStrategy,
			Action:     "Recommend a closing strategy for the open negotiation",
			Priority:   models.PriorityNormal,
			Reason:     "Negotiation is waiting on a confirmed outcome",
		})
	}

	if sig.Stage == models.StageOutreach && sig.Engagement.EngagementScore < lowEngagementScore {
		d = appendDelegation(d, models.DelegationRecommendation{
			Specialist: models.SpecialistCouponNudge,
			Action:     "Offer an incentive to re-engage the lead",
			Priority:   models.PriorityLow,
			Reason:     fmt.Sprintf("Engagement score %d is below %d", sig.Engagement.EngagementScore, lowEngagementScore),
		})
	}

	if outreach := float64(p.policy.OutreachBANT); !sig.Stage.IsTerminal() && sig.BANT.Total < outreach {
		d = appendDelegation(d, qualifierDelegation(sig.BANT.Total, outreach))
	}

	res.Delegations = d
}

func hasSpecialist(list []models.DelegationRecommendation, s models.Specialist) bool {
	for _, d := range list {
		if d.Specialist == s {
			return true
		}
	}
	return false
}

func appendDelegation(list []models.DelegationRecommendation, d models.DelegationRecommendation) []models.DelegationRecommendation {
	if hasSpecialist(list, d.Specialist) {
		return list
	}
	return append(list, d)
}

// prependDelegation puts d first, dropping any earlier entry for the same
// specialist.
func prependDelegation(list []models.DelegationRecommendation, d models.DelegationRecommendation) []models.DelegationRecommendation {
	out := make([]models.DelegationRecommendation, 0, len(list)+1)
	out = append(out, d)
	for _, existing := range list {
		if existing.Specialist != d.Specialist {
			out = append(out, existing)
		}
	}
	return out
}
