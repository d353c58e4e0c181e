package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"salespipeline/internal/models"
)

// Keyword weights used to order recommendations.
const (
	weightUrgent   = 100
	weightPriority = 50
	weightDemo     = 75
)

var researchSteps = map[string]string{
	FlagScraperData:     "Run the website scraper to collect company data",
	FlagCompetitorData:  "Collect competitor intelligence",
	FlagSocialProfiles:  "Find the decision maker's social profiles",
	FlagContactVerified: "Verify the contact details",
}

var bantSteps = map[string]string{
	"budget":    "Confirm the budget range",
	"authority": "Identify the decision maker",
	"need":      "Document the business need",
	"timeline":  "Agree on a purchase timeline",
}

func (o *Orchestrator) recommend(sig Signals) []string {
	p := o.policy
	var recs []string

	switch sig.Stage {
	case models.StageDiscovery, models.StageQualified:
		for _, gap := range sig.BANT.Gaps {
			recs = append(recs, bantSteps[gap])
		}
		threshold, next := p.QualifyBANT, models.StageQualified
		if sig.Stage == models.StageQualified {
			threshold, next = p.IntelligenceBANT, models.StageIntelligence
		}
		if sig.BANT.Total < float64(threshold) {
			recs = append(recs, fmt.Sprintf("Raise BANT from %g to %d to reach %s", sig.BANT.Total, threshold, next))
		}
	case models.StageIntelligence:
		for _, flag := range sig.Intelligence.Missing {
			recs = append(recs, researchSteps[flag])
		}
		if sig.BANT.Total < float64(p.OutreachBANT) {
			recs = append(recs, fmt.Sprintf("Raise BANT from %g to %d before outreach", sig.BANT.Total, p.OutreachBANT))
		}
	case models.StageOutreach:
		if sig.Readiness.Score < p.NegotiationReadiness {
			recs = append(recs, fmt.Sprintf("Increase engagement: readiness %.0f of %.0f needed for negotiation",
				sig.Readiness.Score, p.NegotiationReadiness))
		}
		if sig.Engagement.EmailOpens == 0 {
			recs = append(recs, "Send a follow-up email sequence")
		}
		if sig.Engagement.ContentDownloads == 0 {
			recs = append(recs, "Share a case study or whitepaper")
		}
	case models.StageNegotiation:
		if !sig.ClosingConfirmed {
			recs = append(recs, "Confirm the closing outcome")
		}
		recs = append(recs, "Prepare the closing strategy")
	case models.StageClosed:
		return []string{}
	}

	t := sig.Time
	if t.ApproachingTimeout {
		recs = append(recs, fmt.Sprintf("URGENT: %.1f days left in %s before timeout",
			t.TimeoutThresholdDays-t.ElapsedDays, sig.Stage))
	}
	if t.Exceeded {
		recs = append(recs, fmt.Sprintf("URGENT: lead exceeded the %s window by %.1f days",
			sig.Stage, t.ElapsedDays-t.TimeoutThresholdDays))
	}
	if sig.Engagement.DemoRequested {
		recs = append(recs, fmt.Sprintf("PRIORITY: schedule the requested demo (%d request(s))", sig.Engagement.DemoRequests))
	}

	sortRecommendations(recs)
	if recs == nil {
		recs = []string{}
	}
	return recs
}

// recommendationWeight ranks URGENT over PRIORITY over the rest. Demo items
// get a boost whether or not they carry a keyword.
func recommendationWeight(rec string) int {
	w := 0
	upper := strings.ToUpper(rec)
	switch {
	case strings.Contains(upper, "URGENT"):
		w += weightUrgent
	case strings.Contains(upper, "PRIORITY"):
		w += weightPriority
	}
	if strings.Contains(upper, "DEMO") {
		w += weightDemo
	}
	return w
}

func sortRecommendations(recs []string) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recommendationWeight(recs[i]) > recommendationWeight(recs[j])
	})
}
