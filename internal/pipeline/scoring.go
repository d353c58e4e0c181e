package pipeline

import (
	"math"

	"salespipeline/internal/models"
)

const (
	maxBANTComponent   = 25
	maxEngagementScore = 50
)

// Intelligence flag names, in the order they are reported as missing.
const (
	FlagScraperData     = "scraper_data"
	FlagCompetitorData  = "competitor_data"
	FlagSocialProfiles  = "social_profiles"
	FlagContactVerified = "contact_verified"
)

// intelligenceWeights sum to 100.
var intelligenceWeights = map[string]int{
	FlagScraperData:     30,
	FlagCompetitorData:  25,
	FlagSocialProfiles:  20,
	FlagContactVerified: 25,
}

var intelligenceFlagOrder = []string{FlagScraperData, FlagCompetitorData, FlagSocialProfiles, FlagContactVerified}

// Engagement weights per counter unit.
const (
	weightEmailOpen       = 1
	weightWebsiteVisit    = 2
	weightContentDownload = 5
	weightDemoRequest     = 15
)

// ScoreBANT clamps each component to [0,25] before summing, so the total
// always lands in [0,100]. A nil input scores zero.
func ScoreBANT(in *models.BANTInput) models.BANTScore {
	var raw models.BANTInput
	if in != nil {
		raw = *in
	}
	s := models.BANTScore{
		Budget:    clampComponent(raw.Budget),
		Authority: clampComponent(raw.Authority),
		Need:      clampComponent(raw.Need),
		Timeline:  clampComponent(raw.Timeline),
	}
	s.Total = s.Budget + s.Authority + s.Need + s.Timeline

	for _, c := range []struct {
		name  string
		value float64
	}{
		{"budget", s.Budget},
		{"authority", s.Authority},
		{"need", s.Need},
		{"timeline", s.Timeline},
	} {
		if c.value == 0 {
			s.Gaps = append(s.Gaps, c.name)
		}
	}
	return s
}

// AssessIntelligence derives completeness from the four flags.
func AssessIntelligence(in *models.IntelligenceInput) models.IntelligenceStatus {
	var raw models.IntelligenceInput
	if in != nil {
		raw = *in
	}
	st := models.IntelligenceStatus{
		HasScraperData:     raw.HasScraperData,
		HasCompetitorData:  raw.HasCompetitorData,
		HasSocialProfiles:  raw.HasSocialProfiles,
		HasContactVerified: raw.HasContactVerified,
	}
	set := map[string]bool{
		FlagScraperData:     raw.HasScraperData,
		FlagCompetitorData:  raw.HasCompetitorData,
		FlagSocialProfiles:  raw.HasSocialProfiles,
		FlagContactVerified: raw.HasContactVerified,
	}
	for _, flag := range intelligenceFlagOrder {
		if set[flag] {
			st.Completeness += intelligenceWeights[flag]
		} else {
			st.Missing = append(st.Missing, flag)
		}
	}
	return st
}

// ScoreEngagement weights the counters and caps the result. The demo flag
// is reported separately so the cap never hides it.
func ScoreEngagement(in *models.EngagementInput) models.EngagementSignals {
	var raw models.EngagementInput
	if in != nil {
		raw = *in
	}
	sig := models.EngagementSignals{
		EmailOpens:       max(raw.EmailOpens, 0),
		WebsiteVisits:    max(raw.WebsiteVisits, 0),
		ContentDownloads: max(raw.ContentDownloads, 0),
		DemoRequests:     max(raw.DemoRequests, 0),
	}
	// summed as float64 so huge counters cannot overflow past the cap
	score := float64(sig.EmailOpens)*weightEmailOpen +
		float64(sig.WebsiteVisits)*weightWebsiteVisit +
		float64(sig.ContentDownloads)*weightContentDownload +
		float64(sig.DemoRequests)*weightDemoRequest
	sig.EngagementScore = int(min(score, maxEngagementScore))
	sig.DemoRequested = sig.DemoRequests > 0
	return sig
}

// clampComponent also maps NaN to 0, which a plain clamp would pass through.
func clampComponent(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return clampFloat(v, 0, maxBANTComponent)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
