package models

import "time"

// Specialist identifies a downstream worker that delegations are addressed to.
type Specialist string

const (
	SpecialistLeadQualifier     Specialist = "LEAD_QUALIFIER"
	SpecialistOutreachComposer  Specialist = "OUTREACH_COMPOSER"
	SpecialistObjectionRebuttal Specialist = "OBJECTION_REBUTTAL"
	SpecialistClosingStrategy   Specialist = "CLOSING_STRATEGY"
	SpecialistCouponNudge       Specialist = "COUPON_NUDGE"
)

// Specialists lists every known specialist.
var Specialists = []Specialist{
	SpecialistLeadQualifier,
	SpecialistOutreachComposer,
	SpecialistObjectionRebuttal,
	SpecialistClosingStrategy,
	SpecialistCouponNudge,
}

func (s Specialist) Valid() bool {
	for _, known := range Specialists {
		if s == known {
			return true
		}
	}
	return false
}

// Priority orders delegations.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityNormal   Priority = "normal"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

var priorityRank = map[Priority]int{
	PriorityLow:      1,
	PriorityNormal:   2,
	PriorityHigh:     3,
	PriorityCritical: 4,
}

// Rank returns a comparable weight; unknown priorities rank 0.
func (p Priority) Rank() int { return priorityRank[p] }

// DelegationRecommendation asks a specialist to act on a lead. The engine
// only describes the work; dispatching it is the caller's job.
type DelegationRecommendation struct {
	Specialist Specialist `json:"specialist"`
	Action     string     `json:"action"`
	Priority   Priority   `json:"priority"`
	Reason     string     `json:"reason"`
}

// BANTScore is the clamped qualification score.
type BANTScore struct {
	Budget    float64  `json:"budget"`
	Authority float64  `json:"authority"`
	Need      float64  `json:"need"`
	Timeline  float64  `json:"timeline"`
	Total     float64  `json:"total"`
	Gaps      []string `json:"gaps,omitempty"`
}

// IntelligenceStatus is the research state of a lead. Completeness is
// derived from the flags only.
type IntelligenceStatus struct {
	HasScraperData     bool     `json:"has_scraper_data"`
	HasCompetitorData  bool     `json:"has_competitor_data"`
	HasSocialProfiles  bool     `json:"has_social_profiles"`
	HasContactVerified bool     `json:"has_contact_verified"`
	Completeness       int      `json:"completeness"`
	Missing            []string `json:"missing,omitempty"`
}

// EngagementSignals holds interaction counters and the capped score.
type EngagementSignals struct {
	EmailOpens       int  `json:"email_opens"`
	WebsiteVisits    int  `json:"website_visits"`
	ContentDownloads int  `json:"content_downloads"`
	DemoRequests     int  `json:"demo_requests"`
	EngagementScore  int  `json:"engagement_score"`
	DemoRequested    bool `json:"demo_requested"`
}

// StageTime describes how long a lead has been in its stage.
type StageTime struct {
	EnteredAt            time.Time `json:"entered_at"`
	ElapsedDays          float64   `json:"elapsed_days"`
	Days                 int       `json:"days"`
	Hours                int       `json:"hours"`
	WithinLimits         bool      `json:"within_limits"`
	ApproachingTimeout   bool      `json:"approaching_timeout"`
	Exceeded             bool      `json:"exceeded"`
	MinDays              float64   `json:"min_days"`
	TimeoutThresholdDays float64   `json:"timeout_threshold_days"`
	TimeFactor           float64   `json:"time_factor"`
}

// ReadinessBreakdown shows what each signal contributed to readiness.
type ReadinessBreakdown struct {
	BANT         float64 `json:"bant"`
	Intelligence float64 `json:"intelligence"`
	Engagement   float64 `json:"engagement"`
	Time         float64 `json:"time"`
	Score        float64 `json:"score"`
}

// TransitionResult is the outcome of one evaluation.
// CanTransition is true iff TargetStage is set and Blockers is empty.
type TransitionResult struct {
	LeadID             string                     `json:"lead_id"`
	CurrentStage       Stage                      `json:"current_stage"`
	CanTransition      bool                       `json:"can_transition"`
	TargetStage        *Stage                     `json:"target_stage"`
	ReadinessScore     float64                    `json:"readiness_score"`
	BANTScore          float64                    `json:"bant_score"`
	Blockers           []string                   `json:"blockers"`
	Warnings           []string                   `json:"warnings"`
	RecommendedActions []string                   `json:"recommended_actions"`
	Delegations        []DelegationRecommendation `json:"delegations"`
	Confidence         float64                    `json:"confidence"`
	EvaluatedAt        time.Time                  `json:"evaluated_at"`
}

// StatusReport bundles a transition evaluation with the detail behind it.
type StatusReport struct {
	LeadID          string             `json:"lead_id"`
	CurrentStage    Stage              `json:"current_stage"`
	BANT            BANTScore          `json:"bant"`
	Intelligence    IntelligenceStatus `json:"intelligence"`
	Engagement      EngagementSignals  `json:"engagement"`
	StageTime       StageTime          `json:"stage_time"`
	Readiness       ReadinessBreakdown `json:"readiness"`
	Transition      *TransitionResult  `json:"transition"`
	Recommendations []string           `json:"recommendations"`
	GeneratedAt     time.Time          `json:"generated_at"`
}

// ReadinessReport answers "how ready is this lead" without the full status.
type ReadinessReport struct {
	LeadID        string             `json:"lead_id"`
	CurrentStage  Stage              `json:"current_stage"`
	Readiness     ReadinessBreakdown `json:"readiness"`
	CanTransition bool               `json:"can_transition"`
	TargetStage   *Stage             `json:"target_stage"`
	Blockers      []string           `json:"blockers"`
	Confidence    float64            `json:"confidence"`
}

// BatchItem is one entry of a batch evaluation, in input order.
type BatchItem struct {
	Index  int               `json:"index"`
	LeadID string            `json:"lead_id,omitempty"`
	Result *TransitionResult `json:"result,omitempty"`
	Error  string            `json:"error,omitempty"`
}
