package models

import (
	"strconv"
	"time"
)

// BANTInput carries raw qualification sub-scores. Absent or unreadable
// fields decode as 0.
type BANTInput struct {
	Budget    float64 `json:"budget"`
	Authority float64 `json:"authority"`
	Need      float64 `json:"need"`
	Timeline  float64 `json:"timeline"`
}

// IntelligenceInput carries the research-completion flags.
type IntelligenceInput struct {
	HasScraperData     bool `json:"has_scraper_data"`
	HasCompetitorData  bool `json:"has_competitor_data"`
	HasSocialProfiles  bool `json:"has_social_profiles"`
	HasContactVerified bool `json:"has_contact_verified"`
}

// EngagementInput carries raw interaction counters.
type EngagementInput struct {
	EmailOpens       int `json:"email_opens"`
	WebsiteVisits    int `json:"website_visits"`
	ContentDownloads int `json:"content_downloads"`
	DemoRequests     int `json:"demo_requests"`
}

// LeadSnapshot is the engine input. Every nested record is optional.
// Unreadable names the fields that were present but could not be decoded.
type LeadSnapshot struct {
	LeadID           string             `json:"lead_id"`
	CurrentStage     Stage              `json:"current_stage,omitempty"`
	BANT             *BANTInput         `json:"bant,omitempty"`
	Intelligence     *IntelligenceInput `json:"intelligence,omitempty"`
	Engagement       *EngagementInput   `json:"engagement,omitempty"`
	StageEnteredAt   *time.Time         `json:"stage_entered_at,omitempty"`
	ClosingConfirmed bool               `json:"closing_confirmed,omitempty"`
	Unreadable       []string           `json:"-"`
}

// Lead is the stored pipeline record a snapshot is taken from.
type Lead struct {
	ID               int               `json:"id"`
	Title            string            `json:"title"`
	Company          string            `json:"company"`
	OwnerID          int               `json:"owner_id"`
	Stage            Stage             `json:"stage"`
	StageEnteredAt   time.Time         `json:"stage_entered_at"`
	BANT             BANTInput         `json:"bant"`
	Intelligence     IntelligenceInput `json:"intelligence"`
	Engagement       EngagementInput   `json:"engagement"`
	ClosingConfirmed bool              `json:"closing_confirmed"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// Snapshot copies the stored signals into an engine input.
func (l *Lead) Snapshot() *LeadSnapshot {
	bant := l.BANT
	intel := l.Intelligence
	eng := l.Engagement
	snap := &LeadSnapshot{
		LeadID:           LeadRef(l.ID),
		CurrentStage:     l.Stage,
		BANT:             &bant,
		Intelligence:     &intel,
		Engagement:       &eng,
		ClosingConfirmed: l.ClosingConfirmed,
	}
	if !l.StageEnteredAt.IsZero() {
		entered := l.StageEnteredAt
		snap.StageEnteredAt = &entered
	}
	return snap
}

// LeadSignalsUpdate replaces the scoring inputs of a stored lead. Nil
// sections are left untouched.
type LeadSignalsUpdate struct {
	BANT             *BANTInput         `json:"bant,omitempty"`
	Intelligence     *IntelligenceInput `json:"intelligence,omitempty"`
	Engagement       *EngagementInput   `json:"engagement,omitempty"`
	ClosingConfirmed *bool              `json:"closing_confirmed,omitempty"`
}

// LeadFilter narrows lead listings.
type LeadFilter struct {
	OwnerID *int
	Stage   *Stage
}

// LeadRef renders a stored lead id the way snapshots and work orders refer to it.
func LeadRef(id int) string { return strconv.Itoa(id) }
