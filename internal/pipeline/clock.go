package pipeline

import (
	"math"
	"time"

	"salespipeline/internal/models"
)

const (
	approachingTimeoutRatio = 0.8
	prematurePenalty        = -10.0
	overstayPenalty         = -5.0
	rampMax                 = 5.0
	decayMax                = 10.0
)

// MeasureStageTime computes elapsed time in a stage. A nil enteredAt means
// the lead entered just now; an entry time in the future counts as zero.
func MeasureStageTime(enteredAt *time.Time, now time.Time, w StageWindow) models.StageTime {
	entered := now
	if enteredAt != nil && !enteredAt.IsZero() {
		entered = *enteredAt
	}
	d := now.Sub(entered).Hours() / 24
	if d < 0 {
		d = 0
	}
	days := math.Trunc(d)

	st := models.StageTime{
		EnteredAt:            entered,
		ElapsedDays:          d,
		Days:                 int(days),
		Hours:                int(math.Trunc((d - days) * 24)),
		MinDays:              w.MinDays,
		TimeoutThresholdDays: w.MaxDays,
		TimeFactor:           TimeFactor(d, w.MaxDays),
	}
	if w.MaxDays <= 0 {
		st.WithinLimits = d >= w.MinDays
		return st
	}
	st.WithinLimits = d >= w.MinDays && d <= w.MaxDays
	st.ApproachingTimeout = d >= approachingTimeoutRatio*w.MaxDays && d < w.MaxDays
	st.Exceeded = d > w.MaxDays
	return st
}

// TimeFactor rewards leads near the middle of their stage window. Leads
// younger than a day are penalized, as are leads past the window.
func TimeFactor(d, maxDays float64) float64 {
	if maxDays <= 0 {
		return 0
	}
	ideal := 0.5 * maxDays
	switch {
	case d < 1:
		return prematurePenalty
	case d < ideal:
		return (d / ideal) * rampMax
	case d <= maxDays:
		return ((maxDays - d) / (maxDays - ideal)) * decayMax
	default:
		return overstayPenalty
	}
}
