package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

var errSnapshotNotObject = errors.New("lead snapshot must be a JSON object")

// maxCounter bounds decoded engagement counters so float-to-int conversion
// stays defined.
const maxCounter = 1 << 31

// Lenient decoding: a field that is present but cannot be read as its type
// decodes as the zero value and is reported by name instead of failing the
// whole document.

func objectFields(data []byte) (map[string]json.RawMessage, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, false
	}
	return fields, true
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// readNumber accepts JSON numbers and numeric strings. Null reads as 0.
func readNumber(raw json.RawMessage) (float64, bool) {
	if isNull(raw) {
		return 0, true
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err == nil {
		return v, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// readCount truncates fractional counters.
func readCount(raw json.RawMessage) (int, bool) {
	v, ok := readNumber(raw)
	if !ok {
		return 0, false
	}
	return int(max(-maxCounter, min(v, maxCounter))), true
}

// readBool accepts booleans, "true"/"false"/"1"/"0" strings and 0/1 numbers.
func readBool(raw json.RawMessage) (bool, bool) {
	if isNull(raw) {
		return false, true
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		return b, err == nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n != 0, true
	}
	return false, false
}

func readString(raw json.RawMessage) (string, bool) {
	if isNull(raw) {
		return "", true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}
	return "", false
}

type fieldReader struct {
	fields     map[string]json.RawMessage
	prefix     string
	unreadable []string
}

func (r *fieldReader) miss(name string) {
	r.unreadable = append(r.unreadable, r.prefix+name)
}

func (r *fieldReader) number(name string, dst *float64) {
	raw, ok := r.fields[name]
	if !ok {
		return
	}
	if v, ok := readNumber(raw); ok {
		*dst = v
		return
	}
	r.miss(name)
}

func (r *fieldReader) count(name string, dst *int) {
	raw, ok := r.fields[name]
	if !ok {
		return
	}
	if v, ok := readCount(raw); ok {
		*dst = v
		return
	}
	r.miss(name)
}

func (r *fieldReader) flag(name string, dst *bool) {
	raw, ok := r.fields[name]
	if !ok {
		return
	}
	if v, ok := readBool(raw); ok {
		*dst = v
		return
	}
	r.miss(name)
}

func (b *BANTInput) decode(data []byte, prefix string) []string {
	*b = BANTInput{}
	fields, ok := objectFields(data)
	if !ok {
		return []string{strings.TrimSuffix(prefix, ".")}
	}
	r := fieldReader{fields: fields, prefix: prefix}
	r.number("budget", &b.Budget)
	r.number("authority", &b.Authority)
	r.number("need", &b.Need)
	r.number("timeline", &b.Timeline)
	return r.unreadable
}

// UnmarshalJSON never fails on content; unreadable components stay 0.
func (b *BANTInput) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	b.decode(data, "bant.")
	return nil
}

func (in *IntelligenceInput) decode(data []byte, prefix string) []string {
	*in = IntelligenceInput{}
	fields, ok := objectFields(data)
	if !ok {
		return []string{strings.TrimSuffix(prefix, ".")}
	}
	r := fieldReader{fields: fields, prefix: prefix}
	r.flag("has_scraper_data", &in.HasScraperData)
	r.flag("has_competitor_data", &in.HasCompetitorData)
	r.flag("has_social_profiles", &in.HasSocialProfiles)
	r.flag("has_contact_verified", &in.HasContactVerified)
	return r.unreadable
}

// UnmarshalJSON never fails on content; unreadable flags stay false.
func (in *IntelligenceInput) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	in.decode(data, "intelligence.")
	return nil
}

func (e *EngagementInput) decode(data []byte, prefix string) []string {
	*e = EngagementInput{}
	fields, ok := objectFields(data)
	if !ok {
		return []string{strings.TrimSuffix(prefix, ".")}
	}
	r := fieldReader{fields: fields, prefix: prefix}
	r.count("email_opens", &e.EmailOpens)
	r.count("website_visits", &e.WebsiteVisits)
	r.count("content_downloads", &e.ContentDownloads)
	r.count("demo_requests", &e.DemoRequests)
	return r.unreadable
}

// UnmarshalJSON never fails on content; unreadable counters stay 0.
func (e *EngagementInput) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	e.decode(data, "engagement.")
	return nil
}

// UnmarshalJSON decodes a snapshot leniently. Only a document that is not a
// JSON object is an error; every unreadable field is listed in Unreadable.
func (s *LeadSnapshot) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	fields, ok := objectFields(data)
	if !ok {
		return errSnapshotNotObject
	}
	*s = LeadSnapshot{}
	r := fieldReader{fields: fields}

	if raw, ok := fields["lead_id"]; ok {
		if v, ok := readString(raw); ok {
			s.LeadID = v
		} else {
			r.miss("lead_id")
		}
	}
	if raw, ok := fields["current_stage"]; ok {
		if v, ok := readString(raw); ok {
			s.CurrentStage = Stage(v)
		} else {
			r.miss("current_stage")
		}
	}
	if raw, ok := fields["bant"]; ok && !isNull(raw) {
		var b BANTInput
		r.unreadable = append(r.unreadable, b.decode(raw, "bant.")...)
		s.BANT = &b
	}
	if raw, ok := fields["intelligence"]; ok && !isNull(raw) {
		var in IntelligenceInput
		r.unreadable = append(r.unreadable, in.decode(raw, "intelligence.")...)
		s.Intelligence = &in
	}
	if raw, ok := fields["engagement"]; ok && !isNull(raw) {
		var e EngagementInput
		r.unreadable = append(r.unreadable, e.decode(raw, "engagement.")...)
		s.Engagement = &e
	}
	if raw, ok := fields["stage_entered_at"]; ok && !isNull(raw) {
		var t time.Time
		if err := json.Unmarshal(raw, &t); err == nil {
			s.StageEnteredAt = &t
		} else {
			r.miss("stage_entered_at")
		}
	}
	r.flag("closing_confirmed", &s.ClosingConfirmed)

	s.Unreadable = r.unreadable
	return nil
}
