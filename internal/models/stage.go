package models

import (
	"fmt"
	"strings"
)

// Stage is a discrete phase of the lead lifecycle.
type Stage string

const (
	StageDiscovery    Stage = "discovery"
	StageQualified    Stage = "qualified"
	StageIntelligence Stage = "intelligence"
	StageOutreach     Stage = "outreach"
	StageNegotiation  Stage = "negotiation"
	StageClosed       Stage = "closed"
)

// Stages lists every stage in pipeline order.
var Stages = []Stage{
	StageDiscovery,
	StageQualified,
	StageIntelligence,
	StageOutreach,
	StageNegotiation,
	StageClosed,
}

// ParseStage converts a raw string to a Stage. Matching ignores case and
// surrounding whitespace.
func ParseStage(s string) (Stage, error) {
	st := Stage(strings.ToLower(strings.TrimSpace(s)))
	if st.Valid() {
		return st, nil
	}
	return "", fmt.Errorf("unknown pipeline stage %q", s)
}

func (s Stage) Valid() bool {
	switch s {
	case StageDiscovery, StageQualified, StageIntelligence, StageOutreach, StageNegotiation, StageClosed:
		return true
	}
	return false
}

// IsTerminal reports whether no transition can leave the stage.
func (s Stage) IsTerminal() bool { return s == StageClosed }

func (s Stage) String() string { return string(s) }

// StagePtr returns a pointer to a copy of s.
func StagePtr(s Stage) *Stage { return &s }
