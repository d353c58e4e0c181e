package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"salespipeline/internal/models"
)

var (
	// ErrSnapshotRequired is returned when a request carries no lead snapshot.
	ErrSnapshotRequired = errors.New("snapshot is required")
	// ErrInvalidTransition is wrapped by ValidateTransition.
	ErrInvalidTransition = errors.New("invalid transition")
)

// Transitions is the static stage graph. No score can produce an edge
// that is missing here.
var Transitions = map[models.Stage]map[models.Stage]bool{
	models.StageDiscovery:    {models.StageQualified: true, models.StageClosed: true},
	models.StageQualified:    {models.StageIntelligence: true, models.StageDiscovery: true, models.StageClosed: true},
	models.StageIntelligence: {models.StageOutreach: true, models.StageQualified: true, models.StageClosed: true},
	models.StageOutreach:     {models.StageNegotiation: true, models.StageIntelligence: true, models.StageClosed: true},
	models.StageNegotiation:  {models.StageClosed: true, models.StageOutreach: true},
	models.StageClosed:       {}, // terminal
}

// CanTransition reports whether from -> to is an edge of the graph.
func CanTransition(from, to models.Stage) bool {
	nexts, ok := Transitions[from]
	if !ok {
		return false
	}
	return nexts[to]
}

// ValidTargets lists the stages reachable from `from` in pipeline order.
func ValidTargets(from models.Stage) []models.Stage {
	out := []models.Stage{}
	for _, s := range models.Stages {
		if CanTransition(from, s) {
			out = append(out, s)
		}
	}
	return out
}

// ValidateTransition checks an explicit stage move outside the scored path.
func ValidateTransition(from, to models.Stage) error {
	if !from.Valid() {
		return fmt.Errorf("%w: unknown source stage %q", ErrInvalidTransition, from)
	}
	if !to.Valid() {
		return fmt.Errorf("%w: unknown target stage %q", ErrInvalidTransition, to)
	}
	if CanTransition(from, to) {
		return nil
	}
	targets := ValidTargets(from)
	if len(targets) == 0 {
		return fmt.Errorf("%w %s -> %s; %s is terminal", ErrInvalidTransition, from, to, from)
	}
	names := make([]string, 0, len(targets))
	for _, t := range targets {
		names = append(names, string(t))
	}
	return fmt.Errorf("%w %s -> %s; valid targets: %s", ErrInvalidTransition, from, to, strings.Join(names, ", "))
}
