// Package dispatch hands delegation recommendations to specialist workers.
//
// The pipeline engine only describes work. A Dispatcher resolves each
// recommendation's specialist through a Registry and records what every
// worker did in a Report. One failing specialist never stops the others.
package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"salespipeline/internal/models"
)

// Order is the unit of work a specialist receives.
type Order struct {
	LeadID     string
	Specialist models.Specialist
	Action     string
	Priority   models.Priority
	Reason     string
	LeadData   json.RawMessage
}

type Worker interface {
	Handle(ctx context.Context, o Order) error
}

// WorkerFunc adapts a function to Worker.
type WorkerFunc func(ctx context.Context, o Order) error

func (f WorkerFunc) Handle(ctx context.Context, o Order) error { return f(ctx, o) }

// Registry maps every known specialist to its worker.
type Registry struct {
	workers map[models.Specialist]Worker
}

// NewRegistry fails unless every specialist in models.Specialists has a
// worker and no unknown specialist is registered.
func NewRegistry(workers map[models.Specialist]Worker) (*Registry, error) {
	var missing []string
	for _, s := range models.Specialists {
		if workers[s] == nil {
			missing = append(missing, string(s))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("dispatch registry: no worker for %s", strings.Join(missing, ", "))
	}
	reg := &Registry{workers: make(map[models.Specialist]Worker, len(workers))}
	for s, w := range workers {
		if !s.Valid() {
			return nil, fmt.Errorf("dispatch registry: unknown specialist %q", s)
		}
		reg.workers[s] = w
	}
	return reg, nil
}

// Uniform builds a registry that routes every specialist to w.
func Uniform(w Worker) (*Registry, error) {
	workers := make(map[models.Specialist]Worker, len(models.Specialists))
	for _, s := range models.Specialists {
		workers[s] = w
	}
	return NewRegistry(workers)
}

func (r *Registry) Worker(s models.Specialist) (Worker, bool) {
	w, ok := r.workers[s]
	return w, ok
}

type Failure struct {
	Specialist models.Specialist `json:"specialist"`
	Error      string            `json:"error"`
}

// Report lists what happened to each recommendation of one dispatch.
type Report struct {
	LeadID     string              `json:"lead_id"`
	Dispatched []models.Specialist `json:"dispatched"`
	Failures   []Failure           `json:"failures"`
}

func (r Report) OK() bool { return len(r.Failures) == 0 }

type Dispatcher struct {
	registry *Registry
}

func NewDispatcher(r *Registry) *Dispatcher {
	return &Dispatcher{registry: r}
}

// Dispatch hands recs to their workers in order. The snapshot travels with
// every order as JSON.
func (d *Dispatcher) Dispatch(ctx context.Context, snap *models.LeadSnapshot, recs []models.DelegationRecommendation) Report {
	report := Report{Dispatched: []models.Specialist{}, Failures: []Failure{}}
	if snap != nil {
		report.LeadID = snap.LeadID
	}
	if len(recs) == 0 {
		return report
	}

	data, err := json.Marshal(snap)
	if err != nil {
		for _, rec := range recs {
			report.Failures = append(report.Failures, Failure{Specialist: rec.Specialist, Error: err.Error()})
		}
		return report
	}

	for _, rec := range recs {
		if err := ctx.Err(); err != nil {
			report.Failures = append(report.Failures, Failure{Specialist: rec.Specialist, Error: err.Error()})
			continue
		}
		w, ok := d.registry.Worker(rec.Specialist)
		if !ok {
			report.Failures = append(report.Failures, Failure{Specialist: rec.Specialist, Error: "no worker registered"})
			continue
		}
		o := Order{
			LeadID:     report.LeadID,
			Specialist: rec.Specialist,
			Action:     rec.Action,
			Priority:   rec.Priority,
			Reason:     rec.Reason,
			LeadData:   data,
		}
		if err := w.Handle(ctx, o); err != nil {
			log.Printf("[dispatch][err] lead=%s specialist=%s: %v", report.LeadID, rec.Specialist, err)
			report.Failures = append(report.Failures, Failure{Specialist: rec.Specialist, Error: err.Error()})
			continue
		}
		report.Dispatched = append(report.Dispatched, rec.Specialist)
	}
	return report
}
