package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"salespipeline/internal/dispatch"
	"salespipeline/internal/models"
	"salespipeline/internal/notify"
	"salespipeline/internal/pipeline"
	"salespipeline/internal/repositories"
)

var (
	ErrLeadNotFound      = errors.New("lead not found")
	ErrTransitionBlocked = errors.New("transition blocked")
	ErrInvalidLead       = errors.New("invalid lead")
)

// AdvanceResult is what an advance attempt produced. Dispatch is nil when
// the lead did not move or no dispatcher is configured.
type AdvanceResult struct {
	Lead     *models.Lead             `json:"lead"`
	Result   *models.TransitionResult `json:"result"`
	Dispatch *dispatch.Report         `json:"dispatch,omitempty"`
}

type LeadService struct {
	Repo       *repositories.LeadRepository
	Engine     *pipeline.Orchestrator
	Dispatcher *dispatch.Dispatcher
	Notifier   notify.Notifier

	now func() time.Time

	// escalated holds, per lead, the stage stay that was last escalated.
	mu        sync.Mutex
	escalated map[int]string
}

func NewLeadService(repo *repositories.LeadRepository, engine *pipeline.Orchestrator, dispatcher *dispatch.Dispatcher, notifier notify.Notifier) *LeadService {
	return &LeadService{
		Repo:       repo,
		Engine:     engine,
		Dispatcher: dispatcher,
		Notifier:   notifier,
		now:        time.Now,
		escalated:  map[int]string{},
	}
}

func (s *LeadService) Create(ctx context.Context, lead *models.Lead) error {
	if strings.TrimSpace(lead.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidLead)
	}
	if lead.Stage == "" {
		lead.Stage = models.StageDiscovery
	}
	if !lead.Stage.Valid() {
		return fmt.Errorf("%w: unknown stage %q", ErrInvalidLead, lead.Stage)
	}
	now := s.now().UTC()
	if lead.StageEnteredAt.IsZero() {
		lead.StageEnteredAt = now
	}
	lead.CreatedAt = now
	lead.UpdatedAt = now
	return s.Repo.Create(ctx, lead)
}

func (s *LeadService) GetByID(ctx context.Context, id int) (*models.Lead, error) {
	lead, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, id)
	}
	return lead, nil
}

func (s *LeadService) List(ctx context.Context, filter models.LeadFilter, limit, offset int) ([]*models.Lead, error) {
	return s.Repo.List(ctx, filter, limit, offset)
}

// UpdateDetails changes the descriptive fields of a lead.
func (s *LeadService) UpdateDetails(ctx context.Context, id int, title, company string) (*models.Lead, error) {
	lead, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) != "" {
		lead.Title = title
	}
	lead.Company = company
	lead.UpdatedAt = s.now().UTC()
	if err := s.Repo.Update(ctx, lead); err != nil {
		return nil, mapNotFound(err, id)
	}
	return lead, nil
}

// UpdateSignals replaces the scoring inputs present in upd.
func (s *LeadService) UpdateSignals(ctx context.Context, id int, upd models.LeadSignalsUpdate) (*models.Lead, error) {
	lead, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.BANT != nil {
		lead.BANT = *upd.BANT
	}
	if upd.Intelligence != nil {
		lead.Intelligence = *upd.Intelligence
	}
	if upd.Engagement != nil {
		lead.Engagement = *upd.Engagement
	}
	if upd.ClosingConfirmed != nil {
		lead.ClosingConfirmed = *upd.ClosingConfirmed
	}
	lead.UpdatedAt = s.now().UTC()
	if err := s.Repo.Update(ctx, lead); err != nil {
		return nil, mapNotFound(err, id)
	}
	return lead, nil
}

func (s *LeadService) AssignOwner(ctx context.Context, id, ownerID int) error {
	return mapNotFound(s.Repo.UpdateOwner(ctx, id, ownerID), id)
}

func (s *LeadService) Delete(ctx context.Context, id int) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return mapNotFound(err, id)
	}
	s.mu.Lock()
	delete(s.escalated, id)
	s.mu.Unlock()
	return nil
}

// Evaluate runs the engine over the stored snapshot without changing
// anything.
func (s *LeadService) Evaluate(ctx context.Context, id int) (*models.Lead, *models.TransitionResult, error) {
	lead, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	snap := lead.Snapshot()
	res, err := s.Engine.EvaluateTransition(snap.LeadID, lead.Stage, snap)
	if err != nil {
		return nil, nil, err
	}
	return lead, res, nil
}

// Status builds the full status report of a stored lead.
func (s *LeadService) Status(ctx context.Context, id int) (*models.Lead, *models.StatusReport, error) {
	lead, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	report, err := s.Engine.GetStatus(lead.Snapshot())
	if err != nil {
		return nil, nil, err
	}
	return lead, report, nil
}

// Advance evaluates the lead and, when the engine allows it, moves it to the
// target stage and dispatches the recommended delegations. A blocked lead
// returns the result together with ErrTransitionBlocked.
func (s *LeadService) Advance(ctx context.Context, id int) (*AdvanceResult, error) {
	lead, res, err := s.Evaluate(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &AdvanceResult{Lead: lead, Result: res}
	s.notifyEscalations(ctx, lead, res)

	if !res.CanTransition || res.TargetStage == nil {
		log.Printf("[leads][advance] lead=%d stage=%s blocked: %d blocker(s)", id, lead.Stage, len(res.Blockers))
		return out, fmt.Errorf("%w: %s", ErrTransitionBlocked, strings.Join(res.Blockers, "; "))
	}

	from := lead.Stage
	to := *res.TargetStage
	if err := pipeline.ValidateTransition(from, to); err != nil {
		return out, err
	}
	entered := s.now().UTC()
	if err := s.Repo.UpdateStage(ctx, id, to, entered); err != nil {
		return out, mapNotFound(err, id)
	}
	lead.Stage = to
	lead.StageEnteredAt = entered
	lead.UpdatedAt = entered
	log.Printf("[leads][advance] lead=%d %s -> %s readiness=%.1f", id, from, to, res.ReadinessScore)

	if s.Dispatcher != nil && len(res.Delegations) > 0 {
		report := s.Dispatcher.Dispatch(ctx, lead.Snapshot(), res.Delegations)
		out.Dispatch = &report
	}
	return out, nil
}

// SetStage moves a lead manually. Only edges of the stage graph are
// accepted; the engine thresholds are not consulted.
func (s *LeadService) SetStage(ctx context.Context, id int, to models.Stage) (*models.Lead, error) {
	lead, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Engine.ValidateTransition(lead.Stage, to); err != nil {
		return nil, err
	}
	entered := s.now().UTC()
	if err := s.Repo.UpdateStage(ctx, id, to, entered); err != nil {
		return nil, mapNotFound(err, id)
	}
	log.Printf("[leads][stage] lead=%d %s -> %s (manual)", id, lead.Stage, to)
	lead.Stage = to
	lead.StageEnteredAt = entered
	lead.UpdatedAt = entered
	return lead, nil
}

// Summary counts leads per stage.
func (s *LeadService) Summary(ctx context.Context) (map[models.Stage]int, error) {
	return s.Repo.CountByStage(ctx)
}

// notifyEscalations alerts once per stage stay. Repeated advance attempts
// on a stalled lead stay quiet until it enters a stage again; a failed send
// is retried on the next attempt.
func (s *LeadService) notifyEscalations(ctx context.Context, lead *models.Lead, res *models.TransitionResult) {
	if s.Notifier == nil {
		return
	}
	var lines []string
	for _, a := range res.RecommendedActions {
		if strings.HasPrefix(a, "Escalate") {
			lines = append(lines, a)
		}
	}
	if len(lines) == 0 {
		return
	}

	stay := fmt.Sprintf("%s@%d", lead.Stage, lead.StageEnteredAt.UnixNano())
	s.mu.Lock()
	if s.escalated[lead.ID] == stay {
		s.mu.Unlock()
		return
	}
	s.escalated[lead.ID] = stay
	s.mu.Unlock()

	msg := notify.Message{
		Subject: fmt.Sprintf("Escalation: lead %d %q in %s", lead.ID, lead.Title, lead.Stage),
		Body:    strings.Join(lines, "\n"),
	}
	if err := s.Notifier.Notify(ctx, msg); err != nil {
		log.Printf("[leads][escalate][err] lead=%d: %v", lead.ID, err)
		s.mu.Lock()
		if s.escalated[lead.ID] == stay {
			delete(s.escalated, lead.ID)
		}
		s.mu.Unlock()
	}
}

func mapNotFound(err error, id int) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("%w: %d", ErrLeadNotFound, id)
	}
	return err
}
