package pdf

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"salespipeline/internal/models"
)

func sampleReport() (*models.Lead, *models.StatusReport) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	target := models.StageOutreach
	lead := &models.Lead{ID: 7, Title: "Fleet telematics", Company: "Acme Logistics", Stage: models.StageIntelligence}
	status := &models.StatusReport{
		LeadID:       "7",
		CurrentStage: models.StageIntelligence,
		BANT:         models.BANTScore{Budget: 25, Authority: 20, Need: 10, Timeline: 10, Total: 65},
		Intelligence: models.IntelligenceStatus{Completeness: 80},
		StageTime:    models.StageTime{Days: 3, MinDays: 1, TimeoutThresholdDays: 7},
		Readiness:    models.ReadinessBreakdown{Score: 60},
		Transition: &models.TransitionResult{
			CanTransition: true,
			TargetStage:   &target,
			Confidence:    0.9,
			Warnings:      []string{"Lead is approaching the stage timeout"},
			Delegations: []models.DelegationRecommendation{
				{Specialist: models.SpecialistOutreachComposer, Action: "Compose outreach", Priority: models.PriorityHigh},
			},
		},
		Recommendations: []string{"Send the first outreach email"},
		GeneratedAt:     now,
	}
	return lead, status
}

func TestRender(t *testing.T) {
	lead, status := sampleReport()
	var buf bytes.Buffer
	if err := NewReportGenerator(t.TempDir(), "").Render(&buf, lead, status); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "%PDF-") {
		t.Errorf("output is not a PDF: %q", buf.String()[:min(20, buf.Len())])
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	lead, status := sampleReport()
	status.Transition = nil

	path, err := NewReportGenerator(dir, "").Save(lead, status)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if path != "/lead_7_20260310T120000.pdf" {
		t.Errorf("path = %q", path)
	}
	info, err := os.Stat(filepath.Join(dir, strings.TrimPrefix(path, "/")))
	if err != nil || info.Size() == 0 {
		t.Errorf("saved file: %v", err)
	}
}
