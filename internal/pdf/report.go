package pdf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"salespipeline/internal/models"
)

// Generator renders lead status reports.
type Generator interface {
	Render(w io.Writer, lead *models.Lead, status *models.StatusReport) error
	Save(lead *models.Lead, status *models.StatusReport) (string, error)
}

// ReportGenerator draws with a TTF font when FontPath is set and with core
// Helvetica otherwise.
type ReportGenerator struct {
	RootDir  string // archive directory, e.g. "./files"
	FontPath string
	fontName string
}

func NewReportGenerator(rootDir, fontPath string) *ReportGenerator {
	name := "Helvetica"
	if fontPath != "" {
		name = "DejaVu"
	}
	return &ReportGenerator{RootDir: filepath.Clean(rootDir), FontPath: fontPath, fontName: name}
}

func (g *ReportGenerator) Render(w io.Writer, lead *models.Lead, status *models.StatusReport) error {
	pdf := g.build(lead, status)
	return pdf.Output(w)
}

// Save writes the report under RootDir and returns its public path.
func (g *ReportGenerator) Save(lead *models.Lead, status *models.StatusReport) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("create files dir: %w", err)
	}
	name := fmt.Sprintf("lead_%d_%s.pdf", lead.ID, status.GeneratedAt.UTC().Format("20060102T150405"))
	absPath := filepath.Join(g.RootDir, name)

	pdf := g.build(lead, status)
	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", err
	}
	return "/" + filepath.ToSlash(name), nil
}

func (g *ReportGenerator) build(lead *models.Lead, status *models.StatusReport) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Lead %d status", lead.ID), true)
	pdf.SetAuthor("Sales Pipeline", true)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	if g.FontPath != "" {
		pdf.AddUTF8Font(g.fontName, "", g.FontPath)
		pdf.AddUTF8Font(g.fontName, "B", g.FontPath)
	}
	tr := g.translator(pdf)

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(g.fontName, "", 9)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, "LEAD STATUS REPORT", "", 1, "C", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("%s  |  generated %s", lead.Title, status.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"))), "", 1, "C", false, 0, "")
	g.hr(pdf)

	g.sectionTitle(pdf, "Lead")
	g.kvLine(pdf, "Lead", fmt.Sprintf("#%d", lead.ID))
	g.kvLine(pdf, "Company", tr(lead.Company))
	g.kvLine(pdf, "Stage", string(status.CurrentStage))
	st := status.StageTime
	g.kvLine(pdf, "In stage", fmt.Sprintf("%dd %dh (window %g-%g days)", st.Days, st.Hours, st.MinDays, st.TimeoutThresholdDays))
	g.hr(pdf)

	g.sectionTitle(pdf, "Scores")
	b := status.BANT
	g.kvLine(pdf, "BANT", fmt.Sprintf("%g/100 (B %g, A %g, N %g, T %g)", b.Total, b.Budget, b.Authority, b.Need, b.Timeline))
	g.kvLine(pdf, "Intelligence", fmt.Sprintf("%d%% complete", status.Intelligence.Completeness))
	g.kvLine(pdf, "Engagement", fmt.Sprintf("%d/50", status.Engagement.EngagementScore))
	g.kvLine(pdf, "Readiness", fmt.Sprintf("%.1f/100", status.Readiness.Score))
	g.hr(pdf)

	if t := status.Transition; t != nil {
		g.sectionTitle(pdf, "Transition")
		target := "none"
		if t.TargetStage != nil {
			target = string(*t.TargetStage)
		}
		verdict := "blocked"
		if t.CanTransition {
			verdict = "ready"
		}
		g.kvLine(pdf, "Target", fmt.Sprintf("%s (%s)", target, verdict))
		g.kvLine(pdf, "Confidence", fmt.Sprintf("%.2f", t.Confidence))
		g.list(pdf, tr, "Blockers", t.Blockers)
		g.list(pdf, tr, "Warnings", t.Warnings)
		delegations := make([]string, 0, len(t.Delegations))
		for _, d := range t.Delegations {
			delegations = append(delegations, fmt.Sprintf("[%s] %s: %s", strings.ToUpper(string(d.Priority)), d.Specialist, d.Action))
		}
		g.list(pdf, tr, "Delegations", delegations)
		g.hr(pdf)
	}

	g.list(pdf, tr, "Next steps", status.Recommendations)
	return pdf
}

func (g *ReportGenerator) translator(pdf *gofpdf.Fpdf) func(string) string {
	if g.FontPath != "" {
		return func(s string) string { return s }
	}
	return pdf.UnicodeTranslatorFromDescriptor("")
}

func (g *ReportGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
}

func (g *ReportGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *ReportGenerator) list(pdf *gofpdf.Fpdf, tr func(string) string, title string, items []string) {
	if len(items) == 0 {
		return
	}
	g.sectionTitle(pdf, title)
	for _, it := range items {
		pdf.MultiCell(0, 6, tr("- "+it), "", "L", false)
	}
	pdf.Ln(1)
}

func (g *ReportGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}
