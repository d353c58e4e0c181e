package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"salespipeline/internal/models"
	"salespipeline/internal/pipeline"
)

// RenderResult formats one transition evaluation as a bordered card.
func RenderResult(res *models.TransitionResult) string {
	var b strings.Builder

	badge := blockedBadge.Render("BLOCKED")
	target := "none"
	if res.CanTransition {
		badge = okBadge.Render("READY")
	}
	if res.TargetStage != nil {
		target = string(*res.TargetStage)
	}

	lead := res.LeadID
	if lead == "" {
		lead = "(no id)"
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, headerStyle.Render("Lead "+lead), " ", badge))
	b.WriteString("\n\n")
	b.WriteString(kv("stage", fmt.Sprintf("%s -> %s", res.CurrentStage, target)))
	b.WriteString(kv("readiness", fmt.Sprintf("%.1f", res.ReadinessScore)))
	b.WriteString(kv("bant", fmt.Sprintf("%g/100", res.BANTScore)))
	b.WriteString(kv("confidence", fmt.Sprintf("%.0f%%", res.Confidence*100)))

	section(&b, "Blockers", res.Blockers, blockerStyle)
	section(&b, "Warnings", res.Warnings, warningStyle)
	section(&b, "Next steps", res.RecommendedActions, actionStyle)

	if len(res.Delegations) > 0 {
		b.WriteString("\n" + headerStyle.Render("Delegations") + "\n")
		for _, d := range res.Delegations {
			ps, ok := priorityStyles[string(d.Priority)]
			if !ok {
				ps = dimStyle
			}
			fmt.Fprintf(&b, "  %s %s %s\n", ps.Render(fmt.Sprintf("[%s]", d.Priority)), d.Specialist, dimStyle.Render(d.Action))
		}
	}

	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func kv(label, value string) string {
	return labelStyle.Render(label) + value + "\n"
}

func section(b *strings.Builder, title string, lines []string, style lipgloss.Style) {
	if len(lines) == 0 {
		return
	}
	b.WriteString("\n" + headerStyle.Render(title) + "\n")
	for _, l := range lines {
		b.WriteString("  " + style.Render("• "+l) + "\n")
	}
}

// ReadSnapshots decodes a file holding either one snapshot object or an
// array of them.
func ReadSnapshots(r io.Reader) ([]*models.LeadSnapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty snapshot input")
	}
	if data[0] == '[' {
		var snaps []*models.LeadSnapshot
		if err := json.Unmarshal(data, &snaps); err != nil {
			return nil, fmt.Errorf("decode snapshots: %w", err)
		}
		return snaps, nil
	}
	var snap models.LeadSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return []*models.LeadSnapshot{&snap}, nil
}

// Eval evaluates every snapshot in the file at path and writes either the
// styled cards or raw JSON to w.
func Eval(ctx context.Context, engine *pipeline.Orchestrator, path string, asJSON bool, w io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	snaps, err := ReadSnapshots(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	items, err := engine.BatchEvaluate(ctx, snaps)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}
	for _, it := range items {
		if it.Error != "" {
			fmt.Fprintln(w, blockerStyle.Render(fmt.Sprintf("#%d: %s", it.Index, it.Error)))
			continue
		}
		fmt.Fprintln(w, RenderResult(it.Result))
	}
	return nil
}
