package report

import (
	"fmt"
	"strings"

	"github.com/dojometrics/strikeform/internal/db"
	"github.com/dojometrics/strikeform/internal/injury"
	"github.com/dojometrics/strikeform/internal/session"
	"github.com/dojometrics/strikeform/internal/workload"
)

// SessionMarkdown renders a coach-readable session report.
func SessionMarkdown(stats session.Stats, kicks []db.StoredKick, summary injury.SessionSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Session Report: %s\n\n", stats.SessionID)
	fmt.Fprintf(&b, "Athlete: %s  \n", stats.AthleteID)
	fmt.Fprintf(&b, "Date: %s\n\n", stats.StartedAt.Format("2006-01-02 15:04"))

	b.WriteString("## Overview\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Frames analyzed | %d (%d skipped) |\n", stats.Frames, stats.SkippedFrames)
	fmt.Fprintf(&b, "| Kicks detected | %d |\n", stats.TotalKicks)
	fmt.Fprintf(&b, "| Max kick height | %.1f%% of body height |\n", stats.MaxHeight)
	fmt.Fprintf(&b, "| Average kick height | %.1f%% |\n", stats.AvgHeight)
	fmt.Fprintf(&b, "| Best score | %d |\n", stats.BestScore)
	fmt.Fprintf(&b, "| Average score | %.1f |\n", stats.AvgScore)
	fmt.Fprintf(&b, "| Stance score | %.1f |\n\n", stats.StanceScore)

	if len(stats.TypeBreakdown) > 0 {
		b.WriteString("## Kick Types\n\n")
		fmt.Fprintf(&b, "| Type | Count |\n|---|---|\n")
		for kickType, count := range stats.TypeBreakdown {
			fmt.Fprintf(&b, "| %s | %d |\n", kickType, count)
		}
		b.WriteString("\n")
	}

	if len(kicks) > 0 {
		b.WriteString("## Kicks\n\n")
		fmt.Fprintf(&b, "| # | Time (s) | Type | Score | Grade | Height | Speed (m/s) |\n")
		fmt.Fprintf(&b, "|---|---|---|---|---|---|---|\n")
		for _, k := range kicks {
			fmt.Fprintf(&b, "| %d | %.2f | %s | %d | %s | %.1f%% | %.1f |\n",
				k.KickNumber, k.FrameTime, k.KickType, k.Score, k.Grade, k.KickHeight, k.MaxSpeedMPS)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Injury Risk\n\n")
	fmt.Fprintf(&b, "Risk events: %d (%d high, %d medium)  \n",
		summary.TotalRiskEvents, summary.HighRiskEvents, summary.MediumRiskEvents)
	fmt.Fprintf(&b, "Fatigue events: %d\n\n", summary.FatigueEvents)
	if len(summary.AlertBreakdown) > 0 {
		fmt.Fprintf(&b, "| Alert | Count |\n|---|---|\n")
		for alertType, count := range summary.AlertBreakdown {
			fmt.Fprintf(&b, "| %s | %d |\n", alertType, count)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "**Recommendation:** %s\n", summary.Recommendation)

	return b.String()
}

// WorkloadMarkdown renders an athlete's current workload readiness.
func WorkloadMarkdown(athleteID string, snap workload.Snapshot, wellnessScore float64, risk workload.CombinedRisk, recs []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Workload Report: %s\n\n", athleteID)
	fmt.Fprintf(&b, "Evaluated: %s\n\n", snap.Date.Format("2006-01-02"))

	b.WriteString("## ACWR\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Acute load (7d avg) | %.1f |\n", snap.AcuteAvg)
	fmt.Fprintf(&b, "| Chronic load (28d avg) | %.1f |\n", snap.ChronicAvg)
	fmt.Fprintf(&b, "| ACWR | %.2f |\n", snap.ACWR)
	fmt.Fprintf(&b, "| Zone | %s |\n\n", workload.ZoneLabels[snap.Zone])

	b.WriteString("## Readiness\n\n")
	fmt.Fprintf(&b, "Wellness score: %.1f (%s)  \n", wellnessScore, workload.WellnessStatus(wellnessScore))
	fmt.Fprintf(&b, "Combined risk: %.1f (%s)\n\n", risk.Combined, risk.Status)
	fmt.Fprintf(&b, "%s\n", risk.Recommendation)

	if len(recs) > 0 {
		b.WriteString("\n## Recommendations\n\n")
		for _, rec := range recs {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
	}

	return b.String()
}
