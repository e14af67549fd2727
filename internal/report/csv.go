// Package report produces coach-facing exports: CSV data dumps and a
// Markdown session summary.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/dojometrics/strikeform/internal/db"
	"github.com/dojometrics/strikeform/internal/kinematics"
	"github.com/dojometrics/strikeform/internal/workload"
)

// WriteFrameMetricsCSV writes per-frame metrics, one row per frame.
func WriteFrameMetricsCSV(w io.Writer, metrics []kinematics.FrameMetrics) error {
	cw := csv.NewWriter(w)
	header := []string{
		"frame_index", "frame_time", "kick_height", "knee_angle",
		"hip_flexion", "support_knee", "hip_rotation",
		"kicking_leg", "level", "visibility",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, m := range metrics {
		row := []string{
			strconv.Itoa(m.FrameIndex),
			fmt.Sprintf("%.3f", m.FrameTime),
			fmt.Sprintf("%.2f", m.KickHeight),
			fmt.Sprintf("%.2f", m.KneeAngle),
			fmt.Sprintf("%.2f", m.HipFlexion),
			fmt.Sprintf("%.2f", m.SupportKnee),
			fmt.Sprintf("%.2f", m.HipRotation),
			string(m.KickingLeg),
			string(m.Level),
			fmt.Sprintf("%.1f", m.Visibility),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteKicksCSV writes detected kick events, one row per kick.
func WriteKicksCSV(w io.Writer, kicks []db.StoredKick) error {
	cw := csv.NewWriter(w)
	header := []string{
		"kick_number", "frame_index", "frame_time", "kick_type",
		"confidence", "score", "grade", "kick_height", "knee_angle", "max_speed_mps",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, k := range kicks {
		row := []string{
			strconv.Itoa(k.KickNumber),
			strconv.Itoa(k.FrameIndex),
			fmt.Sprintf("%.3f", k.FrameTime),
			k.KickType,
			fmt.Sprintf("%.2f", k.Confidence),
			strconv.Itoa(k.Score),
			k.Grade,
			fmt.Sprintf("%.2f", k.KickHeight),
			fmt.Sprintf("%.2f", k.KneeAngle),
			fmt.Sprintf("%.2f", k.MaxSpeedMPS),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteACWRCSV writes a rolling ACWR series, one row per evaluation date.
func WriteACWRCSV(w io.Writer, snaps []workload.Snapshot) error {
	cw := csv.NewWriter(w)
	header := []string{"date", "acute_load_avg", "chronic_load_avg", "acwr", "zone"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, s := range snaps {
		row := []string{
			s.Date.Format("2006-01-02"),
			fmt.Sprintf("%.2f", s.AcuteAvg),
			fmt.Sprintf("%.2f", s.ChronicAvg),
			fmt.Sprintf("%.2f", s.ACWR),
			string(s.Zone),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
