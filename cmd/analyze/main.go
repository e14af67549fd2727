// Command analyze runs the kick-analysis pipeline over a recorded frame
// file and writes reports. Frame files hold the JSON ingest payload: an
// athlete id, an optional fps, and an array of landmark frames.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dojometrics/strikeform/internal/config"
	"github.com/dojometrics/strikeform/internal/db"
	"github.com/dojometrics/strikeform/internal/monitor"
	"github.com/dojometrics/strikeform/internal/pose"
	"github.com/dojometrics/strikeform/internal/report"
	"github.com/dojometrics/strikeform/internal/session"
)

var (
	input      = flag.String("input", "", "Frames JSON file (required)")
	outputDir  = flag.String("out", "analysis", "Output directory for reports and plots")
	dbFile     = flag.String("db", "", "SQLite database to persist the session into (skipped when empty)")
	athleteID  = flag.String("athlete", "", "Athlete id (overrides the one in the frames file)")
	configPath = flag.String("config", "", "Tuning config JSON (compiled defaults when empty)")
	plots      = flag.Bool("plots", true, "Write PNG plots of the session")
)

type frameFile struct {
	AthleteID string       `json:"athlete_id"`
	FPS       float64      `json:"fps,omitempty"`
	Frames    []pose.Frame `json:"frames"`
}

func main() {
	flag.Parse()

	if *input == "" {
		log.Fatal("-input is required")
	}

	data, err := os.ReadFile(*input)
	if err != nil {
		log.Fatalf("failed to read frames file: %v", err)
	}
	var ff frameFile
	if err := json.Unmarshal(data, &ff); err != nil {
		log.Fatalf("failed to parse frames file: %v", err)
	}
	if *athleteID != "" {
		ff.AthleteID = *athleteID
	}
	if ff.AthleteID == "" {
		log.Fatal("no athlete id in frames file; pass -athlete")
	}
	if len(ff.Frames) == 0 {
		log.Fatal("frames file holds no frames")
	}

	tuning := config.EmptyTuningConfig()
	if *configPath != "" {
		tuning, err = config.LoadTuningConfig(*configPath)
		if err != nil {
			log.Fatalf("failed to load tuning config: %v", err)
		}
	}

	fps := ff.FPS
	if fps <= 0 {
		fps = tuning.GetFPS()
	}

	analyzer := session.NewAnalyzer(ff.AthleteID, tuning)
	for i, frame := range ff.Frames {
		analyzer.ProcessFrame(frame, float64(i)/fps)
	}

	stats := analyzer.Stats()
	summary := analyzer.InjurySummary()
	match := analyzer.Match()

	log.Printf("session %s: %d frames (%d skipped), %d kicks, best score %d",
		stats.SessionID, stats.Frames, stats.SkippedFrames, stats.TotalKicks, stats.BestScore)
	log.Printf("match simulation: %d points, risk events: %d", match.TotalPoints, summary.TotalRiskEvents)

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output dir: %v", err)
	}

	storedKicks := make([]db.StoredKick, 0, len(analyzer.Kicks()))
	for _, k := range analyzer.Kicks() {
		sk := db.StoredKick{
			SessionID:  stats.SessionID,
			KickNumber: k.KickNumber,
			FrameIndex: k.FrameIndex,
			FrameTime:  k.FrameTime,
			KickType:   string(k.Classification.Type),
			Confidence: k.Classification.Confidence,
			Score:      k.Score,
			Grade:      k.Grade,
			KickHeight: k.KickHeight,
			KneeAngle:  k.KneeAngle,
		}
		if k.Speed != nil {
			sk.MaxSpeedMPS = k.Speed.MaxSpeedMPS
		}
		storedKicks = append(storedKicks, sk)
	}

	if err := writeCSVs(stats.SessionID, analyzer, storedKicks); err != nil {
		log.Fatalf("failed to write CSV exports: %v", err)
	}

	md := report.SessionMarkdown(stats, storedKicks, summary)
	mdFile := filepath.Join(*outputDir, fmt.Sprintf("%s_report.md", stats.SessionID))
	if err := os.WriteFile(mdFile, []byte(md), 0644); err != nil {
		log.Fatalf("failed to write markdown report: %v", err)
	}
	log.Printf("wrote %s", mdFile)

	if *plots {
		plotter, err := monitor.NewSessionPlotter(*outputDir)
		if err != nil {
			log.Fatalf("failed to create plotter: %v", err)
		}
		files, err := plotter.PlotMetrics(stats.SessionID, analyzer.Metrics())
		if err != nil {
			log.Printf("skipping plots: %v", err)
		} else {
			for _, f := range files {
				log.Printf("wrote %s", f)
			}
		}
	}

	if *dbFile != "" {
		if err := persist(stats, analyzer); err != nil {
			log.Fatalf("failed to persist session: %v", err)
		}
		log.Printf("session saved to %s", *dbFile)
	}
}

func writeCSVs(sessionID string, analyzer *session.Analyzer, kicks []db.StoredKick) error {
	metricsFile := filepath.Join(*outputDir, fmt.Sprintf("%s_metrics.csv", sessionID))
	f, err := os.Create(metricsFile)
	if err != nil {
		return err
	}
	if err := report.WriteFrameMetricsCSV(f, analyzer.Metrics()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("wrote %s", metricsFile)

	kicksFile := filepath.Join(*outputDir, fmt.Sprintf("%s_kicks.csv", sessionID))
	f, err = os.Create(kicksFile)
	if err != nil {
		return err
	}
	if err := report.WriteKicksCSV(f, kicks); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("wrote %s", kicksFile)
	return nil
}

func persist(stats session.Stats, analyzer *session.Analyzer) error {
	database, err := db.OpenDB(*dbFile)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	if err := database.MigrateUp(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	ctx := context.Background()
	if err := database.UpsertAthlete(ctx, db.Athlete{ID: stats.AthleteID, Name: stats.AthleteID}); err != nil {
		return fmt.Errorf("upsert athlete: %w", err)
	}
	return database.SaveSession(ctx, stats, analyzer.Metrics(), analyzer.Kicks())
}
