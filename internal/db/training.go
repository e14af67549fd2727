package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dojometrics/strikeform/internal/workload"
)

const dateLayout = "2006-01-02"

// SaveTrainingRecord logs one day's training for an athlete. Logging the
// same date twice replaces the earlier entry; records are immutable in
// shape but correctable.
func (db *DB) SaveTrainingRecord(ctx context.Context, r workload.TrainingRecord) error {
	if r.Load == 0 {
		r.Load = workload.SessionLoad(r.DurationMin, r.RPE)
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO training_records (athlete_id, date, duration_min, rpe, training_load,
			sleep_quality, fatigue, muscle_soreness, stress, mood, motivation)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (athlete_id, date) DO UPDATE SET
			duration_min = excluded.duration_min,
			rpe = excluded.rpe,
			training_load = excluded.training_load,
			sleep_quality = excluded.sleep_quality,
			fatigue = excluded.fatigue,
			muscle_soreness = excluded.muscle_soreness,
			stress = excluded.stress,
			mood = excluded.mood,
			motivation = excluded.motivation`,
		r.AthleteID, r.Date.Format(dateLayout), r.DurationMin, r.RPE, r.Load,
		r.Wellness.SleepQuality, r.Wellness.Fatigue, r.Wellness.MuscleSoreness,
		r.Wellness.Stress, r.Wellness.Mood, r.Wellness.Motivation)
	if err != nil {
		return fmt.Errorf("save training record %s/%s: %w", r.AthleteID, r.Date.Format(dateLayout), err)
	}
	return nil
}

// ListTrainingRecords returns an athlete's training log in date order, the
// ordering the ACWR calculator expects.
func (db *DB) ListTrainingRecords(ctx context.Context, athleteID string) ([]workload.TrainingRecord, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT athlete_id, date, duration_min, rpe, training_load,
			sleep_quality, fatigue, muscle_soreness, stress, mood, motivation
		FROM training_records WHERE athlete_id = ? ORDER BY date`, athleteID)
	if err != nil {
		return nil, fmt.Errorf("list training records for %s: %w", athleteID, err)
	}
	defer rows.Close()

	var out []workload.TrainingRecord
	for rows.Next() {
		var r workload.TrainingRecord
		var date string
		if err := rows.Scan(&r.AthleteID, &date, &r.DurationMin, &r.RPE, &r.Load,
			&r.Wellness.SleepQuality, &r.Wellness.Fatigue, &r.Wellness.MuscleSoreness,
			&r.Wellness.Stress, &r.Wellness.Mood, &r.Wellness.Motivation); err != nil {
			return nil, fmt.Errorf("scan training record: %w", err)
		}
		if r.Date, err = time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("parse record date %q: %w", date, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LatestWellness returns the most recent wellness inputs for an athlete.
func (db *DB) LatestWellness(ctx context.Context, athleteID string) (workload.Wellness, bool, error) {
	var w workload.Wellness
	err := db.QueryRowContext(ctx, `
		SELECT sleep_quality, fatigue, muscle_soreness, stress, mood, motivation
		FROM training_records WHERE athlete_id = ? ORDER BY date DESC LIMIT 1`, athleteID).
		Scan(&w.SleepQuality, &w.Fatigue, &w.MuscleSoreness, &w.Stress, &w.Mood, &w.Motivation)
	if errors.Is(err, sql.ErrNoRows) {
		return workload.Wellness{}, false, nil
	}
	if err != nil {
		return workload.Wellness{}, false, fmt.Errorf("latest wellness for %s: %w", athleteID, err)
	}
	return w, true, nil
}
