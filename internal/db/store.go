package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dojometrics/strikeform/internal/kinematics"
	"github.com/dojometrics/strikeform/internal/session"
)

// ErrNotFound reports a lookup that matched no row.
var ErrNotFound = errors.New("not found")

// Athlete is one registered athlete.
type Athlete struct {
	ID        string    `json:"athlete_id"`
	Name      string    `json:"name"`
	Sport     string    `json:"sport"`
	CreatedAt time.Time `json:"created_at"`
}

// UpsertAthlete registers an athlete, updating the name and sport if the ID
// already exists.
func (db *DB) UpsertAthlete(ctx context.Context, a Athlete) error {
	if a.Sport == "" {
		a.Sport = "taekwondo"
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO athletes (athlete_id, name, sport)
		VALUES (?, ?, ?)
		ON CONFLICT (athlete_id) DO UPDATE SET name = excluded.name, sport = excluded.sport`,
		a.ID, a.Name, a.Sport)
	if err != nil {
		return fmt.Errorf("upsert athlete %s: %w", a.ID, err)
	}
	return nil
}

// GetAthlete looks up one athlete by ID.
func (db *DB) GetAthlete(ctx context.Context, id string) (Athlete, error) {
	var a Athlete
	err := db.QueryRowContext(ctx, `
		SELECT athlete_id, name, sport, created_at FROM athletes WHERE athlete_id = ?`, id).
		Scan(&a.ID, &a.Name, &a.Sport, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Athlete{}, ErrNotFound
	}
	if err != nil {
		return Athlete{}, fmt.Errorf("get athlete %s: %w", id, err)
	}
	return a, nil
}

// ListAthletes returns all athletes ordered by name.
func (db *DB) ListAthletes(ctx context.Context) ([]Athlete, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT athlete_id, name, sport, created_at FROM athletes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list athletes: %w", err)
	}
	defer rows.Close()

	var out []Athlete
	for rows.Next() {
		var a Athlete
		if err := rows.Scan(&a.ID, &a.Name, &a.Sport, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan athlete: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// SaveSession persists an analyzed session with its per-frame metrics and
// detected kicks in one transaction.
func (db *DB) SaveSession(ctx context.Context, stats session.Stats, metrics []kinematics.FrameMetrics, kicks []session.ScoredKick) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save session: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sessions (session_id, athlete_id, started_at, frames, skipped_frames,
			total_kicks, avg_height, max_height, avg_knee, avg_score, best_score, stance_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stats.SessionID, stats.AthleteID, stats.StartedAt, stats.Frames, stats.SkippedFrames,
		stats.TotalKicks, stats.AvgHeight, stats.MaxHeight, stats.AvgKnee,
		stats.AvgScore, stats.BestScore, stats.StanceScore)
	if err != nil {
		return fmt.Errorf("insert session %s: %w", stats.SessionID, err)
	}

	metricStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO frame_metrics (session_id, frame_index, frame_time, kick_height,
			knee_angle, hip_flexion, support_knee, hip_rotation, kicking_leg, level, visibility)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare metrics insert: %w", err)
	}
	defer metricStmt.Close()

	for _, m := range metrics {
		_, err := metricStmt.ExecContext(ctx, stats.SessionID, m.FrameIndex, m.FrameTime,
			m.KickHeight, m.KneeAngle, m.HipFlexion, m.SupportKnee, m.HipRotation,
			string(m.KickingLeg), string(m.Level), m.Visibility)
		if err != nil {
			return fmt.Errorf("insert frame %d: %w", m.FrameIndex, err)
		}
	}

	for _, k := range kicks {
		var maxSpeed float64
		if k.Speed != nil {
			maxSpeed = k.Speed.MaxSpeedMPS
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO kick_events (session_id, kick_number, frame_index, frame_time,
				kick_type, confidence, score, grade, kick_height, knee_angle, max_speed_mps)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			stats.SessionID, k.KickNumber, k.FrameIndex, k.FrameTime,
			string(k.Classification.Type), k.Classification.Confidence,
			k.Score, k.Grade, k.KickHeight, k.KneeAngle, maxSpeed)
		if err != nil {
			return fmt.Errorf("insert kick %d: %w", k.KickNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit session %s: %w", stats.SessionID, err)
	}
	return nil
}

// GetSession loads one session's summary row.
func (db *DB) GetSession(ctx context.Context, sessionID string) (session.Stats, error) {
	var s session.Stats
	err := db.QueryRowContext(ctx, `
		SELECT session_id, athlete_id, started_at, frames, skipped_frames, total_kicks,
			avg_height, max_height, avg_knee, avg_score, best_score, stance_score
		FROM sessions WHERE session_id = ?`, sessionID).
		Scan(&s.SessionID, &s.AthleteID, &s.StartedAt, &s.Frames, &s.SkippedFrames,
			&s.TotalKicks, &s.AvgHeight, &s.MaxHeight, &s.AvgKnee,
			&s.AvgScore, &s.BestScore, &s.StanceScore)
	if errors.Is(err, sql.ErrNoRows) {
		return session.Stats{}, ErrNotFound
	}
	if err != nil {
		return session.Stats{}, fmt.Errorf("get session %s: %w", sessionID, err)
	}
	return s, nil
}

// ListSessions returns an athlete's session summaries oldest first, the
// ordering Progress expects.
func (db *DB) ListSessions(ctx context.Context, athleteID string) ([]session.Stats, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT session_id, athlete_id, started_at, frames, skipped_frames, total_kicks,
			avg_height, max_height, avg_knee, avg_score, best_score, stance_score
		FROM sessions WHERE athlete_id = ? ORDER BY started_at`, athleteID)
	if err != nil {
		return nil, fmt.Errorf("list sessions for %s: %w", athleteID, err)
	}
	defer rows.Close()

	var out []session.Stats
	for rows.Next() {
		var s session.Stats
		if err := rows.Scan(&s.SessionID, &s.AthleteID, &s.StartedAt, &s.Frames,
			&s.SkippedFrames, &s.TotalKicks, &s.AvgHeight, &s.MaxHeight, &s.AvgKnee,
			&s.AvgScore, &s.BestScore, &s.StanceScore); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// StoredKick is a persisted kick event row.
type StoredKick struct {
	SessionID   string  `json:"session_id"`
	KickNumber  int     `json:"kick_number"`
	FrameIndex  int     `json:"frame_index"`
	FrameTime   float64 `json:"frame_time"`
	KickType    string  `json:"kick_type"`
	Confidence  float64 `json:"confidence"`
	Score       int     `json:"score"`
	Grade       string  `json:"grade"`
	KickHeight  float64 `json:"kick_height"`
	KneeAngle   float64 `json:"knee_angle"`
	MaxSpeedMPS float64 `json:"max_speed_mps"`
}

// ListKicks returns a session's kick events in detection order.
func (db *DB) ListKicks(ctx context.Context, sessionID string) ([]StoredKick, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT session_id, kick_number, frame_index, frame_time, kick_type, confidence,
			score, grade, kick_height, knee_angle, max_speed_mps
		FROM kick_events WHERE session_id = ? ORDER BY kick_number`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list kicks for %s: %w", sessionID, err)
	}
	defer rows.Close()

	var out []StoredKick
	for rows.Next() {
		var k StoredKick
		if err := rows.Scan(&k.SessionID, &k.KickNumber, &k.FrameIndex, &k.FrameTime,
			&k.KickType, &k.Confidence, &k.Score, &k.Grade, &k.KickHeight,
			&k.KneeAngle, &k.MaxSpeedMPS); err != nil {
			return nil, fmt.Errorf("scan kick: %w", err)
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// ListFrameMetrics returns a session's per-frame metrics in frame order.
func (db *DB) ListFrameMetrics(ctx context.Context, sessionID string) ([]kinematics.FrameMetrics, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT frame_index, frame_time, kick_height, knee_angle, hip_flexion,
			support_knee, hip_rotation, kicking_leg, level, visibility
		FROM frame_metrics WHERE session_id = ? ORDER BY frame_index`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list metrics for %s: %w", sessionID, err)
	}
	defer rows.Close()

	var out []kinematics.FrameMetrics
	for rows.Next() {
		var m kinematics.FrameMetrics
		var leg, level string
		if err := rows.Scan(&m.FrameIndex, &m.FrameTime, &m.KickHeight, &m.KneeAngle,
			&m.HipFlexion, &m.SupportKnee, &m.HipRotation, &leg, &level, &m.Visibility); err != nil {
			return nil, fmt.Errorf("scan metrics: %w", err)
		}
		m.KickingLeg = kinematics.Leg(leg)
		m.Level = kinematics.Level(level)
		out = append(out, m)
	}
	return out, rows.Err()
}
