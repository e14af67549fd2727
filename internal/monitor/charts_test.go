package monitor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dojometrics/strikeform/internal/db"
	"github.com/dojometrics/strikeform/internal/kinematics"
	"github.com/dojometrics/strikeform/internal/session"
	"github.com/dojometrics/strikeform/internal/workload"
)

func seededDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	if err := database.MigrateUp(); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	ctx := context.Background()
	if err := database.UpsertAthlete(ctx, db.Athlete{ID: "ath-1", Name: "Lina"}); err != nil {
		t.Fatalf("upsert athlete: %v", err)
	}

	base := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 14; i++ {
		r := workload.TrainingRecord{
			AthleteID:   "ath-1",
			Date:        base.AddDate(0, 0, i),
			DurationMin: 60,
			RPE:         6,
			Wellness:    workload.Wellness{SleepQuality: 7, Fatigue: 4, MuscleSoreness: 3, Stress: 3, Mood: 8, Motivation: 8},
		}
		if err := database.SaveTrainingRecord(ctx, r); err != nil {
			t.Fatalf("save record: %v", err)
		}
	}

	stats := session.Stats{SessionID: "sess-1", AthleteID: "ath-1", StartedAt: base, Frames: 2}
	metrics := []kinematics.FrameMetrics{
		{FrameIndex: 0, FrameTime: 0, KickHeight: 5, KneeAngle: 170, KickingLeg: kinematics.LegLeft, Level: kinematics.LevelLow},
		{FrameIndex: 1, FrameTime: 1.0 / 30, KickHeight: 60, KneeAngle: 175, KickingLeg: kinematics.LegLeft, Level: kinematics.LevelChest},
	}
	if err := database.SaveSession(ctx, stats, metrics, nil); err != nil {
		t.Fatalf("save session: %v", err)
	}
	return database
}

func chartMux(t *testing.T) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	NewCharts(seededDB(t)).Register(mux)
	return mux
}

func get(t *testing.T, mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func assertHTMLChart(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q, want text/html", ct)
	}
	if !strings.Contains(w.Body.String(), "echarts") {
		t.Error("response does not look like an echarts page")
	}
}

func TestACWRChart(t *testing.T) {
	mux := chartMux(t)

	assertHTMLChart(t, get(t, mux, "/charts/acwr?athlete_id=ath-1"))
	assertHTMLChart(t, get(t, mux, "/charts/acwr?athlete_id=ath-1&days=14"))

	if w := get(t, mux, "/charts/acwr"); w.Code != http.StatusBadRequest {
		t.Errorf("missing athlete_id status = %d, want 400", w.Code)
	}
	if w := get(t, mux, "/charts/acwr?athlete_id=nobody"); w.Code != http.StatusNotFound {
		t.Errorf("unknown athlete status = %d, want 404", w.Code)
	}
}

func TestKickChart(t *testing.T) {
	mux := chartMux(t)

	assertHTMLChart(t, get(t, mux, "/charts/kicks?session_id=sess-1"))

	if w := get(t, mux, "/charts/kicks"); w.Code != http.StatusBadRequest {
		t.Errorf("missing session_id status = %d, want 400", w.Code)
	}
	if w := get(t, mux, "/charts/kicks?session_id=none"); w.Code != http.StatusNotFound {
		t.Errorf("unknown session status = %d, want 404", w.Code)
	}
}

func TestLoadChart(t *testing.T) {
	mux := chartMux(t)

	assertHTMLChart(t, get(t, mux, "/charts/load?athlete_id=ath-1"))

	if w := get(t, mux, "/charts/load?athlete_id=nobody"); w.Code != http.StatusNotFound {
		t.Errorf("unknown athlete status = %d, want 404", w.Code)
	}
}
