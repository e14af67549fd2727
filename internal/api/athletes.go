package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dojometrics/strikeform/internal/db"
	"github.com/dojometrics/strikeform/internal/monitoring"
	"github.com/dojometrics/strikeform/internal/report"
	"github.com/dojometrics/strikeform/internal/session"
	"github.com/dojometrics/strikeform/internal/workload"
)

func (s *Server) handleAthletes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		athletes, err := s.db.ListAthletes(r.Context())
		if err != nil {
			s.writeJSONError(w, http.StatusInternalServerError,
				fmt.Sprintf("Failed to list athletes: %v", err))
			return
		}
		s.writeJSON(w, http.StatusOK, athletes)
	case http.MethodPost:
		var a db.Athlete
		if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
			s.writeJSONError(w, http.StatusBadRequest, "Invalid athlete payload")
			return
		}
		if a.ID == "" || a.Name == "" {
			s.writeJSONError(w, http.StatusBadRequest, "athlete_id and name are required")
			return
		}
		if err := s.db.UpsertAthlete(r.Context(), a); err != nil {
			s.writeJSONError(w, http.StatusInternalServerError,
				fmt.Sprintf("Failed to save athlete: %v", err))
			return
		}
		s.writeJSON(w, http.StatusCreated, a)
	default:
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleAthleteSubpath routes
// /api/athletes/{id}[/sessions|/progress|/evaluate|/report|/acwr.csv].
func (s *Server) handleAthleteSubpath(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/athletes/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		s.writeJSONError(w, http.StatusBadRequest, "Missing athlete id")
		return
	}

	switch action {
	case "":
		s.showAthlete(w, r, id)
	case "sessions":
		s.listAthleteSessions(w, r, id)
	case "progress":
		s.showProgress(w, r, id)
	case "evaluate":
		s.evaluateAthlete(w, r, id)
	case "report":
		s.workloadReport(w, r, id)
	case "acwr.csv":
		s.exportACWR(w, r, id)
	default:
		s.writeJSONError(w, http.StatusNotFound, "Unknown athlete resource")
	}
}

func (s *Server) showAthlete(w http.ResponseWriter, r *http.Request, id string) {
	a, err := s.db.GetAthlete(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		s.writeJSONError(w, http.StatusNotFound, "Athlete not found")
		return
	}
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to load athlete: %v", err))
		return
	}
	s.writeJSON(w, http.StatusOK, a)
}

func (s *Server) listAthleteSessions(w http.ResponseWriter, r *http.Request, id string) {
	sessions, err := s.db.ListSessions(r.Context(), id)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to list sessions: %v", err))
		return
	}
	s.writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) showProgress(w http.ResponseWriter, r *http.Request, id string) {
	history, err := s.db.ListSessions(r.Context(), id)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to list sessions: %v", err))
		return
	}
	s.writeJSON(w, http.StatusOK, session.Progress(history))
}

// Evaluation is the combined injury-risk picture for one athlete on one date.
type Evaluation struct {
	AthleteID       string                `json:"athlete_id"`
	Date            string                `json:"date"`
	ACWR            workload.Snapshot     `json:"acwr"`
	ZoneLabel       string                `json:"zone_label"`
	WellnessScore   float64               `json:"wellness_score"`
	WellnessStatus  string                `json:"wellness_status"`
	Risk            workload.CombinedRisk `json:"risk"`
	Alerts          []workload.Alert      `json:"alerts"`
	Recommendations []string              `json:"recommendations"`
	Spikes          []workload.LoadSpike  `json:"load_spikes"`
}

func (s *Server) evaluateAthlete(w http.ResponseWriter, r *http.Request, id string) {
	eval, ok := s.buildEvaluation(w, r, id)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, eval)
}

// workloadReport serves the evaluation as a Markdown document.
func (s *Server) workloadReport(w http.ResponseWriter, r *http.Request, id string) {
	eval, ok := s.buildEvaluation(w, r, id)
	if !ok {
		return
	}
	md := report.WorkloadMarkdown(id, eval.ACWR, eval.WellnessScore, eval.Risk, eval.Recommendations)
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(md))
}

// exportACWR serves an athlete's rolling ACWR series as a CSV download.
// Query params:
//   - date (optional; evaluation end date, default now)
//   - days (optional; default 60)
func (s *Server) exportACWR(w http.ResponseWriter, r *http.Request, id string) {
	at, ok := s.evalDate(w, r)
	if !ok {
		return
	}
	days := 60
	if d := r.URL.Query().Get("days"); d != "" {
		if v, err := strconv.Atoi(d); err == nil && v > 0 && v <= 365 {
			days = v
		}
	}

	records, err := s.db.ListTrainingRecords(r.Context(), id)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to load training records: %v", err))
		return
	}
	if len(records) == 0 {
		s.writeJSONError(w, http.StatusNotFound, "No training records for athlete")
		return
	}

	snaps := workload.RollingACWR(records, at, days)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s_acwr.csv", id))
	if err := report.WriteACWRCSV(w, snaps); err != nil {
		monitoring.Logf("api: failed to write ACWR CSV for %s: %v", id, err)
	}
}

// evalDate resolves the evaluation date from the optional date query param.
func (s *Server) evalDate(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	at := s.clock.Now()
	if d := r.URL.Query().Get("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			s.writeJSONError(w, http.StatusBadRequest, "Invalid 'date' parameter, want YYYY-MM-DD")
			return time.Time{}, false
		}
		at = parsed
	}
	return at, true
}

func (s *Server) buildEvaluation(w http.ResponseWriter, r *http.Request, id string) (Evaluation, bool) {
	at, ok := s.evalDate(w, r)
	if !ok {
		return Evaluation{}, false
	}

	records, err := s.db.ListTrainingRecords(r.Context(), id)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to load training records: %v", err))
		return Evaluation{}, false
	}
	if len(records) == 0 {
		s.writeJSONError(w, http.StatusNotFound, "No training records for athlete")
		return Evaluation{}, false
	}

	snap := workload.CalcACWR(records, at)
	wellness, ok, err := s.db.LatestWellness(r.Context(), id)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to load wellness: %v", err))
		return Evaluation{}, false
	}
	score := 0.0
	if ok {
		score = workload.WellnessScore(wellness)
	}

	return Evaluation{
		AthleteID:       id,
		Date:            at.Format("2006-01-02"),
		ACWR:            snap,
		ZoneLabel:       workload.ZoneLabels[snap.Zone],
		WellnessScore:   score,
		WellnessStatus:  workload.WellnessStatus(score),
		Risk:            workload.CombineRisk(snap.ACWR, score),
		Alerts:          workload.CheckAlerts(id, snap.ACWR, score, at),
		Recommendations: workload.Recommend(snap.ACWR, score, records),
		Spikes:          workload.DetectLoadSpikes(records, s.cfg.GetSpikeRatio()),
	}, true
}

// TeamEntry is one row of the team readiness overview.
type TeamEntry struct {
	Athlete        db.Athlete `json:"athlete"`
	ACWR           float64    `json:"acwr"`
	Zone           string     `json:"zone"`
	WellnessScore  float64    `json:"wellness_score"`
	WellnessStatus string     `json:"wellness_status"`
	RiskStatus     string     `json:"risk_status"`
	Sessions       int        `json:"logged_sessions"`
}

func (s *Server) showTeam(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	athletes, err := s.db.ListAthletes(r.Context())
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to list athletes: %v", err))
		return
	}

	now := s.clock.Now()
	team := make([]TeamEntry, 0, len(athletes))
	for _, a := range athletes {
		records, err := s.db.ListTrainingRecords(r.Context(), a.ID)
		if err != nil {
			s.writeJSONError(w, http.StatusInternalServerError,
				fmt.Sprintf("Failed to load records for %s: %v", a.ID, err))
			return
		}
		entry := TeamEntry{Athlete: a, Sessions: len(records)}
		if len(records) > 0 {
			snap := workload.CalcACWR(records, now)
			score := workload.WellnessScore(records[len(records)-1].Wellness)
			entry.ACWR = snap.ACWR
			entry.Zone = workload.ZoneLabels[snap.Zone]
			entry.WellnessScore = score
			entry.WellnessStatus = workload.WellnessStatus(score)
			entry.RiskStatus = workload.CombineRisk(snap.ACWR, score).Status
		}
		team = append(team, entry)
	}
	s.writeJSON(w, http.StatusOK, team)
}
