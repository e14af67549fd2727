package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dojometrics/strikeform/internal/db"
	"github.com/dojometrics/strikeform/internal/workload"
)

type trainingRequest struct {
	AthleteID   string            `json:"athlete_id"`
	Date        string            `json:"date"` // YYYY-MM-DD
	DurationMin float64           `json:"duration_min"`
	RPE         int               `json:"rpe"`
	Wellness    workload.Wellness `json:"wellness"`
}

func (s *Server) handleTraining(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.logTraining(w, r)
	case http.MethodGet:
		s.listTraining(w, r)
	default:
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (s *Server) logTraining(w http.ResponseWriter, r *http.Request) {
	var req trainingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "Invalid training payload")
		return
	}
	if req.AthleteID == "" {
		s.writeJSONError(w, http.StatusBadRequest, "athlete_id is required")
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "Invalid 'date', want YYYY-MM-DD")
		return
	}
	if req.DurationMin <= 0 || req.RPE < 1 || req.RPE > 10 {
		s.writeJSONError(w, http.StatusBadRequest, "duration_min must be positive and rpe in 1-10")
		return
	}
	if field, ok := invalidWellness(req.Wellness); ok {
		s.writeJSONError(w, http.StatusBadRequest,
			fmt.Sprintf("wellness %s must be in 1-10", field))
		return
	}
	if _, err := s.db.GetAthlete(r.Context(), req.AthleteID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			s.writeJSONError(w, http.StatusNotFound, "Athlete not found")
			return
		}
		s.writeJSONError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to load athlete: %v", err))
		return
	}

	record := workload.TrainingRecord{
		AthleteID:   req.AthleteID,
		Date:        date,
		DurationMin: req.DurationMin,
		RPE:         req.RPE,
		Load:        workload.SessionLoad(req.DurationMin, req.RPE),
		Wellness:    req.Wellness,
	}
	if err := s.db.SaveTrainingRecord(r.Context(), record); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to save training record: %v", err))
		return
	}
	s.writeJSON(w, http.StatusCreated, record)
}

// invalidWellness reports the first wellness input outside 1-10. All six
// inputs are required on every training log.
func invalidWellness(w workload.Wellness) (string, bool) {
	fields := []struct {
		name string
		val  int
	}{
		{"sleep_quality", w.SleepQuality},
		{"fatigue", w.Fatigue},
		{"muscle_soreness", w.MuscleSoreness},
		{"stress", w.Stress},
		{"mood", w.Mood},
		{"motivation", w.Motivation},
	}
	for _, f := range fields {
		if f.val < 1 || f.val > 10 {
			return f.name, true
		}
	}
	return "", false
}

func (s *Server) listTraining(w http.ResponseWriter, r *http.Request) {
	athleteID := r.URL.Query().Get("athlete_id")
	if athleteID == "" {
		s.writeJSONError(w, http.StatusBadRequest, "Missing 'athlete_id' parameter")
		return
	}
	records, err := s.db.ListTrainingRecords(r.Context(), athleteID)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to list training records: %v", err))
		return
	}
	s.writeJSON(w, http.StatusOK, records)
}
