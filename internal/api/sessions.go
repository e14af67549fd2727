package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dojometrics/strikeform/internal/db"
	"github.com/dojometrics/strikeform/internal/injury"
	"github.com/dojometrics/strikeform/internal/kick"
	"github.com/dojometrics/strikeform/internal/pose"
	"github.com/dojometrics/strikeform/internal/session"
	"github.com/dojometrics/strikeform/internal/units"
)

// maxIngestBytes bounds a session upload. A half-hour clip at 30fps with 33
// landmarks per frame stays well under this.
const maxIngestBytes = 64 << 20

type ingestRequest struct {
	AthleteID string       `json:"athlete_id"`
	FPS       float64      `json:"fps,omitempty"`
	Frames    []pose.Frame `json:"frames"`
}

type ingestResponse struct {
	Stats   session.Stats         `json:"stats"`
	Kicks   []session.ScoredKick  `json:"kicks"`
	Injury  injury.SessionSummary `json:"injury_summary"`
	Match   kick.MatchResult      `json:"match"`
	Skipped int                   `json:"skipped_frames"`
}

// ingestSession runs the full analysis pipeline over an uploaded frame
// sequence and persists the result.
func (s *Server) ingestSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ingestRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxIngestBytes))
	if err := dec.Decode(&req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "Invalid session payload")
		return
	}
	if req.AthleteID == "" {
		s.writeJSONError(w, http.StatusBadRequest, "athlete_id is required")
		return
	}
	if len(req.Frames) == 0 {
		s.writeJSONError(w, http.StatusBadRequest, "frames are required")
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

	fps := req.FPS
	if fps <= 0 {
		fps = s.cfg.GetFPS()
	}

	analyzer := session.NewAnalyzer(req.AthleteID, s.cfg)
	for i, frame := range req.Frames {
		analyzer.ProcessFrame(frame, float64(i)/fps)
	}

	stats := analyzer.Stats()
	if err := s.db.SaveSession(r.Context(), stats, analyzer.Metrics(), analyzer.Kicks()); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to save session: %v", err))
		return
	}

	s.writeJSON(w, http.StatusCreated, ingestResponse{
		Stats:   stats,
		Kicks:   analyzer.Kicks(),
		Injury:  analyzer.InjurySummary(),
		Match:   analyzer.Match(),
		Skipped: stats.SkippedFrames,
	})
}

type sessionReport struct {
	Stats session.Stats   `json:"stats"`
	Kicks []db.StoredKick `json:"kicks"`
}

// showSession serves a stored session report. Kick speeds are converted to
// the server's configured units.
func (s *Server) showSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	if id == "" || strings.Contains(id, "/") {
		s.writeJSONError(w, http.StatusBadRequest, "Missing session id")
		return
	}

	stats, err := s.db.GetSession(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		s.writeJSONError(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to load session: %v", err))
		return
	}

	kicks, err := s.db.ListKicks(r.Context(), id)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to load kicks: %v", err))
		return
	}
	for i := range kicks {
		kicks[i].MaxSpeedMPS = units.ConvertSpeed(kicks[i].MaxSpeedMPS, s.units)
	}

	s.writeJSON(w, http.StatusOK, sessionReport{Stats: stats, Kicks: kicks})
}
