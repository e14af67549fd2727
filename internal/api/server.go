// Package api exposes the analysis and workload pipelines over JSON HTTP.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/dojometrics/strikeform/internal/config"
	"github.com/dojometrics/strikeform/internal/db"
	"github.com/dojometrics/strikeform/internal/monitoring"
	"github.com/dojometrics/strikeform/internal/timeutil"
	"github.com/dojometrics/strikeform/internal/version"
)

// ANSI escape codes for request logging
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

type Server struct {
	db    *db.DB
	cfg   *config.TuningConfig
	units string
	clock timeutil.Clock
}

func NewServer(database *db.DB, cfg *config.TuningConfig, units string) *Server {
	if cfg == nil {
		cfg = config.EmptyTuningConfig()
	}
	return &Server{
		db:    database,
		cfg:   cfg,
		units: units,
		clock: timeutil.RealClock{},
	}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Flush() {
	if flusher, ok := lrw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		monitoring.Logf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/athletes", s.handleAthletes)
	mux.HandleFunc("/api/athletes/", s.handleAthleteSubpath)
	mux.HandleFunc("/api/sessions", s.ingestSession)
	mux.HandleFunc("/api/sessions/", s.showSession)
	mux.HandleFunc("/api/training", s.handleTraining)
	mux.HandleFunc("/api/team", s.showTeam)
	mux.HandleFunc("/api/params", s.showParams)
	return mux
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		monitoring.Logf("api: failed to write response: %v", err)
	}
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// showParams reports the effective tuning values after config overrides.
func (s *Server) showParams(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	params := map[string]interface{}{
		"trigger_height":      s.cfg.GetTriggerHeight(),
		"cooldown_frames":     s.cfg.GetCooldownFrames(),
		"accept_threshold":    s.cfg.GetAcceptThreshold(),
		"fps":                 s.cfg.GetFPS(),
		"pixels_per_meter":    s.cfg.GetPixelsPerMeter(),
		"trajectory_capacity": s.cfg.GetTrajectoryCapacity(),
		"spike_ratio":         s.cfg.GetSpikeRatio(),
		"units":               s.units,
		"version":             version.Version,
	}
	s.writeJSON(w, http.StatusOK, params)
}
