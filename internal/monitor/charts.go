// Package monitor renders coaching dashboards: ECharts HTML views over
// stored sessions and workload history, and gonum/plot PNG exports.
package monitor

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/dojometrics/strikeform/internal/db"
	"github.com/dojometrics/strikeform/internal/httputil"
	"github.com/dojometrics/strikeform/internal/workload"
)

const echartsAssetsPrefix = "https://go-echarts.github.io/go-echarts-assets/assets/"

// Zone boundary ratios drawn as guide lines on the ACWR chart.
var zoneGuides = []struct {
	ratio float64
	label string
}{
	{0.8, "optimal floor"},
	{1.3, "elevated"},
	{1.5, "high"},
	{2.0, "critical"},
}

// Charts serves HTML chart endpoints backed by the store.
type Charts struct {
	db *db.DB
}

func NewCharts(database *db.DB) *Charts {
	return &Charts{db: database}
}

// Register mounts the chart handlers on mux.
func (c *Charts) Register(mux *http.ServeMux) {
	mux.HandleFunc("/charts/acwr", c.handleACWRChart)
	mux.HandleFunc("/charts/kicks", c.handleKickChart)
	mux.HandleFunc("/charts/load", c.handleLoadChart)
}

func (c *Charts) writeError(w http.ResponseWriter, status int, msg string) {
	httputil.WriteJSONError(w, status, msg)
}

// handleACWRChart renders an athlete's rolling ACWR as a line chart with
// zone-boundary guide lines.
// Query params:
//   - athlete_id (required)
//   - days (optional; default 60)
func (c *Charts) handleACWRChart(w http.ResponseWriter, r *http.Request) {
	athleteID := r.URL.Query().Get("athlete_id")
	if athleteID == "" {
		c.writeError(w, http.StatusBadRequest, "missing athlete_id")
		return
	}
	days := 60
	if d := r.URL.Query().Get("days"); d != "" {
		if v, err := strconv.Atoi(d); err == nil && v > 0 && v <= 365 {
			days = v
		}
	}

	records, err := c.db.ListTrainingRecords(r.Context(), athleteID)
	if err != nil {
		c.writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to load records: %v", err))
		return
	}
	if len(records) == 0 {
		c.writeError(w, http.StatusNotFound, "no training records for athlete")
		return
	}

	end := records[len(records)-1].Date
	snaps := workload.RollingACWR(records, end, days)

	dates := make([]string, 0, len(snaps))
	acwr := make([]opts.LineData, 0, len(snaps))
	for _, s := range snaps {
		dates = append(dates, s.Date.Format("2006-01-02"))
		acwr = append(acwr, opts.LineData{Value: s.ACWR})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "ACWR Timeline", Theme: "dark", Width: "1100px", Height: "600px", AssetsHost: echartsAssetsPrefix}),
		charts.WithTitleOpts(opts.Title{Title: "Acute:Chronic Workload Ratio", Subtitle: fmt.Sprintf("athlete=%s window=%dd", athleteID, days)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "ACWR", Min: 0}),
	)
	line.SetXAxis(dates).AddSeries("acwr", acwr)

	for _, guide := range zoneGuides {
		flat := make([]opts.LineData, len(dates))
		for i := range flat {
			flat[i] = opts.LineData{Value: guide.ratio}
		}
		line.AddSeries(guide.label, flat,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed", Width: 1}),
		)
	}

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		c.writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// handleKickChart renders a session's kick heights over time as a scatter
// colored by knee extension.
// Query params:
//   - session_id (required)
func (c *Charts) handleKickChart(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		c.writeError(w, http.StatusBadRequest, "missing session_id")
		return
	}

	metrics, err := c.db.ListFrameMetrics(r.Context(), sessionID)
	if err != nil {
		c.writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to load metrics: %v", err))
		return
	}
	if len(metrics) == 0 {
		c.writeError(w, http.StatusNotFound, "no frame metrics for session")
		return
	}

	data := make([]opts.ScatterData, 0, len(metrics))
	maxKnee := 1.0
	for _, m := range metrics {
		if m.KneeAngle > maxKnee {
			maxKnee = m.KneeAngle
		}
		data = append(data, opts.ScatterData{Value: []interface{}{m.FrameTime, m.KickHeight, m.KneeAngle}})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Kick Heights", Theme: "dark", Width: "1100px", Height: "600px", AssetsHost: echartsAssetsPrefix}),
		charts.WithTitleOpts(opts.Title{Title: "Kick Height Timeline", Subtitle: fmt.Sprintf("session=%s frames=%d", sessionID, len(data))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "time (s)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 100, Name: "height (% body)", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxKnee),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: []string{"#440154", "#3e4989", "#26828e", "#35b779", "#b5de2b", "#fde725"}},
		}),
	)
	scatter.AddSeries("frames", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		c.writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// handleLoadChart renders an athlete's weekly training load as a bar chart.
// Query params:
//   - athlete_id (required)
func (c *Charts) handleLoadChart(w http.ResponseWriter, r *http.Request) {
	athleteID := r.URL.Query().Get("athlete_id")
	if athleteID == "" {
		c.writeError(w, http.StatusBadRequest, "missing athlete_id")
		return
	}

	records, err := c.db.ListTrainingRecords(r.Context(), athleteID)
	if err != nil {
		c.writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to load records: %v", err))
		return
	}
	weeks := workload.WeeklyLoads(records)
	if len(weeks) == 0 {
		c.writeError(w, http.StatusNotFound, "no training records for athlete")
		return
	}

	x := make([]string, 0, len(weeks))
	y := make([]opts.BarData, 0, len(weeks))
	for _, wk := range weeks {
		x = append(x, fmt.Sprintf("%d-W%02d", wk.Year, wk.Week))
		y = append(y, opts.BarData{Value: wk.TotalLoad})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "600px", AssetsHost: echartsAssetsPrefix}),
		charts.WithTitleOpts(opts.Title{Title: "Weekly Training Load", Subtitle: time.Now().Format(time.RFC3339)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(x).
		AddSeries("load", y,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)

	page := components.NewPage()
	page.SetAssetsHost(echartsAssetsPrefix)
	page.AddCharts(bar)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		c.writeError(w, http.StatusInternalServerError, fmt.Sprintf("render error: %v", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
