package monitor

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/dojometrics/strikeform/internal/kick"
	"github.com/dojometrics/strikeform/internal/kinematics"
)

var (
	heightColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	kneeColor   = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
	pathColor   = color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}
)

// SessionPlotter writes PNG plots of a finished session to an output
// directory.
type SessionPlotter struct {
	outputDir string
}

// NewSessionPlotter creates the output directory if needed.
func NewSessionPlotter(outputDir string) (*SessionPlotter, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}
	return &SessionPlotter{outputDir: outputDir}, nil
}

// PlotMetrics renders kick height and knee extension over time as two line
// plots and returns the written file paths.
func (sp *SessionPlotter) PlotMetrics(sessionID string, metrics []kinematics.FrameMetrics) ([]string, error) {
	if len(metrics) == 0 {
		return nil, fmt.Errorf("no metrics to plot for session %s", sessionID)
	}

	heightPts := make(plotter.XYs, 0, len(metrics))
	kneePts := make(plotter.XYs, 0, len(metrics))
	for _, m := range metrics {
		heightPts = append(heightPts, plotter.XY{X: m.FrameTime, Y: m.KickHeight})
		if m.KneeAngle > 0 {
			kneePts = append(kneePts, plotter.XY{X: m.FrameTime, Y: m.KneeAngle})
		}
	}

	pHeight := plot.New()
	pHeight.Title.Text = "Kick Height"
	pHeight.X.Label.Text = "time (s)"
	pHeight.Y.Label.Text = "height (% body)"
	pHeight.Y.Min, pHeight.Y.Max = 0, 100

	heightLine, err := plotter.NewLine(heightPts)
	if err != nil {
		return nil, err
	}
	heightLine.Color = heightColor
	heightLine.Width = vg.Points(1)
	pHeight.Add(heightLine)
	pHeight.Legend.Add("kick height", heightLine)
	pHeight.Legend.Top = true

	pKnee := plot.New()
	pKnee.Title.Text = "Knee Extension"
	pKnee.X.Label.Text = "time (s)"
	pKnee.Y.Label.Text = "angle (deg)"

	kneeLine, err := plotter.NewLine(kneePts)
	if err != nil {
		return nil, err
	}
	kneeLine.Color = kneeColor
	kneeLine.Width = vg.Points(1)
	pKnee.Add(kneeLine)
	pKnee.Legend.Add("knee angle", kneeLine)
	pKnee.Legend.Top = true

	heightFile := filepath.Join(sp.outputDir, fmt.Sprintf("%s_height.png", sessionID))
	if err := pHeight.Save(14*vg.Inch, 6*vg.Inch, heightFile); err != nil {
		return nil, fmt.Errorf("failed to save height plot: %w", err)
	}
	kneeFile := filepath.Join(sp.outputDir, fmt.Sprintf("%s_knee.png", sessionID))
	if err := pKnee.Save(14*vg.Inch, 6*vg.Inch, kneeFile); err != nil {
		return nil, fmt.Errorf("failed to save knee plot: %w", err)
	}
	return []string{heightFile, kneeFile}, nil
}

// PlotTrajectory renders a kick's foot path in pixel space. The Y axis is
// inverted so the plot matches image orientation.
func (sp *SessionPlotter) PlotTrajectory(name string, points []kick.TrajectoryPoint) (string, error) {
	if len(points) < 2 {
		return "", fmt.Errorf("need at least 2 trajectory points, have %d", len(points))
	}

	pts := make(plotter.XYs, 0, len(points))
	for _, p := range points {
		pts = append(pts, plotter.XY{X: p.X, Y: -p.Y})
	}

	p := plot.New()
	p.Title.Text = "Foot Trajectory"
	p.X.Label.Text = "x (px)"
	p.Y.Label.Text = "y (px, image-down)"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return "", err
	}
	line.Color = pathColor
	line.Width = vg.Points(2)
	p.Add(line)

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return "", err
	}
	p.Add(scatter)

	file := filepath.Join(sp.outputDir, fmt.Sprintf("%s_trajectory.png", name))
	if err := p.Save(8*vg.Inch, 8*vg.Inch, file); err != nil {
		return "", fmt.Errorf("failed to save trajectory plot: %w", err)
	}
	return file, nil
}
