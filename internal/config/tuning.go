// Package config loads tuning parameters for the analysis pipeline.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dojometrics/strikeform/internal/kick"
	"github.com/dojometrics/strikeform/internal/workload"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/tuning.defaults.json"

// TuningConfig represents the root configuration for tuning parameters.
// The schema matches the /api/params endpoint so the same JSON can be
// used for both startup configuration and runtime updates. All fields are
// optional; the Get* methods fall back to pipeline defaults.
type TuningConfig struct {
	// Kick detection params
	TriggerHeight  *float64 `json:"trigger_height,omitempty"`  // percent of body height
	CooldownFrames *int     `json:"cooldown_frames,omitempty"` // debounce between events

	// Classifier params
	AcceptThreshold *float64 `json:"accept_threshold,omitempty"`

	// Speed estimation params
	FPS            *float64 `json:"fps,omitempty"`
	PixelsPerMeter *float64 `json:"pixels_per_meter,omitempty"`

	// Trajectory params
	TrajectoryCapacity *int `json:"trajectory_capacity,omitempty"`

	// Training load params
	SpikeRatio *float64 `json:"spike_ratio,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file. Fields omitted
// from the JSON file retain their default values, so partial configs are
// safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults from
// DefaultConfigPath, searching the current directory and common parent
// directories. Panics if the file cannot be loaded, intended for test
// setup.
func MustLoadDefaultConfig() *TuningConfig {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath, // from internal/config/
		"../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	if c.TriggerHeight != nil {
		if *c.TriggerHeight <= 0 || *c.TriggerHeight > 100 {
			return fmt.Errorf("trigger_height must be in (0, 100], got %f", *c.TriggerHeight)
		}
	}
	if c.CooldownFrames != nil && *c.CooldownFrames < 0 {
		return fmt.Errorf("cooldown_frames must be non-negative, got %d", *c.CooldownFrames)
	}
	if c.AcceptThreshold != nil {
		if *c.AcceptThreshold < 0 || *c.AcceptThreshold > 1 {
			return fmt.Errorf("accept_threshold must be between 0 and 1, got %f", *c.AcceptThreshold)
		}
	}
	if c.FPS != nil && *c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %f", *c.FPS)
	}
	if c.PixelsPerMeter != nil && *c.PixelsPerMeter <= 0 {
		return fmt.Errorf("pixels_per_meter must be positive, got %f", *c.PixelsPerMeter)
	}
	if c.TrajectoryCapacity != nil && *c.TrajectoryCapacity < 2 {
		return fmt.Errorf("trajectory_capacity must be at least 2, got %d", *c.TrajectoryCapacity)
	}
	if c.SpikeRatio != nil && *c.SpikeRatio < 1 {
		return fmt.Errorf("spike_ratio must be at least 1, got %f", *c.SpikeRatio)
	}
	return nil
}

// GetTriggerHeight returns the trigger_height value or the default.
func (c *TuningConfig) GetTriggerHeight() float64 {
	if c.TriggerHeight == nil {
		return kick.DefaultTriggerHeight
	}
	return *c.TriggerHeight
}

// GetCooldownFrames returns the cooldown_frames value or the default.
func (c *TuningConfig) GetCooldownFrames() int {
	if c.CooldownFrames == nil {
		return kick.DefaultCooldownFrames
	}
	return *c.CooldownFrames
}

// GetAcceptThreshold returns the accept_threshold value or the default.
func (c *TuningConfig) GetAcceptThreshold() float64 {
	if c.AcceptThreshold == nil {
		return kick.DefaultAcceptThreshold
	}
	return *c.AcceptThreshold
}

// GetFPS returns the fps value or the default.
func (c *TuningConfig) GetFPS() float64 {
	if c.FPS == nil {
		return kick.DefaultFPS
	}
	return *c.FPS
}

// GetPixelsPerMeter returns the pixels_per_meter value or the default.
func (c *TuningConfig) GetPixelsPerMeter() float64 {
	if c.PixelsPerMeter == nil {
		return kick.DefaultPixelsPerMeter
	}
	return *c.PixelsPerMeter
}

// GetTrajectoryCapacity returns the trajectory_capacity value or the default.
func (c *TuningConfig) GetTrajectoryCapacity() int {
	if c.TrajectoryCapacity == nil {
		return kick.DefaultTrajectoryCapacity
	}
	return *c.TrajectoryCapacity
}

// GetSpikeRatio returns the spike_ratio value or the default.
func (c *TuningConfig) GetSpikeRatio() float64 {
	if c.SpikeRatio == nil {
		return workload.DefaultSpikeRatio
	}
	return *c.SpikeRatio
}
