package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestEmptyConfigFallsBackToDefaults(t *testing.T) {
	cfg := EmptyTuningConfig()

	if got := cfg.GetTriggerHeight(); got != 25.0 {
		t.Errorf("trigger height default = %v, want 25", got)
	}
	if got := cfg.GetCooldownFrames(); got != 10 {
		t.Errorf("cooldown default = %v, want 10", got)
	}
	if got := cfg.GetAcceptThreshold(); got != 0.65 {
		t.Errorf("accept threshold default = %v, want 0.65", got)
	}
	if got := cfg.GetFPS(); got != 30 {
		t.Errorf("fps default = %v, want 30", got)
	}
	if got := cfg.GetPixelsPerMeter(); got != 300 {
		t.Errorf("pixels per meter default = %v, want 300", got)
	}
	if got := cfg.GetTrajectoryCapacity(); got != 30 {
		t.Errorf("trajectory capacity default = %v, want 30", got)
	}
	if got := cfg.GetSpikeRatio(); got != 1.3 {
		t.Errorf("spike ratio default = %v, want 1.3", got)
	}
}

func TestLoadPartialConfig(t *testing.T) {
	path := writeConfig(t, "tuning.json", `{"trigger_height": 30.0, "cooldown_frames": 5}`)

	cfg, err := LoadTuningConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := cfg.GetTriggerHeight(); got != 30.0 {
		t.Errorf("trigger height = %v, want 30", got)
	}
	if got := cfg.GetCooldownFrames(); got != 5 {
		t.Errorf("cooldown = %v, want 5", got)
	}
	// Unset fields keep their defaults.
	if got := cfg.GetFPS(); got != 30 {
		t.Errorf("fps = %v, want default 30", got)
	}
}

func TestLoadRejectsBadInputs(t *testing.T) {
	if _, err := LoadTuningConfig(writeConfig(t, "tuning.yaml", "{}")); err == nil {
		t.Error("accepted non-json extension")
	}
	if _, err := LoadTuningConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("accepted missing file")
	}
	if _, err := LoadTuningConfig(writeConfig(t, "tuning.json", `{"trigger_height":`)); err == nil {
		t.Error("accepted malformed JSON")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  TuningConfig
		ok   bool
	}{
		{"empty", TuningConfig{}, true},
		{"trigger height zero", TuningConfig{TriggerHeight: ptrFloat64(0)}, false},
		{"trigger height over 100", TuningConfig{TriggerHeight: ptrFloat64(101)}, false},
		{"negative cooldown", TuningConfig{CooldownFrames: ptrInt(-1)}, false},
		{"threshold above 1", TuningConfig{AcceptThreshold: ptrFloat64(1.5)}, false},
		{"zero fps", TuningConfig{FPS: ptrFloat64(0)}, false},
		{"zero pixels per meter", TuningConfig{PixelsPerMeter: ptrFloat64(0)}, false},
		{"tiny trajectory", TuningConfig{TrajectoryCapacity: ptrInt(1)}, false},
		{"spike ratio below 1", TuningConfig{SpikeRatio: ptrFloat64(0.9)}, false},
		{"all sane", TuningConfig{
			TriggerHeight:   ptrFloat64(20),
			CooldownFrames:  ptrInt(15),
			AcceptThreshold: ptrFloat64(0.7),
		}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestDefaultsFileMatchesPipelineDefaults(t *testing.T) {
	cfg := MustLoadDefaultConfig()
	if cfg.TriggerHeight == nil || *cfg.TriggerHeight != 25.0 {
		t.Error("defaults file trigger_height out of sync with pipeline default")
	}
	if cfg.AcceptThreshold == nil || *cfg.AcceptThreshold != 0.65 {
		t.Error("defaults file accept_threshold out of sync with pipeline default")
	}
}
