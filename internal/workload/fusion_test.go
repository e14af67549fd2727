package workload

import (
	"strings"
	"testing"
	"time"
)

func TestCombineRisk(t *testing.T) {
	cases := []struct {
		name     string
		acwr     float64
		wellness float64
		combined float64
		status   string
	}{
		{"healthy", 1.0, 80, 14, "Low Risk"},
		{"moderate boundary", 1.0, 52.5, 25, "Moderate Risk"},
		{"elevated", 1.4, 50, 50, "Elevated Risk"},
		{"high", 1.7, 40, 69, "High Risk"},
		{"critical", 2.1, 20, 89, "Critical Risk"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CombineRisk(tc.acwr, tc.wellness)
			if got.Combined != tc.combined {
				t.Errorf("combined = %v, want %v", got.Combined, tc.combined)
			}
			if got.Status != tc.status {
				t.Errorf("status = %q, want %q", got.Status, tc.status)
			}
			if got.Recommendation == "" {
				t.Error("missing recommendation")
			}
		})
	}
}

func TestCombineRiskComponents(t *testing.T) {
	got := CombineRisk(1.4, 70)
	if got.ACWRRisk != 50 {
		t.Errorf("acwr risk = %v, want 50 for elevated zone", got.ACWRRisk)
	}
	if got.WellnessRisk != 30 {
		t.Errorf("wellness risk = %v, want 30", got.WellnessRisk)
	}
}

func TestCheckAlerts(t *testing.T) {
	now := time.Date(2026, 3, 28, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		acwr     float64
		wellness float64
		levels   []AlertLevel
	}{
		{"quiet", 1.1, 70, nil},
		{"caution", 1.3, 70, []AlertLevel{AlertCaution}},
		{"warning", 1.5, 70, []AlertLevel{AlertWarning}},
		{"critical", 2.0, 70, []AlertLevel{AlertCritical}},
		{"low wellness", 1.0, 49.9, []AlertLevel{AlertWarning}},
		{"critical plus wellness", 2.3, 30, []AlertLevel{AlertCritical, AlertWarning}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CheckAlerts("ath-1", tc.acwr, tc.wellness, now)
			if len(got) != len(tc.levels) {
				t.Fatalf("got %d alerts, want %d: %+v", len(got), len(tc.levels), got)
			}
			for i, level := range tc.levels {
				if got[i].Level != level {
					t.Errorf("alert %d level = %s, want %s", i, got[i].Level, level)
				}
				if got[i].AthleteID != "ath-1" || got[i].Message == "" || got[i].Action == "" {
					t.Errorf("alert %d incomplete: %+v", i, got[i])
				}
			}
		})
	}
}

func TestCheckAlertsMessageFormat(t *testing.T) {
	got := CheckAlerts("ath-1", 2.05, 70, time.Now())
	if len(got) != 1 || !strings.Contains(got[0].Message, "ACWR at 2.05") {
		t.Fatalf("got %+v, want critical message quoting the ratio", got)
	}
}
