package workload

import (
	"fmt"
	"time"
)

// AlertLevel orders alert urgency.
type AlertLevel string

const (
	AlertCritical AlertLevel = "critical"
	AlertWarning  AlertLevel = "warning"
	AlertCaution  AlertLevel = "caution"
)

// Alert thresholds. Alerts are advisory records, not errors.
const (
	acwrCriticalMin   = 2.0
	acwrWarningMin    = 1.5
	acwrCautionMin    = 1.3
	wellnessWarnBelow = 50.0
)

// Alert is one advisory emitted for an athlete's current state.
type Alert struct {
	Level     AlertLevel `json:"type"`
	AthleteID string     `json:"athlete_id"`
	Message   string     `json:"message"`
	Action    string     `json:"action"`
	Timestamp time.Time  `json:"timestamp"`
}

// CheckAlerts emits the alerts an athlete's ACWR and wellness score
// trigger. Only the most severe ACWR band fires; the wellness check is
// independent and can add a second alert.
func CheckAlerts(athleteID string, acwr, wellnessScore float64, now time.Time) []Alert {
	var alerts []Alert

	switch {
	case acwr >= acwrCriticalMin:
		alerts = append(alerts, Alert{
			Level:     AlertCritical,
			AthleteID: athleteID,
			Message:   fmt.Sprintf("CRITICAL: ACWR at %.2f - Very high injury risk!", acwr),
			Action:    "Immediate rest required. Contact medical staff.",
			Timestamp: now,
		})
	case acwr >= acwrWarningMin:
		alerts = append(alerts, Alert{
			Level:     AlertWarning,
			AthleteID: athleteID,
			Message:   fmt.Sprintf("WARNING: ACWR at %.2f - High injury risk", acwr),
			Action:    "Reduce training load significantly",
			Timestamp: now,
		})
	case acwr >= acwrCautionMin:
		alerts = append(alerts, Alert{
			Level:     AlertCaution,
			AthleteID: athleteID,
			Message:   fmt.Sprintf("CAUTION: ACWR at %.2f - Elevated risk", acwr),
			Action:    "Monitor closely and consider reducing intensity",
			Timestamp: now,
		})
	}

	if wellnessScore < wellnessWarnBelow {
		alerts = append(alerts, Alert{
			Level:     AlertWarning,
			AthleteID: athleteID,
			Message:   fmt.Sprintf("LOW WELLNESS: Score at %.1f/100", wellnessScore),
			Action:    "Check in with athlete. Consider recovery day.",
			Timestamp: now,
		})
	}
	return alerts
}
