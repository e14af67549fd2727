package workload

// Fusion weights: training load history carries more signal than a single
// day's subjective wellness.
const (
	acwrRiskWeight     = 0.6
	wellnessRiskWeight = 0.4
)

// zoneRisk maps each ACWR zone to a base 0-100 risk contribution.
var zoneRisk = map[Zone]float64{
	ZoneOptimal:      10,
	ZoneUndertrained: 30,
	ZoneElevated:     50,
	ZoneHigh:         75,
	ZoneCritical:     95,
}

// Combined-risk status bands.
const (
	combinedModerateMin = 25.0
	combinedElevatedMin = 45.0
	combinedHighMin     = 65.0
	combinedCriticalMin = 80.0
)

// CombinedRisk fuses load-ratio risk and wellness risk into one status.
type CombinedRisk struct {
	ACWRRisk       float64 `json:"acwr_risk"`
	WellnessRisk   float64 `json:"wellness_risk"`
	Combined       float64 `json:"combined_risk"`
	Status         string  `json:"status"`
	Recommendation string  `json:"recommendation"`
}

// CombineRisk scores an athlete's overall injury risk from the current ACWR
// and wellness score. The ACWR contributes through its zone's base risk;
// wellness contributes as its inverse.
func CombineRisk(acwr, wellnessScore float64) CombinedRisk {
	out := CombinedRisk{
		ACWRRisk:     zoneRisk[ZoneFor(acwr)],
		WellnessRisk: round1(100 - wellnessScore),
	}
	out.Combined = round1(out.ACWRRisk*acwrRiskWeight + out.WellnessRisk*wellnessRiskWeight)

	switch {
	case out.Combined < combinedModerateMin:
		out.Status = "Low Risk"
		out.Recommendation = "Athlete is in good condition. Continue current program."
	case out.Combined < combinedElevatedMin:
		out.Status = "Moderate Risk"
		out.Recommendation = "Monitor closely. Consider reducing intensity slightly."
	case out.Combined < combinedHighMin:
		out.Status = "Elevated Risk"
		out.Recommendation = "Reduce training load by 20-30%. Focus on recovery."
	case out.Combined < combinedCriticalMin:
		out.Status = "High Risk"
		out.Recommendation = "Significantly reduce training. Prioritize rest and recovery."
	default:
		out.Status = "Critical Risk"
		out.Recommendation = "URGENT: Rest required. Consult medical staff before training."
	}
	return out
}
