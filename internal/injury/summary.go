package injury

// SessionSummary aggregates a session's risk findings for reporting.
type SessionSummary struct {
	TotalRiskEvents  int               `json:"total_risk_events"`
	HighRiskEvents   int               `json:"high_risk_events"`
	MediumRiskEvents int               `json:"medium_risk_events"`
	FatigueEvents    int               `json:"fatigue_events"`
	AlertBreakdown   map[AlertType]int `json:"alert_breakdown"`
	MostCommonRisk   AlertType         `json:"most_common_risk,omitempty"`
	Recommendation   string            `json:"recommendation"`
}

// repeatedAlertMin is how many occurrences of one alert type make it the
// focus of the session recommendation.
const repeatedAlertMin = 3

// alertTypeOrder fixes how ties break when picking the most common alert.
var alertTypeOrder = []AlertType{
	AlertKneeValgus,
	AlertHipDrop,
	AlertTrunkLean,
	AlertHyperextension,
}

// Summarize builds the end-of-session injury summary from the analyzer's
// alert history and the fatigue monitor's event count. A nil monitor counts
// zero fatigue events.
func (ra *RiskAnalyzer) Summarize(fm *FatigueMonitor) SessionSummary {
	out := SessionSummary{
		TotalRiskEvents: len(ra.assessments),
		AlertBreakdown:  make(map[AlertType]int),
	}
	for _, a := range ra.assessments {
		switch a.RiskLevel {
		case RiskHigh:
			out.HighRiskEvents++
		case RiskMedium:
			out.MediumRiskEvents++
		}
	}
	for _, alert := range ra.alertHistory {
		out.AlertBreakdown[alert.Type]++
	}
	if fm != nil {
		out.FatigueEvents = fm.Events()
	}

	most := AlertType("")
	for _, t := range alertTypeOrder {
		if n := out.AlertBreakdown[t]; n > 0 && (most == "" || n > out.AlertBreakdown[most]) {
			most = t
		}
	}
	out.MostCommonRisk = most
	out.Recommendation = recommendation(out)
	return out
}

// recommendation picks the session advice from the dominant finding. The
// most frequent repeated alert type drives the text.
func recommendation(s SessionSummary) string {
	if s.HighRiskEvents > 5 {
		return "HIGH RISK SESSION - Multiple dangerous biomechanics detected. Recommend technique review with coach."
	}
	if s.AlertBreakdown[AlertKneeValgus] > repeatedAlertMin {
		return "Focus on hip strengthening exercises. Knee valgus indicates weak gluteus medius."
	}
	if s.AlertBreakdown[AlertHipDrop] > repeatedAlertMin {
		return "Add single-leg stability exercises. Hip drop affects kick power and increases injury risk."
	}
	if s.AlertBreakdown[AlertTrunkLean] > 0 {
		return "Core strengthening recommended. Excessive trunk lean affects balance and technique."
	}
	if s.AlertBreakdown[AlertHyperextension] > 0 {
		return "Avoid locking knee joint. Practice maintaining slight knee bend on support leg."
	}
	if s.FatigueEvents > 2 {
		return "Fatigue detected multiple times. Consider shorter training intervals with adequate rest."
	}
	return "Good session. Continue maintaining proper form."
}
