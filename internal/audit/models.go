package audit

import "time"

// Event is one compliance-check outcome captured for the audit trail. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp    time.Time
	ReportID     string
	PracticeType string
	Location     string
	Status       string
	RiskLevel    string
	RiskScore    float64
	Degraded     bool
}
