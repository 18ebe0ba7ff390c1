package scoring

import "github.com/edupulse/riskcore/internal/domain"

// Attendance thresholds for the structured risk classifier. The tier is
// a function of attendance alone by contract; the other metrics shape
// the intervention list, never the tier.
const (
	attendanceSafeThreshold   = 75.0
	attendanceMediumThreshold = 70.0
	attendanceHighThreshold   = 60.0
)

// ClassifyAttendance maps an attendance percentage to its risk tier.
func ClassifyAttendance(attendance float64) domain.RiskTier {
	switch {
	case attendance >= attendanceSafeThreshold:
		return domain.TierSafe
	case attendance >= attendanceMediumThreshold:
		return domain.TierMediumRisk
	case attendance >= attendanceHighThreshold:
		return domain.TierHighRisk
	default:
		return domain.TierCriticalRisk
	}
}
