package domain

// Priority ranks an intervention for educator triage.
type Priority string

// Intervention priorities.
const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Intervention categories, in the fixed emission order of the policy engine.
const (
	CategoryAttendance     = "Attendance"
	CategoryPerformance    = "Academic Performance"
	CategoryEngagement     = "Engagement"
	CategoryCompletion     = "Assignment Completion"
	CategoryGeneralSupport = "General Support"
)

// Intervention is one recommended action with its urgency and timeline.
type Intervention struct {
	Priority Priority `json:"priority"`
	Category string   `json:"category"`
	Action   string   `json:"action"`
	Timeline string   `json:"timeline"`
}
