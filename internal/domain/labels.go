package domain

// Display labels for the closed enumerations. Unrecognized values resolve to
// the fallback entry instead of failing; the stored value is never rewritten.

const FallbackLabel = "Unknown"

var statusLabels = map[string]string{
	"planning":    "Planning",
	"in-progress": "In Progress",
	"testing":     "Testing",
	"completed":   "Completed",
	"on-hold":     "On Hold",
}

var softwareTypeLabels = map[string]string{
	"web":      "Web",
	"mobile":   "Mobile",
	"desktop":  "Desktop",
	"api":      "API",
	"database": "Database",
	"devops":   "DevOps",
}

var priorityLabels = map[string]string{
	"low":      "Low",
	"medium":   "Medium",
	"high":     "High",
	"critical": "Critical",
}

var costTypeLabels = map[string]string{
	"avoided":     "Avoided Cost",
	"investment":  "Investment",
	"operational": "Operational",
}

var milestoneTypeLabels = map[string]string{
	"planning":    "Planning",
	"development": "Development",
	"testing":     "Testing",
	"deployment":  "Deployment",
	"review":      "Review",
}

func label(table map[string]string, value string) string {
	if l, ok := table[value]; ok {
		return l
	}
	return FallbackLabel
}

func StatusLabel(status string) string        { return label(statusLabels, status) }
func SoftwareTypeLabel(swType string) string  { return label(softwareTypeLabels, swType) }
func PriorityLabel(priority string) string    { return label(priorityLabels, priority) }
func CostTypeLabel(costType string) string    { return label(costTypeLabels, costType) }
func MilestoneTypeLabel(msType string) string { return label(milestoneTypeLabels, msType) }

// Statuses returns the closed status vocabulary in display order.
func Statuses() []string {
	return []string{"planning", "in-progress", "testing", "completed", "on-hold"}
}

// SoftwareTypes returns the closed software-type vocabulary in display order.
func SoftwareTypes() []string {
	return []string{"web", "mobile", "desktop", "api", "database", "devops"}
}

// Priorities returns the closed priority vocabulary in display order.
func Priorities() []string {
	return []string{"low", "medium", "high", "critical"}
}
