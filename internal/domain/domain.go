package domain

import "time"

// DateLayout is the calendar-date format used for schedules (start/end dates
// and milestone dates). Timestamps (createdAt/updatedAt) are RFC3339.
const DateLayout = "2006-01-02"

type Project struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	SoftwareType   string       `json:"softwareType" enum:"web,mobile,desktop,api,database,devops"`
	Status         string       `json:"status" enum:"planning,in-progress,testing,completed,on-hold"`
	Priority       string       `json:"priority" enum:"low,medium,high,critical"`
	StartDate      string       `json:"startDate" format:"date"`
	EndDate        string       `json:"endDate" format:"date"`
	Team           []string     `json:"team"`
	Technologies   []string     `json:"technologies"`
	Progress       int          `json:"progress" minimum:"0" maximum:"100"`
	Milestones     []Milestone  `json:"milestones"`
	Epics          []Epic       `json:"epics"`
	HasCostBenefit bool         `json:"hasCostBenefit"`
	CostBenefit    *CostBenefit `json:"costBenefit,omitempty"`
	CreatedAt      string       `json:"createdAt" format:"date-time"`
	UpdatedAt      string       `json:"updatedAt" format:"date-time"`
}

type Epic struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   string    `json:"startDate" format:"date"`
	EndDate     string    `json:"endDate" format:"date"`
	Status      string    `json:"status" enum:"planning,in-progress,testing,completed,on-hold"`
	Progress    int       `json:"progress" minimum:"0" maximum:"100"`
	Features    []Feature `json:"features"`
}

type Feature struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"startDate" format:"date"`
	EndDate     string `json:"endDate" format:"date"`
	Status      string `json:"status" enum:"planning,in-progress,testing,completed,on-hold"`
	Progress    int    `json:"progress" minimum:"0" maximum:"100"`
	AssignedTo  string `json:"assignedTo,omitempty"`
}

type CostBenefit struct {
	EstimatedCost   float64  `json:"estimatedCost" minimum:"0"`
	ActualCost      *float64 `json:"actualCost,omitempty"`
	EstimatedReturn float64  `json:"estimatedReturn" minimum:"0"`
	ActualReturn    *float64 `json:"actualReturn,omitempty"`
	Currency        string   `json:"currency" enum:"BRL,USD,EUR"`
	CostType        string   `json:"costType" enum:"avoided,investment,operational"`
	Description     string   `json:"description"`
}

type Milestone struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date" format:"date"`
	Completed   bool   `json:"completed"`
	Type        string `json:"type" enum:"planning,development,testing,deployment,review"`
}

// ProjectFormData is the create payload. The mutation service assigns id,
// progress and timestamps; callers never set those.
type ProjectFormData struct {
	Name           string       `json:"name"`
	Description    string       `json:"description,omitempty"`
	SoftwareType   string       `json:"softwareType" enum:"web,mobile,desktop,api,database,devops"`
	Status         string       `json:"status" enum:"planning,in-progress,testing,completed,on-hold"`
	Priority       string       `json:"priority" enum:"low,medium,high,critical"`
	StartDate      string       `json:"startDate,omitempty" format:"date"`
	EndDate        string       `json:"endDate,omitempty" format:"date"`
	Team           []string     `json:"team,omitempty"`
	Technologies   []string     `json:"technologies,omitempty"`
	Milestones     []Milestone  `json:"milestones,omitempty"`
	Epics          []Epic       `json:"epics,omitempty"`
	HasCostBenefit bool         `json:"hasCostBenefit,omitempty"`
	CostBenefit    *CostBenefit `json:"costBenefit,omitempty"`
}

// ProjectPatch is a partial update. Nil fields are left untouched. Child
// collections (milestones, epics) and the cost/benefit record are replaced
// wholesale when set; they have no identity outside their parent.
type ProjectPatch struct {
	Name           *string      `json:"name,omitempty"`
	Description    *string      `json:"description,omitempty"`
	SoftwareType   *string      `json:"softwareType,omitempty" enum:"web,mobile,desktop,api,database,devops"`
	Status         *string      `json:"status,omitempty" enum:"planning,in-progress,testing,completed,on-hold"`
	Priority       *string      `json:"priority,omitempty" enum:"low,medium,high,critical"`
	StartDate      *string      `json:"startDate,omitempty" format:"date"`
	EndDate        *string      `json:"endDate,omitempty" format:"date"`
	Team           *[]string    `json:"team,omitempty"`
	Technologies   *[]string    `json:"technologies,omitempty"`
	Progress       *int         `json:"progress,omitempty" minimum:"0" maximum:"100"`
	Milestones     *[]Milestone `json:"milestones,omitempty"`
	Epics          *[]Epic      `json:"epics,omitempty"`
	HasCostBenefit *bool        `json:"hasCostBenefit,omitempty"`
	CostBenefit    *CostBenefit `json:"costBenefit,omitempty"`
}

// ParseDate parses a calendar date, reporting ok=false for empty or
// malformed input. Aggregation treats such dates as unknown rather than
// failing on them.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
