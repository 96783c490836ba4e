package models

import "time"

// Scope narrows a query to one branch of the org tree. Empty fields match
// everything.
type Scope struct {
	DivisionID   string
	DepartmentID string
	TeamID       string
}

// SurveyResponse is one stored submission. Sub-scores are nil when the
// employee skipped the question; the hierarchy ids are the assignment in
// effect when the response was submitted.
type SurveyResponse struct {
	ID           string
	SubmittedAt  time.Time
	EmployeeRef  string
	TeamID       string
	DepartmentID string
	DivisionID   string

	Sentiment  *int
	Clarity    *int
	Workload   *int
	Safety     *int
	Leadership *int
}

// OrgNode is one node of the division→department→team tree.
type OrgNode struct {
	ID       string
	Name     string
	Kind     string // "division", "department" or "team"
	ParentID string
}
