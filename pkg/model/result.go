package model

// Issue records that a row's required headcount could not be fully met
// on a given day. Unmet needs are always data, never engine errors.
type Issue struct {
	Day      int    `json:"day"`
	RowID    string `json:"row_id"`
	Label    string `json:"label"`
	Required int    `json:"required"`
	Assigned int    `json:"assigned"`
	Reason   string `json:"reason,omitempty"`
}

// RosterResult is the complete output of one engine run: per-day,
// per-row assigned names plus the unmet-need issues. Created fresh per
// invocation; the caller persists it verbatim.
type RosterResult struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Role  string `json:"role,omitempty"`

	// Assignments maps day -> rowID -> assigned staff names.
	Assignments map[int]map[string][]string `json:"assignments"`
	Issues      []Issue                     `json:"issues"`
}

// NewRosterResult allocates an empty result for one run.
func NewRosterResult(year, month int, role string) *RosterResult {
	return &RosterResult{
		Year:        year,
		Month:       month,
		Role:        role,
		Assignments: make(map[int]map[string][]string),
		Issues:      make([]Issue, 0),
	}
}

// SetNames stores the assigned name list for (day, rowID).
func (r *RosterResult) SetNames(day int, rowID string, names []string) {
	byRow, ok := r.Assignments[day]
	if !ok {
		byRow = make(map[string][]string)
		r.Assignments[day] = byRow
	}
	byRow[rowID] = names
}

// NamesFor returns the assigned names for (day, rowID).
func (r *RosterResult) NamesFor(day int, rowID string) []string {
	if byRow, ok := r.Assignments[day]; ok {
		return byRow[rowID]
	}
	return nil
}

// AddIssue appends an unmet-need record.
func (r *RosterResult) AddIssue(issue Issue) {
	r.Issues = append(r.Issues, issue)
}

// TotalAssigned counts all assigned slots across the month.
func (r *RosterResult) TotalAssigned() int {
	total := 0
	for _, byRow := range r.Assignments {
		for _, names := range byRow {
			total += len(names)
		}
	}
	return total
}
