package model

import "time"

// Activity is the closed set of daily-status activity types.
type Activity string

const (
	ActivityWorkingDay Activity = "Working Day"
	ActivityVacation   Activity = "Vacation"
	ActivitySickLeave  Activity = "Sick Leave"
)

// Activities lists every accepted activity value, in form order.
var Activities = []Activity{ActivityWorkingDay, ActivityVacation, ActivitySickLeave}

// Known reports whether a is one of the accepted activity types.
func (a Activity) Known() bool {
	for _, known := range Activities {
		if a == known {
			return true
		}
	}
	return false
}

// Submission is one validated daily-status form instance. It is built
// once by the validator and never mutated afterwards.
// Location and Projects carry whatever the client sent; they only end
// up in the sheet unchanged for Working Day submissions.
type Submission struct {
	Email    string
	Activity Activity
	Location string
	Projects []string
	// Date is the user-picked calendar day, nil when the form left it
	// blank (the current day in the deployment zone is used instead).
	Date *time.Time
}

// Row is the canonical 9-cell record appended to the status sheet.
// The cell order is a contract with the sheet itself: changing it
// requires migrating the tab.
type Row struct {
	Timestamp string // current instant, "02 Jan 2006 (15:04)" in the deployment zone
	Email     string
	Activity  string
	Projects  string // comma joined, or the activity override
	Month     string // effective date month, "Jan"
	Day       int    // effective date day, no leading zero
	Year      int    // pinned to the configured sheet year
	DateLabel string // effective date at midnight, "02 Jan 2006 (00:00)"
	Location  string // as submitted, or the activity override
}

// Cells returns the row as the ordered cell values for the append call.
func (r Row) Cells() []any {
	return []any{
		r.Timestamp,
		r.Email,
		r.Activity,
		r.Projects,
		r.Month,
		r.Day,
		r.Year,
		r.DateLabel,
		r.Location,
	}
}
