package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/avilev/daily-status/internal/model"
)

// Overrides applied when the activity is not a working day. They win
// over whatever location or projects the client supplied.
const (
	homeLocation     = "Home"
	vacationProjects = "Vacation"
	sickProjects     = "Sick"
)

// timestampLayout renders the submission instant: two-digit day,
// three-letter month, and a zero-padded 24-hour clock at minute
// precision, e.g. "01 Sep 2025 (17:13)".
const timestampLayout = "02 Jan 2006 (15:04)"

// Error marks a row that could not be derived from a submission. It is
// a server fault, never a client one: valid submissions do not trigger it.
type Error struct {
	Reason string
}

func (e *Error) Error() string { return "normalize: " + e.Reason }

// Normalizer derives the canonical sheet row from a submission. Zone
// and Year are deployment constants, not user input: the zone fixes
// how the current instant is read, and Year overrides the stored year
// regardless of both the wall clock and the submitted date.
type Normalizer struct {
	Zone *time.Location
	Year int
}

// New returns a Normalizer for the given deployment zone and sheet year.
func New(zone *time.Location, year int) Normalizer {
	return Normalizer{Zone: zone, Year: year}
}

// Row builds the 9-cell record for sub at the instant now.
//
// The first cell always reflects now in the deployment zone. Cells 5-8
// are derived from the effective date: the submitted date when present,
// otherwise now read in the same zone. The year cell is pinned to the
// configured sheet year either way.
func (n Normalizer) Row(sub model.Submission, now time.Time) (model.Row, error) {
	if n.Zone == nil {
		return model.Row{}, &Error{Reason: "time zone is not configured"}
	}
	local := now.In(n.Zone)

	eff := local
	if sub.Date != nil {
		eff = *sub.Date
	}
	if eff.IsZero() {
		return model.Row{}, &Error{Reason: "effective date is unset"}
	}

	projects := strings.Join(sub.Projects, ", ")
	location := sub.Location
	switch sub.Activity {
	case model.ActivityVacation:
		location = homeLocation
		projects = vacationProjects
	case model.ActivitySickLeave:
		location = homeLocation
		projects = sickProjects
	}

	return model.Row{
		Timestamp: local.Format(timestampLayout),
		Email:     sub.Email,
		Activity:  string(sub.Activity),
		Projects:  projects,
		Month:     eff.Format("Jan"),
		Day:       eff.Day(),
		// Pinned on purpose: the sheet year tracks neither the wall
		// clock nor the submitted date. See DESIGN.md before changing.
		Year:      n.Year,
		DateLabel: fmt.Sprintf("%02d %s %d (00:00)", eff.Day(), eff.Format("Jan"), n.Year),
		Location:  location,
	}, nil
}
