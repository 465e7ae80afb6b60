package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/avilev/daily-status/internal/model"
)

// MaxProjects caps the number of project tags per submission. The form
// enforces the same cap client-side; it is repeated here so a direct
// API call cannot exceed it.
const MaxProjects = 3

// DateLayout is the wire format for the optional submission date.
const DateLayout = "2006-01-02"

// Request is the decoded submit payload before validation.
type Request struct {
	Email    string   `json:"email"`
	Activity string   `json:"activity"`
	Location string   `json:"location,omitempty"`
	Projects []string `json:"projects,omitempty"`
	Date     string   `json:"date,omitempty"`
}

// Error describes the first schema violation found in a request.
type Error struct {
	Field string
	Msg   string
}

func (e *Error) Error() string { return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg) }

var check = validator.New(validator.WithRequiredStructEnabled())

// Submission checks req and returns the typed, immutable submission.
// It is a pure function of its input: no clock access, no I/O. The
// first violation wins; later fields are not inspected.
func Submission(req Request) (model.Submission, error) {
	if err := check.Var(req.Email, "required,email"); err != nil {
		return model.Submission{}, &Error{Field: "email", Msg: "must be a valid email address"}
	}

	activity := model.Activity(req.Activity)
	if !activity.Known() {
		return model.Submission{}, &Error{Field: "activity", Msg: "must be one of " + activityList()}
	}

	if len(req.Projects) > MaxProjects {
		return model.Submission{}, &Error{Field: "projects", Msg: fmt.Sprintf("at most %d entries", MaxProjects)}
	}
	for i, p := range req.Projects {
		if strings.TrimSpace(p) == "" {
			return model.Submission{}, &Error{Field: fmt.Sprintf("projects[%d]", i), Msg: "must be non-empty"}
		}
	}

	sub := model.Submission{
		Email:    req.Email,
		Activity: activity,
		Location: req.Location,
		Projects: req.Projects,
	}

	if req.Date != "" {
		d, err := time.Parse(DateLayout, req.Date)
		if err != nil {
			return model.Submission{}, &Error{Field: "date", Msg: "must be formatted as YYYY-MM-DD"}
		}
		sub.Date = &d
	}

	return sub, nil
}

func activityList() string {
	quoted := make([]string, len(model.Activities))
	for i, a := range model.Activities {
		quoted[i] = fmt.Sprintf("%q", string(a))
	}
	return strings.Join(quoted, ", ")
}
