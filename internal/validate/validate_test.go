package validate

import (
	"errors"
	"testing"
	"time"

	"github.com/avilev/daily-status/internal/model"
)

func TestSubmissionRejects(t *testing.T) {
	valid := Request{
		Email:    "user@example.com",
		Activity: "Working Day",
	}

	tests := []struct {
		name      string
		mutate    func(r *Request)
		wantField string
	}{
		{"missing email", func(r *Request) { r.Email = "" }, "email"},
		{"invalid email", func(r *Request) { r.Email = "not-an-email" }, "email"},
		{"unknown activity", func(r *Request) { r.Activity = "Remote" }, "activity"},
		{"empty activity", func(r *Request) { r.Activity = "" }, "activity"},
		{"too many projects", func(r *Request) {
			r.Projects = []string{"a", "b", "c", "d"}
		}, "projects"},
		{"blank project entry", func(r *Request) {
			r.Projects = []string{"a", " "}
		}, "projects[1]"},
		{"non-ISO date", func(r *Request) { r.Date = "01-09-2025" }, "date"},
		{"unpadded date", func(r *Request) { r.Date = "2025-9-1" }, "date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			_, err := Submission(req)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			var verr *Error
			if !errors.As(err, &verr) {
				t.Fatalf("error type = %T, want *Error", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestSubmissionAccepts(t *testing.T) {
	req := Request{
		Email:    "user@example.com",
		Activity: "Working Day",
		Location: "Caesarea",
		Projects: []string{"Campaigns", "DevOps"},
		Date:     "2025-09-01",
	}

	sub, err := Submission(req)
	if err != nil {
		t.Fatalf("Submission: %v", err)
	}
	if sub.Email != req.Email {
		t.Errorf("Email = %q, want %q", sub.Email, req.Email)
	}
	if sub.Activity != model.ActivityWorkingDay {
		t.Errorf("Activity = %q, want %q", sub.Activity, model.ActivityWorkingDay)
	}
	if sub.Date == nil {
		t.Fatal("Date = nil, want parsed date")
	}
	want := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	if !sub.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", sub.Date, want)
	}
}

func TestSubmissionOptionalFieldsStayEmpty(t *testing.T) {
	sub, err := Submission(Request{Email: "user@example.com", Activity: "Vacation"})
	if err != nil {
		t.Fatalf("Submission: %v", err)
	}
	if sub.Date != nil {
		t.Errorf("Date = %v, want nil", sub.Date)
	}
	if sub.Location != "" || len(sub.Projects) != 0 {
		t.Errorf("optional fields not empty: %+v", sub)
	}
}

func TestSubmissionKeepsRawLocationForNonWorkingDay(t *testing.T) {
	// The validator does not strip location/projects for Vacation or
	// Sick Leave; the normalizer owns that override.
	sub, err := Submission(Request{
		Email:    "user@example.com",
		Activity: "Sick Leave",
		Location: "Kyiv Office",
		Projects: []string{"Campaigns"},
	})
	if err != nil {
		t.Fatalf("Submission: %v", err)
	}
	if sub.Location != "Kyiv Office" {
		t.Errorf("Location = %q, want raw value preserved", sub.Location)
	}
	if len(sub.Projects) != 1 {
		t.Errorf("Projects = %v, want raw value preserved", sub.Projects)
	}
}
