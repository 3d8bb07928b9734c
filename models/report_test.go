package models

import (
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidateNewReport(t *testing.T) {
	base := NewReportInput{
		Title:       "Pothole on Main Street",
		Description: "Large pothole",
		IssueType:   "Pothole",
		Location:    "123 Main St",
	}

	if err := ValidateNewReport(base); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}

	missingDesc := base
	missingDesc.Description = ""
	if err := ValidateNewReport(missingDesc); err == nil || !strings.Contains(err.Error(), "description") {
		t.Fatalf("expected description error, got %v", err)
	}

	missingLoc := base
	missingLoc.Location = ""
	if err := ValidateNewReport(missingLoc); err == nil || !strings.Contains(err.Error(), "location") {
		t.Fatalf("expected location error, got %v", err)
	}

	noTitle := base
	noTitle.Title = ""
	noTitle.IssueType = ""
	if err := ValidateNewReport(noTitle); err == nil || !strings.Contains(err.Error(), "title or issue type") {
		t.Fatalf("expected title/issueType error, got %v", err)
	}
}

func TestNewReportDefaults(t *testing.T) {
	userID := primitive.NewObjectID()
	r := NewReport(userID, NewReportInput{
		Description: "Large pothole",
		Location:    "123 Main St",
		IssueType:   "Pothole",
	})

	if r.Title != "Pothole Report" {
		t.Fatalf("expected defaulted title, got %q", r.Title)
	}
	if r.Status != Pending {
		t.Fatalf("expected status Pending, got %q", r.Status)
	}
	if r.Urgency != UrgencyMedium {
		t.Fatalf("expected urgency medium, got %q", r.Urgency)
	}
	if r.Authority != DefaultAuthority {
		t.Fatalf("expected default authority, got %q", r.Authority)
	}
	if len(r.Updates) != 1 || r.Updates[0].Text != "Report submitted" {
		t.Fatalf("expected seeded update log, got %+v", r.Updates)
	}
	if r.UserID != userID {
		t.Fatalf("expected owner %s, got %s", userID.Hex(), r.UserID.Hex())
	}
}

func TestReportLifecycle(t *testing.T) {
	r := NewReport(primitive.NewObjectID(), NewReportInput{
		Description: "Large pothole",
		Location:    "123 Main St",
		IssueType:   "Pothole",
	})

	r.SetStatus(InProgress)
	if r.Status != InProgress {
		t.Fatalf("expected In Progress, got %q", r.Status)
	}
	if len(r.Updates) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(r.Updates))
	}
	if r.Updates[1].Text != "Status changed to In Progress" {
		t.Fatalf("unexpected update text %q", r.Updates[1].Text)
	}

	r.SetStatus(Resolved)
	if r.Status != Resolved || len(r.Updates) != 3 {
		t.Fatalf("expected Resolved with 3 updates, got %q with %d", r.Status, len(r.Updates))
	}

	r.AppendUpdate("Crew dispatched")
	if len(r.Updates) != 4 || r.Updates[3].Text != "Crew dispatched" {
		t.Fatalf("expected appended free-text update, got %+v", r.Updates)
	}
	if r.Status != Resolved {
		t.Fatalf("AppendUpdate must not change status, got %q", r.Status)
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"Pending", "In Progress", "Resolved"} {
		if _, err := ParseStatus(s); err != nil {
			t.Fatalf("expected %q to parse, got %v", s, err)
		}
	}
	if _, err := ParseStatus("Closed"); err == nil {
		t.Fatal("expected error for unknown status")
	}
	if _, err := ParseStatus(""); err == nil {
		t.Fatal("expected error for empty status")
	}
}

func TestParseUrgency(t *testing.T) {
	for _, s := range []string{"low", "medium", "high"} {
		if _, err := ParseUrgency(s); err != nil {
			t.Fatalf("expected %q to parse, got %v", s, err)
		}
	}
	if _, err := ParseUrgency("critical"); err == nil {
		t.Fatal("expected error for unknown urgency")
	}
}
