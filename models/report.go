package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReportStatus enum
type ReportStatus string

const (
	Pending    ReportStatus = "Pending"
	InProgress ReportStatus = "In Progress"
	Resolved   ReportStatus = "Resolved"
)

// Urgency enum
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// DefaultAuthority is assigned when no responsible department is known.
const DefaultAuthority = "City Maintenance"

// ReportUpdate is one entry in a report's append-only update log.
type ReportUpdate struct {
	Date time.Time `bson:"date" json:"date"`
	Text string    `bson:"text" json:"text"`
}

// Report represents one reported civic issue
type Report struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description" json:"description"`
	AIDescription   string             `bson:"aiDescription,omitempty" json:"aiDescription,omitempty"`
	IssueType       string             `bson:"issueType" json:"issueType"`
	Location        string             `bson:"location" json:"location"`
	Image           string             `bson:"image,omitempty" json:"image,omitempty"`
	Status          ReportStatus       `bson:"status" json:"status"`
	Urgency         Urgency            `bson:"urgency" json:"urgency"`
	ConfidenceScore float64            `bson:"confidenceScore" json:"confidenceScore"`
	Authority       string             `bson:"authority" json:"authority"`
	Category        string             `bson:"category,omitempty" json:"category,omitempty"`
	Upvotes         int                `bson:"upvotes" json:"upvotes"`
	Comments        int                `bson:"comments" json:"comments"`
	Updates         []ReportUpdate     `bson:"updates" json:"updates"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewReportInput carries the caller-supplied fields for a new report.
type NewReportInput struct {
	Title           string
	Description     string
	AIDescription   string
	IssueType       string
	Location        string
	Image           string
	Urgency         string
	ConfidenceScore float64
	Authority       string
	Category        string
}

// ValidateNewReport checks the required fields, naming the missing one.
func ValidateNewReport(in NewReportInput) error {
	if in.Title == "" && in.IssueType == "" {
		return fmt.Errorf("title or issue type is required")
	}
	if in.Description == "" {
		return fmt.Errorf("description is required")
	}
	if in.Location == "" {
		return fmt.Errorf("location is required")
	}
	return nil
}

// NewReport builds a report with defaults applied and the update log seeded.
// The caller is expected to have validated the input and resolved the image
// reference to a storable form.
func NewReport(userID primitive.ObjectID, in NewReportInput) Report {
	now := time.Now()

	title := in.Title
	if title == "" {
		title = in.IssueType + " Report"
	}

	issueType := in.IssueType
	if issueType == "" {
		issueType = "Other"
	}

	urgency := UrgencyMedium
	if u, err := ParseUrgency(in.Urgency); err == nil && in.Urgency != "" {
		urgency = u
	}

	authority := in.Authority
	if authority == "" {
		authority = DefaultAuthority
	}

	return Report{
		ID:              primitive.NewObjectID(),
		UserID:          userID,
		Title:           title,
		Description:     in.Description,
		AIDescription:   in.AIDescription,
		IssueType:       issueType,
		Location:        in.Location,
		Image:           in.Image,
		Status:          Pending,
		Urgency:         urgency,
		ConfidenceScore: in.ConfidenceScore,
		Authority:       authority,
		Category:        in.Category,
		Updates: []ReportUpdate{
			{Date: now, Text: "Report submitted"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ParseStatus validates a status string against the three known states.
func ParseStatus(s string) (ReportStatus, error) {
	switch ReportStatus(s) {
	case Pending, InProgress, Resolved:
		return ReportStatus(s), nil
	}
	return "", fmt.Errorf("invalid status %q", s)
}

// ParseUrgency validates an urgency string.
func ParseUrgency(s string) (Urgency, error) {
	switch Urgency(s) {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return Urgency(s), nil
	}
	return "", fmt.Errorf("invalid urgency %q", s)
}

// SetStatus applies a status transition and records it in the update log.
func (r *Report) SetStatus(status ReportStatus) {
	now := time.Now()
	r.Status = status
	r.Updates = append(r.Updates, ReportUpdate{
		Date: now,
		Text: fmt.Sprintf("Status changed to %s", status),
	})
	r.UpdatedAt = now
}

// AppendUpdate adds a free-text entry to the update log without touching
// the status.
func (r *Report) AppendUpdate(text string) {
	now := time.Now()
	r.Updates = append(r.Updates, ReportUpdate{Date: now, Text: text})
	r.UpdatedAt = now
}
