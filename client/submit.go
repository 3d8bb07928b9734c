package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"path"
	"sync"
	"time"

	"cityfix-be/ai"
	"cityfix-be/models"
	"cityfix-be/utils"
)

// maxPreUploadBytes is the threshold above which an image is shrunk before
// any network use.
const maxPreUploadBytes = 5 << 20

var (
	// ErrSubmissionInFlight means another submission for the same image has
	// not yet reached a terminal state.
	ErrSubmissionInFlight = errors.New("a submission for this image is already in flight")

	// ErrNoCandidatePicked means the caller's picker declined to choose.
	ErrNoCandidatePicked = errors.New("a classification candidate must be selected")
)

// PickFunc presents classification candidates and returns the user's choice.
// Submission does not proceed without exactly one picked candidate.
type PickFunc func(candidates []ai.Prediction) (ai.Prediction, error)

// Draft is the input to a submission flow.
type Draft struct {
	ImageURI    string // device-local URI or an already-uploaded server path
	ImageData   []byte // binary payload, required for local URIs
	Title       string
	Description string
	Location    string
	Urgency     string
	Category    string
}

// SubmitResult is the outcome of a submission flow. Offline reports are
// local placeholders that keep the UI responsive; they are never durable.
type SubmitResult struct {
	Report  Report
	Offline bool
}

// Submitter drives the capture-classify-upload-create flow. A given image
// has at most one flow in flight at a time; a flow runs to completion or to
// a terminal local failure before another may start for the same image.
type Submitter struct {
	client *Client

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewSubmitter(c *Client) *Submitter {
	return &Submitter{
		client:   c,
		inFlight: make(map[string]struct{}),
	}
}

func (s *Submitter) acquire(imageURI string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[imageURI]; busy {
		return ErrSubmissionInFlight
	}
	s.inFlight[imageURI] = struct{}{}
	return nil
}

func (s *Submitter) release(imageURI string) {
	s.mu.Lock()
	delete(s.inFlight, imageURI)
	s.mu.Unlock()
}

// Submit runs the full flow: shrink the image if oversized, classify it,
// have the user pick a label, upload the image if it is still a local
// reference, then create the report. Classification failures degrade to the
// fixed fallback candidates; an upload failure aborts the flow, since a
// report referencing an unuploaded local path is invalid. A create failure
// caused by the network yields an offline placeholder instead of an error.
func (s *Submitter) Submit(ctx context.Context, draft Draft, pick PickFunc) (SubmitResult, error) {
	if pick == nil {
		return SubmitResult{}, ErrNoCandidatePicked
	}
	if err := s.acquire(draft.ImageURI); err != nil {
		return SubmitResult{}, err
	}
	defer s.release(draft.ImageURI)

	data := draft.ImageData
	if len(data) > maxPreUploadBytes {
		data = shrinkJPEG(data)
	}

	filename := path.Base(draft.ImageURI)

	// Classification is advisory: the analyze endpoint also ingests the
	// image, so a successful call hands back both candidates and the
	// canonical server path.
	candidates := ai.FallbackPredictions
	serverPath := ""
	aiDescription := ""
	analysis, err := s.client.Analyze(ctx, data, filename)
	if err == nil {
		candidates = analysis.Predictions
		serverPath = analysis.ImagePath
		aiDescription = analysis.Description
	}

	chosen, err := pick(candidates)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("no candidate selected: %w", err)
	}

	imageRef := serverPath
	if imageRef == "" {
		imageRef = draft.ImageURI
		if utils.IsLocalRef(imageRef) {
			// The one step that must block: a report referencing an
			// unuploaded local path would be rejected anyway.
			uploaded, err := s.client.UploadImage(ctx, data, filename)
			if err != nil {
				return SubmitResult{}, fmt.Errorf("image upload failed: %w", err)
			}
			imageRef = uploaded
		}
	}

	if aiDescription == "" {
		aiDescription = ai.DescriptionFor(chosen.Label)
	}

	reportDraft := ReportDraft{
		Title:           draft.Title,
		Description:     draft.Description,
		AIDescription:   aiDescription,
		IssueType:       chosen.Label,
		Location:        draft.Location,
		Image:           imageRef,
		Urgency:         draft.Urgency,
		ConfidenceScore: chosen.Confidence,
		Authority:       ai.AuthorityFor(chosen.Label),
		Category:        draft.Category,
	}

	report, err := s.client.CreateReport(ctx, reportDraft)
	if err != nil {
		if errors.Is(err, ErrOffline) {
			placeholder := s.placeholderReport(reportDraft)
			s.client.registerLocalReport(placeholder)
			return SubmitResult{Report: placeholder, Offline: true}, nil
		}
		return SubmitResult{}, err
	}

	return SubmitResult{Report: report}, nil
}

// placeholderReport synthesizes a local-only report so the UI stays usable
// while disconnected.
func (s *Submitter) placeholderReport(draft ReportDraft) Report {
	now := time.Now()

	title := draft.Title
	if title == "" {
		title = draft.IssueType + " Report"
	}
	urgency := draft.Urgency
	if urgency == "" {
		urgency = string(models.UrgencyMedium)
	}

	return Report{
		ID:              fmt.Sprintf("local-%d", now.UnixNano()),
		Title:           title,
		Description:     draft.Description,
		AIDescription:   draft.AIDescription,
		IssueType:       draft.IssueType,
		Location:        draft.Location,
		Image:           draft.Image,
		Status:          string(models.Pending),
		Urgency:         urgency,
		ConfidenceScore: draft.ConfidenceScore,
		Authority:       draft.Authority,
		Category:        draft.Category,
		Updates: []ReportUpdate{
			{Date: now, Text: "Report submitted"},
		},
		CreatedAt: now,
		UpdatedAt: now,
		Local:     true,
	}
}

// shrinkJPEG re-encodes an oversized image at reduced JPEG quality. If the
// payload cannot be decoded it is returned unchanged.
func shrinkJPEG(data []byte) []byte {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 60}); err != nil {
		return data
	}
	if buf.Len() >= len(data) {
		return data
	}
	return buf.Bytes()
}
