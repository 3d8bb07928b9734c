package ai

import "context"

// Prediction is one (label, confidence) candidate for an analyzed image.
// Confidence is in [0,1]. Candidates are advisory and unsorted.
type Prediction struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Request carries the image handed to a classifier. ServerPath, when set, is
// the already-uploaded canonical path so the service can reference it.
type Request struct {
	Image       []byte
	ContentType string
	Filename    string
	ServerPath  string
}

// Analysis is the classifier output used to pre-fill the report form.
type Analysis struct {
	Predictions     []Prediction `json:"predictions"`
	IssueType       string       `json:"issueType"`
	Description     string       `json:"aiDescription"`
	Authority       string       `json:"authority"`
	ConfidenceScore float64      `json:"confidenceScore"`
	ImagePath       string       `json:"imagePath,omitempty"`
}

// Adapter is a pluggable classification backend.
type Adapter interface {
	Analyze(ctx context.Context, req Request) (Analysis, error)
}
