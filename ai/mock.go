package ai

import (
	"context"
	"math"
	"math/rand"
)

// MockAdapter simulates classification with a randomized pick from the
// catalog. It never fails.
type MockAdapter struct{}

func (m MockAdapter) Analyze(ctx context.Context, req Request) (Analysis, error) {
	issueType := IssueTypes[rand.Intn(len(IssueTypes))]
	confidence := math.Round((0.7+rand.Float64()*0.3)*100) / 100

	return Analysis{
		Predictions: []Prediction{
			{Label: issueType, Confidence: confidence},
		},
		IssueType:       issueType,
		Description:     DescriptionFor(issueType),
		Authority:       AuthorityFor(issueType),
		ConfidenceScore: confidence,
		ImagePath:       req.ServerPath,
	}, nil
}
