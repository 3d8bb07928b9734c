package ai

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// Gateway wraps a classification backend with the mock fallback. Results are
// advisory: a failing backend degrades to simulated output instead of
// surfacing an error, so classification can never block report submission.
type Gateway struct {
	adapter Adapter
	mock    MockAdapter
	timeout time.Duration
	log     zerolog.Logger
}

// NewGateway builds a gateway for the given external service URL. An empty
// URL means mock-only operation.
func NewGateway(serviceURL string, log zerolog.Logger) *Gateway {
	g := &Gateway{
		timeout: 15 * time.Second,
		log:     log,
	}
	if serviceURL != "" {
		g.adapter = HTTPAdapter{BaseURL: serviceURL}
	}
	return g
}

// NewGatewayWithAdapter is used by tests to inject a backend.
func NewGatewayWithAdapter(adapter Adapter, log zerolog.Logger) *Gateway {
	return &Gateway{adapter: adapter, timeout: 15 * time.Second, log: log}
}

// Classify analyzes an image. It always returns a usable result.
func (g *Gateway) Classify(ctx context.Context, req Request) Analysis {
	if g.adapter != nil {
		ctx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()

		analysis, err := g.adapter.Analyze(ctx, req)
		if err == nil && len(analysis.Predictions) > 0 {
			return analysis
		}
		if err == nil {
			err = errors.New("backend returned no predictions")
		}
		g.log.Warn().Err(err).Msg("classification backend unusable, using mock analysis")
	}

	analysis, _ := g.mock.Analyze(ctx, req)
	return analysis
}
