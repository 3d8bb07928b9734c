package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"time"
)

// HTTPAdapter forwards images to an external classification service as
// multipart form data and maps its response onto an Analysis.
type HTTPAdapter struct {
	BaseURL string
	Client  *http.Client
}

type httpResponse struct {
	Predictions []Prediction `json:"predictions"`
	ImagePath   string       `json:"image_path"`
}

func (h HTTPAdapter) Analyze(ctx context.Context, req Request) (Analysis, error) {
	client := h.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	filename := req.Filename
	if filename == "" {
		filename = "photo.jpg"
	}
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return Analysis{}, err
	}
	if _, err := part.Write(req.Image); err != nil {
		return Analysis{}, err
	}
	if req.ServerPath != "" {
		if err := writer.WriteField("serverPath", req.ServerPath); err != nil {
			return Analysis{}, err
		}
	}
	if err := writer.Close(); err != nil {
		return Analysis{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.BaseURL+"/predict", &buf)
	if err != nil {
		return Analysis{}, err
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := client.Do(httpReq)
	if err != nil {
		return Analysis{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Analysis{}, errors.New("classification service error")
	}

	var r httpResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return Analysis{}, err
	}
	if len(r.Predictions) == 0 {
		return Analysis{}, errors.New("classification service returned no predictions")
	}

	top := r.Predictions[0]
	for _, p := range r.Predictions[1:] {
		if p.Confidence > top.Confidence {
			top = p
		}
	}

	imagePath := r.ImagePath
	if imagePath == "" {
		imagePath = req.ServerPath
	}

	return Analysis{
		Predictions:     r.Predictions,
		IssueType:       top.Label,
		Description:     DescriptionFor(top.Label),
		Authority:       AuthorityFor(top.Label),
		ConfidenceScore: top.Confidence,
		ImagePath:       imagePath,
	}, nil
}
