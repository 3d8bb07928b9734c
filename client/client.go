// Package client is the Go API client for the CityFix backend. A Client
// carries its own bearer token; credentials are never process-global.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"cityfix-be/ai"
	"cityfix-be/models"
	"cityfix-be/utils"
)

// ErrOffline marks a network-level failure. Callers decide whether to fall
// back to cached data; the client never fabricates results.
var ErrOffline = errors.New("server unreachable")

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// ReportUpdate mirrors one entry of a report's update log.
type ReportUpdate struct {
	Date time.Time `json:"date"`
	Text string    `json:"text"`
}

// ReportUser is the creator info joined onto feed entries.
type ReportUser struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Report is the client-side view of a report. Placeholder reports created
// while offline carry a "local-" ID and Local=true; they are never durable.
type Report struct {
	ID              string         `json:"id"`
	UserID          string         `json:"userId"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	AIDescription   string         `json:"aiDescription,omitempty"`
	IssueType       string         `json:"issueType"`
	Location        string         `json:"location"`
	Image           string         `json:"image,omitempty"`
	Status          string         `json:"status"`
	Urgency         string         `json:"urgency"`
	ConfidenceScore float64        `json:"confidenceScore"`
	Authority       string         `json:"authority"`
	Category        string         `json:"category,omitempty"`
	Upvotes         int            `json:"upvotes"`
	Comments        int            `json:"comments"`
	Updates         []ReportUpdate `json:"updates"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	User            *ReportUser    `json:"user,omitempty"`

	Local bool `json:"-"`
}

// IsLocalReportID reports whether an ID belongs to an offline placeholder.
func IsLocalReportID(id string) bool {
	return strings.HasPrefix(id, "local-")
}

// ReportDraft carries the fields submitted when creating a report.
type ReportDraft struct {
	Title           string  `json:"title,omitempty"`
	Description     string  `json:"description"`
	AIDescription   string  `json:"aiDescription,omitempty"`
	IssueType       string  `json:"issueType,omitempty"`
	Location        string  `json:"location"`
	Image           string  `json:"image,omitempty"`
	Urgency         string  `json:"urgency,omitempty"`
	ConfidenceScore float64 `json:"confidenceScore,omitempty"`
	Authority       string  `json:"authority,omitempty"`
	Category        string  `json:"category,omitempty"`
}

// User is the account representation returned by the auth endpoints.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// Client talks to one CityFix server on behalf of one authenticated user.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	token string

	mu            sync.Mutex
	cachedReports []Report
	cachedFeed    []Report
	localReports  map[string]Report
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:      strings.TrimSuffix(baseURL, "/"),
		HTTPClient:   &http.Client{Timeout: 15 * time.Second},
		localReports: make(map[string]Report),
	}
}

// SetToken installs the bearer token used for authorized calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOffline, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	var payload struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	if payload.Message == "" {
		payload.Message = resp.Status
	}
	return &APIError{Status: resp.StatusCode, Message: payload.Message}
}

// Register creates an account and installs the returned token.
func (c *Client) Register(ctx context.Context, name, email, password string) (User, error) {
	var result struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return User{}, err
	}
	c.token = result.Token
	return result.User, nil
}

// Login authenticates and installs the returned token.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	var result struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return User{}, err
	}
	c.token = result.Token
	return result.User, nil
}

// UpdateProfile changes profile fields on the authenticated account.
func (c *Client) UpdateProfile(ctx context.Context, fields map[string]string) (User, error) {
	var result struct {
		User User `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodPut, "/api/auth/user", fields, &result); err != nil {
		return User{}, err
	}
	return result.User, nil
}

// UploadImage sends an image and returns the canonical server path.
func (c *Client) UploadImage(ctx context.Context, data []byte, filename string) (string, error) {
	resp, err := c.postMultipart(ctx, "/api/uploads", "file", data, filename)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", decodeAPIError(resp)
	}

	var result struct {
		Success   bool   `json:"success"`
		ImagePath string `json:"imagePath"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if !result.Success || result.ImagePath == "" {
		return "", errors.New("upload succeeded but no image path was returned")
	}
	return result.ImagePath, nil
}

// Analyze asks the server to classify an image. The server side already
// absorbs classifier outages, so an error here means the server itself was
// unreachable.
func (c *Client) Analyze(ctx context.Context, data []byte, filename string) (ai.Analysis, error) {
	resp, err := c.postMultipart(ctx, "/api/ai/analyze", "image", data, filename)
	if err != nil {
		return ai.Analysis{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ai.Analysis{}, decodeAPIError(resp)
	}

	var analysis ai.Analysis
	if err := json.NewDecoder(resp.Body).Decode(&analysis); err != nil {
		return ai.Analysis{}, err
	}
	if len(analysis.Predictions) == 0 && analysis.IssueType != "" {
		analysis.Predictions = []ai.Prediction{
			{Label: analysis.IssueType, Confidence: analysis.ConfidenceScore},
		}
	}
	return analysis, nil
}

func (c *Client) postMultipart(ctx context.Context, path, field string, data []byte, filename string) (*http.Response, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if filename == "" {
		filename = "photo.jpg"
	}
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOffline, err)
	}
	return resp, nil
}

// CreateReport persists a report on the server.
func (c *Client) CreateReport(ctx context.Context, draft ReportDraft) (Report, error) {
	var result struct {
		Success bool   `json:"success"`
		Report  Report `json:"report"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/reports", draft, &result); err != nil {
		return Report{}, err
	}
	c.resolveImage(&result.Report)
	return result.Report, nil
}

// GetUserReports fetches the caller's reports, newest first. A network
// failure returns ErrOffline; the last successful result stays available via
// CachedUserReports.
func (c *Client) GetUserReports(ctx context.Context) ([]Report, error) {
	var reports []Report
	if err := c.doJSON(ctx, http.MethodGet, "/api/reports", nil, &reports); err != nil {
		return nil, err
	}
	for i := range reports {
		c.resolveImage(&reports[i])
	}

	c.mu.Lock()
	c.cachedReports = reports
	c.mu.Unlock()
	return reports, nil
}

// CachedUserReports returns the last successfully fetched report list.
func (c *Client) CachedUserReports() []Report {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cachedReports
}

// GetCommunityFeed fetches the newest reports across all users.
func (c *Client) GetCommunityFeed(ctx context.Context) ([]Report, error) {
	var feed []Report
	if err := c.doJSON(ctx, http.MethodGet, "/api/reports/community/feed", nil, &feed); err != nil {
		return nil, err
	}
	for i := range feed {
		c.resolveImage(&feed[i])
	}

	c.mu.Lock()
	c.cachedFeed = feed
	c.mu.Unlock()
	return feed, nil
}

// CachedCommunityFeed returns the last successfully fetched feed.
func (c *Client) CachedCommunityFeed() []Report {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cachedFeed
}

// GetReport fetches one report by ID. Placeholder IDs are answered locally.
func (c *Client) GetReport(ctx context.Context, id string) (Report, error) {
	if IsLocalReportID(id) {
		c.mu.Lock()
		report, ok := c.localReports[id]
		c.mu.Unlock()
		if !ok {
			return Report{}, &APIError{Status: http.StatusNotFound, Message: "Report not found"}
		}
		return report, nil
	}

	var report Report
	if err := c.doJSON(ctx, http.MethodGet, "/api/reports/"+id, nil, &report); err != nil {
		return Report{}, err
	}
	c.resolveImage(&report)
	return report, nil
}

// UpdateRequest carries a status change and/or a free-text update entry.
type UpdateRequest struct {
	Status     string `json:"status,omitempty"`
	UpdateText string `json:"updateText,omitempty"`
}

// UpdateReport applies a status change or appends an update. Placeholder
// reports are updated locally only; no network call is made for them.
func (c *Client) UpdateReport(ctx context.Context, id string, update UpdateRequest) (Report, error) {
	if IsLocalReportID(id) {
		return c.updateLocalReport(id, update)
	}

	var result struct {
		Success bool   `json:"success"`
		Report  Report `json:"report"`
	}
	if err := c.doJSON(ctx, http.MethodPut, "/api/reports/"+id, update, &result); err != nil {
		return Report{}, err
	}
	c.resolveImage(&result.Report)
	return result.Report, nil
}

func (c *Client) updateLocalReport(id string, update UpdateRequest) (Report, error) {
	// Placeholders obey the same status vocabulary the server enforces.
	var status models.ReportStatus
	if update.Status != "" {
		s, err := models.ParseStatus(update.Status)
		if err != nil {
			return Report{}, &APIError{Status: http.StatusBadRequest, Message: "Invalid status"}
		}
		status = s
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	report, ok := c.localReports[id]
	if !ok {
		return Report{}, &APIError{Status: http.StatusNotFound, Message: "Report not found"}
	}

	now := time.Now()
	if update.Status != "" {
		report.Status = string(status)
		report.Updates = append(report.Updates, ReportUpdate{
			Date: now,
			Text: fmt.Sprintf("Status changed to %s", status),
		})
	}
	if update.UpdateText != "" {
		report.Updates = append(report.Updates, ReportUpdate{Date: now, Text: update.UpdateText})
	}
	report.UpdatedAt = now

	c.localReports[id] = report
	return report, nil
}

func (c *Client) registerLocalReport(report Report) {
	c.mu.Lock()
	c.localReports[report.ID] = report
	c.mu.Unlock()
}

// resolveImage rewrites a stored image reference into a fetchable URL.
func (c *Client) resolveImage(r *Report) {
	r.Image = utils.ResolveForDisplay(r.Image, c.BaseURL)
}
