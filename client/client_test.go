package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoginInstallsToken(t *testing.T) {
	var seenAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"token": "tok-123",
				"user":  map[string]string{"id": "u1", "name": "Jane"},
			})
		case "/api/reports":
			seenAuth = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode([]Report{})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	user, err := c.Login(context.Background(), "jane@example.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Name != "Jane" {
		t.Fatalf("unexpected user %+v", user)
	}

	if _, err := c.GetUserReports(context.Background()); err != nil {
		t.Fatalf("get reports: %v", err)
	}
	if seenAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer token on request, got %q", seenAuth)
	}
}

func TestGetUserReportsOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Report{{ID: "r1", Title: "Pothole Report"}})
	}))

	c := NewClient(srv.URL)
	reports, err := c.GetUserReports(context.Background())
	if err != nil || len(reports) != 1 {
		t.Fatalf("expected one report, got %v, %v", reports, err)
	}

	srv.Close()

	if _, err := c.GetUserReports(context.Background()); !errors.Is(err, ErrOffline) {
		t.Fatalf("expected ErrOffline, got %v", err)
	}

	// The cache still holds the last good fetch; the caller decides
	// whether to show it.
	cached := c.CachedUserReports()
	if len(cached) != 1 || cached[0].ID != "r1" {
		t.Fatalf("expected cached reports to survive, got %+v", cached)
	}
}

func TestFeedImagesResolvedForDisplay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Report{
			{ID: "r1", Image: "/uploads/img-1.jpg"},
			{ID: "r2", Image: "https://cdn.example.com/a.jpg"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	feed, err := c.GetCommunityFeed(context.Background())
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if feed[0].Image != srv.URL+"/uploads/img-1.jpg" {
		t.Fatalf("expected server-relative path prefixed, got %q", feed[0].Image)
	}
	if feed[1].Image != "https://cdn.example.com/a.jpg" {
		t.Fatalf("external URL must pass through, got %q", feed[1].Image)
	}
}

func TestUpdateLocalReportSkipsNetwork(t *testing.T) {
	networkCalled := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		networkCalled = true
		http.Error(w, "should not be called", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.registerLocalReport(Report{
		ID:      "local-42",
		Status:  "Pending",
		Updates: []ReportUpdate{{Text: "Report submitted"}},
		Local:   true,
	})

	report, err := c.UpdateReport(context.Background(), "local-42", UpdateRequest{Status: "In Progress"})
	if err != nil {
		t.Fatalf("local update: %v", err)
	}
	if networkCalled {
		t.Fatal("placeholder update must not hit the network")
	}
	if report.Status != "In Progress" {
		t.Fatalf("expected status applied, got %q", report.Status)
	}
	if len(report.Updates) != 2 || report.Updates[1].Text != "Status changed to In Progress" {
		t.Fatalf("expected transition logged, got %+v", report.Updates)
	}

	// Local placeholders also answer GetReport without the network.
	got, err := c.GetReport(context.Background(), "local-42")
	if err != nil || got.Status != "In Progress" {
		t.Fatalf("expected local read-back, got %+v, %v", got, err)
	}
}

func TestUpdateLocalReportRejectsInvalidStatus(t *testing.T) {
	c := NewClient("http://localhost:0")
	c.registerLocalReport(Report{
		ID:      "local-43",
		Status:  "Pending",
		Updates: []ReportUpdate{{Text: "Report submitted"}},
		Local:   true,
	})

	_, err := c.UpdateReport(context.Background(), "local-43", UpdateRequest{Status: "Vaporized"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Message != "Invalid status" {
		t.Fatalf("unexpected APIError %+v", apiErr)
	}

	got, err := c.GetReport(context.Background(), "local-43")
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if got.Status != "Pending" || len(got.Updates) != 1 {
		t.Fatalf("placeholder must be unchanged after a rejected status, got %+v", got)
	}
}

func TestUploadImageServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "only image files are allowed",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.UploadImage(context.Background(), []byte("nope"), "tool.exe")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Message != "only image files are allowed" {
		t.Fatalf("unexpected APIError %+v", apiErr)
	}
	if errors.Is(err, ErrOffline) {
		t.Fatal("a served error response is not offline")
	}
}
