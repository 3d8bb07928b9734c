package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cityfix-be/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	userID := primitive.NewObjectID().Hex()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
	})
	r.POST("/api/reports", CreateReport)
	r.PUT("/api/reports/:id", UpdateReport)
	r.GET("/api/reports/:id", GetReportByID)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func responseMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return payload.Message
}

func TestCreateReportMissingDescription(t *testing.T) {
	r := newTestRouter()
	w := postJSON(t, r, "/api/reports", `{"issueType":"Pothole","location":"123 Main St"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if msg := responseMessage(t, w); !strings.Contains(msg, "description") {
		t.Fatalf("expected message naming description, got %q", msg)
	}
}

func TestCreateReportMissingLocation(t *testing.T) {
	r := newTestRouter()
	w := postJSON(t, r, "/api/reports", `{"issueType":"Pothole","description":"Large pothole"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if msg := responseMessage(t, w); !strings.Contains(msg, "location") {
		t.Fatalf("expected message naming location, got %q", msg)
	}
}

func TestCreateReportMissingTitleAndIssueType(t *testing.T) {
	r := newTestRouter()
	w := postJSON(t, r, "/api/reports", `{"description":"Large pothole","location":"123 Main St"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCreateReportRejectsLocalImagePath(t *testing.T) {
	r := newTestRouter()
	w := postJSON(t, r, "/api/reports",
		`{"issueType":"Pothole","description":"Large pothole","location":"123 Main St","image":"file:///tmp/x.jpg"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if msg := responseMessage(t, w); !strings.Contains(msg, "upload the image first") {
		t.Fatalf("expected unuploaded-reference message, got %q", msg)
	}
}

func TestUpdateReportRejectsInvalidStatus(t *testing.T) {
	r := newTestRouter()
	id := primitive.NewObjectID().Hex()

	req := httptest.NewRequest(http.MethodPut, "/api/reports/"+id, strings.NewReader(`{"status":"Closed"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if msg := responseMessage(t, w); msg != "Invalid status" {
		t.Fatalf("expected invalid status message, got %q", msg)
	}
}

func TestRequireOwnerRejectsNonOwner(t *testing.T) {
	gin.SetMode(gin.TestMode)

	report := models.NewReport(primitive.NewObjectID(), models.NewReportInput{
		Description: "Large pothole",
		Location:    "123 Main St",
		IssueType:   "Pothole",
	})
	before := len(report.Updates)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	if requireOwner(c, report, primitive.NewObjectID().Hex()) {
		t.Fatal("expected non-owner to be rejected")
	}
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if report.Status != models.Pending || len(report.Updates) != before {
		t.Fatalf("rejected access must leave the report untouched, got %+v", report)
	}

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	if !requireOwner(c, report, report.UserID.Hex()) {
		t.Fatal("expected owner to pass")
	}
}

func TestGetReportRejectsMalformedID(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/reports/not-an-id", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
