package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"cityfix-be/config"
	"cityfix-be/models"
	"cityfix-be/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// communityFeedLimit caps the cross-user feed at the newest 20 reports.
const communityFeedLimit = 20

// requireOwner rejects access to another user's report with 401 and
// reports whether the handler may proceed.
func requireOwner(c *gin.Context, report models.Report, userID string) bool {
	if report.UserID.Hex() != userID {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authorized"})
		return false
	}
	return true
}

// reportOwner joins the creator's public fields onto a report response,
// mirroring what the mobile client renders next to each report.
func reportOwner(ctx context.Context, userID primitive.ObjectID) gin.H {
	owner := gin.H{"id": userID}

	var user models.User
	userCollection := config.GetCollection("users")
	if err := userCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err == nil {
		owner["name"] = user.Name
		owner["avatar"] = user.Avatar
	}
	return owner
}

// CreateReport handles the creation of a new report
func CreateReport(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not authenticated"})
		return
	}

	ownerID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user ID"})
		return
	}

	var input struct {
		Title           string  `json:"title"`
		Description     string  `json:"description"`
		AIDescription   string  `json:"aiDescription"`
		IssueType       string  `json:"issueType"`
		Location        string  `json:"location"`
		Image           string  `json:"image"`
		Urgency         string  `json:"urgency"`
		ConfidenceScore float64 `json:"confidenceScore"`
		Authority       string  `json:"authority"`
		Category        string  `json:"category"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	in := models.NewReportInput{
		Title:           input.Title,
		Description:     input.Description,
		AIDescription:   input.AIDescription,
		IssueType:       input.IssueType,
		Location:        input.Location,
		Urgency:         input.Urgency,
		ConfidenceScore: input.ConfidenceScore,
		Authority:       input.Authority,
		Category:        input.Category,
	}

	if err := models.ValidateNewReport(in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	imagePath, known, err := utils.ResolveForStorage(input.Image)
	if err != nil {
		if errors.Is(err, utils.ErrUnuploadedLocalReference) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Local file paths cannot be saved directly. Please upload the image first.",
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if !known {
		log.Warn().Str("image", input.Image).Msg("unrecognized image path format accepted")
	}
	in.Image = imagePath

	report := models.NewReport(ownerID, in)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reportCollection := config.GetCollection("reports")
	if _, err := reportCollection.InsertOne(ctx, report); err != nil {
		log.Error().Err(err).Msg("error inserting report")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"report":  report,
		"user":    reportOwner(ctx, ownerID),
	})
}

// GetUserReports retrieves all reports created by the requesting user,
// newest first
func GetUserReports(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not authenticated"})
		return
	}

	ownerID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	reportCollection := config.GetCollection("reports")
	cursor, err := reportCollection.Find(ctx, bson.M{"userId": ownerID}, findOptions)
	if err != nil {
		log.Error().Err(err).Msg("error retrieving reports")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	defer cursor.Close(ctx)

	reports := make([]models.Report, 0)
	if err := cursor.All(ctx, &reports); err != nil {
		log.Error().Err(err).Msg("error decoding reports")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, reports)
}

// GetReportByID retrieves a single report, owner only
func GetReportByID(c *gin.Context) {
	reportID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid report ID"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var report models.Report
	reportCollection := config.GetCollection("reports")
	err = reportCollection.FindOne(ctx, bson.M{"_id": reportID}).Decode(&report)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Report not found"})
		} else {
			log.Error().Err(err).Msg("error retrieving report")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		}
		return
	}

	if !requireOwner(c, report, userID.(string)) {
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetCommunityFeed returns the newest reports across all users
func GetCommunityFeed(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(communityFeedLimit)

	reportCollection := config.GetCollection("reports")
	cursor, err := reportCollection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		log.Error().Err(err).Msg("error retrieving community feed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	defer cursor.Close(ctx)

	var reports []models.Report
	if err := cursor.All(ctx, &reports); err != nil {
		log.Error().Err(err).Msg("error decoding community feed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	type FeedReport struct {
		models.Report
		User gin.H `json:"user"`
	}

	feed := make([]FeedReport, 0, len(reports))
	for _, report := range reports {
		feed = append(feed, FeedReport{
			Report: report,
			User:   reportOwner(ctx, report.UserID),
		})
	}

	c.JSON(http.StatusOK, feed)
}

// UpdateReport changes a report's status and/or appends a free-text update,
// owner only
func UpdateReport(c *gin.Context) {
	reportID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid report ID"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not authenticated"})
		return
	}

	var input struct {
		Status     *string `json:"status,omitempty"`
		UpdateText *string `json:"updateText,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	var status models.ReportStatus
	if input.Status != nil {
		status, err = models.ParseStatus(*input.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid status"})
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var report models.Report
	reportCollection := config.GetCollection("reports")
	err = reportCollection.FindOne(ctx, bson.M{"_id": reportID}).Decode(&report)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Report not found"})
		} else {
			log.Error().Err(err).Msg("error retrieving report")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		}
		return
	}

	if !requireOwner(c, report, userID.(string)) {
		return
	}

	if input.Status != nil {
		report.SetStatus(status)
	}
	if input.UpdateText != nil && *input.UpdateText != "" {
		report.AppendUpdate(*input.UpdateText)
	}

	update := bson.M{"$set": bson.M{
		"status":    report.Status,
		"updates":   report.Updates,
		"updatedAt": report.UpdatedAt,
	}}

	if _, err := reportCollection.UpdateOne(ctx, bson.M{"_id": reportID}, update); err != nil {
		log.Error().Err(err).Msg("error updating report")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"report":  report,
	})
}
