package controllers

import (
	"context"
	"net/http"
	"time"

	"cityfix-be/ai"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var classifier *ai.Gateway

// SetClassifier wires the classification gateway into the analyze handler.
// Called once at startup.
func SetClassifier(g *ai.Gateway) {
	classifier = g
}

// AnalyzeImage handles POST /api/ai/analyze (multipart field "image"). The
// image is ingested first so the response carries a canonical server path,
// then classified. Classification never fails: an unreachable backend
// degrades to mock analysis.
func AnalyzeImage(c *gin.Context) {
	userID, _ := c.Get("user_id")
	uploaderID, _ := userID.(string)

	data, contentType, filename, ok := readFormImage(c, "image")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	imagePath, err := imageStore.Save(ctx, data, contentType, filename, uploaderID)
	if err != nil {
		status := uploadErrorStatus(err)
		if status == http.StatusInternalServerError {
			log.Error().Err(err).Msg("error saving image for analysis")
			c.JSON(status, gin.H{"success": false, "message": "Server error"})
			return
		}
		c.JSON(status, gin.H{"success": false, "message": err.Error()})
		return
	}

	analysis := classifier.Classify(ctx, ai.Request{
		Image:       data,
		ContentType: contentType,
		Filename:    filename,
		ServerPath:  imagePath,
	})

	if analysis.ImagePath == "" {
		analysis.ImagePath = imagePath
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"imagePath":       analysis.ImagePath,
		"issueType":       analysis.IssueType,
		"aiDescription":   analysis.Description,
		"authority":       analysis.Authority,
		"confidenceScore": analysis.ConfidenceScore,
		"predictions":     analysis.Predictions,
		"timestamp":       time.Now(),
	})
}
