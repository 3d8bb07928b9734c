package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"cityfix-be/storage"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var imageStore storage.ImageStore

// SetImageStore wires the configured image backend into the upload and AI
// handlers. Called once at startup.
func SetImageStore(s storage.ImageStore) {
	imageStore = s
}

func readFormImage(c *gin.Context, field string) (data []byte, contentType, filename string, ok bool) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "No image uploaded or invalid image format",
		})
		return nil, "", "", false
	}

	if fileHeader.Size > storage.MaxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": storage.ErrPayloadTooLarge.Error()})
		return nil, "", "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error().Err(err).Msg("error opening uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return nil, "", "", false
	}
	defer file.Close()

	data, err = io.ReadAll(io.LimitReader(file, storage.MaxUploadBytes+1))
	if err != nil {
		log.Error().Err(err).Msg("error reading uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return nil, "", "", false
	}

	return data, fileHeader.Header.Get("Content-Type"), fileHeader.Filename, true
}

func uploadErrorStatus(err error) int {
	if errors.Is(err, storage.ErrUnsupportedMediaType) || errors.Is(err, storage.ErrPayloadTooLarge) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// UploadImage handles POST /api/uploads (multipart field "file")
func UploadImage(c *gin.Context) {
	userID, _ := c.Get("user_id")
	uploaderID, _ := userID.(string)

	data, contentType, filename, ok := readFormImage(c, "file")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	imagePath, err := imageStore.Save(ctx, data, contentType, filename, uploaderID)
	if err != nil {
		status := uploadErrorStatus(err)
		if status == http.StatusInternalServerError {
			log.Error().Err(err).Msg("error saving image")
			c.JSON(status, gin.H{"success": false, "message": "Server error"})
			return
		}
		c.JSON(status, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"imagePath": imagePath,
		"message":   "Image uploaded successfully",
	})
}

// GetUpload streams a stored image by its reference. Public.
func GetUpload(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	data, contentType, err := imageStore.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Image not found"})
			return
		}
		log.Error().Err(err).Msg("error retrieving image")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.Data(http.StatusOK, contentType, data)
}
