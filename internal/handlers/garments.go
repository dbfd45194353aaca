package handlers

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"drip/internal/database"
	"drip/internal/logger"
	"drip/internal/models"
	"drip/internal/vision"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func handleListGarments(c *gin.Context) {
	db := getDB(c)

	filter := database.GarmentFilter{
		ActiveOnly: c.DefaultQuery("active", "true") == "true",
		Category:   c.Query("category"),
	}
	if seasons := c.Query("seasons"); seasons != "" {
		filter.Seasons = strings.Split(seasons, ",")
	}
	if min, err := strconv.Atoi(c.Query("formality_min")); err == nil {
		filter.FormalityMin = min
	}
	if max, err := strconv.Atoi(c.Query("formality_max")); err == nil {
		filter.FormalityMax = max
	}

	garments, err := database.ListGarments(db, filter)
	if err != nil {
		logger.Error("failed to list garments", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list garments"})
		return
	}

	counts, err := database.GetGarmentCountByCategory(db)
	if err != nil {
		logger.Error("failed to count garments", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count garments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"garments": garments,
		"counts":   counts,
	})
}

func handleCreateGarment(c *gin.Context) {
	db := getDB(c)

	var garment models.Garment
	if err := c.ShouldBindJSON(&garment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid garment payload"})
		return
	}
	garment.Active = true

	created, err := database.CreateGarment(db, garment)
	if err != nil {
		logger.Error("failed to create garment", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create garment"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

func handleGetGarment(c *gin.Context) {
	db := getDB(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid garment ID"})
		return
	}

	garment, err := database.GetGarment(db, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Garment not found"})
		return
	}

	c.JSON(http.StatusOK, garment)
}

func handleUpdateGarment(c *gin.Context) {
	db := getDB(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid garment ID"})
		return
	}

	var garment models.Garment
	if err := c.ShouldBindJSON(&garment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid garment payload"})
		return
	}

	if err := database.UpdateGarment(db, id, garment); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Garment not found"})
		return
	}

	updated, err := database.GetGarment(db, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load garment"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func handleDeleteGarment(c *gin.Context) {
	db := getDB(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid garment ID"})
		return
	}

	if err := database.DeleteGarment(db, id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Garment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// handleIdentifyGarment accepts a garment photo, stores it under a uuid
// filename, and returns the AI-identified profile plus the stored
// filename. A parse failure returns the raw model text for a user retry.
func handleIdentifyGarment(c *gin.Context) {
	svc := getServices(c)

	if !svc.AI.IsEnabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Anthropic API key not set"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file required"})
		return
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image"})
		return
	}

	mediaType := header.Header.Get("Content-Type")
	if mediaType != "image/jpeg" && mediaType != "image/png" && mediaType != "image/webp" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported image type"})
		return
	}

	profile, err := vision.Identify(c.Request.Context(), svc.AI, imageBytes, mediaType)
	if err != nil {
		if raw, ok := rawParseFailure(err); ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":        "Failed to parse AI response",
				"raw_response": raw,
			})
			return
		}
		logger.Error("vision identify failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Identification failed"})
		return
	}

	filename := uuid.New().String() + imageExtension(mediaType)
	if err := os.MkdirAll(svc.Config.ImagesDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}
	if err := os.WriteFile(filepath.Join(svc.Config.ImagesDir, filename), imageBytes, 0o644); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":        profile,
		"image_filename": filename,
	})
}

func imageExtension(mediaType string) string {
	switch mediaType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

func handleExportGarments(c *gin.Context) {
	db := getDB(c)

	garments, err := database.ListGarments(db, database.GarmentFilter{ActiveOnly: false})
	if err != nil {
		logger.Error("failed to export garments", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export garments"})
		return
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"id", "name", "category", "subcategory", "colors", "pattern",
		"material", "formality", "seasons", "notes", "active", "created_at"}
	if err := writer.Write(header); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write CSV"})
		return
	}

	for _, g := range garments {
		colors, _ := json.Marshal(g.Colors)
		seasons, _ := json.Marshal(g.Seasons)
		active := "0"
		if g.Active {
			active = "1"
		}
		record := []string{
			strconv.Itoa(g.ID),
			g.Name,
			g.Category,
			g.Subcategory,
			string(colors),
			g.Pattern,
			g.Material,
			strconv.Itoa(g.Formality),
			string(seasons),
			g.Notes,
			active,
			g.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write CSV"})
			return
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write CSV"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", "drip_wardrobe_export.csv"))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
