package handlers

import (
	"net/http"
	"strconv"

	"drip/internal/database"
	"drip/internal/logger"

	"github.com/gin-gonic/gin"
)

func handleWeather(c *gin.Context) {
	db := getDB(c)
	svc := getServices(c)

	lat, lon := loadLocation(db)
	locationName, _ := database.GetSetting(db, "location_name", "Indianapolis, IN")

	conditions, err := svc.Weather.Current(lat, lon)
	if err != nil {
		logger.Error("weather fetch failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch weather"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"location":   locationName,
		"conditions": conditions,
		"summary":    conditions.Summary(),
	})
}

func handleGetSettings(c *gin.Context) {
	db := getDB(c)

	settings, err := database.GetAllSettings(db)
	if err != nil {
		logger.Error("failed to load settings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

func handleUpdateSettings(c *gin.Context) {
	db := getDB(c)

	var updates map[string]string
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid settings payload"})
		return
	}

	for key, value := range updates {
		if !validSettingUpdate(key, value) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid value for " + key})
			return
		}
	}

	for key, value := range updates {
		if err := database.SetSetting(db, key, value); err != nil {
			logger.Error("failed to update setting", "key", key)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
			return
		}
	}

	settings, err := database.GetAllSettings(db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// validSettingUpdate rejects values the stylist would later choke on; any
// unrecognized key is stored as-is.
func validSettingUpdate(key, value string) bool {
	switch key {
	case "no_repeat_days":
		n, err := strconv.Atoi(value)
		return err == nil && n >= 0
	case "location_lat", "location_lon":
		_, err := strconv.ParseFloat(value, 64)
		return err == nil
	default:
		return true
	}
}

// handleClearData wipes every table. The confirm phrase guards against a
// stray request doing irreversible damage.
func handleClearData(c *gin.Context) {
	db := getDB(c)
	svc := getServices(c)

	var req struct {
		Confirm string `json:"confirm"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Confirm != "DELETE" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type DELETE to confirm"})
		return
	}

	if err := database.ClearAllData(db); err != nil {
		logger.Error("failed to clear data", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear data"})
		return
	}

	svc.Engine.Reset()
	logger.Info("all data cleared")

	c.JSON(http.StatusOK, gin.H{"cleared": true})
}
