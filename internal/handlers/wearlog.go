package handlers

import (
	"net/http"
	"strconv"
	"time"

	"drip/internal/database"
	"drip/internal/logger"

	"github.com/gin-gonic/gin"
)

func handleWearLog(c *gin.Context) {
	db := getDB(c)

	itemID, _ := strconv.Atoi(c.Query("item_id"))
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")

	entries, err := database.GetWearLog(db, itemID, startDate, endDate)
	if err != nil {
		logger.Error("failed to load wear log", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load wear log"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// handleQuickLog records one wear event per item for a date (today by
// default). Duplicates and unknown ids are counted as skipped, never
// treated as failures.
func handleQuickLog(c *gin.Context) {
	db := getDB(c)

	var req struct {
		ItemIDs  []int  `json:"item_ids" binding:"required"`
		DateWorn string `json:"date_worn"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Item IDs are required"})
		return
	}

	if req.DateWorn != "" {
		if _, err := time.Parse("2006-01-02", req.DateWorn); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be YYYY-MM-DD"})
			return
		}
	}

	logged, skipped := 0, 0
	for _, id := range req.ItemIDs {
		ok, err := database.LogWear(db, id, req.DateWorn, nil)
		if err != nil {
			logger.Warn("failed to log wear", "item_id", id)
			skipped++
			continue
		}
		if ok {
			logged++
		} else {
			skipped++
		}
	}

	c.JSON(http.StatusOK, gin.H{"logged": logged, "skipped": skipped})
}

func handleWearStats(c *gin.Context) {
	db := getDB(c)

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	forgottenDays, err := strconv.Atoi(c.DefaultQuery("forgotten_days", "30"))
	if err != nil || forgottenDays < 1 {
		forgottenDays = 30
	}

	mostWorn, err := database.GetMostWornGarments(db, limit)
	if err != nil {
		logger.Error("failed to load most worn", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load wear stats"})
		return
	}

	leastWorn, err := database.GetLeastWornGarments(db, limit)
	if err != nil {
		logger.Error("failed to load least worn", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load wear stats"})
		return
	}

	forgotten, err := database.GetForgottenGarments(db, forgottenDays)
	if err != nil {
		logger.Error("failed to load forgotten garments", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load wear stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"most_worn":      mostWorn,
		"least_worn":     leastWorn,
		"forgotten":      forgotten,
		"forgotten_days": forgottenDays,
	})
}
