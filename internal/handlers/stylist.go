package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"drip/internal/ai"
	"drip/internal/battle"
	"drip/internal/database"
	"drip/internal/logger"
	"drip/internal/models"
	"drip/internal/stats"
	"drip/internal/stylist"
	"drip/internal/weather"

	"github.com/gin-gonic/gin"
)

// battleHistoryLimit bounds how much history the stats fold reads. Battles
// past the window age out of the leaderboard.
const battleHistoryLimit = 500

func rawParseFailure(err error) (string, bool) {
	var parseErr *ai.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Raw, true
	}
	return "", false
}

type generateRequest struct {
	Occasion       string `json:"occasion"`
	VibeOverride   string `json:"vibe_override"`
	LockedItemIDs  []int  `json:"locked_item_ids"`
	ExcludeItemIDs []int  `json:"exclude_item_ids"`

	// Optional manual weather; when nil the cached forecast for the
	// configured location is used.
	Weather *weatherOverride `json:"weather"`
}

type weatherOverride struct {
	TempF     float64 `json:"temp_f"`
	Condition string  `json:"condition"`
}

// candidateView is a candidate with its item ids resolved to garments for
// display. Stale ids simply resolve to fewer items.
type candidateView struct {
	models.OutfitCandidate
	Items []models.Garment `json:"items"`
}

func newCandidateView(db *sql.DB, candidate models.OutfitCandidate) candidateView {
	return candidateView{
		OutfitCandidate: candidate,
		Items:           stylist.ResolveItems(db, candidate),
	}
}

func handleGenerate(c *gin.Context) {
	db := getDB(c)
	svc := getServices(c)

	if !svc.AI.IsEnabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Anthropic API key not set"})
		return
	}

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid generation payload"})
		return
	}
	if req.Occasion == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Occasion is required"})
		return
	}

	noRepeatDays, err := database.GetSettingInt(db, "no_repeat_days", 7)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}
	styleVibe, err := database.GetSetting(db, "style_vibe", "smart casual")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}

	garments, err := database.ListGarments(db, database.GarmentFilter{ActiveOnly: true})
	if err != nil {
		logger.Error("failed to load wardrobe", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load wardrobe"})
		return
	}

	recentlyWorn, err := database.RecentWearIDs(db, noRepeatDays)
	if err != nil {
		logger.Error("failed to load recent wear", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load wear history"})
		return
	}

	// Locked ids that no longer resolve are dropped, not rejected.
	locked := make([]models.Garment, 0, len(req.LockedItemIDs))
	for _, id := range req.LockedItemIDs {
		garment, err := database.GetGarment(db, id)
		if err != nil {
			logger.Warn("locked item not found", "item_id", id)
			continue
		}
		locked = append(locked, *garment)
	}

	available := stylist.AvailableGarments(garments, recentlyWorn, stylist.IDSet(req.ExcludeItemIDs), locked)

	// Checked before the model call; an empty closet never costs tokens.
	if len(available) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "No items available — everything is recently worn or excluded. Lower the no-repeat window or add items.",
		})
		return
	}

	conditions, weatherSummary := resolveWeather(c, req.Weather)

	stylistReq := stylist.Request{
		Occasion:        req.Occasion,
		WeatherSummary:  weatherSummary,
		TempF:           conditions.TempF,
		Conditions:      conditions.Condition,
		StyleVibe:       styleVibe,
		VibeOverride:    req.VibeOverride,
		LockedItemsText: stylist.FormatLockedItems(locked),
		Manifest:        stylist.BuildManifest(available),
	}

	candidates, err := stylist.GenerateOutfits(c.Request.Context(), svc.AI, stylistReq)
	if err != nil {
		if raw, ok := rawParseFailure(err); ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":        "Failed to parse AI response — try again",
				"raw_response": raw,
			})
			return
		}
		logger.Error("outfit generation failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Outfit generation failed"})
		return
	}

	round := battle.RoundContext{Occasion: req.Occasion, WeatherSummary: weatherSummary}
	if err := svc.Engine.Begin(candidates, round); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Model returned fewer than 2 outfits — try again",
		})
		return
	}

	pair := svc.Engine.Candidates()
	c.JSON(http.StatusOK, gin.H{
		"state":    svc.Engine.State().String(),
		"occasion": req.Occasion,
		"weather":  conditions,
		"outfit_a": newCandidateView(db, pair[0]),
		"outfit_b": newCandidateView(db, pair[1]),
	})
}

// resolveWeather prefers the manual override, then the cached forecast. A
// failed fetch degrades to unknown mild conditions rather than blocking the
// generation. Overrides and fallbacks carry only a temperature and a
// condition, so their summary omits the telemetry a real fetch reports.
func resolveWeather(c *gin.Context, override *weatherOverride) (weather.Conditions, string) {
	if override != nil {
		conditions := weather.Conditions{
			TempF:      override.TempF,
			FeelsLikeF: override.TempF,
			Condition:  override.Condition,
		}
		return conditions, minimalSummary(conditions)
	}

	db := getDB(c)
	svc := getServices(c)

	lat, lon := loadLocation(db)
	conditions, err := svc.Weather.Current(lat, lon)
	if err != nil {
		logger.Warn("weather fetch failed, using fallback", "error", err)
		fallback := weather.Conditions{TempF: 70, FeelsLikeF: 70, Condition: "Unknown"}
		return fallback, minimalSummary(fallback)
	}
	return *conditions, conditions.Summary()
}

func minimalSummary(c weather.Conditions) string {
	return fmt.Sprintf("%.0f°F, %s", c.TempF, c.Condition)
}

func loadLocation(db *sql.DB) (lat, lon float64) {
	latStr, _ := database.GetSetting(db, "location_lat", "39.89")
	lonStr, _ := database.GetSetting(db, "location_lon", "-86.16")

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		lat = 39.89
	}
	lon, err = strconv.ParseFloat(lonStr, 64)
	if err != nil {
		lon = -86.16
	}
	return lat, lon
}

func handleBattleState(c *gin.Context) {
	db := getDB(c)
	svc := getServices(c)

	resp := gin.H{"state": svc.Engine.State().String()}

	pair := svc.Engine.Candidates()
	if len(pair) == 2 {
		resp["outfit_a"] = newCandidateView(db, pair[0])
		resp["outfit_b"] = newCandidateView(db, pair[1])
	}

	if winner, ok := svc.Engine.Winner(); ok {
		resp["winner"] = newCandidateView(db, winner)
	}

	c.JSON(http.StatusOK, resp)
}

func handleVote(c *gin.Context) {
	svc := getServices(c)

	var req struct {
		Winner string `json:"winner" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Winner is required"})
		return
	}

	result, err := svc.Engine.Vote(req.Winner)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state":  svc.Engine.State().String(),
		"result": result,
	})
}

func handleDealAgain(c *gin.Context) {
	svc := getServices(c)
	svc.Engine.Reset()
	c.JSON(http.StatusOK, gin.H{"state": svc.Engine.State().String()})
}

func handleSaveWinner(c *gin.Context) {
	svc := getServices(c)

	var req struct {
		Rating *int `json:"rating"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid save payload"})
		return
	}

	outfitID, err := svc.Engine.SaveWinner(req.Rating)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"outfit_id": outfitID})
}

func handleBattleStats(c *gin.Context) {
	db := getDB(c)

	battles, err := database.ListBattles(db, battleHistoryLimit)
	if err != nil {
		logger.Error("failed to load battles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load battle history"})
		return
	}
	total, err := database.CountBattles(db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count battles"})
		return
	}

	battleStats := stats.Compute(battles)

	resp := gin.H{
		"total_battles": total,
		"wins":          battleStats.Wins,
		"losses":        battleStats.Losses,
	}

	if id, ok := battleStats.MostWinning(); ok {
		resp["mvp"] = garmentStanding(db, id, battleStats.Wins[id])
	}
	if id, ok := battleStats.LosingStreak(); ok {
		resp["losing_streak"] = garmentStanding(db, id, battleStats.Losses[id])
	}

	c.JSON(http.StatusOK, resp)
}

// garmentStanding renders a leaderboard entry. Battle records outlive
// garment deletion, so an unresolvable id stays on the board as a tombstone.
func garmentStanding(db *sql.DB, id, count int) gin.H {
	name := "(no longer in closet)"
	if garment, err := database.GetGarment(db, id); err == nil {
		name = garment.Name
	}
	return gin.H{"item_id": id, "name": name, "count": count}
}
