package handlers

import (
	"database/sql"

	"drip/internal/ai"
	"drip/internal/battle"
	"drip/internal/config"
	"drip/internal/middleware"
	"drip/internal/weather"

	"github.com/gin-gonic/gin"
)

// Services bundles the collaborators the handlers drive.
type Services struct {
	Config  *config.Config
	AI      *ai.Client
	Weather *weather.Client
	Engine  *battle.Engine
}

func SetupRoutes(r *gin.Engine, db *sql.DB, svc *Services) {
	r.Use(middleware.LogRequests())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.AddDBContext(db))
	r.Use(addServicesContext(svc))

	api := r.Group("/api")
	{
		api.GET("/garments", handleListGarments)
		api.POST("/garments", handleCreateGarment)
		api.GET("/garments/export", handleExportGarments)
		api.POST("/garments/identify", handleIdentifyGarment)
		api.GET("/garments/:id", handleGetGarment)
		api.PUT("/garments/:id", handleUpdateGarment)
		api.DELETE("/garments/:id", handleDeleteGarment)

		api.POST("/style/generate", middleware.GenerateRateLimit(), handleGenerate)
		api.GET("/style/battle", handleBattleState)
		api.POST("/style/vote", handleVote)
		api.POST("/style/deal-again", handleDealAgain)
		api.POST("/style/save", handleSaveWinner)
		api.GET("/style/stats", handleBattleStats)

		api.GET("/wear-log", handleWearLog)
		api.POST("/wear-log", handleQuickLog)
		api.GET("/wear-log/stats", handleWearStats)

		api.GET("/weather", handleWeather)

		api.GET("/settings", handleGetSettings)
		api.PUT("/settings", handleUpdateSettings)
		api.POST("/settings/clear-data", handleClearData)
	}
}

func addServicesContext(svc *Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("services", svc)
		c.Next()
	}
}

func getDB(c *gin.Context) *sql.DB {
	return c.MustGet("db").(*sql.DB)
}

func getServices(c *gin.Context) *Services {
	return c.MustGet("services").(*Services)
}
