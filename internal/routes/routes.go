package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wander/internal/app/domain/location"
	"github.com/FACorreiaa/go-wander/internal/app/domain/places"
	"github.com/FACorreiaa/go-wander/internal/app/domain/preferences"
	"github.com/FACorreiaa/go-wander/internal/app/domain/suggestion"
	"github.com/FACorreiaa/go-wander/internal/app/domain/weather"
	"github.com/FACorreiaa/go-wander/internal/app/middleware"
	"github.com/FACorreiaa/go-wander/internal/pkg/config"
)

const historyTTL = 24 * time.Hour

// AppHandlers collects the HTTP handlers for all domains.
type AppHandlers struct {
	Weather     *weather.Handler
	Places      *places.Handler
	Preferences *preferences.Handler
	Suggestion  *suggestion.Handler
}

// Setup wires services, repositories and handlers and registers all routes.
func Setup(r *gin.Engine, pool *pgxpool.Pool, cfg *config.Config, logger *zap.Logger) {
	weatherSvc := weather.NewServiceImpl(cfg.Weather, cfg.UpstreamTimeout, logger)
	placesSvc := places.NewServiceImpl(cfg.Places, cfg.UpstreamTimeout, logger)
	geocoder := location.NewGeocoderImpl(cfg.Geocoding, cfg.UpstreamTimeout, logger)

	prefsRepo := preferences.NewRepository(pool)
	prefsSvc := preferences.NewServiceImpl(prefsRepo, logger)

	modelClient, err := suggestion.NewGeminiClient(context.Background(), cfg.LLM, logger)
	if err != nil {
		logger.Fatal("failed to create model client", zap.Error(err))
	}
	history := suggestion.NewHistoryStore(historyTTL)
	suggestionSvc := suggestion.NewServiceImpl(weatherSvc, placesSvc, prefsSvc, geocoder, modelClient, history, logger)

	handlers := &AppHandlers{
		Weather:     weather.NewHandler(weatherSvc, logger),
		Places:      places.NewHandler(placesSvc, logger),
		Preferences: preferences.NewHandler(prefsSvc, weatherSvc, logger),
		Suggestion:  suggestion.NewHandler(suggestionSvc, logger),
	}

	registerRoutes(r, handlers, cfg, logger)
}

func registerRoutes(r *gin.Engine, h *AppHandlers, cfg *config.Config, logger *zap.Logger) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	jwtConfig := middleware.JWTConfig{
		SecretKey:       cfg.JWTSecret,
		TokenExpiration: 24 * time.Hour,
		Logger:          logger,
	}

	api := r.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(jwtConfig))
	{
		api.GET("/weather", h.Weather.GetCurrent)
		api.GET("/places/nearby", h.Places.GetNearby)

		prefs := api.Group("/preferences")
		{
			prefs.POST("", h.Preferences.Create)
			prefs.GET("", h.Preferences.List)
			prefs.GET("/by-weather", h.Preferences.ListByWeather)
			prefs.DELETE("/:id", h.Preferences.Delete)
		}

		api.POST("/suggestions", h.Suggestion.Generate)
	}
}
