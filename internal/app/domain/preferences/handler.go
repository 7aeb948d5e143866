package preferences

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wander/internal/app/domain/weather"
	"github.com/FACorreiaa/go-wander/internal/app/middleware"
	"github.com/FACorreiaa/go-wander/internal/app/models"
)

type Handler struct {
	service        Service
	weatherService weather.Service
	logger         *zap.Logger
}

func NewHandler(service Service, weatherService weather.Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, weatherService: weatherService, logger: logger}
}

// Create favorites a suggestion together with the weather it was accepted
// under.
func (h *Handler) Create(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)

	var req models.CreatePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.PlaceName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "place_name is required"})
		return
	}

	pref, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "a preference for this place already exists"})
			return
		}
		h.logger.Error("Failed to create preference", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create preference"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"preference": pref})
}

// List returns all preferences for the authenticated user.
func (h *Handler) List(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)

	prefs, err := h.service.GetByUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list preferences", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve preferences"})
		return
	}
	if prefs == nil {
		prefs = []models.UserPreference{}
	}

	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

// ListByWeather returns the preferences matching the current weather at the
// given coordinates.
func (h *Handler) ListByWeather(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)

	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrMissingCoordinates.Error()})
		return
	}

	reading, err := h.weatherService.GetCurrent(c.Request.Context(), lat, lon)
	if err != nil {
		h.logger.Error("Failed to fetch weather for preference match", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch weather data"})
		return
	}

	prefs, err := h.service.MatchCurrentWeather(c.Request.Context(), userID, *reading, 0)
	if err != nil {
		h.logger.Error("Failed to match preferences", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve preferences"})
		return
	}
	if prefs == nil {
		prefs = []models.UserPreference{}
	}

	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

// Delete removes one preference owned by the authenticated user.
func (h *Handler) Delete(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid preference ID format"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "preference not found"})
			return
		}
		h.logger.Error("Failed to delete preference", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete preference"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "preference deleted successfully"})
}
