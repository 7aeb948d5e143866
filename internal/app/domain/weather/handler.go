package weather

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wander/internal/app/models"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// GetCurrent returns the current weather reading and its derived category
// for the given coordinates.
func (h *Handler) GetCurrent(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrMissingCoordinates.Error()})
		return
	}

	reading, err := h.service.GetCurrent(c.Request.Context(), lat, lon)
	if err != nil {
		h.logger.Error("Failed to fetch weather", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch weather data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"weather":  reading,
		"category": Classify(*reading),
	})
}
