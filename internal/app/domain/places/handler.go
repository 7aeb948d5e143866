package places

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

// GetNearby returns places for a single category tag around a coordinate.
func (h *Handler) GetNearby(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrMissingCoordinates.Error()})
		return
	}

	tag := c.DefaultQuery("tag", "cafe")
	radius, err := strconv.Atoi(c.DefaultQuery("radius", "500"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid radius"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}

	candidates, err := h.service.SearchNearby(c.Request.Context(), lat, lon, tag, radius, limit)
	if err != nil {
		h.logger.Error("Failed to fetch nearby places", zap.String("tag", tag), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch nearby places"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"places": candidates})
}
