package suggestion

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wander/internal/app/middleware"
	"github.com/FACorreiaa/go-wander/internal/app/models"
	"github.com/FACorreiaa/go-wander/internal/app/observability/metrics"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Generate handles POST /suggestions.
func (h *Handler) Generate(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)

	var req SuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	start := time.Now()
	suggestion, err := h.service.GenerateSuggestion(c.Request.Context(), userID, req)
	h.recordGeneration(time.Since(start), err)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrMissingCoordinates):
			c.JSON(http.StatusBadRequest, gin.H{"error": "latitude and longitude are required"})
		case errors.Is(err, models.ErrUpstream):
			c.JSON(http.StatusBadGateway, gin.H{"error": "upstream provider unavailable"})
		case errors.Is(err, models.ErrMalformedSuggestion):
			c.JSON(http.StatusBadGateway, gin.H{"error": "model produced an unusable suggestion"})
		default:
			h.logger.Error("suggestion generation failed", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate suggestion"})
		}
		return
	}

	c.JSON(http.StatusOK, suggestion)
}

func (h *Handler) recordGeneration(elapsed time.Duration, err error) {
	m := metrics.Get()
	outcome := "ok"
	switch {
	case errors.Is(err, models.ErrMalformedSuggestion):
		outcome = "rejected"
		m.SuggestionsRejectedTotal.Add(context.Background(), 1)
	case err != nil:
		outcome = "error"
	default:
		m.SuggestionsTotal.Add(context.Background(), 1)
	}
	m.GenerationDuration.Record(context.Background(), elapsed.Seconds(),
		metric.WithAttributes(attribute.String("outcome", outcome)))
}
