package suggestion

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wander/internal/app/domain/location"
	"github.com/FACorreiaa/go-wander/internal/app/domain/places"
	"github.com/FACorreiaa/go-wander/internal/app/domain/preferences"
	"github.com/FACorreiaa/go-wander/internal/app/domain/weather"
	"github.com/FACorreiaa/go-wander/internal/app/models"
)

const (
	// DefaultRadius is the search radius in metres when the caller omits one.
	DefaultRadius = 5000
	// DefaultPerCategoryLimit caps candidates fetched per category.
	DefaultPerCategoryLimit = 5
)

// SuggestionRequest carries the caller's location and optional search knobs.
type SuggestionRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    int     `json:"radius"`
	Limit     int     `json:"limit"`
}

// Service generates a single validated place suggestion for a user.
type Service interface {
	GenerateSuggestion(ctx context.Context, userID string, req SuggestionRequest) (*models.Suggestion, error)
}

type ServiceImpl struct {
	weatherSvc  weather.Service
	placesSvc   places.Service
	prefsSvc    preferences.Service
	geocoder    location.Geocoder
	modelClient ModelClient
	history     *HistoryStore
	logger      *zap.Logger
}

func NewServiceImpl(
	weatherSvc weather.Service,
	placesSvc places.Service,
	prefsSvc preferences.Service,
	geocoder location.Geocoder,
	modelClient ModelClient,
	history *HistoryStore,
	logger *zap.Logger,
) *ServiceImpl {
	return &ServiceImpl{
		weatherSvc:  weatherSvc,
		placesSvc:   placesSvc,
		prefsSvc:    prefsSvc,
		geocoder:    geocoder,
		modelClient: modelClient,
		history:     history,
		logger:      logger,
	}
}

// GenerateSuggestion runs the full pipeline: resolve the address, read the
// weather, gather candidate places and matching preferences, prompt the
// model, validate its reply, and record the accepted suggestion so it is
// excluded next time.
func (s *ServiceImpl) GenerateSuggestion(ctx context.Context, userID string, req SuggestionRequest) (*models.Suggestion, error) {
	ctx, span := otel.Tracer("SuggestionService").Start(ctx, "GenerateSuggestion")
	defer span.End()

	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.Float64("location.lat", req.Latitude),
		attribute.Float64("location.lon", req.Longitude),
	)

	if req.Latitude == 0 || req.Longitude == 0 {
		span.SetStatus(codes.Error, "missing coordinates")
		return nil, models.ErrMissingCoordinates
	}

	radius := req.Radius
	if radius <= 0 {
		radius = DefaultRadius
	}
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultPerCategoryLimit
	}

	address, err := s.geocoder.ResolveAddress(ctx, req.Latitude, req.Longitude)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "address resolution failed")
		return nil, fmt.Errorf("failed to resolve address: %w", err)
	}

	reading, err := s.weatherSvc.GetCurrent(ctx, req.Latitude, req.Longitude)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "weather fetch failed")
		return nil, fmt.Errorf("failed to fetch weather: %w", err)
	}

	prefs, err := s.prefsSvc.MatchCurrentWeather(ctx, userID, *reading, preferences.PromptMatchLimit)
	if err != nil {
		s.logger.Warn("preference lookup failed, continuing without preferences",
			zap.String("user_id", userID), zap.Error(err))
		prefs = nil
	}

	placesByCategory := s.placesSvc.FetchByCategories(ctx, req.Latitude, req.Longitude, places.DefaultCategories, radius, limit)
	if len(placesByCategory) == 0 {
		span.SetStatus(codes.Error, "no place categories available")
		return nil, fmt.Errorf("no nearby places available: %w", models.ErrUpstream)
	}

	history := s.history.Get(userID)
	prompt := BuildPrompt(*reading, prefs, placesByCategory, history)

	rawReply, err := s.modelClient.Complete(ctx, prompt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "model completion failed")
		return nil, fmt.Errorf("failed to generate suggestion: %w", err)
	}

	suggestion, err := ParseAndValidate(rawReply, placesByCategory)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "model reply rejected")
		s.logger.Warn("rejected model reply", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	s.history.Record(userID, models.HistoryEntry{Name: suggestion.Name, Tag: suggestion.Tag})
	suggestion.Address = address

	s.logger.Info("generated suggestion",
		zap.String("user_id", userID),
		zap.String("name", suggestion.Name),
		zap.String("tag", suggestion.Tag))
	span.SetStatus(codes.Ok, "suggestion generated")
	return suggestion, nil
}
