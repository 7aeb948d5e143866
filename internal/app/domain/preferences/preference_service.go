package preferences

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wander/internal/app/domain/weather"
	"github.com/FACorreiaa/go-wander/internal/app/models"
)

// PromptMatchLimit bounds how many matched preferences feed the suggestion
// prompt.
const PromptMatchLimit = 3

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	Create(ctx context.Context, userID string, req models.CreatePreferenceRequest) (*models.UserPreference, error)
	GetByUser(ctx context.Context, userID string) ([]models.UserPreference, error)
	MatchCurrentWeather(ctx context.Context, userID string, reading models.WeatherReading, limit int) ([]models.UserPreference, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) error
}

type ServiceImpl struct {
	repo   Repository
	logger *zap.Logger
}

func NewServiceImpl(repo Repository, logger *zap.Logger) *ServiceImpl {
	return &ServiceImpl{repo: repo, logger: logger}
}

// Create classifies the submitted reading and stores the preference under
// the derived category fields, so later matching sees the same bands the
// suggestion pipeline computes.
func (s *ServiceImpl) Create(ctx context.Context, userID string, req models.CreatePreferenceRequest) (*models.UserPreference, error) {
	ctx, span := otel.Tracer("PreferenceService").Start(ctx, "Create")
	defer span.End()

	category := weather.Classify(req.Weather)

	pref := &models.UserPreference{
		UserID:      userID,
		Weather:     category.Condition,
		Temperature: category.Temperature,
		Time:        category.Time,
		Activity:    req.Activity,
		PlaceName:   req.PlaceName,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Address:     req.Address,
	}

	if err := s.repo.CreatePreference(ctx, pref); err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.logger.Info("Preference created",
		zap.String("user_id", userID),
		zap.String("place_name", pref.PlaceName),
		zap.String("temperature", string(pref.Temperature)))
	return pref, nil
}

func (s *ServiceImpl) GetByUser(ctx context.Context, userID string) ([]models.UserPreference, error) {
	return s.repo.GetPreferencesByUser(ctx, userID)
}

// MatchCurrentWeather classifies the reading and returns the user's newest
// preferences matching at least one category axis.
func (s *ServiceImpl) MatchCurrentWeather(ctx context.Context, userID string, reading models.WeatherReading, limit int) ([]models.UserPreference, error) {
	ctx, span := otel.Tracer("PreferenceService").Start(ctx, "MatchCurrentWeather")
	defer span.End()

	category := weather.Classify(reading)
	span.SetAttributes(
		attribute.String("category.temperature", string(category.Temperature)),
		attribute.String("category.time", string(category.Time)),
		attribute.String("category.condition", category.Condition),
	)

	matched, err := s.repo.MatchByCategory(ctx, userID, category, limit)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return matched, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	return s.repo.DeletePreference(ctx, userID, id)
}
