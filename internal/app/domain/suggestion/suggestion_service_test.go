package suggestion

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wander/internal/app/models"
)

type MockWeatherService struct {
	mock.Mock
}

func (m *MockWeatherService) GetCurrent(ctx context.Context, lat, lon float64) (*models.WeatherReading, error) {
	args := m.Called(ctx, lat, lon)
	reading, _ := args.Get(0).(*models.WeatherReading)
	return reading, args.Error(1)
}

type MockPlacesService struct {
	mock.Mock
}

func (m *MockPlacesService) SearchNearby(ctx context.Context, lat, lon float64, tag string, radius, limit int) ([]models.PlaceCandidate, error) {
	args := m.Called(ctx, lat, lon, tag, radius, limit)
	candidates, _ := args.Get(0).([]models.PlaceCandidate)
	return candidates, args.Error(1)
}

func (m *MockPlacesService) FetchByCategories(ctx context.Context, lat, lon float64, categories []string, radius, limit int) models.PlacesByCategory {
	args := m.Called(ctx, lat, lon, categories, radius, limit)
	byCategory, _ := args.Get(0).(models.PlacesByCategory)
	return byCategory
}

type MockPreferencesService struct {
	mock.Mock
}

func (m *MockPreferencesService) Create(ctx context.Context, userID string, req models.CreatePreferenceRequest) (*models.UserPreference, error) {
	args := m.Called(ctx, userID, req)
	pref, _ := args.Get(0).(*models.UserPreference)
	return pref, args.Error(1)
}

func (m *MockPreferencesService) GetByUser(ctx context.Context, userID string) ([]models.UserPreference, error) {
	args := m.Called(ctx, userID)
	prefs, _ := args.Get(0).([]models.UserPreference)
	return prefs, args.Error(1)
}

func (m *MockPreferencesService) MatchCurrentWeather(ctx context.Context, userID string, reading models.WeatherReading, limit int) ([]models.UserPreference, error) {
	args := m.Called(ctx, userID, reading, limit)
	prefs, _ := args.Get(0).([]models.UserPreference)
	return prefs, args.Error(1)
}

func (m *MockPreferencesService) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) ResolveAddress(ctx context.Context, lat, lon float64) (string, error) {
	args := m.Called(ctx, lat, lon)
	return args.String(0), args.Error(1)
}

type MockModelClient struct {
	mock.Mock
}

func (m *MockModelClient) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type suggestionFixture struct {
	weather *MockWeatherService
	places  *MockPlacesService
	prefs   *MockPreferencesService
	geo     *MockGeocoder
	model   *MockModelClient
	history *HistoryStore
	service *ServiceImpl
}

func newSuggestionFixture() *suggestionFixture {
	f := &suggestionFixture{
		weather: new(MockWeatherService),
		places:  new(MockPlacesService),
		prefs:   new(MockPreferencesService),
		geo:     new(MockGeocoder),
		model:   new(MockModelClient),
		history: NewHistoryStore(time.Minute),
	}
	f.service = NewServiceImpl(f.weather, f.places, f.prefs, f.geo, f.model, f.history, zap.NewNop())
	return f
}

func fixtureReading() *models.WeatherReading {
	return &models.WeatherReading{
		Temp:        8.0,
		FeelsLike:   6.0,
		Humidity:    70,
		WindSpeed:   2.0,
		Condition:   "clouds",
		Description: "overcast clouds",
		Dt:          1700000000,
		Timezone:    3600,
	}
}

func fixturePlaces() models.PlacesByCategory {
	return models.PlacesByCategory{
		"cafe": {{Name: "Blue Bottle", Distance: 0.27, Lat: 40.74, Lon: -73.98, Tag: "cafe"}},
		"park": {{Name: "Central Park", Distance: 1.2, Lat: 40.78, Lon: -73.96, Tag: "park"}},
	}
}

const fixtureReply = `{
  "name": "Blue Bottle",
  "distance": 0.27,
  "tag": "cafe",
  "activity_to_do": "Relaxing in a cozy cafe",
  "reason": "Cold evening calls for a warm drink",
  "position": {"lat": 40.74, "lon": -73.98},
  "suggestedTime": "8:00-22:00"
}`

func TestGenerateSuggestionRequiresCoordinates(t *testing.T) {
	f := newSuggestionFixture()

	_, err := f.service.GenerateSuggestion(context.Background(), "user-1", SuggestionRequest{Latitude: 0, Longitude: -73.98})
	assert.ErrorIs(t, err, models.ErrMissingCoordinates)
	f.geo.AssertNotCalled(t, "ResolveAddress", mock.Anything, mock.Anything, mock.Anything)
	f.weather.AssertNotCalled(t, "GetCurrent", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateSuggestionHappyPath(t *testing.T) {
	f := newSuggestionFixture()
	ctx := context.Background()

	f.geo.On("ResolveAddress", mock.Anything, 40.74, -73.98).Return("350 5th Ave, New York, NY", nil)
	f.weather.On("GetCurrent", mock.Anything, 40.74, -73.98).Return(fixtureReading(), nil)
	f.prefs.On("MatchCurrentWeather", mock.Anything, "user-1", *fixtureReading(), 3).
		Return([]models.UserPreference{{Activity: "reading", Weather: "clouds", Time: "morning", Temperature: "cold"}}, nil)
	f.places.On("FetchByCategories", mock.Anything, 40.74, -73.98, mock.Anything, DefaultRadius, DefaultPerCategoryLimit).
		Return(fixturePlaces())
	f.model.On("Complete", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return len(prompt) > 0
	})).Return(fixtureReply, nil)

	suggestion, err := f.service.GenerateSuggestion(ctx, "user-1", SuggestionRequest{Latitude: 40.74, Longitude: -73.98})
	require.NoError(t, err)

	assert.Equal(t, "Blue Bottle", suggestion.Name)
	assert.Equal(t, "350 5th Ave, New York, NY", suggestion.Address)

	history := f.history.Get("user-1")
	require.Len(t, history, 1)
	assert.Equal(t, models.HistoryEntry{Name: "Blue Bottle", Tag: "cafe"}, history[0])

	f.weather.AssertExpectations(t)
	f.places.AssertExpectations(t)
	f.model.AssertExpectations(t)
}

func TestGenerateSuggestionGeocoderFailureAborts(t *testing.T) {
	f := newSuggestionFixture()

	f.geo.On("ResolveAddress", mock.Anything, 40.74, -73.98).Return("", models.ErrUpstream)

	suggestion, err := f.service.GenerateSuggestion(context.Background(), "user-1", SuggestionRequest{Latitude: 40.74, Longitude: -73.98})
	require.Nil(t, suggestion)
	require.ErrorIs(t, err, models.ErrUpstream)
	f.weather.AssertNotCalled(t, "GetCurrent", mock.Anything, mock.Anything, mock.Anything)
	f.model.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	assert.Empty(t, f.history.Get("user-1"))
}

func TestGenerateSuggestionContinuesWithoutPreferences(t *testing.T) {
	f := newSuggestionFixture()

	f.geo.On("ResolveAddress", mock.Anything, 40.74, -73.98).Return("somewhere", nil)
	f.weather.On("GetCurrent", mock.Anything, 40.74, -73.98).Return(fixtureReading(), nil)
	f.prefs.On("MatchCurrentWeather", mock.Anything, "user-1", mock.Anything, 3).
		Return(nil, assert.AnError)
	f.places.On("FetchByCategories", mock.Anything, 40.74, -73.98, mock.Anything, DefaultRadius, DefaultPerCategoryLimit).
		Return(fixturePlaces())
	f.model.On("Complete", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		// Preference lookup failed, so the prompt has no preference block.
		return !strings.Contains(prompt, "**User Preferences:**")
	})).Return(fixtureReply, nil)

	_, err := f.service.GenerateSuggestion(context.Background(), "user-1", SuggestionRequest{Latitude: 40.74, Longitude: -73.98})
	require.NoError(t, err)
	f.model.AssertExpectations(t)
}

func TestGenerateSuggestionWeatherFailureAborts(t *testing.T) {
	f := newSuggestionFixture()

	f.geo.On("ResolveAddress", mock.Anything, 40.74, -73.98).Return("somewhere", nil)
	f.weather.On("GetCurrent", mock.Anything, 40.74, -73.98).Return(nil, models.ErrUpstream)

	_, err := f.service.GenerateSuggestion(context.Background(), "user-1", SuggestionRequest{Latitude: 40.74, Longitude: -73.98})
	assert.ErrorIs(t, err, models.ErrUpstream)
	f.model.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	assert.Empty(t, f.history.Get("user-1"))
}

func TestGenerateSuggestionNoPlacesAborts(t *testing.T) {
	f := newSuggestionFixture()

	f.geo.On("ResolveAddress", mock.Anything, 40.74, -73.98).Return("somewhere", nil)
	f.weather.On("GetCurrent", mock.Anything, 40.74, -73.98).Return(fixtureReading(), nil)
	f.prefs.On("MatchCurrentWeather", mock.Anything, "user-1", mock.Anything, 3).Return(nil, nil)
	f.places.On("FetchByCategories", mock.Anything, 40.74, -73.98, mock.Anything, DefaultRadius, DefaultPerCategoryLimit).
		Return(models.PlacesByCategory{})

	_, err := f.service.GenerateSuggestion(context.Background(), "user-1", SuggestionRequest{Latitude: 40.74, Longitude: -73.98})
	assert.ErrorIs(t, err, models.ErrUpstream)
	f.model.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestGenerateSuggestionMalformedReplyNotRecorded(t *testing.T) {
	f := newSuggestionFixture()

	f.geo.On("ResolveAddress", mock.Anything, 40.74, -73.98).Return("somewhere", nil)
	f.weather.On("GetCurrent", mock.Anything, 40.74, -73.98).Return(fixtureReading(), nil)
	f.prefs.On("MatchCurrentWeather", mock.Anything, "user-1", mock.Anything, 3).Return(nil, nil)
	f.places.On("FetchByCategories", mock.Anything, 40.74, -73.98, mock.Anything, DefaultRadius, DefaultPerCategoryLimit).
		Return(fixturePlaces())
	f.model.On("Complete", mock.Anything, mock.Anything).
		Return(`{"name": "Blue Bottle", "tag": "cafe"}`, nil)

	_, err := f.service.GenerateSuggestion(context.Background(), "user-1", SuggestionRequest{Latitude: 40.74, Longitude: -73.98})
	assert.ErrorIs(t, err, models.ErrMalformedSuggestion)
	assert.Empty(t, f.history.Get("user-1"))
}

func TestGenerateSuggestionCustomRadiusAndLimit(t *testing.T) {
	f := newSuggestionFixture()

	f.geo.On("ResolveAddress", mock.Anything, 40.74, -73.98).Return("somewhere", nil)
	f.weather.On("GetCurrent", mock.Anything, 40.74, -73.98).Return(fixtureReading(), nil)
	f.prefs.On("MatchCurrentWeather", mock.Anything, "user-1", mock.Anything, 3).Return(nil, nil)
	f.places.On("FetchByCategories", mock.Anything, 40.74, -73.98, mock.Anything, 2000, 3).
		Return(fixturePlaces())
	f.model.On("Complete", mock.Anything, mock.Anything).Return(fixtureReply, nil)

	_, err := f.service.GenerateSuggestion(context.Background(), "user-1",
		SuggestionRequest{Latitude: 40.74, Longitude: -73.98, Radius: 2000, Limit: 3})
	require.NoError(t, err)
	f.places.AssertExpectations(t)
}
