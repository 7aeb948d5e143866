package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wander/internal/app/models"
	"github.com/FACorreiaa/go-wander/internal/pkg/config"
)

// DefaultCategories is the fixed set of place tags fetched for every
// suggestion request, always iterated in this order.
var DefaultCategories = []string{
	"cafe",
	"restaurant",
	"park",
	"natural:beach",
	"pub",
	"cinema",
	"gym",
	"place_of_worship",
	"stadium",
}

var _ Service = (*ServiceImpl)(nil)

// Service queries the place-search provider.
type Service interface {
	SearchNearby(ctx context.Context, lat, lon float64, tag string, radius, limit int) ([]models.PlaceCandidate, error)
	FetchByCategories(ctx context.Context, lat, lon float64, categories []string, radius, limit int) models.PlacesByCategory
}

type ServiceImpl struct {
	cfg        config.PlacesConfig
	httpClient *http.Client
	logger     *zap.Logger
	sleep      func(time.Duration)
}

func NewServiceImpl(cfg config.PlacesConfig, timeout time.Duration, logger *zap.Logger) *ServiceImpl {
	return &ServiceImpl{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		sleep:      time.Sleep,
	}
}

// nearbyPlace mirrors one element of the provider's nearby response.
// Coordinates come back as strings, distance in metres.
type nearbyPlace struct {
	Name     string  `json:"name"`
	Lat      string  `json:"lat"`
	Lon      string  `json:"lon"`
	Distance float64 `json:"distance"`
}

// SearchNearby fetches up to limit places with the given tag within radius
// metres of the coordinate.
func (s *ServiceImpl) SearchNearby(ctx context.Context, lat, lon float64, tag string, radius, limit int) ([]models.PlaceCandidate, error) {
	params := url.Values{}
	params.Set("key", s.cfg.APIKey)
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("tag", tag)
	params.Set("radius", strconv.Itoa(radius))
	params.Set("limit", strconv.Itoa(limit))
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUpstream, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: place provider returned %d for tag %q", models.ErrUpstream, resp.StatusCode, tag)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUpstream, err)
	}

	var raw []nearbyPlace
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: decoding places response: %v", models.ErrUpstream, err)
	}

	candidates := make([]models.PlaceCandidate, 0, len(raw))
	for _, p := range raw {
		if p.Name == "" {
			continue
		}
		placeLat, _ := strconv.ParseFloat(p.Lat, 64)
		placeLon, _ := strconv.ParseFloat(p.Lon, 64)
		candidates = append(candidates, models.PlaceCandidate{
			Name:     p.Name,
			Distance: p.Distance / 1000,
			Lat:      placeLat,
			Lon:      placeLon,
			Tag:      tag,
		})
	}
	return candidates, nil
}

// FetchByCategories queries the provider once per category, sequentially and
// with the configured spacing before every call so the aggregate rate stays
// under the provider's ~2 req/s ceiling. The loop must not be parallelized.
// A failed category is logged and omitted; partial maps are expected.
func (s *ServiceImpl) FetchByCategories(ctx context.Context, lat, lon float64, categories []string, radius, limit int) models.PlacesByCategory {
	ctx, span := otel.Tracer("PlacesService").Start(ctx, "FetchByCategories")
	defer span.End()
	span.SetAttributes(
		attribute.Int("categories.requested", len(categories)),
		attribute.Int("radius", radius),
	)

	result := make(models.PlacesByCategory, len(categories))
	for _, tag := range categories {
		s.sleep(s.cfg.RequestSpacing)

		candidates, err := s.SearchNearby(ctx, lat, lon, tag, radius, limit)
		if err != nil {
			s.logger.Warn("Failed to fetch places for category",
				zap.String("tag", tag),
				zap.Error(err))
			continue
		}
		result[tag] = candidates
	}

	span.SetAttributes(attribute.Int("categories.returned", len(result)))
	span.SetStatus(codes.Ok, "places fetched")
	return result
}
