package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wander/internal/app/models"
	"github.com/FACorreiaa/go-wander/internal/pkg/config"
)

var _ Service = (*ServiceImpl)(nil)

// Service fetches current-weather readings for a coordinate.
type Service interface {
	GetCurrent(ctx context.Context, lat, lon float64) (*models.WeatherReading, error)
}

type ServiceImpl struct {
	cfg        config.WeatherConfig
	httpClient *http.Client
	cache      *cache.Cache
	logger     *zap.Logger
}

func NewServiceImpl(cfg config.WeatherConfig, timeout time.Duration, logger *zap.Logger) *ServiceImpl {
	return &ServiceImpl{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		logger:     logger,
	}
}

// openWeatherResponse mirrors the provider's current-weather payload.
type openWeatherResponse struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Dt       int64 `json:"dt"`
	Timezone int   `json:"timezone"`
}

// GetCurrent returns the current reading for a coordinate, in metric units.
// Readings are cached briefly keyed by rounded coordinates so a suggestion
// call and an immediate preference lookup reuse the same observation.
func (s *ServiceImpl) GetCurrent(ctx context.Context, lat, lon float64) (*models.WeatherReading, error) {
	ctx, span := otel.Tracer("WeatherService").Start(ctx, "GetCurrent")
	defer span.End()
	span.SetAttributes(
		attribute.Float64("location.lat", lat),
		attribute.Float64("location.lon", lon),
	)

	cacheKey := fmt.Sprintf("weather:%.3f:%.3f", lat, lon)
	if cached, found := s.cache.Get(cacheKey); found {
		if reading, ok := cached.(*models.WeatherReading); ok {
			s.logger.Debug("Serving weather from cache", zap.String("cache_key", cacheKey))
			return reading, nil
		}
	}

	body, err := s.fetch(ctx, lat, lon)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "weather provider call failed")
		return nil, fmt.Errorf("%w: %v", models.ErrUpstream, err)
	}

	var resp openWeatherResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: decoding weather response: %v", models.ErrUpstream, err)
	}
	if len(resp.Weather) == 0 {
		return nil, fmt.Errorf("%w: weather response has no conditions", models.ErrUpstream)
	}

	reading := &models.WeatherReading{
		Temp:        resp.Main.Temp,
		FeelsLike:   resp.Main.FeelsLike,
		Humidity:    resp.Main.Humidity,
		WindSpeed:   resp.Wind.Speed,
		Condition:   resp.Weather[0].Main,
		Description: resp.Weather[0].Description,
		Dt:          resp.Dt,
		Timezone:    resp.Timezone,
	}

	s.cache.Set(cacheKey, reading, cache.DefaultExpiration)
	span.SetStatus(codes.Ok, "weather fetched")
	return reading, nil
}

func (s *ServiceImpl) fetch(ctx context.Context, lat, lon float64) ([]byte, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("appid", s.cfg.APIKey)
	params.Set("units", "metric")

	requestURL := s.cfg.BaseURL + "?" + params.Encode()

	var body []byte
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}

			resp, err := s.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode >= http.StatusInternalServerError {
				return fmt.Errorf("weather provider returned %d", resp.StatusCode)
			}
			if resp.StatusCode != http.StatusOK {
				return retry.Unrecoverable(fmt.Errorf("weather provider returned %d", resp.StatusCode))
			}

			body, err = io.ReadAll(resp.Body)
			return err
		},
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			s.logger.Warn("Retrying weather provider call", zap.Uint("attempt", n+1), zap.Error(err))
		}),
	)
	if err != nil {
		return nil, err
	}
	return body, nil
}
