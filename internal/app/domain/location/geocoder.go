package location

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
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wander/internal/app/models"
	"github.com/FACorreiaa/go-wander/internal/pkg/config"
)

var _ Geocoder = (*GeocoderImpl)(nil)

// Geocoder resolves a coordinate to a human-readable address.
type Geocoder interface {
	ResolveAddress(ctx context.Context, lat, lon float64) (string, error)
}

type GeocoderImpl struct {
	cfg        config.GeocodingConfig
	httpClient *http.Client
	logger     *zap.Logger
}

func NewGeocoderImpl(cfg config.GeocodingConfig, timeout time.Duration, logger *zap.Logger) *GeocoderImpl {
	return &GeocoderImpl{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// ResolveAddress reverse-geocodes the coordinate via the provider and returns
// its display name.
func (g *GeocoderImpl) ResolveAddress(ctx context.Context, lat, lon float64) (string, error) {
	params := url.Values{}
	params.Set("key", g.cfg.APIKey)
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("format", "json")

	requestURL := g.cfg.BaseURL + "?" + params.Encode()

	var body []byte
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}

			resp, err := g.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode >= http.StatusInternalServerError {
				return fmt.Errorf("geocoder returned %d", resp.StatusCode)
			}
			if resp.StatusCode != http.StatusOK {
				return retry.Unrecoverable(fmt.Errorf("geocoder returned %d", resp.StatusCode))
			}

			body, err = io.ReadAll(resp.Body)
			return err
		},
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			g.logger.Warn("Retrying reverse geocode", zap.Uint("attempt", n+1), zap.Error(err))
		}),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrUpstream, err)
	}

	var payload struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("%w: decoding geocoder response: %v", models.ErrUpstream, err)
	}
	if payload.DisplayName == "" {
		return "", fmt.Errorf("%w: geocoder returned no address", models.ErrUpstream)
	}

	return payload.DisplayName, nil
}
