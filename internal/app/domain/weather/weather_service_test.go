package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wander/internal/app/models"
	"github.com/FACorreiaa/go-wander/internal/pkg/config"
)

const currentWeatherBody = `{
	"weather": [{"main": "Clouds", "description": "scattered clouds"}],
	"main": {"temp": 8.2, "feels_like": 6.1, "humidity": 72},
	"wind": {"speed": 3.4},
	"dt": 1750000000,
	"timezone": 3600
}`

func newTestService(t *testing.T, handler http.HandlerFunc) (*ServiceImpl, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.WeatherConfig{
		APIKey:   "test-key",
		BaseURL:  srv.URL,
		CacheTTL: time.Minute,
	}
	return NewServiceImpl(cfg, 5*time.Second, zap.NewNop()), srv
}

func TestGetCurrent_ParsesProviderResponse(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		w.Write([]byte(currentWeatherBody))
	})

	reading, err := svc.GetCurrent(context.Background(), 40.7, -73.9)
	require.NoError(t, err)

	assert.InDelta(t, 8.2, reading.Temp, 0.001)
	assert.InDelta(t, 6.1, reading.FeelsLike, 0.001)
	assert.Equal(t, 72, reading.Humidity)
	assert.InDelta(t, 3.4, reading.WindSpeed, 0.001)
	assert.Equal(t, "Clouds", reading.Condition)
	assert.Equal(t, "scattered clouds", reading.Description)
	assert.Equal(t, int64(1750000000), reading.Dt)
	assert.Equal(t, 3600, reading.Timezone)
}

func TestGetCurrent_CachesByCoordinate(t *testing.T) {
	var calls atomic.Int32
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(currentWeatherBody))
	})

	_, err := svc.GetCurrent(context.Background(), 40.7, -73.9)
	require.NoError(t, err)
	_, err = svc.GetCurrent(context.Background(), 40.7, -73.9)
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
}

func TestGetCurrent_ProviderErrorIsUpstream(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := svc.GetCurrent(context.Background(), 40.7, -73.9)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrUpstream)
}

func TestGetCurrent_EmptyConditionsRejected(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"weather": [], "main": {"temp": 10}, "wind": {}, "dt": 1, "timezone": 0}`))
	})

	_, err := svc.GetCurrent(context.Background(), 40.7, -73.9)
	assert.ErrorIs(t, err, models.ErrUpstream)
}
