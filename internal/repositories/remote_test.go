package repositories

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oil-forecast/pkg/observe"
)

func TestNewRemoteModel_EmptyURL(t *testing.T) {
	logger := observe.NewZapLogger("test-app", io.Discard)
	_, err := NewRemoteModel("  ", logger, nil)
	assert.Error(t, err)
}

func TestRemoteModel_Name(t *testing.T) {
	repo := &RemoteModel{}
	assert.Equal(t, "remote", repo.Name())
}

func TestRemoteModel_Forecast_Success(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req remoteForecastRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 3, req.Steps)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"model":"brent-sarima","forecast":[70.5,71.25,72]}`))
	}))
	defer mockServer.Close()

	logger := observe.NewZapLogger("test-app", io.Discard)
	repo, err := NewRemoteModel(mockServer.URL+"/", logger, mockServer.Client())
	require.NoError(t, err)

	result, err := repo.Forecast(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{70.5, 71.25, 72}, result)
}

func TestRemoteModel_Forecast_ServerErrorMessage(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"horizon exceeds fitted range"}`))
	}))
	defer mockServer.Close()

	logger := observe.NewZapLogger("test-app", io.Discard)
	repo, err := NewRemoteModel(mockServer.URL, logger, mockServer.Client())
	require.NoError(t, err)

	_, err = repo.Forecast(context.Background(), 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "horizon exceeds fitted range")
	assert.Contains(t, err.Error(), "422")
}

func TestRemoteModel_Forecast_HTTPError(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer mockServer.Close()

	logger := observe.NewZapLogger("test-app", io.Discard)
	repo, err := NewRemoteModel(mockServer.URL, logger, mockServer.Client())
	require.NoError(t, err)

	_, err = repo.Forecast(context.Background(), 3)
	assert.ErrorContains(t, err, "HTTP error (status 502)")
}

func TestRemoteModel_Forecast_InvalidJSON(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("invalid json"))
	}))
	defer mockServer.Close()

	logger := observe.NewZapLogger("test-app", io.Discard)
	repo, err := NewRemoteModel(mockServer.URL, logger, mockServer.Client())
	require.NoError(t, err)

	_, err = repo.Forecast(context.Background(), 3)
	assert.ErrorContains(t, err, "failed to parse JSON response")
}

func TestRemoteModel_Forecast_ContextCancellation(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond) // Simulate slow response
		w.Write([]byte(`{"forecast":[1]}`))
	}))
	defer mockServer.Close()

	logger := observe.NewZapLogger("test-app", io.Discard)
	repo, err := NewRemoteModel(mockServer.URL, logger, mockServer.Client())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	_, err = repo.Forecast(ctx, 1)
	assert.Error(t, err)
}

func TestRemoteModel_Forecast_Unreachable(t *testing.T) {
	logger := observe.NewZapLogger("test-app", io.Discard)
	repo, err := NewRemoteModel("http://127.0.0.1:1", logger, &http.Client{Timeout: time.Second})
	require.NoError(t, err)

	_, err = repo.Forecast(context.Background(), 1)
	assert.ErrorContains(t, err, "failed to do request")
}
