package repositories

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"oil-forecast/pkg/observe"
)

const remoteForecastPath = "/forecast"

// RemoteModel calls a model server that owns the fitted model.
type RemoteModel struct {
	BaseURL    string
	httpClient HTTPClient
	l          *observe.Logger
}

type remoteForecastRequest struct {
	Steps int `json:"steps"`
}

type remoteForecastResponse struct {
	Model    string    `json:"model,omitempty"`
	Forecast []float64 `json:"forecast"`
	Error    string    `json:"error,omitempty"`
}

func NewRemoteModel(baseURL string, l *observe.Logger, httpClient HTTPClient) (*RemoteModel, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("remote model URL cannot be empty")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &RemoteModel{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		l:          l,
	}, nil
}

func (r *RemoteModel) Name() string {
	return "remote"
}

func (r *RemoteModel) Forecast(ctx context.Context, steps int) ([]float64, error) {
	payload, err := json.Marshal(remoteForecastRequest{Steps: steps})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := r.BaseURL + remoteForecastPath

	r.l.Debug("making model server request", map[string]any{
		"url":   url,
		"steps": steps,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	r.l.Debug("received model server response", map[string]any{
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var response remoteForecastResponse
	jsonErr := json.Unmarshal(body, &response)

	// Check for HTTP error status codes
	if resp.StatusCode != http.StatusOK {
		if jsonErr == nil && response.Error != "" {
			return nil, fmt.Errorf("model server error (status %d): %s", resp.StatusCode, response.Error)
		}
		return nil, fmt.Errorf("HTTP error (status %d): %s", resp.StatusCode, resp.Status)
	}

	if jsonErr != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", jsonErr)
	}
	if response.Error != "" {
		return nil, fmt.Errorf("model server error: %s", response.Error)
	}

	return response.Forecast, nil
}
