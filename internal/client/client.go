// Package client talks to a running biotope server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/Biotope/internal/report"
	"github.com/MikeSquared-Agency/Biotope/internal/scoring"
	"github.com/MikeSquared-Agency/Biotope/internal/survey"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("biotope api: %d %s", e.Status, e.Message)
}

type Client interface {
	Assess(ctx context.Context, s *survey.Survey, groups []string) (*report.Report, error)
	AssessFile(ctx context.Context, path string, groups []string) (*report.Report, error)
	Stars(ctx context.Context, idx scoring.Index, value float64, richness int) (*scoring.RatingResult, error)
	Health(ctx context.Context) error
}

type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) doReq(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, newAPIError(resp.StatusCode, data)
	}
	return data, nil
}

func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(body))
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		msg = payload.Error
	}
	return &APIError{Status: status, Message: msg}
}

func assessPath(groups []string) string {
	if len(groups) == 0 {
		return "/api/v1/assessments"
	}
	q := url.Values{"group": groups}
	return "/api/v1/assessments?" + q.Encode()
}

// Assess sends the survey records as JSON.
func (c *HTTPClient) Assess(ctx context.Context, s *survey.Survey, groups []string) (*report.Report, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return c.assess(ctx, "application/json", bytes.NewReader(payload), groups)
}

// AssessFile uploads the file unchanged so the server reports the file's own
// hash.
func (c *HTTPClient) AssessFile(ctx context.Context, path string, groups []string) (*report.Report, error) {
	format, err := survey.DetectFormat(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rep, err := c.assess(ctx, format.MediaType(), f, groups)
	if err != nil {
		return nil, err
	}
	rep.Input.File = path
	return rep, nil
}

func (c *HTTPClient) assess(ctx context.Context, contentType string, body io.Reader, groups []string) (*report.Report, error) {
	data, err := c.doReq(ctx, http.MethodPost, assessPath(groups), contentType, body)
	if err != nil {
		return nil, err
	}
	var rep report.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &rep, nil
}

func (c *HTTPClient) Stars(ctx context.Context, idx scoring.Index, value float64, richness int) (*scoring.RatingResult, error) {
	payload, err := json.Marshal(map[string]any{"index": idx, "value": value, "richness": richness})
	if err != nil {
		return nil, err
	}
	data, err := c.doReq(ctx, http.MethodPost, "/api/v1/stars", "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	var res scoring.RatingResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decode rating: %w", err)
	}
	return &res, nil
}

func (c *HTTPClient) Health(ctx context.Context) error {
	_, err := c.doReq(ctx, http.MethodGet, "/health", "", nil)
	return err
}
