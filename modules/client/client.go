package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"studio-photo-server/modules/scene"
)

const DefaultBaseURL = "http://localhost:8080"

// APIError - 서버가 2xx 이외로 응답한 경우
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Client - 스튜디오 포토 서버 HTTP 클라이언트
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		// 합성은 수십 초 걸릴 수 있음
		HTTPClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// Composition - 합성 응답
type Composition struct {
	Image    string `json:"image"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// ProcessImage - POST /api/process-image
func (c *Client) ProcessImage(ctx context.Context, imageBase64, backgroundPrompt string) (*Composition, error) {
	var out Composition
	err := c.do(ctx, http.MethodPost, "/api/process-image", map[string]string{
		"image":            imageBase64,
		"backgroundPrompt": backgroundPrompt,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Analyze - POST /api/analyze-product
func (c *Client) Analyze(ctx context.Context, imageBase64 string) (string, error) {
	var out struct {
		Description string `json:"description"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/analyze-product", map[string]string{
		"image": imageBase64,
	}, &out); err != nil {
		return "", err
	}
	return out.Description, nil
}

// Scenes - GET /api/scenes
func (c *Client) Scenes(ctx context.Context) ([]scene.Preset, error) {
	var out scene.ListResponse
	if err := c.do(ctx, http.MethodGet, "/api/scenes", nil, &out); err != nil {
		return nil, err
	}
	return out.Scenes, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dst interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errBody) == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
		} else {
			apiErr.Message = strings.TrimSpace(string(respBody))
		}
		return apiErr
	}

	if err := json.Unmarshal(respBody, dst); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
