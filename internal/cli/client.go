package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wordduel/wordduel/internal/api/response"
	"github.com/wordduel/wordduel/internal/model"
)

// Client is an HTTP client for the three wordduel services
type Client struct {
	identityURL string
	sessionURL  string
	gameURL     string
	httpClient  *http.Client
}

// NewClient creates a new client from the configured service URLs
func NewClient(cfg *Config) *Client {
	return &Client{
		identityURL: strings.TrimSuffix(cfg.IdentityURL, "/"),
		sessionURL:  strings.TrimSuffix(cfg.SessionURL, "/"),
		gameURL:     strings.TrimSuffix(cfg.GameURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError represents an error response from a service
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an API error
type ErrorResponse struct {
	Error APIError `json:"error"`
}

func (e *APIError) String() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Login resolves a handle to an identity on the identity service
func (c *Client) Login(username string) (*response.Identity, error) {
	var id response.Identity
	err := c.do(http.MethodPost, c.identityURL+"/users/login", map[string]string{"username": username}, &id)
	return &id, err
}

// GetUser fetches an identity by id
func (c *Client) GetUser(userID string) (*response.Identity, error) {
	var id response.Identity
	err := c.do(http.MethodGet, c.identityURL+"/users/"+userID, nil, &id)
	return &id, err
}

// Join requests a pairing on the session authority
func (c *Client) Join(userID string) (*response.Room, error) {
	var room response.Room
	err := c.do(http.MethodPost, c.sessionURL+"/rooms/join", map[string]string{"userId": userID}, &room)
	return &room, err
}

// GetRoom fetches a room from the session authority
func (c *Client) GetRoom(roomID string) (*response.Room, error) {
	var room response.Room
	err := c.do(http.MethodGet, c.sessionURL+"/rooms/"+roomID, nil, &room)
	return &room, err
}

// Move submits a guess to the game authority
func (c *Client) Move(roomID, userID, guess string) (*model.GameUpdate, error) {
	var update model.GameUpdate
	err := c.do(http.MethodPost, c.gameURL+"/game/move", map[string]string{
		"roomId": roomID,
		"userId": userID,
		"guess":  guess,
	}, &update)
	return &update, err
}

// GetGame fetches the public game snapshot from the game authority
func (c *Client) GetGame(roomID string) (*response.Game, error) {
	var g response.Game
	err := c.do(http.MethodGet, c.gameURL+"/game/"+roomID, nil, &g)
	return &g, err
}

// Health probes one service's health endpoint
func (c *Client) Health(baseURL string) error {
	return c.do(http.MethodGet, baseURL+"/healthz", nil, nil)
}

// do performs an HTTP request
func (c *Client) do(method, url string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error.Code != "" {
			return fmt.Errorf("%s", errResp.Error.String())
		}
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}
