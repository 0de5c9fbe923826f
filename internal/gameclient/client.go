// Package gameclient is the JSON API client used by the terminal client.
package gameclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/echokeys/echokeys/internal/logger"
	"github.com/echokeys/echokeys/internal/models"
)

type Client struct {
	baseURL    string
	postID     string
	username   string
	httpClient *http.Client
	log        *logger.Logger
}

func New(baseURL, postID, username string) *Client {
	return &Client{
		baseURL:    baseURL,
		postID:     postID,
		username:   username,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        logger.Default().WithPrefix("gameclient"),
	}
}

// InitData is the server's answer to /api/init.
type InitData struct {
	Type           string           `json:"type"`
	PostID         string           `json:"postId"`
	Username       string           `json:"username"`
	UserStats      models.UserStats `json:"userStats"`
	DailyChallenge models.Challenge `json:"dailyChallenge"`
}

// Init fetches the username, stats and daily challenge for this post.
func (c *Client) Init(ctx context.Context) (*InitData, error) {
	var out InitData
	if err := c.get(ctx, "/api/init", &out); err != nil {
		return nil, err
	}
	if out.Type != "init" {
		return nil, fmt.Errorf("unexpected response type %q", out.Type)
	}
	return &out, nil
}

// ChallengeByDifficulty fetches a random challenge for the given tier.
func (c *Client) ChallengeByDifficulty(ctx context.Context, difficulty models.Difficulty) (*models.Challenge, error) {
	var out struct {
		Challenge models.Challenge `json:"challenge"`
	}
	if err := c.get(ctx, "/api/challenge/"+string(difficulty), &out); err != nil {
		return nil, err
	}
	return &out.Challenge, nil
}

// SubmitResult posts a finished session. It implements session.Submitter.
func (c *Client) SubmitResult(ctx context.Context, result models.GameResult) error {
	log := logger.FromContext(ctx).WithPrefix("gameclient")

	body, err := json.Marshal(result)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/submit-score", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.setIdentity(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to submit score: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("submit score failed: status=%d, body=%s", resp.StatusCode, string(respBody))
		return fmt.Errorf("submit score status %d: %s", resp.StatusCode, string(respBody))
	}

	log.Debug("score submitted: wpm=%.0f, accuracy=%.0f", result.WPM, result.Accuracy)
	return nil
}

// Leaderboard fetches the current top entries.
func (c *Client) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	var out struct {
		Type        string                    `json:"type"`
		Leaderboard []models.LeaderboardEntry `json:"leaderboard"`
	}
	if err := c.get(ctx, "/api/leaderboard", &out); err != nil {
		return nil, err
	}
	return out.Leaderboard, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	log := logger.FromContext(ctx).WithPrefix("gameclient")
	url := c.baseURL + path

	log.Debug("fetching: %s", url)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return err
	}
	c.setIdentity(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("request failed: %v", err)
		return err
	}
	defer resp.Body.Close()

	log.Debug("response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("request failed: status=%d, body=%s", resp.StatusCode, string(body))
		return fmt.Errorf("%s status %d: %s", path, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Error("failed to decode response: %v", err)
		return err
	}
	return nil
}

// setIdentity mimics the platform proxy's context headers so a standalone
// client can talk to the server directly.
func (c *Client) setIdentity(req *http.Request) {
	if c.postID != "" {
		req.Header.Set("X-Post-Id", c.postID)
	}
	if c.username != "" {
		req.Header.Set("X-Username", c.username)
	}
}
