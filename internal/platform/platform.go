// Package platform talks to the hosting platform that embeds the game:
// post creation and deep links. Identity and post context arrive on request
// headers set by the platform's proxy, handled in the api package.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/echokeys/echokeys/internal/logger"
)

// Post is a platform post hosting one game instance.
type Post struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// PostCreator creates posts on the hosting platform.
type PostCreator interface {
	CreatePost(ctx context.Context) (*Post, error)
}

type Client struct {
	baseURL    string
	community  string
	httpClient *http.Client
	log        *logger.Logger
}

func New(baseURL, community string) *Client {
	return &Client{
		baseURL:    baseURL,
		community:  community,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        logger.Default().WithPrefix("platform"),
	}
}

type createPostRequest struct {
	Title     string `json:"title"`
	Community string `json:"community"`
}

// CreatePost asks the platform to create a game post in the configured
// community and returns its id and deep link.
func (c *Client) CreatePost(ctx context.Context) (*Post, error) {
	log := logger.FromContext(ctx).WithPrefix("platform").WithField("community", c.community)
	url := fmt.Sprintf("%s/api/posts", c.baseURL)

	log.Debug("creating post via: %s", url)
	start := time.Now()

	body, err := json.Marshal(createPostRequest{
		Title:     "EchoKeys - Daily Typing Challenge",
		Community: c.community,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to create post: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	log.Debug("create post response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("create post failed: status=%d, body=%s", resp.StatusCode, string(respBody))
		return nil, fmt.Errorf("create post status %d: %s", resp.StatusCode, string(respBody))
	}

	var post Post
	if err := json.NewDecoder(resp.Body).Decode(&post); err != nil {
		log.Error("failed to decode create post response: %v", err)
		return nil, err
	}
	if post.URL == "" {
		post.URL = c.PostURL(post.ID)
	}

	log.Info("post created: id=%s", post.ID)
	return &post, nil
}

// PostURL assembles the public deep link for a post id.
func (c *Client) PostURL(id string) string {
	return fmt.Sprintf("%s/r/%s/comments/%s", c.baseURL, c.community, id)
}
