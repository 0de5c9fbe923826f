package gameclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echokeys/echokeys/internal/gameclient"
	"github.com/echokeys/echokeys/internal/models"
)

func TestInit_SendsIdentityHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/init", r.URL.Path)
		require.Equal(t, "t3_abc", r.Header.Get("X-Post-Id"))
		require.Equal(t, "speedy", r.Header.Get("X-Username"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"type":     "init",
			"postId":   "t3_abc",
			"username": "speedy",
			"dailyChallenge": map[string]any{
				"id":         "daily-42",
				"text":       "type me",
				"difficulty": "easy",
			},
		})
	}))
	defer server.Close()

	client := gameclient.New(server.URL, "t3_abc", "speedy")
	data, err := client.Init(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "speedy", data.Username)
	assert.Equal(t, "daily-42", data.DailyChallenge.ID)
}

func TestInit_RejectsUnexpectedResponseType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"type": "whoops"})
	}))
	defer server.Close()

	client := gameclient.New(server.URL, "t3_abc", "")
	_, err := client.Init(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "whoops")
}

func TestSubmitResult(t *testing.T) {
	var got models.GameResult
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/submit-score", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_ = json.NewEncoder(w).Encode(map[string]any{"type": "submitScore", "rank": 1})
	}))
	defer server.Close()

	client := gameclient.New(server.URL, "t3_abc", "speedy")
	err := client.SubmitResult(context.Background(), models.GameResult{
		WPM:         64,
		Accuracy:    92,
		TimeMs:      58000,
		ChallengeID: "daily-42",
	})
	require.NoError(t, err)
	assert.Equal(t, float64(64), got.WPM)
	assert.Equal(t, "daily-42", got.ChallengeID)
}

func TestSubmitResult_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := gameclient.New(server.URL, "t3_abc", "")
	err := client.SubmitResult(context.Background(), models.GameResult{WPM: 10})
	require.Error(t, err)
}

func TestLeaderboard(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/leaderboard", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"type": "leaderboard",
			"leaderboard": []map[string]any{
				{"username": "fast", "wpm": 110, "accuracy": 99, "date": "2026-08-31"},
			},
		})
	}))
	defer server.Close()

	client := gameclient.New(server.URL, "t3_abc", "")
	entries, err := client.Leaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "fast", entries[0].Username)
	assert.Equal(t, float64(110), entries[0].WPM)
}
