package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/echokeys/echokeys/internal/api"
	"github.com/echokeys/echokeys/internal/challenge"
	"github.com/echokeys/echokeys/internal/models"
	"github.com/echokeys/echokeys/internal/platform"
	"github.com/echokeys/echokeys/internal/services"
	"github.com/echokeys/echokeys/internal/testutil/mocks"
)

type HandlersSuite struct {
	suite.Suite
	statsRepo       *mocks.MockStatsRepository
	leaderboardRepo *mocks.MockLeaderboardRepository
	posts           *mocks.MockPostCreator
	handler         http.Handler
}

func (s *HandlersSuite) SetupTest() {
	s.statsRepo = new(mocks.MockStatsRepository)
	s.leaderboardRepo = new(mocks.MockLeaderboardRepository)
	s.posts = new(mocks.MockPostCreator)

	provider := challenge.New()
	provider.Load("")

	srv := &api.Server{
		ChallengeService: services.NewChallengeService(provider),
		ScoreService:     services.NewScoreService(s.statsRepo, s.leaderboardRepo),
		Posts:            s.posts,
		LeaderboardLimit: 10,
	}
	s.handler = srv.Routes()
}

func (s *HandlersSuite) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *HandlersSuite) decode(rec *httptest.ResponseRecorder, out any) {
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(out))
}

func (s *HandlersSuite) TestHealth() {
	rec := s.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	s.Assert().Equal(http.StatusOK, rec.Code)
}

func (s *HandlersSuite) TestInit_MissingPostContext() {
	rec := s.do(httptest.NewRequest(http.MethodGet, "/api/init", nil))
	s.Assert().Equal(http.StatusBadRequest, rec.Code)

	var body map[string]string
	s.decode(rec, &body)
	s.Assert().Equal("error", body["status"])
}

func (s *HandlersSuite) TestInit_ReturnsStatsAndDailyChallenge() {
	s.statsRepo.On("Get", mock.Anything, "keyboard_warrior").
		Return(&models.UserStats{Username: "keyboard_warrior", BestWPM: 88, TotalGames: 12}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/init", nil)
	req.Header.Set("X-Post-Id", "t3_abc")
	req.Header.Set("X-Username", "keyboard_warrior")
	rec := s.do(req)
	s.Require().Equal(http.StatusOK, rec.Code)

	var body struct {
		Type           string           `json:"type"`
		PostID         string           `json:"postId"`
		Username       string           `json:"username"`
		UserStats      models.UserStats `json:"userStats"`
		DailyChallenge models.Challenge `json:"dailyChallenge"`
	}
	s.decode(rec, &body)
	s.Assert().Equal("init", body.Type)
	s.Assert().Equal("t3_abc", body.PostID)
	s.Assert().Equal("keyboard_warrior", body.Username)
	s.Assert().Equal(float64(88), body.UserStats.BestWPM)
	s.Assert().NotEmpty(body.DailyChallenge.ID)
	s.Assert().NotEmpty(body.DailyChallenge.Text)
}

func (s *HandlersSuite) TestInit_AnonymousWithoutUsernameHeader() {
	s.statsRepo.On("Get", mock.Anything, "anonymous").Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/init", nil)
	req.Header.Set("X-Post-Id", "t3_abc")
	rec := s.do(req)
	s.Require().Equal(http.StatusOK, rec.Code)

	var body struct {
		Username string `json:"username"`
	}
	s.decode(rec, &body)
	s.Assert().Equal("anonymous", body.Username)
}

func (s *HandlersSuite) TestChallengeByDifficulty() {
	rec := s.do(httptest.NewRequest(http.MethodGet, "/api/challenge/hard", nil))
	s.Require().Equal(http.StatusOK, rec.Code)

	var body struct {
		Challenge models.Challenge `json:"challenge"`
	}
	s.decode(rec, &body)
	s.Assert().Equal("hard", string(body.Challenge.Difficulty))
	s.Assert().NotEmpty(body.Challenge.Text)
}

func (s *HandlersSuite) TestChallengeByDifficulty_InvalidTier() {
	rec := s.do(httptest.NewRequest(http.MethodGet, "/api/challenge/legendary", nil))
	s.Assert().Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlersSuite) TestChallengeByDifficulty_NoChallengesForTier() {
	provider := challenge.New(challenge.WithPool([]models.ChallengeText{
		{Text: "an easy one", Difficulty: models.DifficultyEasy},
		{Text: "a medium one", Difficulty: models.DifficultyMedium},
	}))
	srv := &api.Server{
		ChallengeService: services.NewChallengeService(provider),
		ScoreService:     services.NewScoreService(s.statsRepo, s.leaderboardRepo),
		Posts:            s.posts,
		LeaderboardLimit: 10,
	}

	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/challenge/hard", nil))
	s.Assert().Equal(http.StatusNotFound, rec.Code)

	var body map[string]string
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&body))
	s.Assert().Equal("error", body["status"])
}

func (s *HandlersSuite) TestSubmitScore_MissingPostContext() {
	body := bytes.NewBufferString(`{"wpm": 50, "accuracy": 90, "time": 60000}`)
	rec := s.do(httptest.NewRequest(http.MethodPost, "/api/submit-score", body))
	s.Assert().Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlersSuite) TestSubmitScore_InvalidBody() {
	req := httptest.NewRequest(http.MethodPost, "/api/submit-score", bytes.NewBufferString("not json"))
	req.Header.Set("X-Post-Id", "t3_abc")
	rec := s.do(req)
	s.Assert().Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlersSuite) TestSubmitScore_Success() {
	s.statsRepo.On("Get", mock.Anything, "anonymous").Return(nil, nil)
	s.statsRepo.On("Upsert", mock.Anything, mock.AnythingOfType("models.UserStats")).Return(nil)
	s.leaderboardRepo.On("Insert", mock.Anything, mock.AnythingOfType("models.LeaderboardEntry")).Return(nil)
	s.leaderboardRepo.On("CountHigher", mock.Anything, float64(72)).Return(4, nil)

	payload := bytes.NewBufferString(`{"wpm": 72, "accuracy": 94, "time": 45000, "challengeId": "daily-120"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/submit-score", payload)
	req.Header.Set("X-Post-Id", "t3_abc")
	rec := s.do(req)
	s.Require().Equal(http.StatusOK, rec.Code)

	var body struct {
		Type         string `json:"type"`
		PostID       string `json:"postId"`
		NewHighScore bool   `json:"newHighScore"`
		Rank         int    `json:"rank"`
	}
	s.decode(rec, &body)
	s.Assert().Equal("submitScore", body.Type)
	s.Assert().Equal("t3_abc", body.PostID)
	s.Assert().True(body.NewHighScore)
	s.Assert().Equal(5, body.Rank)
}

func (s *HandlersSuite) TestLeaderboard_EmptyIsAnEmptyList() {
	s.leaderboardRepo.On("Top", mock.Anything, 10).Return(nil, nil)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil))
	s.Require().Equal(http.StatusOK, rec.Code)

	var body struct {
		Type        string            `json:"type"`
		Leaderboard []json.RawMessage `json:"leaderboard"`
	}
	s.decode(rec, &body)
	s.Assert().Equal("leaderboard", body.Type)
	s.Assert().NotNil(body.Leaderboard)
	s.Assert().Empty(body.Leaderboard)
}

func (s *HandlersSuite) TestLeaderboard_ReturnsEntries() {
	entries := []models.LeaderboardEntry{
		{Username: "fast", WPM: 120, Accuracy: 99, Date: "2026-08-30"},
		{Username: "faster", WPM: 110, Accuracy: 97, Date: "2026-08-31"},
	}
	s.leaderboardRepo.On("Top", mock.Anything, 10).Return(entries, nil)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil))
	s.Require().Equal(http.StatusOK, rec.Code)

	var body struct {
		Leaderboard []models.LeaderboardEntry `json:"leaderboard"`
	}
	s.decode(rec, &body)
	s.Require().Len(body.Leaderboard, 2)
	s.Assert().Equal("fast", body.Leaderboard[0].Username)
}

func (s *HandlersSuite) TestAppInstall_CreatesPost() {
	s.posts.On("CreatePost", mock.Anything).
		Return(&platform.Post{ID: "t3_new", URL: "https://example.com/r/echokeys/comments/t3_new"}, nil)

	rec := s.do(httptest.NewRequest(http.MethodPost, "/internal/on-app-install", nil))
	s.Require().Equal(http.StatusOK, rec.Code)

	var body struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	s.decode(rec, &body)
	s.Assert().Equal("success", body.Status)
	s.Assert().Contains(body.Message, "t3_new")
}

func (s *HandlersSuite) TestMenuPostCreate_NavigatesToPost() {
	s.posts.On("CreatePost", mock.Anything).
		Return(&platform.Post{ID: "t3_new", URL: "https://example.com/r/echokeys/comments/t3_new"}, nil)

	rec := s.do(httptest.NewRequest(http.MethodPost, "/internal/menu/post-create", nil))
	s.Require().Equal(http.StatusOK, rec.Code)

	var body struct {
		NavigateTo string `json:"navigateTo"`
	}
	s.decode(rec, &body)
	s.Assert().Equal("https://example.com/r/echokeys/comments/t3_new", body.NavigateTo)
}

func (s *HandlersSuite) TestMenuPostCreate_PlatformFailure() {
	s.posts.On("CreatePost", mock.Anything).Return(nil, fmt.Errorf("platform down"))

	rec := s.do(httptest.NewRequest(http.MethodPost, "/internal/menu/post-create", nil))
	s.Assert().Equal(http.StatusBadRequest, rec.Code)
}

func TestHandlersSuite(t *testing.T) {
	suite.Run(t, new(HandlersSuite))
}
