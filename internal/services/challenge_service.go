package services

import (
	"context"
	"fmt"

	"github.com/echokeys/echokeys/internal/challenge"
	"github.com/echokeys/echokeys/internal/errors"
	"github.com/echokeys/echokeys/internal/logger"
	"github.com/echokeys/echokeys/internal/models"
)

// ChallengeService handles challenge selection business logic
type ChallengeService interface {
	Daily(ctx context.Context) models.Challenge
	ByDifficulty(ctx context.Context, raw string) (*models.Challenge, error)
}

type challengeService struct {
	provider *challenge.Provider
}

// NewChallengeService creates a new ChallengeService
func NewChallengeService(provider *challenge.Provider) ChallengeService {
	return &challengeService{provider: provider}
}

// Daily never fails; before the pool is loaded it hands back the provider's
// loading placeholder.
func (s *challengeService) Daily(ctx context.Context) models.Challenge {
	log := logger.FromContext(ctx)

	c := s.provider.Daily()
	log.Debug("daily challenge selected: id=%s, difficulty=%s", c.ID, c.Difficulty)
	return c
}

func (s *challengeService) ByDifficulty(ctx context.Context, raw string) (*models.Challenge, error) {
	log := logger.FromContext(ctx)
	log.Debug("selecting challenge by difficulty: %s", raw)

	difficulty, ok := models.ParseDifficulty(raw)
	if !ok {
		return nil, errors.NewValidationError("difficulty", "must be easy, medium or hard")
	}

	if !s.provider.Loaded() {
		return nil, errors.NewInternalError(fmt.Errorf("challenge pool not loaded"))
	}

	c, ok := s.provider.ByDifficulty(difficulty)
	if !ok {
		log.Warn("no challenges available for difficulty=%s", difficulty)
		return nil, errors.NewNotFoundError("challenge", difficulty)
	}

	log.Debug("challenge selected: id=%s", c.ID)
	return &c, nil
}
