package models

// Difficulty is a challenge difficulty tier.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty validates a difficulty string.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch Difficulty(s) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(s), true
	}
	return "", false
}

// ChallengeText is a pool entry before it is issued to a client.
type ChallengeText struct {
	Text       string     `toml:"text"`
	Difficulty Difficulty `toml:"difficulty"`
}

// Challenge is a text passage issued for a typing session. Immutable once
// returned to a client. The ID is only unique enough for display and logging.
type Challenge struct {
	ID         string     `json:"id"`
	Text       string     `json:"text"`
	Date       string     `json:"date"`
	Difficulty Difficulty `json:"difficulty"`
}
