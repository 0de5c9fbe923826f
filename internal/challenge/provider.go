package challenge

import (
	_ "embed"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/echokeys/echokeys/internal/logger"
	"github.com/echokeys/echokeys/internal/models"
)

//go:embed challenges.toml
var embeddedPool []byte

// maxDirChallenges caps the directory source at one entry per day of the year.
const maxDirChallenges = 365

var difficultySuffixRe = regexp.MustCompile(`(?i)-(easy|medium|hard)\.txt$`)

// Provider holds the challenge pool and answers daily and per-difficulty
// selections. The pool is immutable after Load; construct one at startup and
// inject it into whatever needs challenges.
type Provider struct {
	mu         sync.RWMutex
	challenges []models.ChallengeText
	loaded     bool
	source     string
	now        func() time.Time
	rng        *rand.Rand
	log        *logger.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithClock overrides the clock, used by tests for deterministic daily picks.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		p.now = now
	}
}

// WithRand overrides the random source for per-difficulty picks.
func WithRand(rng *rand.Rand) Option {
	return func(p *Provider) {
		p.rng = rng
	}
}

// WithPool populates the pool with fixed entries, bypassing the load chain.
// Load becomes a no-op on a Provider built this way.
func WithPool(entries []models.ChallengeText) Option {
	return func(p *Provider) {
		p.challenges = entries
		p.loaded = true
		p.source = "static"
	}
}

// New creates an empty Provider. Callers must Load it before it serves real
// challenges; until then Daily returns a loading placeholder.
func New(opts ...Option) *Provider {
	p := &Provider{
		now: time.Now,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		log: logger.Default().WithPrefix("challenge"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load populates the pool from the first source yielding at least one entry:
// the embedded list, then the challenge directory, then the built-in
// fallback. Source failures are logged and fall through, never fatal.
func (p *Provider) Load(dir string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.loaded {
		return
	}

	if entries, err := loadEmbedded(); err != nil {
		p.log.Warn("failed to load embedded challenges: %v", err)
	} else if len(entries) > 0 {
		p.challenges = entries
		p.loaded = true
		p.source = "embedded"
		p.log.Info("loaded %d challenges from embedded pool", len(entries))
		return
	}

	if dir != "" {
		if entries, err := loadDir(dir); err != nil {
			p.log.Warn("could not load challenges from %s: %v", dir, err)
		} else if len(entries) > 0 {
			p.challenges = entries
			p.loaded = true
			p.source = "dir"
			p.log.Info("loaded %d challenges from %s", len(entries), dir)
			return
		}
	}

	p.challenges = fallbackChallenges
	p.loaded = true
	p.source = "fallback"
	p.log.Info("using %d fallback challenges", len(fallbackChallenges))
}

// Loaded reports whether the pool has been populated.
func (p *Provider) Loaded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loaded && len(p.challenges) > 0
}

// Size returns the pool size.
func (p *Provider) Size() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.challenges)
}

// Source names the pool source that won the load chain.
func (p *Provider) Source() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.source
}

// Daily returns the deterministic challenge of the current calendar day.
// Before the pool is loaded it returns a placeholder instead of an error so
// early readers see a loading state rather than a failure.
func (p *Provider) Daily() models.Challenge {
	p.mu.RLock()
	defer p.mu.RUnlock()

	today := p.now()
	if !p.loaded || len(p.challenges) == 0 {
		return models.Challenge{
			ID:         "loading",
			Text:       "Loading challenges...",
			Date:       today.Format("2006-01-02"),
			Difficulty: models.DifficultyEasy,
		}
	}

	dayOfYear := today.YearDay()
	entry := p.challenges[dayOfYear%len(p.challenges)]
	return models.Challenge{
		ID:         fmt.Sprintf("daily-%d", dayOfYear),
		Text:       entry.Text,
		Date:       today.Format("2006-01-02"),
		Difficulty: entry.Difficulty,
	}
}

// ByDifficulty picks a uniformly random challenge of the given tier. Repeated
// calls on the same day can return different challenges. The second return is
// false when the pool holds no entry of that tier.
func (p *Provider) ByDifficulty(d models.Difficulty) (models.Challenge, bool) {
	// Full lock: the random source is not safe for concurrent use.
	p.mu.Lock()
	defer p.mu.Unlock()

	var filtered []models.ChallengeText
	for _, c := range p.challenges {
		if c.Difficulty == d {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 0 {
		return models.Challenge{}, false
	}

	idx := p.rng.Intn(len(filtered))
	return models.Challenge{
		ID:         fmt.Sprintf("%s-%d", d, idx),
		Text:       filtered[idx].Text,
		Date:       p.now().Format("2006-01-02"),
		Difficulty: d,
	}, true
}

func loadEmbedded() ([]models.ChallengeText, error) {
	var pool struct {
		Challenge []models.ChallengeText `toml:"challenge"`
	}
	if err := toml.Unmarshal(embeddedPool, &pool); err != nil {
		return nil, err
	}
	for i, c := range pool.Challenge {
		if _, ok := models.ParseDifficulty(string(c.Difficulty)); !ok {
			return nil, fmt.Errorf("entry %d: unknown difficulty %q", i, c.Difficulty)
		}
	}
	return pool.Challenge, nil
}

func loadDir(dir string) ([]models.ChallengeText, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var out []models.ChallengeText
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		if len(out) >= maxDirChallenges {
			break
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		text := strings.TrimSpace(string(data))
		if text == "" {
			continue
		}
		out = append(out, models.ChallengeText{
			Text:       text,
			Difficulty: difficultyFromName(entry.Name()),
		})
	}
	return out, nil
}

// difficultyFromName infers the tier from a filename like "003-hard.txt",
// defaulting to medium when no suffix matches.
func difficultyFromName(name string) models.Difficulty {
	m := difficultySuffixRe.FindStringSubmatch(name)
	if len(m) == 2 {
		if d, ok := models.ParseDifficulty(strings.ToLower(m[1])); ok {
			return d
		}
	}
	return models.DifficultyMedium
}
