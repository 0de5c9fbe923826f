// Package session tracks a single in-progress typing session and derives
// live words-per-minute and accuracy from each keystroke.
package session

import (
	"context"
	"math"
	"regexp"
	"time"

	"github.com/echokeys/echokeys/internal/logger"
	"github.com/echokeys/echokeys/internal/models"
)

// Submitter receives the finished session exactly once. Implementations are
// expected to be fast or to tolerate being called from a goroutine; the
// scorer never retries and never blocks the caller on the outcome.
type Submitter interface {
	SubmitResult(ctx context.Context, result models.GameResult) error
}

// Speaker voices a completed word, best effort.
type Speaker interface {
	Speak(word string)
}

// wordBoundaryRe matches a word followed by a delimiter, so a word counts as
// completed only once the character after it has been typed.
var wordBoundaryRe = regexp.MustCompile(`([\w']+)[\s.,!?;:\-—]`)

// Scorer is the session state machine: idle until Start, running while input
// arrives, finished once the typed length reaches the challenge length.
type Scorer struct {
	challenge *models.Challenge
	target    []rune
	typed     []rune

	started  bool
	finished bool

	startTime time.Time
	endTime   time.Time

	wpm      int
	accuracy int

	lastSpoken int
	muted      bool

	now       func() time.Time
	submitter Submitter
	speaker   Speaker
	log       *logger.Logger
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithClock overrides the clock for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) {
		s.now = now
	}
}

// WithSubmitter sets the destination for the finished result.
func WithSubmitter(sub Submitter) Option {
	return func(s *Scorer) {
		s.submitter = sub
	}
}

// WithSpeaker enables the word-completion speech cue.
func WithSpeaker(sp Speaker) Option {
	return func(s *Scorer) {
		s.speaker = sp
	}
}

// NewScorer creates an idle Scorer.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{
		now: time.Now,
		log: logger.Default().WithPrefix("session"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetChallenge loads the text to match and resets any session in progress.
func (s *Scorer) SetChallenge(c models.Challenge) {
	s.challenge = &c
	s.target = []rune(c.Text)
	s.Reset()
}

// Challenge returns the loaded challenge, or nil.
func (s *Scorer) Challenge() *models.Challenge {
	return s.challenge
}

// Start begins a session. It is a no-op without a loaded challenge.
func (s *Scorer) Start() {
	if s.challenge == nil {
		return
	}
	s.started = true
	s.finished = false
	s.startTime = s.now()
	s.endTime = time.Time{}
	s.typed = nil
	s.wpm = 0
	s.accuracy = 0
	s.lastSpoken = 0
}

// Reset returns the scorer to idle, clearing all session fields. The loaded
// challenge is kept so a new session can start immediately.
func (s *Scorer) Reset() {
	s.started = false
	s.finished = false
	s.startTime = time.Time{}
	s.endTime = time.Time{}
	s.typed = nil
	s.wpm = 0
	s.accuracy = 0
	s.lastSpoken = 0
}

// UpdateInput recomputes the live metrics for the full typed text so far.
// It is a no-op before Start and after the session finished. Reaching the
// challenge length finishes the session, freezes the final metrics at that
// instant and dispatches the result exactly once, without blocking.
func (s *Scorer) UpdateInput(text string) {
	if s.challenge == nil || !s.started || s.finished {
		return
	}

	typed := []rune(text)
	s.speakCompletedWords(typed)

	finished := len(typed) >= len(s.target)
	nowT := s.now()
	if finished {
		s.endTime = nowT
	}

	end := nowT
	if finished {
		end = s.endTime
	}
	elapsed := end.Sub(s.startTime)

	s.typed = typed
	s.wpm = WPM(len(typed), elapsed)
	s.accuracy = Accuracy(typed, s.target)
	s.finished = finished

	if finished {
		result := models.GameResult{
			WPM:         float64(s.wpm),
			Accuracy:    float64(s.accuracy),
			TimeMs:      elapsed.Milliseconds(),
			ChallengeID: s.challenge.ID,
		}
		s.dispatch(result)
	}
}

// dispatch sends the result at most once, fire and forget. Failures are
// logged and dropped, never retried.
func (s *Scorer) dispatch(result models.GameResult) {
	if s.submitter == nil {
		return
	}
	log := s.log
	sub := s.submitter
	go func() {
		if err := sub.SubmitResult(context.Background(), result); err != nil {
			log.Warn("failed to submit score: %v", err)
		}
	}()
}

// speakCompletedWords voices a word newly completed since the last cue. The
// cue is a side effect only: it never touches the metrics, and it is skipped
// entirely when muted or no speaker is configured.
func (s *Scorer) speakCompletedWords(typed []rune) {
	if s.speaker == nil || s.muted || len(typed) <= s.lastSpoken {
		return
	}
	suffix := string(typed[s.lastSpoken:])
	m := wordBoundaryRe.FindStringSubmatchIndex(suffix)
	if m == nil {
		return
	}
	word := suffix[m[2]:m[3]]
	if word == "" {
		return
	}
	s.speaker.Speak(word)
	s.lastSpoken += len([]rune(suffix[:m[1]]))
}

// SetMuted toggles the speech cue.
func (s *Scorer) SetMuted(muted bool) {
	s.muted = muted
}

// Muted reports whether the speech cue is off.
func (s *Scorer) Muted() bool {
	return s.muted
}

// Started reports whether a session is running or finished.
func (s *Scorer) Started() bool {
	return s.started
}

// Finished reports whether the session completed.
func (s *Scorer) Finished() bool {
	return s.finished
}

// Typed returns the text typed so far.
func (s *Scorer) Typed() []rune {
	return s.typed
}

// WPM returns the last computed words-per-minute.
func (s *Scorer) WPM() int {
	return s.wpm
}

// Accuracy returns the last computed accuracy percentage.
func (s *Scorer) Accuracy() int {
	return s.accuracy
}

// Elapsed returns the session duration so far, frozen once finished.
func (s *Scorer) Elapsed() time.Duration {
	if !s.started || s.startTime.IsZero() {
		return 0
	}
	if s.finished && !s.endTime.IsZero() {
		return s.endTime.Sub(s.startTime)
	}
	return s.now().Sub(s.startTime)
}

// Accuracy is the percentage of typed positions matching the target,
// rounded. Empty input scores zero rather than dividing by zero.
func Accuracy(typed, target []rune) int {
	if len(typed) == 0 {
		return 0
	}
	correct := 0
	for i, r := range typed {
		if i < len(target) && r == target[i] {
			correct++
		}
	}
	return int(math.Round(100 * float64(correct) / float64(len(typed))))
}

// WPM converts typed characters over an elapsed duration to words per
// minute using the standard five-characters-per-word convention. A zero or
// negative elapsed time scores zero, never a division error.
func WPM(chars int, elapsed time.Duration) int {
	minutes := elapsed.Minutes()
	if minutes <= 0 {
		return 0
	}
	words := float64(chars) / 5
	return int(math.Round(words / minutes))
}
