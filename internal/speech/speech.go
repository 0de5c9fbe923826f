// Package speech voices completed words through whatever TTS binary the
// host machine offers. Everything here is best effort: no binary, no cue.
package speech

import (
	"os/exec"

	"github.com/echokeys/echokeys/internal/logger"
)

// candidate TTS binaries, in preference order.
var candidates = []string{"say", "espeak", "espeak-ng"}

type Speaker struct {
	bin string
	log *logger.Logger
}

// New probes the host for a TTS binary. The returned Speaker is usable
// either way; an unsupported host just stays silent.
func New() *Speaker {
	s := &Speaker{log: logger.Default().WithPrefix("speech")}
	for _, bin := range candidates {
		if path, err := exec.LookPath(bin); err == nil {
			s.bin = path
			break
		}
	}
	if s.bin == "" {
		s.log.Debug("no TTS binary found, speech cues disabled")
	}
	return s
}

// Supported reports whether a TTS binary was found.
func (s *Speaker) Supported() bool {
	return s.bin != ""
}

// Speak voices a single word without waiting for it to finish. Failures are
// logged at debug level and otherwise ignored.
func (s *Speaker) Speak(word string) {
	if s.bin == "" || word == "" {
		return
	}
	cmd := exec.Command(s.bin, word)
	if err := cmd.Start(); err != nil {
		s.log.Debug("failed to speak %q: %v", word, err)
		return
	}
	go func() {
		_ = cmd.Wait()
	}()
}
