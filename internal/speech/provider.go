// Package speech synthesizes symbol announcements through cloud TTS
// providers, so dictionary authors can audition how a replacement rule will
// actually sound in a given locale.
package speech

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
)

// Provider is a cloud TTS backend used for announcement previews.
type Provider interface {
	// Name returns the provider name
	Name() string

	// ListVoices returns voices usable for the given BCP-47 language tag;
	// an empty tag lists everything
	ListVoices(ctx context.Context, langTag string) ([]Voice, error)

	// Synthesize renders the announcement text and returns an audio stream
	Synthesize(ctx context.Context, text string, opts Options) (io.ReadCloser, error)

	// IsAvailable checks whether the provider can currently be used
	IsAvailable(ctx context.Context) bool
}

// Voice describes one synthetic voice.
type Voice struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Language    string `json:"language"`
	Gender      string `json:"gender,omitempty"`
	Description string `json:"description,omitempty"`
}

// Options control a synthesis request.
type Options struct {
	Voice      string  `json:"voice,omitempty"`
	Language   string  `json:"language,omitempty"` // BCP-47 tag
	Format     string  `json:"format,omitempty"`   // mp3, wav, ogg
	Speed      float64 `json:"speed,omitempty"`    // multiplier, 0.25-4.0
	Engine     string  `json:"engine,omitempty"`   // provider-specific engine class
	SampleRate string  `json:"sampleRate,omitempty"`
}

// LanguageTag converts a locale directory name ("sr_BA", "zh_TW", "base")
// to a BCP-47 tag for voice selection. The base locale maps to English,
// matching the dictionary content it is generated from.
func LanguageTag(localeName string) (string, error) {
	if localeName == "" || localeName == "base" {
		return "en", nil
	}
	tag, err := language.Parse(strings.ReplaceAll(localeName, "_", "-"))
	if err != nil {
		return "", fmt.Errorf("locale %q has no usable language tag: %w", localeName, err)
	}
	return tag.String(), nil
}

// matchesLanguage reports whether a voice language code serves a requested
// tag, e.g. "ro-RO" serves "ro".
func matchesLanguage(voiceLang, langTag string) bool {
	if langTag == "" {
		return true
	}
	v := strings.ToLower(voiceLang)
	want := strings.ToLower(langTag)
	return v == want || strings.HasPrefix(v, want+"-")
}
