package speech

import (
	"context"
	"fmt"
)

// NewProvider creates a preview provider by name.
func NewProvider(ctx context.Context, name, region, voice, langTag string) (Provider, error) {
	switch name {
	case "gcp":
		opts := []GCPOption{}
		if voice != "" {
			opts = append(opts, WithGCPVoice(voice))
		}
		if langTag != "" {
			opts = append(opts, WithGCPLanguage(langTag))
		}
		return NewGCPProvider(ctx, opts...)
	case "polly":
		return NewPollyProvider(region)
	}
	return nil, fmt.Errorf("unknown provider %q (want gcp or polly)", name)
}

// Providers lists the available provider names.
func Providers() []string {
	return []string{"gcp", "polly"}
}
