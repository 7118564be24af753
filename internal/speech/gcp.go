package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/googleapis/gax-go/v2"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// gcpClient is the slice of the GCP TTS client used here, so tests can mock
// it.
type gcpClient interface {
	ListVoices(ctx context.Context, req *texttospeechpb.ListVoicesRequest, opts ...gax.CallOption) (*texttospeechpb.ListVoicesResponse, error)
	SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest, opts ...gax.CallOption) (*texttospeechpb.SynthesizeSpeechResponse, error)
	Close() error
}

// GCPProvider previews announcements through Google Cloud Text-to-Speech.
type GCPProvider struct {
	client   gcpClient
	voice    string
	language string
}

// GCPOption configures a GCPProvider.
type GCPOption func(*GCPProvider)

// WithGCPVoice sets the default voice name.
func WithGCPVoice(voice string) GCPOption {
	return func(p *GCPProvider) {
		p.voice = voice
	}
}

// WithGCPLanguage sets the default language tag.
func WithGCPLanguage(lang string) GCPOption {
	return func(p *GCPProvider) {
		p.language = lang
	}
}

// NewGCPProvider creates the provider. Authentication comes from
// GOOGLE_APPLICATION_CREDENTIALS or Application Default Credentials.
func NewGCPProvider(ctx context.Context, opts ...GCPOption) (*GCPProvider, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCP TTS client: %w", err)
	}

	p := &GCPProvider{
		client:   client,
		language: "en",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Name returns the provider name.
func (p *GCPProvider) Name() string {
	return "gcp"
}

// ListVoices returns GCP voices serving the given language tag.
func (p *GCPProvider) ListVoices(ctx context.Context, langTag string) ([]Voice, error) {
	resp, err := p.client.ListVoices(ctx, &texttospeechpb.ListVoicesRequest{LanguageCode: langTag})
	if err != nil {
		return nil, fmt.Errorf("failed to list GCP voices: %w", err)
	}

	var voices []Voice
	for _, v := range resp.Voices {
		for _, code := range v.LanguageCodes {
			if !matchesLanguage(code, langTag) {
				continue
			}
			gender := "unknown"
			switch v.SsmlGender {
			case texttospeechpb.SsmlVoiceGender_MALE:
				gender = "male"
			case texttospeechpb.SsmlVoiceGender_FEMALE:
				gender = "female"
			case texttospeechpb.SsmlVoiceGender_NEUTRAL:
				gender = "neutral"
			}
			voices = append(voices, Voice{
				ID:          v.Name,
				Name:        v.Name,
				Language:    code,
				Gender:      gender,
				Description: fmt.Sprintf("%s voice (%s)", engineClass(v.Name), strings.Join(v.LanguageCodes, ", ")),
			})
		}
	}

	log.Debug().Int("count", len(voices)).Str("language", langTag).Msg("Listed GCP TTS voices")
	return voices, nil
}

// engineClass derives the engine family from a GCP voice name.
func engineClass(voiceName string) string {
	name := strings.ToLower(voiceName)
	switch {
	case strings.Contains(name, "wavenet"):
		return "WaveNet"
	case strings.Contains(name, "neural2"):
		return "Neural2"
	case strings.Contains(name, "studio"):
		return "Studio"
	case strings.Contains(name, "polyglot"):
		return "Polyglot"
	case strings.Contains(name, "news"):
		return "News"
	case strings.Contains(name, "casual"):
		return "Casual"
	default:
		return "Standard"
	}
}

// Synthesize renders announcement text via GCP TTS.
func (p *GCPProvider) Synthesize(ctx context.Context, text string, opts Options) (io.ReadCloser, error) {
	if text == "" {
		return nil, fmt.Errorf("announcement text cannot be empty")
	}

	voice := p.voice
	if opts.Voice != "" {
		voice = opts.Voice
	}
	lang := p.language
	if opts.Language != "" {
		lang = opts.Language
	} else if parts := strings.Split(voice, "-"); len(parts) >= 2 && voice != "" {
		// Voice names embed their language, e.g. ro-RO-Wavenet-A.
		lang = parts[0] + "-" + parts[1]
	}

	speed := opts.Speed
	if speed <= 0 {
		speed = 1.0
	}

	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: lang,
			Name:         voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: gcpAudioEncoding(opts.Format),
			SpeakingRate:  speed,
		},
	}

	log.Debug().
		Str("voice", voice).
		Str("language", lang).
		Str("format", opts.Format).
		Float64("speed", speed).
		Msg("Making GCP TTS synthesis request")

	resp, err := p.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		if status.Code(err) == codes.InvalidArgument {
			return nil, fmt.Errorf("voice %q rejected for language %s: %w", voice, lang, err)
		}
		return nil, fmt.Errorf("failed to synthesize announcement: %w", err)
	}

	return io.NopCloser(bytes.NewReader(resp.AudioContent)), nil
}

func gcpAudioEncoding(format string) texttospeechpb.AudioEncoding {
	switch strings.ToLower(format) {
	case "wav", "linear16":
		return texttospeechpb.AudioEncoding_LINEAR16
	case "ogg", "ogg_opus":
		return texttospeechpb.AudioEncoding_OGG_OPUS
	default:
		return texttospeechpb.AudioEncoding_MP3
	}
}

// IsAvailable checks whether GCP TTS responds.
func (p *GCPProvider) IsAvailable(ctx context.Context) bool {
	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := p.client.ListVoices(checkCtx, &texttospeechpb.ListVoicesRequest{})
	return err == nil
}

// Close releases the underlying client connection.
func (p *GCPProvider) Close() error {
	return p.client.Close()
}
