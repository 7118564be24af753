package speech

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// pollyClient is the slice of the Polly client used here, so tests can mock
// it.
type pollyClient interface {
	DescribeVoices(ctx context.Context, params *polly.DescribeVoicesInput, optFns ...func(*polly.Options)) (*polly.DescribeVoicesOutput, error)
	SynthesizeSpeech(ctx context.Context, params *polly.SynthesizeSpeechInput, optFns ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error)
}

// PollyProvider previews announcements through Amazon Polly.
type PollyProvider struct {
	client pollyClient
	region string
}

// NewPollyProvider creates the provider using the default AWS credential
// chain.
func NewPollyProvider(region string) (*PollyProvider, error) {
	if region == "" {
		region = "us-east-1"
	}
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &PollyProvider{
		client: polly.NewFromConfig(cfg),
		region: region,
	}, nil
}

// Name returns the provider name.
func (p *PollyProvider) Name() string {
	return "polly"
}

// ListVoices returns Polly voices serving the given language tag.
func (p *PollyProvider) ListVoices(ctx context.Context, langTag string) ([]Voice, error) {
	result, err := p.client.DescribeVoices(ctx, &polly.DescribeVoicesInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list Polly voices: %w", err)
	}

	voices := make([]Voice, 0, len(result.Voices))
	for _, v := range result.Voices {
		if !matchesLanguage(string(v.LanguageCode), langTag) {
			continue
		}
		voice := Voice{
			ID:       string(v.Id),
			Name:     aws.ToString(v.Name),
			Language: string(v.LanguageCode),
			Description: fmt.Sprintf("%s voice, %s engine supported",
				cases.Title(language.English).String(string(v.Gender)),
				supportedEngines(v.SupportedEngines)),
		}
		switch v.Gender {
		case types.GenderFemale:
			voice.Gender = "female"
		case types.GenderMale:
			voice.Gender = "male"
		}
		voices = append(voices, voice)
	}

	log.Debug().Int("count", len(voices)).Str("language", langTag).Msg("Listed Polly voices")
	return voices, nil
}

func supportedEngines(engines []types.Engine) string {
	if len(engines) == 0 {
		return "unknown"
	}
	names := make([]string, len(engines))
	for i, e := range engines {
		names[i] = string(e)
	}
	return strings.Join(names, "/")
}

// Synthesize renders announcement text via Amazon Polly.
func (p *PollyProvider) Synthesize(ctx context.Context, text string, opts Options) (io.ReadCloser, error) {
	if text == "" {
		return nil, fmt.Errorf("announcement text cannot be empty")
	}

	voiceID := opts.Voice
	if voiceID == "" {
		voiceID = "Joanna"
	}

	var format types.OutputFormat
	switch strings.ToLower(opts.Format) {
	case "", "mp3":
		format = types.OutputFormatMp3
	case "ogg":
		format = types.OutputFormatOggVorbis
	case "pcm", "wav":
		format = types.OutputFormatPcm
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", opts.Format)
	}

	engine := types.EngineNeural
	switch strings.ToLower(opts.Engine) {
	case "":
	case "standard":
		engine = types.EngineStandard
	case "neural":
		engine = types.EngineNeural
	case "long-form":
		engine = types.EngineLongForm
	case "generative":
		engine = types.EngineGenerative
	default:
		log.Warn().Str("engine", opts.Engine).Msg("Unknown engine, using neural")
	}

	input := &polly.SynthesizeSpeechInput{
		Text:         aws.String(text),
		TextType:     types.TextTypeText,
		VoiceId:      types.VoiceId(voiceID),
		OutputFormat: format,
		Engine:       engine,
	}
	if opts.Language != "" {
		input.LanguageCode = types.LanguageCode(opts.Language)
	}
	switch opts.SampleRate {
	case "":
	case "8000", "16000", "22050", "24000":
		input.SampleRate = aws.String(opts.SampleRate)
	default:
		log.Warn().Str("sample_rate", opts.SampleRate).Msg("Invalid sample rate, using default")
	}

	log.Debug().
		Str("voice_id", voiceID).
		Str("output_format", string(format)).
		Str("engine", string(engine)).
		Msg("Making Polly synthesis request")

	result, err := p.client.SynthesizeSpeech(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize announcement: %w", err)
	}
	return result.AudioStream, nil
}

// IsAvailable checks whether Polly responds.
func (p *PollyProvider) IsAvailable(ctx context.Context) bool {
	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := p.client.DescribeVoices(checkCtx, &polly.DescribeVoicesInput{})
	return err == nil
}
