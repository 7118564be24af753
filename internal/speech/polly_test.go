package speech

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockPollyClient mocks the Polly client
type mockPollyClient struct {
	mock.Mock
}

func (m *mockPollyClient) DescribeVoices(ctx context.Context, params *polly.DescribeVoicesInput, optFns ...func(*polly.Options)) (*polly.DescribeVoicesOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*polly.DescribeVoicesOutput), args.Error(1)
}

func (m *mockPollyClient) SynthesizeSpeech(ctx context.Context, params *polly.SynthesizeSpeechInput, optFns ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*polly.SynthesizeSpeechOutput), args.Error(1)
}

func TestPollyProvider_Name(t *testing.T) {
	p := &PollyProvider{}
	assert.Equal(t, "polly", p.Name())
}

func TestPollyProvider_ListVoices_FiltersLanguage(t *testing.T) {
	client := new(mockPollyClient)
	client.On("DescribeVoices", mock.Anything, mock.Anything).Return(&polly.DescribeVoicesOutput{
		Voices: []types.Voice{
			{
				Id:               types.VoiceIdCarmen,
				Name:             aws.String("Carmen"),
				LanguageCode:     types.LanguageCodeRoRo,
				Gender:           types.GenderFemale,
				SupportedEngines: []types.Engine{types.EngineStandard},
			},
			{
				Id:               types.VoiceIdJoanna,
				Name:             aws.String("Joanna"),
				LanguageCode:     types.LanguageCodeEnUs,
				Gender:           types.GenderFemale,
				SupportedEngines: []types.Engine{types.EngineNeural},
			},
		},
	}, nil)

	p := &PollyProvider{client: client}
	voices, err := p.ListVoices(context.Background(), "ro")
	require.NoError(t, err)

	require.Len(t, voices, 1)
	assert.Equal(t, "Carmen", voices[0].Name)
	assert.Equal(t, "female", voices[0].Gender)
	assert.Contains(t, voices[0].Description, "Female voice")
}

func TestPollyProvider_Synthesize(t *testing.T) {
	client := new(mockPollyClient)
	client.On("SynthesizeSpeech", mock.Anything, mock.MatchedBy(func(in *polly.SynthesizeSpeechInput) bool {
		return aws.ToString(in.Text) == "semn de exclamare" &&
			in.VoiceId == types.VoiceId("Carmen") &&
			in.OutputFormat == types.OutputFormatMp3
	})).Return(&polly.SynthesizeSpeechOutput{
		AudioStream: io.NopCloser(strings.NewReader("audio")),
		ContentType: aws.String("audio/mpeg"),
	}, nil)

	p := &PollyProvider{client: client}
	stream, err := p.Synthesize(context.Background(), "semn de exclamare", Options{Voice: "Carmen"})
	require.NoError(t, err)

	data, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, "audio", string(data))
}

func TestPollyProvider_Synthesize_BadFormat(t *testing.T) {
	p := &PollyProvider{client: new(mockPollyClient)}
	_, err := p.Synthesize(context.Background(), "text", Options{Format: "flac"})
	assert.Error(t, err)
}

func TestLanguageTag(t *testing.T) {
	tests := []struct {
		locale   string
		expected string
	}{
		{"ro", "ro"},
		{"sr_BA", "sr-BA"},
		{"zh_TW", "zh-TW"},
		{"base", "en"},
		{"", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			tag, err := LanguageTag(tt.locale)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tag)
		})
	}

	_, err := LanguageTag("!!")
	assert.Error(t, err)
}

func TestNewProvider_Unknown(t *testing.T) {
	_, err := NewProvider(context.Background(), "espeak", "", "", "")
	assert.Error(t, err)
}
