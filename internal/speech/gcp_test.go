package speech

import (
	"context"
	"io"
	"testing"

	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/googleapis/gax-go/v2"
)

// mockGCPClient mocks the GCP TTS client
type mockGCPClient struct {
	mock.Mock
}

func (m *mockGCPClient) ListVoices(ctx context.Context, req *texttospeechpb.ListVoicesRequest, opts ...gax.CallOption) (*texttospeechpb.ListVoicesResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*texttospeechpb.ListVoicesResponse), args.Error(1)
}

func (m *mockGCPClient) SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest, opts ...gax.CallOption) (*texttospeechpb.SynthesizeSpeechResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*texttospeechpb.SynthesizeSpeechResponse), args.Error(1)
}

func (m *mockGCPClient) Close() error {
	return nil
}

func TestGCPProvider_Name(t *testing.T) {
	p := &GCPProvider{}
	assert.Equal(t, "gcp", p.Name())
}

func TestEngineClass(t *testing.T) {
	tests := []struct {
		voiceName string
		expected  string
	}{
		{"ro-RO-Wavenet-A", "WaveNet"},
		{"en-US-Neural2-B", "Neural2"},
		{"en-US-Studio-A", "Studio"},
		{"ro-RO-Standard-A", "Standard"},
		{"unknown-voice", "Standard"},
	}
	for _, tt := range tests {
		t.Run(tt.voiceName, func(t *testing.T) {
			assert.Equal(t, tt.expected, engineClass(tt.voiceName))
		})
	}
}

func TestGCPProvider_ListVoices_FiltersLanguage(t *testing.T) {
	client := new(mockGCPClient)
	client.On("ListVoices", mock.Anything, mock.Anything).Return(&texttospeechpb.ListVoicesResponse{
		Voices: []*texttospeechpb.Voice{
			{Name: "ro-RO-Wavenet-A", LanguageCodes: []string{"ro-RO"}, SsmlGender: texttospeechpb.SsmlVoiceGender_FEMALE},
			{Name: "en-US-Neural2-B", LanguageCodes: []string{"en-US"}, SsmlGender: texttospeechpb.SsmlVoiceGender_MALE},
		},
	}, nil)

	p := &GCPProvider{client: client}
	voices, err := p.ListVoices(context.Background(), "ro")
	require.NoError(t, err)

	require.Len(t, voices, 1)
	assert.Equal(t, "ro-RO-Wavenet-A", voices[0].ID)
	assert.Equal(t, "female", voices[0].Gender)
	assert.Contains(t, voices[0].Description, "WaveNet")
}

func TestGCPProvider_Synthesize(t *testing.T) {
	client := new(mockGCPClient)
	client.On("SynthesizeSpeech", mock.Anything, mock.MatchedBy(func(req *texttospeechpb.SynthesizeSpeechRequest) bool {
		// Language is derived from the voice name.
		return req.Voice.LanguageCode == "ro-RO" &&
			req.Input.GetText() == "virgulă pentru zecimale"
	})).Return(&texttospeechpb.SynthesizeSpeechResponse{AudioContent: []byte("audio")}, nil)

	p := &GCPProvider{client: client, language: "en"}
	stream, err := p.Synthesize(context.Background(), "virgulă pentru zecimale", Options{Voice: "ro-RO-Wavenet-A"})
	require.NoError(t, err)
	defer func() {
		_ = stream.Close()
	}()

	data, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, []byte("audio"), data)
}

func TestGCPProvider_Synthesize_EmptyText(t *testing.T) {
	p := &GCPProvider{client: new(mockGCPClient)}
	_, err := p.Synthesize(context.Background(), "", Options{})
	assert.Error(t, err)
}

func TestGCPAudioEncoding(t *testing.T) {
	assert.Equal(t, texttospeechpb.AudioEncoding_MP3, gcpAudioEncoding(""))
	assert.Equal(t, texttospeechpb.AudioEncoding_LINEAR16, gcpAudioEncoding("wav"))
	assert.Equal(t, texttospeechpb.AudioEncoding_OGG_OPUS, gcpAudioEncoding("ogg"))
}
