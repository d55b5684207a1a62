package ai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/johnquangdev/video-chat/internal/domain/entities"
	"github.com/johnquangdev/video-chat/pkg/config"
)

// WhisperTranscriber transcribes through an OpenAI-compatible /audio/transcriptions endpoint
type WhisperTranscriber struct {
	client   *openai.Client
	model    string
	language string
}

// NewWhisperTranscriber creates a hosted Whisper transcriber
func NewWhisperTranscriber(cfg config.TranscriptionConfig) *WhisperTranscriber {
	model := cfg.OpenAIModel
	if model == "" {
		model = openai.Whisper1
	}
	return &WhisperTranscriber{
		client:   newOpenAIClient(cfg.OpenAIKey, cfg.OpenAIBaseURL),
		model:    model,
		language: cfg.Language,
	}
}

// Transcribe uploads the audio file and returns its timestamped segments
func (w *WhisperTranscriber) Transcribe(ctx context.Context, audioPath string) (*entities.Transcript, error) {
	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		FilePath: audioPath,
		Format:   openai.AudioResponseFormatVerboseJSON,
		Language: w.language,
	})
	if err != nil {
		return nil, describeAPIError("transcription", err)
	}

	out := &entities.Transcript{
		Text:            strings.TrimSpace(resp.Text),
		Language:        resp.Language,
		DurationSeconds: resp.Duration,
		ModelUsed:       w.model,
		Segments:        make([]entities.TranscriptSegment, 0, len(resp.Segments)),
	}
	for _, s := range resp.Segments {
		// text keeps its leading space so chunks concatenate cleanly
		out.Segments = append(out.Segments, entities.TranscriptSegment{
			Start: s.Start,
			End:   s.End,
			Text:  s.Text,
		})
	}
	if len(out.Segments) == 0 && out.Text != "" {
		return nil, fmt.Errorf("transcription: response has text but no segments, is the host returning verbose_json?")
	}
	return out, nil
}
