package ai

import (
	"context"
	"fmt"
	"os"
	"strings"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"go.uber.org/zap"

	"github.com/johnquangdev/video-chat/internal/domain/entities"
	"github.com/johnquangdev/video-chat/pkg/config"
)

// AssemblyAITranscriber transcribes local audio files with the AssemblyAI SDK
type AssemblyAITranscriber struct {
	client   *aai.Client
	language string
	logger   *zap.Logger
}

// NewAssemblyAITranscriber creates a transcriber using the provided config.
// If the key is empty, falls back to the ASSEMBLYAI_API_KEY environment variable.
func NewAssemblyAITranscriber(cfg config.TranscriptionConfig, logger *zap.Logger) *AssemblyAITranscriber {
	apiKey := cfg.AssemblyAIKey
	if apiKey == "" {
		apiKey = os.Getenv("ASSEMBLYAI_API_KEY")
	}
	return &AssemblyAITranscriber{
		client:   aai.NewClient(apiKey),
		language: cfg.Language,
		logger:   logger,
	}
}

// Transcribe uploads the file and waits for the transcript
func (t *AssemblyAITranscriber) Transcribe(ctx context.Context, audioPath string) (*entities.Transcript, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	if t.logger != nil {
		t.logger.Info("📤 Uploading file to AssemblyAI", zap.String("path", audioPath))
	}

	uploadURL, err := t.client.Upload(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to upload to AssemblyAI: %w", err)
	}

	params := &aai.TranscriptOptionalParams{}
	if t.language != "" {
		params.LanguageCode = aai.TranscriptLanguageCode(t.language)
	}

	transcript, err := t.client.Transcripts.TranscribeFromURL(ctx, uploadURL, params)
	if err != nil {
		return nil, fmt.Errorf("AssemblyAI transcription failed: %w", err)
	}
	if transcript.Status == aai.TranscriptStatusError {
		msg := "unknown error"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return nil, fmt.Errorf("AssemblyAI error: %s", msg)
	}

	out := transcriptFromAssemblyAI(transcript)
	if t.logger != nil {
		t.logger.Info("✅ AssemblyAI transcript received",
			zap.Int("segment_count", len(out.Segments)),
			zap.String("language", out.Language),
		)
	}
	return out, nil
}

func transcriptFromAssemblyAI(transcript aai.Transcript) *entities.Transcript {
	out := &entities.Transcript{ModelUsed: "assemblyai"}
	if transcript.Text != nil {
		out.Text = *transcript.Text
	}
	if transcript.LanguageCode != "" {
		out.Language = string(transcript.LanguageCode)
	}
	if transcript.AudioDuration != nil {
		out.DurationSeconds = float64(*transcript.AudioDuration)
	}

	// Words carry millisecond timestamps; fold them into sentences
	var (
		current []string
		seg     entities.TranscriptSegment
	)
	flush := func() {
		if len(current) == 0 {
			return
		}
		seg.Text = strings.Join(current, " ")
		if len(out.Segments) > 0 {
			seg.Text = " " + seg.Text
		}
		out.Segments = append(out.Segments, seg)
		current = nil
		seg = entities.TranscriptSegment{}
	}
	for _, w := range transcript.Words {
		if w.Text == nil {
			continue
		}
		if len(current) == 0 && w.Start != nil {
			seg.Start = float64(*w.Start) / 1000.0
		}
		if w.End != nil {
			seg.End = float64(*w.End) / 1000.0
		}
		current = append(current, *w.Text)
		if endsSentence(*w.Text) {
			flush()
		}
	}
	flush()

	if len(out.Segments) == 0 && strings.TrimSpace(out.Text) != "" {
		out.Segments = []entities.TranscriptSegment{{Start: 0, End: out.DurationSeconds, Text: out.Text}}
	}
	return out
}

func endsSentence(word string) bool {
	return strings.HasSuffix(word, ".") || strings.HasSuffix(word, "?") || strings.HasSuffix(word, "!")
}
