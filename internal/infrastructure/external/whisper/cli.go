package whisper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/video-chat/internal/domain/entities"
	"github.com/johnquangdev/video-chat/internal/usecase/segment"
	"github.com/johnquangdev/video-chat/pkg/config"
)

// CLITranscriber runs the openai-whisper command line tool on local files
type CLITranscriber struct {
	binary   string
	model    string
	language string
	logger   *zap.Logger
}

// NewCLITranscriber creates a local whisper transcriber
func NewCLITranscriber(cfg config.TranscriptionConfig, logger *zap.Logger) *CLITranscriber {
	binary := cfg.WhisperBinary
	if binary == "" {
		binary = "whisper"
	}
	model := cfg.WhisperModel
	if model == "" {
		model = "base"
	}
	return &CLITranscriber{binary: binary, model: model, language: cfg.Language, logger: logger}
}

// Transcribe runs whisper with JSON output and parses its segments
func (c *CLITranscriber) Transcribe(ctx context.Context, audioPath string) (*entities.Transcript, error) {
	outDir, err := os.MkdirTemp("", "whisper-")
	if err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	args := []string{audioPath,
		"--model", c.model,
		"--output_format", "json",
		"--output_dir", outDir,
		"--verbose", "False",
	}
	if c.language != "" {
		args = append(args, "--language", c.language)
	}
	cmd := exec.CommandContext(ctx, c.binary, args...)

	if c.logger != nil {
		c.logger.Debug("executing whisper command", zap.Strings("args", cmd.Args))
	}

	if _, err := cmd.Output(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("whisper failed: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("whisper execution failed: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	data, err := os.ReadFile(filepath.Join(outDir, base+".json"))
	if err != nil {
		return nil, fmt.Errorf("read whisper output: %w", err)
	}

	segments, err := segment.Decode(data)
	if err != nil {
		return nil, err
	}

	var meta struct {
		Text     string `json:"text"`
		Language string `json:"language"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse whisper output: %w", err)
	}

	out := &entities.Transcript{
		Text:      strings.TrimSpace(meta.Text),
		Language:  meta.Language,
		Segments:  segments,
		ModelUsed: "whisper-" + c.model,
	}
	if n := len(segments); n > 0 {
		out.DurationSeconds = segments[n-1].End
	}
	return out, nil
}
