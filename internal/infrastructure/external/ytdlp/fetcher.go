package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/video-chat/internal/domain/entities"
	"github.com/johnquangdev/video-chat/pkg/config"
)

// Fetcher downloads the audio track of a video with yt-dlp
type Fetcher struct {
	binary    string
	outputDir string
	format    string
	logger    *zap.Logger
}

// NewFetcher creates a yt-dlp backed fetcher
func NewFetcher(cfg config.FetcherConfig, logger *zap.Logger) *Fetcher {
	binary := cfg.Binary
	if binary == "" {
		binary = "yt-dlp"
	}
	format := cfg.Format
	if format == "" {
		format = "bestaudio[ext=webm][abr<=160]/bestaudio"
	}
	dir := cfg.OutputDir
	if dir == "" {
		dir = os.TempDir()
	}
	return &Fetcher{binary: binary, outputDir: dir, format: format, logger: logger}
}

// ValidateURL accepts absolute http(s) URLs only
func ValidateURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", entities.ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme must be http or https", entities.ErrInvalidURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", entities.ErrInvalidURL)
	}
	return nil
}

// Fetch downloads the audio-only stream of rawURL and returns the local file path.
// The caller owns the returned file.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if err := ValidateURL(rawURL); err != nil {
		return "", err
	}
	if err := os.MkdirAll(f.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	// unique prefix so concurrent sessions fetching the same video do not collide
	tmpl := filepath.Join(f.outputDir, uuid.NewString()+"-%(id)s.%(ext)s")
	cmd := exec.CommandContext(ctx, f.binary,
		"-f", f.format,
		"--no-playlist",
		"--no-progress",
		"--no-simulate",
		"--print", "after_move:filepath",
		"-o", tmpl,
		strings.TrimSpace(rawURL),
	)

	if f.logger != nil {
		f.logger.Debug("executing yt-dlp", zap.Strings("args", cmd.Args))
	}

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("yt-dlp failed: %s", lastLine(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("run yt-dlp: %w", err)
	}

	path := lastLine(string(out))
	if path == "" {
		return "", errors.New("yt-dlp did not report an output file")
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("downloaded file: %w", err)
	}

	if f.logger != nil {
		f.logger.Info("🎵 Audio downloaded", zap.String("url", rawURL), zap.String("path", path))
	}
	return path, nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
