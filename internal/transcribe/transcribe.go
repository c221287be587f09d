// Package transcribe produces SRT subtitles for a clip through an external
// whisper-style CLI. The scanner only sees the Service interface; rendering
// keeps working with the noop implementation when no transcriber is
// installed.
package transcribe

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"buzzcut/internal/services"
)

// Service turns a video or audio file into an SRT document on disk.
type Service interface {
	// Transcribe writes subtitles for mediaPath to srtPath. A nil error
	// with a missing file means the implementation produced nothing.
	Transcribe(ctx context.Context, mediaPath, srtPath string) error

	// Available reports whether the backing tool can run at all.
	Available() bool
}

// CLI shells out to a whisper-compatible binary that accepts an input file
// and writes <basename>.srt into an output directory.
type CLI struct {
	Binary   string
	Model    string
	Language string

	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewCLI returns a transcriber using the given binary. Model defaults to
// "base", the fast variant the pipeline was tuned with.
func NewCLI(binary, model, language string) *CLI {
	if model == "" {
		model = "base"
	}
	return &CLI{Binary: binary, Model: model, Language: language}
}

// WithCommandRunner sets a custom command runner (for testing).
func (c *CLI) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	c.commandRunner = runner
}

// Available reports whether the binary resolves on PATH.
func (c *CLI) Available() bool {
	if c.Binary == "" {
		return false
	}
	_, err := exec.LookPath(c.Binary)
	return err == nil
}

// Transcribe runs the CLI and moves its SRT output to srtPath.
func (c *CLI) Transcribe(ctx context.Context, mediaPath, srtPath string) error {
	if mediaPath == "" {
		return services.Wrap(services.ErrValidation, "transcribe", "run", "media path required", nil)
	}
	outputDir := filepath.Dir(srtPath)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return services.Wrap(services.ErrTransient, "transcribe", "run", "ensure output dir", err)
	}

	args := c.buildArgs(mediaPath, outputDir)
	if err := c.run(ctx, c.Binary, args...); err != nil {
		return services.Wrap(services.ErrExternalTool, "transcribe", "run", "", err)
	}

	// The CLI names its output after the input file.
	produced := filepath.Join(outputDir,
		strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))+".srt")
	if produced == srtPath {
		return nil
	}
	if err := os.Rename(produced, srtPath); err != nil {
		return services.Wrap(services.ErrExternalTool, "transcribe", "collect", "srt not produced", err)
	}
	return nil
}

func (c *CLI) buildArgs(mediaPath, outputDir string) []string {
	args := []string{
		mediaPath,
		"--model", c.Model,
		"--output_format", "srt",
		"--output_dir", outputDir,
	}
	if c.Language != "" {
		args = append(args, "--language", c.Language)
	}
	return args
}

func (c *CLI) run(ctx context.Context, name string, args ...string) error {
	if c.commandRunner != nil {
		return c.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Noop satisfies Service without producing subtitles. Clips rendered with
// it skip the burn-in pass.
type Noop struct{}

func (Noop) Transcribe(context.Context, string, string) error { return nil }
func (Noop) Available() bool                                  { return false }
