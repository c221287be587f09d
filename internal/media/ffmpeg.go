package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"buzzcut/internal/services"
)

// verticalCropFilter centres a 9:16 window on the source and scales it to
// the TikTok/Snap frame.
const verticalCropFilter = "crop=ih*9/16:ih:(iw-ih*9/16)/2:0,scale=1080:1920"

// Processor runs ffmpeg. The binary path comes from configuration so
// operators can pin a specific build.
type Processor struct {
	FFmpegBin string
}

// NewProcessor returns a processor using the given ffmpeg binary, or plain
// "ffmpeg" from PATH when empty.
func NewProcessor(ffmpegBin string) *Processor {
	if ffmpegBin == "" {
		ffmpegBin = "ffmpeg"
	}
	return &Processor{FFmpegBin: ffmpegBin}
}

// ExtractAudioArgs builds the argument list for the mono 16 kHz WAV
// extraction used by peak detection.
func ExtractAudioArgs(videoPath, wavPath string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", videoPath,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-f", "wav",
		wavPath,
	}
}

// CropVerticalArgs builds the argument list for cutting [startSec, endSec)
// out of the source and recropping it vertically.
func CropVerticalArgs(videoPath, outputPath string, startSec, endSec int) []string {
	duration := endSec - startSec
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-ss", strconv.Itoa(startSec),
		"-i", videoPath,
		"-t", strconv.Itoa(duration),
		"-vf", verticalCropFilter,
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "20",
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		"-c:a", "aac",
		"-b:a", "128k",
		outputPath,
	}
}

// RenderWithSubtitlesArgs builds the argument list for the final burn-in
// render. Timestamps are regenerated because the cropped intermediate can
// carry negative ones that break players.
func RenderWithSubtitlesArgs(videoPath, assPath, outputPath string) []string {
	assPath = filepath.ToSlash(assPath)
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-fflags", "+genpts",
		"-avoid_negative_ts", "make_zero",
		"-i", videoPath,
		"-vf", fmt.Sprintf("ass=filename='%s'", assPath),
		"-c:v", "libx264",
		"-profile:v", "high",
		"-level", "4.0",
		"-pix_fmt", "yuv420p",
		"-r", "30",
		"-g", "60",
		"-c:a", "aac",
		"-b:a", "128k",
		"-movflags", "+faststart",
		outputPath,
	}
}

// ExtractAudio writes the mono analysis track for a video to wavPath.
func (p *Processor) ExtractAudio(ctx context.Context, videoPath, wavPath string) error {
	if err := p.run(ctx, "extract audio", ExtractAudioArgs(videoPath, wavPath)); err != nil {
		return err
	}
	if _, err := os.Stat(wavPath); err != nil {
		return services.Wrap(services.ErrExternalTool, "audio", "extract", "wav not created", err)
	}
	return nil
}

// CropVertical cuts and recrops one clip window out of the source video.
func (p *Processor) CropVertical(ctx context.Context, videoPath, outputPath string, startSec, endSec int) error {
	if endSec <= startSec {
		return services.Wrap(services.ErrValidation, "clip", "crop",
			fmt.Sprintf("empty window %d..%d", startSec, endSec), nil)
	}
	return p.run(ctx, "crop clip", CropVerticalArgs(videoPath, outputPath, startSec, endSec))
}

// RenderWithSubtitles burns the ASS subtitle track into the clip.
func (p *Processor) RenderWithSubtitles(ctx context.Context, videoPath, assPath, outputPath string) error {
	return p.run(ctx, "render subtitles", RenderWithSubtitlesArgs(videoPath, assPath, outputPath))
}

func (p *Processor) run(ctx context.Context, op string, args []string) error {
	cmd := exec.CommandContext(ctx, p.FFmpegBin, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		detail := strings.TrimSpace(string(output))
		return services.Wrap(services.ErrExternalTool, "media", op, detail, err)
	}
	return nil
}
