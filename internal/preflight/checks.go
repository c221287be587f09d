package preflight

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"buzzcut/internal/config"
	"buzzcut/internal/deps"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckStorageSpace verifies the filesystem behind path has at least minBytes free.
func CheckStorageSpace(name, path string, minBytes uint64) Result {
	space, err := deps.CheckDiskSpace(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	freeGiB := float64(space.FreeBytes) / (1 << 30)
	if space.FreeBytes < minBytes {
		return Result{Name: name, Detail: fmt.Sprintf("%.1f GiB free, need %.1f GiB", freeGiB, float64(minBytes)/(1<<30))}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%.1f GiB free", freeGiB)}
}

// CheckYouTubeAPI verifies that the Data API is reachable and the key is accepted.
// It issues a minimal videos lookup with a 5-second timeout.
func CheckYouTubeAPI(ctx context.Context, baseURL, apiKey string) Result {
	const name = "YouTube API"

	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return Result{Name: name, Detail: "missing base url"}
	}
	if strings.TrimSpace(apiKey) == "" {
		return Result{Name: name, Detail: "missing api key"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	params := url.Values{}
	params.Set("part", "id")
	params.Set("id", "jNQXAC9IVRw")
	params.Set("key", strings.TrimSpace(apiKey))

	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, base+"/videos?"+params.Encode(), nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("api check failed (%v)", err)}
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("api check failed (%v)", err)}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return Result{Name: name, Passed: true, Detail: "API reachable"}
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusBadRequest:
		return Result{Name: name, Detail: "auth failed (invalid api key or quota exceeded)"}
	default:
		return Result{Name: name, Detail: fmt.Sprintf("api check failed (%d)", resp.StatusCode)}
	}
}

// CheckSystemDeps evaluates all system-level dependencies for the given config.
// Both the daemon and the CLI status command use this to avoid duplicating
// the requirements list.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	tools := []deps.Tool{
		{
			Name:    "FFmpeg",
			Command: cfg.Tools.FFmpeg,
			Purpose: "audio extraction and clip rendering",
		},
		{
			Name:    "FFprobe",
			Command: cfg.Tools.FFprobe,
			Purpose: "media inspection",
		},
		{
			Name:    "yt-dlp",
			Command: cfg.Tools.YtDlp,
			Purpose: "video downloads",
		},
	}
	if cfg.Transcribe.Enabled {
		tools = append(tools, deps.Tool{
			Name:    "Whisper",
			Command: cfg.Transcribe.Binary,
			Purpose: "subtitle transcription",
		})
	}
	return deps.CheckTools(tools...)
}
