package preflight

import (
	"context"

	"buzzcut/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// minFreeBytes is the floor below which the storage check fails. Raw video
// downloads routinely run to several gigabytes each.
const minFreeBytes = 5 << 30

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Storage directory", cfg.Paths.StorageDir))
	results = append(results, CheckDirectoryAccess("Videos directory", cfg.Paths.VideosDir))
	results = append(results, CheckDirectoryAccess("Clips directory", cfg.Paths.ClipsDir))
	results = append(results, CheckStorageSpace("Free space", cfg.Paths.StorageDir, minFreeBytes))

	if cfg.YouTube.APIKey != "" {
		results = append(results, CheckYouTubeAPI(ctx, cfg.YouTube.BaseURL, cfg.YouTube.APIKey))
	}

	return results
}
