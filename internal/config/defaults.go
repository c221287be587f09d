package config

const (
	defaultStorageDir      = "~/.local/share/buzzcut/storage"
	defaultVideosDir       = "~/.local/share/buzzcut/storage/videos"
	defaultClipsDir        = "~/.local/share/buzzcut/storage/clips"
	defaultLogDir          = "~/.local/share/buzzcut/logs"
	defaultYouTubeBaseURL  = "https://www.googleapis.com/youtube/v3"
	defaultMaxVideos       = 10
	defaultScanInterval    = 60
	defaultReportTopN      = 5
	defaultSampleRate      = 16000
	defaultWindowSec       = 0.5
	defaultThresholdRatio  = 2.5
	defaultMinGapSeconds   = 30
	defaultClipPadding     = 25
	defaultMaxClips        = 5
	defaultBucketSeconds   = 10
	defaultAnomalyRatio    = 2.0
	defaultAboveAverage    = 1.3
	defaultPotentialFloor  = 1500.0
	defaultRequestTimeout  = 10
	defaultTranscribeModel = "base"
	defaultLanguage        = "fr"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultRetentionDays   = 60
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StorageDir: defaultStorageDir,
			VideosDir:  defaultVideosDir,
			ClipsDir:   defaultClipsDir,
			LogDir:     defaultLogDir,
		},
		YouTube: YouTube{
			BaseURL:             defaultYouTubeBaseURL,
			MaxVideosPerChannel: defaultMaxVideos,
		},
		Scan: Scan{
			IntervalMinutes: defaultScanInterval,
			ReportTopN:      defaultReportTopN,
		},
		Detection: Detection{
			SampleRate:            defaultSampleRate,
			WindowSec:             defaultWindowSec,
			ThresholdRatio:        defaultThresholdRatio,
			MinGapSeconds:         defaultMinGapSeconds,
			ClipPaddingSeconds:    defaultClipPadding,
			MaxClipsPerVideo:      defaultMaxClips,
			RegistryBucketSeconds: defaultBucketSeconds,
			AnomalyRatio:          defaultAnomalyRatio,
			AboveAverageRatio:     defaultAboveAverage,
			PotentialVPHFloor:     defaultPotentialFloor,
		},
		Publish: Publish{
			Platforms: []string{"tiktok", "snap"},
		},
		Notifications: Notifications{
			RequestTimeout: defaultRequestTimeout,
			Scan:           true,
			Clips:          true,
			Review:         true,
			Errors:         true,
		},
		Transcribe: Transcribe{
			Binary:   "whisper",
			Model:    defaultTranscribeModel,
			Language: defaultLanguage,
		},
		Tools: Tools{
			FFmpeg:  "ffmpeg",
			FFprobe: "ffprobe",
			YtDlp:   "yt-dlp",
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultRetentionDays,
		},
	}
}
