// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// The scanner uses it to sanity-check downloaded videos before analysis:
// duration, presence of an audio stream, and frame dimensions.
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns a parsed Result
package ffprobe
