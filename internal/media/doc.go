// Package media drives ffmpeg for the three transformations the clip
// pipeline needs: pulling a mono analysis track out of a video, cutting a
// centred vertical clip, and burning subtitles into the final render.
package media
