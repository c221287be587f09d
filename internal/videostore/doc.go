// Package videostore persists what a scan observed: the append-only video
// catalog in videos.json and the bounded per-video view history in
// video_snapshots.json.
package videostore
