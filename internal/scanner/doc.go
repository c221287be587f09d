// Package scanner orchestrates the full buzz-to-clip pipeline.
//
// One Scan cycle walks every configured channel: recent videos are scored
// against the channel's historical views-per-hour baseline, qualifying
// videos are downloaded and searched for audio peaks, and the strongest
// moments become vertical clips queued for human review. Failures are
// isolated at the video and moment level so one broken download never
// aborts a cycle; only configuration errors do.
//
// The scanner owns nothing durable itself. Videos, snapshots, the moment
// registry, the publish queue, and the scan journal all live in their own
// store packages and are injected through Deps.
package scanner
