// Package catalog talks to the YouTube Data API v3. It resolves channel
// names to IDs, lists a channel's recent uploads, and fetches per-video
// statistics. An absent video or channel is a nil result, not an error;
// only transport and quota failures surface as errors.
package catalog
