// Package clips ranks detected audio moments into candidate clips. The clip
// score is an intra-video priority only; it has no meaning across videos.
package clips
