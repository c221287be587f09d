// Package audio finds high-energy moments in a decoded mono audio track.
// Detection is plain RMS energy over fixed windows compared to the track
// mean, which makes it language-independent and fast enough to run on every
// scanned video.
package audio
