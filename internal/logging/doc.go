// Package logging builds the application's slog loggers.
//
// Two output formats are supported: a single-line console format where a
// component attribute becomes the message prefix, and standard JSON. The
// package also carries the shared structured-field names (video_id, scan_id,
// stage, ...) so every subsystem logs with the same vocabulary, helpers to
// derive those fields from a context, and a retention sweep for old log
// files.
package logging
