// Package notifications delivers pipeline events via ntfy push messages.
//
// The default implementation posts to the topic configured in config.toml and
// gracefully degrades to a no-op when no topic is set. Per-category toggles
// (scan, clips, review, errors) let operators silence noisy event classes
// without disabling notifications entirely.
//
// All pipeline code depends only on the Service interface, so alternative
// transports can be added without touching callers.
package notifications
