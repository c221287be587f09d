// Package services defines shared utilities consumed by the scan pipeline
// stages and external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp video IDs, stage names, and scan
//     correlation identifiers for logging and tracing.
//   - Structured error markers plus the Wrap helper that classify failures
//     (validation, external tool, transient) for the pipeline's isolation
//     rules.
//
// Use these helpers when wiring new stage logic so operational behaviour
// stays uniform across the pipeline.
package services
