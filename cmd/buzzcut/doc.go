// Command buzzcut is the operator CLI for the buzz-to-clip pipeline.
//
// One-shot scans, queue inspection, clip moderation, and the long-running
// scan daemon all hang off this binary. Every command loads the same TOML
// configuration; pass --config to point at a non-default file.
package main
