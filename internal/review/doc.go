// Package review is the human moderation layer over the publish queue.
//
// A reviewer walks pending clips one at a time and either approves,
// rejects, defers, or edits each. Defer is deliberately a no-op on state
// so a skipped clip resurfaces on the next pass. Posting is recorded here
// too, but only for clips that were approved first.
package review
