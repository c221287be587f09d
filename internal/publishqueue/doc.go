// Package publishqueue holds the clip moderation queue: every generated
// clip enters as pending and moves through human review to approved or
// rejected, and on to posted once an external publisher ships it. The queue
// is a single JSON document mutated whole under an exclusive critical
// section.
package publishqueue
