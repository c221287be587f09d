// Package buzz turns raw video counters into buzz scores, anomaly
// statuses, and human-facing verdicts. Everything in this package is a
// pure function of its inputs; persistence and I/O live elsewhere.
package buzz
