// Package preflight provides readiness checks for external tools and
// filesystem paths that buzzcut depends on.
//
// These checks run in two contexts:
//   - The daemon calls RunAll before each scan cycle. If a check fails the
//     cycle is skipped so a misconfigured install does not burn API quota.
//   - The CLI "buzzcut status" command uses the individual check functions
//     to display tool and storage health.
package preflight
