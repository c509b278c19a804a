// Package batch discovers candidate videos under a directory tree and fans
// conversions out across a bounded worker pool.
//
// The work queue is fully populated and closed before any worker starts, so
// the only synchronization the orchestrator needs is the completion barrier.
// Per-file failures are folded into the run's stats and never abort sibling
// work; an output that is already newer than its source is skipped and
// counted as a success, which makes re-running a converted tree a cheap
// no-op pass.
package batch
