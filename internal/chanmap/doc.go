// SPDX-License-Identifier: EPL-2.0

// Package chanmap turns a per-channel label list into a channel plan.
//
// A plan partitions the source channels into output groups: stereo pairs
// inferred from a trailing L/R naming convention, and standalone mono
// channels for everything else. Channels labeled "(unused)" are dropped
// before planning and never produce an output.
//
// Plan construction is a pure transform over the label list; it does not
// touch the source audio.
package chanmap
