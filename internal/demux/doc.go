// SPDX-License-Identifier: EPL-2.0

// Package demux splits a multi-channel interleaved PCM stream into per-group
// output sinks according to a channel plan.
//
// The engine streams the source in fixed-size chunks so memory use stays
// constant regardless of stream length. Within a chunk, every plan entry
// gets its own output buffer and the per-entry sample relocation runs
// concurrently; all entries are joined before the chunk's buffers are
// written, so output within a sink is always in frame order.
//
// Cancellation is cooperative: the engine checks its context once per chunk
// boundary, finishes the in-flight chunk, closes every sink and reports
// StatusCancelled. Partial output files are left in place.
package demux
