// SPDX-License-Identifier: EPL-2.0

// Package wavio reads and writes WAV containers for the demux engine.
//
// The reader walks RIFF chunks (skipping LIST, cue and other metadata) to
// locate the fmt and data chunks, resolves WAVE_FORMAT_EXTENSIBLE
// subformats, and then serves sequential whole-frame byte reads over the
// data chunk. The writer streams raw frame bytes behind a placeholder
// header and patches the RIFF and data sizes on Close, so the file is a
// valid WAV after any number of appends.
//
// Samples pass through untouched; no conversion of any kind happens here.
package wavio
