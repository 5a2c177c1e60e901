// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides synthetic frame sources and in-memory sinks
// for testing the demux engine without touching real files.
package audiotest

import (
	"errors"
	"io"

	"stemsplit/internal/demux"
)

// Interleaved builds deterministic interleaved sample bytes for frames x
// channels samples of sampleBytes each. The sample at (frame, channel)
// holds the value frame*channels+channel, little-endian, truncated to the
// sample width, so relocated bytes can be traced back to their origin.
func Interleaved(frames, channels, sampleBytes int) []byte {
	data := make([]byte, frames*channels*sampleBytes)

	i := 0
	for f := 0; f < frames; f++ {
		for c := 0; c < channels; c++ {
			v := uint32(f*channels + c)
			for b := 0; b < sampleBytes; b++ {
				data[i] = byte(v >> (8 * b))
				i++
			}
		}
	}

	return data
}

// Sample extracts the sample bytes at (frame, channel) from an interleaved
// buffer.
func Sample(data []byte, frame, channels, channel, sampleBytes int) []byte {
	off := (frame*channels + channel) * sampleBytes
	return data[off : off+sampleBytes]
}

// FrameSource serves a pre-built interleaved byte buffer as a
// demux.Source. FailAfterFrames, when positive, makes reads fail with
// FailErr once that many frames were served.
type FrameSource struct {
	format demux.Format
	data   []byte
	off    int

	FailAfterFrames int
	FailErr         error

	served int
}

// ErrReadFailed is the default injected read failure.
var ErrReadFailed = errors.New("injected read failure")

// NewFrameSource wraps data in a source with the given format. BlockAlign
// defaults to the computed frame size and TotalFrames is derived from the
// data length.
func NewFrameSource(format demux.Format, data []byte) *FrameSource {
	if format.BlockAlign == 0 {
		format.BlockAlign = format.FrameBytes()
	}
	format.TotalFrames = int64(len(data) / format.FrameBytes())

	return &FrameSource{format: format, data: data}
}

// NewPatternSource builds a source of deterministic frames in the given
// format using Interleaved.
func NewPatternSource(format demux.Format, frames int) *FrameSource {
	return NewFrameSource(format, Interleaved(frames, format.Channels, format.BytesPerSample()))
}

func (s *FrameSource) Format() demux.Format { return s.format }

func (s *FrameSource) ReadFrames(dst []byte) (int, error) {
	if s.FailAfterFrames > 0 && s.served >= s.FailAfterFrames {
		if s.FailErr != nil {
			return 0, s.FailErr
		}
		return 0, ErrReadFailed
	}

	fb := s.format.FrameBytes()
	want := len(dst) - len(dst)%fb
	if want > len(s.data)-s.off {
		want = len(s.data) - s.off
	}
	if want == 0 {
		return 0, io.EOF
	}

	copy(dst[:want], s.data[s.off:s.off+want])
	s.off += want
	s.served += want / fb

	return want / fb, nil
}

// MemorySink records everything appended to it.
type MemorySink struct {
	Name     string
	Channels int
	Data     []byte
	Closed   int

	AppendErr error
	CloseErr  error
}

func (m *MemorySink) Append(p []byte) error {
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.Data = append(m.Data, p...)
	return nil
}

func (m *MemorySink) Close() error {
	m.Closed++
	return m.CloseErr
}

// SinkRecorder hands out MemorySinks and remembers them by file name, in
// open order.
type SinkRecorder struct {
	Sinks []*MemorySink
}

// Opener returns a demux.SinkOpener backed by the recorder.
func (r *SinkRecorder) Opener() demux.SinkOpener {
	return func(fileName string, channels int) (demux.Sink, error) {
		s := &MemorySink{Name: fileName, Channels: channels}
		r.Sinks = append(r.Sinks, s)
		return s, nil
	}
}

// Named returns the recorded sink with the given file name, or nil.
func (r *SinkRecorder) Named(fileName string) *MemorySink {
	for _, s := range r.Sinks {
		if s.Name == fileName {
			return s
		}
	}
	return nil
}
