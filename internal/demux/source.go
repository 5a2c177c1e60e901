// SPDX-License-Identifier: EPL-2.0

package demux

// Codec identifies the sample encoding of a stream, using WAV format tag
// values.
type Codec uint16

const (
	// CodecPCM is integer PCM (WAVE_FORMAT_PCM).
	CodecPCM Codec = 1
	// CodecFloat is IEEE-float PCM (WAVE_FORMAT_IEEE_FLOAT).
	CodecFloat Codec = 3
)

func (c Codec) String() string {
	switch c {
	case CodecPCM:
		return "pcm"
	case CodecFloat:
		return "ieee-float"
	default:
		return "unknown"
	}
}

// Format describes an interleaved sample stream.
type Format struct {
	Codec       Codec
	SampleRate  int
	BitDepth    int
	Channels    int
	BlockAlign  int   // declared bytes per frame
	TotalFrames int64 // frames available in the stream
}

// BytesPerSample returns the storage size of one sample.
func (f Format) BytesPerSample() int { return f.BitDepth / 8 }

// FrameBytes returns the size of one interleaved frame.
func (f Format) FrameBytes() int { return f.BytesPerSample() * f.Channels }

// Source is a sequential reader of interleaved frames.
type Source interface {
	// Format describes the stream being read.
	Format() Format
	// ReadFrames fills dst with as many whole interleaved frames as fit
	// and returns the number of frames read. At end of stream it returns
	// 0, io.EOF.
	ReadFrames(dst []byte) (int, error)
}

// Sink persists one plan entry's relocated samples.
type Sink interface {
	// Append writes interleaved sample bytes in frame order.
	Append(p []byte) error
	// Close finalizes the sink. Called exactly once per opened sink.
	Close() error
}

// SinkOpener creates the output sink for one plan entry. fileName is the
// engine's naming-convention result (e.g. "oh-stereo.wav"); channels is 1
// or 2.
type SinkOpener func(fileName string, channels int) (Sink, error)
