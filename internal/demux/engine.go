// SPDX-License-Identifier: EPL-2.0

package demux

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"stemsplit/internal/chanmap"
)

// DefaultChunkFrames is the number of frames read per chunk when the
// config does not say otherwise.
const DefaultChunkFrames = 16384

// Status is the terminal state of a run.
type Status int

const (
	StatusCompleted Status = iota
	StatusCancelled
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result summarizes a finished run.
type Result struct {
	Status          Status
	FramesProcessed int64
	TotalFrames     int64
	Elapsed         time.Duration
}

// Config wires a run together. Source, Labels and OpenSink are required;
// everything else has a usable zero value.
type Config struct {
	Source      Source
	Labels      []string
	OpenSink    SinkOpener
	ChunkFrames int
	OnProgress  func(Progress) // invoked synchronously; must be cheap
	Logger      *slog.Logger
}

// Run demultiplexes cfg.Source into one sink per plan entry.
//
// It validates the source format, builds the channel plan from cfg.Labels,
// opens all sinks up front, then streams chunk by chunk until end of
// stream, cancellation or error. The returned error is non-nil exactly
// when Result.Status is StatusFailed; a cancelled run is a clean return.
// Every opened sink is closed on every exit path.
func Run(ctx context.Context, cfg Config) (res Result, err error) {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	if cfg.Source == nil {
		return failed(res, ErrNilSource)
	}
	if cfg.OpenSink == nil {
		return failed(res, ErrNilSinkOpener)
	}
	if cfg.ChunkFrames <= 0 {
		cfg.ChunkFrames = DefaultChunkFrames
	}

	format := cfg.Source.Format()
	res.TotalFrames = format.TotalFrames
	if err := validateFormat(format, cfg.Labels); err != nil {
		return failed(res, err)
	}

	plan := chanmap.BuildPlan(chanmap.BuildDescriptors(cfg.Labels))
	for _, c := range plan.Conflicts {
		log.Warn("stereo side overwritten",
			"base", c.Base,
			"side", c.Side,
			"dropped_channel", c.PrevIndex,
			"kept_channel", c.Index)
	}

	start := time.Now()
	rep := newReporter(format.TotalFrames, cfg.OnProgress)

	if len(plan.Entries) == 0 {
		// Every channel was marked unused; nothing to write.
		rep.update(format.TotalFrames, time.Since(start))
		res.FramesProcessed = format.TotalFrames
		res.Elapsed = time.Since(start)
		return res, nil
	}

	sinks, err := openSinks(plan.Entries, cfg.OpenSink)
	if err != nil {
		return failed(res, err)
	}
	defer func() {
		cerr := sinks.closeAll()
		if cerr == nil {
			return
		}
		if err == nil && res.Status == StatusCompleted {
			res.Status = StatusFailed
			err = fmt.Errorf("close sinks: %w", cerr)
			return
		}
		log.Warn("closing sinks", "error", cerr)
	}()

	return stream(ctx, cfg, format, plan.Entries, sinks, rep, start)
}

// stream is the chunk loop: read, scatter per-entry copies, join, write,
// report. It runs after validation and sink creation; the caller owns sink
// closure.
func stream(ctx context.Context, cfg Config, format Format, entries []chanmap.Entry, sinks *sinkSet, rep *reporter, start time.Time) (Result, error) {
	var (
		frameBytes  = format.FrameBytes()
		sampleBytes = format.BytesPerSample()
		res         = Result{TotalFrames: format.TotalFrames}
	)

	in := make([]byte, cfg.ChunkFrames*frameBytes)
	outs := make([][]byte, len(entries))
	for i, e := range entries {
		outs[i] = make([]byte, cfg.ChunkFrames*e.ChannelCount()*sampleBytes)
	}

	for {
		// Cancellation is checked once per chunk boundary; an in-flight
		// chunk always finishes.
		if ctx.Err() != nil {
			res.Status = StatusCancelled
			res.Elapsed = time.Since(start)
			return res, nil
		}

		frames, err := cfg.Source.ReadFrames(in)
		if err == io.EOF || frames == 0 && err == nil {
			break
		}
		if err != nil {
			res.Status = StatusFailed
			res.Elapsed = time.Since(start)
			return res, fmt.Errorf("read source: %w", err)
		}

		chunk := in[:frames*frameBytes]

		var wg sync.WaitGroup
		for i, e := range entries {
			wg.Add(1)
			go func(e chanmap.Entry, out []byte) {
				defer wg.Done()
				relocate(chunk, out, e, frameBytes, sampleBytes)
			}(e, outs[i][:frames*e.ChannelCount()*sampleBytes])
		}
		wg.Wait()

		for i, e := range entries {
			if werr := sinks.append(i, outs[i][:frames*e.ChannelCount()*sampleBytes]); werr != nil {
				res.Status = StatusFailed
				res.Elapsed = time.Since(start)
				return res, werr
			}
		}

		res.FramesProcessed += int64(frames)
		rep.update(res.FramesProcessed, time.Since(start))
	}

	rep.update(res.FramesProcessed, time.Since(start))
	res.Status = StatusCompleted
	res.Elapsed = time.Since(start)
	return res, nil
}

// relocate copies one chunk's samples for a single plan entry. Stereo
// entries interleave the left and right source channels; mono entries lift
// a single channel. Byte-exact, no conversion.
func relocate(chunk, out []byte, e chanmap.Entry, frameBytes, sampleBytes int) {
	frames := len(chunk) / frameBytes

	if e.Kind == chanmap.KindStereo {
		lo := e.Left * sampleBytes
		ro := e.Right * sampleBytes
		for f := 0; f < frames; f++ {
			src := chunk[f*frameBytes:]
			dst := out[f*2*sampleBytes:]
			copy(dst[:sampleBytes], src[lo:lo+sampleBytes])
			copy(dst[sampleBytes:2*sampleBytes], src[ro:ro+sampleBytes])
		}
		return
	}

	off := e.Left * sampleBytes
	for f := 0; f < frames; f++ {
		copy(out[f*sampleBytes:(f+1)*sampleBytes], chunk[f*frameBytes+off:f*frameBytes+off+sampleBytes])
	}
}

// validateFormat rejects anything the engine cannot relocate byte-exactly.
// The label list length must match the channel count exactly; extra or
// missing labels are an error, never silently ignored.
func validateFormat(f Format, labels []string) error {
	if f.Codec != CodecPCM && f.Codec != CodecFloat {
		return fmt.Errorf("%w: format tag %d", ErrUnsupportedCodec, uint16(f.Codec))
	}
	if f.BitDepth <= 0 || f.BitDepth%8 != 0 {
		return fmt.Errorf("%w: %d", ErrBadBitDepth, f.BitDepth)
	}
	if f.BlockAlign != f.FrameBytes() {
		return fmt.Errorf("%w: declared %d, computed %d", ErrBlockAlign, f.BlockAlign, f.FrameBytes())
	}
	if len(labels) == 0 {
		return ErrNoLabels
	}
	if len(labels) != f.Channels {
		return fmt.Errorf("%w: %d labels, %d channels", ErrLabelCount, len(labels), f.Channels)
	}
	return nil
}

func failed(res Result, err error) (Result, error) {
	res.Status = StatusFailed
	return res, err
}
