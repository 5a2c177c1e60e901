package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"stemsplit/internal/config"
	"stemsplit/internal/demux"
	"stemsplit/internal/logging"
	"stemsplit/internal/wavio"
)

// runSplit drives one extraction: open the source, wire sinks into the
// output directory, stream until done or interrupted.
func runSplit(cmd *cobra.Command, cfg *config.Config, quiet bool) error {
	log, err := logging.New(cmd.ErrOrStderr(), logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src, err := wavio.Open(cfg.Input)
	if err != nil {
		return err
	}
	defer src.Close()

	format := src.Format()
	log.Info("source opened",
		"input", cfg.Input,
		"codec", format.Codec.String(),
		"sample_rate", format.SampleRate,
		"bit_depth", format.BitDepth,
		"channels", format.Channels,
		"frames", format.TotalFrames)

	onProgress := func(demux.Progress) {}
	if !quiet {
		bar := progressbar.NewOptions(100,
			progressbar.OptionSetDescription("splitting"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetPredictTime(false),
		)
		onProgress = func(p demux.Progress) {
			if p.HasRemaining {
				bar.Describe(fmt.Sprintf("splitting (eta %s)", p.Remaining.Round(time.Second)))
			}
			_ = bar.Set(p.Percent)
		}
		defer func() {
			_ = bar.Finish()
			fmt.Fprintln(os.Stderr)
		}()
	}

	opener := func(fileName string, channels int) (demux.Sink, error) {
		sinkFormat := format
		sinkFormat.Channels = channels
		return wavio.Create(filepath.Join(cfg.OutputDir, fileName), sinkFormat)
	}

	res, err := demux.Run(ctx, demux.Config{
		Source:      src,
		Labels:      cfg.Channels,
		OpenSink:    opener,
		ChunkFrames: cfg.ChunkFrames,
		OnProgress:  onProgress,
		Logger:      log,
	})
	if err != nil {
		return err
	}

	switch res.Status {
	case demux.StatusCancelled:
		log.Warn("run cancelled, partial stems left in place",
			"frames", res.FramesProcessed,
			"elapsed", res.Elapsed.Round(time.Millisecond))
		return context.Canceled
	default:
		log.Info("run completed",
			"frames", res.FramesProcessed,
			"elapsed", res.Elapsed.Round(time.Millisecond))
		return nil
	}
}
