package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stemsplit/internal/config"
)

// options carries flag values that override the config file.
type options struct {
	configPath  string
	input       string
	outDir      string
	chunkFrames int
	logLevel    string
	logFormat   string
	quiet       bool
}

// load reads the config file and applies flag overrides on top.
func (o *options) load() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	if o.input != "" {
		cfg.Input = o.input
	}
	if o.outDir != "" {
		cfg.OutputDir = o.outDir
	}
	if o.chunkFrames > 0 {
		cfg.ChunkFrames = o.chunkFrames
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.logFormat != "" {
		cfg.LogFormat = o.logFormat
	}

	return cfg, nil
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "stemsplit",
		Short: "Split a multi-channel WAV into named mono and stereo stems",
		Long: `stemsplit reads a multi-channel PCM or IEEE-float WAV and writes one
output file per channel group. Groups come from the channel label list in
the config file: labels ending in L/R pair into stereo files, everything
else becomes a mono file, and "(unused)" channels are dropped.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runSplit(cmd, cfg, opts.quiet)
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "stemsplit.toml", "Configuration file path")
	root.Flags().StringVarP(&opts.input, "input", "i", "", "Source WAV file (overrides config)")
	root.Flags().StringVarP(&opts.outDir, "out", "o", "", "Destination directory (overrides config)")
	root.Flags().IntVar(&opts.chunkFrames, "chunk-frames", 0, "Frames per chunk (overrides config)")
	root.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	root.Flags().StringVar(&opts.logFormat, "log-format", "", "Log format: text or json")
	root.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Disable the progress bar")

	root.AddCommand(newPlanCommand(opts))
	root.AddCommand(newSampleConfigCommand())

	return root
}

func newSampleConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sample-config",
		Short: "Print a sample configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), config.Sample())
			return err
		},
	}
}
