package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"stemsplit/internal/chanmap"
	"stemsplit/internal/config"
	"stemsplit/internal/demux"
)

// newPlanCommand resolves and prints the channel plan without opening the
// source audio: a dry run over the label list alone.
func newPlanCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show the channel plan for the configured labels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if len(cfg.Channels) == 0 {
				return config.ErrNoChannels
			}

			plan := chanmap.BuildPlan(chanmap.BuildDescriptors(cfg.Channels))

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Output", "Type", "Source channels"})
			for _, e := range plan.Entries {
				t.AppendRow(table.Row{demux.FileName(e), kindLabel(e), channelList(e)})
			}
			t.Render()

			for _, c := range plan.Conflicts {
				fmt.Fprintf(cmd.OutOrStdout(),
					"warning: %s side %s taken from channel %d, channel %d dropped\n",
					c.Base, c.Side, c.Index, c.PrevIndex)
			}

			return nil
		},
	}
}

func kindLabel(e chanmap.Entry) string {
	if e.Kind == chanmap.KindStereo {
		return "stereo"
	}
	return "mono"
}

func channelList(e chanmap.Entry) string {
	if e.Kind == chanmap.KindStereo {
		return fmt.Sprintf("%d, %d", e.Left, e.Right)
	}
	return fmt.Sprintf("%d", e.Left)
}
