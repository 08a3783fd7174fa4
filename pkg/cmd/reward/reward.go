package reward

import (
	"github.com/spf13/cobra"
)

var file string

func NewRewardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reward",
		Short: "runs the reward function offline and evaluates its trace output",
	}
	cmd.PersistentFlags().StringVarP(&file, "file", "f", "-",
		"input file, - reads stdin")
	cmd.AddCommand(newReplayCmd())
	cmd.AddCommand(newTraceCmd())
	return cmd
}
