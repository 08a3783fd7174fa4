package reward

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/deepracer-toolkit-go/pkg/reward"
)

func newTraceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "summarizes the reward trace lines of a training log per episode",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, closeFn, err := openInput(file)
			if err != nil {
				return err
			}
			defer closeFn()
			return summarizeTrace(in, cmd.OutOrStdout())
		},
	}
	return cmd
}

func summarizeTrace(in io.Reader, out io.Writer) error {
	records, err := reward.ReadTrace(in)
	if err != nil {
		return err
	}
	episodes := reward.Summarize(records)
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "episode\tsteps\tprogress\treward\tfinished\t")
	finished := 0
	for i, ep := range episodes {
		if ep.Finished {
			finished++
		}
		fmt.Fprintf(w, "%d\t%d\t%.2f\t%.4f\t%t\t\n",
			i, ep.Steps, ep.Progress, ep.TotalReward, ep.Finished)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%d episodes, %d finished\n", len(episodes), finished)
	return err
}
