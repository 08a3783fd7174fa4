package reward

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/deepracer-toolkit-go/pkg/configfile"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/reward"
)

var (
	aggregate  int
	configFile string
)

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "feeds simulator params (one JSON object per line) into the reward",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configFile != "" {
				rc, err := configfile.LoadRewardConfig(configFile)
				if err != nil {
					return err
				}
				aggregate = rc.Aggregate
			}
			in, closeFn, err := openInput(file)
			if err != nil {
				return err
			}
			defer closeFn()
			return replay(in, cmd.OutOrStdout(), aggregate)
		},
	}
	cmd.Flags().IntVar(&aggregate, "aggregate", 15, "steps of the mean progress window")
	cmd.Flags().StringVarP(&configFile, "config", "c", "",
		"take the aggregate value from this reward config")
	return cmd
}

func openInput(name string) (io.Reader, func(), error) {
	if name == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// replay writes one trace line per decoded params object
func replay(in io.Reader, out io.Writer, aggregate int) error {
	dec := json.NewDecoder(in)
	e := reward.NewEpisode(aggregate)
	for {
		var p reward.Params
		if err := dec.Decode(&p); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("decode params: %w", err)
		}
		if _, err := fmt.Fprintln(out, e.Step(p).Trace); err != nil {
			return err
		}
	}
}
