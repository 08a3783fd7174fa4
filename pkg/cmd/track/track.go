package track

import (
	"github.com/spf13/cobra"
)

var (
	trackName string
	trackDir  string
	line      string
)

func NewTrackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track",
		Short: "commands to fetch and inspect track waypoints",
	}
	cmd.PersistentFlags().StringVarP(&trackName, "track", "t", "",
		"name of the track (e.g. reInvent2019_track)")
	cmd.AddCommand(newDownloadCmd())
	cmd.AddCommand(newAnalyzeCmd())
	return cmd
}
