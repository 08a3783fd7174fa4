package track

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/deepracer-toolkit-go/log"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/cmd/cmdutil"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/config"
)

func newDownloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download",
		Short: "downloads the waypoint file of a track",
		RunE: func(cmd *cobra.Command, args []string) error {
			return download(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&trackDir, "dir", "",
		"target directory (default: track-dir)")
	return cmd
}

func download(ctx context.Context) error {
	if trackName == "" {
		return fmt.Errorf("--track is required")
	}
	env, err := cmdutil.Setup(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	if trackDir != "" {
		config.TrackDir = trackDir
	}
	if err := os.MkdirAll(config.TrackDir, 0o755); err != nil {
		return err
	}
	src := env.TrackSource()
	data, err := src.Download(ctx, trackName)
	if err != nil {
		return err
	}
	target := filepath.Clean(src.Path(trackName))
	if err := os.WriteFile(target, data, 0o600); err != nil {
		return err
	}
	log.Info("track downloaded",
		log.String("track", trackName),
		log.String("file", target),
		log.Int("bytes", len(data)))
	return nil
}
