package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/TheoLvs/music-analysis/audio"
	"github.com/TheoLvs/music-analysis/audio/playback"
)

var playFlags loadFlags

var playCmd = &cobra.Command{
	Use:   "play <file>",
	Short: "Play a file through the default output device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := playFlags.audioOptions(cmd)
		if err != nil {
			return err
		}
		clip, err := audio.Load(args[0], opts)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		logger().WithField("path", args[0]).Info("Playing")
		if err := playback.Play(ctx, clip); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	playFlags.register(playCmd, false)
	rootCmd.AddCommand(playCmd)
}
