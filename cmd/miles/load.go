package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/TheoLvs/music-analysis/audio"
	"github.com/TheoLvs/music-analysis/config"
	"github.com/TheoLvs/music-analysis/playlist"
	"github.com/TheoLvs/music-analysis/track"
)

// loadFlags are the decoding and selection flags shared by commands that
// read audio. Flags that were set override the configuration.
type loadFlags struct {
	folder     string
	limit      int
	ext        string
	best       bool
	duration   float64
	sampleRate int
}

func (f *loadFlags) register(cmd *cobra.Command, collection bool) {
	flags := cmd.Flags()
	if collection {
		flags.StringVar(&f.folder, "folder", "", "load every matching file of this folder")
		flags.IntVar(&f.limit, "limit", 0, "keep only the first N files")
		flags.StringVar(&f.ext, "ext", playlist.DefaultExtension, "file extension to keep")
	}
	flags.BoolVar(&f.best, "best", false, "use the high quality resampler")
	flags.Float64Var(&f.duration, "duration", 0, "seconds to load from the start of each file")
	flags.IntVar(&f.sampleRate, "sr", 0, "target sample rate (default 22050)")
}

func (f *loadFlags) config(cmd *cobra.Command) config.Config {
	c := cfg
	flags := cmd.Flags()
	if flags.Changed("limit") {
		c.Limit = f.limit
	}
	if flags.Changed("ext") {
		c.Extension = f.ext
	}
	if flags.Changed("best") {
		c.Quality = audio.Fast.String()
		if f.best {
			c.Quality = audio.Best.String()
		}
	}
	if flags.Changed("duration") {
		c.Duration = f.duration
	}
	if flags.Changed("sr") {
		c.SampleRate = f.sampleRate
	}
	return c
}

func (f *loadFlags) audioOptions(cmd *cobra.Command) (audio.Options, error) {
	return f.config(cmd).AudioOptions()
}

func (f *loadFlags) loadTrack(cmd *cobra.Command, path string) (*track.Track, error) {
	opts, err := f.audioOptions(cmd)
	if err != nil {
		return nil, err
	}
	return track.Load(path, track.WithAudio(opts), track.WithEager(false), track.WithLogger(logger()))
}

// loadPlaylist loads args or --folder behind a progress bar.
func (f *loadFlags) loadPlaylist(cmd *cobra.Command, args []string) (*playlist.Playlist, error) {
	if f.folder == "" && len(args) == 0 {
		return nil, errors.New("pass files or --folder")
	}
	c := f.config(cmd)
	audioOpts, err := c.AudioOptions()
	if err != nil {
		return nil, err
	}

	p := mpb.New(mpb.WithWidth(64), mpb.WithOutput(os.Stderr))
	var bar *mpb.Bar
	progress := func(done, total int, path string) {
		if bar == nil {
			bar = p.AddBar(int64(total),
				mpb.PrependDecorators(
					decor.Name("Loading: "),
					decor.CountersNoUnit("%d / %d"),
				),
				mpb.AppendDecorators(
					decor.Percentage(),
				),
			)
		}
		bar.Increment()
	}

	opts := []playlist.Option{
		playlist.WithExtension(c.Extension),
		playlist.WithLimit(c.Limit),
		playlist.WithProgress(progress),
		playlist.WithVerbose(verbose),
		playlist.WithLogger(logger()),
		playlist.WithTrackOptions(track.WithAudio(audioOpts), track.WithEager(false)),
	}

	var pl *playlist.Playlist
	if f.folder != "" {
		pl, err = playlist.FromFolder(f.folder, opts...)
	} else {
		pl, err = playlist.New(args, opts...)
	}
	if err != nil && bar != nil {
		bar.Abort(false)
	}
	p.Wait()
	return pl, err
}
