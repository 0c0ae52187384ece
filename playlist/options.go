package playlist

import (
	"github.com/sirupsen/logrus"

	"github.com/TheoLvs/music-analysis/track"
	"github.com/TheoLvs/music-analysis/utils"
)

const DefaultExtension = ".mp3"

// ProgressFunc is called after each track is loaded.
type ProgressFunc func(done, total int, path string)

type Options struct {
	Extension string // matched case-insensitively
	Limit     int    // keep the first Limit files, 0 for all
	Progress  ProgressFunc
	// Verbose lets track progress lines through at the logger's level.
	// Otherwise tracks only log warnings.
	Verbose bool
	Logger  logrus.FieldLogger
	Track   []track.Option
}

type Option func(*Options)

func DefaultOptions() Options {
	return Options{
		Extension: DefaultExtension,
		Logger:    utils.DiscardLogger(),
	}
}

func WithExtension(ext string) Option {
	return func(o *Options) { o.Extension = ext }
}

func WithLimit(n int) Option {
	return func(o *Options) { o.Limit = n }
}

func WithProgress(fn ProgressFunc) Option {
	return func(o *Options) { o.Progress = fn }
}

func WithVerbose(verbose bool) Option {
	return func(o *Options) { o.Verbose = verbose }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithTrackOptions forwards options to every track.Load call.
func WithTrackOptions(opts ...track.Option) Option {
	return func(o *Options) { o.Track = append(o.Track, opts...) }
}
