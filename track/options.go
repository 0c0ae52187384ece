package track

import (
	"github.com/sirupsen/logrus"

	"github.com/TheoLvs/music-analysis/audio"
	"github.com/TheoLvs/music-analysis/utils"
)

// Options controls how a Track is loaded.
type Options struct {
	Audio  audio.Options
	Logger logrus.FieldLogger
	// Eager computes the spectrogram and tempo while loading.
	Eager bool
}

type Option func(*Options)

func DefaultOptions() Options {
	return Options{
		Logger: utils.DiscardLogger(),
		Eager:  true,
	}
}

func WithAudio(o audio.Options) Option {
	return func(opts *Options) { opts.Audio = o }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(opts *Options) {
		if l != nil {
			opts.Logger = l
		}
	}
}

func WithEager(eager bool) Option {
	return func(opts *Options) { opts.Eager = eager }
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
