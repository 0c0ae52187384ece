package audio

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/TheoLvs/music-analysis/types"
)

// DefaultSampleRate is the rate every clip is resampled to unless
// Options.SampleRate overrides it.
const DefaultSampleRate = 22050

// Quality selects the resampling filter used when the file's native rate
// differs from the target rate.
type Quality int

const (
	Fast Quality = iota
	Best
)

func (q Quality) String() string {
	switch q {
	case Fast:
		return "fast"
	case Best:
		return "best"
	}
	return "unknown"
}

// resampleQuality maps to beep's interpolation quality (1..64).
func (q Quality) resampleQuality() int {
	if q == Best {
		return 10
	}
	return 3
}

func ParseQuality(s string) (Quality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fast":
		return Fast, nil
	case "best":
		return Best, nil
	}
	return Fast, errors.Wrapf(types.ErrInvalidOptions, "unknown quality %q", s)
}

// Options controls how a file is decoded. The zero value loads the whole
// file at DefaultSampleRate with Fast resampling.
type Options struct {
	Quality    Quality
	Duration   float64 // seconds to keep from the start, 0 for the whole file
	SampleRate int     // 0 for DefaultSampleRate
}

func (o Options) Validate() error {
	if o.Quality != Fast && o.Quality != Best {
		return errors.Wrapf(types.ErrInvalidOptions, "unknown quality %d", int(o.Quality))
	}
	if o.Duration < 0 {
		return errors.Wrapf(types.ErrInvalidOptions, "negative duration %g", o.Duration)
	}
	if o.SampleRate < 0 {
		return errors.Wrapf(types.ErrInvalidOptions, "negative sample rate %d", o.SampleRate)
	}
	return nil
}

func (o Options) rate() int {
	if o.SampleRate == 0 {
		return DefaultSampleRate
	}
	return o.SampleRate
}
