// Package track holds a single analyzed audio file and memoizes the
// features derived from it.
package track

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/TheoLvs/music-analysis/audio"
	"github.com/TheoLvs/music-analysis/dsp"
	"github.com/TheoLvs/music-analysis/tonality"
	"github.com/TheoLvs/music-analysis/types"
)

// Feature extractors, replaceable in tests.
var (
	melSpectrogram = dsp.MelSpectrogram
	chromagram     = dsp.Chromagram
	beatTrack      = dsp.BeatTrackMel
)

// Track is an audio file plus its lazily computed features. Every feature
// is computed at most once until Reset. A Track is not safe for concurrent
// use.
type Track struct {
	path string
	clip *types.Clip
	meta types.Metadata
	log  logrus.FieldLogger

	spectrogram   [][]float64
	spectrogramDB [][]float64
	chroma        [][]float64
	tempo         *float64
	beatFrames    []int
	beatTimes     []float64
	summary       *tonality.Summary
	key           *tonality.Key
}

// Load decodes path and, unless disabled with WithEager(false), computes
// its spectrogram and tempo right away.
func Load(path string, opts ...Option) (*Track, error) {
	o := buildOptions(opts)

	clip, err := audio.Load(path, o.Audio)
	if err != nil {
		return nil, err
	}
	meta, err := audio.ReadMetadata(path)
	if err != nil {
		o.Logger.WithError(err).WithField("path", path).Warn("Could not read tags")
	}

	t := newTrack(path, clip, o.Logger)
	t.meta = meta
	t.log.WithField("duration", clip.Duration).Info("Loaded")

	if o.Eager {
		if _, err := t.Spectrogram(); err != nil {
			return nil, err
		}
		if _, err := t.Tempo(); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// New wraps an already decoded clip. path only identifies the track.
func New(path string, clip *types.Clip, opts ...Option) (*Track, error) {
	o := buildOptions(opts)
	if clip == nil || clip.Len() == 0 {
		return nil, &types.LoadError{Path: path, Err: dsp.ErrEmptySignal}
	}
	if clip.SampleRate <= 0 {
		return nil, &types.LoadError{Path: path, Err: dsp.ErrSampleRate}
	}
	return newTrack(path, clip, o.Logger), nil
}

func newTrack(path string, clip *types.Clip, log logrus.FieldLogger) *Track {
	return &Track{
		path:     path,
		clip:     clip,
		log:      log.WithField("path", path),
	}
}

func (t *Track) Path() string             { return t.path }
func (t *Track) Clip() *types.Clip        { return t.clip }
func (t *Track) Metadata() types.Metadata { return t.meta }

func (t *Track) String() string {
	return fmt.Sprintf("Track(path=%q)", t.path)
}

// Spectrogram returns the power mel spectrogram, indexed [mel][frame].
func (t *Track) Spectrogram() ([][]float64, error) {
	if t.spectrogram != nil {
		return t.spectrogram, nil
	}
	mel, err := melSpectrogram(t.clip.Samples, t.clip.SampleRate)
	if err != nil {
		return nil, errors.Wrapf(err, "spectrogram of %s", t.path)
	}
	t.spectrogram = mel
	t.spectrogramDB = dsp.PowerToDBMax(mel)
	t.log.WithField("frames", len(mel[0])).Info("Computed spectrogram")
	return t.spectrogram, nil
}

// SpectrogramDB returns the mel spectrogram in dB relative to its peak.
func (t *Track) SpectrogramDB() ([][]float64, error) {
	if _, err := t.Spectrogram(); err != nil {
		return nil, err
	}
	return t.spectrogramDB, nil
}

// Chromagram returns the chroma energy, indexed [pitch class][frame].
func (t *Track) Chromagram() ([][]float64, error) {
	if t.chroma != nil {
		return t.chroma, nil
	}
	chroma, err := chromagram(t.clip.Samples, t.clip.SampleRate)
	if err != nil {
		return nil, errors.Wrapf(err, "chromagram of %s", t.path)
	}
	t.chroma = chroma
	t.log.Debug("Computed chromagram")
	return t.chroma, nil
}

func (t *Track) computeTempo() error {
	if t.tempo != nil {
		return nil
	}
	mel, err := t.Spectrogram()
	if err != nil {
		return err
	}
	tempo, beats, err := beatTrack(mel, t.clip.SampleRate)
	if err != nil {
		return errors.Wrapf(err, "tempo of %s", t.path)
	}
	t.tempo = &tempo
	t.beatFrames = beats
	t.beatTimes = dsp.FramesToTime(beats, t.clip.SampleRate, dsp.DefaultHopSize)
	t.log.WithField("tempo", fmt.Sprintf("%.2f", tempo)).Info("Estimated tempo")
	return nil
}

// Tempo returns the estimated tempo in beats per minute, 0 when the track
// has no detectable beat.
func (t *Track) Tempo() (float64, error) {
	if err := t.computeTempo(); err != nil {
		return 0, err
	}
	return *t.tempo, nil
}

func (t *Track) BeatFrames() ([]int, error) {
	if err := t.computeTempo(); err != nil {
		return nil, err
	}
	return t.beatFrames, nil
}

// BeatTimes returns the beat positions in seconds.
func (t *Track) BeatTimes() ([]float64, error) {
	if err := t.computeTempo(); err != nil {
		return nil, err
	}
	return t.beatTimes, nil
}

// Duration is the clip length in seconds.
func (t *Track) Duration() float64 {
	return dsp.Duration(t.clip.Len(), t.clip.SampleRate)
}

// Summary returns the chroma intensity summary. Silent tracks fail with
// types.ErrDegenerateInput.
func (t *Track) Summary() (tonality.Summary, error) {
	if t.summary != nil {
		return *t.summary, nil
	}
	chroma, err := t.Chromagram()
	if err != nil {
		return tonality.Summary{}, err
	}
	summary, err := tonality.Summarize(chroma)
	if err != nil {
		return tonality.Summary{}, errors.Wrapf(err, "key summary of %s", t.path)
	}
	t.summary = &summary
	return summary, nil
}

func (t *Track) Key() (tonality.Key, error) {
	if t.key != nil {
		return *t.key, nil
	}
	summary, err := t.Summary()
	if err != nil {
		return tonality.Key{}, err
	}
	key := tonality.Classify(summary)
	t.key = &key
	t.log.WithField("key", key.String()).Info("Detected key")
	return key, nil
}

// Reset drops every computed feature. The decoded clip is kept.
func (t *Track) Reset() {
	t.spectrogram = nil
	t.spectrogramDB = nil
	t.chroma = nil
	t.tempo = nil
	t.beatFrames = nil
	t.beatTimes = nil
	t.summary = nil
	t.key = nil
}
