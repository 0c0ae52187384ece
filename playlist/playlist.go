// Package playlist loads and analyzes a collection of tracks.
package playlist

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/TheoLvs/music-analysis/tonality"
	"github.com/TheoLvs/music-analysis/track"
	"github.com/TheoLvs/music-analysis/types"
	"github.com/TheoLvs/music-analysis/utils"
)

// Playlist is an ordered, immutable set of loaded tracks.
type Playlist struct {
	tracks []*track.Track
	log    logrus.FieldLogger
}

// New loads every path whose extension matches. Any track that fails to
// load aborts the whole playlist.
func New(paths []string, opts ...Option) (*Playlist, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Limit < 0 {
		return nil, errors.Wrapf(types.ErrInvalidOptions, "negative limit %d", o.Limit)
	}

	ext := normalizeExtension(o.Extension)
	paths = filterPaths(paths, ext)
	if len(paths) == 0 {
		return nil, errors.Wrapf(types.ErrEmptyPlaylist, "no %s files", ext)
	}
	if o.Limit > 0 && len(paths) > o.Limit {
		paths = paths[:o.Limit]
	}

	trackLog := o.Logger
	if !o.Verbose {
		trackLog = utils.WithMaxLevel(o.Logger, logrus.WarnLevel)
	}
	trackOpts := append([]track.Option{track.WithLogger(trackLog)}, o.Track...)

	p := &Playlist{
		tracks: make([]*track.Track, 0, len(paths)),
		log:    o.Logger,
	}
	for i, path := range paths {
		t, err := track.Load(path, trackOpts...)
		if err != nil {
			return nil, errors.Wrapf(err, "playlist track %d", i)
		}
		p.tracks = append(p.tracks, t)
		if o.Progress != nil {
			o.Progress(i+1, len(paths), path)
		}
	}
	p.log.WithField("tracks", len(p.tracks)).Info("Loaded playlist")
	return p, nil
}

// FromFolder loads the matching files of dir in file name order.
// Subdirectories are not visited.
func FromFolder(dir string, opts ...Option) (*Playlist, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "error listing folder")
	}
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return New(paths, opts...)
}

// normalizeExtension gives ext a leading dot, so "wav" and ".wav" select the
// same files. An empty extension falls back to DefaultExtension.
func normalizeExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" {
		return DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func filterPaths(paths []string, ext string) []string {
	filtered := make([]string, 0, len(paths))
	for _, p := range paths {
		if strings.EqualFold(filepath.Ext(p), ext) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func (p *Playlist) Len() int { return len(p.tracks) }

func (p *Playlist) At(i int) *track.Track { return p.tracks[i] }

// All iterates over the tracks in order.
func (p *Playlist) All() iter.Seq2[int, *track.Track] {
	return func(yield func(int, *track.Track) bool) {
		for i, t := range p.tracks {
			if !yield(i, t) {
				return
			}
		}
	}
}

// Tracks returns a copy of the track list.
func (p *Playlist) Tracks() []*track.Track {
	return append([]*track.Track(nil), p.tracks...)
}

func (p *Playlist) Paths() []string {
	paths := make([]string, len(p.tracks))
	for i, t := range p.tracks {
		paths[i] = t.Path()
	}
	return paths
}

func (p *Playlist) String() string {
	return fmt.Sprintf("Playlist(n=%d)", p.Len())
}

// KeyProfile is the chroma summary of one track.
type KeyProfile struct {
	Path    string
	Summary tonality.Summary
}

// Summaries returns the key profile of every track. Silent tracks are
// skipped with a warning.
func (p *Playlist) Summaries() ([]KeyProfile, error) {
	profiles := make([]KeyProfile, 0, len(p.tracks))
	for _, t := range p.tracks {
		s, err := t.Summary()
		if errors.Is(err, types.ErrDegenerateInput) {
			p.log.WithField("path", t.Path()).Warn("No tonal energy, skipping track")
			continue
		}
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, KeyProfile{Path: t.Path(), Summary: s})
	}
	return profiles, nil
}

// Describe returns the description of every track in order.
func (p *Playlist) Describe() ([]track.Description, error) {
	out := make([]track.Description, 0, len(p.tracks))
	for _, t := range p.tracks {
		d, err := t.Describe()
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
