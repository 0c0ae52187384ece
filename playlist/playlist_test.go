package playlist

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheoLvs/music-analysis/audio"
	"github.com/TheoLvs/music-analysis/track"
	"github.com/TheoLvs/music-analysis/types"
)

func writeTone(t *testing.T, path string, freq float64) {
	t.Helper()
	rate := audio.DefaultSampleRate
	samples := make([]float64, rate/2)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate))
	}
	require.NoError(t, audio.WriteWAVFile(path, &types.Clip{Samples: samples, SampleRate: rate, Channels: 1}))
}

// folder holds three tones and two files that must be filtered out.
func folder(t *testing.T) string {
	dir := t.TempDir()
	writeTone(t, filepath.Join(dir, "c.wav"), 261.63)
	writeTone(t, filepath.Join(dir, "a.wav"), 440)
	writeTone(t, filepath.Join(dir, "b.WAV"), 392)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cover.jpg"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.wav"), 0o755))
	return dir
}

func lazy() Option {
	return WithTrackOptions(track.WithEager(false))
}

func TestExtensionWithoutDot(t *testing.T) {
	p, err := FromFolder(folder(t), WithExtension("wav"), lazy())
	require.NoError(t, err)
	assert.Equal(t, 3, p.Len())

	assert.Equal(t, ".wav", normalizeExtension("wav"))
	assert.Equal(t, ".WAV", normalizeExtension(" .WAV "))
	assert.Equal(t, DefaultExtension, normalizeExtension(""))
}

func TestFromFolderFiltersAndSorts(t *testing.T) {
	dir := folder(t)

	p, err := FromFolder(dir, WithExtension(".wav"), lazy())
	require.NoError(t, err)
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, []string{
		filepath.Join(dir, "a.wav"),
		filepath.Join(dir, "b.WAV"),
		filepath.Join(dir, "c.wav"),
	}, p.Paths())
	assert.Equal(t, "Playlist(n=3)", p.String())
}

func TestLimit(t *testing.T) {
	p, err := FromFolder(folder(t), WithExtension(".wav"), WithLimit(2), lazy())
	require.NoError(t, err)
	assert.Equal(t, 2, p.Len())

	_, err = FromFolder(folder(t), WithExtension(".wav"), WithLimit(-1))
	assert.ErrorIs(t, err, types.ErrInvalidOptions)
}

func TestEmptyPlaylist(t *testing.T) {
	_, err := FromFolder(folder(t))
	assert.ErrorIs(t, err, types.ErrEmptyPlaylist)

	_, err = New(nil)
	assert.ErrorIs(t, err, types.ErrEmptyPlaylist)
}

func TestLoadFailureAborts(t *testing.T) {
	dir := folder(t)
	bad := filepath.Join(dir, "bad.wav")
	require.NoError(t, os.WriteFile(bad, []byte("not a wave"), 0o644))

	var done []string
	_, err := FromFolder(dir, WithExtension(".wav"), lazy(), WithProgress(func(_, _ int, path string) {
		done = append(done, path)
	}))
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrLoad)
	assert.Contains(t, err.Error(), bad)
	assert.Equal(t, []string{filepath.Join(dir, "a.wav"), filepath.Join(dir, "b.WAV")}, done)
}

func TestProgressAndIteration(t *testing.T) {
	dir := folder(t)
	paths := []string{filepath.Join(dir, "c.wav"), filepath.Join(dir, "a.wav"), filepath.Join(dir, "notes.txt")}

	var calls [][2]int
	p, err := New(paths, WithExtension(".wav"), lazy(), WithProgress(func(done, total int, _ string) {
		calls = append(calls, [2]int{done, total})
	}))
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{1, 2}, {2, 2}}, calls)

	var seen []string
	for i, tr := range p.All() {
		assert.Same(t, p.At(i), tr)
		seen = append(seen, tr.Path())
	}
	assert.Equal(t, paths[:2], seen)

	tracks := p.Tracks()
	tracks[0] = nil
	assert.NotNil(t, p.At(0))
}

func TestSummariesAndDescribe(t *testing.T) {
	dir := t.TempDir()
	writeTone(t, filepath.Join(dir, "a.wav"), 440)
	silent := filepath.Join(dir, "z.wav")
	rate := audio.DefaultSampleRate
	require.NoError(t, audio.WriteWAVFile(silent, &types.Clip{Samples: make([]float64, rate/2), SampleRate: rate, Channels: 1}))

	p, err := FromFolder(dir, WithExtension(".wav"), lazy())
	require.NoError(t, err)

	profiles, err := p.Summaries()
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, filepath.Join(dir, "a.wav"), profiles[0].Path)

	descriptions, err := p.Describe()
	require.NoError(t, err)
	require.Len(t, descriptions, 2)
	assert.NotEmpty(t, descriptions[0].Key)
	assert.Empty(t, descriptions[1].Key)
}

func TestFilterPathsDefaultExtension(t *testing.T) {
	got := filterPaths([]string{"a.mp3", "b.MP3", "c.wav", "mp3", "d.mp3.bak"}, DefaultExtension)
	assert.Equal(t, []string{"a.mp3", "b.MP3"}, got)
}
