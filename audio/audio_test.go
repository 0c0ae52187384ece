package audio

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheoLvs/music-analysis/types"
)

func sineClip(freq float64, rate int, seconds float64) *types.Clip {
	samples := make([]float64, int(float64(rate)*seconds))
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate))
	}
	return &types.Clip{Samples: samples, SampleRate: rate, Channels: 1}
}

func writeFixture(t *testing.T, name string, clip *types.Clip) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, WriteWAVFile(path, clip))
	return path
}

func TestWriteWAVHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWAV(&buf, []float64{0, 0.5, -2}, 8000))
	assert.Equal(t, wavHeaderSize+6, buf.Len())

	header, err := ReadWAVHeader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, uint32(8000), header.SampleRate)
	assert.Equal(t, uint16(1), header.NumChannels)
	assert.Equal(t, uint32(6), header.Subchunk2Size)
	assert.Equal(t, uint32(16000), header.ByteRate)

	data := buf.Bytes()[wavHeaderSize:]
	last := int16(uint16(data[4]) | uint16(data[5])<<8)
	assert.Equal(t, int16(-32767), last, "out of range samples are clamped")
}

func TestReadWAVHeaderRejectsGarbage(t *testing.T) {
	_, err := ReadWAVHeader(bytes.NewReader([]byte("RIFF")))
	assert.Error(t, err)
	_, err = ReadWAVHeader(bytes.NewReader(bytes.Repeat([]byte{'x'}, 64)))
	assert.Error(t, err)
}

func TestLoadWAV(t *testing.T) {
	src := sineClip(440, DefaultSampleRate, 1)
	path := writeFixture(t, "tone.wav", src)

	clip, err := Load(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultSampleRate, clip.SampleRate)
	assert.Equal(t, 1, clip.Channels)
	require.Equal(t, src.Len(), clip.Len())
	assert.InDelta(t, 1.0, clip.Duration, 1e-9)
	for i := 0; i < 1000; i += 37 {
		assert.InDelta(t, src.Samples[i], clip.Samples[i], 1e-3)
	}
}

func TestLoadWAVFullScale(t *testing.T) {
	src := &types.Clip{Samples: []float64{1, -1, 0.5, -0.25, 0}, SampleRate: DefaultSampleRate, Channels: 1}
	path := writeFixture(t, "peaks.wav", src)

	clip, err := Load(path, Options{})
	require.NoError(t, err)
	require.Equal(t, src.Len(), clip.Len())
	for i, want := range src.Samples {
		assert.InDelta(t, want, clip.Samples[i], 1e-4, "sample %d", i)
	}
}

func TestLoadResamples(t *testing.T) {
	path := writeFixture(t, "hi.wav", sineClip(440, 44100, 1))

	for _, q := range []Quality{Fast, Best} {
		clip, err := Load(path, Options{Quality: q})
		require.NoError(t, err, q.String())
		assert.Equal(t, DefaultSampleRate, clip.SampleRate)
		assert.InDelta(t, DefaultSampleRate, clip.Len(), 32, q.String())
	}

	clip, err := Load(path, Options{SampleRate: 11025})
	require.NoError(t, err)
	assert.Equal(t, 11025, clip.SampleRate)
	assert.InDelta(t, 11025, clip.Len(), 32)
}

func TestLoadDurationLimit(t *testing.T) {
	path := writeFixture(t, "long.wav", sineClip(440, DefaultSampleRate, 3))

	clip, err := Load(path, Options{Duration: 1.5})
	require.NoError(t, err)
	assert.Equal(t, int(1.5*DefaultSampleRate), clip.Len())
	assert.InDelta(t, 1.5, clip.Duration, 1e-9)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "notes.mp3")
	require.NoError(t, os.WriteFile(garbage, []byte("definitely not audio"), 0o644))

	for name, path := range map[string]string{
		"missing": filepath.Join(dir, "missing.mp3"),
		"garbage": garbage,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(path, Options{})
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrLoad)

			var loadErr *types.LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, path, loadErr.Path)
		})
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		ok   bool
	}{
		{"zero", Options{}, true},
		{"best", Options{Quality: Best, Duration: 30, SampleRate: 44100}, true},
		{"quality", Options{Quality: Quality(7)}, false},
		{"duration", Options{Duration: -1}, false},
		{"rate", Options{SampleRate: -22050}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, types.ErrInvalidOptions)
			}
		})
	}

	path := writeFixture(t, "tone.wav", sineClip(440, DefaultSampleRate, 0.5))
	_, err := Load(path, Options{Duration: -1})
	assert.ErrorIs(t, err, types.ErrInvalidOptions)
	assert.ErrorIs(t, err, types.ErrLoad)
}

func TestParseQuality(t *testing.T) {
	q, err := ParseQuality("BEST")
	require.NoError(t, err)
	assert.Equal(t, Best, q)

	q, err = ParseQuality("")
	require.NoError(t, err)
	assert.Equal(t, Fast, q)

	_, err = ParseQuality("lossless")
	assert.ErrorIs(t, err, types.ErrInvalidOptions)
}

func TestReadMetadataWithoutTags(t *testing.T) {
	path := writeFixture(t, "tone.wav", sineClip(440, DefaultSampleRate, 0.2))

	meta, err := ReadMetadata(path)
	require.NoError(t, err)
	assert.Equal(t, "audio/wav", meta.ContentType)
	assert.Empty(t, meta.Title)
}

func TestConvertToWAV(t *testing.T) {
	if !HasFFmpeg() {
		t.Skip("ffmpeg not installed")
	}
	in := writeFixture(t, "hi.wav", sineClip(440, 44100, 1))
	out, err := ConvertToWAV(context.Background(), in, t.TempDir(), 22050)
	require.NoError(t, err)
	assert.FileExists(t, in)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	header, err := ReadWAVHeader(f)
	require.NoError(t, err)
	assert.Equal(t, uint32(22050), header.SampleRate)
	assert.Equal(t, uint16(1), header.NumChannels)
}
