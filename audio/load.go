package audio

import (
	"context"
	"os"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"

	"github.com/TheoLvs/music-analysis/types"
)

type decodeFunc func(f *os.File) (beep.StreamSeekCloser, beep.Format, error)

func decodeMP3(f *os.File) (beep.StreamSeekCloser, beep.Format, error)    { return mp3.Decode(f) }
func decodeFLAC(f *os.File) (beep.StreamSeekCloser, beep.Format, error)   { return flac.Decode(f) }
func decodeVorbis(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return vorbis.Decode(f) }

var decoders = []struct {
	contentTypes []string
	decode       decodeFunc
}{
	{[]string{"audio/mpeg"}, decodeMP3},
	{[]string{"audio/wav", "audio/x-wav"}, decodeWAV},
	{[]string{"audio/flac"}, decodeFLAC},
	{[]string{"audio/ogg", "application/ogg"}, decodeVorbis},
}

// beep scales 16-bit WAV samples by 1/65535 instead of 1/32768, which
// halves their amplitude.
const pcm16Correction = float64(1<<16-1) / (1 << 15)

type pcm16Stream struct {
	beep.StreamSeekCloser
}

func (s pcm16Stream) Stream(samples [][2]float64) (int, bool) {
	n, ok := s.StreamSeekCloser.Stream(samples)
	for i := range samples[:n] {
		samples[i][0] *= pcm16Correction
		samples[i][1] *= pcm16Correction
	}
	return n, ok
}

func decodeWAV(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	s, format, err := wav.Decode(f)
	if err != nil || format.Precision != 2 {
		return s, format, err
	}
	return pcm16Stream{s}, format, nil
}

func decoderFor(mime *mimetype.MIME) decodeFunc {
	for _, d := range decoders {
		for _, ct := range d.contentTypes {
			if mime.Is(ct) {
				return d.decode
			}
		}
	}
	return nil
}

// Load decodes an audio file into a mono clip at the requested sample
// rate. MP3, WAV, FLAC and Ogg Vorbis are decoded natively; anything else
// is converted through ffmpeg when it is installed. Every failure is
// returned as a *types.LoadError.
func Load(path string, opts Options) (*types.Clip, error) {
	if err := opts.Validate(); err != nil {
		return nil, &types.LoadError{Path: path, Err: err}
	}
	clip, err := load(path, opts)
	if err != nil {
		return nil, &types.LoadError{Path: path, Err: err}
	}
	return clip, nil
}

func load(path string, opts Options) (*types.Clip, error) {
	mime, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, err
	}

	decode := decoderFor(mime)
	if decode == nil {
		if !HasFFmpeg() {
			return nil, errors.Wrap(types.ErrUnsupportedFormat, mime.String())
		}
		tmp, err := os.MkdirTemp("", "miles-")
		if err != nil {
			return nil, err
		}
		defer os.RemoveAll(tmp)

		converted, err := ConvertToWAV(context.Background(), path, tmp, opts.rate())
		if err != nil {
			return nil, errors.Wrap(types.ErrUnsupportedFormat, err.Error())
		}
		path, decode = converted, decodeWAV
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stream, format, err := decode(f)
	if err != nil {
		return nil, errors.Wrap(err, "error decoding audio")
	}
	defer stream.Close()

	return decodeStream(stream, format, opts)
}

func decodeStream(stream beep.StreamSeekCloser, format beep.Format, opts Options) (*types.Clip, error) {
	rate := opts.rate()
	var s beep.Streamer = stream
	if int(format.SampleRate) != rate {
		s = beep.Resample(opts.Quality.resampleQuality(), format.SampleRate, beep.SampleRate(rate), s)
	}
	if opts.Duration > 0 {
		s = beep.Take(int(opts.Duration*float64(rate)), s)
	}

	samples, err := readMono(s, format.NumChannels)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, errors.New("no audio samples decoded")
	}

	return &types.Clip{
		Samples:    samples,
		SampleRate: rate,
		Channels:   format.NumChannels,
		Duration:   float64(len(samples)) / float64(rate),
	}, nil
}

// readMono drains s, averaging the two beep channels for stereo sources.
func readMono(s beep.Streamer, channels int) ([]float64, error) {
	buf := make([][2]float64, 4096)
	var samples []float64
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			if channels == 1 {
				samples = append(samples, frame[0])
			} else {
				samples = append(samples, (frame[0]+frame[1])/2)
			}
		}
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "error streaming audio")
	}
	return samples, nil
}
