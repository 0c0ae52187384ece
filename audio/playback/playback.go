// Package playback plays clips through the default output device with
// portaudio.
package playback

import (
	"context"

	"github.com/gordonklaus/portaudio"
	"github.com/pkg/errors"

	"github.com/TheoLvs/music-analysis/dsp"
	"github.com/TheoLvs/music-analysis/types"
)

const bufferSize = 4096

// Player writes clips to the default output device.
type Player struct {
	stream *portaudio.Stream
	buffer []float32
}

func NewPlayer(sampleRate int) (*Player, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, errors.Wrap(err, "failed to initialize portaudio")
	}

	player := &Player{buffer: make([]float32, bufferSize)}
	stream, err := portaudio.OpenDefaultStream(
		0, // input channels
		1, // output channels
		float64(sampleRate),
		bufferSize,
		player.buffer,
	)
	if err != nil {
		portaudio.Terminate()
		return nil, errors.Wrap(err, "failed to open audio stream")
	}

	player.stream = stream
	return player, nil
}

// Play blocks until every sample has been written or ctx is done.
func (p *Player) Play(ctx context.Context, samples []float64) error {
	if err := p.stream.Start(); err != nil {
		return err
	}
	defer p.stream.Stop()

	for pos := 0; pos < len(samples); pos += len(p.buffer) {
		if err := ctx.Err(); err != nil {
			return err
		}
		chunk := fillBuffer(p.buffer, samples[pos:])
		if chunk == 0 {
			break
		}
		if err := p.stream.Write(); err != nil {
			return errors.Wrap(err, "failed to write audio stream")
		}
	}
	return nil
}

func (p *Player) Close() error {
	if p.stream != nil {
		p.stream.Close()
	}
	return portaudio.Terminate()
}

// Play normalizes a clip and plays it through the default output device.
func Play(ctx context.Context, clip *types.Clip) error {
	player, err := NewPlayer(clip.SampleRate)
	if err != nil {
		return err
	}
	defer player.Close()
	return player.Play(ctx, dsp.Normalize(clip.Samples))
}

// fillBuffer copies as many samples as fit into buf, zeroing the tail.
func fillBuffer(buf []float32, samples []float64) int {
	n := min(len(buf), len(samples))
	for i := range buf {
		if i < n {
			buf[i] = float32(samples[i])
		} else {
			buf[i] = 0
		}
	}
	return n
}
