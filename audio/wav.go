package audio

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/TheoLvs/music-analysis/types"
	"github.com/TheoLvs/music-analysis/utils"
)

const wavHeaderSize = 44

func newWavHeader(numSamples, sampleRate int) types.WavHeader {
	const (
		numChannels   = 1
		bitsPerSample = 16
	)
	dataSize := uint32(numSamples * numChannels * bitsPerSample / 8)
	return types.WavHeader{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + dataSize,
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1,
		NumChannels:   numChannels,
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate * numChannels * bitsPerSample / 8),
		BlockAlign:    numChannels * bitsPerSample / 8,
		BitsPerSample: bitsPerSample,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: dataSize,
	}
}

// WriteWAV encodes mono samples as 16-bit PCM. Samples outside [-1, 1]
// are clamped.
func WriteWAV(w io.Writer, samples []float64, sampleRate int) error {
	data := make([]int16, len(samples))
	for i, s := range samples {
		if s > 1.0 {
			s = 1.0
		} else if s < -1.0 {
			s = -1.0
		}
		data[i] = int16(s * 32767.0)
	}

	header := newWavHeader(len(samples), sampleRate)
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return errors.Wrap(err, "failed to write wav header")
	}
	if err := binary.Write(w, binary.LittleEndian, data); err != nil {
		return errors.Wrap(err, "failed to write wav data")
	}
	return nil
}

// WriteWAVFile writes a clip to filename, creating its directory.
func WriteWAVFile(filename string, clip *types.Clip) error {
	if err := utils.MkDir(filepath.Dir(filename)); err != nil {
		return errors.Wrap(err, "failed to create directory")
	}
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	defer file.Close()

	if err := WriteWAV(file, clip.Samples, clip.SampleRate); err != nil {
		return err
	}
	return file.Close()
}

// ReadWAVHeader parses and validates the canonical 44-byte header of a
// 16-bit PCM WAV stream.
func ReadWAVHeader(r io.Reader) (types.WavHeader, error) {
	var raw [wavHeaderSize]byte
	var header types.WavHeader
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return header, errors.New("invalid WAV file size (too small)")
	}
	if err := binary.Read(bytes.NewReader(raw[:]), binary.LittleEndian, &header); err != nil {
		return header, err
	}
	if string(header.ChunkID[:]) != "RIFF" ||
		string(header.Format[:]) != "WAVE" ||
		header.AudioFormat != 1 {
		return header, errors.New("invalid WAV header format")
	}
	if header.BitsPerSample != 16 {
		return header, errors.New("unsupported bits-per-sample (expect 16-bit PCM)")
	}
	return header, nil
}
