// Package tonality estimates the key of a track from its chromagram.
//
// A chromagram is summarized into one intensity per pitch class (the
// chroma intensity summary), and the key is read off that summary: the
// strongest pitch class is the tonic, and the stronger of its two
// candidate thirds decides between major and minor.
package tonality

import (
	"fmt"
	"strings"
)

// PitchClass is an octave-independent note, 0 for C through 11 for B.
type PitchClass int

const NumPitchClasses = 12

const (
	C PitchClass = iota
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	AFlat
	A
	BFlat
	B
)

// PitchClasses lists the labels of the chromatic scale starting at C.
// The order defines interval arithmetic.
var PitchClasses = [NumPitchClasses]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "Ab", "A", "Bb", "B"}

var enharmonics = map[string]PitchClass{
	"B#": C,
	"Db": CSharp,
	"Eb": DSharp,
	"Fb": E,
	"E#": F,
	"Gb": FSharp,
	"G#": AFlat,
	"A#": BFlat,
	"Cb": B,
}

func (p PitchClass) String() string {
	return PitchClasses[p.Add(0)]
}

// Add moves p by the given number of semitones, wrapping around the octave.
func (p PitchClass) Add(semitones int) PitchClass {
	return PitchClass(((int(p)+semitones)%NumPitchClasses + NumPitchClasses) % NumPitchClasses)
}

// ParsePitchClass accepts the labels of PitchClasses and their common
// enharmonic spellings (Db, G#, ...).
func ParsePitchClass(s string) (PitchClass, error) {
	s = strings.TrimSpace(s)
	for i, label := range PitchClasses {
		if label == s {
			return PitchClass(i), nil
		}
	}
	if p, ok := enharmonics[s]; ok {
		return p, nil
	}
	return 0, fmt.Errorf("unknown pitch class %q", s)
}

// argmax returns the index of the largest value; the first one wins ties.
func argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}

func (p PitchClass) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PitchClass) UnmarshalText(b []byte) error {
	parsed, err := ParsePitchClass(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
