package tonality

import (
	"fmt"
	"strings"
)

type Quality int

const (
	Major Quality = iota
	Minor
)

func (q Quality) String() string {
	if q == Minor {
		return "minor"
	}
	return "major"
}

// Modifier is the suffix used in key labels: "" for major, "m" for minor.
func (q Quality) Modifier() string {
	if q == Minor {
		return "m"
	}
	return ""
}

// Key is a tonic plus a major/minor quality.
type Key struct {
	Tonic   PitchClass
	Quality Quality
}

// String renders the key as "A" or "Am".
func (k Key) String() string {
	return k.Tonic.String() + k.Quality.Modifier()
}

func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Key) UnmarshalText(b []byte) error {
	parsed, err := ParseKey(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKey reads a label produced by Key.String.
func ParseKey(label string) (Key, error) {
	label = strings.TrimSpace(label)
	quality := Major
	if strings.HasSuffix(label, "m") {
		quality = Minor
		label = strings.TrimSuffix(label, "m")
	}
	tonic, err := ParsePitchClass(label)
	if err != nil {
		return Key{}, fmt.Errorf("parse key: %w", err)
	}
	return Key{Tonic: tonic, Quality: quality}, nil
}

// Thirds returns the minor third (+3 semitones) and major third
// (+4 semitones) above tonic.
func Thirds(tonic PitchClass) (minor, major PitchClass) {
	return tonic.Add(3), tonic.Add(4)
}

// Classify picks the key of a summary. The tonic is the strongest pitch
// class. The key is major only when the major third is strictly stronger
// than the minor third; equal thirds give minor.
func Classify(s Summary) Key {
	tonic := s.Argmax()
	minor, major := Thirds(tonic)
	thirds := []float64{s.Intensity(minor), s.Intensity(major)}

	quality := Minor
	if argmax(thirds) == 1 {
		quality = Major
	}
	return Key{Tonic: tonic, Quality: quality}
}

// DetectKey summarizes a chromagram and classifies it.
func DetectKey(chroma [][]float64) (Key, Summary, error) {
	s, err := Summarize(chroma)
	if err != nil {
		return Key{}, Summary{}, err
	}
	return Classify(s), s, nil
}
