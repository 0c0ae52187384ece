package track

import (
	"github.com/pkg/errors"

	"github.com/TheoLvs/music-analysis/tonality"
	"github.com/TheoLvs/music-analysis/types"
)

// Description gathers the headline features of a track.
type Description struct {
	Path     string           `json:"path"`
	Duration float64          `json:"duration"`
	Tempo    float64          `json:"tempo"`
	Beats    int              `json:"beats"`
	Key      string           `json:"key,omitempty"`
	Keys     []tonality.Entry `json:"keys,omitempty"`
	Metadata types.Metadata   `json:"metadata"`
}

// Describe computes tempo, key and duration. A silent track is described
// without a key rather than failing.
func (t *Track) Describe() (Description, error) {
	d := Description{
		Path:     t.path,
		Duration: t.Duration(),
		Metadata: t.meta,
	}

	tempo, err := t.Tempo()
	if err != nil {
		return d, err
	}
	d.Tempo = tempo
	d.Beats = len(t.beatFrames)

	key, err := t.Key()
	switch {
	case errors.Is(err, types.ErrDegenerateInput):
		t.log.Warn("No tonal energy, skipping key")
	case err != nil:
		return d, err
	default:
		d.Key = key.String()
		d.Keys = t.summary.Entries()
	}
	return d, nil
}
