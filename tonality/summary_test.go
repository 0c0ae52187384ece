package tonality

import (
	"encoding/json"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheoLvs/music-analysis/types"
)

func chromaOf(frames int, fill func(pc, t int) float64) [][]float64 {
	chroma := make([][]float64, NumPitchClasses)
	for pc := range chroma {
		chroma[pc] = make([]float64, frames)
		for t := range chroma[pc] {
			chroma[pc][t] = fill(pc, t)
		}
	}
	return chroma
}

func TestSummarizeSumsAndNormalizes(t *testing.T) {
	chroma := chromaOf(3, func(pc, t int) float64 { return float64(pc + 1) })

	s, err := Summarize(chroma)
	require.NoError(t, err)
	for pc := 0; pc < NumPitchClasses; pc++ {
		assert.InDelta(t, float64(pc+1)/12, s[pc], 1e-12)
	}
	assert.Equal(t, 1.0, s[B])
	assert.Equal(t, B, s.Argmax())
}

func TestSummarizeNormalizationLaw(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for n := 0; n < 200; n++ {
		frames := 1 + r.IntN(40)
		chroma := chromaOf(frames, func(pc, t int) float64 { return r.Float64() * 1e3 })

		s, err := Summarize(chroma)
		require.NoError(t, err)

		max := 0.0
		for _, v := range s {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
			max = math.Max(max, v)
		}
		assert.Equal(t, 1.0, max)
	}
}

func TestSummarizeDegenerate(t *testing.T) {
	silent := chromaOf(10, func(pc, t int) float64 { return 0 })
	_, err := Summarize(silent)
	assert.ErrorIs(t, err, types.ErrDegenerateInput)

	_, err = Summarize(chromaOf(0, nil))
	assert.ErrorIs(t, err, types.ErrDegenerateInput)
}

func TestSummarizeMalformed(t *testing.T) {
	_, err := Summarize(make([][]float64, 11))
	assert.ErrorIs(t, err, types.ErrMalformedChroma)

	ragged := chromaOf(4, func(pc, t int) float64 { return 1 })
	ragged[5] = ragged[5][:2]
	_, err = Summarize(ragged)
	assert.ErrorIs(t, err, types.ErrMalformedChroma)

	negative := chromaOf(2, func(pc, t int) float64 { return 1 })
	negative[3][1] = -1
	_, err = Summarize(negative)
	assert.ErrorIs(t, err, types.ErrMalformedChroma)

	nan := chromaOf(2, func(pc, t int) float64 { return 1 })
	nan[0][0] = math.NaN()
	_, err = Summarize(nan)
	assert.ErrorIs(t, err, types.ErrMalformedChroma)

	overflow := chromaOf(2, func(pc, t int) float64 { return 0.1 })
	overflow[7] = []float64{1e308, 1e308}
	_, err = Summarize(overflow)
	assert.ErrorIs(t, err, types.ErrMalformedChroma)
	assert.NotErrorIs(t, err, types.ErrDegenerateInput)
}

func TestNewSummaryValidation(t *testing.T) {
	_, err := NewSummary(flat(3, 0.2)[:11])
	assert.ErrorIs(t, err, types.ErrMalformedChroma)

	noPeak := flat(3, 0.2)
	noPeak[3] = 0.9
	_, err = NewSummary(noPeak)
	assert.ErrorIs(t, err, types.ErrMalformedChroma)

	tooLoud := flat(3, 0.2)
	tooLoud[4] = 1.5
	_, err = NewSummary(tooLoud)
	assert.ErrorIs(t, err, types.ErrMalformedChroma)
}

func TestSummaryEntriesOrder(t *testing.T) {
	s := mustSummary(t, flat(9, 0.25))
	entries := s.Entries()
	require.Len(t, entries, NumPitchClasses)
	for i, e := range entries {
		assert.Equal(t, PitchClasses[i], e.PitchClass.String())
	}
	assert.Equal(t, 1.0, entries[9].Intensity)

	b, err := json.Marshal(entries[:2])
	require.NoError(t, err)
	assert.JSONEq(t, `[{"key":"C","intensity":0.25},{"key":"C#","intensity":0.25}]`, string(b))
}

func TestPitchClassAdd(t *testing.T) {
	assert.Equal(t, C, B.Add(1))
	assert.Equal(t, B, C.Add(-1))
	assert.Equal(t, E, C.Add(28))
	assert.Equal(t, "Ab", AFlat.String())
}
