package types

// Clip is a decoded, mono waveform ready for analysis.
type Clip struct {
	Samples    []float64
	SampleRate int
	Channels   int // channel count of the source before mixdown
	Duration   float64
}

// Len returns the number of samples in the clip.
func (c *Clip) Len() int {
	return len(c.Samples)
}

type WavHeader struct {
	ChunkID       [4]byte
	ChunkSize     uint32
	Format        [4]byte
	Subchunk1ID   [4]byte
	Subchunk1Size uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Subchunk2ID   [4]byte
	Subchunk2Size uint32
}

// Metadata holds the tags read from an audio file. Every field is optional.
type Metadata struct {
	Title       string `json:"title,omitempty"`
	Artist      string `json:"artist,omitempty"`
	Album       string `json:"album,omitempty"`
	Genre       string `json:"genre,omitempty"`
	Year        int    `json:"year,omitempty"`
	FileType    string `json:"file_type,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}
