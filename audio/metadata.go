package audio

import (
	"io"
	"os"

	"github.com/dhowden/tag"
	"github.com/gabriel-vasile/mimetype"

	"github.com/TheoLvs/music-analysis/types"
)

// ReadMetadata returns the tags embedded in an audio file. Files without
// readable tags yield a Metadata carrying only the sniffed content type.
func ReadMetadata(path string) (types.Metadata, error) {
	var meta types.Metadata

	f, err := os.Open(path)
	if err != nil {
		return meta, &types.LoadError{Path: path, Err: err}
	}
	defer f.Close()

	mime, err := mimetype.DetectReader(f)
	if err != nil {
		return meta, &types.LoadError{Path: path, Err: err}
	}
	meta.ContentType = mime.String()

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return meta, &types.LoadError{Path: path, Err: err}
	}
	tags, err := tag.ReadFrom(f) // untagged or unreadable tags are not an error
	if err != nil {
		return meta, nil
	}

	meta.Title = tags.Title()
	meta.Artist = tags.Artist()
	meta.Album = tags.Album()
	meta.Genre = tags.Genre()
	meta.Year = tags.Year()
	meta.FileType = string(tags.FileType())
	return meta, nil
}
