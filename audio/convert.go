package audio

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/TheoLvs/music-analysis/utils"
)

// HasFFmpeg reports whether an ffmpeg binary is on PATH.
func HasFFmpeg() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

// ConvertToWAV transcodes any ffmpeg-readable file into a 16-bit mono WAV
// at sampleRate inside outDir and returns the new path. The input is left
// untouched.
func ConvertToWAV(ctx context.Context, inputFilePath, outDir string, sampleRate int) (string, error) {
	if _, err := os.Stat(inputFilePath); err != nil {
		return "", errors.Wrap(err, "input file does not exist")
	}
	if err := utils.MkDir(outDir); err != nil {
		return "", err
	}

	base := filepath.Base(inputFilePath)
	outputFile := filepath.Join(outDir, strings.TrimSuffix(base, filepath.Ext(base))+".wav")
	tmpFile := filepath.Join(outDir, "tmp_"+filepath.Base(outputFile))
	defer os.Remove(tmpFile)

	cmd := exec.CommandContext(ctx,
		"ffmpeg",
		"-y",
		"-i", inputFilePath,
		"-c", "pcm_s16le",
		"-ar", strconv.Itoa(sampleRate),
		"-ac", "1",
		tmpFile,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", errors.Errorf("failed to convert to WAV: %v, output %v", err, string(output))
	}

	if err := checkWAV(tmpFile); err != nil {
		return "", err
	}
	if err := utils.MoveFile(tmpFile, outputFile); err != nil {
		return "", errors.Wrap(err, "failed to rename temporary file to output file")
	}
	return outputFile, nil
}

func checkWAV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = ReadWAVHeader(f)
	return err
}
