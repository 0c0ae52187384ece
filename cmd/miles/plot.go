package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/TheoLvs/music-analysis/dsp"
	"github.com/TheoLvs/music-analysis/render"
	"github.com/TheoLvs/music-analysis/utils"
)

var (
	spectrogramFlags loadFlags
	chromagramFlags  loadFlags
	keysFlags        loadFlags

	spectrogramOut string
	chromagramOut  string
	keysOut        string
	wheelSize      int
)

var spectrogramCmd = &cobra.Command{
	Use:   "spectrogram <file>",
	Short: "Draw the mel spectrogram of a file in dB",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := spectrogramFlags.loadTrack(cmd, args[0])
		if err != nil {
			return err
		}
		db, err := t.SpectrogramDB()
		if err != nil {
			return err
		}
		out := outputPath(spectrogramOut, args[0], "spectrogram")
		return writeImage(out, func(f *os.File) error {
			return render.Spectrogram(f, db, t.Clip().SampleRate, dsp.DefaultHopSize, filepath.Base(args[0]))
		})
	},
}

var chromagramCmd = &cobra.Command{
	Use:   "chromagram <file>",
	Short: "Draw the chromagram of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := chromagramFlags.loadTrack(cmd, args[0])
		if err != nil {
			return err
		}
		chroma, err := t.Chromagram()
		if err != nil {
			return err
		}
		out := outputPath(chromagramOut, args[0], "chromagram")
		return writeImage(out, func(f *os.File) error {
			return render.Chromagram(f, chroma, t.Clip().SampleRate, dsp.DefaultHopSize, filepath.Base(args[0]))
		})
	},
}

var keysCmd = &cobra.Command{
	Use:   "keys [files...]",
	Short: "Draw the key wheel of one or more tracks",
	RunE: func(cmd *cobra.Command, args []string) error {
		pl, err := keysFlags.loadPlaylist(cmd, args)
		if err != nil {
			return err
		}
		profiles, err := pl.Summaries()
		if err != nil {
			return err
		}
		if len(profiles) == 0 {
			return errors.New("no track has tonal content")
		}

		wheels := make([]render.Wheel, len(profiles))
		for i, p := range profiles {
			wheels[i] = render.Wheel{Name: p.Path, Summary: p.Summary}
		}
		size := cfg.WheelSize
		if cmd.Flags().Changed("size") {
			size = wheelSize
		}
		out := keysOut
		if out == "" {
			out = filepath.Join(cfg.OutputDir, "keys.png")
		}
		return writeImage(out, func(f *os.File) error {
			return render.KeyWheel(f, wheels, size)
		})
	},
}

func init() {
	spectrogramFlags.register(spectrogramCmd, false)
	spectrogramCmd.Flags().StringVarP(&spectrogramOut, "output", "o", "", "PNG file to write")

	chromagramFlags.register(chromagramCmd, false)
	chromagramCmd.Flags().StringVarP(&chromagramOut, "output", "o", "", "PNG file to write")

	keysFlags.register(keysCmd, true)
	keysCmd.Flags().StringVarP(&keysOut, "output", "o", "", "PNG file to write")
	keysCmd.Flags().IntVar(&wheelSize, "size", 800, "image width and height in pixels")

	rootCmd.AddCommand(spectrogramCmd, chromagramCmd, keysCmd)
}

// outputPath defaults to <output dir>/<file name>.<kind>.png.
func outputPath(flag, input, kind string) string {
	if flag != "" {
		return flag
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(cfg.OutputDir, base+"."+kind+".png")
}

func writeImage(path string, draw func(f *os.File) error) error {
	if err := utils.MkDir(filepath.Dir(path)); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := draw(f); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	green.Println("Wrote", path)
	return nil
}
