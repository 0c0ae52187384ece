package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/TheoLvs/music-analysis/track"
)

var analyzeFlags loadFlags
var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze [files...]",
	Short: "Print duration, tempo and key of each track",
	RunE: func(cmd *cobra.Command, args []string) error {
		pl, err := analyzeFlags.loadPlaylist(cmd, args)
		if err != nil {
			return err
		}
		descriptions, err := pl.Describe()
		if err != nil {
			return err
		}

		if analyzeJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(descriptions)
		}
		printTable(descriptions)
		return nil
	},
}

func init() {
	analyzeFlags.register(analyzeCmd, true)
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print JSON instead of a table")
	rootCmd.AddCommand(analyzeCmd)
}

func printTable(descriptions []track.Description) {
	yellow.Printf("%-40s %10s %8s %8s %6s %5s\n", "TRACK", "SIZE", "LENGTH", "TEMPO", "BEATS", "KEY")
	for _, d := range descriptions {
		size := "-"
		if info, err := os.Stat(d.Path); err == nil {
			size = humanize.Bytes(uint64(info.Size()))
		}
		key := d.Key
		if key == "" {
			key = "-"
		}
		length := time.Duration(d.Duration * float64(time.Second)).Round(time.Second)
		fmt.Printf("%-40s %10s %8s %8.2f %6s %5s\n",
			truncate(filepath.Base(d.Path), 40), size, length, d.Tempo, humanize.Comma(int64(d.Beats)), key)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
