/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ademuri/listening-stats/internal/session"
)

var (
	limitArtists int
	limitTracks  int
)

var topNCmd = &cobra.Command{
	Use:   "top-n <file>",
	Short: "Generates a textual summary of listening",
	Long:  `Generates a plain-text summary of the top artists and tracks in the filtered plays.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := withSession(args[0], func(s *session.Session) error {
			return printTopN(os.Stdout, s, limitArtists, limitTracks)
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topNCmd)
	topNCmd.Flags().IntVar(&limitArtists, "artists", 10, "Number of top artists to show")
	topNCmd.Flags().IntVar(&limitTracks, "tracks", 10, "Number of top tracks to show")
}

func printTopN(out io.Writer, s *session.Session, limitArtists, limitTracks int) error {
	totalPlays, err := s.Store().Count()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Listening Summary\n")
	if working := s.Working(); len(working) > 0 {
		fmt.Fprintf(out, "Period: %s to %s\n",
			working[0].Timestamp.Format("2006-01-02"), working[len(working)-1].Timestamp.Format("2006-01-02"))
	}
	fmt.Fprintf(out, "Total Plays: %d\n\n", totalPlays)

	if limitArtists > 0 {
		artists, err := s.Store().GetTopArtistsWithCount(limitArtists)
		if err != nil {
			return fmt.Errorf("querying artists: %w", err)
		}

		fmt.Fprintf(out, "## Top %d Artists\n", limitArtists)
		for i, a := range artists {
			fmt.Fprintf(out, "%d. %s (%d) - %.1f%% of plays\n", i+1, a.Artist, a.Count, share(a.Count, totalPlays))
		}
		fmt.Fprintln(out)
	}

	if limitTracks > 0 {
		tracks, err := s.Store().GetTopTracksWithCount(limitTracks)
		if err != nil {
			return fmt.Errorf("querying tracks: %w", err)
		}

		fmt.Fprintf(out, "## Top %d Tracks\n", limitTracks)
		for i, t := range tracks {
			fmt.Fprintf(out, "%d. %s - %s (%d)\n", i+1, t.Track, t.Artist, t.Count)
		}
		fmt.Fprintln(out)
	}

	return nil
}

func share(count int64, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
