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
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ademuri/listening-stats/internal/present"
	"github.com/ademuri/listening-stats/internal/session"
)

var topTracksNumber int
var topTracksLinks bool
var topTracksCmd = &cobra.Command{
	Use:   "top-tracks <file>",
	Short: "Gets the most played tracks",
	Long:  `Ranks (track, artist) pairs by number of plays within the filtered plays.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := withSession(args[0], func(s *session.Session) error {
			config := AnalyserConfig{NumToReturn: topTracksNumber}
			return printAnalysis(s, TopTracksAnalyzer{Links: topTracksLinks}.SetConfig(config))
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topTracksCmd)

	topTracksCmd.Flags().IntVarP(&topTracksNumber, "number", "n", 10, "number of results to return")
	topTracksCmd.Flags().BoolVar(&topTracksLinks, "links", false, "add a search link for each track")
}

type TopTracksAnalyzer struct {
	Config AnalyserConfig
	Links  bool
}

func (t TopTracksAnalyzer) SetConfig(config AnalyserConfig) TopTracksAnalyzer {
	t.Config = config
	return t
}

func (t TopTracksAnalyzer) GetName() string {
	return "Top tracks"
}

func (t TopTracksAnalyzer) GetResults(s *session.Session) (analysis Analysis, err error) {
	counts, err := s.Store().GetTopTracksWithCount(0)
	if err != nil {
		err = fmt.Errorf("getting top tracks: %w", err)
		return
	}

	header := []string{"Track", "Artist", "Plays"}
	if t.Links {
		header = append(header, "Link")
	}
	analysis.results = [][]string{header}

	numTracks := 0
	var numPlays int64 = 0
	for _, c := range counts {
		numTracks += 1
		if (t.Config.NumToReturn == 0 || numTracks <= t.Config.NumToReturn) && (t.Config.FilterThreshold == 0 || c.Count > t.Config.FilterThreshold) {
			row := []string{c.Track, c.Artist, strconv.FormatInt(c.Count, 10)}
			if t.Links {
				row = append(row, present.SearchURL(c.Track+" "+c.Artist))
			}
			analysis.results = append(analysis.results, row)
		}
		numPlays += c.Count
	}

	analysis.summary = fmt.Sprintf("Found %d tracks and %d plays%s", numTracks, numPlays, periodSuffix(s))
	return
}
