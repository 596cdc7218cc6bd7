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

	"github.com/ademuri/listening-stats/internal/session"
)

var topArtistsNumber int
var topArtistsCmd = &cobra.Command{
	Use:   "top-artists <file>",
	Short: "Gets the most played artists",
	Long:  `Ranks artists by number of plays within the filtered plays.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := withSession(args[0], func(s *session.Session) error {
			return printAnalysis(s, TopArtistsAnalyzer{}.SetConfig(AnalyserConfig{NumToReturn: topArtistsNumber}))
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topArtistsCmd)

	topArtistsCmd.Flags().IntVarP(&topArtistsNumber, "number", "n", 10, "number of results to return")
}

func printAnalysis(s *session.Session, a Analyser) error {
	out, err := a.GetResults(s)
	if err != nil {
		return fmt.Errorf("%s: %w", a.GetName(), err)
	}
	fmt.Println(out)
	return nil
}

type TopArtistsAnalyzer struct {
	Config AnalyserConfig
}

func (t TopArtistsAnalyzer) SetConfig(config AnalyserConfig) TopArtistsAnalyzer {
	t.Config = config
	return t
}

func (t TopArtistsAnalyzer) GetName() string {
	return "Top artists"
}

func (t TopArtistsAnalyzer) GetResults(s *session.Session) (analysis Analysis, err error) {
	counts, err := s.Store().GetTopArtistsWithCount(0)
	if err != nil {
		err = fmt.Errorf("getting top artists: %w", err)
		return
	}

	numArtists := 0
	var numPlays int64 = 0
	analysis.results = [][]string{{"Artist", "Plays"}}
	for _, c := range counts {
		numArtists += 1
		if (t.Config.NumToReturn == 0 || numArtists <= t.Config.NumToReturn) && (t.Config.FilterThreshold == 0 || c.Count > t.Config.FilterThreshold) {
			analysis.results = append(analysis.results, []string{c.Artist, strconv.FormatInt(c.Count, 10)})
		}
		numPlays += c.Count
	}

	analysis.summary = fmt.Sprintf("Found %d artists and %d plays%s", numArtists, numPlays, periodSuffix(s))
	return
}

// periodSuffix describes the span of the working set for table summaries.
func periodSuffix(s *session.Session) string {
	working := s.Working()
	if len(working) == 0 {
		return ""
	}
	const dateFormat = "2006-01-02"
	return fmt.Sprintf(" from %s to %s",
		working[0].Timestamp.Format(dateFormat), working[len(working)-1].Timestamp.Format(dateFormat))
}
