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

	"github.com/spf13/cobra"

	"github.com/ademuri/listening-stats/internal/present"
	"github.com/ademuri/listening-stats/internal/session"
	"github.com/ademuri/listening-stats/internal/store"
)

var historyPage int
var historyPageSize int
var historyCmd = &cobra.Command{
	Use:   "history <file>",
	Short: "Lists plays, newest first",
	Long:  `Pages through the filtered plays, newest first.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := withSession(args[0], func(s *session.Session) error {
			return printAnalysis(s, HistoryAnalyzer{Page: historyPage, Size: historyPageSize})
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyPage, "page", "p", 1, "page to show, starting at 1")
	historyCmd.Flags().IntVar(&historyPageSize, "page_size", store.DefaultPageSize, "plays per page")
}

type HistoryAnalyzer struct {
	Page int
	Size int
}

func (h HistoryAnalyzer) GetName() string {
	return "History"
}

func (h HistoryAnalyzer) GetResults(s *session.Session) (analysis Analysis, err error) {
	events, err := s.Store().GetHistoryPage(h.Page, h.Size)
	if err != nil {
		return
	}
	pages, err := s.Store().PageCount(h.Size)
	if err != nil {
		return
	}
	total, err := s.Store().Count()
	if err != nil {
		return
	}

	analysis.results = [][]string{{"Played", "Artist", "Track", "Duration"}}
	for _, e := range events {
		analysis.results = append(analysis.results, []string{
			e.Timestamp.Format("2006-01-02 15:04"),
			e.Artist,
			e.Track,
			formatDuration(e.MsPlayed),
		})
	}
	analysis.summary = fmt.Sprintf("Page %d of %d (%s plays)", h.Page, pages, present.Number(int64(total)))
	return
}

// formatDuration renders milliseconds as m:ss.
func formatDuration(ms int64) string {
	seconds := ms / 1000
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
