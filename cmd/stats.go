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

	"github.com/ademuri/listening-stats/internal/analysis"
	"github.com/ademuri/listening-stats/internal/present"
	"github.com/ademuri/listening-stats/internal/session"
)

var statsCmd = &cobra.Command{
	Use:   "stats <file>",
	Short: "Prints distribution, habit and discovery metrics",
	Long:  `Reads a streaming-history export and prints three tables of metrics for the filtered plays.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := withSession(args[0], func(s *session.Session) error {
			return printStats(os.Stdout, s.Snapshot())
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func printStats(out io.Writer, report *analysis.Report) error {
	o := report.Overview
	fmt.Fprintf(out, "%s plays, %s minutes over %d active days\n",
		present.Number(int64(o.TotalPlays)), present.Number(o.TotalMinutes), report.Metadata.ActiveDays)
	if report.Metadata.FirstPlay != "" {
		fmt.Fprintf(out, "From %s to %s\n", report.Metadata.FirstPlay, report.Metadata.LastPlay)
	}

	groups := []struct {
		name    string
		records []present.MetricRecord
	}{
		{"The Math", present.MathRecords(report.Distribution)},
		{"Habits", present.HabitRecords(report.Habits)},
		{"Discovery", present.DiscoveryRecords(report.Discovery)},
	}
	for _, g := range groups {
		fmt.Fprintf(out, "\n## %s\n", g.name)
		fmt.Fprint(out, metricsAnalysis(g.records))
	}
	return nil
}
