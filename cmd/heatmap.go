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
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ademuri/listening-stats/internal/analysis"
	"github.com/ademuri/listening-stats/internal/history"
	"github.com/ademuri/listening-stats/internal/session"
)

var heatmapColor string
var heatmapCmd = &cobra.Command{
	Use:   "heatmap <file>",
	Short: "Draws a year of listening as a calendar grid",
	Long: `Draws 53 weeks of plays per day ending today. Darker cells mean more plays,
relative to the busiest day shown.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		colorize, err := colorMode(heatmapColor, os.Stdout)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		err = withSession(args[0], func(s *session.Session) error {
			renderHeatmap(os.Stdout, s.Snapshot().Calendar, colorize)
			return nil
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(heatmapCmd)

	heatmapCmd.Flags().StringVar(&heatmapColor, "color", "auto", "colour output: auto, always or never")
}

const ansiReset = "\x1b[0m"

// heatColors are 256-colour backgrounds for levels 0 through 4.
var heatColors = [...]string{
	"\x1b[48;5;236m",
	"\x1b[48;5;22m",
	"\x1b[48;5;28m",
	"\x1b[48;5;34m",
	"\x1b[48;5;46m",
}

// heatGlyphs stand in for colour when output is not a terminal.
var heatGlyphs = [...]string{"·", "░", "▒", "▓", "█"}

func colorMode(mode string, out *os.File) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		fd := out.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd), nil
	default:
		return false, fmt.Errorf("--color: unsupported value %q", mode)
	}
}

func heatCell(level int, colorize bool) string {
	if colorize {
		return heatColors[level] + " " + ansiReset
	}
	return heatGlyphs[level]
}

// renderHeatmap prints one row per day of the week and one column per week.
func renderHeatmap(out io.Writer, grid analysis.CalendarGrid, colorize bool) {
	fmt.Fprintf(out, "%s to %s\n", grid.Start.Format(history.DayFormat), grid.End.Format(history.DayFormat))

	for day := 0; day < 7; day++ {
		var row strings.Builder
		if len(grid.Weeks) > 0 {
			fmt.Fprintf(&row, "%s ", grid.Weeks[0][day].Date.Weekday().String()[:3])
		}
		for _, week := range grid.Weeks {
			row.WriteString(heatCell(week[day].Level, colorize))
		}
		fmt.Fprintln(out, row.String())
	}

	var legend strings.Builder
	legend.WriteString("Less ")
	for level := range heatColors {
		legend.WriteString(heatCell(level, colorize))
	}
	legend.WriteString(" More")
	fmt.Fprintln(out, legend.String())
	fmt.Fprintf(out, "Scale: %d plays per day over %d weeks\n", grid.Max, len(grid.Weeks))
}
