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
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ademuri/listening-stats/internal/analysis"
	"github.com/ademuri/listening-stats/internal/session"
)

var chartsOut string
var chartsCmd = &cobra.Command{
	Use:   "charts <file>",
	Short: "Exports chart configurations as JSON",
	Long: `Writes one Chart.js-style configuration per chart: hours per month, top
artists, hours per hour of day and hours per weekday.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := withSession(args[0], func(s *session.Session) error {
			return exportCharts(chartsOut, s.Snapshot().Charts)
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(chartsCmd)

	chartsCmd.Flags().StringVarP(&chartsOut, "out", "o", "", "file to write (default is stdout)")
}

type chartConfig struct {
	ID   string    `json:"id"`
	Type string    `json:"type"`
	Data chartData `json:"data"`
}

type chartData struct {
	Labels   []string       `json:"labels"`
	Datasets []chartDataset `json:"datasets"`
}

type chartDataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

func chartConfigs(series []analysis.ChartSeries) []chartConfig {
	configs := make([]chartConfig, 0, len(series))
	for _, s := range series {
		configs = append(configs, chartConfig{
			ID:   s.ID,
			Type: string(s.Kind),
			Data: chartData{
				Labels:   s.Labels,
				Datasets: []chartDataset{{Label: s.Title, Data: s.Values}},
			},
		})
	}
	return configs
}

func writeCharts(out io.Writer, series []analysis.ChartSeries) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(chartConfigs(series)); err != nil {
		return fmt.Errorf("encoding charts: %w", err)
	}
	return nil
}

func exportCharts(path string, series []analysis.ChartSeries) error {
	if path == "" {
		return writeCharts(os.Stdout, series)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := writeCharts(f, series); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
