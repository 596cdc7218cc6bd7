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
	"bytes"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/ademuri/listening-stats/internal/present"
	"github.com/ademuri/listening-stats/internal/session"
)

type Analysis struct {
	results [][]string
	summary string
}

type AnalyserConfig struct {
	// Number of results to return, default is all results.
	NumToReturn int

	// Only return results with more plays than this. Default is all results.
	FilterThreshold int64
}

type Analyser interface {
	GetResults(s *session.Session) (Analysis, error)

	GetName() string
}

func (a Analysis) String() string {
	out := new(bytes.Buffer)
	table := tablewriter.NewWriter(out)
	table.Header(a.results[0])
	for _, row := range a.results[1:] {
		if err := table.Append(row); err != nil {
			return fmt.Sprintf("Error rendering table: %v", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Sprintf("Error rendering table: %v", err)
	}
	if a.summary != "" {
		fmt.Fprintf(out, "%s\n", a.summary)
	}
	return out.String()
}

const barWidth = 10

// bar draws a proportion in [0,100] as a fixed-width text gauge.
func bar(p *float64) string {
	if p == nil {
		return ""
	}
	filled := int(*p/100*barWidth + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// metricsAnalysis renders one group of metric records.
func metricsAnalysis(records []present.MetricRecord) (analysis Analysis) {
	analysis.results = [][]string{{"Metric", "Value", "", "Description"}}
	for _, r := range records {
		analysis.results = append(analysis.results, []string{r.Label, r.Value, bar(r.Proportion), r.Description})
	}
	return
}
