package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/ademuri/listening-stats/internal/session"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var reportCmd = &cobra.Command{
	Use:   "report <file>",
	Short: "Generates a comprehensive listening report",
	Long:  `Analyzes your listening history to generate a detailed YAML report of every metric group, top tracks and chart series.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := withSession(args[0], func(s *session.Session) error {
			return writeYAML(os.Stdout, s.Snapshot())
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating report: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func writeYAML(out io.Writer, v any) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return encoder.Close()
}
