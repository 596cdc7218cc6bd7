package cmd

import (
	"fmt"
	"os"

	"github.com/ademuri/listening-stats/internal/present"
	"github.com/ademuri/listening-stats/internal/session"
	"github.com/spf13/cobra"
)

var storiesCmd = &cobra.Command{
	Use:   "stories <file>",
	Short: "Prints the shareable story cards",
	Long:  `Builds the story deck (minutes, top artist, top track and more) as YAML, one entry per card.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := withSession(args[0], func(s *session.Session) error {
			return writeYAML(os.Stdout, present.StoryCards(s.Snapshot()))
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating stories: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(storiesCmd)
}
