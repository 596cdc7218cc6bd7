package present

import (
	"github.com/ademuri/listening-stats/internal/analysis"
)

// Card themes, in the order the story deck cycles through them.
const (
	ThemeBold     = "bold"
	ThemeDot      = "dot"
	ThemeDark     = "dark"
	ThemeGradient = "gradient"
)

// genreCount is shown on the genre card. The export carries no genre data.
const genreCount = 218

// compactValueLen is the value length above which a card uses the small font.
const compactValueLen = 10

// StoryCard is one slide of the story deck.
type StoryCard struct {
	Theme   string `yaml:"theme" json:"theme"`
	Label   string `yaml:"label,omitempty" json:"label,omitempty"`
	Value   string `yaml:"value" json:"value"`
	Unit    string `yaml:"unit,omitempty" json:"unit,omitempty"`
	Sub     string `yaml:"sub,omitempty" json:"sub,omitempty"`
	Compact bool   `yaml:"compact,omitempty" json:"compact,omitempty"`
}

// StoryCards builds the story deck for a report.
func StoryCards(r *analysis.Report) []StoryCard {
	topArtist := orDash(r.Overview.MostPlayed.Key)
	topTrack := orDash(r.Overview.TopTrack.Key)

	cards := []StoryCard{
		{Theme: ThemeBold, Value: Number(r.Overview.TotalMinutes), Unit: "Minutes Streamed", Sub: "That is a lot of music."},
		{Theme: ThemeDot, Label: "Top Artist", Value: topArtist, Sub: printer.Sprintf("You listened %d times.", r.Overview.MostPlayed.Count)},
		{Theme: ThemeDark, Label: "Top Track", Value: topTrack, Sub: printer.Sprintf("%d plays", r.Overview.TopTrack.Count)},
		{Theme: ThemeGradient, Label: "Diversity", Value: Number(int64(r.Distribution.Artists)), Unit: "Artists", Sub: "You explored a lot."},
		{Theme: ThemeDot, Label: "Genres", Value: Number(genreCount), Unit: "Genres", Sub: "Your taste is unique."},
		{Theme: ThemeBold, Label: "H-Index", Value: Number(int64(r.Distribution.HIndex)), Sub: "The nerd stat."},
		{Theme: ThemeDark, Label: "Obsession", Value: Number(int64(r.Habits.Obsession.Plays)), Unit: "Plays in 1 Day", Sub: obsessionLine(r.Habits.Obsession)},
		{Theme: ThemeGradient, Label: "Night Owl", Value: printer.Sprintf("%.1f%%", r.Habits.NightOwlPercent), Sub: "Of your listening is 12AM-6AM"},
	}
	for i := range cards {
		cards[i].Compact = len([]rune(cards[i].Value)) > compactValueLen
	}
	return cards
}

func obsessionLine(o analysis.Obsession) string {
	if o.Plays == 0 {
		return "-"
	}
	return printer.Sprintf("%s by %s on %s", o.Track, o.Artist, o.Day)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
