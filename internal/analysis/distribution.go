package analysis

import (
	"math"
	"slices"

	"github.com/ademuri/listening-stats/internal/history"
)

const (
	skipThresholdMs = 30000
	paretoShare     = 0.8
)

// Distribution computes the inequality metrics over plays per artist.
func Distribution(events []history.Event) DistributionStats {
	counts := countValues(ArtistPlayCounts(events))
	return DistributionStats{
		Artists:         len(counts),
		Gini:            Gini(counts),
		Entropy:         Entropy(counts),
		HIndex:          HIndex(counts),
		ParetoPercent:   Pareto(counts),
		SkipRatePercent: SkipRate(events),
	}
}

// ArtistPlayCounts counts plays (not time) per distinct artist.
func ArtistPlayCounts(events []history.Event) map[string]int {
	counts := make(map[string]int)
	for _, e := range events {
		counts[e.Artist]++
	}
	return counts
}

// Gini returns the Gini coefficient of the counts, rounded to 3 places.
func Gini(counts []int) float64 {
	n := len(counts)
	if n == 0 {
		return 0
	}
	values := slices.Clone(counts)
	slices.Sort(values)

	var num, den float64
	for i, v := range values {
		num += float64(i+1) * float64(v)
		den += float64(v)
	}
	if den == 0 {
		return 0
	}
	nf := float64(n)
	return round(2*num/(nf*den)-(nf+1)/nf, 3)
}

// Entropy returns the Shannon entropy in bits of the distribution the
// counts describe, rounded to 2 places.
func Entropy(counts []int) float64 {
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return 0
	}

	var h float64
	for _, c := range counts {
		if c <= 0 {
			continue
		}
		p := float64(c) / float64(total)
		h -= p * math.Log2(p)
	}
	return round(h, 2)
}

// HIndex returns the largest k such that k artists have at least k plays.
// On descending counts the condition holds for a prefix only, so the walk
// stops at the first failure.
func HIndex(counts []int) int {
	values := descending(counts)
	h := 0
	for i, v := range values {
		if v < i+1 {
			break
		}
		h = i + 1
	}
	return h
}

// Pareto returns the share of artists, most played first, needed to cover
// 80% of all plays, as a percentage rounded to 1 place.
func Pareto(counts []int) float64 {
	values := descending(counts)
	total := 0
	for _, v := range values {
		total += v
	}
	if len(values) == 0 || total == 0 {
		return 0
	}

	target := float64(total) * paretoShare
	sum, needed := 0, 0
	for _, v := range values {
		sum += v
		needed++
		if float64(sum) >= target {
			break
		}
	}
	return percent(needed, len(values))
}

// SkipRate returns the percentage of plays shorter than 30 seconds.
func SkipRate(events []history.Event) float64 {
	skipped := 0
	for _, e := range events {
		if e.MsPlayed < skipThresholdMs {
			skipped++
		}
	}
	return percent(skipped, len(events))
}

func countValues(m map[string]int) []int {
	values := make([]int, 0, len(m))
	for _, v := range m {
		values = append(values, v)
	}
	slices.Sort(values)
	return values
}

func descending(counts []int) []int {
	values := slices.Clone(counts)
	slices.Sort(values)
	slices.Reverse(values)
	return values
}

// percent returns part/whole as a percentage rounded to 1 place, or 0 when
// whole is 0.
func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return round(float64(part)/float64(whole)*100, 1)
}

func round(x float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(x*scale) / scale
}
