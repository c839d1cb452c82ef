package web

import "github.com/havenchat/haven/pkg/history"

// moodWindow is the number of most recent sentiment points the mood endpoint
// aggregates over.
const moodWindow = 20

// stableBand is the average-score delta treated as "no real movement".
const stableBand = 0.1

// averageScore returns the mean sentiment over the points, 0 for none.
func averageScore(points []history.MoodPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	var sum float64
	for _, p := range points {
		sum += p.Score
	}
	return sum / float64(len(points))
}

// trendDirection compares the average of the newer half of the timeline
// against the older half and classifies the movement as "improving",
// "declining", or "stable". Fewer than two points are always "stable".
func trendDirection(points []history.MoodPoint) string {
	if len(points) < 2 {
		return "stable"
	}

	mid := len(points) / 2
	var older, newer float64
	for _, p := range points[:mid] {
		older += p.Score
	}
	for _, p := range points[mid:] {
		newer += p.Score
	}
	older /= float64(mid)
	newer /= float64(len(points) - mid)

	switch delta := newer - older; {
	case delta > stableBand:
		return "improving"
	case delta < -stableBand:
		return "declining"
	default:
		return "stable"
	}
}
