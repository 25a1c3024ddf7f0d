package segmenter

import "interview-insights-go/internal/types"

// MajoritySpeaker returns the most frequent speaker tag. Ties go to the tag
// seen first.
func MajoritySpeaker(words []types.WordToken) string {
	order := make([]string, 0, 2)
	counts := make(map[string]int, 2)
	for _, w := range words {
		if _, ok := counts[w.SpeakerID]; !ok {
			order = append(order, w.SpeakerID)
		}
		counts[w.SpeakerID]++
	}
	best, bestN := "", 0
	for _, tag := range order {
		if counts[tag] > bestN {
			best, bestN = tag, counts[tag]
		}
	}
	return best
}

func countSpeaker(words []types.WordToken, tag string) int {
	n := 0
	for _, w := range words {
		if w.SpeakerID == tag {
			n++
		}
	}
	return n
}
