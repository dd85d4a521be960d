package motif

import "math"

// ScoreQuadruplex scores a matched span's quadruplex-forming potential.
//
// The score starts at 100 times the G fraction. If the span has at least
// four maximal G-runs it gains 10 per run plus 5 times the mean run
// length. Spans whose maximal non-G stretches average more than 5 bases
// lose 20%, since long loops make for less stable quadruplexes.
func ScoreQuadruplex(text string) float64 {
	if len(text) == 0 {
		return 0
	}

	score := baseFraction(text, 'G') * 100

	runs, nonG := stretches(text)
	if len(runs) >= 4 {
		score += float64(len(runs)) * 10
		score += meanLength(runs) * 5
	}

	if len(nonG) > 0 && meanLength(nonG) > 5 {
		score *= 0.8
	}

	return math.Round(score*100) / 100
}

// stretches splits text into maximal runs of G and maximal runs of
// everything else. Ambiguity codes and malformed characters both fall
// into the non-G stretches.
func stretches(text string) (gRuns, nonG []int) {
	i := 0
	for i < len(text) {
		j := i
		isG := text[i] == 'G'
		for j < len(text) && (text[j] == 'G') == isG {
			j++
		}
		if isG {
			gRuns = append(gRuns, j-i)
		} else {
			nonG = append(nonG, j-i)
		}
		i = j
	}
	return gRuns, nonG
}

func meanLength(lengths []int) float64 {
	sum := 0
	for _, l := range lengths {
		sum += l
	}
	return float64(sum) / float64(len(lengths))
}
