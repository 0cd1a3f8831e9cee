package scoring

import (
	"math"

	"github.com/jonathan/candidate-matcher/internal/types"
)

// Confidence weighting: score consistency dominates, pre-filter agreement
// contributes the rest.
const (
	varianceWeight  = 0.6
	alignmentWeight = 0.4

	// Variance is taken on the 0-100 score scale; the factor bottoms out at
	// 0.7 no matter how scattered the dimensions are.
	varianceDivisor = 1000.0
	varianceFloor   = 0.3
)

// Confidence estimates how much to trust an overall score, in [0,1]. It blends
// two signals: how consistent the available dimension scores are (high
// variance means the evaluator saw a mixed picture) and how closely the mean
// dimension score tracks the pre-filter similarity. Callers without a
// similarity reading should omit confidence rather than pass a placeholder.
func Confidence(scores []types.DimensionScore, similarity float64) float64 {
	values := make([]float64, 0, len(scores))
	for i := range scores {
		if scores[i].Available() {
			values = append(values, *scores[i].Score)
		}
	}
	if len(values) == 0 {
		return 0
	}

	// Dimension scores live on [0,1]; the variance divisor assumes the
	// 0-100 scale, so rescale before dividing.
	varianceFactor := 1.0 - math.Min(variance(values)*10000/varianceDivisor, varianceFloor)

	alignment := 1.0 - math.Abs(mean(values)-similarity)

	return clamp(varianceFactor*varianceWeight+alignment*alignmentWeight, 0, 1)
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func variance(values []float64) float64 {
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return sum / float64(len(values))
}
