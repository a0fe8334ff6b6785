package interview

import (
	"math"

	"github.com/artem13815/hr-trainer/pkg/evaluation"
)

// OverallScore returns the mean of the five criteria rounded to two decimals.
func OverallScore(s evaluation.Scores) float64 {
	values := s.Values()
	var sum float64
	for _, v := range values {
		sum += v
	}
	return math.Round(sum/float64(len(values))*100) / 100
}
