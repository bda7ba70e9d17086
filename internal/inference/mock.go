package inference

import (
	"strings"
	"time"
)

// mockResult returns the canned response served when the inference service is
// unreachable or the caller has no recent measurements to analyze.
func mockResult(modelName string) Result {
	result := Result{
		ModelName: modelName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	switch strings.ToLower(modelName) {
	case ModelStressLevel:
		result.Prediction = []any{1}
		result.Probabilities = [][]float64{{0.2, 0.6, 0.2}}
	case ModelMoodPredictor:
		result.Prediction = []any{2}
		result.Probabilities = [][]float64{{0.1, 0.2, 0.7}}
	case ModelAnxietyLevel:
		result.Prediction = []any{0}
		result.Probabilities = [][]float64{{0.7, 0.2, 0.1}}
	case ModelSleepQuality:
		result.Prediction = []any{7.5}
	case ModelUserNormalRange:
		result.Prediction = []any{1}
	case ModelAnomalyDetector:
		result.Prediction = []any{0}
	default:
		result.Prediction = []any{0}
	}
	return result
}
