package inference

import "fmt"

// Model names served by the inference service.
const (
	ModelStressLevel     = "stress_level_classifier"
	ModelMoodPredictor   = "mood_predictor"
	ModelAnxietyLevel    = "anxiety_level_classifier"
	ModelSleepQuality    = "sleep_quality_predictor"
	ModelUserNormalRange = "user_normal_range_predictor"
	ModelAnomalyDetector = "anomaly_detector"
)

// FeatureRequest is the flat feature payload sent to the inference service.
// Field names are camelCase on the wire; the service maps them to its
// snake_case feature configuration.
type FeatureRequest struct {
	EEGAlpha      float64 `json:"eegAlpha"`
	EEGBeta       float64 `json:"eegBeta"`
	EEGGamma      float64 `json:"eegGamma"`
	EEGTheta      float64 `json:"eegTheta"`
	EEGDelta      float64 `json:"eegDelta"`
	HeartRate     float64 `json:"heartRate"`
	GSR           float64 `json:"gsr"`
	SkinTemp      float64 `json:"skinTemp"`
	ActivityLevel float64 `json:"activityLevel"`
	SleepQuality  float64 `json:"sleepQuality"`
	HourOfDay     int     `json:"hourOfDay"`
	DayOfWeek     int     `json:"dayOfWeek"`
	UserID        int64   `json:"userId"`
	Age           int     `json:"age"`
	Gender        int     `json:"gender"`
	TimeOfDay     int     `json:"timeOfDay"`
	ActivityType  int     `json:"activityType"`
}

// Result is the inference service response. Prediction elements are class
// indices (numbers) or scores depending on the model; Probabilities is only
// present for classifiers.
type Result struct {
	Prediction    []any       `json:"prediction"`
	Probabilities [][]float64 `json:"probabilities,omitempty"`
	ModelID       string      `json:"modelId,omitempty"`
	ModelName     string      `json:"modelName"`
	Timestamp     string      `json:"timestamp"`
	Error         string      `json:"error,omitempty"`
}

// ModelOperationError wraps a lower-level failure from a model operation,
// preserving the original cause.
type ModelOperationError struct {
	Op  string
	Err error
}

func (e *ModelOperationError) Error() string {
	return fmt.Sprintf("model operation %s: %v", e.Op, e.Err)
}

func (e *ModelOperationError) Unwrap() error {
	return e.Err
}
