package metrics

import "time"

// Metric types understood by the analysis pipeline. Arbitrary types are still
// accepted and stored.
const (
	TypeHeartRate        = "heart_rate"
	TypeBloodPressure    = "blood_pressure"
	TypeTemperature      = "temperature"
	TypeOxygenSaturation = "oxygen_saturation"
	TypeSteps            = "steps"
	TypeSleepHours       = "sleep_hours"
)

// CoreTypes lists the metric types fed into model inference.
var CoreTypes = []string{
	TypeHeartRate,
	TypeBloodPressure,
	TypeTemperature,
	TypeOxygenSaturation,
	TypeSteps,
	TypeSleepHours,
}

// Metric is a single recorded health measurement.
type Metric struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Type       string    `json:"type"`
	Value      float64   `json:"value"`
	Source     string    `json:"source,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// SaveRequest is the body for POST /api/health-metrics.
type SaveRequest struct {
	Type   string  `json:"type"`
	Value  float64 `json:"value"`
	Source string  `json:"source"`
}

// ListResponse wraps a metric collection.
type ListResponse struct {
	HealthMetrics []Metric `json:"health_metrics"`
}
