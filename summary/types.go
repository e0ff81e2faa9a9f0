// Package summary computes aggregate session statistics over a decoded
// VIRB recording and renders a human-readable report, grounded on the
// teacher's analyzer.go/notes.go/structure.go, re-pointed from cycling
// training-load analytics to recording-session analytics.
package summary

import "time"

// Summary is the aggregate view of one or more recording sessions within
// a decoded message sequence, the VIRB-domain analogue of the teacher's
// Analysis struct.
type Summary struct {
	SessionCount       int              `json:"session_count"`
	StartTime          time.Time        `json:"start_time"`
	EndTime            time.Time        `json:"end_time"`
	ElapsedSeconds     float64          `json:"elapsed_seconds"`
	DistanceMeters     float64          `json:"distance_meters"`
	ElevationGainM     float64          `json:"elevation_gain_m"`
	ElevationLossM     float64          `json:"elevation_loss_m"`
	AvgSpeed2DMps      float64          `json:"avg_speed_2d_mps"`
	MaxSpeed2DMps      float64          `json:"max_speed_2d_mps"`
	AvgSpeed3DMps      float64          `json:"avg_speed_3d_mps"`
	MaxSpeed3DMps      float64          `json:"max_speed_3d_mps"`
	GPSSampleCount     int              `json:"gps_sample_count"`
	AccelerometerCount int              `json:"accelerometer_sample_count"`
	GyroscopeCount     int              `json:"gyroscope_sample_count"`
	MagnetometerCount  int              `json:"magnetometer_sample_count"`
	BarometerCount     int              `json:"barometer_sample_count"`
	CameraEventCount   int              `json:"camera_event_count"`
	ClipUUIDCount      int              `json:"clip_uuid_count"`
	Structure          SessionStructure `json:"structure"`
	Notes              string           `json:"notes"`
}
