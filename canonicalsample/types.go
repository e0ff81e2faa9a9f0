// Package canonicalsample flattens a decoded FIT message sequence into one
// row per GPS sample (record/20 or gps_metadata/160), writing Parquet or
// CSV exactly in the teacher's pipeline package's shape, generalized from
// cycling power/HR/cadence columns to GPS/sensor columns.
package canonicalsample

// Sample is one flattened GPS/sensor row.
type Sample struct {
	TSUTCISO         string
	ElapsedS         float64
	Latitude         *float64
	Longitude        *float64
	AltitudeM        *float64
	Speed2DMPS       *float64
	Speed3DMPS       *float64
	DistanceM        *float64
	HasAccelerometer bool
	HasGyroscope     bool
	HasMagnetometer  bool
	HasBarometer     bool
	FileOffset       int
	RecordIndex      int
}
