package canonicalsample

import (
	"time"

	"github.com/kjordahl/fitvirb/fit"
	"github.com/kjordahl/fitvirb/fit/domain"
)

// Build flattens messages into one Sample per GPS sample. gps_metadata/160
// is preferred when present (VIRB's 10Hz track); otherwise the GPS subset
// of record/20 is used, the only one of the two that carries a distance
// field. Records with missing required fields are silently skipped
// (noFail), matching the teacher's best-effort canonical sample pass over
// a field that a given device may not have logged.
//
// HasAccelerometer/Gyroscope/Magnetometer/Barometer report whether that
// sensor type was logged anywhere in the file, not per-sample coverage:
// VIRB sensor streams run at a different rate than the GPS track and
// their samples don't line up index-for-index with it.
func Build(messages []fit.DataMessage, start time.Time) ([]Sample, error) {
	offsets := offsetByIndex(messages)
	coverage := sensorCoverage(messages)

	track, err := domain.GPSTrack(messages)
	if err != nil {
		return nil, err
	}
	if len(track) > 0 {
		out := make([]Sample, len(track))
		for i, gm := range track {
			out[i] = sampleFromPoint(gm.ToPoint(), start, gm.Index, offsets[gm.Index], coverage)
		}
		return out, nil
	}

	records, err := domain.Records(messages, true)
	if err != nil {
		return nil, err
	}
	out := make([]Sample, len(records))
	for i, rec := range records {
		s := sampleFromPoint(rec.ToPoint(), start, rec.Index, offsets[rec.Index], coverage)
		distance := float64(rec.Distance) / 100.0
		s.DistanceM = &distance
		out[i] = s
	}
	return out, nil
}

type sensorFlags struct {
	accel, gyro, mag, baro bool
}

func sensorCoverage(messages []fit.DataMessage) sensorFlags {
	var f sensorFlags
	for _, m := range messages {
		switch m.GlobalMessageNum {
		case domain.SensorAccelerometer.Global():
			f.accel = true
		case domain.SensorGyroscope.Global():
			f.gyro = true
		case domain.SensorMagnetometer.Global():
			f.mag = true
		case domain.SensorBarometer.Global():
			f.baro = true
		}
	}
	return f
}

func offsetByIndex(messages []fit.DataMessage) map[int]int {
	out := make(map[int]int, len(messages))
	for _, m := range messages {
		out[m.Index] = m.Offset
	}
	return out
}

func sampleFromPoint(p domain.Point, start time.Time, index, offset int, coverage sensorFlags) Sample {
	lat, lon, alt, speed2D := p.Latitude, p.Longitude, p.Altitude, p.Speed2D
	ts := start.Add(time.Duration(p.TimeSec * float64(time.Second)))
	s := Sample{
		TSUTCISO:         ts.UTC().Format(time.RFC3339Nano),
		ElapsedS:         p.TimeSec,
		Latitude:         &lat,
		Longitude:        &lon,
		AltitudeM:        &alt,
		Speed2DMPS:       &speed2D,
		HasAccelerometer: coverage.accel,
		HasGyroscope:     coverage.gyro,
		HasMagnetometer:  coverage.mag,
		HasBarometer:     coverage.baro,
		FileOffset:       offset,
		RecordIndex:      index,
	}
	if p.Speed3D != 0 {
		speed3D := p.Speed3D
		s.Speed3DMPS = &speed3D
	}
	return s
}
