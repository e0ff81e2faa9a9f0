package summary

import (
	"math"
	"time"

	"github.com/kjordahl/fitvirb/fit"
	"github.com/kjordahl/fitvirb/fit/domain"
	"github.com/kjordahl/fitvirb/fit/session"
)

// Summarize computes aggregate statistics over a decoded message
// sequence, its detected session spans, and its GPS track. start anchors
// relative timestamps to an absolute time, as produced by
// session.StartTime.
func Summarize(messages []fit.DataMessage, spans []session.Span, track []domain.GpsMetadata, start time.Time) (Summary, error) {
	s := Summary{SessionCount: len(spans)}

	for _, span := range spans {
		s.ClipUUIDCount += len(span.UUIDs)
	}

	events, err := domain.CameraEvents(messages)
	if err != nil {
		return Summary{}, err
	}
	s.CameraEventCount = len(events)

	for _, m := range messages {
		switch m.GlobalMessageNum {
		case domain.SensorAccelerometer.Global():
			s.AccelerometerCount++
		case domain.SensorGyroscope.Global():
			s.GyroscopeCount++
		case domain.SensorMagnetometer.Global():
			s.MagnetometerCount++
		case domain.SensorBarometer.Global():
			s.BarometerCount++
		}
	}

	points, err := trackPoints(messages, track)
	if err != nil {
		return Summary{}, err
	}
	s.GPSSampleCount = len(points)
	summarizeTrack(&s, points, start)

	s.Structure = DetectStructure(spans, messages)
	s.Notes = BuildNotes(s)
	return s, nil
}

// trackPoints returns track if the caller already resolved it, else
// derives it from messages directly, preferring gps_metadata/160 and
// falling back to record/20's GPS subset, matching canonicalsample.Build.
func trackPoints(messages []fit.DataMessage, track []domain.GpsMetadata) ([]domain.Point, error) {
	if len(track) > 0 {
		out := make([]domain.Point, len(track))
		for i, gm := range track {
			out[i] = gm.ToPoint()
		}
		return out, nil
	}

	gpsTrack, err := domain.GPSTrack(messages)
	if err != nil {
		return nil, err
	}
	if len(gpsTrack) > 0 {
		out := make([]domain.Point, len(gpsTrack))
		for i, gm := range gpsTrack {
			out[i] = gm.ToPoint()
		}
		return out, nil
	}

	records, err := domain.Records(messages, true)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Point, len(records))
	for i, rec := range records {
		out[i] = rec.ToPoint()
	}
	return out, nil
}

func summarizeTrack(s *Summary, points []domain.Point, start time.Time) {
	if len(points) == 0 {
		return
	}

	var speed2DSum, speed3DSum float64
	var speed3DCount int
	prevAlt := points[0].Altitude
	haveAlt := true

	for _, p := range points {
		if p.Speed2D > s.MaxSpeed2DMps {
			s.MaxSpeed2DMps = p.Speed2D
		}
		speed2DSum += p.Speed2D

		if p.Speed3D > 0 {
			if p.Speed3D > s.MaxSpeed3DMps {
				s.MaxSpeed3DMps = p.Speed3D
			}
			speed3DSum += p.Speed3D
			speed3DCount++
		}

		if haveAlt {
			delta := p.Altitude - prevAlt
			if delta > 0 {
				s.ElevationGainM += delta
			} else {
				s.ElevationLossM += -delta
			}
			prevAlt = p.Altitude
		}
	}

	s.AvgSpeed2DMps = speed2DSum / float64(len(points))
	if speed3DCount > 0 {
		s.AvgSpeed3DMps = speed3DSum / float64(speed3DCount)
	}

	first, last := points[0], points[len(points)-1]
	s.StartTime = start.Add(time.Duration(first.TimeSec * float64(time.Second)))
	s.EndTime = start.Add(time.Duration(last.TimeSec * float64(time.Second)))
	s.ElapsedSeconds = math.Max(0, last.TimeSec-first.TimeSec)

	s.DistanceMeters = haversineTotal(points)
}

// haversineTotal sums great-circle distance between consecutive points.
// summarizeTrack always uses it, also for a record/20-derived track whose
// records log a distance field (gps_metadata has none); pairs with a
// point at exactly (0, 0) are skipped.
func haversineTotal(points []domain.Point) float64 {
	const earthRadiusM = 6371000.0
	var total float64
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		if a.Latitude == 0 && a.Longitude == 0 {
			continue
		}
		if b.Latitude == 0 && b.Longitude == 0 {
			continue
		}
		lat1, lon1 := a.Latitude*math.Pi/180, a.Longitude*math.Pi/180
		lat2, lon2 := b.Latitude*math.Pi/180, b.Longitude*math.Pi/180
		dLat := lat2 - lat1
		dLon := lon2 - lon1
		h := math.Sin(dLat/2)*math.Sin(dLat/2) +
			math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
		total += 2 * earthRadiusM * math.Asin(math.Sqrt(h))
	}
	return total
}
