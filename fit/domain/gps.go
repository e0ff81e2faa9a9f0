package domain

import (
	"math"

	"github.com/kjordahl/fitvirb/fit"
)

// GlobalGPSMetadata is the gps_metadata message's global message number.
// VIRB-only in practice; other devices may log record/20 instead.
const GlobalGPSMetadata = 160

// GpsMetadata is the projection of a gps_metadata/160 data message: a
// single 10Hz GPS sample as logged by Garmin VIRB cameras.
type GpsMetadata struct {
	Timestamp    uint32
	TimestampMs  uint16
	Latitude     int32
	Longitude    int32
	Altitude     uint32
	Speed        uint32
	Heading      uint16
	UTCTimestamp uint32
	Velocity     []int16
	Index        int
}

// NewGpsMetadata projects a gps_metadata/160 data message.
func NewGpsMetadata(m fit.DataMessage) (GpsMetadata, error) {
	if m.GlobalMessageNum != GlobalGPSMetadata {
		return GpsMetadata{}, unexpectedMessageType(GlobalGPSMetadata, m.GlobalMessageNum)
	}

	out := GpsMetadata{Index: m.Index}
	var ok bool
	if out.Timestamp, ok = fieldUint32(m, 253); !ok {
		return GpsMetadata{}, errAssigningField(GlobalGPSMetadata, 253)
	}
	if out.TimestampMs, ok = fieldUint16(m, 0); !ok {
		return GpsMetadata{}, errAssigningField(GlobalGPSMetadata, 0)
	}
	if out.Latitude, ok = fieldInt32(m, 1); !ok {
		return GpsMetadata{}, errAssigningField(GlobalGPSMetadata, 1)
	}
	if out.Longitude, ok = fieldInt32(m, 2); !ok {
		return GpsMetadata{}, errAssigningField(GlobalGPSMetadata, 2)
	}
	if out.Altitude, ok = fieldUint32(m, 3); !ok {
		return GpsMetadata{}, errAssigningField(GlobalGPSMetadata, 3)
	}
	if out.Speed, ok = fieldUint32(m, 4); !ok {
		return GpsMetadata{}, errAssigningField(GlobalGPSMetadata, 4)
	}
	if out.Heading, ok = fieldUint16(m, 5); !ok {
		return GpsMetadata{}, errAssigningField(GlobalGPSMetadata, 5)
	}
	if out.UTCTimestamp, ok = fieldUint32(m, 6); !ok {
		return GpsMetadata{}, errAssigningField(GlobalGPSMetadata, 6)
	}
	if out.Velocity, ok = fieldInt16s(m, 7); !ok || len(out.Velocity) < 3 {
		return GpsMetadata{}, errAssigningField(GlobalGPSMetadata, 7)
	}
	return out, nil
}

// GPSTrack flattens every gps_metadata/160 projection in messages, in wire
// order, as a convenience for downstream polyline consumers. This is the
// generalized form of the original implementation's points() helper (§2.3).
func GPSTrack(messages []fit.DataMessage) ([]GpsMetadata, error) {
	var out []GpsMetadata
	for _, m := range messages {
		if m.GlobalMessageNum != GlobalGPSMetadata {
			continue
		}
		gm, err := NewGpsMetadata(m)
		if err != nil {
			return nil, err
		}
		out = append(out, gm)
	}
	return out, nil
}

// Point is a decimal-degree GPS sample, the common projection target for
// both Record and GpsMetadata.
type Point struct {
	Latitude  float64
	Longitude float64
	Altitude  float64
	Speed2D   float64
	Speed3D   float64
	Heading   float64
	TimeSec   float64
}

// ToPoint converts a GpsMetadata's raw FIT values to decimal degrees,
// meters, and m/s per the decimal projection formulas in §4.7.
func (g GpsMetadata) ToPoint() Point {
	const semi2deg = 180.0 / 2147483648.0 // 180 / 2^31
	var speed3D float64
	if len(g.Velocity) >= 3 {
		vx, vy, vz := float64(g.Velocity[0]), float64(g.Velocity[1]), float64(g.Velocity[2])
		speed3D = math.Sqrt(vx*vx+vy*vy+vz*vz) / 100.0
	}
	return Point{
		Latitude:  float64(g.Latitude) * semi2deg,
		Longitude: float64(g.Longitude) * semi2deg,
		Altitude:  float64(g.Altitude)/5.0 - 500.0,
		Speed2D:   float64(g.Speed) / 1000.0,
		Speed3D:   speed3D,
		Heading:   float64(g.Heading) / 100.0,
		TimeSec:   float64(g.Timestamp) + float64(g.TimestampMs)/1000.0,
	}
}
