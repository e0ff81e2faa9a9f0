package domain

import "github.com/kjordahl/fitvirb/fit"

// GlobalRecord is the record message's global message number.
const GlobalRecord = 20

// Record is the GPS subset of a record/20 data message: devices that don't
// log gps_metadata/160 still log coordinates here.
type Record struct {
	Timestamp   uint32
	Latitude    int32
	Longitude   int32
	Distance    uint32
	Speed       uint32
	Altitude    *uint32
	GPSAccuracy *uint8
	Index       int
}

// NewRecord projects a record/20 data message's GPS subset. Speed prefers
// field 73 (enhanced_speed) over field 6 (speed, widened); altitude
// prefers field 78 (enhanced_altitude) over field 2 (altitude, widened).
// Speed is required; altitude is optional and left nil when neither
// field is present.
func NewRecord(m fit.DataMessage) (Record, error) {
	if m.GlobalMessageNum != GlobalRecord {
		return Record{}, unexpectedMessageType(GlobalRecord, m.GlobalMessageNum)
	}

	out := Record{Index: m.Index}
	var ok bool
	if out.Timestamp, ok = fieldUint32(m, 253); !ok {
		return Record{}, errAssigningField(GlobalRecord, 253)
	}
	if out.Latitude, ok = fieldInt32(m, 0); !ok {
		return Record{}, errAssigningField(GlobalRecord, 0)
	}
	if out.Longitude, ok = fieldInt32(m, 1); !ok {
		return Record{}, errAssigningField(GlobalRecord, 1)
	}
	if out.Distance, ok = fieldUint32(m, 5); !ok {
		return Record{}, errAssigningField(GlobalRecord, 5)
	}

	if speed, ok := fieldUint32(m, 73); ok {
		out.Speed = speed
	} else if speed, ok := fieldWidenUint16ToUint32(m, 6); ok {
		out.Speed = speed
	} else {
		return Record{}, errAssigningField(GlobalRecord, 6)
	}

	if altitude, ok := fieldUint32(m, 78); ok {
		out.Altitude = &altitude
	} else if altitude, ok := fieldWidenUint16ToUint32(m, 2); ok {
		out.Altitude = &altitude
	}

	if acc, ok := fieldUint8(m, 31); ok {
		out.GPSAccuracy = &acc
	}

	return out, nil
}

// Records projects every record/20 message in messages. If noFail is true,
// records that fail to project (missing required fields, e.g. a device
// that has not yet acquired a GPS fix) are silently dropped instead of
// aborting the whole pass.
func Records(messages []fit.DataMessage, noFail bool) ([]Record, error) {
	var out []Record
	for _, m := range messages {
		if m.GlobalMessageNum != GlobalRecord {
			continue
		}
		rec, err := NewRecord(m)
		if err != nil {
			if noFail {
				continue
			}
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// ToPoint converts a Record's coordinates to decimal degrees, per the
// decimal projection formulas in §4.7.
func (r Record) ToPoint() Point {
	const semi2deg = 180.0 / 2147483648.0 // 180 / 2^31
	alt := 0.0
	if r.Altitude != nil {
		alt = float64(*r.Altitude)/5.0 - 500.0
	}
	return Point{
		Latitude:  float64(r.Latitude) * semi2deg,
		Longitude: float64(r.Longitude) * semi2deg,
		Altitude:  alt,
		Speed2D:   float64(r.Speed) / 1000.0,
		TimeSec:   float64(r.Timestamp),
	}
}
