package domain

import "github.com/kjordahl/fitvirb/fit"

// SensorType enumerates the four 1D/3D sensor kinds the FIT SDK documents;
// no 2D sensor type exists in the specification.
type SensorType uint8

const (
	SensorAccelerometer SensorType = 0
	SensorGyroscope     SensorType = 1
	SensorMagnetometer  SensorType = 2
	SensorBarometer     SensorType = 3
)

// SensorTypeFromGlobal derives a SensorType from a sensor-data message's
// global message number.
func SensorTypeFromGlobal(global uint16) (SensorType, bool) {
	switch global {
	case 165:
		return SensorAccelerometer, true
	case 164:
		return SensorGyroscope, true
	case 208:
		return SensorMagnetometer, true
	case 209:
		return SensorBarometer, true
	default:
		return 0, false
	}
}

// Global returns the sensor-data global message number for t.
func (t SensorType) Global() uint16 {
	switch t {
	case SensorAccelerometer:
		return 165
	case SensorGyroscope:
		return 164
	case SensorMagnetometer:
		return 208
	case SensorBarometer:
		return 209
	default:
		return 0
	}
}

// CalibrationGlobal returns the calibration message's global message
// number for t. All 3D sensors share one calibration message type and
// must be disambiguated by the calibration message's own sensor_type
// field; only Barometer has a distinct (1D) calibration global id.
func (t SensorType) CalibrationGlobal() uint16 {
	if t == SensorBarometer {
		return 210
	}
	return 167
}

// Dim returns the sensor's dimensionality: 1 for the barometer, 3 for
// every other documented sensor (no 2D sensor exists in the FIT SDK).
func (t SensorType) Dim() int {
	if t == SensorBarometer {
		return 1
	}
	return 3
}

func (t SensorType) String() string {
	switch t {
	case SensorAccelerometer:
		return "accelerometer"
	case SensorGyroscope:
		return "gyroscope"
	case SensorMagnetometer:
		return "magnetometer"
	case SensorBarometer:
		return "barometer"
	default:
		return "unknown"
	}
}

// SensorData is the projection of a 1D or 3D sensor-data message
// (accelerometer_data/165, gyroscope_data/164, magnetometer_data/208,
// barometer_data/209). For 1D sensors, Y and Z are left empty; calibrated
// values are populated separately by fit/calibrate.
type SensorData struct {
	SensorType        SensorType
	Timestamp         uint32
	TimestampMs       uint16
	SampleTimeOffset  []uint16
	X, Y, Z           []uint32
	CalibratedX       []float64
	CalibratedY       []float64
	CalibratedZ       []float64
	Index             int
}

// NewSensorData projects a sensor-data message matching sensorType's
// global message number.
func NewSensorData(m fit.DataMessage, sensorType SensorType) (SensorData, error) {
	global := sensorType.Global()
	if m.GlobalMessageNum != global {
		return SensorData{}, unexpectedMessageType(global, m.GlobalMessageNum)
	}

	out := SensorData{SensorType: sensorType, Index: m.Index}
	var ok bool
	if out.Timestamp, ok = fieldUint32(m, 253); !ok {
		return SensorData{}, errAssigningField(global, 253)
	}
	if out.TimestampMs, ok = fieldUint16(m, 0); !ok {
		return SensorData{}, errAssigningField(global, 0)
	}
	if out.SampleTimeOffset, ok = fieldUint16s(m, 1); !ok {
		return SensorData{}, errAssigningField(global, 1)
	}
	if out.X, ok = widenSequence(m, 2); !ok {
		return SensorData{}, errAssigningField(global, 2)
	}
	if sensorType.Dim() == 1 {
		return out, nil
	}
	if out.Y, ok = widenSequence(m, 3); !ok {
		return SensorData{}, errAssigningField(global, 3)
	}
	if out.Z, ok = widenSequence(m, 4); !ok {
		return SensorData{}, errAssigningField(global, 4)
	}
	return out, nil
}

// widenSequence narrows a numeric sequence field (uint16 on the wire for
// 3D sensors, uint32 for barometer samples) to a uint32 slice.
func widenSequence(m fit.DataMessage, fieldDefNo uint8) ([]uint32, bool) {
	f, ok := m.Field(fieldDefNo)
	if !ok {
		return nil, false
	}
	switch f.Value.Kind {
	case fit.KindUint32:
		return f.Value.Uint32s, true
	case fit.KindUint16:
		out := make([]uint32, len(f.Value.Uint16s))
		for i, v := range f.Value.Uint16s {
			out[i] = uint32(v)
		}
		return out, true
	default:
		return nil, false
	}
}

// SensorDataSeries projects every sensor-data message of the given type in
// messages, without calibration.
func SensorDataSeries(messages []fit.DataMessage, sensorType SensorType) ([]SensorData, error) {
	global := sensorType.Global()
	var out []SensorData
	for _, m := range messages {
		if m.GlobalMessageNum != global {
			continue
		}
		sd, err := NewSensorData(m, sensorType)
		if err != nil {
			return nil, err
		}
		out = append(out, sd)
	}
	return out, nil
}

// Calibration is the projection of a sensor calibration message
// (three_d_sensor_calibration/167 or one_d_sensor_calibration/210).
type Calibration struct {
	Timestamp           uint32
	SensorType          SensorType
	CalibrationFactor   uint32
	CalibrationDivisor  uint32
	LevelShift          uint32
	OffsetCal           []int32
	OrientationMatrix   []int32 // row-major 3x3, empty for 1D sensors
	Index               int
}

// NewCalibration projects a sensor calibration data message. The caller
// must check SensorType against the sensor being calibrated: 3D sensors
// share one calibration global id and are only distinguished by this
// field.
func NewCalibration(m fit.DataMessage) (Calibration, error) {
	global := m.GlobalMessageNum
	out := Calibration{Index: m.Index}
	var ok bool
	var rawType uint8
	if rawType, ok = fieldEnum(m, 0); !ok {
		return Calibration{}, errAssigningField(global, 0)
	}
	out.SensorType = SensorType(rawType)

	if out.Timestamp, ok = fieldUint32(m, 253); !ok {
		return Calibration{}, errAssigningField(global, 253)
	}
	if out.CalibrationFactor, ok = fieldUint32(m, 1); !ok {
		return Calibration{}, errAssigningField(global, 1)
	}
	if out.CalibrationDivisor, ok = fieldUint32(m, 2); !ok {
		return Calibration{}, errAssigningField(global, 2)
	}
	if out.LevelShift, ok = fieldUint32(m, 3); !ok {
		return Calibration{}, errAssigningField(global, 3)
	}
	if out.OffsetCal, ok = fieldInt32s(m, 4); !ok {
		return Calibration{}, errAssigningField(global, 4)
	}
	if out.SensorType.Dim() == 1 {
		out.OrientationMatrix = nil
		return out, nil
	}
	if out.OrientationMatrix, ok = fieldInt32s(m, 5); !ok {
		return Calibration{}, errAssigningField(global, 5)
	}
	return out, nil
}

// Calibrations projects every calibration message matching sensorType's
// CalibrationGlobal, filtering further on the message's own SensorType
// field since 3D sensors share one calibration global id.
func Calibrations(messages []fit.DataMessage, sensorType SensorType) ([]Calibration, error) {
	global := sensorType.CalibrationGlobal()
	var out []Calibration
	for _, m := range messages {
		if m.GlobalMessageNum != global {
			continue
		}
		c, err := NewCalibration(m)
		if err != nil {
			return nil, err
		}
		if c.SensorType != sensorType {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}
