package domain

import (
	"testing"

	"github.com/kjordahl/fitvirb/fit"
)

func TestSensorTypeFromGlobal(t *testing.T) {
	cases := []struct {
		global uint16
		want   SensorType
	}{
		{165, SensorAccelerometer}, {164, SensorGyroscope},
		{208, SensorMagnetometer}, {209, SensorBarometer},
	}
	for _, c := range cases {
		got, ok := SensorTypeFromGlobal(c.global)
		if !ok || got != c.want {
			t.Errorf("SensorTypeFromGlobal(%d) = (%v, %v), want (%v, true)", c.global, got, ok, c.want)
		}
	}
	if _, ok := SensorTypeFromGlobal(999); ok {
		t.Error("SensorTypeFromGlobal(999) ok = true, want false")
	}
}

func TestSensorTypeCalibrationGlobal(t *testing.T) {
	if SensorBarometer.CalibrationGlobal() != 210 {
		t.Errorf("Barometer.CalibrationGlobal() = %d, want 210", SensorBarometer.CalibrationGlobal())
	}
	for _, st := range []SensorType{SensorAccelerometer, SensorGyroscope, SensorMagnetometer} {
		if st.CalibrationGlobal() != 167 {
			t.Errorf("%v.CalibrationGlobal() = %d, want 167", st, st.CalibrationGlobal())
		}
	}
}

func TestSensorTypeDim(t *testing.T) {
	if SensorBarometer.Dim() != 1 {
		t.Errorf("Barometer.Dim() = %d, want 1", SensorBarometer.Dim())
	}
	if SensorAccelerometer.Dim() != 3 {
		t.Errorf("Accelerometer.Dim() = %d, want 3", SensorAccelerometer.Dim())
	}
}

func TestNewSensorData1D(t *testing.T) {
	m := fit.DataMessage{
		GlobalMessageNum: 209,
		Index:            4,
		Fields: []fit.DataField{
			u32(253, 10), u16(0, 100), u16s(1, []uint16{1, 2}), u32s(2, []uint32{1000, 1001}),
		},
	}
	sd, err := NewSensorData(m, SensorBarometer)
	if err != nil {
		t.Fatalf("NewSensorData() error = %v", err)
	}
	if len(sd.X) != 2 || sd.Y != nil || sd.Z != nil {
		t.Fatalf("sd = %+v, want X populated, Y/Z nil", sd)
	}
}

func TestNewSensorData3DWidensUint16(t *testing.T) {
	m := fit.DataMessage{
		GlobalMessageNum: 165,
		Index:            4,
		Fields: []fit.DataField{
			u32(253, 10), u16(0, 100), u16s(1, []uint16{1}),
			u16s(2, []uint16{10}), u16s(3, []uint16{20}), u16s(4, []uint16{30}),
		},
	}
	sd, err := NewSensorData(m, SensorAccelerometer)
	if err != nil {
		t.Fatalf("NewSensorData() error = %v", err)
	}
	if len(sd.X) != 1 || sd.X[0] != 10 || sd.Y[0] != 20 || sd.Z[0] != 30 {
		t.Fatalf("sd = %+v, unexpected widened values", sd)
	}
}

func TestNewSensorData3DMissingYFails(t *testing.T) {
	m := fit.DataMessage{
		GlobalMessageNum: 165,
		Fields: []fit.DataField{
			u32(253, 10), u16(0, 100), u16s(1, []uint16{1}), u32s(2, []uint32{10}),
		},
	}
	_, err := NewSensorData(m, SensorAccelerometer)
	if err == nil {
		t.Fatal("NewSensorData() error = nil, want error (missing Y field)")
	}
}

func calibrationMsg(global uint16, sensorType uint8, dim3 bool) fit.DataMessage {
	fields := []fit.DataField{
		enum(0, sensorType), u32(253, 100), u32(1, 1), u32(2, 1), u32(3, 0), s32s(4, []int32{0}),
	}
	if dim3 {
		fields[5] = s32s(4, []int32{0, 0, 0})
		fields = append(fields, s32s(5, []int32{65535, 0, 0, 0, 65535, 0, 0, 0, 65535}))
	}
	return fit.DataMessage{GlobalMessageNum: global, Fields: fields}
}

func TestNewCalibration1DSkipsOrientationMatrix(t *testing.T) {
	m := calibrationMsg(210, uint8(SensorBarometer), false)
	cal, err := NewCalibration(m)
	if err != nil {
		t.Fatalf("NewCalibration() error = %v", err)
	}
	if cal.OrientationMatrix != nil {
		t.Fatalf("OrientationMatrix = %v, want nil for 1D sensor", cal.OrientationMatrix)
	}
}

func TestNewCalibration3DRequiresOrientationMatrix(t *testing.T) {
	m := calibrationMsg(167, uint8(SensorAccelerometer), false) // missing field 5
	_, err := NewCalibration(m)
	if err == nil {
		t.Fatal("NewCalibration() error = nil, want error (missing orientation matrix)")
	}
}

func TestCalibrationsFiltersBySharedGlobalAndSensorType(t *testing.T) {
	accel := calibrationMsg(167, uint8(SensorAccelerometer), true)
	gyro := calibrationMsg(167, uint8(SensorGyroscope), true)
	cals, err := Calibrations([]fit.DataMessage{accel, gyro}, SensorAccelerometer)
	if err != nil {
		t.Fatalf("Calibrations() error = %v", err)
	}
	if len(cals) != 1 || cals[0].SensorType != SensorAccelerometer {
		t.Fatalf("cals = %+v, want exactly one accelerometer calibration", cals)
	}
}
