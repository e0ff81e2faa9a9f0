// Package calibrate implements the most-recent-prior-calibration matching
// and calibration formulas described for 1D and 3D FIT sensor data
// (accelerometer, gyroscope, magnetometer, barometer).
package calibrate

import "github.com/kjordahl/fitvirb/fit/domain"

// Apply calibrates each sample in data in place, using the calibration in
// cal whose message index is the largest value strictly less than the
// sample's own index (the most recent prior calibration). Samples with no
// preceding calibration are left with empty calibrated fields.
//
// cal must already be filtered to calibrations for the sensor type in
// data (domain.Calibrations does this); Apply does not check SensorType
// itself.
func Apply(data []domain.SensorData, cal []domain.Calibration) {
	for i := range data {
		c := mostRecentPrior(cal, data[i].Index)
		if c == nil {
			continue
		}
		calibrateOne(&data[i], c)
	}
}

// mostRecentPrior returns the calibration with the largest Index strictly
// less than index, or nil if none exists. cal is assumed to be in wire
// (index-ascending) order, matching the sequence a Decoder produces.
func mostRecentPrior(cal []domain.Calibration, index int) *domain.Calibration {
	var best *domain.Calibration
	for i := range cal {
		if cal[i].Index >= index {
			continue
		}
		if best == nil || cal[i].Index > best.Index {
			best = &cal[i]
		}
	}
	return best
}

// calibrateOne populates CalibratedX/Y/Z for a single sample per the
// formulas in §4.8:
//
//	3D: calibrated = factor * M * (sample - level_shift_vec - offset_cal)
//	1D: calibrated = factor * (sample - level_shift) - offset_cal[0]
//
// where factor = calibration_factor / calibration_divisor and M is the
// row-major 3x3 orientation matrix, each entry scaled by 1/65535.
func calibrateOne(sample *domain.SensorData, c *domain.Calibration) {
	factor := float64(c.CalibrationFactor) / float64(c.CalibrationDivisor)

	switch sample.SensorType.Dim() {
	case 1:
		if len(c.OffsetCal) == 0 {
			return
		}
		offset := float64(c.OffsetCal[0])
		sample.CalibratedX = make([]float64, len(sample.X))
		for i, x := range sample.X {
			sample.CalibratedX[i] = factor*(float64(x)-float64(c.LevelShift)) - offset
		}

	case 3:
		if len(c.OrientationMatrix) != 9 || len(c.OffsetCal) != 3 {
			return
		}
		m := orientationMatrix(c.OrientationMatrix)
		offset := [3]float64{float64(c.OffsetCal[0]), float64(c.OffsetCal[1]), float64(c.OffsetCal[2])}
		level := float64(c.LevelShift)

		n := len(sample.X)
		sample.CalibratedX = make([]float64, n)
		sample.CalibratedY = make([]float64, n)
		sample.CalibratedZ = make([]float64, n)
		for i := 0; i < n; i++ {
			in := [3]float64{
				float64(sample.X[i]) - level - offset[0],
				float64(sample.Y[i]) - level - offset[1],
				float64(sample.Z[i]) - level - offset[2],
			}
			out := m.mulVec(in)
			sample.CalibratedX[i] = factor * out[0]
			sample.CalibratedY[i] = factor * out[1]
			sample.CalibratedZ[i] = factor * out[2]
		}
	}
}

// matrix3 is a row-major 3x3 matrix.
type matrix3 [9]float64

func orientationMatrix(raw []int32) matrix3 {
	var m matrix3
	for i, v := range raw {
		m[i] = float64(v) / 65535.0
	}
	return m
}

func (m matrix3) mulVec(v [3]float64) [3]float64 {
	return [3]float64{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}
