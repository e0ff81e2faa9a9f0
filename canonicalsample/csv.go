package canonicalsample

import (
	"encoding/csv"
	"os"
	"strconv"
)

// WriteCSV writes samples to path in the teacher's writeCanonicalCSV shape:
// one header row, one row per sample, optional float columns rendered
// empty when nil.
func WriteCSV(path string, samples []Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"ts_utc_iso", "elapsed_s", "latitude", "longitude", "altitude_m",
		"speed_2d_mps", "speed_3d_mps", "distance_m",
		"has_accelerometer", "has_gyroscope", "has_magnetometer", "has_barometer",
		"file_offset", "record_index",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			s.TSUTCISO,
			formatFloat(s.ElapsedS),
			formatFloatPtr(s.Latitude),
			formatFloatPtr(s.Longitude),
			formatFloatPtr(s.AltitudeM),
			formatFloatPtr(s.Speed2DMPS),
			formatFloatPtr(s.Speed3DMPS),
			formatFloatPtr(s.DistanceM),
			strconv.FormatBool(s.HasAccelerometer),
			strconv.FormatBool(s.HasGyroscope),
			strconv.FormatBool(s.HasMagnetometer),
			strconv.FormatBool(s.HasBarometer),
			strconv.Itoa(s.FileOffset),
			strconv.Itoa(s.RecordIndex),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
