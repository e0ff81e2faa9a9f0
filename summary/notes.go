package summary

import (
	"fmt"
	"math"
	"strings"
)

// BuildNotes renders a human-readable report from a Summary, the
// VIRB-domain counterpart of the teacher's BuildTrainingNotes: session
// count, GPS coverage, sensor coverage, and camera-event tally in place
// of cycling training-load narrative.
func BuildNotes(s Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Recording sessions: %d | Camera events: %d | Clip UUIDs: %d\n",
		s.SessionCount, s.CameraEventCount, s.ClipUUIDCount)

	if !s.StartTime.IsZero() {
		fmt.Fprintf(&b, "Start: %s\n", s.StartTime.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(&b, "Duration %s | Distance %.2f km | Elevation +%.0f/-%.0f m\n",
		formatDuration(s.ElapsedSeconds), s.DistanceMeters/1000.0, s.ElevationGainM, s.ElevationLossM)

	fmt.Fprintf(&b, "Speed (2D) %.1f avg / %.1f max km/h\n",
		mpsToKmh(s.AvgSpeed2DMps), mpsToKmh(s.MaxSpeed2DMps))
	if s.MaxSpeed3DMps > 0 {
		fmt.Fprintf(&b, "Speed (3D) %.1f avg / %.1f max km/h\n",
			mpsToKmh(s.AvgSpeed3DMps), mpsToKmh(s.MaxSpeed3DMps))
	}

	fmt.Fprintf(&b, "GPS samples: %d\n", s.GPSSampleCount)

	b.WriteString("\nSensor coverage\n")
	writeSensorLine(&b, "Accelerometer", s.AccelerometerCount)
	writeSensorLine(&b, "Gyroscope", s.GyroscopeCount)
	writeSensorLine(&b, "Magnetometer", s.MagnetometerCount)
	writeSensorLine(&b, "Barometer", s.BarometerCount)

	b.WriteString("\nStructure\n")
	fmt.Fprintf(&b, "- %s\n", s.Structure.CanonicalLabel)
	if len(s.Structure.GPSGaps) > 0 {
		fmt.Fprintf(&b, "- %d GPS gap(s) totaling %d missing samples.\n",
			len(s.Structure.GPSGaps), sumMissing(s.Structure.GPSGaps))
	}
	if len(s.Structure.SensorDropouts) > 0 {
		fmt.Fprintf(&b, "- %d sensor dropout(s) totaling %d missing samples.\n",
			len(s.Structure.SensorDropouts), sumMissing(s.Structure.SensorDropouts))
	}

	return b.String()
}

func writeSensorLine(b *strings.Builder, name string, count int) {
	if count == 0 {
		fmt.Fprintf(b, "- %s: not logged\n", name)
		return
	}
	fmt.Fprintf(b, "- %s: %d samples\n", name, count)
}

func sumMissing(gaps []GapSegment) int {
	var total int
	for _, g := range gaps {
		total += g.MissingMessages
	}
	return total
}

func formatDuration(seconds float64) string {
	if seconds <= 0 {
		return "0s"
	}
	sec := int(math.Round(seconds))
	h := sec / 3600
	m := (sec % 3600) / 60
	s := sec % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

func mpsToKmh(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return v * 3.6
}
