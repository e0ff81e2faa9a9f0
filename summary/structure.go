package summary

import (
	"fmt"

	"github.com/kjordahl/fitvirb/fit"
	"github.com/kjordahl/fitvirb/fit/domain"
	"github.com/kjordahl/fitvirb/fit/session"
)

const sessionStructureSchemaVersion = "session_structure_v1"

// SessionStructure is an LLM-oriented semantic view of a recording
// session, the VIRB-domain analogue of the teacher's WorkoutStructure:
// instead of warmup/main-set/cooldown workout blocks, it reports
// recording spans, GPS-gap segments, and sensor-dropout segments.
type SessionStructure struct {
	SchemaVersion  string          `json:"schema_version"`
	CanonicalLabel string          `json:"canonical_label"`
	RecordingSpans []RecordingSpan `json:"recording_spans,omitempty"`
	GPSGaps        []GapSegment    `json:"gps_gaps,omitempty"`
	SensorDropouts []GapSegment    `json:"sensor_dropouts,omitempty"`
}

// RecordingSpan is one detected SessionSegmenter span rendered for the
// report.
type RecordingSpan struct {
	Index         int    `json:"index"`
	StartIndex    int    `json:"start_index"`
	EndIndex      int    `json:"end_index"`
	ClipUUIDCount int    `json:"clip_uuid_count"`
	Description   string `json:"description"`
}

// GapSegment marks a contiguous run of missing GPS fixes or missing
// sensor data between two message indices.
type GapSegment struct {
	StartIndex      int `json:"start_index"`
	EndIndex        int `json:"end_index"`
	MissingMessages int `json:"missing_messages"`
}

// DetectStructure builds a SessionStructure from the detected spans and
// the full message sequence, the generalized counterpart of the
// teacher's InferWorkoutStructure.
func DetectStructure(spans []session.Span, messages []fit.DataMessage) SessionStructure {
	ss := SessionStructure{SchemaVersion: sessionStructureSchemaVersion}

	for i, span := range spans {
		ss.RecordingSpans = append(ss.RecordingSpans, RecordingSpan{
			Index:         i,
			StartIndex:    span.Start,
			EndIndex:      span.End,
			ClipUUIDCount: len(span.UUIDs),
			Description:   fmt.Sprintf("recording span %d (%d clip UUIDs)", i, len(span.UUIDs)),
		})
	}

	ss.GPSGaps = detectIndexGaps(messages, func(m fit.DataMessage) bool {
		return m.GlobalMessageNum == domain.GlobalGPSMetadata || m.GlobalMessageNum == domain.GlobalRecord
	})
	ss.SensorDropouts = detectIndexGaps(messages, func(m fit.DataMessage) bool {
		switch m.GlobalMessageNum {
		case domain.SensorAccelerometer.Global(), domain.SensorGyroscope.Global(),
			domain.SensorMagnetometer.Global(), domain.SensorBarometer.Global():
			return true
		default:
			return false
		}
	})

	ss.CanonicalLabel = canonicalLabel(ss)
	return ss
}

// detectIndexGaps finds runs of consecutive message indices where match
// never holds, bounded by the nearest matching message index before and
// after the run. A run with no matching message on one side (leading or
// trailing gap) is not reported, since there is no interior gap to bound.
func detectIndexGaps(messages []fit.DataMessage, match func(fit.DataMessage) bool) []GapSegment {
	var matchedIndices []int
	for _, m := range messages {
		if match(m) {
			matchedIndices = append(matchedIndices, m.Index)
		}
	}
	if len(matchedIndices) < 2 {
		return nil
	}

	var gaps []GapSegment
	for i := 1; i < len(matchedIndices); i++ {
		prev, cur := matchedIndices[i-1], matchedIndices[i]
		missing := cur - prev - 1
		if missing > 0 {
			gaps = append(gaps, GapSegment{StartIndex: prev, EndIndex: cur, MissingMessages: missing})
		}
	}
	return gaps
}

func canonicalLabel(ss SessionStructure) string {
	switch {
	case len(ss.RecordingSpans) == 0:
		return "no recording sessions detected"
	case len(ss.GPSGaps) == 0 && len(ss.SensorDropouts) == 0:
		return fmt.Sprintf("%d recording session(s), continuous GPS and sensor coverage", len(ss.RecordingSpans))
	default:
		return fmt.Sprintf(
			"%d recording session(s), %d GPS gap(s), %d sensor dropout(s)",
			len(ss.RecordingSpans), len(ss.GPSGaps), len(ss.SensorDropouts),
		)
	}
}
