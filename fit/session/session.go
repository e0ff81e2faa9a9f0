// Package session implements SessionSegmenter: deriving VIRB recording
// session spans from a FIT file's camera_event stream, and deriving the
// file's absolute start time from its optional timestamp_correlation
// message.
package session

import (
	"time"

	"github.com/kjordahl/fitvirb/fit"
	"github.com/kjordahl/fitvirb/fit/domain"
)

// Span is one VIRB recording session: a contiguous run of message indices
// bounded by a camera_event_type 0 (start) and camera_event_type 2 (end),
// together with the MP4/GLV clip UUIDs logged in between.
type Span struct {
	Start int // message index of the start event
	End   int // message index of the end event
	UUIDs []string
}

// Range returns the closed [Start, End] message index range as the
// half-open [Start, End+1) for slicing an index-ordered message sequence.
func (s Span) Range() (start, endExclusive int) { return s.Start, s.End + 1 }

// Segment walks messages' camera_event/161 records in wire order and
// extracts every recording session span (§4.9). A well-formed stream's
// first camera event is always type 0; a span left open at the end of the
// stream (no matching type-2 event) is discarded, since it has no end
// index to report.
func Segment(messages []fit.DataMessage) ([]Span, error) {
	events, err := domain.CameraEvents(messages)
	if err != nil {
		return nil, err
	}

	var spans []Span
	var current *Span

	for _, evt := range events {
		switch evt.CameraEventType {
		case domain.CameraEventSessionStart:
			current = &Span{Start: evt.Index}
			current.UUIDs = append(current.UUIDs, evt.CameraFileUUID)

		case domain.CameraEventSessionEnd:
			if current == nil {
				continue
			}
			current.End = evt.Index
			current.UUIDs = dedupAdjacent(current.UUIDs)
			spans = append(spans, *current)
			current = nil

		case 3, 4, 6:
			// still-photo and other non-boundary events carry no session meaning.

		default:
			if current != nil {
				current.UUIDs = append(current.UUIDs, evt.CameraFileUUID)
			}
		}
	}

	return spans, nil
}

// dedupAdjacent removes consecutive duplicate UUIDs. Safe without a sort
// since camera events are logged chronologically, so repeats of the same
// clip UUID are always adjacent.
func dedupAdjacent(uuids []string) []string {
	if len(uuids) == 0 {
		return uuids
	}
	out := uuids[:1]
	for _, u := range uuids[1:] {
		if u != out[len(out)-1] {
			out = append(out, u)
		}
	}
	return out
}

// fitEpoch is the FIT protocol's base time, 1989-12-31T00:00:00 UTC.
var fitEpoch = time.Date(1989, time.December, 31, 0, 0, 0, 0, time.UTC)

// StartTime derives the FIT file's absolute start time from its
// timestamp_correlation/162 message, per the original implementation's
// t0 helper (§2.3): the FIT epoch, offset by the correlation's UTC-vs.
// system-clock delta. If RequireCorrelation is false and no correlation
// message is present, the FIT epoch itself is returned instead of an
// error.
func StartTime(messages []fit.DataMessage, requireCorrelation bool) (time.Time, error) {
	tc, found, err := domain.FindTimestampCorrelation(messages)
	if err != nil {
		return time.Time{}, err
	}
	if !found {
		if requireCorrelation {
			return time.Time{}, errNoTimestampCorrelation
		}
		return fitEpoch, nil
	}

	delta := time.Duration(int64(tc.Timestamp)-int64(tc.SystemTimestamp))*time.Second +
		time.Duration(int64(tc.TimestampMs)-int64(tc.SystemTimestampMs))*time.Millisecond
	return fitEpoch.Add(delta), nil
}
