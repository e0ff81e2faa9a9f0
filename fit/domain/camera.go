package domain

import (
	"time"

	"github.com/kjordahl/fitvirb/fit"
)

// GlobalCameraEvent is the camera_event message's global message number.
// VIRB only.
const GlobalCameraEvent = 161

// Camera event types relevant to session boundary detection (§4.9); the
// remaining documented values (still photo taken, etc.) carry no session
// meaning here.
const (
	CameraEventSessionStart = 0
	CameraEventSessionEnd   = 2
)

// CameraEvent is the projection of a camera_event/161 data message: it
// carries the UUID of the MP4/GLV clip being recorded at the time of the
// event.
type CameraEvent struct {
	Timestamp         uint32
	TimestampMs       uint16
	CameraFileUUID    string
	CameraEventType   uint8
	CameraOrientation uint8
	Index             int
}

// NewCameraEvent projects a camera_event/161 data message.
func NewCameraEvent(m fit.DataMessage) (CameraEvent, error) {
	if m.GlobalMessageNum != GlobalCameraEvent {
		return CameraEvent{}, unexpectedMessageType(GlobalCameraEvent, m.GlobalMessageNum)
	}

	out := CameraEvent{Index: m.Index}
	var ok bool
	if out.Timestamp, ok = fieldUint32(m, 253); !ok {
		return CameraEvent{}, errAssigningField(GlobalCameraEvent, 253)
	}
	if out.TimestampMs, ok = fieldUint16(m, 0); !ok {
		return CameraEvent{}, errAssigningField(GlobalCameraEvent, 0)
	}
	if out.CameraEventType, ok = fieldEnum(m, 1); !ok {
		return CameraEvent{}, errAssigningField(GlobalCameraEvent, 1)
	}
	if out.CameraFileUUID, ok = fieldText(m, 2); !ok {
		return CameraEvent{}, errAssigningField(GlobalCameraEvent, 2)
	}
	if out.CameraOrientation, ok = fieldEnum(m, 3); !ok {
		return CameraEvent{}, errAssigningField(GlobalCameraEvent, 3)
	}
	return out, nil
}

// CameraEvents projects every camera_event/161 message in messages.
func CameraEvents(messages []fit.DataMessage) ([]CameraEvent, error) {
	var out []CameraEvent
	for _, m := range messages {
		if m.GlobalMessageNum != GlobalCameraEvent {
			continue
		}
		ce, err := NewCameraEvent(m)
		if err != nil {
			return nil, err
		}
		out = append(out, ce)
	}
	return out, nil
}

// ToDuration combines Timestamp and TimestampMs into a single relative
// time.Duration from the start of the FIT file.
func (c CameraEvent) ToDuration() time.Duration {
	return time.Duration(c.Timestamp)*time.Second + time.Duration(c.TimestampMs)*time.Millisecond
}
