package domain

import "github.com/kjordahl/fitvirb/fit"

// GlobalTimestampCorrelation is the timestamp_correlation message's global
// message number. Logged by VIRB cameras at satellite sync to anchor the
// file's relative timeline to an absolute one; other devices may omit it.
const GlobalTimestampCorrelation = 162

// TimestampCorrelation is the projection of a timestamp_correlation/162
// data message. Exactly one is expected per FIT file; it does not
// necessarily precede the first gps_metadata message.
type TimestampCorrelation struct {
	Timestamp         uint32 // UTC seconds at time of logging
	TimestampMs       uint16 // UTC fractional milliseconds at time of logging
	SystemTimestamp   uint32 // seconds since start of FIT file
	SystemTimestampMs uint16 // milliseconds since start of FIT file
	Index             int
}

// NewTimestampCorrelation projects a timestamp_correlation/162 data message.
func NewTimestampCorrelation(m fit.DataMessage) (TimestampCorrelation, error) {
	if m.GlobalMessageNum != GlobalTimestampCorrelation {
		return TimestampCorrelation{}, unexpectedMessageType(GlobalTimestampCorrelation, m.GlobalMessageNum)
	}

	out := TimestampCorrelation{Index: m.Index}
	var ok bool
	if out.Timestamp, ok = fieldUint32(m, 253); !ok {
		return TimestampCorrelation{}, errAssigningField(GlobalTimestampCorrelation, 253)
	}
	if out.TimestampMs, ok = fieldUint16(m, 4); !ok {
		return TimestampCorrelation{}, errAssigningField(GlobalTimestampCorrelation, 4)
	}
	if out.SystemTimestamp, ok = fieldUint32(m, 1); !ok {
		return TimestampCorrelation{}, errAssigningField(GlobalTimestampCorrelation, 1)
	}
	if out.SystemTimestampMs, ok = fieldUint16(m, 5); !ok {
		return TimestampCorrelation{}, errAssigningField(GlobalTimestampCorrelation, 5)
	}
	return out, nil
}

// FindTimestampCorrelation locates the single timestamp_correlation/162
// message in messages, if one was logged.
func FindTimestampCorrelation(messages []fit.DataMessage) (TimestampCorrelation, bool, error) {
	for _, m := range messages {
		if m.GlobalMessageNum != GlobalTimestampCorrelation {
			continue
		}
		tc, err := NewTimestampCorrelation(m)
		if err != nil {
			return TimestampCorrelation{}, false, err
		}
		return tc, true, nil
	}
	return TimestampCorrelation{}, false, nil
}
