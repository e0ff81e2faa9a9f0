package domain

import (
	"fmt"

	"github.com/kjordahl/fitvirb/fit"
)

// UnexpectedMessageTypeError reports that a projector was given a message
// whose global message number did not match the one it projects.
type UnexpectedMessageTypeError struct {
	Expected uint16
	Got      uint16
}

func (e *UnexpectedMessageTypeError) Error() string {
	return fmt.Sprintf("domain: unexpected message type: expected global %d, got %d", e.Expected, e.Got)
}

func unexpectedMessageType(expected, got uint16) error {
	return &UnexpectedMessageTypeError{Expected: expected, Got: got}
}

// ErrorAssigningFieldError reports a required field_def_no that could not
// be assigned from the data message, either because it was absent or
// because its Value kind didn't narrow to the expected type.
type ErrorAssigningFieldError struct {
	Global     uint16
	FieldDefNo uint8
}

func (e *ErrorAssigningFieldError) Error() string {
	return fmt.Sprintf("domain: error assigning field: global=%d field_def_no=%d", e.Global, e.FieldDefNo)
}

func errAssigningField(global uint16, fieldDefNo uint8) error {
	return &ErrorAssigningFieldError{Global: global, FieldDefNo: fieldDefNo}
}

func fieldUint8(m fit.DataMessage, fieldDefNo uint8) (uint8, bool) {
	f, ok := m.Field(fieldDefNo)
	if !ok {
		return 0, false
	}
	return f.Value.AsUint8()
}

func fieldEnum(m fit.DataMessage, fieldDefNo uint8) (uint8, bool) {
	f, ok := m.Field(fieldDefNo)
	if !ok {
		return 0, false
	}
	return f.Value.AsEnum()
}

func fieldUint16(m fit.DataMessage, fieldDefNo uint8) (uint16, bool) {
	f, ok := m.Field(fieldDefNo)
	if !ok {
		return 0, false
	}
	return f.Value.AsUint16()
}

func fieldUint32(m fit.DataMessage, fieldDefNo uint8) (uint32, bool) {
	f, ok := m.Field(fieldDefNo)
	if !ok {
		return 0, false
	}
	return f.Value.AsUint32()
}

func fieldInt32(m fit.DataMessage, fieldDefNo uint8) (int32, bool) {
	f, ok := m.Field(fieldDefNo)
	if !ok {
		return 0, false
	}
	return f.Value.AsInt32()
}

func fieldInt32s(m fit.DataMessage, fieldDefNo uint8) ([]int32, bool) {
	f, ok := m.Field(fieldDefNo)
	if !ok {
		return nil, false
	}
	return f.Value.AsInt32s()
}

func fieldUint16s(m fit.DataMessage, fieldDefNo uint8) ([]uint16, bool) {
	f, ok := m.Field(fieldDefNo)
	if !ok {
		return nil, false
	}
	return f.Value.AsUint16s()
}

func fieldUint32s(m fit.DataMessage, fieldDefNo uint8) ([]uint32, bool) {
	f, ok := m.Field(fieldDefNo)
	if !ok {
		return nil, false
	}
	return f.Value.AsUint32s()
}

func fieldInt16s(m fit.DataMessage, fieldDefNo uint8) ([]int16, bool) {
	f, ok := m.Field(fieldDefNo)
	if !ok {
		return nil, false
	}
	return f.Value.AsInt16s()
}

// fieldWidenUint16ToUint32 narrows a uint16-kind field and widens it to
// uint32, used where the FIT SDK defines both a narrow and an enhanced
// variant of the same logical field (speed/enhanced_speed,
// altitude/enhanced_altitude) and this module standardizes on the wider
// type.
func fieldWidenUint16ToUint32(m fit.DataMessage, fieldDefNo uint8) (uint32, bool) {
	f, ok := m.Field(fieldDefNo)
	if !ok {
		return 0, false
	}
	v, ok := f.Value.AsUint16()
	if !ok {
		return 0, false
	}
	return uint32(v), true
}

func fieldText(m fit.DataMessage, fieldDefNo uint8) (string, bool) {
	f, ok := m.Field(fieldDefNo)
	if !ok {
		return "", false
	}
	return f.Value.AsText()
}
