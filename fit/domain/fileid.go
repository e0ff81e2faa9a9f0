// Package domain projects generic fit.DataMessages into typed records, one
// function per supported global message number (§4.7). Every projector is a
// pure function: given a message that matches its global id, it walks the
// message's fields, narrows each into its expected Go type, and fails with
// an error naming the offending global id and field_def_no if a required
// field is absent or has an unexpected kind.
package domain

import "github.com/kjordahl/fitvirb/fit"

// GlobalFileID is the file_id message's global message number.
const GlobalFileID = 0

// FileId is the projection of a file_id/0 data message.
type FileId struct {
	Type         uint8
	Manufacturer uint16
	Product      uint16
	SerialNumber uint32
	TimeCreated  uint32
	Number       uint16
	Index        int
}

// NewFileId projects a file_id/0 data message.
func NewFileId(m fit.DataMessage) (FileId, error) {
	if m.GlobalMessageNum != GlobalFileID {
		return FileId{}, unexpectedMessageType(GlobalFileID, m.GlobalMessageNum)
	}

	out := FileId{Index: m.Index}
	var ok bool
	if out.Type, ok = fieldEnum(m, 0); !ok {
		return FileId{}, errAssigningField(GlobalFileID, 0)
	}
	if out.Manufacturer, ok = fieldUint16(m, 1); !ok {
		return FileId{}, errAssigningField(GlobalFileID, 1)
	}
	if out.Product, ok = fieldUint16(m, 2); !ok {
		return FileId{}, errAssigningField(GlobalFileID, 2)
	}
	if out.SerialNumber, ok = fieldUint32(m, 3); !ok {
		return FileId{}, errAssigningField(GlobalFileID, 3)
	}
	if out.TimeCreated, ok = fieldUint32(m, 4); !ok {
		return FileId{}, errAssigningField(GlobalFileID, 4)
	}
	if out.Number, ok = fieldUint16(m, 5); !ok {
		return FileId{}, errAssigningField(GlobalFileID, 5)
	}
	return out, nil
}

// FileIds projects every file_id/0 message in messages.
func FileIds(messages []fit.DataMessage) ([]FileId, error) {
	var out []FileId
	for _, m := range messages {
		if m.GlobalMessageNum != GlobalFileID {
			continue
		}
		fid, err := NewFileId(m)
		if err != nil {
			return nil, err
		}
		out = append(out, fid)
	}
	return out, nil
}
