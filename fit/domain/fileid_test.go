package domain

import (
	"errors"
	"testing"

	"github.com/kjordahl/fitvirb/fit"
)

func u8(fieldDefNo uint8, v uint8) fit.DataField {
	return fit.DataField{FieldDef: fit.FieldDef{FieldDefNo: fieldDefNo}, Value: fit.Value{Kind: fit.KindUint8, Uint8s: []uint8{v}}}
}
func enum(fieldDefNo uint8, v uint8) fit.DataField {
	return fit.DataField{FieldDef: fit.FieldDef{FieldDefNo: fieldDefNo}, Value: fit.Value{Kind: fit.KindEnum, Enums: []uint8{v}}}
}
func u16(fieldDefNo uint8, v uint16) fit.DataField {
	return fit.DataField{FieldDef: fit.FieldDef{FieldDefNo: fieldDefNo}, Value: fit.Value{Kind: fit.KindUint16, Uint16s: []uint16{v}}}
}
func u32(fieldDefNo uint8, v uint32) fit.DataField {
	return fit.DataField{FieldDef: fit.FieldDef{FieldDefNo: fieldDefNo}, Value: fit.Value{Kind: fit.KindUint32, Uint32s: []uint32{v}}}
}
func s32(fieldDefNo uint8, v int32) fit.DataField {
	return fit.DataField{FieldDef: fit.FieldDef{FieldDefNo: fieldDefNo}, Value: fit.Value{Kind: fit.KindSint32, Sint32s: []int32{v}}}
}
func s32s(fieldDefNo uint8, v []int32) fit.DataField {
	return fit.DataField{FieldDef: fit.FieldDef{FieldDefNo: fieldDefNo}, Value: fit.Value{Kind: fit.KindSint32, Sint32s: v}}
}
func s16s(fieldDefNo uint8, v []int16) fit.DataField {
	return fit.DataField{FieldDef: fit.FieldDef{FieldDefNo: fieldDefNo}, Value: fit.Value{Kind: fit.KindSint16, Sint16s: v}}
}
func u16s(fieldDefNo uint8, v []uint16) fit.DataField {
	return fit.DataField{FieldDef: fit.FieldDef{FieldDefNo: fieldDefNo}, Value: fit.Value{Kind: fit.KindUint16, Uint16s: v}}
}
func u32s(fieldDefNo uint8, v []uint32) fit.DataField {
	return fit.DataField{FieldDef: fit.FieldDef{FieldDefNo: fieldDefNo}, Value: fit.Value{Kind: fit.KindUint32, Uint32s: v}}
}
func text(fieldDefNo uint8, v string) fit.DataField {
	return fit.DataField{FieldDef: fit.FieldDef{FieldDefNo: fieldDefNo}, Value: fit.Value{Kind: fit.KindText, Text: v}}
}

func TestNewFileId(t *testing.T) {
	m := fit.DataMessage{
		GlobalMessageNum: GlobalFileID,
		Index:            0,
		Fields: []fit.DataField{
			enum(0, 4), u16(1, 1), u16(2, 3121),
			u32(3, 123456), u32(4, 789), u16(5, 1),
		},
	}
	fid, err := NewFileId(m)
	if err != nil {
		t.Fatalf("NewFileId() error = %v", err)
	}
	if fid.Type != 4 || fid.Manufacturer != 1 || fid.Product != 3121 || fid.SerialNumber != 123456 {
		t.Fatalf("fid = %+v, unexpected", fid)
	}
}

func TestNewFileIdWrongGlobal(t *testing.T) {
	m := fit.DataMessage{GlobalMessageNum: GlobalRecord}
	_, err := NewFileId(m)
	var target *UnexpectedMessageTypeError
	if !errors.As(err, &target) {
		t.Fatalf("NewFileId() error = %v, want *UnexpectedMessageTypeError", err)
	}
}

func TestNewFileIdMissingField(t *testing.T) {
	m := fit.DataMessage{
		GlobalMessageNum: GlobalFileID,
		Fields:           []fit.DataField{enum(0, 4), u16(1, 1)},
	}
	_, err := NewFileId(m)
	var target *ErrorAssigningFieldError
	if !errors.As(err, &target) {
		t.Fatalf("NewFileId() error = %v, want *ErrorAssigningFieldError", err)
	}
	if target.FieldDefNo != 2 {
		t.Fatalf("FieldDefNo = %d, want 2", target.FieldDefNo)
	}
}
