package canonicalsample

import (
	"testing"
	"time"

	"github.com/kjordahl/fitvirb/fit"
	"github.com/kjordahl/fitvirb/fit/domain"
)

func u16f(defNo uint8, v uint16) fit.DataField {
	return fit.DataField{FieldDef: fit.FieldDef{FieldDefNo: defNo}, Value: fit.Value{Kind: fit.KindUint16, Uint16s: []uint16{v}}}
}
func u32f(defNo uint8, v uint32) fit.DataField {
	return fit.DataField{FieldDef: fit.FieldDef{FieldDefNo: defNo}, Value: fit.Value{Kind: fit.KindUint32, Uint32s: []uint32{v}}}
}
func s32f(defNo uint8, v int32) fit.DataField {
	return fit.DataField{FieldDef: fit.FieldDef{FieldDefNo: defNo}, Value: fit.Value{Kind: fit.KindSint32, Sint32s: []int32{v}}}
}
func s16sf(defNo uint8, v []int16) fit.DataField {
	return fit.DataField{FieldDef: fit.FieldDef{FieldDefNo: defNo}, Value: fit.Value{Kind: fit.KindSint16, Sint16s: v}}
}

func gpsMsg(index, offset int) fit.DataMessage {
	return fit.DataMessage{
		GlobalMessageNum: domain.GlobalGPSMetadata,
		Index:            index,
		Offset:           offset,
		Fields: []fit.DataField{
			u32f(253, 1000), u16f(0, 0),
			s32f(1, 100), s32f(2, 200),
			u32f(3, 2500), u32f(4, 3000),
			u16f(5, 9000), u32f(6, 1000),
			s16sf(7, []int16{300, 400, 0}),
		},
	}
}

func recordMsg(index, offset int) fit.DataMessage {
	return fit.DataMessage{
		GlobalMessageNum: domain.GlobalRecord,
		Index:            index,
		Offset:           offset,
		Fields: []fit.DataField{
			u32f(253, 2000), s32f(0, 100), s32f(1, 200),
			u32f(5, 500), u16f(6, 1000),
		},
	}
}

func accelMsg() fit.DataMessage {
	return fit.DataMessage{GlobalMessageNum: domain.SensorAccelerometer.Global()}
}

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestBuildPrefersGPSTrackOverRecords(t *testing.T) {
	messages := []fit.DataMessage{gpsMsg(0, 10), recordMsg(1, 20)}
	samples, err := Build(messages, epoch)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(samples) != 1 {
		t.Fatalf("len(samples) = %d, want 1 (only the gps_metadata sample)", len(samples))
	}
	if samples[0].DistanceM != nil {
		t.Fatalf("DistanceM = %v, want nil for gps_metadata-sourced sample", *samples[0].DistanceM)
	}
	if samples[0].FileOffset != 10 {
		t.Fatalf("FileOffset = %d, want 10", samples[0].FileOffset)
	}
}

func TestBuildFallsBackToRecordsAndPopulatesDistance(t *testing.T) {
	messages := []fit.DataMessage{recordMsg(0, 5), accelMsg()}
	samples, err := Build(messages, epoch)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(samples) != 1 {
		t.Fatalf("len(samples) = %d, want 1", len(samples))
	}
	s := samples[0]
	if s.DistanceM == nil || *s.DistanceM != 5.0 {
		t.Fatalf("DistanceM = %v, want 5.0", s.DistanceM)
	}
	if !s.HasAccelerometer {
		t.Fatal("HasAccelerometer = false, want true (file contains an accelerometer message)")
	}
	if s.HasGyroscope {
		t.Fatal("HasGyroscope = true, want false")
	}
}

func TestBuildSpeed3DOnlyWhenNonZero(t *testing.T) {
	samples, err := Build([]fit.DataMessage{gpsMsg(0, 0)}, epoch)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if samples[0].Speed3DMPS == nil {
		t.Fatal("Speed3DMPS = nil, want a non-nil 3-4-5-triangle speed")
	}
	if *samples[0].Speed3DMPS != 5.0 {
		t.Fatalf("Speed3DMPS = %v, want 5.0", *samples[0].Speed3DMPS)
	}
}
