package domain

import (
	"errors"
	"testing"

	"github.com/kjordahl/fitvirb/fit"
)

func gpsMsg(index int) fit.DataMessage {
	return fit.DataMessage{
		GlobalMessageNum: GlobalGPSMetadata,
		Index:            index,
		Fields: []fit.DataField{
			u32(253, 1000), u16(0, 500), s32(1, 100), s32(2, 200),
			u32(3, 2500), u32(4, 3000), u16(5, 9000), u32(6, 1000),
			s16s(7, []int16{300, 400, 0}),
		},
	}
}

func TestNewGpsMetadata(t *testing.T) {
	gm, err := NewGpsMetadata(gpsMsg(0))
	if err != nil {
		t.Fatalf("NewGpsMetadata() error = %v", err)
	}
	if gm.Latitude != 100 || gm.Longitude != 200 || len(gm.Velocity) != 3 {
		t.Fatalf("gm = %+v, unexpected", gm)
	}
}

func TestNewGpsMetadataRequiresThreeVelocityComponents(t *testing.T) {
	m := gpsMsg(0)
	for i, f := range m.Fields {
		if f.FieldDef.FieldDefNo == 7 {
			m.Fields[i] = s16s(7, []int16{300, 400})
		}
	}
	_, err := NewGpsMetadata(m)
	var target *ErrorAssigningFieldError
	if !errors.As(err, &target) || target.FieldDefNo != 7 {
		t.Fatalf("NewGpsMetadata() error = %v, want ErrorAssigningFieldError{FieldDefNo: 7}", err)
	}
}

func TestGPSTrackFlattensInOrder(t *testing.T) {
	messages := []fit.DataMessage{gpsMsg(0), gpsMsg(1), gpsMsg(2)}
	track, err := GPSTrack(messages)
	if err != nil {
		t.Fatalf("GPSTrack() error = %v", err)
	}
	if len(track) != 3 || track[0].Index != 0 || track[2].Index != 2 {
		t.Fatalf("track = %+v, unexpected", track)
	}
}

func TestGpsMetadataToPointSpeed3D(t *testing.T) {
	gm := GpsMetadata{Velocity: []int16{300, 400, 0}} // 3-4-5 triangle, magnitude 500
	p := gm.ToPoint()
	if !almostEqualT(p.Speed3D, 5.0) {
		t.Fatalf("Speed3D = %v, want 5.0", p.Speed3D)
	}
}
