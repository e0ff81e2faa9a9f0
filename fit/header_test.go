package fit

import "testing"

func TestParseMessageHeaderDefinition(t *testing.T) {
	mh := ParseMessageHeader(0x40 | 0x20 | 0x03)
	if !mh.IsDefinition {
		t.Fatalf("expected IsDefinition")
	}
	if !mh.DeveloperFields {
		t.Fatalf("expected DeveloperFields")
	}
	if mh.LocalID != 3 {
		t.Fatalf("LocalID = %d, want 3", mh.LocalID)
	}
	if mh.Compressed {
		t.Fatalf("did not expect Compressed")
	}
}

func TestParseMessageHeaderData(t *testing.T) {
	mh := ParseMessageHeader(0x05)
	if mh.IsDefinition {
		t.Fatalf("did not expect IsDefinition")
	}
	if mh.LocalID != 5 {
		t.Fatalf("LocalID = %d, want 5", mh.LocalID)
	}
}

func TestParseMessageHeaderCompressed(t *testing.T) {
	// bit7 set, slot bits (6-5) = 2, delta bits (4-0) = 0x0A
	mh := ParseMessageHeader(0x80 | (2 << 5) | 0x0A)
	if !mh.Compressed {
		t.Fatalf("expected Compressed")
	}
	if mh.CompressedSlotID != 2 {
		t.Fatalf("CompressedSlotID = %d, want 2", mh.CompressedSlotID)
	}
	if mh.CompressedDelta != 0x0A {
		t.Fatalf("CompressedDelta = 0x%X, want 0x0A", mh.CompressedDelta)
	}
}
