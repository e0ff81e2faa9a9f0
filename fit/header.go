package fit

const (
	headerBitCompressed = 0x80
	headerBitDefinition = 0x40
	headerBitDevFields  = 0x20
	headerBitReserved   = 0x10
	headerMaskLocalID   = 0x0F

	compressedMaskSlot  = 0x60
	compressedMaskDelta = 0x1F
)

// MessageHeader is the one-byte record header preceding every definition
// and data record. Two shapes exist, selected by bit 7 (§4.3).
type MessageHeader struct {
	Raw byte

	// Compressed reports the compressed-timestamp variant (bit 7 set):
	// an implicit data record with a 2-bit slot id and a 5-bit delta
	// timestamp. The core recognizes this shape but does not reconstruct
	// the absolute timestamp (see DESIGN.md Open Question 3).
	Compressed bool
	// CompressedSlotID is valid only when Compressed is true.
	CompressedSlotID uint8
	// CompressedDelta is the raw 5-bit delta timestamp, valid only when
	// Compressed is true.
	CompressedDelta uint8

	// IsDefinition distinguishes a definition record from a data record
	// in the normal (non-compressed) shape.
	IsDefinition bool
	// DeveloperFields reports whether a definition record carries a
	// trailing developer field-definition block. Only meaningful for
	// definition records.
	DeveloperFields bool
	// LocalID is the 4-bit slot handle in the normal shape.
	LocalID uint8
}

// ParseMessageHeader decodes a single header byte.
func ParseMessageHeader(raw byte) MessageHeader {
	if raw&headerBitCompressed != 0 {
		return MessageHeader{
			Raw:              raw,
			Compressed:       true,
			CompressedSlotID: (raw & compressedMaskSlot) >> 5,
			CompressedDelta:  raw & compressedMaskDelta,
		}
	}
	return MessageHeader{
		Raw:             raw,
		IsDefinition:    raw&headerBitDefinition != 0,
		DeveloperFields: raw&headerBitDevFields != 0,
		LocalID:         raw & headerMaskLocalID,
	}
}
