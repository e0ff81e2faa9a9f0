package fit

import "encoding/binary"

const (
	headerSizeNoCRC = 12
	headerSizeCRC   = 14
	fitSignature    = ".FIT"
)

// FileHeader is the 12- or 14-byte preamble described in §4.2.
type FileHeader struct {
	Size            uint8
	ProtocolVersion uint8
	ProfileVersion  uint16
	DataSize        uint32
	Signature       string
	CRCPresent      bool
	CRC             uint16
}

// ParseFileHeader decodes the file-level header from the start of buf. It
// does not validate the ".FIT" signature bytes by default (DESIGN.md Open
// Question 2); call Validate to check them explicitly. CRC bytes, when
// present, are recorded but never checked (§1, §4.2: "CRC is NOT
// validated").
func ParseFileHeader(buf []byte) (FileHeader, error) {
	if len(buf) < headerSizeNoCRC {
		return FileHeader{}, &IOError{Offset: 0, Requested: headerSizeNoCRC, Available: len(buf)}
	}
	size := buf[0]
	if size != headerSizeNoCRC && size != headerSizeCRC {
		return FileHeader{}, newFramingError(0, "unexpected header size")
	}
	if len(buf) < int(size) {
		return FileHeader{}, &IOError{Offset: 0, Requested: int(size), Available: len(buf)}
	}

	h := FileHeader{
		Size:            size,
		ProtocolVersion: buf[1],
		ProfileVersion:  binary.LittleEndian.Uint16(buf[2:4]),
		DataSize:        binary.LittleEndian.Uint32(buf[4:8]),
		Signature:       string(buf[8:12]),
	}
	if size == headerSizeCRC {
		h.CRCPresent = true
		h.CRC = binary.LittleEndian.Uint16(buf[12:14])
	}
	return h, nil
}

// Validate checks the ".FIT" signature bytes explicitly. Tolerant callers
// may skip this entirely; ParseFileHeader never calls it itself.
func (h FileHeader) Validate() error {
	if h.Signature != fitSignature {
		return newFramingError(8, "invalid .FIT signature: "+h.Signature)
	}
	return nil
}

// EffectiveDataSize returns the usable payload length given the total
// file length, per §4.2: the declared size if it plausibly fits within
// the file, otherwise a fallback derived from the actual file length. The
// fallback only reserves trailing CRC bytes when the header itself
// carries a CRC (the 14-byte variant); a 12-byte header implies no such
// trailer to reserve for, matching data_size in
// original_source/src/fit/fit_header.rs.
func (h FileHeader) EffectiveDataSize(totalFileLength int) uint32 {
	trailingCRCBytes := 0
	if h.CRCPresent {
		trailingCRCBytes = 2
	}
	max := totalFileLength - int(h.Size) - trailingCRCBytes
	if max < 0 {
		max = 0
	}
	if h.DataSize > 0 && int(h.DataSize) <= max {
		return h.DataSize
	}
	return uint32(max)
}
