package fit

import "fmt"

// BaseType is a descriptor derived from a single FIT base-type byte: the
// canonical encoding packs an endian-sensitivity flag into bit 7 and a
// type number into bits 4-0 (reserved bits 6-5 are tolerated, not
// validated). Seventeen documented type numbers exist, 0 through 16.
type BaseType struct {
	// Raw is the original byte this BaseType was constructed from.
	Raw byte
	// Number is the 0..16 type index (bits 4-0 of Raw).
	Number uint8
	// Name is the canonical lowercase FIT type name.
	Name string
	// Width is the byte width of one element: 1, 2, 4, or 8.
	Width int
	// EndianSensitive reports whether multi-byte elements of this type
	// are read using the definition's declared architecture.
	EndianSensitive bool
	// Signed reports whether the type is a signed integer.
	Signed bool
	// Floating reports whether the type is IEEE-754 floating point.
	Floating bool
	// ZeroIsInvalid reports whether an all-zero element denotes the FIT
	// "invalid" sentinel (the "z" variants: uint8z, uint16z, ...).
	ZeroIsInvalid bool
}

// TypeText is the base-type number that denotes a UTF-8 text field.
const TypeText = 7

type baseTypeSpec struct {
	name          string
	width         int
	signed        bool
	floating      bool
	zeroIsInvalid bool
}

var baseTypeSpecs = map[uint8]baseTypeSpec{
	0:  {name: "enum", width: 1},
	1:  {name: "sint8", width: 1, signed: true},
	2:  {name: "uint8", width: 1},
	3:  {name: "sint16", width: 2, signed: true},
	4:  {name: "uint16", width: 2},
	5:  {name: "sint32", width: 4, signed: true},
	6:  {name: "uint32", width: 4},
	7:  {name: "string", width: 1},
	8:  {name: "float32", width: 4, signed: true, floating: true},
	9:  {name: "float64", width: 8, signed: true, floating: true},
	10: {name: "uint8z", width: 1, zeroIsInvalid: true},
	11: {name: "uint16z", width: 2, zeroIsInvalid: true},
	12: {name: "uint32z", width: 4, zeroIsInvalid: true},
	13: {name: "byte", width: 1},
	14: {name: "sint64", width: 8, signed: true},
	15: {name: "uint64", width: 8},
	16: {name: "uint64z", width: 8, zeroIsInvalid: true},
}

// ParseBaseType constructs a BaseType from a raw definition-field byte.
// It fails if the low-5-bit type number falls outside the documented set
// 0..16; all other bits (the reserved bits 6-5, and bit 7 once recorded)
// are tolerated without validation.
func ParseBaseType(raw byte) (BaseType, error) {
	number := raw & 0x1F
	spec, ok := baseTypeSpecs[number]
	if !ok {
		return BaseType{}, newFramingError(0, fmt.Sprintf("unknown base type number %d (raw byte 0x%02X)", number, raw))
	}
	return BaseType{
		Raw:             raw,
		Number:          number,
		Name:            spec.name,
		Width:           spec.width,
		EndianSensitive: raw&0x80 != 0,
		Signed:          spec.signed,
		Floating:        spec.floating,
		ZeroIsInvalid:   spec.zeroIsInvalid,
	}, nil
}

// IsText reports whether this BaseType denotes a UTF-8 text field.
func (b BaseType) IsText() bool { return b.Number == TypeText }
