package fit

import (
	"encoding/binary"
	"math"
	"strings"
	"unicode/utf8"
)

// ValueKind is the discriminant of a Value tagged union.
type ValueKind int

const (
	KindEnum ValueKind = iota
	KindSint8
	KindUint8
	KindSint16
	KindUint16
	KindSint32
	KindUint32
	KindText
	KindFloat32
	KindFloat64
	KindUint8z
	KindUint16z
	KindUint32z
	KindBytes
	KindSint64
	KindUint64
	KindUint64z
)

var kindNames = map[ValueKind]string{
	KindEnum: "enum", KindSint8: "sint8", KindUint8: "uint8",
	KindSint16: "sint16", KindUint16: "uint16", KindSint32: "sint32", KindUint32: "uint32",
	KindText: "text", KindFloat32: "float32", KindFloat64: "float64",
	KindUint8z: "uint8z", KindUint16z: "uint16z", KindUint32z: "uint32z",
	KindBytes: "bytes", KindSint64: "sint64", KindUint64: "uint64", KindUint64z: "uint64z",
}

func (k ValueKind) String() string { return kindNames[k] }

var kindByBaseTypeNumber = map[uint8]ValueKind{
	0: KindEnum, 1: KindSint8, 2: KindUint8, 3: KindSint16, 4: KindUint16,
	5: KindSint32, 6: KindUint32, 7: KindText, 8: KindFloat32, 9: KindFloat64,
	10: KindUint8z, 11: KindUint16z, 12: KindUint32z, 13: KindBytes,
	14: KindSint64, 15: KindUint64, 16: KindUint64z,
}

// Value is the tagged union of every FIT base type. Numeric variants carry
// an ordered sequence of the corresponding width (possibly length one);
// Text carries a decoded string. Exactly one of the typed slices is
// populated, selected by Kind.
type Value struct {
	Kind ValueKind

	Enums    []uint8
	Sint8s   []int8
	Uint8s   []uint8
	Sint16s  []int16
	Uint16s  []uint16
	Sint32s  []int32
	Uint32s  []uint32
	Float32s []float64
	Float64s []float64
	Uint8zs  []uint8
	Uint16zs []uint16
	Uint32zs []uint32
	Bytes    []byte
	Sint64s  []int64
	Uint64s  []uint64
	Uint64zs []uint64

	Text string

	// Invalid marks elements (by index within the sequence) equal to the
	// FIT "invalid" sentinel for their type. Absent for Text and Bytes.
	Invalid []bool
}

// Len reports the element count of the value's sequence (1 for Text,
// len(Bytes) for byte fields, otherwise the numeric slice length).
func (v Value) Len() int {
	switch v.Kind {
	case KindText:
		return 1
	case KindBytes:
		return len(v.Bytes)
	case KindEnum:
		return len(v.Enums)
	case KindSint8:
		return len(v.Sint8s)
	case KindUint8:
		return len(v.Uint8s)
	case KindSint16:
		return len(v.Sint16s)
	case KindUint16:
		return len(v.Uint16s)
	case KindSint32:
		return len(v.Sint32s)
	case KindUint32:
		return len(v.Uint32s)
	case KindFloat32:
		return len(v.Float32s)
	case KindFloat64:
		return len(v.Float64s)
	case KindUint8z:
		return len(v.Uint8zs)
	case KindUint16z:
		return len(v.Uint16zs)
	case KindUint32z:
		return len(v.Uint32zs)
	case KindSint64:
		return len(v.Sint64s)
	case KindUint64:
		return len(v.Uint64s)
	case KindUint64z:
		return len(v.Uint64zs)
	default:
		return 0
	}
}

// AsUint16 narrows a scalar uint16-kind value, taking the first element
// of its sequence. Returns ok=false for any other kind or an empty
// sequence.
func (v Value) AsUint16() (uint16, bool) {
	if v.Kind == KindUint16 && len(v.Uint16s) > 0 {
		return v.Uint16s[0], true
	}
	return 0, false
}

// AsUint32 narrows a scalar uint32-kind value (also accepting uint32z),
// taking the first element.
func (v Value) AsUint32() (uint32, bool) {
	switch v.Kind {
	case KindUint32:
		if len(v.Uint32s) > 0 {
			return v.Uint32s[0], true
		}
	case KindUint32z:
		if len(v.Uint32zs) > 0 {
			return v.Uint32zs[0], true
		}
	}
	return 0, false
}

// AsUint8 narrows a scalar uint8-kind value, taking the first element.
func (v Value) AsUint8() (uint8, bool) {
	if v.Kind == KindUint8 && len(v.Uint8s) > 0 {
		return v.Uint8s[0], true
	}
	return 0, false
}

// AsEnum narrows the first byte of an Enum-kind value regardless of how
// many elements the sequence carries (firmware sometimes emits
// multi-byte enums for a nominally scalar field).
func (v Value) AsEnum() (uint8, bool) {
	if v.Kind == KindEnum && len(v.Enums) > 0 {
		return v.Enums[0], true
	}
	return 0, false
}

// AsText narrows a Text-kind value.
func (v Value) AsText() (string, bool) {
	if v.Kind == KindText {
		return v.Text, true
	}
	return "", false
}

// AsInt32 narrows a scalar sint32-kind value, taking the first element.
func (v Value) AsInt32() (int32, bool) {
	if v.Kind == KindSint32 && len(v.Sint32s) > 0 {
		return v.Sint32s[0], true
	}
	return 0, false
}

// AsInt32s narrows a sint32-kind value's full sequence.
func (v Value) AsInt32s() ([]int32, bool) {
	if v.Kind == KindSint32 {
		return v.Sint32s, true
	}
	return nil, false
}

// AsUint8z narrows a scalar uint8z-kind value, taking the first element.
func (v Value) AsUint8z() (uint8, bool) {
	if v.Kind == KindUint8z && len(v.Uint8zs) > 0 {
		return v.Uint8zs[0], true
	}
	return 0, false
}

// AsInt16s narrows a sint16-kind value's full sequence.
func (v Value) AsInt16s() ([]int16, bool) {
	if v.Kind == KindSint16 {
		return v.Sint16s, true
	}
	return nil, false
}

// AsUint16s narrows a uint16-kind value's full sequence.
func (v Value) AsUint16s() ([]uint16, bool) {
	if v.Kind == KindUint16 {
		return v.Uint16s, true
	}
	return nil, false
}

// AsUint32s narrows a uint32-kind value's full sequence.
func (v Value) AsUint32s() ([]uint32, bool) {
	if v.Kind == KindUint32 {
		return v.Uint32s, true
	}
	return nil, false
}

// AsBytes narrows a Bytes-kind value.
func (v Value) AsBytes() ([]byte, bool) {
	if v.Kind == KindBytes {
		return v.Bytes, true
	}
	return nil, false
}

// decodeValue interprets raw against bt, in the declared architecture, per
// §4.5: text is decoded leniently as UTF-8 with interior NULs stripped;
// Enum always reads its full byte sequence even when nominally scalar;
// every other base type reads len(raw)/bt.Width elements of the declared
// width.
func decodeValue(raw []byte, bt BaseType, order binary.ByteOrder) Value {
	if bt.IsText() {
		return Value{Kind: KindText, Text: decodeLenientText(raw)}
	}

	kind := kindByBaseTypeNumber[bt.Number]
	if bt.Number == 0 { // Enum: always a byte sequence, never truncated to one.
		enums := append([]uint8(nil), raw...)
		invalid := make([]bool, len(enums))
		for i, e := range enums {
			invalid[i] = e == 0xFF
		}
		return Value{Kind: KindEnum, Enums: enums, Invalid: invalid}
	}

	if bt.Number == 13 { // byte
		return Value{Kind: KindBytes, Bytes: append([]byte(nil), raw...)}
	}

	width := bt.Width
	if width <= 0 {
		width = 1
	}
	count := len(raw) / width
	invalid := make([]bool, count)
	val := Value{Kind: kind}
	for i := 0; i < count; i++ {
		part := raw[i*width : (i+1)*width]
		switch bt.Number {
		case 1:
			x := int8(part[0])
			val.Sint8s = append(val.Sint8s, x)
			invalid[i] = x == 0x7F
		case 2:
			x := part[0]
			val.Uint8s = append(val.Uint8s, x)
			invalid[i] = x == 0xFF
		case 3:
			x := int16(order.Uint16(part))
			val.Sint16s = append(val.Sint16s, x)
			invalid[i] = uint16(x) == 0x7FFF
		case 4:
			x := order.Uint16(part)
			val.Uint16s = append(val.Uint16s, x)
			invalid[i] = x == 0xFFFF
		case 5:
			x := int32(order.Uint32(part))
			val.Sint32s = append(val.Sint32s, x)
			invalid[i] = uint32(x) == 0x7FFFFFFF
		case 6:
			x := order.Uint32(part)
			val.Uint32s = append(val.Uint32s, x)
			invalid[i] = x == 0xFFFFFFFF
		case 8:
			bits := order.Uint32(part)
			x := float64(math.Float32frombits(bits))
			val.Float32s = append(val.Float32s, x)
			invalid[i] = bits == 0xFFFFFFFF
		case 9:
			bits := order.Uint64(part)
			x := math.Float64frombits(bits)
			val.Float64s = append(val.Float64s, x)
			invalid[i] = bits == 0xFFFFFFFFFFFFFFFF
		case 10:
			x := part[0]
			val.Uint8zs = append(val.Uint8zs, x)
			invalid[i] = x == 0x00
		case 11:
			x := order.Uint16(part)
			val.Uint16zs = append(val.Uint16zs, x)
			invalid[i] = x == 0x0000
		case 12:
			x := order.Uint32(part)
			val.Uint32zs = append(val.Uint32zs, x)
			invalid[i] = x == 0x00000000
		case 14:
			x := int64(order.Uint64(part))
			val.Sint64s = append(val.Sint64s, x)
			invalid[i] = uint64(x) == 0x7FFFFFFFFFFFFFFF
		case 15:
			x := order.Uint64(part)
			val.Uint64s = append(val.Uint64s, x)
			invalid[i] = x == 0xFFFFFFFFFFFFFFFF
		case 16:
			x := order.Uint64(part)
			val.Uint64zs = append(val.Uint64zs, x)
			invalid[i] = x == 0x0000000000000000
		}
	}
	val.Invalid = invalid
	return val
}

// decodeLenientText decodes raw as UTF-8, replacing invalid byte
// sequences with the Unicode replacement character and stripping
// interior NUL bytes, truncating at the first NUL terminator (FIT text
// fields are NUL-padded to their declared size).
func decodeLenientText(raw []byte) string {
	nul := -1
	for i, b := range raw {
		if b == 0x00 {
			nul = i
			break
		}
	}
	if nul >= 0 {
		raw = raw[:nul]
	}
	if utf8.Valid(raw) {
		return string(raw)
	}
	var sb strings.Builder
	for len(raw) > 0 {
		r, size := utf8.DecodeRune(raw)
		sb.WriteRune(r)
		raw = raw[size:]
	}
	return sb.String()
}
