package fit

import "encoding/binary"

// FieldAttributes augments a FieldDef with names/units/scale, populated
// either by the ProfileTable (standard fields) or by a developer
// FieldDescription (developer fields). Absent at the moment of parsing.
type FieldAttributes struct {
	Name   string
	Scale  float64
	Offset float64
	Units  string
}

// FieldDef is a per-field schema entry within a Definition.
type FieldDef struct {
	FieldDefNo uint8
	Size       uint8
	BaseType   BaseType

	// Developer reports whether this FieldDef came from the developer
	// field-definition block rather than the standard field block.
	Developer bool
	// DeveloperDataIndex is only meaningful when Developer is true.
	DeveloperDataIndex uint8

	Attributes *FieldAttributes
}

// Definition is the per-slot schema registered by a definition record
// (§3, §4.4).
type Definition struct {
	Reserved         byte
	Architecture     byte
	ByteOrder        binary.ByteOrder
	GlobalMessageNum uint16
	Fields           []FieldDef
	DeveloperFields  []FieldDef
}

// DataSize is the total byte count a data record framed by this
// Definition consumes: the sum of every field's declared size, standard
// and developer combined, with no additional per-record header.
func (d Definition) DataSize() int {
	total := 0
	for _, f := range d.Fields {
		total += int(f.Size)
	}
	for _, f := range d.DeveloperFields {
		total += int(f.Size)
	}
	return total
}

// DataField is a FieldDef paired with its decoded Value within a single
// DataMessage.
type DataField struct {
	FieldDef FieldDef
	Value    Value
}

// DataMessage is a single decoded data record (§3): a global message
// number, its standard and developer fields in wire order, and the
// monotone index assigned at parse time.
type DataMessage struct {
	GlobalMessageNum uint16
	Name             string
	Fields           []DataField
	DeveloperFields  []DataField
	Index            int
	// Offset is the byte offset of this record's header within the
	// decoded buffer, useful for provenance in exports.
	Offset int
}

// Field looks up the first standard field with the given field_def_no.
func (m DataMessage) Field(fieldDefNo uint8) (DataField, bool) {
	for _, f := range m.Fields {
		if f.FieldDef.FieldDefNo == fieldDefNo {
			return f, true
		}
	}
	return DataField{}, false
}

// DevField looks up the first developer field with the given field_def_no.
func (m DataMessage) DevField(fieldDefNo uint8) (DataField, bool) {
	for _, f := range m.DeveloperFields {
		if f.FieldDef.FieldDefNo == fieldDefNo {
			return f, true
		}
	}
	return DataField{}, false
}
