package fit

import "fmt"

// FieldDescription is the schema for one developer field, registered
// in-band by a data record with global message number 206 (§3). It is
// keyed by the pair (FieldDefNo, DeveloperDataIndex): the combined key is
// required because some third parties reuse one of the two components.
type FieldDescription struct {
	DeveloperDataIndex uint8
	FieldDefNo         uint8
	BaseType           BaseType
	Name               string

	Units           string
	Scale           float64
	HasScale        bool
	Offset          float64
	HasOffset       bool
	NativeMesgNum   uint16
	HasNativeMesg   bool
	NativeFieldNum  uint8
	HasNativeField  bool
}

// GlobalFieldDescription is the global message number that registers
// developer field schemas.
const GlobalFieldDescription = 206

type devFieldKey struct {
	fieldDefNo uint8
	devIndex   uint8
}

// developerFieldTable is the decoder's exclusively-owned table of
// registered FieldDescriptions, keyed by (FieldDefNo, DeveloperDataIndex).
// Newest registration wins on key collision (§7, Schema kind).
type developerFieldTable struct {
	byKey map[devFieldKey]FieldDescription
}

func newDeveloperFieldTable() *developerFieldTable {
	return &developerFieldTable{byKey: make(map[devFieldKey]FieldDescription)}
}

func (t *developerFieldTable) register(fd FieldDescription) {
	t.byKey[devFieldKey{fieldDefNo: fd.FieldDefNo, devIndex: fd.DeveloperDataIndex}] = fd
}

func (t *developerFieldTable) lookup(fieldDefNo, devIndex uint8) (FieldDescription, bool) {
	fd, ok := t.byKey[devFieldKey{fieldDefNo: fieldDefNo, devIndex: devIndex}]
	return fd, ok
}

// fieldDescriptionFromMessage narrows a decoded global-206 DataMessage
// into a FieldDescription, per the required field_def_no set in §4.7's
// projection table (0 dev_index, 1 field_def_no, 2 base_type_id, 3
// field_name).
func fieldDescriptionFromMessage(m DataMessage) (FieldDescription, error) {
	devIdx, ok := requireUint8(m, 0)
	if !ok {
		return FieldDescription{}, errAssigningField(m.GlobalMessageNum, 0)
	}
	fieldDefNo, ok := requireUint8(m, 1)
	if !ok {
		return FieldDescription{}, errAssigningField(m.GlobalMessageNum, 1)
	}
	baseRaw, ok := requireUint8(m, 2)
	if !ok {
		return FieldDescription{}, errAssigningField(m.GlobalMessageNum, 2)
	}
	bt, err := ParseBaseType(baseRaw)
	if err != nil {
		return FieldDescription{}, err
	}
	name, ok := requireText(m, 3)
	if !ok {
		return FieldDescription{}, errAssigningField(m.GlobalMessageNum, 3)
	}

	fd := FieldDescription{
		DeveloperDataIndex: devIdx,
		FieldDefNo:         fieldDefNo,
		BaseType:           bt,
		Name:               name,
	}
	if f, ok := m.Field(8); ok {
		if units, ok := f.Value.AsText(); ok {
			fd.Units = units
		}
	}
	return fd, nil
}

func requireUint8(m DataMessage, fieldDefNo uint8) (uint8, bool) {
	f, ok := m.Field(fieldDefNo)
	if !ok {
		return 0, false
	}
	switch f.Value.Kind {
	case KindUint8:
		return f.Value.AsUint8()
	case KindEnum:
		return f.Value.AsEnum()
	default:
		return 0, false
	}
}

func requireText(m DataMessage, fieldDefNo uint8) (string, bool) {
	f, ok := m.Field(fieldDefNo)
	if !ok {
		return "", false
	}
	return f.Value.AsText()
}

func errAssigningField(global uint16, fieldDefNo uint8) error {
	return fmt.Errorf("fit: error assigning field: global=%d field_def_no=%d", global, fieldDefNo)
}
