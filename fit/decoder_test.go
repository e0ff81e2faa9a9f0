package fit

import (
	"encoding/binary"
	"errors"
	"testing"
)

// buildFile assembles a complete FIT buffer from a record body, with the
// header's declared data_size computed to exactly match body's length. The
// illustrative byte listings in informal FIT walkthroughs are frequently
// off by a byte or two; tests here always derive data_size from the body
// they actually encode instead of hand-copying a declared size.
func buildFile(body []byte) []byte {
	buf := make([]byte, 12, 12+len(body))
	buf[0] = 12
	buf[1] = 16 // protocol version
	binary.LittleEndian.PutUint16(buf[2:4], 2132)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(body)))
	copy(buf[8:12], ".FIT")
	return append(buf, body...)
}

type rawFieldDef struct {
	fieldDefNo, size, baseRaw byte
}

func definitionRecord(localID byte, arch byte, global uint16, fields []rawFieldDef, devFields []rawFieldDef) []byte {
	header := byte(0x40) | localID
	if len(devFields) > 0 {
		header |= 0x20
	}
	out := []byte{header, 0, arch}
	var order binary.ByteOrder = binary.LittleEndian
	if arch == 1 {
		order = binary.BigEndian
	}
	g := make([]byte, 2)
	order.PutUint16(g, global)
	out = append(out, g...)
	out = append(out, byte(len(fields)))
	for _, f := range fields {
		out = append(out, f.fieldDefNo, f.size, f.baseRaw)
	}
	if len(devFields) > 0 {
		out = append(out, byte(len(devFields)))
		for _, f := range devFields {
			out = append(out, f.fieldDefNo, f.size, f.baseRaw)
		}
	}
	return out
}

func dataRecord(localID byte, fieldBytes ...[]byte) []byte {
	out := []byte{localID}
	for _, fb := range fieldBytes {
		out = append(out, fb...)
	}
	return out
}

func le16(v uint16) []byte { b := make([]byte, 2); binary.LittleEndian.PutUint16(b, v); return b }
func le32(v uint32) []byte { b := make([]byte, 4); binary.LittleEndian.PutUint32(b, v); return b }

// Scenario 1: a minimal file with a single file_id definition and one
// matching data record.
func TestDecodeMinimalFile(t *testing.T) {
	def := definitionRecord(0, 0, 0, []rawFieldDef{{fieldDefNo: 0, size: 1, baseRaw: 0x00}}, nil)
	data := dataRecord(0, []byte{4})
	buf := buildFile(append(def, data...))

	messages, err := NewDecoder(buf).Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("len(messages) = %d, want 1", len(messages))
	}
	msg := messages[0]
	if msg.GlobalMessageNum != 0 {
		t.Fatalf("GlobalMessageNum = %d, want 0", msg.GlobalMessageNum)
	}
	f, ok := msg.Field(0)
	if !ok {
		t.Fatalf("expected field 0 present")
	}
	enum, ok := f.Value.AsEnum()
	if !ok || enum != 4 {
		t.Fatalf("AsEnum() = (%d, %v), want (4, true)", enum, ok)
	}
}

// Scenario 2: big-endian architecture with a multi-byte field.
func TestDecodeBigEndianDefinitionAndData(t *testing.T) {
	def := definitionRecord(1, 1, 20, []rawFieldDef{{fieldDefNo: 7, size: 2, baseRaw: 0x84}}, nil)
	data := dataRecord(1, []byte{0x01, 0x2C}) // big-endian 0x012C = 300
	buf := buildFile(append(def, data...))

	messages, err := NewDecoder(buf).Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	f, ok := messages[0].Field(7)
	if !ok {
		t.Fatalf("expected field 7 present")
	}
	got, ok := f.Value.AsUint16()
	if !ok || got != 300 {
		t.Fatalf("AsUint16() = (%d, %v), want (300, true)", got, ok)
	}
}

// Scenario 3: a developer field is registered via a global-206
// field_description message, then referenced by field_def_no and
// developer_data_index in a later definition, and is decoded using the
// registered base type and name.
func TestDeveloperFieldRegistrationAndDecode(t *testing.T) {
	fieldDescDef := definitionRecord(0, 0, 206, []rawFieldDef{
		{fieldDefNo: 0, size: 1, baseRaw: 0x02}, // developer_data_index, uint8
		{fieldDefNo: 1, size: 1, baseRaw: 0x02}, // field_definition_number, uint8
		{fieldDefNo: 2, size: 1, baseRaw: 0x02}, // fit_base_type_id, uint8
		{fieldDefNo: 3, size: 4, baseRaw: 0x07}, // field_name, string
	}, nil)
	fieldDescData := dataRecord(0, []byte{0}, []byte{7}, []byte{0x86}, []byte("Pwr\x00"))

	recordDef := definitionRecord(1, 0, 20, []rawFieldDef{{fieldDefNo: 253, size: 4, baseRaw: 0x86}},
		[]rawFieldDef{{fieldDefNo: 7, size: 4, baseRaw: 0}})
	recordData := dataRecord(1, le32(1000), le32(250))

	body := append(append(append([]byte{}, fieldDescDef...), fieldDescData...), append(recordDef, recordData...)...)
	buf := buildFile(body)

	messages, err := NewDecoder(buf).Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("len(messages) = %d, want 2", len(messages))
	}
	rec := messages[1]
	dev, ok := rec.DevField(7)
	if !ok {
		t.Fatalf("expected developer field 7 present")
	}
	if dev.FieldDef.BaseType.Name != "uint32" {
		t.Fatalf("developer field base type = %q, want uint32 (registered, not the wire byte)", dev.FieldDef.BaseType.Name)
	}
	if dev.FieldDef.Attributes == nil || dev.FieldDef.Attributes.Name != "Pwr" {
		t.Fatalf("developer field attributes = %+v, want Name=Pwr", dev.FieldDef.Attributes)
	}
	got, ok := dev.Value.AsUint32()
	if !ok || got != 250 {
		t.Fatalf("AsUint32() = (%d, %v), want (250, true)", got, ok)
	}
}

// An unregistered developer field aborts the decode under the default
// strict mode.
func TestDeveloperFieldUnknownStrict(t *testing.T) {
	def := definitionRecord(0, 0, 20, nil, []rawFieldDef{{fieldDefNo: 9, size: 4, baseRaw: 1}})
	buf := buildFile(def)

	_, err := NewDecoder(buf).Decode()
	if err == nil {
		t.Fatalf("expected an error for an unregistered developer field under strict mode")
	}
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected a *SchemaError, got %T: %v", err, err)
	}
}

// The same unregistered developer field is tolerated (falling back to a
// raw byte interpretation) when strictness is disabled.
func TestDeveloperFieldUnknownNonStrict(t *testing.T) {
	def := definitionRecord(0, 0, 20, nil, []rawFieldDef{{fieldDefNo: 9, size: 4, baseRaw: 1}})
	data := dataRecord(0, []byte{1, 2, 3, 4})
	buf := buildFile(append(def, data...))

	messages, err := NewDecoder(buf, WithStrict(false)).Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	dev, ok := messages[0].DevField(9)
	if !ok {
		t.Fatalf("expected a fallback developer field")
	}
	if dev.FieldDef.BaseType.Name != "byte" {
		t.Fatalf("fallback base type = %q, want byte", dev.FieldDef.BaseType.Name)
	}
}

// Re-defining a local id discards the prior schema: once the slot is
// overwritten, subsequent data records of that id decode against the new
// definition only.
func TestSlotEvictionUsesNewestDefinition(t *testing.T) {
	first := definitionRecord(0, 0, 0, []rawFieldDef{{fieldDefNo: 0, size: 1, baseRaw: 0x00}}, nil)
	second := definitionRecord(0, 0, 20, []rawFieldDef{{fieldDefNo: 7, size: 2, baseRaw: 0x84}}, nil)
	data := dataRecord(0, le16(55))
	buf := buildFile(append(append(first, second...), data...))

	messages, err := NewDecoder(buf).Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("len(messages) = %d, want 1", len(messages))
	}
	if messages[0].GlobalMessageNum != 20 {
		t.Fatalf("GlobalMessageNum = %d, want 20 (the newer definition)", messages[0].GlobalMessageNum)
	}
}

// A data record referencing a local id with no prior definition is a
// framing error.
func TestUnknownSlotIsFramingError(t *testing.T) {
	buf := buildFile(dataRecord(3, []byte{1}))
	_, err := NewDecoder(buf).Decode()
	if err == nil {
		t.Fatalf("expected a framing error for an undefined local id")
	}
}

// Message indices are assigned in strictly increasing wire order to data
// records only; definition records take no index.
func TestMessageIndexMonotonic(t *testing.T) {
	def := definitionRecord(0, 0, 0, []rawFieldDef{{fieldDefNo: 0, size: 1, baseRaw: 0x00}}, nil)
	d1 := dataRecord(0, []byte{1})
	d2 := dataRecord(0, []byte{2})
	d3 := dataRecord(0, []byte{3})
	buf := buildFile(append(append(append(def, d1...), d2...), d3...))

	messages, err := NewDecoder(buf).Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i, m := range messages {
		if m.Index != i {
			t.Fatalf("messages[%d].Index = %d, want %d", i, m.Index, i)
		}
	}
}

// WithGlobalFilter restricts emission to one global message number, but
// field_description (206) messages are always processed and always
// emitted regardless of the filter.
func TestGlobalFilterAlwaysEmitsFieldDescription(t *testing.T) {
	fileIDDef := definitionRecord(0, 0, 0, []rawFieldDef{{fieldDefNo: 0, size: 1, baseRaw: 0x00}}, nil)
	fileIDData := dataRecord(0, []byte{4})
	fdDef := definitionRecord(1, 0, 206, []rawFieldDef{
		{fieldDefNo: 0, size: 1, baseRaw: 0x02},
		{fieldDefNo: 1, size: 1, baseRaw: 0x02},
		{fieldDefNo: 2, size: 1, baseRaw: 0x02},
		{fieldDefNo: 3, size: 4, baseRaw: 0x07},
	}, nil)
	fdData := dataRecord(1, []byte{0}, []byte{5}, []byte{2}, []byte("Acc\x00"))

	body := append(append(append([]byte{}, fileIDDef...), fileIDData...), append(fdDef, fdData...)...)
	buf := buildFile(body)

	messages, err := NewDecoder(buf, WithGlobalFilter(206)).Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("len(messages) = %d, want 1 (file_id filtered out)", len(messages))
	}
	if messages[0].GlobalMessageNum != 206 {
		t.Fatalf("GlobalMessageNum = %d, want 206", messages[0].GlobalMessageNum)
	}
}

// Definition.DataSize is the exact byte count a matching data record must
// supply: the sum of every declared field width, standard and developer.
func TestDefinitionDataSizeMatchesRecordLength(t *testing.T) {
	def := Definition{
		Fields:          []FieldDef{{Size: 1}, {Size: 2}, {Size: 4}},
		DeveloperFields: []FieldDef{{Size: 2}},
	}
	if got := def.DataSize(); got != 9 {
		t.Fatalf("DataSize() = %d, want 9", got)
	}
}

// A zero-field definition is well-formed: its data records consume no
// payload bytes beyond the header byte itself.
func TestZeroFieldDefinition(t *testing.T) {
	def := definitionRecord(0, 0, 0, nil, nil)
	data := dataRecord(0)
	buf := buildFile(append(def, data...))

	messages, err := NewDecoder(buf).Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(messages) != 1 || len(messages[0].Fields) != 0 {
		t.Fatalf("expected a single message with no fields, got %+v", messages)
	}
}

