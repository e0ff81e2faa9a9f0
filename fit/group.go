package fit

// GroupByGlobal buckets an already-decoded message sequence by global
// message number, preserving per-bucket wire order. This is a pure
// function over an immutable slice, not a new parse pass, grounded on
// the original implementation's Fit::group helper (SPEC_FULL.md §2.3).
func GroupByGlobal(messages []DataMessage) map[uint16][]DataMessage {
	out := make(map[uint16][]DataMessage)
	for _, m := range messages {
		out[m.GlobalMessageNum] = append(out[m.GlobalMessageNum], m)
	}
	return out
}

// SetAttributes mutates the attributes of the field identified by
// fieldDefNo within msg's standard fields in place, used by the
// ProfileTable augment pass (§4.10). Developer fields already carry
// their attributes from FieldDescription and are left untouched.
func (m *DataMessage) SetAttributes(fieldDefNo uint8, attrs FieldAttributes) bool {
	for i := range m.Fields {
		if m.Fields[i].FieldDef.FieldDefNo == fieldDefNo {
			a := attrs
			m.Fields[i].FieldDef.Attributes = &a
			return true
		}
	}
	return false
}
