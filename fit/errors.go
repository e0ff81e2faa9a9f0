package fit

import "fmt"

// FramingError reports a problem in the byte-level record framing: a bad
// header size, an invalid architecture byte, an unknown base type, or a
// data record referencing a slot with no live definition.
type FramingError struct {
	Offset int
	Reason string
}

func (e *FramingError) Error() string {
	return fmt.Sprintf("fit: framing error at offset %d: %s", e.Offset, e.Reason)
}

// SchemaError reports a problem resolving a developer field's schema: a
// definition references a developer field description that has not been
// registered yet (or ever).
type SchemaError struct {
	FieldDefNo       uint8
	DeveloperDataIdx uint8
	Reason           string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("fit: schema error for developer field (field_def_no=%d, developer_data_index=%d): %s", e.FieldDefNo, e.DeveloperDataIdx, e.Reason)
}

// IOError wraps a short read against the underlying buffer.
type IOError struct {
	Offset    int
	Requested int
	Available int
}

func (e *IOError) Error() string {
	return fmt.Sprintf("fit: short read at offset %d: requested %d bytes, %d available", e.Offset, e.Requested, e.Available)
}

// TextError describes invalid UTF-8 in a text field. The decoder always
// decodes text leniently, replacing invalid sequences, and never returns
// this error.
type TextError struct {
	FieldDefNo uint8
	Reason     string
}

func (e *TextError) Error() string {
	return fmt.Sprintf("fit: text error in field %d: %s", e.FieldDefNo, e.Reason)
}

// newFramingError builds a *FramingError for the given byte offset; it is
// used, among others, when the file header's size byte is neither 12 nor 14.
func newFramingError(offset int, reason string) error {
	return &FramingError{Offset: offset, Reason: reason}
}
