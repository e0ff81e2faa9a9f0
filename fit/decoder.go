package fit

import (
	"encoding/binary"
	"fmt"

	"github.com/go-logr/logr"
)

// Decoder is the streaming state machine described in §4.6. It owns the
// slot table and the developer-field table for the lifetime of a single
// Decode call and produces an ordered sequence of DataMessages with
// monotone indices.
//
// The decoder is strictly sequential: nothing here suspends or shares
// state across goroutines (§5). Callers that want to parallelize work
// over the result do so on the returned slice, never during Decode.
type Decoder struct {
	buf    []byte
	strict bool
	filter *uint16
	log    logr.Logger

	header FileHeader
	slots  [16]*Definition
	devs   *developerFieldTable
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithLogger attaches a structured logger used for per-record tracing at
// V(1) and warnings (slot eviction, developer-field collisions) at the
// default level. The zero value uses logr.Discard(), matching the
// WithLogger/logr.Discard() option idiom used elsewhere in the retrieved
// corpus for optional diagnostic logging.
func WithLogger(log logr.Logger) Option {
	return func(d *Decoder) { d.log = log }
}

// WithStrict controls whether a malformed developer FieldDef (one whose
// schema is not found in the developer-field table) aborts the decode
// (true, the default) or is tolerated by falling back to a raw byte
// interpretation (false). See DESIGN.md Open Question 1.
func WithStrict(strict bool) Option {
	return func(d *Decoder) { d.strict = strict }
}

// WithGlobalFilter restricts the emitted DataMessage sequence to a single
// global message number plus field-description (206) messages, which are
// always emitted. Definition records and field-description records are
// still fully processed regardless of the filter, because later
// definitions may depend on them (§4.6). Indices count emitted messages
// only.
func WithGlobalFilter(global uint16) Option {
	return func(d *Decoder) { d.filter = &global }
}

// NewDecoder constructs a Decoder over buf. Strictness defaults to true.
func NewDecoder(buf []byte, opts ...Option) *Decoder {
	d := &Decoder{
		buf:    buf,
		strict: true,
		log:    logr.Discard(),
		devs:   newDeveloperFieldTable(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Header returns the file header parsed by the most recent Decode call.
// Its zero value is returned if Decode has not yet been called.
func (d *Decoder) Header() FileHeader { return d.header }

// Decode runs the full state machine over the owned buffer: FileHeader,
// then an alternation of definition and data records until the declared
// data region ends (§4.6). On any framing, schema, or I/O error the
// decode aborts immediately with no partial-result recovery.
func (d *Decoder) Decode() ([]DataMessage, error) {
	header, err := ParseFileHeader(d.buf)
	if err != nil {
		return nil, err
	}
	d.header = header

	cur := NewByteCursor(d.buf)
	if err := cur.SeekForward(int(header.Size)); err != nil {
		return nil, err
	}

	end := int(header.Size) + int(header.EffectiveDataSize(len(d.buf)))
	d.log.V(1).Info("decode begin", "header_size", header.Size, "effective_end", end)

	messages := make([]DataMessage, 0, 256)
	index := 0

	for cur.Position() < end {
		recordOffset := cur.Position()
		raw, err := cur.ReadByte()
		if err != nil {
			return nil, err
		}
		mh := ParseMessageHeader(raw)

		switch {
		case mh.Compressed:
			def := d.slots[mh.CompressedSlotID]
			if def == nil {
				return nil, newFramingError(recordOffset, fmt.Sprintf("unknown definition slot %d (compressed)", mh.CompressedSlotID))
			}
			msg, err := d.parseDataRecord(cur, *def, recordOffset, index)
			if err != nil {
				return nil, err
			}
			d.log.V(1).Info("record", "offset", recordOffset, "kind", "data_compressed", "slot", mh.CompressedSlotID, "global", def.GlobalMessageNum)
			if d.shouldEmit(msg) {
				messages = append(messages, msg)
				index++
			}

		case mh.IsDefinition:
			def, err := d.parseDefinitionRecord(cur, mh, recordOffset)
			if err != nil {
				return nil, err
			}
			d.log.V(1).Info("record", "offset", recordOffset, "kind", "definition", "slot", mh.LocalID, "global", def.GlobalMessageNum)
			if d.slots[mh.LocalID] != nil {
				d.log.Info("slot eviction", "slot", mh.LocalID, "previous_global", d.slots[mh.LocalID].GlobalMessageNum, "new_global", def.GlobalMessageNum)
			}
			d.slots[mh.LocalID] = &def

		default:
			def := d.slots[mh.LocalID]
			if def == nil {
				return nil, newFramingError(recordOffset, fmt.Sprintf("unknown definition slot %d", mh.LocalID))
			}
			msg, err := d.parseDataRecord(cur, *def, recordOffset, index)
			if err != nil {
				return nil, err
			}
			d.log.V(1).Info("record", "offset", recordOffset, "kind", "data", "slot", mh.LocalID, "global", def.GlobalMessageNum)
			if d.shouldEmit(msg) {
				messages = append(messages, msg)
				index++
			}
		}
	}

	return messages, nil
}

func (d *Decoder) shouldEmit(msg DataMessage) bool {
	if d.filter == nil {
		return true
	}
	return msg.GlobalMessageNum == *d.filter || msg.GlobalMessageNum == GlobalFieldDescription
}

func (d *Decoder) parseDefinitionRecord(cur *ByteCursor, mh MessageHeader, recordOffset int) (Definition, error) {
	reserved, err := cur.ReadByte()
	if err != nil {
		return Definition{}, err
	}
	arch, err := cur.ReadByte()
	if err != nil {
		return Definition{}, err
	}
	var order binary.ByteOrder
	switch arch {
	case 0:
		order = binary.LittleEndian
	case 1:
		order = binary.BigEndian
	default:
		return Definition{}, newFramingError(recordOffset, fmt.Sprintf("invalid architecture byte %d", arch))
	}

	global, err := cur.ReadUint16(order)
	if err != nil {
		return Definition{}, err
	}

	nFields, err := cur.ReadByte()
	if err != nil {
		return Definition{}, err
	}
	fields := make([]FieldDef, 0, nFields)
	for i := 0; i < int(nFields); i++ {
		raw, err := cur.ReadBytes(3)
		if err != nil {
			return Definition{}, err
		}
		bt, err := ParseBaseType(raw[2])
		if err != nil {
			return Definition{}, err
		}
		fields = append(fields, FieldDef{FieldDefNo: raw[0], Size: raw[1], BaseType: bt})
	}

	devFields := make([]FieldDef, 0)
	if mh.DeveloperFields {
		nDev, err := cur.ReadByte()
		if err != nil {
			return Definition{}, err
		}
		for i := 0; i < int(nDev); i++ {
			raw, err := cur.ReadBytes(3)
			if err != nil {
				return Definition{}, err
			}
			fieldDefNo, size, devIdx := raw[0], raw[1], raw[2]
			fd, ok := d.devs.lookup(fieldDefNo, devIdx)
			if !ok {
				if d.strict {
					return Definition{}, &SchemaError{FieldDefNo: fieldDefNo, DeveloperDataIdx: devIdx, Reason: "no matching field description registered"}
				}
				devFields = append(devFields, FieldDef{
					FieldDefNo:         fieldDefNo,
					Size:               size,
					BaseType:           BaseType{Number: 13, Name: "byte", Width: 1},
					Developer:          true,
					DeveloperDataIndex: devIdx,
				})
				continue
			}
			attrs := &FieldAttributes{Name: fd.Name, Units: fd.Units}
			devFields = append(devFields, FieldDef{
				FieldDefNo:         fieldDefNo,
				Size:               size,
				BaseType:           fd.BaseType,
				Developer:          true,
				DeveloperDataIndex: devIdx,
				Attributes:         attrs,
			})
		}
	}

	return Definition{
		Reserved:         reserved,
		Architecture:     arch,
		ByteOrder:        order,
		GlobalMessageNum: global,
		Fields:           fields,
		DeveloperFields:  devFields,
	}, nil
}

func (d *Decoder) parseDataRecord(cur *ByteCursor, def Definition, recordOffset, index int) (DataMessage, error) {
	msg := DataMessage{
		GlobalMessageNum: def.GlobalMessageNum,
		Index:            index,
		Offset:           recordOffset,
		Fields:           make([]DataField, 0, len(def.Fields)),
	}

	for _, f := range def.Fields {
		raw, err := cur.ReadBytes(int(f.Size))
		if err != nil {
			return DataMessage{}, err
		}
		val := decodeValue(raw, f.BaseType, def.ByteOrder)
		msg.Fields = append(msg.Fields, DataField{FieldDef: f, Value: val})
	}

	if len(def.DeveloperFields) > 0 {
		msg.DeveloperFields = make([]DataField, 0, len(def.DeveloperFields))
		for _, f := range def.DeveloperFields {
			raw, err := cur.ReadBytes(int(f.Size))
			if err != nil {
				return DataMessage{}, err
			}
			val := decodeValue(raw, f.BaseType, def.ByteOrder)
			msg.DeveloperFields = append(msg.DeveloperFields, DataField{FieldDef: f, Value: val})
		}
	}

	if msg.GlobalMessageNum == GlobalFieldDescription {
		fd, err := fieldDescriptionFromMessage(msg)
		if err != nil {
			return DataMessage{}, err
		}
		if _, exists := d.devs.lookup(fd.FieldDefNo, fd.DeveloperDataIndex); exists {
			d.log.Info("developer field collision", "field_def_no", fd.FieldDefNo, "developer_data_index", fd.DeveloperDataIndex)
		}
		d.devs.register(fd)
	}

	return msg, nil
}
