// Package export writes an LLM-friendly, lossless export bundle for a
// decoded FIT buffer: a JSONL record stream plus a manifest.json, grounded
// on the teacher's llmexport package and re-pointed at this module's own
// decoder and domain types instead of tormoder/fit.
package export

import "time"

// ExportFormatVersion identifies the on-disk schema for exports.
const ExportFormatVersion = "fitvirb_jsonl_v1"

// Options controls export behavior.
type Options struct {
	// Overwrite allows writing into a non-empty output directory.
	Overwrite bool
	// CopySourceFile writes a byte-for-byte copy of the source FIT file
	// to the output directory. Only meaningful for ExportFile, a no-op
	// for ExportBytes (no source path to copy from).
	CopySourceFile bool
	// Strict is forwarded to fit.WithStrict: whether an unknown
	// developer field description aborts the decode or falls back to a
	// raw byte interpretation. Unlike the bare Decoder, this zero value
	// (false) is lenient, matching export's best-effort intent.
	Strict bool
}

// Result describes the files an export generated.
type Result struct {
	OutputDir       string `json:"output_dir"`
	ManifestPath    string `json:"manifest_path"`
	RecordsPath     string `json:"records_path"`
	SourceCopyPath  string `json:"source_copy_path,omitempty"`
	RecordCount     int    `json:"record_count"`
	SourceSHA256    string `json:"source_sha256"`
	SourceSizeBytes int64  `json:"source_size_bytes"`
}

// Manifest captures export metadata and pointers to exported files.
type Manifest struct {
	FormatVersion     string        `json:"format_version"`
	GeneratedAt       time.Time     `json:"generated_at"`
	SourceFileName    string        `json:"source_file_name,omitempty"`
	SourceSHA256      string        `json:"source_sha256"`
	SourceSizeBytes   int64         `json:"source_size_bytes"`
	Header            HeaderInfo    `json:"header"`
	RecordsPath       string        `json:"records_path"`
	RecordCount       int           `json:"record_count"`
	FileIDProjection  *FileIDInfo   `json:"file_id_projection,omitempty"`
	SchemaDescription SchemaDetails `json:"schema_description"`
}

// SchemaDetails documents the record shape for downstream applications.
type SchemaDetails struct {
	RecordType string   `json:"record_type"`
	Notes      []string `json:"notes"`
}

// HeaderInfo stores parsed FIT header values.
type HeaderInfo struct {
	Size            uint8  `json:"size"`
	ProtocolVersion uint8  `json:"protocol_version"`
	ProfileVersion  uint16 `json:"profile_version"`
	DataSize        uint32 `json:"data_size"`
	Signature       string `json:"signature"`
}

// FileIDInfo is a convenience projection from the file_id message.
type FileIDInfo struct {
	Type         uint8  `json:"type"`
	Manufacturer uint16 `json:"manufacturer"`
	Product      uint16 `json:"product"`
	SerialNumber uint32 `json:"serial_number"`
	TimeCreated  uint32 `json:"time_created"`
}

// RecordEnvelope is one JSONL line in records.jsonl: one DataMessage in
// original FIT wire order, with byte offset and decoded field values.
type RecordEnvelope struct {
	FormatVersion    string       `json:"format_version"`
	RecordIndex      int          `json:"record_index"`
	FileOffset       int          `json:"file_offset"`
	GlobalMessageNum uint16       `json:"global_message_num"`
	Fields           []FieldValue `json:"fields"`
	DeveloperFields  []FieldValue `json:"developer_fields,omitempty"`
}

// FieldValue is one decoded field within a RecordEnvelope.
type FieldValue struct {
	FieldDefNo uint8        `json:"field_def_no"`
	Size       uint8        `json:"size"`
	BaseType   BaseTypeInfo `json:"base_type"`
	Name       string       `json:"name,omitempty"`
	Scale      float64      `json:"scale,omitempty"`
	Offset     float64      `json:"offset,omitempty"`
	Units      string       `json:"units,omitempty"`
	Decoded    any          `json:"decoded"`
	IsArray    bool         `json:"is_array"`
	Invalid    []bool       `json:"invalid,omitempty"`
}

// BaseTypeInfo describes canonical FIT base type information.
type BaseTypeInfo struct {
	CanonicalByte byte   `json:"canonical_byte"`
	Name          string `json:"name"`
	Width         int    `json:"width"`
}
