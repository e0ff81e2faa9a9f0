package export

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kjordahl/fitvirb/fit"
	"github.com/kjordahl/fitvirb/fit/domain"
	"github.com/kjordahl/fitvirb/fit/profile"
)

// ExportFile reads inputPath and writes an export bundle to outputDir.
// Output files: manifest.json, records.jsonl, and (if opts.CopySourceFile)
// source.fit.
func ExportFile(inputPath, outputDir string, opts Options) (*Result, error) {
	if strings.TrimSpace(inputPath) == "" {
		return nil, fmt.Errorf("input path is required")
	}
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("read fit file: %w", err)
	}

	result, err := exportBytes(data, outputDir, opts, filepath.Base(inputPath))
	if err != nil {
		return nil, err
	}

	if opts.CopySourceFile {
		sourceCopyPath := filepath.Join(outputDir, "source.fit")
		if err := copyFile(inputPath, sourceCopyPath); err != nil {
			return nil, fmt.Errorf("copy source fit file: %w", err)
		}
		result.SourceCopyPath = sourceCopyPath
	}

	return result, nil
}

// ExportBytes exports an in-memory FIT buffer to outputDir using the zero
// Options: a non-empty outputDir is refused, the decode is lenient, and no
// source copy is written (there is no source path to copy from).
func ExportBytes(data []byte, outputDir string) (*Result, error) {
	return exportBytes(data, outputDir, Options{}, "")
}

func exportBytes(data []byte, outputDir string, opts Options, sourceName string) (*Result, error) {
	if strings.TrimSpace(outputDir) == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	sum := sha256.Sum256(data)
	sha := hex.EncodeToString(sum[:])

	dec := fit.NewDecoder(data, fit.WithStrict(opts.Strict))
	messages, err := dec.Decode()
	if err != nil {
		return nil, fmt.Errorf("decode fit file: %w", err)
	}
	profile.Augment(messages)

	if err := ensureOutputDir(outputDir, opts.Overwrite); err != nil {
		return nil, err
	}

	recordsPath := filepath.Join(outputDir, "records.jsonl")
	if err := writeJSONL(recordsPath, toEnvelopes(messages)); err != nil {
		return nil, fmt.Errorf("write records.jsonl: %w", err)
	}

	header := dec.Header()
	manifest := Manifest{
		FormatVersion:   ExportFormatVersion,
		GeneratedAt:     time.Now().UTC(),
		SourceFileName:  sourceName,
		SourceSHA256:    sha,
		SourceSizeBytes: int64(len(data)),
		Header: HeaderInfo{
			Size:            header.Size,
			ProtocolVersion: header.ProtocolVersion,
			ProfileVersion:  header.ProfileVersion,
			DataSize:        header.DataSize,
			Signature:       header.Signature,
		},
		RecordsPath:      filepath.Base(recordsPath),
		RecordCount:      len(messages),
		FileIDProjection: projectFileID(messages),
		SchemaDescription: SchemaDetails{
			RecordType: "JSONL line-per-DataMessage preserving original wire order and byte offsets",
			Notes: []string{
				"Lossless: every standard and developer field is exported with its decoded value and validity flags.",
				"Use record_index and file_offset for deterministic chunking in downstream pipelines.",
				"Field name/scale/offset/units are populated when the profile table or a developer FieldDescription supplied them.",
			},
		},
	}

	manifestPath := filepath.Join(outputDir, "manifest.json")
	if err := writeJSON(manifestPath, manifest); err != nil {
		return nil, fmt.Errorf("write manifest.json: %w", err)
	}

	return &Result{
		OutputDir:       outputDir,
		ManifestPath:    manifestPath,
		RecordsPath:     recordsPath,
		RecordCount:     len(messages),
		SourceSHA256:    sha,
		SourceSizeBytes: int64(len(data)),
	}, nil
}

func projectFileID(messages []fit.DataMessage) *FileIDInfo {
	for _, m := range messages {
		if m.GlobalMessageNum != domain.GlobalFileID {
			continue
		}
		fid, err := domain.NewFileId(m)
		if err != nil {
			return nil
		}
		return &FileIDInfo{
			Type:         fid.Type,
			Manufacturer: fid.Manufacturer,
			Product:      fid.Product,
			SerialNumber: fid.SerialNumber,
			TimeCreated:  fid.TimeCreated,
		}
	}
	return nil
}

func toEnvelopes(messages []fit.DataMessage) []RecordEnvelope {
	out := make([]RecordEnvelope, len(messages))
	for i, m := range messages {
		out[i] = RecordEnvelope{
			FormatVersion:    ExportFormatVersion,
			RecordIndex:      m.Index,
			FileOffset:       m.Offset,
			GlobalMessageNum: m.GlobalMessageNum,
			Fields:           toFieldValues(m.Fields),
			DeveloperFields:  toFieldValues(m.DeveloperFields),
		}
	}
	return out
}

func toFieldValues(fields []fit.DataField) []FieldValue {
	if len(fields) == 0 {
		return nil
	}
	out := make([]FieldValue, len(fields))
	for i, f := range fields {
		fv := FieldValue{
			FieldDefNo: f.FieldDef.FieldDefNo,
			Size:       f.FieldDef.Size,
			BaseType: BaseTypeInfo{
				CanonicalByte: f.FieldDef.BaseType.Raw,
				Name:          f.FieldDef.BaseType.Name,
				Width:         f.FieldDef.BaseType.Width,
			},
			Decoded: decodedValue(f.Value),
			IsArray: f.Value.Len() > 1,
			Invalid: f.Value.Invalid,
		}
		if f.FieldDef.Attributes != nil {
			fv.Name = f.FieldDef.Attributes.Name
			fv.Scale = f.FieldDef.Attributes.Scale
			fv.Offset = f.FieldDef.Attributes.Offset
			fv.Units = f.FieldDef.Attributes.Units
		}
		out[i] = fv
	}
	return out
}

// decodedValue surfaces a Value's populated sequence as a plain Go value
// suitable for encoding/json, independent of its Kind.
func decodedValue(v fit.Value) any {
	switch v.Kind {
	case fit.KindText:
		return v.Text
	case fit.KindBytes:
		return v.Bytes
	case fit.KindEnum:
		return v.Enums
	case fit.KindSint8:
		return v.Sint8s
	case fit.KindUint8:
		return v.Uint8s
	case fit.KindSint16:
		return v.Sint16s
	case fit.KindUint16:
		return v.Uint16s
	case fit.KindSint32:
		return v.Sint32s
	case fit.KindUint32:
		return v.Uint32s
	case fit.KindFloat32:
		return v.Float32s
	case fit.KindFloat64:
		return v.Float64s
	case fit.KindUint8z:
		return v.Uint8zs
	case fit.KindUint16z:
		return v.Uint16zs
	case fit.KindUint32z:
		return v.Uint32zs
	case fit.KindSint64:
		return v.Sint64s
	case fit.KindUint64:
		return v.Uint64s
	case fit.KindUint64z:
		return v.Uint64zs
	default:
		return nil
	}
}

func ensureOutputDir(path string, overwrite bool) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("read output directory: %w", err)
	}
	if len(entries) > 0 && !overwrite {
		return fmt.Errorf("output directory is not empty: %s (set overwrite=true to allow)", path)
	}
	return nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeJSONL(path string, records []RecordEnvelope) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := bufio.NewWriterSize(f, 1<<20)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	for _, record := range records {
		if err := enc.Encode(record); err != nil {
			return err
		}
	}
	return buf.Flush()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
