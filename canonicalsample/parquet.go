//go:build !js

package canonicalsample

import (
	"math"
	"os"

	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

type canonicalParquetRow struct {
	TSUTCISO         string  `parquet:"name=ts_utc_iso, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	ElapsedS         float64 `parquet:"name=elapsed_s, type=DOUBLE"`
	Latitude         float64 `parquet:"name=latitude, type=DOUBLE"`
	Longitude        float64 `parquet:"name=longitude, type=DOUBLE"`
	AltitudeM        float64 `parquet:"name=altitude_m, type=DOUBLE"`
	Speed2DMPS       float64 `parquet:"name=speed_2d_mps, type=DOUBLE"`
	Speed3DMPS       float64 `parquet:"name=speed_3d_mps, type=DOUBLE"`
	DistanceM        float64 `parquet:"name=distance_m, type=DOUBLE"`
	HasAccelerometer bool    `parquet:"name=has_accelerometer, type=BOOLEAN"`
	HasGyroscope     bool    `parquet:"name=has_gyroscope, type=BOOLEAN"`
	HasMagnetometer  bool    `parquet:"name=has_magnetometer, type=BOOLEAN"`
	HasBarometer     bool    `parquet:"name=has_barometer, type=BOOLEAN"`
	FileOffset       int64   `parquet:"name=file_offset, type=INT64"`
	RecordIndex      int64   `parquet:"name=record_index, type=INT64"`
}

// MarshalParquet encodes samples as a SNAPPY-compressed Parquet file body,
// the teacher's marshalCanonicalParquet pattern generalized to GPS/sensor
// columns. Optional columns with no value are written as NaN rather than
// a null, matching the teacher's valueOrNaN convention.
func MarshalParquet(samples []Sample) ([]byte, error) {
	fw := parquetbuffer.NewBufferFile()
	pw, err := writer.NewParquetWriter(fw, new(canonicalParquetRow), 4)
	if err != nil {
		return nil, err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	for _, s := range samples {
		row := canonicalParquetRow{
			TSUTCISO:         s.TSUTCISO,
			ElapsedS:         s.ElapsedS,
			Latitude:         valueOrNaN(s.Latitude),
			Longitude:        valueOrNaN(s.Longitude),
			AltitudeM:        valueOrNaN(s.AltitudeM),
			Speed2DMPS:       valueOrNaN(s.Speed2DMPS),
			Speed3DMPS:       valueOrNaN(s.Speed3DMPS),
			DistanceM:        valueOrNaN(s.DistanceM),
			HasAccelerometer: s.HasAccelerometer,
			HasGyroscope:     s.HasGyroscope,
			HasMagnetometer:  s.HasMagnetometer,
			HasBarometer:     s.HasBarometer,
			FileOffset:       int64(s.FileOffset),
			RecordIndex:      int64(s.RecordIndex),
		}
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			return nil, err
		}
	}
	if err := pw.WriteStop(); err != nil {
		return nil, err
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return append([]byte(nil), fw.Bytes()...), nil
}

// WriteParquet marshals samples and writes them to path.
func WriteParquet(path string, samples []Sample) error {
	data, err := MarshalParquet(samples)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func valueOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
