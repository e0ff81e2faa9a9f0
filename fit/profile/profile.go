// Package profile carries the static global-id/field-def_no metadata table
// (§4.10) and the augment pass that stamps it onto a decoded message
// sequence. This table is intentionally modest: it covers the global ids
// named by fit/domain's projectors plus the session/lap/event/activity
// ids, not a full vendor-profile transcription.
package profile

import "github.com/kjordahl/fitvirb/fit"

// FieldType names and scales a single field_def_no within a message type.
type FieldType struct {
	Name   string
	Scale  float64 // 0 means unscaled
	Offset float64
	Units  string
}

// MessageType names a global message number and its known fields.
type MessageType struct {
	Name   string
	Fields map[uint8]FieldType
}

// Table maps global message number to its MessageType, grounded on the
// original implementation's Profile.xlsx-derived message_type/profile
// tables.
var Table = map[uint16]MessageType{
	0: {
		Name: "file_id",
		Fields: map[uint8]FieldType{
			0: {Name: "type"},
			1: {Name: "manufacturer"},
			2: {Name: "product"},
			3: {Name: "serial_number"},
			4: {Name: "time_created"},
			5: {Name: "number"},
		},
	},
	20: {
		Name: "record",
		Fields: map[uint8]FieldType{
			253: {Name: "timestamp", Units: "s"},
			0:   {Name: "position_lat", Units: "semicircles"},
			1:   {Name: "position_long", Units: "semicircles"},
			2:   {Name: "altitude", Scale: 5, Offset: 500, Units: "m"},
			5:   {Name: "distance", Scale: 100, Units: "m"},
			6:   {Name: "speed", Scale: 1000, Units: "m/s"},
			31:  {Name: "gps_accuracy", Units: "m"},
			73:  {Name: "enhanced_speed", Scale: 1000, Units: "m/s"},
			78:  {Name: "enhanced_altitude", Scale: 5, Offset: 500, Units: "m"},
		},
	},
	160: {
		Name: "gps_metadata",
		Fields: map[uint8]FieldType{
			253: {Name: "timestamp", Units: "s"},
			0:   {Name: "timestamp_ms", Units: "ms"},
			1:   {Name: "position_lat", Units: "semicircles"},
			2:   {Name: "position_long", Units: "semicircles"},
			3:   {Name: "enhanced_altitude", Scale: 5, Offset: 500, Units: "m"},
			4:   {Name: "enhanced_speed", Scale: 1000, Units: "m/s"},
			5:   {Name: "heading", Scale: 100, Units: "degrees"},
			6:   {Name: "utc_timestamp", Units: "s"},
			7:   {Name: "velocity", Scale: 100, Units: "m/s"},
		},
	},
	161: {
		Name: "camera_event",
		Fields: map[uint8]FieldType{
			253: {Name: "timestamp", Units: "s"},
			0:   {Name: "timestamp_ms", Units: "ms"},
			1:   {Name: "camera_event_type"},
			2:   {Name: "camera_file_uuid"},
			3:   {Name: "camera_orientation"},
		},
	},
	162: {
		Name: "timestamp_correlation",
		Fields: map[uint8]FieldType{
			253: {Name: "timestamp", Units: "s"},
			4:   {Name: "timestamp_ms", Units: "ms"},
			1:   {Name: "system_timestamp", Units: "s"},
			5:   {Name: "system_timestamp_ms", Units: "ms"},
		},
	},
	164: {
		Name: "gyroscope_data",
		Fields: map[uint8]FieldType{
			253: {Name: "timestamp", Units: "s"},
			0:   {Name: "timestamp_ms", Units: "ms"},
			1:   {Name: "sample_time_offset", Units: "ms"},
			2:   {Name: "gyro_x"},
			3:   {Name: "gyro_y"},
			4:   {Name: "gyro_z"},
			5:   {Name: "calibrated_gyro_x", Units: "deg/s"},
			6:   {Name: "calibrated_gyro_y", Units: "deg/s"},
			7:   {Name: "calibrated_gyro_z", Units: "deg/s"},
		},
	},
	165: {
		Name: "accelerometer_data",
		Fields: map[uint8]FieldType{
			253: {Name: "timestamp", Units: "s"},
			0:   {Name: "timestamp_ms", Units: "ms"},
			1:   {Name: "sample_time_offset", Units: "ms"},
			2:   {Name: "accel_x"},
			3:   {Name: "accel_y"},
			4:   {Name: "accel_z"},
			5:   {Name: "calibrated_accel_x", Units: "g"},
			6:   {Name: "calibrated_accel_y", Units: "g"},
			7:   {Name: "calibrated_accel_z", Units: "g"},
		},
	},
	167: {
		Name: "three_d_sensor_calibration",
		Fields: map[uint8]FieldType{
			253: {Name: "timestamp", Units: "s"},
			0:   {Name: "sensor_type"},
			1:   {Name: "calibration_factor"},
			2:   {Name: "calibration_divisor"},
			3:   {Name: "level_shift"},
			4:   {Name: "offset_cal"},
			5:   {Name: "orientation_matrix"},
		},
	},
	206: {
		Name: "field_description",
		Fields: map[uint8]FieldType{
			0: {Name: "developer_data_index"},
			1: {Name: "field_definition_number"},
			2: {Name: "fit_base_type_id"},
			3: {Name: "field_name"},
			6: {Name: "scale"},
			7: {Name: "offset"},
			8: {Name: "units"},
		},
	},
	208: {
		Name: "magnetometer_data",
		Fields: map[uint8]FieldType{
			253: {Name: "timestamp", Units: "s"},
			0:   {Name: "timestamp_ms", Units: "ms"},
			1:   {Name: "sample_time_offset", Units: "ms"},
			2:   {Name: "mag_x"},
			3:   {Name: "mag_y"},
			4:   {Name: "mag_z"},
			5:   {Name: "calibrated_mag_x", Units: "G"},
			6:   {Name: "calibrated_mag_y", Units: "G"},
			7:   {Name: "calibrated_mag_z", Units: "G"},
		},
	},
	209: {
		Name: "barometer_data",
		Fields: map[uint8]FieldType{
			253: {Name: "timestamp", Units: "s"},
			0:   {Name: "timestamp_ms", Units: "ms"},
			1:   {Name: "sample_time_offset", Units: "ms"},
			2:   {Name: "baro_pres"},
			3:   {Name: "calibrated_pres", Units: "Pa"},
		},
	},
	210: {
		Name: "one_d_sensor_calibration",
		Fields: map[uint8]FieldType{
			253: {Name: "timestamp", Units: "s"},
			0:   {Name: "sensor_type"},
			1:   {Name: "calibration_factor"},
			2:   {Name: "calibration_divisor"},
			3:   {Name: "level_shift"},
			4:   {Name: "offset_cal"},
		},
	},
	// Not read by any DomainProjector or by the summary package; these
	// entries only name fields for the augment pass.
	18: {
		Name: "session",
		Fields: map[uint8]FieldType{
			253: {Name: "timestamp", Units: "s"},
			2:   {Name: "start_time", Units: "s"},
			7:   {Name: "total_distance", Scale: 100, Units: "m"},
			8:   {Name: "total_elapsed_time", Scale: 1000, Units: "s"},
		},
	},
	19: {
		Name: "lap",
		Fields: map[uint8]FieldType{
			253: {Name: "timestamp", Units: "s"},
			2:   {Name: "start_time", Units: "s"},
			7:   {Name: "total_distance", Scale: 100, Units: "m"},
			8:   {Name: "total_elapsed_time", Scale: 1000, Units: "s"},
		},
	},
	21: {
		Name: "event",
		Fields: map[uint8]FieldType{
			253: {Name: "timestamp", Units: "s"},
			0:   {Name: "event"},
			1:   {Name: "event_type"},
		},
	},
	34: {
		Name: "activity",
		Fields: map[uint8]FieldType{
			253: {Name: "timestamp", Units: "s"},
			0:   {Name: "total_timer_time", Scale: 1000, Units: "s"},
			1:   {Name: "num_sessions"},
		},
	},
}

// Augment walks messages, stamping FieldAttributes from Table onto each
// standard field. Missing profile entries (unknown global id, unknown
// field_def_no) leave attributes unset; the pass never fails. Developer
// fields are left untouched, since they already carry attributes from
// their FieldDescription.
func Augment(messages []fit.DataMessage) {
	for i := range messages {
		mt, ok := Table[messages[i].GlobalMessageNum]
		if !ok {
			continue
		}
		for defNo, ft := range mt.Fields {
			messages[i].SetAttributes(defNo, fit.FieldAttributes{
				Name:   ft.Name,
				Scale:  ft.Scale,
				Offset: ft.Offset,
				Units:  ft.Units,
			})
		}
	}
}
