// Package field provides fluent builders for declaring entity fields.
//
//	field.Int("id")
//	field.String("brand")
//	field.Int("tire_id").Optional()
//	field.String("serial").StorageKey("serial_no")
//
// Field names follow database conventions (snake_case). The storage key
// overrides the column name.
package field
