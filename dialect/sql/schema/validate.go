package schema

import (
	"fmt"
	"strings"

	"ariga.io/atlas/sql/schema"
)

// ValidationError describes a table or column that cannot be mapped
// as inspected.
type ValidationError struct {
	Table   string
	Column  string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s.%s: %s", e.Table, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Table, e.Message)
}

// ValidationResult holds the results of schema validation.
type ValidationResult struct {
	Errors   []*ValidationError
	Warnings []*ValidationError
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// String returns a human-readable summary of the validation result.
func (r *ValidationResult) String() string {
	var sb strings.Builder
	if len(r.Errors) > 0 {
		sb.WriteString("Errors:\n")
		for _, e := range r.Errors {
			sb.WriteString("  - ")
			sb.WriteString(e.Error())
			sb.WriteString("\n")
		}
	}
	if len(r.Warnings) > 0 {
		sb.WriteString("Warnings:\n")
		for _, w := range r.Warnings {
			sb.WriteString("  - ")
			sb.WriteString(w.Error())
			sb.WriteString("\n")
		}
	}
	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}
	return sb.String()
}

func (r *ValidationResult) warn(table, column, msg string) {
	r.Warnings = append(r.Warnings, &ValidationError{Table: table, Column: column, Message: msg})
}

// Validate checks inspected tables for structures the schema graph cannot
// represent. Tables without a primary key are reported as errors, since
// they cannot be mapped to a type. Composite keys and foreign keys that
// reference unmapped tables are reported as warnings.
func Validate(tables []*schema.Table) *ValidationResult {
	result := &ValidationResult{}
	mapped := make(map[string]bool, len(tables))
	for _, t := range tables {
		if t.PrimaryKey == nil || len(t.PrimaryKey.Parts) == 0 {
			result.Errors = append(result.Errors, &ValidationError{Table: t.Name, Message: "table has no primary key"})
			continue
		}
		mapped[t.Name] = true
	}
	for _, t := range tables {
		if !mapped[t.Name] {
			continue
		}
		if len(t.PrimaryKey.Parts) > 1 {
			result.warn(t.Name, "", "composite primary key, table cannot be a route child")
		}
		for _, fk := range t.ForeignKeys {
			if fk.RefTable == nil || !mapped[fk.RefTable.Name] {
				result.warn(t.Name, fkColumns(fk), "foreign key references an unmapped table")
			}
		}
	}
	return result
}

func fkColumns(fk *schema.ForeignKey) string {
	names := make([]string, len(fk.Columns))
	for i, c := range fk.Columns {
		names[i] = c.Name
	}
	return strings.Join(names, ",")
}
