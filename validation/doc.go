// Package validation checks configuration and declaration tables against
// their `validate` struct tags.
//
//	type Table struct {
//	    Operations []Operation `yaml:"operations" validate:"required,dive"`
//	}
//	err := validation.Validate(&table)
//
// Errors are *errors.AppError values with code INVALID_INPUT; the
// "fields" detail carries one FieldError per failed constraint.
package validation
