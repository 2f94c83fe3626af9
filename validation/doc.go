// Package validation validates request input and reports failures as
// VALIDATION AppErrors with per-field details.
//
// # Struct Tag Validation
//
//	type GenerateDocxRequest struct {
//	    Turns []TurnInput `json:"transcript_turns" validate:"required,dive"`
//	}
//	err := validation.Validate(req)
//
// Besides the go-playground/validator built-ins, the "object_key" tag accepts
// storage keys that stay inside the bucket namespace.
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("filename", filename).MaxLength("filename", filename, 255)
//	err := v.Validate()
package validation
