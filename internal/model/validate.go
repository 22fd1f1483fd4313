package model

import (
	_ "embed"
	"fmt"
	"strings"

	"resume-pdf/internal/dates"

	"github.com/xeipuuv/gojsonschema"
)

// Validation error codes.
const (
	CodeInvalidPayload = "invalid_payload"
	CodeMissingField   = "missing_field"
	CodeMalformedDate  = "malformed_date"
	CodeDateOrder      = "date_order"
)

// ValidationError is returned for documents that must not be rendered. Field
// names the offending input key (a required field or the list holding a bad
// entry).
type ValidationError struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Code + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Message)
}

//go:embed resume.schema.json
var schemaJSON []byte

var schema *gojsonschema.Schema

func init() {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	if err != nil {
		panic(fmt.Sprintf("resume schema: %v", err))
	}
	schema = s
}

// ValidateShape checks a decoded document against resume.schema.json. It only
// rejects structurally unusable input (a non-object body, an object where a
// text field is expected); field presence is checked by Validate.
func ValidateShape(m interface{}) error {
	if m == nil {
		return &ValidationError{Code: CodeInvalidPayload, Message: "empty document"}
	}
	res, err := schema.Validate(gojsonschema.NewGoLoader(m))
	if err != nil {
		return &ValidationError{Code: CodeInvalidPayload, Message: err.Error()}
	}
	if res.Valid() {
		return nil
	}
	e := res.Errors()[0]
	field := e.Field()
	if field == gojsonschema.STRING_CONTEXT_ROOT {
		field = ""
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, re := range res.Errors() {
		msgs = append(msgs, re.String())
	}
	return &ValidationError{Code: CodeInvalidPayload, Field: field, Message: strings.Join(msgs, "; ")}
}

// Validate checks required fields and date ranges. It stops at the first
// problem found: required fields in the order nome, telefone, email,
// objetivo, then education entries, then work entries.
func Validate(r Resume) *ValidationError {
	required := []struct {
		field string
		value string
	}{
		{"nome", r.Name},
		{"telefone", r.Phone},
		{"email", r.Email},
		{"objetivo", r.Objective},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Code: CodeMissingField, Field: f.field, Message: "required field is missing"}
		}
	}

	for i, e := range r.Education {
		if err := checkRange("formacoes", i, e.Start, e.End); err != nil {
			return err
		}
	}
	for i, w := range r.Experience {
		end := w.End
		if w.Current {
			end = ""
		}
		if err := checkRange("experiencias", i, w.Start, end); err != nil {
			return err
		}
	}
	return nil
}

func checkRange(list string, idx int, start, end string) *ValidationError {
	s, okStart := dates.Parse(start)
	if dates.Present(start) && !okStart {
		return &ValidationError{Code: CodeMalformedDate, Field: list, Message: fmt.Sprintf("entry %d: unrecognized start date %q", idx, start)}
	}
	e, okEnd := dates.Parse(end)
	if dates.Present(end) && !okEnd {
		return &ValidationError{Code: CodeMalformedDate, Field: list, Message: fmt.Sprintf("entry %d: unrecognized end date %q", idx, end)}
	}
	if okStart && okEnd && s.After(e) {
		return &ValidationError{Code: CodeDateOrder, Field: list, Message: fmt.Sprintf("entry %d: start date %s is after end date %s", idx, start, end)}
	}
	return nil
}
