package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"employee-records/internal/models"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a payload field to its validation messages.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

func (fe FieldErrors) Has(field string) bool {
	return len(fe[field]) > 0
}

const (
	msgRequired   = "This field is required."
	msgNull       = "This field may not be null."
	msgBlank      = "This field may not be blank."
	msgNotString  = "Not a valid string."
	msgNullChars  = "Null characters are not allowed."
	msgDateFormat = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
)

// payloadError is a body-level failure that is not tied to a single field.
type payloadError struct {
	body map[string]any
}

func (e *payloadError) Error() string { return fmt.Sprintf("invalid payload: %v", e.body) }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeEmployee turns a raw request body into a validated payload.
// It returns a *payloadError for malformed bodies and non-empty FieldErrors for
// field-level failures.
func decodeEmployee(raw []byte) (models.CreateEmployeeDTO, FieldErrors, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return models.CreateEmployeeDTO{}, nil, err
	}

	errs := FieldErrors{}
	present := map[string]bool{}
	values := map[string]string{}
	for _, name := range employeeFields {
		v, ok := obj[name]
		if !ok {
			continue
		}
		present[name] = true
		s, msg := coerceString(v)
		if msg != "" {
			errs.Add(name, msg)
			continue
		}
		// PostgreSQL text columns cannot hold 0x00.
		if strings.ContainsRune(s, 0) {
			errs.Add(name, msgNullChars)
			continue
		}
		// Dates are parsed as sent; only char fields are trimmed.
		if !dateFields[name] {
			s = strings.TrimSpace(s)
		}
		values[name] = s
	}

	in := models.CreateEmployeeDTO{
		EmployeeID:    values["employee_id"],
		FullName:      values["full_name"],
		DateOfBirth:   values["date_of_birth"],
		Address:       values["address"],
		ContactNumber: values["contact_number"],
		DateOfJoining: values["date_of_joining"],
		BankName:      values["bank_name"],
		AccountNumber: values["account_number"],
	}

	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return models.CreateEmployeeDTO{}, nil, err
		}
		for _, fe := range verrs {
			field := fe.Field()
			if errs.Has(field) {
				continue
			}
			errs.Add(field, fieldMessage(fe, present[field], dateFields[field]))
		}
	}
	return in, errs, nil
}

var employeeFields = []string{
	"employee_id", "full_name", "date_of_birth", "address",
	"contact_number", "date_of_joining", "bank_name", "account_number",
}

var dateFields = map[string]bool{"date_of_birth": true, "date_of_joining": true}

func decodeObject(raw []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &payloadError{body: map[string]any{"detail": "JSON parse error - " + err.Error()}}
	}
	// Anything but trailing whitespace after the value is extra data,
	// including stray closing delimiters that dec.More does not report.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &payloadError{body: map[string]any{"detail": "JSON parse error - extra data after top-level value"}}
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &payloadError{body: map[string]any{
			"non_field_errors": []string{fmt.Sprintf("Invalid data. Expected a dictionary, but got %s.", jsonKind(v))},
		}}
	}
	return obj, nil
}

// coerceString accepts strings and numbers. The returned message is empty on success.
func coerceString(v any) (string, string) {
	switch t := v.(type) {
	case nil:
		return "", msgNull
	case string:
		return t, ""
	case json.Number:
		return t.String(), ""
	default:
		return "", msgNotString
	}
}

func fieldMessage(fe validator.FieldError, present, isDate bool) string {
	switch fe.Tag() {
	case "required":
		if present && isDate {
			return msgDateFormat
		}
		if present {
			return msgBlank
		}
		return msgRequired
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "datetime":
		return msgDateFormat
	default:
		return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
	}
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
