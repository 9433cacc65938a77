package employee

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type Issue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError lists every problem found in a payload.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Field+": "+issue.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError(issues ...Issue) *ValidationError {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Field == issues[j].Field {
			return issues[i].Reason < issues[j].Reason
		}
		return issues[i].Field < issues[j].Field
	})
	return &ValidationError{Issues: issues}
}

func (p CreatePayload) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	issues := make([]Issue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, Issue{Field: fe.Field(), Reason: reasonFor(fe)})
	}
	return newValidationError(issues...)
}

func (p UpdatePayload) Validate() error {
	var issues []Issue
	nullable := []struct {
		field string
		null  bool
	}{
		{"name", p.Name.Null},
		{"email", p.Email.Null},
		{"department", p.Department.Null},
		{"salary", p.Salary.Null},
		{"joining_date", p.JoiningDate.Null},
		{"skills", p.Skills.Null},
	}
	for _, f := range nullable {
		if f.null {
			issues = append(issues, Issue{Field: f.field, Reason: "must not be null"})
		}
	}
	if len(issues) > 0 {
		return newValidationError(issues...)
	}
	return nil
}

// DecodeJSON decodes a request body into dst and reports decoding failures as a ValidationError.
func DecodeJSON(body io.Reader, dst any) error {
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return decodeError(err)
	}
	return nil
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return newValidationError(Issue{Field: field, Reason: typeReason(typeErr.Type)})
	}
	var syntaxErr *json.SyntaxError
	switch {
	case errors.Is(err, io.EOF):
		return newValidationError(Issue{Field: "body", Reason: "field required"})
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return newValidationError(Issue{Field: "body", Reason: "must be a valid JSON object"})
	}
	// Transport failures such as an exceeded body limit are not payload problems.
	return err
}

func typeReason(t reflect.Type) string {
	switch t {
	case dateType:
		return "must be a valid date in YYYY-MM-DD format"
	case skillsType:
		return "must be a list of strings or a comma-separated string"
	}
	if t == nil {
		return "has an invalid type"
	}
	switch t.Kind() {
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int64:
		return "must be a number"
	case reflect.String:
		return "must be a string"
	case reflect.Struct, reflect.Map:
		return "must be an object"
	default:
		return "must be of type " + t.String()
	}
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
