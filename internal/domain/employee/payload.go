package employee

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var errNonZeroTime = errors.New("date must not carry a time of day")

var (
	dateType   = reflect.TypeOf(Date{})
	skillsType = reflect.TypeOf(Skills{})
)

// Date is a calendar date with no time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate accepts YYYY-MM-DD, or RFC3339 when the time of day is exactly midnight.
func ParseDate(value string) (Date, error) {
	value = strings.TrimSpace(value)
	if parsed, err := time.Parse(dateLayout, value); err == nil {
		return DateOf(parsed), nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return Date{}, err
	}
	if h, m, sec := parsed.Clock(); h != 0 || m != 0 || sec != 0 || parsed.Nanosecond() != 0 {
		return Date{}, errNonZeroTime
	}
	return DateOf(parsed), nil
}

// Midnight is the stored form of the date.
func (d Date) Midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return d.Midnight().Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return &json.UnmarshalTypeError{Value: jsonKind(data), Type: dateType}
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return &json.UnmarshalTypeError{Value: "string " + raw, Type: dateType}
	}
	*d = parsed
	return nil
}

// Skills accepts either a JSON list of strings or one comma-separated string.
type Skills []string

func (s *Skills) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = nil
		return nil
	}
	var joined string
	if err := json.Unmarshal(data, &joined); err == nil {
		*s = NormalizeSkills(strings.Split(joined, ","))
		return nil
	}
	var list []*string
	if err := json.Unmarshal(data, &list); err != nil {
		return &json.UnmarshalTypeError{Value: jsonKind(data), Type: skillsType}
	}
	values := make([]string, 0, len(list))
	for _, value := range list {
		if value == nil {
			return &json.UnmarshalTypeError{Value: "null", Type: skillsType}
		}
		values = append(values, *value)
	}
	*s = NormalizeSkills(values)
	return nil
}

// NormalizeSkills trims every entry and drops the empty ones. The result is never nil.
func NormalizeSkills(values []string) Skills {
	out := make(Skills, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		out = append(out, value)
	}
	return out
}

// Optional tracks whether a field was present in the request body.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

func Some[T any](value T) Optional[T] {
	return Optional[T]{Value: value, Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// Present reports a field that was supplied with a non-null value.
func (o Optional[T]) Present() bool {
	return o.Set && !o.Null
}

type CreatePayload struct {
	EmployeeID  string   `json:"employee_id" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Department  string   `json:"department" validate:"required"`
	Salary      *float64 `json:"salary" validate:"required"`
	JoiningDate *Date    `json:"joining_date" validate:"required"`
	Skills      Skills   `json:"skills" validate:"required"`
}

type UpdatePayload struct {
	Name        Optional[string]  `json:"name"`
	Email       Optional[string]  `json:"email"`
	Department  Optional[string]  `json:"department"`
	Salary      Optional[float64] `json:"salary"`
	JoiningDate Optional[Date]    `json:"joining_date"`
	Skills      Optional[Skills]  `json:"skills"`
}

// Empty reports an update that supplies no field at all.
func (p UpdatePayload) Empty() bool {
	return !p.Name.Set && !p.Email.Set && !p.Department.Set && !p.Salary.Set && !p.JoiningDate.Set && !p.Skills.Set
}

func jsonKind(data []byte) string {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return "empty"
	}
	switch trimmed[0] {
	case '"':
		return "string"
	case '[':
		return "array"
	case '{':
		return "object"
	case 't', 'f':
		return "bool"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
