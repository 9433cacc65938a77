package employee

// Employee is the projection of a stored record returned to API consumers.
// Storage identifiers and the update-only email field are never part of it.
type Employee struct {
	EmployeeID  string   `json:"employee_id"`
	Name        string   `json:"name"`
	Department  string   `json:"department"`
	Salary      float64  `json:"salary"`
	JoiningDate Date     `json:"joining_date"`
	Skills      []string `json:"skills"`
}

type DepartmentSalary struct {
	Department string  `json:"department" bson:"department"`
	AvgSalary  float64 `json:"avg_salary" bson:"avg_salary"`
}

// RawDocument is a stored document as-is, with the storage id rendered as a string.
type RawDocument map[string]any

type ListFilter struct {
	Department string
	Limit      int
	Skip       int
}

const (
	DefaultListLimit   = 10
	MaxListLimit       = 100
	DefaultSearchLimit = 10
)
