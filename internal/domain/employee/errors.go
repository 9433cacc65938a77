package employee

import "errors"

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrNoEmployees         = errors.New("no employees found")
	ErrDuplicateEmployeeID = errors.New("employee_id must be unique")
	ErrInvalidPagination   = errors.New("invalid pagination")
	ErrInvalidSkill        = errors.New("skill is required")
)
