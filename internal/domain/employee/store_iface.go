package employee

import "context"

type StoreAPI interface {
	Create(ctx context.Context, payload CreatePayload) (Employee, error)
	Get(ctx context.Context, employeeID string) (Employee, error)
	Update(ctx context.Context, employeeID string, payload UpdatePayload) (Employee, error)
	Delete(ctx context.Context, employeeID string) error
	List(ctx context.Context, filter ListFilter) ([]Employee, error)
	AverageSalaryByDepartment(ctx context.Context) ([]DepartmentSalary, error)
	SearchBySkill(ctx context.Context, skill string, limit int) ([]RawDocument, error)
}
