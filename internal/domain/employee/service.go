package employee

import (
	"context"
	"log/slog"
	"strings"

	"empdir/internal/requestctx"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, payload CreatePayload) (Employee, error) {
	if err := payload.Validate(); err != nil {
		return Employee{}, err
	}
	payload.Skills = NormalizeSkills(payload.Skills)

	emp, err := s.store.Create(ctx, payload)
	if err != nil {
		return Employee{}, err
	}
	slog.InfoContext(ctx, "employee created", "employeeId", emp.EmployeeID, "by", requestctx.GetUsername(ctx))
	return emp, nil
}

func (s *Service) Get(ctx context.Context, employeeID string) (Employee, error) {
	return s.store.Get(ctx, employeeID)
}

func (s *Service) Update(ctx context.Context, employeeID string, payload UpdatePayload) (Employee, error) {
	if err := payload.Validate(); err != nil {
		return Employee{}, err
	}
	if payload.Skills.Present() {
		payload.Skills.Value = NormalizeSkills(payload.Skills.Value)
	}

	emp, err := s.store.Update(ctx, employeeID, payload)
	if err != nil {
		return Employee{}, err
	}
	if !payload.Empty() {
		slog.InfoContext(ctx, "employee updated", "employeeId", employeeID, "by", requestctx.GetUsername(ctx))
	}
	return emp, nil
}

func (s *Service) Delete(ctx context.Context, employeeID string) error {
	if err := s.store.Delete(ctx, employeeID); err != nil {
		return err
	}
	slog.InfoContext(ctx, "employee deleted", "employeeId", employeeID, "by", requestctx.GetUsername(ctx))
	return nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Employee, error) {
	if filter.Limit == 0 {
		filter.Limit = DefaultListLimit
	}
	if filter.Limit < 1 || filter.Limit > MaxListLimit || filter.Skip < 0 {
		return nil, ErrInvalidPagination
	}
	return s.store.List(ctx, filter)
}

func (s *Service) AverageSalaryByDepartment(ctx context.Context) ([]DepartmentSalary, error) {
	return s.store.AverageSalaryByDepartment(ctx)
}

func (s *Service) SearchBySkill(ctx context.Context, skill string, limit int) ([]RawDocument, error) {
	if strings.TrimSpace(skill) == "" {
		return nil, ErrInvalidSkill
	}
	if limit == 0 {
		limit = DefaultSearchLimit
	}
	if limit < 1 {
		return nil, ErrInvalidPagination
	}
	return s.store.SearchBySkill(ctx, skill, limit)
}
