package employeehandler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"empdir/internal/domain/employee"
	"empdir/internal/transport/http/api"
	"empdir/internal/transport/http/shared"
)

type Service interface {
	Create(ctx context.Context, payload employee.CreatePayload) (employee.Employee, error)
	Get(ctx context.Context, employeeID string) (employee.Employee, error)
	Update(ctx context.Context, employeeID string, payload employee.UpdatePayload) (employee.Employee, error)
	Delete(ctx context.Context, employeeID string) error
	List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, error)
	AverageSalaryByDepartment(ctx context.Context) ([]employee.DepartmentSalary, error)
	SearchBySkill(ctx context.Context, skill string, limit int) ([]employee.RawDocument, error)
}

type Handler struct {
	Service Service
	Now     func() time.Time
}

func NewHandler(service Service) *Handler {
	return &Handler{Service: service, Now: time.Now}
}

// RegisterRoutes mounts the employee routes. Mutations go through requireAuth.
// The literal /employees/employees/... paths are registered before /{employee_id}.
func (h *Handler) RegisterRoutes(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/employees/avg-salary", h.handleAverageSalary)
		r.Get("/employees/avg-salary/report", h.handleSalaryReport)
		r.Get("/employees/search", h.handleSearch)

		r.Get("/", h.handleList)
		r.With(requireAuth).Post("/", h.handleCreate)

		r.Get("/{employee_id}", h.handleGet)
		r.With(requireAuth).Put("/{employee_id}", h.handleUpdate)
		r.With(requireAuth).Delete("/{employee_id}", h.handleDelete)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload employee.CreatePayload
	if err := employee.DecodeJSON(r.Body, &payload); err != nil {
		h.fail(w, r, err)
		return
	}

	emp, err := h.Service.Create(r.Context(), payload)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Created(w, emp)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Service.Get(r.Context(), chi.URLParam(r, "employee_id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, emp)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload employee.UpdatePayload
	if err := employee.DecodeJSON(r.Body, &payload); err != nil {
		h.fail(w, r, err)
		return
	}

	emp, err := h.Service.Update(r.Context(), chi.URLParam(r, "employee_id"), payload)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, emp)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "employee_id")); err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, api.Message{Message: "Employee deleted successfully"})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	filter := employee.ListFilter{
		Department: r.URL.Query().Get("department"),
		Limit:      shared.QueryInt(r, v, "limit", employee.DefaultListLimit, 1, employee.MaxListLimit),
		Skip:       shared.QueryInt(r, v, "skip", 0, 0, 0),
	}
	if v.Reject(w) {
		return
	}

	employees, err := h.Service.List(r.Context(), filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, employees)
}

func (h *Handler) handleAverageSalary(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.AverageSalaryByDepartment(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, rows)
}

func (h *Handler) handleSalaryReport(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.AverageSalaryByDepartment(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := employee.RenderSalaryReport(&buf, rows, h.Now()); err != nil {
		api.InternalError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="avg-salary-report.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	skill := r.URL.Query().Get("skill")
	v.Required("skill", skill, "field required")
	limit := shared.QueryInt(r, v, "limit", employee.DefaultSearchLimit, 1, 0)
	if v.Reject(w) {
		return
	}

	docs, err := h.Service.SearchBySkill(r.Context(), skill, limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if len(docs) == 0 {
		api.Success(w, api.Message{Message: "No employees found with skill " + skill})
		return
	}
	api.Success(w, docs)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *employee.ValidationError
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &verr):
		shared.FailValidation(w, verr.Issues)
	case errors.As(err, &maxErr):
		api.Fail(w, http.StatusRequestEntityTooLarge, "Request body too large")
	case errors.Is(err, employee.ErrDuplicateEmployeeID):
		api.Fail(w, http.StatusBadRequest, "employee_id must be unique")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "Employee not found")
	case errors.Is(err, employee.ErrNoEmployees):
		api.Fail(w, http.StatusNotFound, "No employees found")
	case errors.Is(err, employee.ErrInvalidPagination):
		shared.FailValidation(w, []shared.ValidationIssue{{Field: "limit", Reason: "out of range"}})
	case errors.Is(err, employee.ErrInvalidSkill):
		shared.FailValidation(w, []shared.ValidationIssue{{Field: "skill", Reason: "field required"}})
	default:
		api.InternalError(w, r, err)
	}
}
