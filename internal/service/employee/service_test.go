package employee

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facekeep/timekeep-backend-go/internal/domain/employee"
	"github.com/facekeep/timekeep-backend-go/internal/pkg/validator"
)

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok || emp.DeletedAt != nil {
		return employee.Employee{}, pgx.ErrNoRows
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.Email == email && emp.DeletedAt == nil {
			return emp, nil
		}
	}
	return employee.Employee{}, pgx.ErrNoRows
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	now := time.Now()
	newEmployee.CreatedAt = now
	newEmployee.UpdatedAt = now
	f.employees[newEmployee.ID] = newEmployee
	return newEmployee, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, emp employee.Employee) error {
	if _, ok := f.employees[emp.ID]; !ok {
		return pgx.ErrNoRows
	}
	emp.UpdatedAt = time.Now()
	f.employees[emp.ID] = emp
	return nil
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error {
	emp, ok := f.employees[id]
	if !ok || emp.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	now := time.Now()
	emp.DeletedAt = &now
	f.employees[id] = emp
	return nil
}

func (f *fakeEmployeeRepo) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	var result []employee.Employee
	for _, emp := range f.employees {
		if emp.DeletedAt != nil {
			continue
		}
		if filter.Role != nil && *filter.Role != "" && string(emp.Role) != *filter.Role {
			continue
		}
		if filter.Active != nil && emp.Active != *filter.Active {
			continue
		}
		if filter.Search != nil && *filter.Search != "" {
			needle := strings.ToLower(*filter.Search)
			if !strings.Contains(strings.ToLower(emp.FullName), needle) &&
				!strings.Contains(strings.ToLower(emp.Email), needle) {
				continue
			}
		}
		result = append(result, emp)
	}
	return result, nil
}

func (f *fakeEmployeeRepo) CountActive(ctx context.Context) (int64, error) {
	var n int64
	for _, emp := range f.employees {
		if emp.Active && emp.DeletedAt == nil {
			n++
		}
	}
	return n, nil
}

func TestCreateEmployee(t *testing.T) {
	repo := newFakeEmployeeRepo()
	svc := NewEmployeeService(nil, repo)

	resp, err := svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{
		FullName: "Ana Silva",
		Email:    "Ana.Silva@Example.COM",
		Position: "Backend Engineer",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Ana Silva", resp.FullName)
	assert.Equal(t, "ana.silva@example.com", resp.Email, "email should be stored lowercased")
	assert.Equal(t, "employee", resp.Role, "role defaults to employee")
	assert.True(t, resp.Active)
}

func TestCreateEmployeeDuplicateEmail(t *testing.T) {
	repo := newFakeEmployeeRepo()
	svc := NewEmployeeService(nil, repo)

	_, err := svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{
		FullName: "Ana Silva",
		Email:    "ana@example.com",
		Position: "Backend Engineer",
	})
	require.NoError(t, err)

	_, err = svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{
		FullName: "Another Ana",
		Email:    "ANA@example.com",
		Position: "Designer",
	})
	assert.ErrorIs(t, err, employee.ErrEmailExists)
}

func TestCreateEmployeeValidation(t *testing.T) {
	svc := NewEmployeeService(nil, newFakeEmployeeRepo())

	_, err := svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{
		Email: "not-an-email",
		Role:  "superadmin",
	})
	require.Error(t, err)

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)

	fields := make([]string, 0, len(validationErrs))
	for _, ve := range validationErrs {
		fields = append(fields, ve.Field)
	}
	assert.Contains(t, fields, "full_name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "position")
	assert.Contains(t, fields, "role")
}

func TestUpdateEmployeePartial(t *testing.T) {
	repo := newFakeEmployeeRepo()
	svc := NewEmployeeService(nil, repo)

	created, err := svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{
		FullName: "Ana Silva",
		Email:    "ana@example.com",
		Position: "Backend Engineer",
	})
	require.NoError(t, err)

	newRole := "manager"
	inactive := false
	updated, err := svc.UpdateEmployee(context.Background(), employee.UpdateEmployeeRequest{
		ID:     created.ID,
		Role:   &newRole,
		Active: &inactive,
	})
	require.NoError(t, err)

	assert.Equal(t, "manager", updated.Role)
	assert.False(t, updated.Active)
	assert.Equal(t, "Ana Silva", updated.FullName, "untouched fields keep their values")
	assert.Equal(t, "ana@example.com", updated.Email)
}

func TestUpdateEmployeeNotFound(t *testing.T) {
	svc := NewEmployeeService(nil, newFakeEmployeeRepo())

	name := "Ghost"
	_, err := svc.UpdateEmployee(context.Background(), employee.UpdateEmployeeRequest{
		ID:       "0d4e9b47-3c56-4cf8-8a8e-5a1f6c2b9d31",
		FullName: &name,
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestDeleteEmployeeHidesFromList(t *testing.T) {
	repo := newFakeEmployeeRepo()
	svc := NewEmployeeService(nil, repo)

	created, err := svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{
		FullName: "Ana Silva",
		Email:    "ana@example.com",
		Position: "Backend Engineer",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEmployee(context.Background(), created.ID))

	_, err = svc.GetEmployee(context.Background(), created.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	list, err := svc.ListEmployees(context.Background(), employee.EmployeeFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListEmployeesFilter(t *testing.T) {
	repo := newFakeEmployeeRepo()
	svc := NewEmployeeService(nil, repo)

	seed := []employee.CreateEmployeeRequest{
		{FullName: "Ana Silva", Email: "ana@example.com", Position: "Backend Engineer", Role: "manager"},
		{FullName: "Budi Santoso", Email: "budi@example.com", Position: "Designer"},
		{FullName: "Citra Dewi", Email: "citra@example.com", Position: "HR Generalist", Role: "hr"},
	}
	for _, req := range seed {
		_, err := svc.CreateEmployee(context.Background(), req)
		require.NoError(t, err)
	}

	role := "manager"
	managers, err := svc.ListEmployees(context.Background(), employee.EmployeeFilter{Role: &role})
	require.NoError(t, err)
	require.Len(t, managers, 1)
	assert.Equal(t, "Ana Silva", managers[0].FullName)

	search := "budi"
	found, err := svc.ListEmployees(context.Background(), employee.EmployeeFilter{Search: &search})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "budi@example.com", found[0].Email)

	badRole := "superadmin"
	_, err = svc.ListEmployees(context.Background(), employee.EmployeeFilter{Role: &badRole})
	assert.Error(t, err)
}
