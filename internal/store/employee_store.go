package store

import (
	"context"
	"fmt"
	"time"

	"employee-records/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EmployeeStore persists employees in the employees table.
type EmployeeStore struct {
	pool *pgxpool.Pool
}

func NewEmployeeStore(pool *pgxpool.Pool) *EmployeeStore {
	return &EmployeeStore{pool: pool}
}

const employeeColumns = `id, employee_id, full_name, date_of_birth, address,
	contact_number, date_of_joining, bank_name, account_number`

// Create inserts one row and returns it as stored.
func (s *EmployeeStore) Create(ctx context.Context, in models.NewEmployee) (models.Employee, error) {
	rows, err := s.pool.Query(ctx, `
		INSERT INTO employees (employee_id, full_name, date_of_birth, address,
		                       contact_number, date_of_joining, bank_name, account_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+employeeColumns,
		in.EmployeeID, in.FullName, in.DateOfBirth.Time, in.Address,
		in.ContactNumber, in.DateOfJoining.Time, in.BankName, in.AccountNumber,
	)
	if err != nil {
		return models.Employee{}, fmt.Errorf("insert employee: %w", err)
	}
	emp, err := pgx.CollectOneRow(rows, scanEmployee)
	if err != nil {
		return models.Employee{}, fmt.Errorf("insert employee: %w", err)
	}
	return emp, nil
}

// List returns every stored employee in insertion order.
func (s *EmployeeStore) List(ctx context.Context) ([]models.Employee, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	list, err := pgx.CollectRows(rows, scanEmployee)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	if list == nil {
		list = []models.Employee{}
	}
	return list, nil
}

// Ping reports whether the database answers.
func (s *EmployeeStore) Ping(ctx context.Context) error {
	var one int
	return s.pool.QueryRow(ctx, "select 1").Scan(&one)
}

func scanEmployee(row pgx.CollectableRow) (models.Employee, error) {
	var (
		e        models.Employee
		dob, doj time.Time
	)
	err := row.Scan(&e.ID, &e.EmployeeID, &e.FullName, &dob, &e.Address,
		&e.ContactNumber, &doj, &e.BankName, &e.AccountNumber)
	if err != nil {
		return models.Employee{}, err
	}
	e.DateOfBirth = models.Date{Time: dob}
	e.DateOfJoining = models.Date{Time: doj}
	return e, nil
}
