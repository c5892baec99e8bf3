package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without time of day or zone.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Employee is one stored row of the employees table.
type Employee struct {
	ID            int64  `json:"id"`
	EmployeeID    string `json:"employee_id"`
	FullName      string `json:"full_name"`
	DateOfBirth   Date   `json:"date_of_birth"`
	Address       string `json:"address"`
	ContactNumber string `json:"contact_number"`
	DateOfJoining Date   `json:"date_of_joining"`
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
}

// NewEmployee holds validated values for an insert. The id is assigned by storage.
type NewEmployee struct {
	EmployeeID    string
	FullName      string
	DateOfBirth   Date
	Address       string
	ContactNumber string
	DateOfJoining Date
	BankName      string
	AccountNumber string
}

// CreateEmployeeDTO is the add-record payload after type coercion.
// Dates stay strings here so format errors are reported per field.
type CreateEmployeeDTO struct {
	EmployeeID    string `json:"employee_id" validate:"required,max=50"`
	FullName      string `json:"full_name" validate:"required,max=100"`
	DateOfBirth   string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Address       string `json:"address" validate:"required"`
	ContactNumber string `json:"contact_number" validate:"required,max=20"`
	DateOfJoining string `json:"date_of_joining" validate:"required,datetime=2006-01-02"`
	BankName      string `json:"bank_name" validate:"required,max=100"`
	AccountNumber string `json:"account_number" validate:"required,max=50"`
}

// ToNewEmployee converts an already validated payload.
func (in CreateEmployeeDTO) ToNewEmployee() (NewEmployee, error) {
	dob, err := ParseDate(in.DateOfBirth)
	if err != nil {
		return NewEmployee{}, fmt.Errorf("date_of_birth: %w", err)
	}
	doj, err := ParseDate(in.DateOfJoining)
	if err != nil {
		return NewEmployee{}, fmt.Errorf("date_of_joining: %w", err)
	}
	return NewEmployee{
		EmployeeID:    in.EmployeeID,
		FullName:      in.FullName,
		DateOfBirth:   dob,
		Address:       in.Address,
		ContactNumber: in.ContactNumber,
		DateOfJoining: doj,
		BankName:      in.BankName,
		AccountNumber: in.AccountNumber,
	}, nil
}
