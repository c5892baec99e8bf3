package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"employee-records/internal/middleware"
	"employee-records/internal/models"

	"github.com/gin-gonic/gin"
)

// EmployeeRepository is the storage the employee endpoints need.
type EmployeeRepository interface {
	Create(ctx context.Context, in models.NewEmployee) (models.Employee, error)
	List(ctx context.Context) ([]models.Employee, error)
}

type EmployeeHandler struct {
	repo EmployeeRepository
}

func NewEmployeeHandler(repo EmployeeRepository) *EmployeeHandler {
	return &EmployeeHandler{repo: repo}
}

var serverErrorBody = gin.H{"detail": "A server error occurred."}

func serverError(c *gin.Context, op string, err error) {
	log.Printf("[employees] %s: request_id=%s err=%v", op, middleware.RequestID(c), err)
	c.JSON(http.StatusInternalServerError, serverErrorBody)
}

// POST /employees/add/
func (h *EmployeeHandler) AddEmployee(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "could not read request body"})
		return
	}

	in, fieldErrs, err := decodeEmployee(raw)
	if err != nil {
		var perr *payloadError
		if errors.As(err, &perr) {
			c.JSON(http.StatusBadRequest, perr.body)
			return
		}
		serverError(c, "validate", err)
		return
	}
	if len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, fieldErrs)
		return
	}

	// the validator already checked the date layout, so a failure here is ours
	rec, err := in.ToNewEmployee()
	if err != nil {
		serverError(c, "convert", err)
		return
	}

	emp, err := h.repo.Create(c.Request.Context(), rec)
	if err != nil {
		serverError(c, "create", err)
		return
	}
	c.JSON(http.StatusCreated, emp)
}

// GET /employees/
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		serverError(c, "list", err)
		return
	}
	if list == nil {
		list = []models.Employee{}
	}
	c.JSON(http.StatusOK, list)
}
