package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"employee-records/internal/middleware"
	"employee-records/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubRepo struct {
	rows []models.Employee
}

func (s *stubRepo) Create(_ context.Context, in models.NewEmployee) (models.Employee, error) {
	e := models.Employee{
		ID:            int64(len(s.rows) + 1),
		EmployeeID:    in.EmployeeID,
		FullName:      in.FullName,
		DateOfBirth:   in.DateOfBirth,
		Address:       in.Address,
		ContactNumber: in.ContactNumber,
		DateOfJoining: in.DateOfJoining,
		BankName:      in.BankName,
		AccountNumber: in.AccountNumber,
	}
	s.rows = append(s.rows, e)
	return e, nil
}

func (s *stubRepo) List(context.Context) ([]models.Employee, error) { return s.rows, nil }

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

const payload = `{"employee_id":"E1","full_name":"Ada","date_of_birth":"1990-01-02","address":"Street 1",
"contact_number":"555","date_of_joining":"2020-05-06","bank_name":"Bank","account_number":"42"}`

func serve(r http.Handler, method, path, body string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutes_CreateThenList(t *testing.T) {
	r := NewRouter(Deps{Employees: &stubRepo{}})

	w := serve(r, http.MethodPost, "/employees/add/", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = serve(r, http.MethodGet, "/employees/", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "E1", list[0]["employee_id"])
	assert.Equal(t, "2020-05-06", list[0]["date_of_joining"])
}

func TestRoutes_TrailingSlashRedirect(t *testing.T) {
	r := NewRouter(Deps{Employees: &stubRepo{}})

	w := serve(r, http.MethodGet, "/employees", "")
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/employees/", w.Header().Get("Location"))

	w = serve(r, http.MethodPost, "/employees/add", payload)
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/employees/add/", w.Header().Get("Location"))
}

func TestRoutes_NotFoundAndMethodNotAllowed(t *testing.T) {
	r := NewRouter(Deps{Employees: &stubRepo{}})

	w := serve(r, http.MethodGet, "/nothing-here", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Not found."}`, w.Body.String())

	w = serve(r, http.MethodGet, "/employees/add/", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.JSONEq(t, `{"detail":"Method \"GET\" not allowed."}`, w.Body.String())

	w = serve(r, http.MethodDelete, "/employees/", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRoutes_Health(t *testing.T) {
	ok := NewRouter(Deps{Employees: &stubRepo{}, DB: stubPinger{}})
	w := serve(ok, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	down := NewRouter(Deps{Employees: &stubRepo{}, DB: stubPinger{err: errors.New("down")}})
	w = serve(down, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRoutes_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRouter(Deps{
		Employees: &stubRepo{},
		Metrics:   middleware.NewHTTPMetrics(reg),
		Gatherer:  reg,
	})

	require.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/employees/", "").Code)

	w := serve(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `employee_records_http_requests_total{code="200",method="GET",route="/employees/"} 1`)
}

func TestRoutes_MetricsDisabled(t *testing.T) {
	r := NewRouter(Deps{Employees: &stubRepo{}})
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/metrics", "").Code)
}

func TestRoutes_AuthGuardsWritesOnly(t *testing.T) {
	const secret = "router-secret"
	r := NewRouter(Deps{
		Employees:  &stubRepo{},
		Auth:       middleware.NewAuthMiddleware(secret),
		WriteRoles: []string{models.RoleHR},
	})

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/employees/", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodPost, "/employees/add/", payload).Code)

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, models.JWTClaims{
		Role: models.RoleHR,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	w := serve(r, http.MethodPost, "/employees/add/", payload, "Authorization", "Bearer "+tok)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestRoutes_ValidationErrorShape(t *testing.T) {
	r := NewRouter(Deps{Employees: &stubRepo{}})

	var body bytes.Buffer
	require.NoError(t, json.NewEncoder(&body).Encode(map[string]string{"employee_id": "E1"}))
	w := serve(r, http.MethodPost, "/employees/add/", body.String())
	require.Equal(t, http.StatusBadRequest, w.Code)

	var errs map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errs))
	assert.NotContains(t, errs, "employee_id")
	assert.Equal(t, []string{"This field is required."}, errs["full_name"])
}
