package router

import (
	"fmt"
	"net/http"

	"employee-records/internal/handlers"
	"employee-records/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the collaborators the routes are wired to.
// Nil Metrics disables /metrics; nil Auth leaves the write route open.
type Deps struct {
	Employees  handlers.EmployeeRepository
	DB         handlers.Pinger
	Metrics    *middleware.HTTPMetrics
	Gatherer   prometheus.Gatherer
	Auth       *middleware.AuthMiddleware
	WriteRoles []string
}

func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(middleware.RequestIDs())
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Handler())
	}
	r.Use(gin.Logger(), gin.Recovery())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": fmt.Sprintf("Method %q not allowed.", c.Request.Method)})
	})

	eh := handlers.NewEmployeeHandler(deps.Employees)

	// health
	if deps.DB != nil {
		r.GET("/health", handlers.NewHealthHandler(deps.DB).Health)
	}
	if deps.Metrics != nil && deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	employees := r.Group("/employees")
	employees.GET("/", eh.ListEmployees)

	write := []gin.HandlerFunc{}
	if deps.Auth != nil {
		write = append(write, deps.Auth.Authenticate(), deps.Auth.RequireRole(deps.WriteRoles...))
	}
	employees.POST("/add/", append(write, eh.AddEmployee)...)

	return r
}
