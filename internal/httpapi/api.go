// Package httpapi is the HTTP surface of the Kadrio API. Every response
// that can carry employee data passes through the sensitive-data
// interceptor before serialization.
package httpapi

import (
	"net/http"

	"kadrio.org/internal/auth"
	"kadrio.org/internal/employee"
	"kadrio.org/internal/obs"
	"kadrio.org/internal/sensitive"
)

// Config carries the wiring for the HTTP layer.
type Config struct {
	ReadyProbe ReadyProbe
	Version    string
	Auth       *auth.Service
	Employees  *employee.Service

	// Rate limiting per client IP; zero values disable the limiter.
	RateBurst     int
	RatePerSecond int
}

// API is the HTTP layer.
type API struct {
	mux         *http.ServeMux
	readyProbe  ReadyProbe
	version     string
	auth        *auth.Service
	employees   *employee.Service
	interceptor *sensitive.Interceptor

	rateBurst     int
	ratePerSecond int
}

func New(cfg Config) *API {
	a := &API{
		mux:        http.NewServeMux(),
		readyProbe: cfg.ReadyProbe,
		version:    cfg.Version,
		auth:       cfg.Auth,
		employees:  cfg.Employees,
		interceptor: sensitive.NewInterceptor(
			"/healthz",
			"/readyz",
			"/v1/info",
			"/v1/auth/token",
		),
		rateBurst:     cfg.RateBurst,
		ratePerSecond: cfg.RatePerSecond,
	}

	// health/ready/info
	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/readyz", a.Ready)
	a.mux.HandleFunc("/v1/info", a.Info)

	// Prometheus metrics
	a.mux.Handle("/metrics", obs.Handler())

	// authentication
	a.mux.HandleFunc("/v1/auth/token", a.handleAuthToken)

	// employees
	a.mux.HandleFunc("/v1/employees", a.handleEmployeesCollection)
	a.mux.HandleFunc("/v1/employees/", a.handleEmployeeResource)

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return a
}

// Handler returns the fully wrapped http.Handler for the server.
func (a *API) Handler() http.Handler {
	var h http.Handler = a.mux
	h = a.withAuth(h)
	h = a.withRequestID(h)
	h = MaxBodyBytes(h, 1<<20)
	if a.rateBurst > 0 && a.ratePerSecond > 0 {
		h = RateLimit(h, a.rateBurst, a.ratePerSecond)
	}
	h = CORS(h)
	h = SecurityHeaders(h)
	return obs.Instrument(h)
}
