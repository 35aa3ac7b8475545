package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/neurohealth/internal/clinic/service"
	"github.com/aussiebroadwan/neurohealth/internal/clinic/store"
	"github.com/aussiebroadwan/neurohealth/pkg/httpx"
	"github.com/aussiebroadwan/neurohealth/pkg/slogx"

	_ "github.com/aussiebroadwan/neurohealth/api/clinic" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	limits       httpx.RateLimits

	store              store.Store
	UserService        *service.UserService
	AppointmentService *service.AppointmentService
}

func NewRouter(
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	limits httpx.RateLimits,
	corsOrigins []string,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		limits:       limits,
	}

	// Recover sits inside the logger so panics are logged with the request id
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(corsOrigins),
		httpx.Recover(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerUsers()
	r.registerAppointments()
	r.registerSystem()

	r.Mux.Handle("GET /swagger/", httpx.Chain(httpSwagger.Handler(),
		httpx.RateLimitByIP(r.limits.Public),
	))
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			NeuroHealth Clinic API
//	@version		0.1.0
//	@description	Appointment booking for the NeuroHealth clinic: patient and specialist accounts, appointments, and email notifications.
//	@description
//	@description	Business rule violations are answered with 400 and a plain text message.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/neurohealth
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	// POST /usuarios/registro - strict by IP (account creation)
	r.Mux.Handle("POST /usuarios/registro",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(r.limits.Strict),
		),
	)

	// POST /usuarios/login - strict by IP + email to slow down guessing
	r.Mux.Handle("POST /usuarios/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndFormField(r.limits.Strict, "email"),
		),
	)

	r.Mux.Handle("GET /usuarios",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(r.limits.Lenient),
		),
	)
	r.Mux.Handle("GET /usuarios/especialistas",
		httpx.Chain(http.HandlerFunc(h.HandleSpecialists),
			httpx.RateLimitByIP(r.limits.Lenient),
		),
	)
	r.Mux.Handle("GET /usuarios/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(r.limits.Lenient),
		),
	)
}

func (r *Router) registerAppointments() {
	h := &AppointmentsHandler{AppointmentService: r.AppointmentService}

	// POST /citas - moderate by IP (each booking sends mail)
	r.Mux.Handle("POST /citas",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.RateLimitByIP(r.limits.Moderate),
		),
	)

	r.Mux.Handle("GET /citas",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(r.limits.Lenient),
		),
	)
	r.Mux.Handle("GET /citas/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(r.limits.Lenient),
		),
	)
	r.Mux.Handle("GET /citas/usuario/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleListByUser),
			httpx.RateLimitByIP(r.limits.Lenient),
		),
	)
	r.Mux.Handle("GET /citas/especialista/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleListBySpecialist),
			httpx.RateLimitByIP(r.limits.Lenient),
		),
	)
}

func (r *Router) registerSystem() {
	h := &HealthHandler{Started: r.startTime, Version: r.buildVersion, Store: r.store}

	// Health check endpoints - public limits (probes poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(http.HandlerFunc(h.HandleLivez),
			httpx.RateLimitByIP(r.limits.Public),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(http.HandlerFunc(h.HandleReadyz),
			httpx.RateLimitByIP(r.limits.Public),
		),
	)
}
