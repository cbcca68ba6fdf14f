package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trackware/gatekeep/internal/gatekeep/service"
	"github.com/trackware/gatekeep/internal/gatekeep/store"
	"github.com/trackware/gatekeep/pkg/httpx"
	"github.com/trackware/gatekeep/pkg/jwtx"
	"github.com/trackware/gatekeep/pkg/slogx"

	_ "github.com/trackware/gatekeep/api/gatekeep" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     *jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store    store.Store
	registry *prometheus.Registry

	ResolverService    *service.ResolverService
	ClientService      *service.ClientService
	DomainIndexService *service.DomainIndexService
}

func NewRouter(
	verifier *jwtx.Verifier,
	buildVersion string,
	st store.Store,
	registry *prometheus.Registry,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		registry:     registry,
		logger:       logger,
	}

	// Default middleware chain applied to every route.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerResolve()
	r.registerClients()
	r.registerDomains()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Gatekeep Domain Authorization API
//	@version		0.1.0
//	@description	Centralized configuration and access control for tracking agents.
//	@description
//	@description				Agents resolve a hostname to a privacy/deployment policy on every
//	@description				tracking decision; operators manage clients and their authorized
//	@description				domains through the admin endpoints.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Admin JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerResolve() {
	h := &ResolveHandler{ResolverService: r.ResolverService}

	// Public endpoint on the hot path: every tracking event gates on it.
	r.Mux.Handle("GET /v1/resolve/{hostname}",
		httpx.Chain(http.HandlerFunc(h.HandleResolve),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerClients() {
	h := &ClientsHandler{ClientService: r.ClientService}

	securedCreate := httpx.Chain(http.HandlerFunc(h.HandleCreate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("admin:write"),
		httpx.RateLimitBySubject(httpx.ModerateLimit),
	)

	securedList := httpx.Chain(http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("admin:read"),
		httpx.RateLimitBySubject(httpx.ModerateLimit),
	)

	securedGet := httpx.Chain(http.HandlerFunc(h.HandleGet),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("admin:read"),
		httpx.RateLimitBySubject(httpx.ModerateLimit),
	)

	securedUpdate := httpx.Chain(http.HandlerFunc(h.HandleUpdate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("admin:write"),
		httpx.RateLimitBySubject(httpx.ModerateLimit),
	)

	securedDelete := httpx.Chain(http.HandlerFunc(h.HandleDelete),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("admin:write"),
		httpx.RateLimitBySubject(httpx.ModerateLimit),
	)

	r.Mux.Handle("POST /v1/clients", securedCreate)
	r.Mux.Handle("GET /v1/clients", securedList)
	r.Mux.Handle("GET /v1/clients/{id}", securedGet)
	r.Mux.Handle("PUT /v1/clients/{id}", securedUpdate)
	r.Mux.Handle("DELETE /v1/clients/{id}", securedDelete)
}

func (r *Router) registerDomains() {
	h := &DomainsHandler{DomainIndexService: r.DomainIndexService}

	securedAdd := httpx.Chain(http.HandlerFunc(h.HandleAdd),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("admin:write"),
		httpx.RateLimitBySubject(httpx.ModerateLimit),
	)

	securedList := httpx.Chain(http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("admin:read"),
		httpx.RateLimitBySubject(httpx.ModerateLimit),
	)

	securedRemove := httpx.Chain(http.HandlerFunc(h.HandleRemove),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("admin:write"),
		httpx.RateLimitBySubject(httpx.ModerateLimit),
	)

	r.Mux.Handle("POST /v1/clients/{id}/domains", securedAdd)
	r.Mux.Handle("GET /v1/clients/{id}/domains", securedList)
	r.Mux.Handle("DELETE /v1/clients/{id}/domains/{domain}", securedRemove)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /metrics",
		promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}),
	)
}
