package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/keyhold/keyhold/internal/tenancy/service"
	"github.com/keyhold/keyhold/internal/tenancy/store"
	"github.com/keyhold/keyhold/pkg/httpx"
	"github.com/keyhold/keyhold/pkg/jwtx"
	"github.com/keyhold/keyhold/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store             store.Store
	AuthService       *service.AuthService
	PropertyService   *service.PropertyService
	InvitationService *service.InvitationService
	MembershipService *service.MembershipService
	DocumentService   *service.DocumentService
	AdminService      *service.AdminService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerProperties()
	r.registerInvitations()
	r.registerTenants()
	r.registerDocuments()
	r.registerAdmin()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps a handler with session verification and a per-user rate
// limit.
func (r *Router) secured(h http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(limit),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// Credential endpoints get the strict IP limit to slow brute force.
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /v1/me", r.secured(h.HandleMe, httpx.LenientLimit))
}

func (r *Router) registerProperties() {
	h := &PropertiesHandler{PropertyService: r.PropertyService}

	r.Mux.Handle("POST /v1/properties", r.secured(h.HandleCreate, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/properties", r.secured(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("GET /v1/properties/{id}", r.secured(h.HandleGet, httpx.LenientLimit))
	r.Mux.Handle("PUT /v1/properties/{id}", r.secured(h.HandleUpdate, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /v1/properties/{id}", r.secured(h.HandleDelete, httpx.ModerateLimit))
}

func (r *Router) registerInvitations() {
	owner := &InvitationsHandler{InvitationService: r.InvitationService}
	public := &InvitesHandler{InvitationService: r.InvitationService}

	r.Mux.Handle("POST /v1/properties/{id}/invitations", r.secured(owner.HandleCreate, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/properties/{id}/invitations", r.secured(owner.HandleList, httpx.LenientLimit))
	r.Mux.Handle("DELETE /v1/invitations/{id}", r.secured(owner.HandleRevoke, httpx.ModerateLimit))

	// Public token endpoints: possession of the token is the credential, so
	// these are rate limited strictly by IP to slow token guessing.
	r.Mux.Handle("GET /v1/invites/{token}",
		httpx.Chain(http.HandlerFunc(public.HandleGet),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/invites/{token}/accept",
		httpx.Chain(http.HandlerFunc(public.HandleAccept),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerTenants() {
	h := &TenantsHandler{MembershipService: r.MembershipService}

	r.Mux.Handle("GET /v1/properties/{id}/tenants", r.secured(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("POST /v1/properties/{id}/tenants", r.secured(h.HandleAssign, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /v1/properties/{id}/tenants/{userID}", r.secured(h.HandleRemove, httpx.ModerateLimit))
}

func (r *Router) registerDocuments() {
	h := &DocumentsHandler{DocumentService: r.DocumentService}

	r.Mux.Handle("POST /v1/properties/{id}/documents", r.secured(h.HandleAdd, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/properties/{id}/documents", r.secured(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("DELETE /v1/documents/{id}", r.secured(h.HandleDelete, httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/documents/{id}/share", r.secured(h.HandleShare, httpx.ModerateLimit))
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{AdminService: r.AdminService}

	r.Mux.Handle("GET /v1/admin/users", r.secured(h.HandleListUsers, httpx.ModerateLimit))
	r.Mux.Handle("PUT /v1/admin/users/{id}/role", r.secured(h.HandleChangeRole, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /v1/admin/users/{id}", r.secured(h.HandleDeleteUser, httpx.ModerateLimit))
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
}
