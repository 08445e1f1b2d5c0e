package httpx

import (
	"log/slog"
	"net/http"

	"github.com/medtrack/medtrack-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth         *service.AuthService
	Users        *service.UserService
	Records      *service.RecordService
	ValueTypes   *service.ValueTypeService
	CookieDomain string
	Logger       *slog.Logger
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		Svc:          services.Auth,
		Users:        services.Users,
		CookieDomain: services.CookieDomain,
		Logger:       services.Logger,
	}
	recordHandlers := &RecordHandlers{Svc: services.Records}
	valueTypeHandlers := &ValueTypeHandlers{Svc: services.ValueTypes}

	requireAuth := RequireAuth(services.Auth)

	registerAuthRoutes(mux, authHandlers, requireAuth)
	registerRecordRoutes(mux, recordHandlers, requireAuth)
	registerValueTypeRoutes(mux, valueTypeHandlers, requireAuth)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return mux
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, requireAuth func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /api/auth/login", h.Login)
	mux.HandleFunc("GET /api/auth/callback", h.Callback)
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
	mux.HandleFunc("GET /api/auth/status", h.Status)
	mux.Handle("GET /api/auth/me", requireAuth(http.HandlerFunc(h.Me)))
	mux.Handle("PUT /api/auth/preferred-value-type", requireAuth(http.HandlerFunc(h.UpdatePreferredValueType)))
}

func registerRecordRoutes(mux *http.ServeMux, h *RecordHandlers, requireAuth func(http.Handler) http.Handler) {
	// Stats registered before the CRUD block so "stats" never parses as {id}.
	mux.Handle("GET /api/records/stats", requireAuth(http.HandlerFunc(h.Stats)))

	registerCRUD(mux, crudRoutes{
		Base:       "/api/records",
		Create:     h.Create,
		List:       h.List,
		GetByID:    h.GetByID,
		Update:     h.Update,
		Delete:     h.Delete,
		Middleware: requireAuth,
	})
}

func registerValueTypeRoutes(mux *http.ServeMux, h *ValueTypeHandlers, requireAuth func(http.Handler) http.Handler) {
	mux.Handle("GET /api/value-types", requireAuth(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/value-types/{id}", requireAuth(http.HandlerFunc(h.GetByID)))
}

// crudRoutes groups standard CRUD handlers for a resource base path.
type crudRoutes struct {
	Base       string
	Create     http.HandlerFunc
	List       http.HandlerFunc
	GetByID    http.HandlerFunc
	Update     http.HandlerFunc
	Delete     http.HandlerFunc
	Middleware func(http.Handler) http.Handler
}

func registerCRUD(mux *http.ServeMux, cfg crudRoutes) {
	if cfg.Base == "" {
		panic("registerCRUD: Base must not be empty") //nolint:forbidigo // Fail fast during server setup.
	}
	if cfg.Create == nil ||
		cfg.List == nil ||
		cfg.GetByID == nil ||
		cfg.Update == nil ||
		cfg.Delete == nil {
		panic("registerCRUD: nil handler for base " + cfg.Base) //nolint:forbidigo // Fail fast during server setup.
	}

	wrap := func(h http.HandlerFunc) http.Handler {
		if cfg.Middleware != nil {
			return cfg.Middleware(h)
		}
		return h
	}
	mux.Handle("POST "+cfg.Base, wrap(cfg.Create))
	mux.Handle("GET "+cfg.Base, wrap(cfg.List))
	mux.Handle("GET "+cfg.Base+"/{id}", wrap(cfg.GetByID))
	mux.Handle("PUT "+cfg.Base+"/{id}", wrap(cfg.Update))
	mux.Handle("DELETE "+cfg.Base+"/{id}", wrap(cfg.Delete))
}
