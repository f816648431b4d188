package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/lnm-board/server/internal/api/handlers"
	"github.com/lnm-board/server/internal/api/middleware"
	"github.com/lnm-board/server/internal/auth"
	"github.com/lnm-board/server/internal/config"
	"github.com/lnm-board/server/internal/domain/admins"
	"github.com/lnm-board/server/internal/domain/events"
	"github.com/lnm-board/server/internal/domain/notices"
	"github.com/lnm-board/server/internal/images"
	"github.com/lnm-board/server/internal/metrics"
)

// Deps carries everything the router needs. The caller owns the pool
// and repositories so the same instances back the job workers.
type Deps struct {
	Config     config.Config
	Logger     zerolog.Logger
	Pool       *pgxpool.Pool
	Tokens     *auth.JWTManager
	Admins     *admins.Service
	AdminsRepo admins.Repository
	Events     *events.Service
	Notices    *notices.Service
	Images     *images.Client
}

func NewRouter(deps Deps) http.Handler {
	adminsHandler := handlers.NewAdminsHandler(deps.Admins, deps.Tokens)
	accountHandler := handlers.NewAccountHandler(deps.Admins)
	eventsHandler := handlers.NewEventsHandler(deps.Events)
	noticesHandler := handlers.NewNoticesHandler(deps.Notices)
	uploadsHandler := handlers.NewUploadsHandler(deps.Images)

	authenticate := middleware.Authenticate(deps.Tokens, deps.AdminsRepo)
	publisherOnly := middleware.RequireRole(auth.RoleAdmin, auth.RoleSuperAdmin)
	superOnly := middleware.RequireRole(auth.RoleSuperAdmin)

	publisher := func(h http.HandlerFunc) http.Handler {
		return authenticate(publisherOnly(h))
	}
	super := func(h http.HandlerFunc) http.Handler {
		return authenticate(superOnly(h))
	}

	mux := http.NewServeMux()
	mux.Handle("/healthz", handlers.Healthz())
	mux.Handle("/readyz", handlers.Readyz(deps.Pool))
	mux.Handle("/metrics", metrics.Handler())

	mux.Handle("/api/super-admin/login", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(adminsHandler.Login),
	}))
	mux.Handle("/api/super-admin/register", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(adminsHandler.Register),
	}))
	mux.Handle("/api/super-admin/admin-requests", methodMux(map[string]http.Handler{
		http.MethodGet: super(adminsHandler.ListRequests),
	}))
	mux.Handle("/api/super-admin/approve/{id}", methodMux(map[string]http.Handler{
		http.MethodPost: super(adminsHandler.Approve),
	}))
	mux.Handle("/api/super-admin/reject/{id}", methodMux(map[string]http.Handler{
		http.MethodPost: super(adminsHandler.Reject),
	}))
	mux.Handle("/api/super-admin/admins", methodMux(map[string]http.Handler{
		http.MethodGet: super(adminsHandler.ListAdmins),
	}))
	mux.Handle("/api/super-admin/admin/{id}", methodMux(map[string]http.Handler{
		http.MethodDelete: super(adminsHandler.Delete),
	}))
	mux.Handle("/api/super-admin/create-admin", methodMux(map[string]http.Handler{
		http.MethodPost: super(adminsHandler.CreateAdmin),
	}))

	mux.Handle("/api/account/change-password", methodMux(map[string]http.Handler{
		http.MethodPost: publisher(accountHandler.ChangePassword),
	}))

	mux.Handle("/api/events", methodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(eventsHandler.List),
		http.MethodPost: publisher(eventsHandler.Create),
	}))
	mux.Handle("/api/events/my-events", methodMux(map[string]http.Handler{
		http.MethodGet: publisher(eventsHandler.ListMine),
	}))
	mux.Handle("/api/events/{id}", methodMux(map[string]http.Handler{
		http.MethodPut:    publisher(eventsHandler.Update),
		http.MethodDelete: publisher(eventsHandler.Delete),
	}))
	mux.Handle("/api/events/{id}/comment", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(eventsHandler.Comment),
	}))

	mux.Handle("/api/notices", methodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(noticesHandler.List),
		http.MethodPost: publisher(noticesHandler.Create),
	}))
	mux.Handle("/api/notices/my-notices", methodMux(map[string]http.Handler{
		http.MethodGet: publisher(noticesHandler.ListMine),
	}))
	mux.Handle("/api/notices/{id}", methodMux(map[string]http.Handler{
		http.MethodPut:    publisher(noticesHandler.Update),
		http.MethodDelete: publisher(noticesHandler.Delete),
	}))

	mux.Handle("/api/upload/image", methodMux(map[string]http.Handler{
		http.MethodPost:   publisher(uploadsHandler.Upload),
		http.MethodDelete: publisher(uploadsHandler.Delete),
	}))

	var handler http.Handler = mux
	handler = middleware.CORS(deps.Config.CORS, deps.Logger)(handler)
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.RequestLogging(deps.Logger)(handler)
	return handler
}

func methodMux(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(handlers))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(handlers map[string]http.Handler) string {
	methods := make([]string, 0, len(handlers))
	for method := range handlers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
