// Package api wires all API routes onto the provided ServeMux.
package api

import (
	"net/http"

	"github.com/d9705996/teamconnect/internal/api/handler"
	"github.com/d9705996/teamconnect/internal/api/middleware"
	"github.com/d9705996/teamconnect/internal/api/respond"
	"github.com/d9705996/teamconnect/internal/auth"
	"github.com/d9705996/teamconnect/internal/health"
	"github.com/d9705996/teamconnect/internal/store"
)

// Handlers groups the resource handlers served by RegisterRoutes.
type Handlers struct {
	Health      *health.Handler
	Auth        *handler.AuthHandler
	Companies   *handler.CompanyHandler
	Users       *handler.UserHandler
	Posts       *handler.PostHandler
	Roles       *handler.RoleHandler
	Departments *handler.DepartmentHandler
}

// NewHandlers builds every resource handler over one store.
func NewHandlers(s *store.Store, h *health.Handler, a *handler.AuthHandler) Handlers {
	return Handlers{
		Health:      h,
		Auth:        a,
		Companies:   handler.NewCompanyHandler(s),
		Users:       handler.NewUserHandler(s),
		Posts:       handler.NewPostHandler(s),
		Roles:       handler.NewRoleHandler(s),
		Departments: handler.NewDepartmentHandler(s),
	}
}

// Options configures how tenant-scoped routes resolve their tenant.
type Options struct {
	Tenants      middleware.TenantChecker
	TenantSource string
	JWTSecret    string
}

// RegisterRoutes registers all application routes on mux.
func RegisterRoutes(mux *http.ServeMux, h Handlers, opts Options) {
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, respond.Message{Message: "TeamConnect backend is up"})
	})

	// Public endpoints (no tenant required)
	mux.HandleFunc("GET /api/health", h.Health.ServeHealth)
	mux.HandleFunc("GET /api/ready", h.Health.ServeReady)
	mux.HandleFunc("POST /api/companies", h.Companies.Register)
	mux.HandleFunc("GET /api/access-levels", h.Roles.ListAccessLevels)

	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/refresh", h.Auth.Refresh)
	mux.Handle("POST /api/auth/logout", middleware.RequireAuth(opts.JWTSecret)(http.HandlerFunc(h.Auth.Logout)))

	// Tenant-scoped routes
	tenant := middleware.RequireTenant(opts.Tenants, opts.TenantSource, opts.JWTSecret)
	scoped := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, tenant(fn))
	}
	guarded := func(pattern, action string, fn http.HandlerFunc) {
		mux.Handle(pattern, tenant(middleware.RequirePermission(action)(fn)))
	}

	scoped("GET /api/users", h.Users.List)
	guarded("POST /api/users", auth.PermManageUsers, h.Users.Create)
	scoped("GET /api/users/{id}", h.Users.Get)

	scoped("GET /api/departments", h.Departments.List)
	guarded("POST /api/departments", auth.PermManageUsers, h.Departments.Create)

	scoped("GET /api/posts", h.Posts.List)
	guarded("POST /api/posts", auth.PermCreatePosts, h.Posts.Create)
	scoped("POST /api/posts/{postId}/like", h.Posts.ToggleLike)
	scoped("GET /api/posts/{postId}/comments", h.Posts.ListComments)
	scoped("POST /api/posts/{postId}/comments", h.Posts.CreateComment)

	scoped("GET /api/roles", h.Roles.List)
	guarded("POST /api/roles", auth.PermManageRoles, h.Roles.Create)
	guarded("PUT /api/roles/{id}", auth.PermManageRoles, h.Roles.Update)
	guarded("DELETE /api/roles/{id}", auth.PermManageRoles, h.Roles.Delete)

	// Catch-all 404
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		respond.ErrorMessage(w, http.StatusNotFound, "not_found", "route not found")
	})
}
