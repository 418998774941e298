package handler

import (
	"net/http"

	"github.com/d9705996/teamconnect/internal/api/respond"
	"github.com/d9705996/teamconnect/internal/store"
)

// UserHandler handles /api/users.
type UserHandler struct {
	store *store.Store
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(s *store.Store) *UserHandler {
	return &UserHandler{store: s}
}

// List handles GET /api/users?search=.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context(), tenantOf(r).TenantID, r.URL.Query().Get("search"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.List(w, http.StatusOK, users)
}

type createUserRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8,maxbytes=72"` //nolint:gosec // request input, hashed by the store
	RoleID       uint   `json:"roleId" validate:"required"`
	DepartmentID *uint  `json:"departmentId"`
}

// Create handles POST /api/users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decode(w, r, &req) {
		return
	}

	u, err := h.store.CreateEmployee(r.Context(), tenantOf(r).TenantID, store.NewEmployee{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		RoleID:       req.RoleID,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, u)
}

// Get handles GET /api/users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	u, err := h.store.GetUserByID(r.Context(), tenantOf(r).TenantID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, u)
}
