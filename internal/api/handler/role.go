package handler

import (
	"net/http"

	"github.com/d9705996/teamconnect/internal/api/respond"
	"github.com/d9705996/teamconnect/internal/store"
)

// RoleHandler handles /api/roles and /api/access-levels.
type RoleHandler struct {
	store *store.Store
}

// NewRoleHandler creates a RoleHandler.
func NewRoleHandler(s *store.Store) *RoleHandler {
	return &RoleHandler{store: s}
}

// List handles GET /api/roles.
func (h *RoleHandler) List(w http.ResponseWriter, r *http.Request) {
	roles, err := h.store.ListRoles(r.Context(), tenantOf(r).TenantID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.List(w, http.StatusOK, roles)
}

type createRoleRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	AccessLevelID uint   `json:"accessLevelId" validate:"required"`
}

// Create handles POST /api/roles.
func (h *RoleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRoleRequest
	if !decode(w, r, &req) {
		return
	}
	role, err := h.store.CreateRole(r.Context(), tenantOf(r).TenantID, req.Name, req.AccessLevelID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, role)
}

type updateRoleRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=100"`
	AccessLevelID *uint   `json:"accessLevelId" validate:"omitempty,gt=0"`
}

// Update handles PUT /api/roles/{id}.
func (h *RoleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	var req updateRoleRequest
	if !decode(w, r, &req) {
		return
	}
	role, err := h.store.UpdateRole(r.Context(), tenantOf(r).TenantID, id, store.RolePatch{
		Name:          req.Name,
		AccessLevelID: req.AccessLevelID,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, role)
}

// Delete handles DELETE /api/roles/{id}.
func (h *RoleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	if err := h.store.DeleteRole(r.Context(), tenantOf(r).TenantID, id); err != nil {
		respond.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListAccessLevels handles GET /api/access-levels.
func (h *RoleHandler) ListAccessLevels(w http.ResponseWriter, r *http.Request) {
	levels, err := h.store.ListAccessLevels(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.List(w, http.StatusOK, levels)
}
