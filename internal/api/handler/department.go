package handler

import (
	"net/http"

	"github.com/d9705996/teamconnect/internal/api/respond"
	"github.com/d9705996/teamconnect/internal/store"
)

// DepartmentHandler handles /api/departments.
type DepartmentHandler struct {
	store *store.Store
}

// NewDepartmentHandler creates a DepartmentHandler.
func NewDepartmentHandler(s *store.Store) *DepartmentHandler {
	return &DepartmentHandler{store: s}
}

// List handles GET /api/departments.
func (h *DepartmentHandler) List(w http.ResponseWriter, r *http.Request) {
	deps, err := h.store.ListDepartments(r.Context(), tenantOf(r).TenantID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.List(w, http.StatusOK, deps)
}

type createDepartmentRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// Create handles POST /api/departments.
func (h *DepartmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDepartmentRequest
	if !decode(w, r, &req) {
		return
	}
	d, err := h.store.CreateDepartment(r.Context(), tenantOf(r).TenantID, req.Name)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, d)
}
