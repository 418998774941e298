package handler

import (
	"net/http"

	"github.com/d9705996/teamconnect/internal/api/respond"
	"github.com/d9705996/teamconnect/internal/store"
)

// CompanyHandler handles /api/companies.
type CompanyHandler struct {
	store *store.Store
}

// NewCompanyHandler creates a CompanyHandler.
func NewCompanyHandler(s *store.Store) *CompanyHandler {
	return &CompanyHandler{store: s}
}

type registerRequest struct {
	CompanyName   string `json:"companyName" validate:"required,max=200"`
	AdminName     string `json:"adminName" validate:"required,max=200"`
	AdminEmail    string `json:"adminEmail" validate:"required,email"`
	AdminPassword string `json:"adminPassword" validate:"required,min=8,maxbytes=72"` //nolint:gosec // request input, hashed by the store
}

type registerResponse struct {
	Message string `json:"message"`
	store.RegistrationResult
}

// Register handles POST /api/companies.
func (h *CompanyHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decode(w, r, &req) {
		return
	}

	res, err := h.store.CreateCompanyWithAdmin(r.Context(), store.Registration{
		CompanyName:   req.CompanyName,
		AdminName:     req.AdminName,
		AdminEmail:    req.AdminEmail,
		AdminPassword: req.AdminPassword,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, registerResponse{
		Message:            "company registered",
		RegistrationResult: res,
	})
}
