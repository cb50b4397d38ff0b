package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/shared/server/middleware"
	"resume-optimizer/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

type updateProfileRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,max=255"`
	Email    *string `json:"email" binding:"omitempty,email"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type deleteAccountRequest struct {
	Password     string `json:"password" binding:"required"`
	Confirmation string `json:"confirmation" binding:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.Profile)
	rg.PUT("/profile", h.updateProfile)
	rg.PUT("/password", h.changePassword)
	rg.DELETE("/account", h.deleteAccount)
}

// Profile writes the authenticated user's public view. It also serves /api/auth/me.
func (h *Handler) Profile(c *gin.Context) {
	user, err := h.Svc.GetByID(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to load user")
		return
	}
	respond.OK(c, user.Response())
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	if req.FullName == nil && req.Email == nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "At least one field (full_name or email) must be provided for update", nil)
		return
	}
	user, err := h.Svc.UpdateProfile(c.Request.Context(), middleware.UserIDFromContext(c), ProfileUpdate{
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		writeError(c, err, "failed to update profile")
		return
	}
	respond.OK(c, user.Response())
}

func (h *Handler) changePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	if err := h.Svc.ChangePassword(c.Request.Context(), middleware.UserIDFromContext(c), req.OldPassword, req.NewPassword); err != nil {
		writeError(c, err, "failed to change password")
		return
	}
	respond.OK(c, messageResponse{Message: "Password changed successfully"})
}

func (h *Handler) deleteAccount(c *gin.Context) {
	var req deleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	if err := h.Svc.DeleteAccount(c.Request.Context(), middleware.UserIDFromContext(c), req.Password, req.Confirmation); err != nil {
		writeError(c, err, "failed to delete account")
		return
	}
	respond.OK(c, messageResponse{Message: "Account deleted successfully"})
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "User not found", nil)
	case errors.Is(err, ErrEmailTaken):
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "Email already registered", nil)
	case errors.Is(err, ErrWrongPassword):
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "Incorrect password", nil)
	case errors.Is(err, ErrSamePassword):
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "New password must be different from current password", nil)
	case errors.Is(err, ErrBadConfirmation):
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, `Confirmation must be exactly "DELETE" (case-sensitive)`, nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid input", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, fallback, nil)
	}
}
