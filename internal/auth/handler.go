package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/shared/server/respond"
	"resume-optimizer/internal/users"
)

type Handler struct {
	Svc   *Service
	Users *users.Handler
}

func NewHandler(svc *Service, usersHandler *users.Handler) *Handler {
	return &Handler{Svc: svc, Users: usersHandler}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"omitempty,max=255"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RegisterPublicRoutes attaches the unauthenticated auth routes.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.register)
	rg.POST("/login", h.login)
	rg.POST("/refresh", h.refresh)
}

// RegisterProtectedRoutes attaches routes that need an access token.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.Users.Profile)
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	resp, err := h.Svc.Register(c.Request.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "Email already registered", nil)
			return
		}
		if errors.Is(err, users.ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid request body", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to register", nil)
		return
	}
	respond.JSON(c, http.StatusCreated, resp)
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	resp, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			unauthorized(c, "Incorrect email or password")
			return
		}
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to login", nil)
		return
	}
	respond.OK(c, resp)
}

func (h *Handler) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	resp, err := h.Svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, ErrInvalidRefresh) {
			unauthorized(c, "Could not validate credentials")
			return
		}
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to refresh token", nil)
		return
	}
	respond.OK(c, resp)
}

func unauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", "Bearer")
	respond.Error(c, http.StatusUnauthorized, respond.CodeUnauthorized, message, nil)
}
