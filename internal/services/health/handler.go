package health

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/health", h.liveness)
	r.GET("/health/db", h.database)
}

func (h *Handler) liveness(c *gin.Context) {
	respond.OK(c, h.Svc.Liveness())
}

func (h *Handler) database(c *gin.Context) {
	status, ok := h.Svc.Database(c.Request.Context())
	if !ok {
		respond.JSON(c, http.StatusServiceUnavailable, status)
		return
	}
	respond.OK(c, status)
}
