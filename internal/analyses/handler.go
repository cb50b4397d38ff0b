package analyses

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/resumes"
	"resume-optimizer/internal/shared/server/middleware"
	"resume-optimizer/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to an authenticated router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/create", h.create)
	rg.GET("", h.list)
	rg.GET("/", h.list)
	rg.GET("/:id", h.get)
	rg.DELETE("/:id", h.delete)
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var upload *Upload
	data, fileName, contentType, err := resumes.ReadUpload(c, "file", h.Svc.Resumes.UploadLimit())
	switch {
	case err == nil:
		upload = &Upload{FileName: fileName, ContentType: contentType, Data: data}
	case errors.Is(err, http.ErrMissingFile):
	default:
		writeError(c, err)
		return
	}

	analysis, err := h.Svc.Create(c.Request.Context(), CreateInput{
		UserID:         userID,
		ResumeID:       c.PostForm("resume_id"),
		File:           upload,
		JobDescription: c.PostForm("job_description"),
		JobTitle:       c.PostForm("job_title"),
		CompanyName:    c.PostForm("company_name"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set("analysisId", analysis.ID)
	c.Set("resumeId", analysis.ResumeID)
	respond.JSON(c, http.StatusCreated, ToResponse(analysis))
}

func (h *Handler) list(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	result, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), page, pageSize)
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]AnalysisResponse, 0, len(result.Analyses))
	for _, a := range result.Analyses {
		items = append(items, ToResponse(a))
	}
	respond.OK(c, ListResponse{Analyses: items, Total: result.Total, Page: result.Page, PageSize: result.PageSize})
}

func (h *Handler) get(c *gin.Context) {
	c.Set("analysisId", c.Param("id"))
	analysis, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, ToResponse(analysis))
}

func (h *Handler) delete(c *gin.Context) {
	c.Set("analysisId", c.Param("id"))
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	respond.NoContent(c)
}

func writeError(c *gin.Context, err error) {
	var uploadErr *resumes.UploadError
	switch {
	case errors.As(err, &uploadErr):
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, uploadErr.Message, nil)
	case errors.Is(err, ErrSourceConflict):
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "Provide either 'file' or 'resume_id', not both or neither", nil)
	case errors.Is(err, ErrNoJobDesc):
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "job_description is required", []map[string]string{
			{"field": "job_description", "issue": "required"},
		})
	case errors.Is(err, ErrInvalidID):
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "Invalid analysis ID format", nil)
	case errors.Is(err, ErrResumeNotFound):
		respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "Resume not found or access denied", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "Analysis not found", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, respond.CodeForbidden, "Not authorized to access this analysis", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to process analysis", nil)
	}
}
