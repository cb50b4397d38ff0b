package resumes

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/shared/server/middleware"
	"resume-optimizer/internal/shared/server/respond"
)

// multipartOverhead is allowed on top of the file limit for form boundaries and fields.
const multipartOverhead = 1 << 20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to an authenticated router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload", h.upload)
	rg.GET("", h.list)
	rg.GET("/", h.list)
	rg.GET("/:id", h.get)
	rg.DELETE("/:id", h.delete)
	rg.GET("/:id/download", h.download)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	data, fileName, contentType, err := ReadUpload(c, "file", h.Svc.UploadLimit())
	if err != nil {
		writeError(c, err, "failed to upload resume")
		return
	}

	resume, err := h.Svc.Upload(c.Request.Context(), userID, fileName, contentType, data)
	if err != nil {
		writeError(c, err, "failed to upload resume")
		return
	}
	c.Set("resumeId", resume.ID)
	respond.JSON(c, http.StatusCreated, ToResponse(resume, h.Svc.PresignedURL(c.Request.Context(), resume)))
}

// ReadUpload reads a multipart file field, rejecting bodies larger than limit.
// A missing field or a non-multipart body returns http.ErrMissingFile.
func ReadUpload(c *gin.Context, field string, limit int64) ([]byte, string, string, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartOverhead)

	fileHeader, err := c.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, "", "", tooLargeError(limit)
		}
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, "", "", http.ErrMissingFile
		}
		return nil, "", "", &UploadError{Message: "file is required"}
	}
	if fileHeader.Size > limit {
		return nil, "", "", tooLargeError(limit)
	}

	data, err := readAll(fileHeader, limit)
	if err != nil {
		return nil, "", "", err
	}
	return data, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), nil
}

func readAll(fileHeader *multipart.FileHeader, limit int64) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, &UploadError{Message: "unable to read file"}
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, &UploadError{Message: "unable to read file"}
	}
	if int64(len(data)) > limit {
		return nil, tooLargeError(limit)
	}
	return data, nil
}

func tooLargeError(limit int64) error {
	return &UploadError{Message: "File too large. Maximum size: " + strconv.FormatInt(limit>>20, 10) + "MB"}
}

func (h *Handler) list(c *gin.Context) {
	page, ok := queryInt(c, "page", 1)
	if !ok || page < 1 {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "page must be >= 1", nil)
		return
	}
	pageSize, ok := queryInt(c, "page_size", 10)
	if !ok || pageSize < 1 || pageSize > 100 {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "page_size must be between 1 and 100", nil)
		return
	}

	result, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), page, pageSize)
	if err != nil {
		writeError(c, err, "failed to list resumes")
		return
	}

	items := make([]ResumeResponse, 0, len(result.Resumes))
	for _, r := range result.Resumes {
		items = append(items, ToResponse(r, ""))
	}
	respond.OK(c, ListResponse{Resumes: items, Total: result.Total, Page: result.Page, PageSize: result.PageSize})
}

func (h *Handler) get(c *gin.Context) {
	c.Set("resumeId", c.Param("id"))
	resume, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to fetch resume")
		return
	}
	respond.OK(c, ToResponse(resume, h.Svc.PresignedURL(c.Request.Context(), resume)))
}

func (h *Handler) delete(c *gin.Context) {
	c.Set("resumeId", c.Param("id"))
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id")); err != nil {
		writeError(c, err, "failed to delete resume")
		return
	}
	respond.NoContent(c)
}

func (h *Handler) download(c *gin.Context) {
	c.Set("resumeId", c.Param("id"))
	dl, err := h.Svc.DownloadURL(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to generate download URL")
		return
	}
	respond.OK(c, DownloadResponse{URL: dl.URL, ExpiresIn: dl.ExpiresIn, Filename: dl.Filename})
}

func queryInt(c *gin.Context, key string, fallback int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func writeError(c *gin.Context, err error, fallback string) {
	var uploadErr *UploadError
	switch {
	case errors.As(err, &uploadErr):
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, uploadErr.Message, nil)
	case errors.Is(err, http.ErrMissingFile):
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "file is required", nil)
	case errors.Is(err, ErrInvalidID):
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "Invalid resume ID format", nil)
	case errors.Is(err, ErrNotInCloud):
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "Resume is not stored in cloud storage", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid request", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "Resume not found", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, respond.CodeForbidden, "Not authorized to access this resume", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, fallback, nil)
	}
}
