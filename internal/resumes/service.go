package resumes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-optimizer/internal/extract"
	"resume-optimizer/internal/parser"
	"resume-optimizer/internal/shared/metrics"
	"resume-optimizer/internal/shared/storage/object"
	"resume-optimizer/internal/shared/telemetry"
	"resume-optimizer/internal/shared/util"
)

const (
	defaultMaxUploadBytes = 5 << 20
	defaultDownloadTTL    = time.Hour
)

// DependentCleaner removes analyses that reference resumes.
type DependentCleaner interface {
	DeleteByResume(ctx context.Context, resumeID string) error
	DeleteByUser(ctx context.Context, userID string) error
}

// ParseFunc turns file bytes into a parsed resume.
type ParseFunc func(ctx context.Context, data []byte, fileType string) (parser.ParsedResume, error)

// Service contains business logic for resumes.
type Service struct {
	Repo           Repo
	Store          object.ObjectStore
	Analyses       DependentCleaner
	MaxUploadBytes int64
	AllowedTypes   []string
	DownloadTTL    time.Duration
	Parse          ParseFunc
	Now            func() time.Time
}

func NewService(repo Repo, store object.ObjectStore) *Service {
	return &Service{
		Repo:           repo,
		Store:          store,
		MaxUploadBytes: defaultMaxUploadBytes,
		AllowedTypes:   []string{extract.TypePDF, extract.TypeDOCX},
		DownloadTTL:    defaultDownloadTTL,
		Parse:          parser.ParseFile,
		Now:            func() time.Time { return time.Now().UTC() },
	}
}

// Upload validates, stores, parses and records a resume file.
// A parse failure does not fail the upload; the row keeps empty parsed data.
func (s *Service) Upload(ctx context.Context, userID, fileName, contentType string, data []byte) (Resume, error) {
	resume, err := s.upload(ctx, userID, fileName, contentType, data)
	switch {
	case err == nil:
		metrics.IncUpload("success")
	case errors.Is(err, ErrInvalidInput):
		metrics.IncUpload("rejected")
	default:
		metrics.IncUpload("error")
	}
	return resume, err
}

func (s *Service) upload(ctx context.Context, userID, fileName, contentType string, data []byte) (Resume, error) {
	if strings.TrimSpace(userID) == "" {
		return Resume{}, ErrInvalidInput
	}
	name, err := util.SanitizeFileName(fileName)
	if err != nil {
		return Resume{}, &UploadError{Message: "Invalid file name"}
	}
	if len(data) == 0 {
		return Resume{}, &UploadError{Message: "Empty file"}
	}
	if limit := s.UploadLimit(); int64(len(data)) > limit {
		return Resume{}, &UploadError{Message: fmt.Sprintf("File too large. Maximum size: %dMB", limit>>20)}
	}

	fileType := extract.DetectFileType(name, contentType, data)
	if fileType == "" || !s.allowed(fileType) {
		return Resume{}, &UploadError{Message: "Invalid file type. Allowed types: " + strings.Join(s.AllowedTypes, ", ")}
	}

	resumeID := uuid.NewString()
	fileHash := util.HashBytes(data)
	key := object.ResumeKey(userID, fileType)

	url, size, err := s.Store.Put(ctx, key, extract.ContentType(fileType), bytes.NewReader(data))
	if err != nil {
		return Resume{}, fmt.Errorf("store resume: %w", err)
	}

	parsed := &parser.ParsedResume{}
	var parsedText string
	parseOK := true
	if result, err := s.parse(ctx, data, fileType); err != nil {
		parseOK = false
		metrics.IncParseFailure()
		telemetry.Warn("resumes.parse_failed", map[string]any{
			"resume_id": resumeID,
			"user_id":   userID,
			"file_type": fileType,
			"error":     err.Error(),
		})
	} else {
		parsed = &result
		parsedText = result.RawText
	}

	filePath := key
	if s.Store.Backend() == object.BackendLocal {
		filePath = url
	}
	now := s.now()
	resume := Resume{
		ID:             resumeID,
		UserID:         userID,
		FileName:       name,
		FilePath:       filePath,
		FileType:       fileType,
		FileSize:       size,
		FileHash:       fileHash,
		ParsedText:     parsedText,
		ParsedData:     parsed,
		StorageBackend: s.Store.Backend(),
		StorageURL:     url,
		StorageKey:     key,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Repo.Create(ctx, resume); err != nil {
		s.deleteObject(ctx, resume)
		return Resume{}, fmt.Errorf("create resume: %w", err)
	}

	telemetry.Info("resumes.uploaded", map[string]any{
		"resume_id": resume.ID,
		"user_id":   userID,
		"file_type": fileType,
		"file_size": size,
		"parsed":    parseOK,
	})
	return resume, nil
}

// UploadOrReuse returns the user's existing resume with the same content
// hash, uploading the file only when none exists.
func (s *Service) UploadOrReuse(ctx context.Context, userID, fileName, contentType string, data []byte) (Resume, bool, error) {
	if len(data) > 0 {
		existing, err := s.Repo.FindByHash(ctx, userID, util.HashBytes(data))
		if err == nil {
			return existing, true, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return Resume{}, false, err
		}
	}
	resume, err := s.Upload(ctx, userID, fileName, contentType, data)
	return resume, false, err
}

// Page is one page of a user's resumes.
type Page struct {
	Resumes  []Resume
	Total    int
	Page     int
	PageSize int
}

func (s *Service) List(ctx context.Context, userID string, page, pageSize int) (Page, error) {
	if page < 1 || pageSize < 1 || pageSize > 100 {
		return Page{}, ErrInvalidInput
	}
	items, total, err := s.Repo.ListByUser(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return Page{}, err
	}
	return Page{Resumes: items, Total: total, Page: page, PageSize: pageSize}, nil
}

// Get returns a resume owned by userID.
func (s *Service) Get(ctx context.Context, userID, resumeID string) (Resume, error) {
	if _, err := uuid.Parse(resumeID); err != nil {
		return Resume{}, ErrInvalidID
	}
	resume, err := s.Repo.GetByID(ctx, resumeID)
	if err != nil {
		return Resume{}, err
	}
	if resume.UserID != userID {
		return Resume{}, ErrForbidden
	}
	return resume, nil
}

// Delete removes the stored object (best effort), dependent analyses and the row.
func (s *Service) Delete(ctx context.Context, userID, resumeID string) error {
	resume, err := s.Get(ctx, userID, resumeID)
	if err != nil {
		return err
	}
	s.deleteObject(ctx, resume)
	if s.Analyses != nil {
		if err := s.Analyses.DeleteByResume(ctx, resume.ID); err != nil {
			return fmt.Errorf("delete analyses: %w", err)
		}
	}
	if err := s.Repo.Delete(ctx, resume.ID); err != nil {
		return err
	}
	telemetry.Info("resumes.deleted", map[string]any{"resume_id": resume.ID, "user_id": userID})
	return nil
}

// Download is a time-limited link to a resume in cloud storage.
type Download struct {
	URL       string
	ExpiresIn int
	Filename  string
}

func (s *Service) DownloadURL(ctx context.Context, userID, resumeID string) (Download, error) {
	resume, err := s.Get(ctx, userID, resumeID)
	if err != nil {
		return Download{}, err
	}
	if resume.StorageBackend != object.BackendS3 || resume.StorageKey == "" {
		return Download{}, ErrNotInCloud
	}
	url, err := s.Store.PresignGet(ctx, resume.StorageKey, s.downloadTTL())
	if errors.Is(err, object.ErrPresignUnsupported) {
		return Download{}, ErrNotInCloud
	}
	if err != nil {
		return Download{}, fmt.Errorf("presign download: %w", err)
	}
	return Download{URL: url, ExpiresIn: int(s.downloadTTL().Seconds()), Filename: resume.FileName}, nil
}

// PresignedURL returns a download URL for cloud-stored resumes and "" otherwise.
func (s *Service) PresignedURL(ctx context.Context, resume Resume) string {
	if resume.StorageBackend != object.BackendS3 || resume.StorageKey == "" {
		return ""
	}
	url, err := s.Store.PresignGet(ctx, resume.StorageKey, s.downloadTTL())
	if err != nil {
		telemetry.Warn("resumes.presign_failed", map[string]any{"resume_id": resume.ID, "error": err.Error()})
		return ""
	}
	return url
}

// Text returns the resume's parsed text, re-extracting it from storage when
// the upload-time parse produced nothing. A document that still cannot be
// extracted yields empty text; only storage errors are returned.
func (s *Service) Text(ctx context.Context, resume Resume) (string, error) {
	if strings.TrimSpace(resume.ParsedText) != "" {
		return resume.ParsedText, nil
	}
	if resume.StorageKey == "" {
		return "", nil
	}
	text, err := extract.TextFromObject(ctx, s.Store, resume.StorageKey, resume.FileType)
	if errors.Is(err, extract.ErrUnreadable) {
		metrics.IncParseFailure()
		telemetry.Warn("resumes.extract_failed", map[string]any{
			"resume_id": resume.ID,
			"file_type": resume.FileType,
			"error":     err.Error(),
		})
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return text, nil
}

// PurgeUser deletes every resume of userID along with stored objects and analyses.
func (s *Service) PurgeUser(ctx context.Context, userID string) error {
	all, err := s.Repo.ListAllByUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, resume := range all {
		s.deleteObject(ctx, resume)
	}
	if s.Analyses != nil {
		if err := s.Analyses.DeleteByUser(ctx, userID); err != nil {
			return fmt.Errorf("delete analyses: %w", err)
		}
	}
	n, err := s.Repo.DeleteByUser(ctx, userID)
	if err != nil {
		return err
	}
	telemetry.Info("resumes.purged", map[string]any{"user_id": userID, "count": n})
	return nil
}

func (s *Service) deleteObject(ctx context.Context, resume Resume) {
	if resume.StorageKey == "" {
		return
	}
	if err := s.Store.Delete(ctx, resume.StorageKey); err != nil {
		telemetry.Warn("resumes.object_delete_failed", map[string]any{
			"resume_id": resume.ID,
			"key":       resume.StorageKey,
			"error":     err.Error(),
		})
	}
}

func (s *Service) parse(ctx context.Context, data []byte, fileType string) (parser.ParsedResume, error) {
	if s.Parse == nil {
		return parser.ParseFile(ctx, data, fileType)
	}
	return s.Parse(ctx, data, fileType)
}

func (s *Service) allowed(fileType string) bool {
	if len(s.AllowedTypes) == 0 {
		return true
	}
	for _, t := range s.AllowedTypes {
		if strings.EqualFold(strings.TrimSpace(t), fileType) {
			return true
		}
	}
	return false
}

// UploadLimit is the largest accepted file size in bytes.
func (s *Service) UploadLimit() int64 {
	if s.MaxUploadBytes <= 0 {
		return defaultMaxUploadBytes
	}
	return s.MaxUploadBytes
}

func (s *Service) downloadTTL() time.Duration {
	if s.DownloadTTL <= 0 {
		return defaultDownloadTTL
	}
	return s.DownloadTTL
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now()
}
