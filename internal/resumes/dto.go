package resumes

import (
	"time"

	"resume-optimizer/internal/parser"
)

// ResumeResponse is the outward-facing representation of a resume.
type ResumeResponse struct {
	ID             string               `json:"id"`
	UserID         string               `json:"user_id"`
	FileName       string               `json:"file_name"`
	FileType       string               `json:"file_type"`
	FileSize       int64                `json:"file_size"`
	FilePath       string               `json:"file_path"`
	FileHash       *string              `json:"file_hash"`
	ParsedText     *string              `json:"parsed_text"`
	ParsedData     *parser.ParsedResume `json:"parsed_data"`
	StorageBackend string               `json:"storage_backend"`
	DownloadURL    *string              `json:"download_url,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

type ListResponse struct {
	Resumes  []ResumeResponse `json:"resumes"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

type DownloadResponse struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
	Filename  string `json:"filename"`
}

func ToResponse(r Resume, downloadURL string) ResumeResponse {
	resp := ResumeResponse{
		ID:             r.ID,
		UserID:         r.UserID,
		FileName:       r.FileName,
		FileType:       r.FileType,
		FileSize:       r.FileSize,
		FilePath:       r.FilePath,
		FileHash:       optional(r.FileHash),
		ParsedText:     optional(r.ParsedText),
		ParsedData:     r.ParsedData,
		StorageBackend: r.StorageBackend,
		DownloadURL:    optional(downloadURL),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	return resp
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
