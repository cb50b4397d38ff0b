package extract

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	pdfMagic = []byte("%PDF")
	zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}
)

// DetectFileType classifies an upload as pdf or docx. Content wins over the
// declared name and MIME type; a file whose bytes contradict its extension
// is rejected with "".
func DetectFileType(fileName, contentType string, head []byte) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	declared := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))

	if len(head) > 0 {
		detected := mimetype.Detect(head)
		switch {
		case detected.Is(MimePDF) || bytes.HasPrefix(head, pdfMagic):
			return TypePDF
		case detected.Is(MimeDOCX):
			return TypeDOCX
		case bytes.HasPrefix(head, zipMagic):
			// a truncated head can hide the OOXML parts, so trust the declaration
			if ext == TypeDOCX || declared == MimeDOCX {
				return TypeDOCX
			}
			return ""
		default:
			return ""
		}
	}

	switch {
	case ext == TypePDF || declared == MimePDF:
		return TypePDF
	case ext == TypeDOCX || declared == MimeDOCX:
		return TypeDOCX
	}
	return ""
}

// ContentType returns the MIME type stored alongside a file of fileType.
func ContentType(fileType string) string {
	switch fileType {
	case TypePDF:
		return MimePDF
	case TypeDOCX:
		return MimeDOCX
	default:
		return "application/octet-stream"
	}
}
