package extract

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"resume-optimizer/internal/shared/storage/object"
)

const (
	TypePDF  = "pdf"
	TypeDOCX = "docx"
)

// minPlainTextLen is the length below which PDF plain text is retried row by row.
const minPlainTextLen = 100

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrEmptyDocument   = errors.New("empty document")
	// ErrUnreadable marks stored bytes that were read but could not be turned into text.
	ErrUnreadable = errors.New("unreadable document")
)

// TextFromObject reads a stored object and extracts its text.
func TextFromObject(ctx context.Context, store object.ObjectStore, key string, fileType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	body, err := store.Open(ctx, key)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s type=%s: %w", key, fileType, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s type=%s: read: %w", key, fileType, err)
	}

	text, err := TextFromBytes(ctx, raw, fileType)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("extract text key=%s type=%s: %w: %w", key, fileType, ErrUnreadable, err)
	}
	return text, nil
}

// TextFromBytes extracts text from an in-memory PDF or DOCX payload.
func TextFromBytes(ctx context.Context, data []byte, fileType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(fileType), ".")) {
	case TypePDF:
		return extractPDF(data)
	case TypeDOCX:
		return extractDOCX(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, fileType)
	}
}

func extractPDF(data []byte) (text string, err error) {
	// the pdf reader panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("read pdf: %v", r)
		}
	}()

	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	text = strings.TrimSpace(buf.String())
	if len(text) >= minPlainTextLen {
		return text, nil
	}

	if byRow := pdfTextByRow(pdfReader); len(byRow) > len(text) {
		return byRow, nil
	}
	return text, nil
}

// pdfTextByRow rebuilds page text from positioned rows, which recovers
// text from layouts GetPlainText flattens badly.
func pdfTextByRow(r *pdf.Reader) string {
	var out strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			var line strings.Builder
			for _, word := range row.Content {
				line.WriteString(word.S)
			}
			if s := strings.TrimSpace(line.String()); s != "" {
				out.WriteString(s)
				out.WriteString("\n")
			}
		}
	}
	return strings.TrimSpace(out.String())
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer doc.Close()

	return stripDocxXML(doc.Editable().GetContent()), nil
}

// stripDocxXML reduces WordprocessingML to text: paragraphs and breaks
// become newlines, tabs and table cells become tabs.
func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	inText := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return strings.TrimSpace(buf.String())
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				buf.WriteString("\t")
			case "br", "cr":
				buf.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				buf.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				buf.WriteString("\n")
			case "tc":
				buf.WriteString("\t")
			}
		}
	}
	return cleanLines(buf.String())
}

func cleanLines(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" && len(out) > 0 && out[len(out)-1] == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
