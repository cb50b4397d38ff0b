package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"resume-optimizer/internal/extract"
	"resume-optimizer/internal/parser"
)

// NewRootCmd builds the resumectl command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "resumectl",
		Short: "Offline resume parsing and keyword scoring",
		Long: `resumectl runs the resume parser, keyword analyzer and ATS checker
against local files without a server or database.`,
		SilenceUsage: true,
	}
	root.AddCommand(newParseCmd(), newKeywordsCmd(), newScoreCmd(), newATSCmd())
	return root
}

// loadResume parses a pdf, docx or plain-text resume from disk.
func loadResume(cmd *cobra.Command, path string) (parser.ParsedResume, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return parser.ParsedResume{}, fmt.Errorf("read %s: %w", path, err)
	}
	fileType := extract.DetectFileType(path, "", data)
	if fileType == "" {
		if isPlainText(path) {
			return parser.Parse(string(data)), nil
		}
		return parser.ParsedResume{}, fmt.Errorf("%s: %w", path, extract.ErrUnsupportedType)
	}
	return parser.ParseFile(cmd.Context(), data, fileType)
}

func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func isPlainText(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".text":
		return true
	default:
		return false
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
